package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"

	"github.com/paulmach/orb"
	"github.com/sfomuseum/go-geoextent/location"
)

const (
	// THRESHOLD_AVERAGE uses the mean candidate score as the heatmap threshold.
	THRESHOLD_AVERAGE string = "average"
	// THRESHOLD_MAXIMUM uses the highest single candidate score as the heatmap threshold.
	THRESHOLD_MAXIMUM string = "maximum"
)

// type HeatmapResolver implements the `Resolver` interface by sweeping each axis independently and
// keeping the outermost boundaries where candidates accumulate.
type HeatmapResolver struct {
	*SmallSetResolver
	// Threshold is the threshold mode, one of THRESHOLD_AVERAGE or THRESHOLD_MAXIMUM.
	Threshold string
}

// interval is a candidate's range on a single axis.
type interval struct {
	min   float64
	max   float64
	score float64
}

func init() {

	ctx := context.Background()

	err := RegisterResolver(ctx, "heatmap", NewHeatmapResolver)

	if err != nil {
		panic(err)
	}
}

// NewHeatmapResolver returns a new `HeatmapResolver` instance. 'uri' takes the form of:
//
//	heatmap://?threshold={MODE}&difference={FLOAT}
//
// Where 'threshold' is "average" (default) or "maximum" and 'difference' defaults to DEFAULT_SCORE_DIFFERENCE.
func NewHeatmapResolver(ctx context.Context, uri string) (Resolver, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	q := u.Query()

	small, err := newSmallSetResolverWithQuery(q)

	if err != nil {
		return nil, err
	}

	threshold := THRESHOLD_AVERAGE

	if q.Has("threshold") {
		threshold = q.Get("threshold")
	}

	switch threshold {
	case THRESHOLD_AVERAGE, THRESHOLD_MAXIMUM:
		// pass
	default:
		return nil, fmt.Errorf("Invalid ?threshold= parameter '%s'", threshold)
	}

	r := &HeatmapResolver{
		SmallSetResolver: small,
		Threshold:        threshold,
	}

	return r, nil
}

// Resolve resolves each axis independently and combines the two ranges in to the final extent. The
// axes are not jointly optimised. If either axis can not be resolved the highest scoring candidate
// is returned.
func (r *HeatmapResolver) Resolve(ctx context.Context, set *location.CandidateSet) (*location.GeoExtent, bool) {

	e, ok, handled := r.resolveSmall(set)

	if handled {
		return e, ok
	}

	threshold := set.MeanScore()

	if r.Threshold == THRESHOLD_MAXIMUM {
		threshold = set.MaxScore()
	}

	extents := set.Extents()

	x_intervals := make([]interval, len(extents))
	y_intervals := make([]interval, len(extents))

	for idx, e := range extents {
		x_intervals[idx] = interval{min: e.West(), max: e.East(), score: e.Score()}
		y_intervals[idx] = interval{min: e.South(), max: e.North(), score: e.Score()}
	}

	min_x, max_x, ok_x := resolveAxis(x_intervals, threshold)
	min_y, max_y, ok_y := resolveAxis(y_intervals, threshold)

	if !ok_x || !ok_y {
		slog.Debug("Heatmap failed to resolve axis, falling back to highest score", "x", ok_x, "y", ok_y)
		return set.Highest()
	}

	b := orb.Bound{
		Min: orb.Point{min_x, min_y},
		Max: orb.Point{max_x, max_y},
	}

	resolved := location.NewGeoExtentFromBound(b, 0.0)

	contributing := set.Filter(func(e *location.GeoExtent) bool {
		return e.Intersects(resolved)
	})

	resolved.Probability = contributing.MeanScore()
	return resolved, true
}

// resolveAxis uses every interval's min and max as event boundaries and returns the outermost
// boundaries whose accumulated score exceeds 'threshold' or which are covered by more than one interval.
func resolveAxis(intervals []interval, threshold float64) (float64, float64, bool) {

	seen := make(map[float64]bool)
	boundaries := make([]float64, 0)

	for _, i := range intervals {

		for _, b := range []float64{i.min, i.max} {

			if !seen[b] {
				seen[b] = true
				boundaries = append(boundaries, b)
			}
		}
	}

	sort.Float64s(boundaries)

	found := false
	min := 0.0
	max := 0.0

	for _, b := range boundaries {

		sum := 0.0
		count := 0

		for _, i := range intervals {

			if i.min <= b && b <= i.max {
				sum += i.score
				count += 1
			}
		}

		if sum <= threshold && count <= 1 {
			continue
		}

		if !found {
			min = b
			found = true
		}

		max = b
	}

	return min, max, found
}
