package resolver

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/sfomuseum/go-geoextent/location"
)

// DEFAULT_SCORE_DIFFERENCE is the (penalised) score difference above which the weaker of two
// candidates is ignored.
const DEFAULT_SCORE_DIFFERENCE float64 = 0.2

// type SmallSetResolver implements the `Resolver` interface for sets of at most two candidates. Larger
// sets are left unresolved; it is meant to be embedded by resolvers that handle them.
type SmallSetResolver struct {
	Resolver
	// ScoreDifference is the penalised score difference above which only the stronger of two candidates is kept.
	ScoreDifference float64
}

func init() {

	ctx := context.Background()

	err := RegisterResolver(ctx, "smallset", NewSmallSetResolver)

	if err != nil {
		panic(err)
	}
}

// NewSmallSetResolver returns a new `SmallSetResolver` instance. 'uri' takes the form of:
//
//	smallset://?difference={FLOAT}
//
// Where 'difference' is an optional score difference, defaulting to DEFAULT_SCORE_DIFFERENCE.
func NewSmallSetResolver(ctx context.Context, uri string) (Resolver, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	return newSmallSetResolverWithQuery(u.Query())
}

func newSmallSetResolverWithQuery(q url.Values) (*SmallSetResolver, error) {

	diff, err := floatParam(q, "difference", DEFAULT_SCORE_DIFFERENCE)

	if err != nil {
		return nil, err
	}

	r := &SmallSetResolver{
		ScoreDifference: diff,
	}

	return r, nil
}

// Resolve resolves sets of zero, one or two candidates. Sets of three or more are not resolved.
func (r *SmallSetResolver) Resolve(ctx context.Context, set *location.CandidateSet) (*location.GeoExtent, bool) {

	e, ok, handled := r.resolveSmall(set)

	if !handled {
		return nil, false
	}

	return e, ok
}

// resolveSmall implements the shared fast path. The final boolean reports whether the set was small
// enough to be handled at all.
func (r *SmallSetResolver) resolveSmall(set *location.CandidateSet) (*location.GeoExtent, bool, bool) {

	extents := set.Extents()

	switch len(extents) {
	case 0:
		return nil, false, true
	case 1:
		return extents[0], true, true
	case 2:

		a := extents[0]
		b := extents[1]

		if math.Abs(a.ScoreWithPenalty()-b.ScoreWithPenalty()) > r.ScoreDifference {

			if a.ScoreWithPenalty() > b.ScoreWithPenalty() {
				return a, true, true
			}

			return b, true, true
		}

		if a.Intersects(b) {

			mean := orb.Bound{
				Min: orb.Point{(a.West() + b.West()) / 2.0, (a.South() + b.South()) / 2.0},
				Max: orb.Point{(a.East() + b.East()) / 2.0, (a.North() + b.North()) / 2.0},
			}

			e := location.NewGeoExtentFromBound(mean, set.MeanScore())
			return e, true, true
		}

		e, ok := union(set)
		return e, ok, true

	default:
		return nil, false, false
	}
}

func floatParam(q url.Values, key string, default_value float64) (float64, error) {

	str_v := q.Get(key)

	if str_v == "" {
		return default_value, nil
	}

	v, err := strconv.ParseFloat(str_v, 64)

	if err != nil {
		return 0.0, fmt.Errorf("Failed to parse ?%s= parameter, %w", key, err)
	}

	return v, nil
}
