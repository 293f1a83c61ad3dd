package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/sfomuseum/go-geoextent/location"
)

// DEFAULT_DEGENERATE_BONUS is the compatibility assigned to a point or line candidate contained by another candidate.
const DEFAULT_DEGENERATE_BONUS float64 = 0.2

// type JaccardResolver implements the `Resolver` interface selecting the candidate most compatible
// with the others, where compatibility is measured by the Jaccard (intersection over union) index.
type JaccardResolver struct {
	*SmallSetResolver
	// DegenerateBonus is the compatibility of a degenerate candidate contained by another candidate.
	DegenerateBonus float64
}

func init() {

	ctx := context.Background()

	err := RegisterResolver(ctx, "jaccard", NewJaccardResolver)

	if err != nil {
		panic(err)
	}
}

// NewJaccardResolver returns a new `JaccardResolver` instance. 'uri' takes the form of:
//
//	jaccard://?bonus={FLOAT}&difference={FLOAT}
//
// Where 'bonus' defaults to DEFAULT_DEGENERATE_BONUS and 'difference' to DEFAULT_SCORE_DIFFERENCE.
func NewJaccardResolver(ctx context.Context, uri string) (Resolver, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	q := u.Query()

	small, err := newSmallSetResolverWithQuery(q)

	if err != nil {
		return nil, err
	}

	bonus, err := floatParam(q, "bonus", DEFAULT_DEGENERATE_BONUS)

	if err != nil {
		return nil, err
	}

	r := &JaccardResolver{
		SmallSetResolver: small,
		DegenerateBonus:  bonus,
	}

	return r, nil
}

// Resolve returns one of the members of 'set', never a synthesized extent. For sets of more than two
// candidates each candidate is scored as the mean of its penalised score and its aggregate
// compatibility with every other candidate, weighted by their scores.
func (r *JaccardResolver) Resolve(ctx context.Context, set *location.CandidateSet) (*location.GeoExtent, bool) {

	e, ok, handled := r.resolveSmall(set)

	if handled {
		return e, ok
	}

	extents := set.Extents()

	var best *location.GeoExtent
	best_score := -1.0

	for i, candidate := range extents {

		aggregate := 0.0

		for j, other := range extents {

			if i == j {
				continue
			}

			aggregate += r.compatibility(candidate, other) * other.Score()
		}

		aggregate = aggregate / float64(len(extents)-1)

		score := (candidate.ScoreWithPenalty() + aggregate) / 2.0

		slog.Debug("Jaccard score", "extent", candidate.String(), "aggregate", aggregate, "score", score)

		// Extents are sorted by ascending score so ties go to the stronger candidate
		if score >= best_score {
			best = candidate
			best_score = score
		}
	}

	return best, best != nil
}

// compatibility returns the Jaccard index of two area extents, or DegenerateBonus when a point or line
// extent is contained by the other.
func (r *JaccardResolver) compatibility(a *location.GeoExtent, b *location.GeoExtent) float64 {

	if a.IsDegenerate() || b.IsDegenerate() {

		if (a.IsDegenerate() && b.Contains(a)) || (b.IsDegenerate() && a.Contains(b)) {
			return r.DegenerateBonus
		}

		return 0.0
	}

	return a.JaccardIndex(b)
}
