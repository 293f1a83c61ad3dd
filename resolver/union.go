package resolver

import (
	"context"

	"github.com/sfomuseum/go-geoextent/location"
)

// type UnionResolver implements the `Resolver` interface returning the geometric union of every candidate.
type UnionResolver struct {
	Resolver
}

// type ScoredUnionResolver implements the `Resolver` interface returning the geometric union of every
// candidate whose score is at least the mean score of the set.
type ScoredUnionResolver struct {
	Resolver
}

func init() {

	ctx := context.Background()

	err := RegisterResolver(ctx, "union", NewUnionResolver)

	if err != nil {
		panic(err)
	}

	err = RegisterResolver(ctx, "scoredunion", NewScoredUnionResolver)

	if err != nil {
		panic(err)
	}
}

// NewUnionResolver returns a new `UnionResolver` instance. 'uri' takes the form of:
//
//	union://
func NewUnionResolver(ctx context.Context, uri string) (Resolver, error) {
	r := &UnionResolver{}
	return r, nil
}

// Resolve returns the union of every member of 'set'. The probability of the result is the mean
// score of the members.
func (r *UnionResolver) Resolve(ctx context.Context, set *location.CandidateSet) (*location.GeoExtent, bool) {
	return union(set)
}

// NewScoredUnionResolver returns a new `ScoredUnionResolver` instance. 'uri' takes the form of:
//
//	scoredunion://
func NewScoredUnionResolver(ctx context.Context, uri string) (Resolver, error) {
	r := &ScoredUnionResolver{}
	return r, nil
}

// Resolve drops members scoring below the mean score of 'set' and returns the union of the rest, so
// that a single low confidence outlier can not dominate the result.
func (r *ScoredUnionResolver) Resolve(ctx context.Context, set *location.CandidateSet) (*location.GeoExtent, bool) {

	mean := set.MeanScore()

	scored := set.Filter(func(e *location.GeoExtent) bool {
		return e.Score() >= mean
	})

	return union(scored)
}

func union(set *location.CandidateSet) (*location.GeoExtent, bool) {

	b, ok := set.Bound()

	if !ok {
		return nil, false
	}

	e := location.NewGeoExtentFromBound(b, set.MeanScore())
	return e, true
}
