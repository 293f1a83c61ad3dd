package resolver

import (
	"context"
	"math"
	"testing"

	"github.com/sfomuseum/go-geoextent/location"
)

func newTestResolver(t *testing.T, uri string) Resolver {

	ctx := context.Background()

	r, err := NewResolver(ctx, uri)

	if err != nil {
		t.Fatalf("Failed to create resolver for %s, %v", uri, err)
	}

	return r
}

func TestSchemes(t *testing.T) {

	expected := map[string]bool{
		"heatmap://":     false,
		"jaccard://":     false,
		"scoredunion://": false,
		"smallset://":    false,
		"union://":       false,
	}

	for _, s := range Schemes() {

		if _, ok := expected[s]; ok {
			expected[s] = true
		}
	}

	for s, found := range expected {

		if !found {
			t.Fatalf("Expected scheme %s to be registered", s)
		}
	}

	ctx := context.Background()

	_, err := NewResolver(ctx, "bogus://")

	if err == nil {
		t.Fatalf("Expected bogus:// resolver to fail")
	}

	_, err = NewResolver(ctx, "heatmap://?threshold=median")

	if err == nil {
		t.Fatalf("Expected invalid heatmap threshold to fail")
	}
}

func TestEmptySet(t *testing.T) {

	ctx := context.Background()

	for _, uri := range []string{"union://", "scoredunion://", "smallset://", "jaccard://", "heatmap://"} {

		r := newTestResolver(t, uri)

		e, ok := r.Resolve(ctx, location.NewCandidateSet())

		if ok || e != nil {
			t.Fatalf("Expected %s to return no extent for an empty set", uri)
		}
	}
}

func TestSingleCandidate(t *testing.T) {

	ctx := context.Background()

	x := location.NewGeoExtent(9.48, 46.43, 16.98, 49.04, 0.7)

	for _, uri := range []string{"union://", "scoredunion://", "smallset://", "jaccard://", "heatmap://"} {

		r := newTestResolver(t, uri)

		e, ok := r.Resolve(ctx, location.NewCandidateSet(x))

		if !ok {
			t.Fatalf("Expected %s to resolve a single candidate", uri)
		}

		if !e.Equal(x) {
			t.Fatalf("Expected %s to return %s, got %s", uri, x, e)
		}
	}
}

func TestUnionResolver(t *testing.T) {

	ctx := context.Background()
	r := newTestResolver(t, "union://")

	set := location.NewCandidateSet(
		location.NewGeoExtent(0, 0, 1, 1, 0.5),
		location.NewGeoExtent(5, -2, 6, 3, 1.0),
	)

	e, ok := r.Resolve(ctx, set)

	if !ok {
		t.Fatalf("Failed to resolve union")
	}

	expected := location.NewGeoExtent(0, -2, 6, 3, 0.75)

	if !e.Equal(expected) {
		t.Fatalf("Unexpected union %s", e)
	}

	if math.Abs(e.Probability-0.75) > 1e-9 {
		t.Fatalf("Unexpected union probability %f", e.Probability)
	}
}

func TestScoredUnionResolver(t *testing.T) {

	ctx := context.Background()
	r := newTestResolver(t, "scoredunion://")

	set := location.NewCandidateSet(
		location.NewGeoExtent(0, 0, 1, 1, 0.9),
		location.NewGeoExtent(2, 2, 3, 3, 0.8),
		location.NewGeoExtent(50, 50, 51, 51, 0.1),
	)

	e, ok := r.Resolve(ctx, set)

	if !ok {
		t.Fatalf("Failed to resolve scored union")
	}

	expected := location.NewGeoExtent(0, 0, 3, 3, 0.0)

	if !e.Equal(expected) {
		t.Fatalf("Expected low scoring candidate to be dropped, got %s", e)
	}
}

func TestSmallSetMeanRectangle(t *testing.T) {

	ctx := context.Background()
	r := newTestResolver(t, "smallset://")

	set := location.NewCandidateSet(
		location.NewGeoExtent(0, 0, 10, 10, 0.5),
		location.NewGeoExtent(2, 2, 12, 12, 0.5),
	)

	e, ok := r.Resolve(ctx, set)

	if !ok {
		t.Fatalf("Failed to resolve small set")
	}

	expected := location.NewGeoExtent(1, 1, 11, 11, 0.5)

	if !e.Equal(expected) {
		t.Fatalf("Expected mean rectangle %s, got %s", expected, e)
	}

	if math.Abs(e.Probability-0.5) > 1e-9 {
		t.Fatalf("Unexpected probability %f", e.Probability)
	}
}

func TestSmallSetScoreDifference(t *testing.T) {

	ctx := context.Background()
	r := newTestResolver(t, "smallset://")

	strong := location.NewGeoExtent(0, 0, 10, 10, 0.9)
	weak := location.NewGeoExtent(2, 2, 12, 12, 0.3)

	e, ok := r.Resolve(ctx, location.NewCandidateSet(weak, strong))

	if !ok {
		t.Fatalf("Failed to resolve small set")
	}

	if e != strong {
		t.Fatalf("Expected stronger candidate, got %s", e)
	}

	// Disjoint candidates with similar scores collapse to their union

	a := location.NewGeoExtent(0, 0, 1, 1, 0.5)
	b := location.NewGeoExtent(5, 5, 6, 6, 0.6)

	e, ok = r.Resolve(ctx, location.NewCandidateSet(a, b))

	if !ok {
		t.Fatalf("Failed to resolve small set")
	}

	if !e.Equal(location.NewGeoExtent(0, 0, 6, 6, 0.0)) {
		t.Fatalf("Expected union of disjoint candidates, got %s", e)
	}

	// Larger sets are not resolved

	c := location.NewGeoExtent(10, 10, 11, 11, 0.5)

	_, ok = r.Resolve(ctx, location.NewCandidateSet(a, b, c))

	if ok {
		t.Fatalf("Expected small set resolver to ignore sets of three")
	}
}

func TestJaccardResolverReturnsInput(t *testing.T) {

	ctx := context.Background()
	r := newTestResolver(t, "jaccard://")

	inputs := []*location.GeoExtent{
		location.NewGeoExtent(9.48, 46.43, 16.98, 49.04, 0.6),
		location.NewGeoExtent(5.99, 47.30, 15.02, 54.98, 0.6),
		location.NewGeoExtent(10, 47, 12, 48, 0.4),
		location.NewPointExtent(11.5, 47.5, 0.9),
		location.NewGeoExtent(-120, 30, -110, 40, 0.5),
	}

	e, ok := r.Resolve(ctx, location.NewCandidateSet(inputs...))

	if !ok {
		t.Fatalf("Failed to resolve jaccard")
	}

	found := false

	for _, i := range inputs {

		if i == e {
			found = true
			break
		}
	}

	if !found {
		t.Fatalf("Expected jaccard resolver to return one of its inputs, got %s", e)
	}

	if e == inputs[4] {
		t.Fatalf("Did not expect the isolated candidate to win")
	}
}

func TestJaccardCompatibility(t *testing.T) {

	r := &JaccardResolver{
		SmallSetResolver: &SmallSetResolver{ScoreDifference: DEFAULT_SCORE_DIFFERENCE},
		DegenerateBonus:  DEFAULT_DEGENERATE_BONUS,
	}

	area := location.NewGeoExtent(0, 0, 10, 10, 1.0)
	inside := location.NewPointExtent(5, 5, 1.0)
	outside := location.NewPointExtent(50, 50, 1.0)

	if c := r.compatibility(area, inside); c != DEFAULT_DEGENERATE_BONUS {
		t.Fatalf("Unexpected compatibility for contained point, %f", c)
	}

	if c := r.compatibility(inside, area); c != DEFAULT_DEGENERATE_BONUS {
		t.Fatalf("Unexpected compatibility for contained point (reversed), %f", c)
	}

	if c := r.compatibility(area, outside); c != 0.0 {
		t.Fatalf("Unexpected compatibility for disjoint point, %f", c)
	}

	if c := r.compatibility(area, area); math.Abs(c-1.0) > 1e-9 {
		t.Fatalf("Unexpected compatibility for identical extents, %f", c)
	}
}

func TestHeatmapResolver(t *testing.T) {

	ctx := context.Background()
	r := newTestResolver(t, "heatmap://")

	set := location.NewCandidateSet(
		location.NewGeoExtent(0, 0, 10, 10, 0.9),
		location.NewGeoExtent(5, 5, 15, 15, 0.8),
		location.NewGeoExtent(100, 50, 101, 51, 0.1),
	)

	e, ok := r.Resolve(ctx, set)

	if !ok {
		t.Fatalf("Failed to resolve heatmap")
	}

	expected := location.NewGeoExtent(0, 0, 15, 15, 0.0)

	if !e.Equal(expected) {
		t.Fatalf("Expected %s, got %s", expected, e)
	}

	if math.Abs(e.Probability-0.85) > 1e-9 {
		t.Fatalf("Unexpected heatmap probability %f", e.Probability)
	}
}

func TestHeatmapResolveAxis(t *testing.T) {

	intervals := []interval{
		{min: 0, max: 10, score: 0.2},
		{min: 5, max: 15, score: 0.2},
		{min: 40, max: 50, score: 0.2},
	}

	min, max, ok := resolveAxis(intervals, 0.5)

	if !ok {
		t.Fatalf("Failed to resolve axis")
	}

	if min != 5 || max != 10 {
		t.Fatalf("Unexpected axis range %f-%f", min, max)
	}

	_, _, ok = resolveAxis(intervals[2:], 0.5)

	if ok {
		t.Fatalf("Expected a single weak interval not to resolve")
	}
}
