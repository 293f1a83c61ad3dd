// Package location provides types for representing uncertain, weighted geographic extents and
// ordered sets of candidate extents.
package location

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// EQUALITY_PRECISION is the number of decimal places bounds are rounded to when comparing extents (~11m).
const EQUALITY_PRECISION int = 4

// DEGENERATE_PENALTY is the factor applied to the score of point and line extents by ScoreWithPenalty.
const DEGENERATE_PENALTY float64 = 0.5

// type GeoExtent is a bounding box with a probability and a weight. Bounds are immutable once
// constructed; probability and weight may be updated by resolvers.
type GeoExtent struct {
	bound orb.Bound
	// Probability is the likelihood, in the range 0-1, that the extent is correct.
	Probability float64
	// Weight is the weight, in the range 0-1, of the detector (or scope) that produced the extent.
	Weight float64
	// Source is an optional label identifying the signal source that produced the extent.
	Source string
}

// NewGeoExtent returns a new `GeoExtent` for the bounds defined by 'west', 'south', 'east' and 'north'.
// If west > east or south > north the values are swapped. Weight defaults to 1.0.
func NewGeoExtent(west float64, south float64, east float64, north float64, probability float64) *GeoExtent {

	b := orb.Bound{
		Min: orb.Point{math.Min(west, east), math.Min(south, north)},
		Max: orb.Point{math.Max(west, east), math.Max(south, north)},
	}

	return NewGeoExtentFromBound(b, probability)
}

// NewGeoExtentFromBound returns a new `GeoExtent` for 'b'.
func NewGeoExtentFromBound(b orb.Bound, probability float64) *GeoExtent {

	e := &GeoExtent{
		bound:       b,
		Probability: clamp(probability),
		Weight:      1.0,
	}

	return e
}

// NewPointExtent returns a new degenerate `GeoExtent` for a single point.
func NewPointExtent(lon float64, lat float64, probability float64) *GeoExtent {
	return NewGeoExtent(lon, lat, lon, lat, probability)
}

// Bound returns the `orb.Bound` for 'e'.
func (e *GeoExtent) Bound() orb.Bound {
	return e.bound
}

func (e *GeoExtent) West() float64 {
	return e.bound.Min.X()
}

func (e *GeoExtent) East() float64 {
	return e.bound.Max.X()
}

func (e *GeoExtent) South() float64 {
	return e.bound.Min.Y()
}

func (e *GeoExtent) North() float64 {
	return e.bound.Max.Y()
}

// Score returns weight × probability.
func (e *GeoExtent) Score() float64 {
	return e.Weight * e.Probability
}

// ScoreWithPenalty returns Score discounted by DEGENERATE_PENALTY for extents with no area, since
// area-overlap metrics say nothing useful about points and lines.
func (e *GeoExtent) ScoreWithPenalty() float64 {

	if e.IsDegenerate() {
		return e.Score() * DEGENERATE_PENALTY
	}

	return e.Score()
}

// Width returns the east-west span of 'e' in degrees.
func (e *GeoExtent) Width() float64 {
	return e.East() - e.West()
}

// Height returns the north-south span of 'e' in degrees.
func (e *GeoExtent) Height() float64 {
	return e.North() - e.South()
}

// Area returns the planar area of 'e' in square degrees.
func (e *GeoExtent) Area() float64 {
	return e.Width() * e.Height()
}

// IsDegenerate reports whether 'e' has zero area (a point or a line).
func (e *GeoExtent) IsDegenerate() bool {
	return e.Width() == 0 || e.Height() == 0
}

// IsPoint reports whether 'e' has neither width nor height.
func (e *GeoExtent) IsPoint() bool {
	return e.Width() == 0 && e.Height() == 0
}

// Intersects reports whether 'e' and 'other' share at least one point (edges included).
func (e *GeoExtent) Intersects(other *GeoExtent) bool {
	return e.bound.Intersects(other.bound)
}

// Intersection returns the overlapping region of 'e' and 'other' and whether one exists.
func (e *GeoExtent) Intersection(other *GeoExtent) (orb.Bound, bool) {

	if !e.Intersects(other) {
		return orb.Bound{}, false
	}

	b := orb.Bound{
		Min: orb.Point{math.Max(e.West(), other.West()), math.Max(e.South(), other.South())},
		Max: orb.Point{math.Min(e.East(), other.East()), math.Min(e.North(), other.North())},
	}

	return b, true
}

// Contains reports whether 'other' lies entirely inside 'e' (edges included).
func (e *GeoExtent) Contains(other *GeoExtent) bool {
	return e.bound.Contains(other.bound.Min) && e.bound.Contains(other.bound.Max)
}

// Union returns the smallest bound containing both 'e' and 'other'.
func (e *GeoExtent) Union(other *GeoExtent) orb.Bound {
	return e.bound.Union(other.bound)
}

// JaccardIndex returns the intersection-over-union ratio of 'e' and 'other'. Degenerate pairs
// (zero union area) return 1 when their bounds are equal and 0 otherwise.
func (e *GeoExtent) JaccardIndex(other *GeoExtent) float64 {

	inter, ok := e.Intersection(other)

	if !ok {
		return 0.0
	}

	inter_area := (inter.Max.X() - inter.Min.X()) * (inter.Max.Y() - inter.Min.Y())
	union_area := e.Area() + other.Area() - inter_area

	if union_area <= 0 {

		if e.Equal(other) {
			return 1.0
		}

		return 0.0
	}

	return inter_area / union_area
}

// Equal reports whether the bounds of 'e' and 'other' are the same once rounded to EQUALITY_PRECISION
// decimal places. Probability and weight are not compared.
func (e *GeoExtent) Equal(other *GeoExtent) bool {

	if other == nil {
		return false
	}

	a := e.roundedBounds()
	b := other.roundedBounds()

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// WithBound returns a copy of 'e' with the bounds replaced by 'b'.
func (e *GeoExtent) WithBound(b orb.Bound) *GeoExtent {

	new_e := e.Clone()
	new_e.bound = b

	return new_e
}

// Clone returns a copy of 'e'.
func (e *GeoExtent) Clone() *GeoExtent {

	new_e := *e
	return &new_e
}

func (e *GeoExtent) String() string {
	return fmt.Sprintf("[%.6f, %.6f, %.6f, %.6f] p=%.3f w=%.3f", e.West(), e.South(), e.East(), e.North(), e.Probability, e.Weight)
}

func (e *GeoExtent) roundedBounds() [4]float64 {

	return [4]float64{
		round(e.West()),
		round(e.South()),
		round(e.East()),
		round(e.North()),
	}
}

func round(v float64) float64 {
	p := math.Pow(10, float64(EQUALITY_PRECISION))
	return math.Round(v*p) / p
}

func clamp(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}
