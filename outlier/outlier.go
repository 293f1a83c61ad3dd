// Package outlier rejects implausible coordinate values using geodesic distance statistics.
package outlier

import (
	"log/slog"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"gonum.org/v1/gonum/stat"
)

// type Axis identifies whether a list of values are longitudes or latitudes.
type Axis int

const (
	LONGITUDE Axis = iota
	LATITUDE
)

// MIN_DISTINCT_VALUES is the number of distinct values required before any value is rejected.
const MIN_DISTINCT_VALUES int = 3

// STDDEV_FACTOR is the number of standard deviations around the median distance that values must fall within.
const STDDEV_FACTOR float64 = 2.0

// Outliers returns the distinct members of 'values' whose geodesic distance from the origin (with the
// other axis held at zero) falls outside the median distance ± 2σ. 'values' are assumed to all be
// longitudes or all latitudes, according to 'axis'. Fewer than MIN_DISTINCT_VALUES distinct values
// yield no outliers.
func Outliers(values []float64, axis Axis) []float64 {

	distinct := dedupe(values)
	rejected := make([]float64, 0)

	if len(distinct) < MIN_DISTINCT_VALUES {
		return rejected
	}

	distances := make([]float64, len(distinct))

	for idx, v := range distinct {
		distances[idx] = distanceFromOrigin(v, axis)
	}

	median := median(distances)
	sigma := stat.PopStdDev(distances, nil)

	lower := median - STDDEV_FACTOR*sigma
	upper := median + STDDEV_FACTOR*sigma

	for idx, d := range distances {

		if d < lower || d > upper {
			rejected = append(rejected, distinct[idx])
		}
	}

	if len(rejected) > 0 {
		slog.Debug("Reject outliers", "axis", axis, "rejected", rejected, "median", median, "sigma", sigma)
	}

	return rejected
}

// Filter returns the members of 'values' which are not outliers followed by the (distinct) outliers.
// The order of the kept values is preserved.
func Filter(values []float64, axis Axis) ([]float64, []float64) {

	rejected := Outliers(values, axis)

	is_rejected := make(map[float64]bool)

	for _, v := range rejected {
		is_rejected[v] = true
	}

	kept := make([]float64, 0)

	for _, v := range values {

		if !is_rejected[v] {
			kept = append(kept, v)
		}
	}

	return kept, rejected
}

func distanceFromOrigin(v float64, axis Axis) float64 {

	origin := orb.Point{0.0, 0.0}
	pt := orb.Point{v, 0.0}

	if axis == LATITUDE {
		pt = orb.Point{0.0, v}
	}

	return geo.DistanceHaversine(origin, pt)
}

func dedupe(values []float64) []float64 {

	seen := make(map[float64]bool)
	distinct := make([]float64, 0)

	for _, v := range values {

		if seen[v] {
			continue
		}

		seen[v] = true
		distinct = append(distinct, v)
	}

	return distinct
}

func median(values []float64) float64 {

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	count := len(sorted)

	if count == 0 {
		return 0.0
	}

	if count%2 == 1 {
		return sorted[count/2]
	}

	return (sorted[count/2-1] + sorted[count/2]) / 2.0
}
