package outlier

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOutliersAntimeridian(t *testing.T) {

	values := []float64{-179.0, -178.0, 178.0, 179.0, 0.0}

	kept, rejected := Filter(values, LONGITUDE)

	if diff := cmp.Diff([]float64{0.0}, rejected); diff != "" {
		t.Fatalf("Unexpected outliers (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]float64{-179.0, -178.0, 178.0, 179.0}, kept); diff != "" {
		t.Fatalf("Unexpected kept values (-want +got):\n%s", diff)
	}

	// Filtering the kept values again removes nothing

	again, rejected_again := Filter(kept, LONGITUDE)

	if len(rejected_again) != 0 {
		t.Fatalf("Expected no outliers on second pass, got %v", rejected_again)
	}

	if diff := cmp.Diff(kept, again); diff != "" {
		t.Fatalf("Unexpected kept values on second pass (-want +got):\n%s", diff)
	}
}

func TestOutliersNone(t *testing.T) {

	values := []float64{35.5, 36.0, 36.5, 37.0, 38.0}

	for _, axis := range []Axis{LONGITUDE, LATITUDE} {

		rejected := Outliers(values, axis)

		if len(rejected) != 0 {
			t.Fatalf("Expected no outliers for axis %d, got %v", axis, rejected)
		}
	}
}

func TestOutliersTooFewValues(t *testing.T) {

	// Only two distinct values
	values := []float64{10.0, 10.0, 10.0, 170.0}

	rejected := Outliers(values, LONGITUDE)

	if len(rejected) != 0 {
		t.Fatalf("Expected no outliers, got %v", rejected)
	}
}

func TestMedian(t *testing.T) {

	tests := map[float64][]float64{
		2.0: {3.0, 1.0, 2.0},
		2.5: {4.0, 1.0, 3.0, 2.0},
		0.0: {},
	}

	for expected, values := range tests {

		m := median(values)

		if m != expected {
			t.Fatalf("Expected median %f for %v, got %f", expected, values, m)
		}
	}
}
