package feature

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sfomuseum/go-geoextent/location"
	"github.com/sfomuseum/go-geoextent/strategy"
	"github.com/tidwall/gjson"
)

func TestFormatExtentFeature(t *testing.T) {

	e := location.NewGeoExtent(10.0, 46.0, 14.0, 50.0, 0.8)
	e.Source = "coordinates#bbox"

	f := NewExtentFeature(1234567, e)

	body, err := FormatExtentFeature(f)

	if err != nil {
		t.Fatalf("Failed to format feature, %v", err)
	}

	if gjson.GetBytes(body, "bbox").Exists() {
		t.Fatalf("Formatted feature has a bbox property")
	}

	if gjson.GetBytes(body, "geometry.type").String() != "Polygon" {
		t.Fatalf("Unexpected geometry type: %s", gjson.GetBytes(body, "geometry.type").String())
	}

	tests := map[string]float64{
		"properties.geoextent:probability": 0.8,
		"properties.lbl:latitude":          48.0,
		"properties.lbl:longitude":         12.0,
		"properties.wof:id":                1234567,
	}

	for path, expected := range tests {

		v := gjson.GetBytes(body, path).Float()

		if math.Abs(v-expected) > 0.000001 {
			t.Fatalf("Unexpected value for %s: %f (expected %f)", path, v, expected)
		}
	}

	bbox := gjson.GetBytes(body, "properties.geom:bbox").String()

	if bbox != "10.000000,46.000000,14.000000,50.000000" {
		t.Fatalf("Unexpected geom:bbox: %s", bbox)
	}
}

func TestPointExtentFeature(t *testing.T) {

	e := location.NewPointExtent(-79.387139, 43.642567, 1.0)
	f := NewExtentFeature(1, e)

	body, err := FormatExtentFeature(f)

	if err != nil {
		t.Fatalf("Failed to format feature, %v", err)
	}

	if gjson.GetBytes(body, "geometry.type").String() != "Point" {
		t.Fatalf("Unexpected geometry type: %s", gjson.GetBytes(body, "geometry.type").String())
	}

	if math.Abs(gjson.GetBytes(body, "properties.lbl:latitude").Float()-43.642567) > 0.000001 {
		t.Fatalf("Unexpected label latitude")
	}
}

func TestDocumentId(t *testing.T) {

	if DocumentId("1234567") != 1234567 {
		t.Fatalf("Expected numeric identifier to be used as-is")
	}

	a := DocumentId("austria-germany")

	if a <= 0 {
		t.Fatalf("Expected positive identifier, got %d", a)
	}

	if a != DocumentId("austria-germany") {
		t.Fatalf("Expected identifiers to be stable")
	}

	if a == DocumentId("austria-germany-2") {
		t.Fatalf("Expected distinct identifiers")
	}
}

func TestFeaturesFromResult(t *testing.T) {

	rsp := &strategy.Result{
		DocumentId: "1234567",
		Resolver:   "union://",
		Extent:     location.NewGeoExtent(5.87, 46.37, 17.16, 55.06, 0.9),
		Figures: []*strategy.FigureResult{
			&strategy.FigureResult{
				FigureId: "Fig 1",
				Extent:   location.NewGeoExtent(9.53, 46.37, 17.16, 49.02, 0.9),
			},
			&strategy.FigureResult{
				FigureId: "fig-2",
			},
		},
	}

	features, err := FeaturesFromResult(rsp)

	if err != nil {
		t.Fatalf("Failed to derive features, %v", err)
	}

	paths := make([]string, len(features))

	for i, kf := range features {
		paths[i] = kf.Path
	}

	expected := []string{
		"123/456/7/1234567.geojson",
		"123/456/7/1234567-alt-geoextent-fig_1.geojson",
	}

	if diff := cmp.Diff(expected, paths); diff != "" {
		t.Fatalf("Unexpected paths (-want +got):\n%s", diff)
	}

	props := features[1].Feature.Properties

	if props["geoextent:scope"] != "figure" || props["geoextent:figure_id"] != "Fig 1" {
		t.Fatalf("Unexpected figure properties: %v", props)
	}

	if props["src:alt_label"] != "geoextent-fig_1" {
		t.Fatalf("Unexpected alt label: %v", props["src:alt_label"])
	}

	if features[0].Feature.Properties["geoextent:resolver"] != "union://" {
		t.Fatalf("Unexpected resolver property")
	}
}

func TestFeaturesFromResultDistinctPaths(t *testing.T) {

	rsp := &strategy.Result{
		DocumentId: "1234567",
		Resolver:   "union://",
	}

	for _, id := range []string{"Fig 1", "fig-1", "", "?", "figure"} {

		fr := &strategy.FigureResult{
			FigureId: id,
			Extent:   location.NewGeoExtent(9.53, 46.37, 17.16, 49.02, 0.9),
		}

		rsp.Figures = append(rsp.Figures, fr)
	}

	features, err := FeaturesFromResult(rsp)

	if err != nil {
		t.Fatalf("Failed to derive features, %v", err)
	}

	labels := make([]string, len(features))

	for i, kf := range features {
		labels[i] = kf.Feature.Properties["src:alt_label"].(string)
	}

	expected := []string{
		"geoextent-fig_1",
		"geoextent-fig_1_2",
		"geoextent-figure",
		"geoextent-figure_2",
		"geoextent-figure_3",
	}

	if diff := cmp.Diff(expected, labels); diff != "" {
		t.Fatalf("Unexpected labels (-want +got):\n%s", diff)
	}

	paths := make(map[string]bool)

	for _, kf := range features {

		if paths[kf.Path] {
			t.Fatalf("Path %s written more than once", kf.Path)
		}

		paths[kf.Path] = true
	}
}
