package geometry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"
	"github.com/tidwall/gjson"
	"github.com/whosonfirst/go-reader/v2"
)

func TestDeriveBound(t *testing.T) {

	tests := map[string]orb.Bound{
		// geom:bbox property
		"../fixtures/whosonfirst/data/856/327/85/85632785.geojson": orb.Bound{Min: orb.Point{9.48, 46.43}, Max: orb.Point{16.98, 49.04}},
		// geometry
		"../fixtures/whosonfirst/data/856/331/11/85633111.geojson": orb.Bound{Min: orb.Point{5.99, 47.30}, Max: orb.Point{15.02, 54.98}},
	}

	for path, expected := range tests {

		body, err := os.ReadFile(path)

		if err != nil {
			t.Fatalf("Failed to read %s, %v", path, err)
		}

		b, err := DeriveBound(body)

		if err != nil {
			t.Fatalf("Failed to derive bound for %s, %v", path, err)
		}

		if !b.Equal(expected) {
			t.Fatalf("Unexpected bound for %s: %v", path, b)
		}
	}
}

func TestDeriveBoundsFromIds(t *testing.T) {

	ctx := context.Background()

	abs_path, err := filepath.Abs("../fixtures/whosonfirst/data")

	if err != nil {
		t.Fatalf("Failed to derive absolute path, %v", err)
	}

	r, err := reader.NewReader(ctx, fmt.Sprintf("fs://%s", abs_path))

	if err != nil {
		t.Fatalf("Failed to create reader, %v", err)
	}

	bounds, err := DeriveBoundsFromIds(ctx, r, 85632785, 85633111, 101748113)

	if err != nil {
		t.Fatalf("Failed to derive bounds, %v", err)
	}

	if len(bounds) != 3 {
		t.Fatalf("Expected 3 bounds, got %d", len(bounds))
	}

	vienna := bounds[101748113]

	if !vienna.Contains(orb.Point{16.37, 48.21}) {
		t.Fatalf("Unexpected bounds for Vienna, %v", vienna)
	}

	_, err = DeriveBoundsFromIds(ctx, r, 1234)

	if err == nil {
		t.Fatalf("Expected missing record to fail")
	}
}

func TestLoadFromIds(t *testing.T) {

	ctx := context.Background()

	abs_path, err := filepath.Abs("../fixtures/whosonfirst/data")

	if err != nil {
		t.Fatalf("Failed to derive absolute path, %v", err)
	}

	r, err := reader.NewReader(ctx, fmt.Sprintf("fs://%s", abs_path))

	if err != nil {
		t.Fatalf("Failed to create reader, %v", err)
	}

	derive_name := func(id int64, body []byte) (string, error) {
		return gjson.GetBytes(body, "properties.wof:name").String(), nil
	}

	names, err := LoadFromIds(ctx, r, derive_name, 85632785, 101748113)

	if err != nil {
		t.Fatalf("Failed to load names, %v", err)
	}

	expected := map[int64]string{
		85632785:  "Austria",
		101748113: "Vienna",
	}

	if diff := cmp.Diff(expected, names); diff != "" {
		t.Fatalf("Unexpected names (-want +got):\n%s", diff)
	}

	derive_fail := func(id int64, body []byte) (string, error) {
		return "", fmt.Errorf("Unsupported record")
	}

	_, err = LoadFromIds(ctx, r, derive_fail, 85632785)

	if err == nil {
		t.Fatalf("Expected derive error to be returned")
	}
}

func TestParseBBox(t *testing.T) {

	_, err := parseBBox("1,2,3")

	if err == nil {
		t.Fatalf("Expected short bbox to fail")
	}

	b, err := parseBBox("-1.5, 2, 3, 4.25")

	if err != nil {
		t.Fatalf("Failed to parse bbox, %v", err)
	}

	if b.Min.X() != -1.5 || b.Max.Y() != 4.25 {
		t.Fatalf("Unexpected bbox %v", b)
	}
}
