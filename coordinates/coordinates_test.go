package coordinates

import (
	"math"
	"testing"
)

const tolerance float64 = 0.0001

func TestParseLatitudeOnly(t *testing.T) {

	coords := Parse("12° N")

	if len(coords) != 1 {
		t.Fatalf("Expected 1 coordinate, got %d", len(coords))
	}

	c := coords[0]

	if c.Latitude == nil || *c.Latitude != 12.0 {
		t.Fatalf("Expected latitude 12, got %v", c)
	}

	if c.Longitude != nil {
		t.Fatalf("Expected no longitude, got %f", *c.Longitude)
	}

	if c.Format != WGS84 {
		t.Fatalf("Unexpected format %s", c.Format)
	}
}

func TestParseDegreesMinutes(t *testing.T) {

	coords := Parse("90° 30' W")

	if len(coords) != 1 {
		t.Fatalf("Expected 1 coordinate, got %d", len(coords))
	}

	c := coords[0]

	if c.Longitude == nil || *c.Longitude != -90.5 {
		t.Fatalf("Expected longitude -90.5, got %v", c)
	}

	if c.Latitude != nil {
		t.Fatalf("Expected no latitude")
	}
}

func TestParseDegreesMinutesSeconds(t *testing.T) {

	coords := Parse(`The site is located at 37° 37' 12" N, 122° 22' 30" W near the bay.`)

	if len(coords) != 2 {
		t.Fatalf("Expected 2 coordinates, got %d", len(coords))
	}

	if coords[0].Latitude == nil || math.Abs(*coords[0].Latitude-37.62) > tolerance {
		t.Fatalf("Unexpected latitude %v", coords[0])
	}

	if coords[1].Longitude == nil || math.Abs(*coords[1].Longitude-(-122.375)) > tolerance {
		t.Fatalf("Unexpected longitude %v", coords[1])
	}

	if coords[0].Confidence != confidence_dms {
		t.Fatalf("Expected DMS confidence, got %f", coords[0].Confidence)
	}
}

func TestParseAmbiguousRejected(t *testing.T) {

	coords := Parse("This is a dumb test for coordinates like 12°N.")

	if len(coords) != 0 {
		t.Fatalf("Expected no coordinates, got %v", coords)
	}
}

func TestParseSentenceEnd(t *testing.T) {

	points := map[string][2]float64{
		"The station lies at 17T 630084 4833438.": {43.642567, -79.387139},
		"The gauge is at NY 9545 9776. It was installed in 1998.": {55.2739283, -2.0716217},
		"Samples came from 4QFJ 12345 67890.": {21.4097967, -157.9160812},
	}

	for str, expected := range points {

		coords := Parse(str)

		if len(coords) != 1 {
			t.Fatalf("Expected 1 coordinate for '%s', got %d", str, len(coords))
		}

		assertPoint(t, coords[0], expected[0], expected[1])
	}

	latitudes := map[string]float64{
		`The station lies at 45° 30' 15" N.`: 45.504167,
		"The station lies at 45° 30' N.":     45.5,
		"The station lies at 45°30'N.":       45.5,
		"The station lies at 12° N.":         12.0,
	}

	for str, expected := range latitudes {

		coords := Parse(str)

		if len(coords) != 1 {
			t.Fatalf("Expected 1 coordinate for '%s', got %d", str, len(coords))
		}

		if coords[0].Latitude == nil || math.Abs(*coords[0].Latitude-expected) > tolerance {
			t.Fatalf("Unexpected latitude for '%s': %v", str, coords[0])
		}
	}

	rejected := []string{
		"This is a dumb test for coordinates like 12°N.",
		"Recorded at 12°N.5 metres",
		"Recorded at 17T 630084 4833438.x",
	}

	for _, str := range rejected {

		coords := Parse(str)

		if len(coords) != 0 {
			t.Fatalf("Expected no coordinates for '%s', got %v", str, coords)
		}
	}
}

func TestParseInvalidValuesDiscarded(t *testing.T) {

	tests := []string{
		"95° N",
		"190° E",
		"45° 75' N",
	}

	for _, str := range tests {

		coords := Parse(str)

		if len(coords) != 0 {
			t.Fatalf("Expected '%s' to be discarded, got %v", str, coords)
		}
	}
}

func TestParseUTM(t *testing.T) {

	coords := Parse("17T 630084 4833438")

	if len(coords) != 1 {
		t.Fatalf("Expected 1 coordinate, got %d", len(coords))
	}

	assertPoint(t, coords[0], 43.642567, -79.387139)

	if coords[0].Format != UTM {
		t.Fatalf("Unexpected format %s", coords[0].Format)
	}
}

func TestParseUTMInvalidDiscarded(t *testing.T) {

	// Northing is well outside band T
	coords := Parse("17T 630084 1833438")

	if len(coords) != 0 {
		t.Fatalf("Expected invalid UTM position to be discarded, got %v", coords)
	}
}

func TestParseOSGB(t *testing.T) {

	tests := []string{
		"NY 9545 9776",
		"NY95459776",
	}

	for _, str := range tests {

		coords := Parse(str)

		if len(coords) != 1 {
			t.Fatalf("Expected 1 coordinate for '%s', got %d", str, len(coords))
		}

		assertPoint(t, coords[0], 55.2739283, -2.0716217)

		if coords[0].Format != OSGB {
			t.Fatalf("Unexpected format %s", coords[0].Format)
		}
	}
}

func TestParseMGRS(t *testing.T) {

	coords := Parse("4QFJ 12345 67890")

	if len(coords) != 1 {
		t.Fatalf("Expected 1 coordinate, got %d", len(coords))
	}

	assertPoint(t, coords[0], 21.4097967, -157.9160812)

	if coords[0].Format != MGRS {
		t.Fatalf("Unexpected format %s", coords[0].Format)
	}
}

func TestParseSpans(t *testing.T) {

	text := "Samples were taken at 17T 630084 4833438 and at 45°N."
	coords := Parse(text)

	if len(coords) != 1 {
		t.Fatalf("Expected 1 coordinate, got %d", len(coords))
	}

	c := coords[0]

	if text[c.Start:c.End] != "17T 630084 4833438" || c.Text != "17T 630084 4833438" {
		t.Fatalf("Unexpected span '%s'", text[c.Start:c.End])
	}
}

func TestParseSimplified(t *testing.T) {

	p := NewParser(&ParserOptions{Simplified: true})

	tests := map[string]float64{
		"120°":   120.0,
		"-45.5°": -45.5,
		"35.5":   35.5,
		"20":     20.0,
	}

	for str, expected := range tests {

		coords := p.Parse(str)

		if len(coords) != 1 {
			t.Fatalf("Expected 1 coordinate for '%s', got %d", str, len(coords))
		}

		c := coords[0]

		if !c.UnknownOrientation || c.Orientation() != UNKNOWN_ORIENTATION {
			t.Fatalf("Expected unknown orientation for '%s'", str)
		}

		if c.Value != expected {
			t.Fatalf("Expected %f for '%s', got %f", expected, str, c.Value)
		}

		if c.Confidence > 0.5 || c.Confidence < 0.01 {
			t.Fatalf("Unexpected confidence %f for '%s'", c.Confidence, str)
		}
	}

	// The strict grammar still wins for suffixed values
	coords := p.Parse("30° E")

	if len(coords) != 1 || coords[0].Longitude == nil || coords[0].UnknownOrientation {
		t.Fatalf("Expected a single longitude, got %v", coords)
	}

	if len(Parse("120°")) != 0 {
		t.Fatalf("Expected the strict grammar to reject bare degrees")
	}
}

func TestSplitGridDigits(t *testing.T) {

	tests := map[string][2]string{
		"9545 9776":  {"9545", "9776"},
		"95459776":   {"9545", "9776"},
		"1234567890": {"12345", "67890"},
	}

	for digits, expected := range tests {

		e, n, ok := splitGridDigits(digits)

		if !ok || e != expected[0] || n != expected[1] {
			t.Fatalf("Unexpected split for '%s': %s %s", digits, e, n)
		}
	}

	for _, digits := range []string{"954597761", "954 9776"} {

		_, _, ok := splitGridDigits(digits)

		if ok {
			t.Fatalf("Expected '%s' to be rejected", digits)
		}
	}
}

func assertPoint(t *testing.T, c *ParsedCoordinate, lat float64, lon float64) {

	t.Helper()

	if !c.IsPoint() {
		t.Fatalf("Expected a point, got %v", c)
	}

	if math.Abs(*c.Latitude-lat) > tolerance {
		t.Fatalf("Expected latitude %f, got %f", lat, *c.Latitude)
	}

	if math.Abs(*c.Longitude-lon) > tolerance {
		t.Fatalf("Expected longitude %f, got %f", lon, *c.Longitude)
	}
}
