package detector

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/sfomuseum/go-geoextent/coordinates"
	"github.com/sfomuseum/go-geoextent/geometry"
	"github.com/sfomuseum/go-geoextent/location"
	"github.com/sfomuseum/go-geoextent/outlier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// type CoordinatesSource implements the `TextSignalSource` interface for coordinate notations in text.
// Each coordinate pair becomes a point extent and, when the text yields at least two distinct values on
// both axes, the box around all of them becomes an additional extent.
type CoordinatesSource struct {
	TextSignalSource
	parser *coordinates.Parser
}

func init() {

	ctx := context.Background()

	err := RegisterTextSignalSource(ctx, "coordinates", NewCoordinatesSource)

	if err != nil {
		panic(err)
	}
}

// NewCoordinatesSource returns a new `CoordinatesSource` instance. 'uri' takes the form of:
//
//	coordinates://?simplified={BOOLEAN}
//
// Where 'simplified' enables the looser grammar for bare and suffixless degree values.
func NewCoordinatesSource(ctx context.Context, uri string, services *Services) (TextSignalSource, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	opts := &coordinates.ParserOptions{}

	q := u.Query()

	if q.Has("simplified") {

		v, err := strconv.ParseBool(q.Get("simplified"))

		if err != nil {
			return nil, fmt.Errorf("Failed to parse ?simplified= parameter, %w", err)
		}

		opts.Simplified = v
	}

	s := &CoordinatesSource{
		parser: coordinates.NewParser(opts),
	}

	return s, nil
}

func (s *CoordinatesSource) ExtentsFromText(ctx context.Context, text string) ([]*location.GeoExtent, error) {

	parsed := s.parser.Parse(text)
	return ExtentsFromCoordinates(parsed), nil
}

// ExtentsFromCoordinates returns the point and bounding box extents for 'parsed' after latitude and
// longitude outliers have been removed. Coordinates of unknown orientation are ignored.
func ExtentsFromCoordinates(parsed []*coordinates.ParsedCoordinate) []*location.GeoExtent {

	extents := make([]*location.GeoExtent, 0)

	lats := make([]float64, 0)
	lons := make([]float64, 0)

	for _, c := range parsed {

		if c.Latitude != nil {
			lats = append(lats, *c.Latitude)
		}

		if c.Longitude != nil {
			lons = append(lons, *c.Longitude)
		}
	}

	rejected_lats := toLookup(outlier.Outliers(lats, outlier.LATITUDE))
	rejected_lons := toLookup(outlier.Outliers(lons, outlier.LONGITUDE))

	points := make([]orb.Point, 0)
	confidence := make(map[orb.Point]float64)

	kept_lats := make([]float64, 0)
	kept_lons := make([]float64, 0)
	kept_confidence := make([]float64, 0)

	for _, c := range parsed {

		if c.Latitude != nil && rejected_lats[*c.Latitude] {
			slog.Debug("Skip outlying latitude", "text", c.Text)
			continue
		}

		if c.Longitude != nil && rejected_lons[*c.Longitude] {
			slog.Debug("Skip outlying longitude", "text", c.Text)
			continue
		}

		switch c.Orientation() {
		case coordinates.BOTH:

			pt := orb.Point{*c.Longitude, *c.Latitude}
			points = append(points, pt)
			confidence[pt] = max(confidence[pt], c.Confidence)

			kept_lats = append(kept_lats, *c.Latitude)
			kept_lons = append(kept_lons, *c.Longitude)

		case coordinates.LATITUDE:
			kept_lats = append(kept_lats, *c.Latitude)
		case coordinates.LONGITUDE:
			kept_lons = append(kept_lons, *c.Longitude)
		default:
			continue
		}

		kept_confidence = append(kept_confidence, c.Confidence)
	}

	for _, pt := range geometry.DeriveMultiPoint(points...) {
		e := location.NewPointExtent(pt.X(), pt.Y(), confidence[pt])
		e.Source = "coordinates"
		extents = append(extents, e)
	}

	if distinct(kept_lats) >= 2 && distinct(kept_lons) >= 2 {

		west, east := floats.Min(kept_lons), floats.Max(kept_lons)
		south, north := floats.Min(kept_lats), floats.Max(kept_lats)

		e := location.NewGeoExtent(west, south, east, north, stat.Mean(kept_confidence, nil))
		e.Source = "coordinates#bbox"
		extents = append(extents, e)
	}

	return extents
}

func toLookup(values []float64) map[float64]bool {

	lookup := make(map[float64]bool)

	for _, v := range values {
		lookup[v] = true
	}

	return lookup
}

func distinct(values []float64) int {
	return len(toLookup(values))
}
