package detector

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/sfomuseum/go-geoextent/location"
)

// DEFAULT_WORLDMAP_THRESHOLD is the default world map probability an image must reach.
const DEFAULT_WORLDMAP_THRESHOLD float64 = 0.5

// type WorldMapSource implements the `GraphicSignalSource` interface emitting the whole world when a
// `classifier.Classifier` thinks an image is a map of the world.
type WorldMapSource struct {
	GraphicSignalSource
	services  *Services
	threshold float64
}

func init() {

	ctx := context.Background()

	err := RegisterGraphicSignalSource(ctx, "worldmap", NewWorldMapSource)

	if err != nil {
		panic(err)
	}
}

// NewWorldMapSource returns a new `WorldMapSource` instance. 'uri' takes the form of:
//
//	worldmap://?threshold={FLOAT}
//
// 'services' must provide a classifier.
func NewWorldMapSource(ctx context.Context, uri string, services *Services) (GraphicSignalSource, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	if services.Classifier == nil {
		return nil, fmt.Errorf("World map source requires a classifier")
	}

	s := &WorldMapSource{
		services:  services,
		threshold: DEFAULT_WORLDMAP_THRESHOLD,
	}

	q := u.Query()

	if q.Has("threshold") {

		v, err := strconv.ParseFloat(q.Get("threshold"), 64)

		if err != nil {
			return nil, fmt.Errorf("Failed to parse ?threshold= parameter, %w", err)
		}

		s.threshold = v
	}

	return s, nil
}

func (s *WorldMapSource) ExtentsFromImage(ctx context.Context, im image.Image) ([]*location.GeoExtent, error) {

	extents := make([]*location.GeoExtent, 0)

	p, err := s.services.Classifier.WorldMapProbability(ctx, im)

	if err != nil {
		return nil, fmt.Errorf("Failed to derive world map probability, %w", err)
	}

	slog.Debug("World map probability", "probability", p, "threshold", s.threshold)

	if p < s.threshold {
		return extents, nil
	}

	e := location.NewGeoExtent(-180.0, -90.0, 180.0, 90.0, p)
	e.Source = "worldmap"

	extents = append(extents, e)
	return extents, nil
}
