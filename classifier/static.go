package classifier

import (
	"context"
	"fmt"
	"image"
	"net/url"
	"strconv"
)

// type StaticClassifier implements the `Classifier` interface returning the same probabilities for every image.
type StaticClassifier struct {
	Classifier
	map_probability   float64
	world_probability float64
}

func init() {

	ctx := context.Background()

	err := RegisterClassifier(ctx, "static", NewStaticClassifier)

	if err != nil {
		panic(err)
	}
}

// NewStaticClassifier returns a new `StaticClassifier` instance. 'uri' takes the form of:
//
//	static://?map={FLOAT}&world={FLOAT}
//
// Where 'map' defaults to 1.0 and 'world' to 0.0.
func NewStaticClassifier(ctx context.Context, uri string) (Classifier, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	q := u.Query()

	c := &StaticClassifier{
		map_probability:   1.0,
		world_probability: 0.0,
	}

	if q.Has("map") {

		v, err := strconv.ParseFloat(q.Get("map"), 64)

		if err != nil {
			return nil, fmt.Errorf("Failed to parse ?map= parameter, %w", err)
		}

		c.map_probability = clamp(v)
	}

	if q.Has("world") {

		v, err := strconv.ParseFloat(q.Get("world"), 64)

		if err != nil {
			return nil, fmt.Errorf("Failed to parse ?world= parameter, %w", err)
		}

		c.world_probability = clamp(v)
	}

	return c, nil
}

func (c *StaticClassifier) MapProbability(ctx context.Context, im image.Image) (float64, error) {
	return c.map_probability, nil
}

func (c *StaticClassifier) WorldMapProbability(ctx context.Context, im image.Image) (float64, error) {
	return c.world_probability, nil
}
