package classifier

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// type HTTPClassifier implements the `Classifier` interface by posting images, encoded as PNG, to a remote
// service which responds with a JSON document of the form:
//
//	{"map": 0.93, "world_map": 0.02}
type HTTPClassifier struct {
	Classifier
	endpoint string
	client   *http.Client
}

func init() {

	ctx := context.Background()

	for _, scheme := range []string{"http", "https"} {

		err := RegisterClassifier(ctx, scheme, NewHTTPClassifier)

		if err != nil {
			panic(err)
		}
	}
}

// NewHTTPClassifier returns a new `HTTPClassifier` instance for the endpoint 'uri'.
func NewHTTPClassifier(ctx context.Context, uri string) (Classifier, error) {

	c := &HTTPClassifier{
		endpoint: uri,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}

	return c, nil
}

func (c *HTTPClassifier) MapProbability(ctx context.Context, im image.Image) (float64, error) {
	return c.classify(ctx, im, "map")
}

func (c *HTTPClassifier) WorldMapProbability(ctx context.Context, im image.Image) (float64, error) {
	return c.classify(ctx, im, "world_map")
}

func (c *HTTPClassifier) classify(ctx context.Context, im image.Image, path string) (float64, error) {

	var buf bytes.Buffer

	err := png.Encode(&buf, im)

	if err != nil {
		return 0.0, fmt.Errorf("Failed to encode image, %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)

	if err != nil {
		return 0.0, fmt.Errorf("Failed to create request, %w", err)
	}

	req.Header.Set("Content-Type", "image/png")

	rsp, err := c.client.Do(req)

	if err != nil {
		return 0.0, fmt.Errorf("Failed to classify image, %w", err)
	}

	defer rsp.Body.Close()

	body, err := io.ReadAll(rsp.Body)

	if err != nil {
		return 0.0, fmt.Errorf("Failed to read response, %w", err)
	}

	if rsp.StatusCode != http.StatusOK {
		return 0.0, fmt.Errorf("Classifier returned %d: %s", rsp.StatusCode, string(body))
	}

	r := gjson.GetBytes(body, path)

	if !r.Exists() {
		return 0.0, fmt.Errorf("Classifier response is missing '%s' property", path)
	}

	return clamp(r.Float()), nil
}
