package classifier

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStaticClassifier(t *testing.T) {

	ctx := context.Background()

	c, err := NewClassifier(ctx, "static://?map=0.8&world=1.5")

	if err != nil {
		t.Fatalf("Failed to create classifier, %v", err)
	}

	im := image.NewGray(image.Rect(0, 0, 10, 10))

	p, err := c.MapProbability(ctx, im)

	if err != nil {
		t.Fatalf("Failed to derive map probability, %v", err)
	}

	if p != 0.8 {
		t.Fatalf("Unexpected map probability %f", p)
	}

	w, err := c.WorldMapProbability(ctx, im)

	if err != nil {
		t.Fatalf("Failed to derive world map probability, %v", err)
	}

	if w != 1.0 {
		t.Fatalf("Expected world map probability to be clamped, got %f", w)
	}

	_, err = NewClassifier(ctx, "static://?map=yes")

	if err == nil {
		t.Fatalf("Expected invalid map parameter to fail")
	}
}

func TestHTTPClassifier(t *testing.T) {

	ctx := context.Background()

	handler := func(rsp http.ResponseWriter, req *http.Request) {

		body, _ := io.ReadAll(req.Body)

		if req.Header.Get("Content-Type") != "image/png" || len(body) == 0 {
			http.Error(rsp, "Bad request", http.StatusBadRequest)
			return
		}

		rsp.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(rsp, `{"map": 0.93, "world_map": 0.02}`)
	}

	s := httptest.NewServer(http.HandlerFunc(handler))
	defer s.Close()

	c, err := NewClassifier(ctx, s.URL)

	if err != nil {
		t.Fatalf("Failed to create classifier, %v", err)
	}

	im := image.NewGray(image.Rect(0, 0, 10, 10))

	p, err := c.MapProbability(ctx, im)

	if err != nil {
		t.Fatalf("Failed to derive map probability, %v", err)
	}

	if p != 0.93 {
		t.Fatalf("Unexpected map probability %f", p)
	}

	w, err := c.WorldMapProbability(ctx, im)

	if err != nil {
		t.Fatalf("Failed to derive world map probability, %v", err)
	}

	if w != 0.02 {
		t.Fatalf("Unexpected world map probability %f", w)
	}
}
