package gazetteer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/whosonfirst/go-reader/v2"
)

func TestCandidatesFromWhosOnFirst(t *testing.T) {

	rel_path := "../fixtures/whosonfirst/data/101/748/113/101748113.geojson"

	body, err := os.ReadFile(rel_path)

	if err != nil {
		t.Fatalf("Failed to read %s, %v", rel_path, err)
	}

	candidates, err := CandidatesFromWhosOnFirst(body)

	if err != nil {
		t.Fatalf("Failed to derive candidates, %v", err)
	}

	// Vienna, Wien, Vienne
	if len(candidates) != 3 {
		t.Fatalf("Expected 3 candidates, got %d", len(candidates))
	}

	c := candidates[0]

	if c.Name != "Vienna" || c.Country != "AT" || c.Region != "85681717" || c.Placetype != "locality" {
		t.Fatalf("Unexpected candidate %s", c)
	}

	if c.Importance != PLACETYPE_IMPORTANCE["locality"] {
		t.Fatalf("Unexpected importance %f", c.Importance)
	}

	if c.West != 16.18 || c.North != 48.32 {
		t.Fatalf("Unexpected bounds for %s", c)
	}
}

func TestLoadWhosOnFirstCandidates(t *testing.T) {

	ctx := context.Background()

	abs_path, err := filepath.Abs("../fixtures/whosonfirst/data")

	if err != nil {
		t.Fatalf("Failed to derive absolute path, %v", err)
	}

	r, err := reader.NewReader(ctx, fmt.Sprintf("fs://%s", abs_path))

	if err != nil {
		t.Fatalf("Failed to create reader, %v", err)
	}

	candidates, err := LoadWhosOnFirstCandidates(ctx, r, 85633111, 85632785)

	if err != nil {
		t.Fatalf("Failed to load candidates, %v", err)
	}

	// Austria, Österreich, Autriche, Germany, Deutschland
	if len(candidates) != 5 {
		t.Fatalf("Expected 5 candidates, got %d", len(candidates))
	}

	if candidates[0].Id != 85632785 {
		t.Fatalf("Expected candidates to be ordered by ID")
	}

	g, err := NewGazetteer(ctx, "memory://")

	if err != nil {
		t.Fatalf("Failed to create gazetteer, %v", err)
	}

	err = g.(*MemoryGazetteer).Add(ctx, candidates...)

	if err != nil {
		t.Fatalf("Failed to add candidates, %v", err)
	}

	results, err := g.Search(ctx, "Deutschland", false)

	if err != nil {
		t.Fatalf("Failed to search, %v", err)
	}

	if len(results) != 1 || results[0].Id != 85633111 {
		t.Fatalf("Expected Deutschland to resolve to Germany")
	}
}
