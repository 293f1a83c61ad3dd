package gazetteer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
)

func TestSchemes(t *testing.T) {

	expected := map[string]bool{
		"countries://": false,
		"memory://":    false,
		"sqlite://":    false,
	}

	for _, s := range Schemes() {

		if _, ok := expected[s]; ok {
			expected[s] = true
		}
	}

	for s, found := range expected {

		if !found {
			t.Fatalf("Expected scheme %s to be registered", s)
		}
	}
}

func TestMemoryGazetteer(t *testing.T) {

	ctx := context.Background()

	g, err := NewGazetteer(ctx, "memory://")

	if err != nil {
		t.Fatalf("Failed to create gazetteer, %v", err)
	}

	defer g.Close()

	mem := g.(*MemoryGazetteer)

	err = mem.Add(ctx,
		&GazetteerCandidate{Id: 1, Name: "Springfield", Country: "US", Region: "IL", Importance: 0.6},
		&GazetteerCandidate{Id: 2, Name: "Springfield", Country: "US", Region: "MA", Importance: 0.7},
		&GazetteerCandidate{Id: 3, Name: "Springfield Gardens", Country: "US", Region: "NY", Importance: 0.2},
	)

	if err != nil {
		t.Fatalf("Failed to add candidates, %v", err)
	}

	results, err := g.Search(ctx, "springfield", false)

	if err != nil {
		t.Fatalf("Failed to search, %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	if results[0].Id != 2 || results[0].Rank != 0 || results[1].Rank != 1 {
		t.Fatalf("Unexpected ranking, %s %s", results[0], results[1])
	}

	results, err = g.Search(ctx, "SPRINGFIELD", true)

	if err != nil {
		t.Fatalf("Failed to search, %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 fuzzy results, got %d", len(results))
	}

	results, err = g.Search(ctx, "  ", true)

	if err != nil {
		t.Fatalf("Failed to search, %v", err)
	}

	if len(results) != 0 {
		t.Fatalf("Expected empty query to return nothing")
	}
}

func TestCountriesGazetteer(t *testing.T) {

	ctx := context.Background()

	g, err := NewGazetteer(ctx, "countries://")

	if err != nil {
		t.Fatalf("Failed to create gazetteer, %v", err)
	}

	defer g.Close()

	tests := map[string]string{
		"Austria":       "AT",
		"österreich":    "AT",
		"Germany":       "DE",
		"USA":           "US",
		"Great Britain": "GB",
	}

	for name, country := range tests {

		results, err := g.Search(ctx, name, false)

		if err != nil {
			t.Fatalf("Failed to search for %s, %v", name, err)
		}

		if len(results) != 1 {
			t.Fatalf("Expected one result for %s, got %d", name, len(results))
		}

		if results[0].Country != country {
			t.Fatalf("Expected %s for %s, got %s", country, name, results[0].Country)
		}

		if results[0].Importance != COUNTRY_IMPORTANCE {
			t.Fatalf("Unexpected importance for %s, %f", name, results[0].Importance)
		}
	}

	results, err := g.Search(ctx, "Austria", false)

	if err != nil {
		t.Fatalf("Failed to search, %v", err)
	}

	e := results[0].Extent()

	if e.West() != 9.48 || e.South() != 46.43 || e.East() != 16.98 || e.North() != 49.04 {
		t.Fatalf("Unexpected extent for Austria, %s", e)
	}
}

func TestGazetteerWithFallback(t *testing.T) {

	ctx := context.Background()

	g, err := NewGazetteerWithFallback(ctx, "bogus://")

	if err != nil {
		t.Fatalf("Failed to create gazetteer with fallback, %v", err)
	}

	defer g.Close()

	_, ok := g.(*CountriesGazetteer)

	if !ok {
		t.Fatalf("Expected fallback gazetteer")
	}
}

func TestSQLiteGazetteer(t *testing.T) {

	ctx := context.Background()

	db_path := filepath.Join(t.TempDir(), "gazetteer.db")

	g, err := NewGazetteer(ctx, fmt.Sprintf("sqlite://%s?limit=10", db_path))

	if err != nil {
		t.Fatalf("Failed to create gazetteer, %v", err)
	}

	defer g.Close()

	db := g.(*SQLiteGazetteer)

	err = db.Add(ctx,
		&GazetteerCandidate{Id: 101748113, Name: "Vienna", Placetype: "locality", Country: "AT", Region: "85681717", Importance: 0.6, West: 16.18, South: 48.12, East: 16.58, North: 48.32},
		&GazetteerCandidate{Id: 101748113, Name: "Wien", Placetype: "locality", Country: "AT", Region: "85681717", Importance: 0.6, West: 16.18, South: 48.12, East: 16.58, North: 48.32},
		&GazetteerCandidate{Id: 85688637, Name: "Vienna", Placetype: "locality", Country: "US", Region: "85688747", Importance: 0.3, West: -77.29, South: 38.88, East: -77.24, North: 38.91},
		&GazetteerCandidate{Id: 1, Name: "Vienna_Woods", Placetype: "region", Country: "AT", Importance: 0.1},
	)

	if err != nil {
		t.Fatalf("Failed to add candidates, %v", err)
	}

	results, err := g.Search(ctx, "vienna", false)

	if err != nil {
		t.Fatalf("Failed to search, %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	if results[0].Country != "AT" || results[1].Country != "US" {
		t.Fatalf("Unexpected ordering, %s %s", results[0], results[1])
	}

	results, err = g.Search(ctx, "Vien", true)

	if err != nil {
		t.Fatalf("Failed to search, %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 fuzzy results, got %d", len(results))
	}

	results, err = g.Search(ctx, "wien", false)

	if err != nil {
		t.Fatalf("Failed to search, %v", err)
	}

	if len(results) != 1 || results[0].Id != 101748113 {
		t.Fatalf("Expected Wien to match Vienna, Austria")
	}
}

func TestSQLiteGazetteerMissingPath(t *testing.T) {

	ctx := context.Background()

	_, err := NewGazetteer(ctx, "sqlite://")

	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Expected ErrUnavailable, got %v", err)
	}
}
