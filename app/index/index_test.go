package index

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/sfomuseum/go-geoextent/gazetteer"
	"github.com/whosonfirst/go-reader/v2"
)

func TestIndexWhosOnFirst(t *testing.T) {

	ctx := context.Background()

	abs_path, err := filepath.Abs("../../fixtures/whosonfirst/data")

	if err != nil {
		t.Fatalf("Failed to derive absolute path, %v", err)
	}

	r, err := reader.NewReader(ctx, fmt.Sprintf("fs://%s", abs_path))

	if err != nil {
		t.Fatalf("Failed to create reader, %v", err)
	}

	db_path := filepath.Join(t.TempDir(), "gazetteer.db")

	g, err := gazetteer.NewGazetteer(ctx, fmt.Sprintf("sqlite://%s", db_path))

	if err != nil {
		t.Fatalf("Failed to create gazetteer, %v", err)
	}

	defer g.Close()

	err = IndexWhosOnFirst(ctx, r, g, 85632785, 101748113)

	if err != nil {
		t.Fatalf("Failed to index records, %v", err)
	}

	results, err := g.Search(ctx, "Österreich", false)

	if err != nil {
		t.Fatalf("Failed to search gazetteer, %v", err)
	}

	if len(results) != 1 || results[0].Id != 85632785 {
		t.Fatalf("Unexpected results for Österreich: %v", results)
	}

	results, err = g.Search(ctx, "vien", true)

	if err != nil {
		t.Fatalf("Failed to search gazetteer, %v", err)
	}

	if len(results) != 1 || results[0].Id != 101748113 {
		t.Fatalf("Unexpected results for vien: %v", results)
	}

	countries, err := gazetteer.NewGazetteer(ctx, "countries://")

	if err != nil {
		t.Fatalf("Failed to create countries gazetteer, %v", err)
	}

	err = IndexWhosOnFirst(ctx, r, countries, 85632785)

	if err != nil {
		t.Fatalf("Expected countries gazetteer (which embeds a memory gazetteer) to be indexable, %v", err)
	}
}
