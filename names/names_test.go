package names

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCapitalsRecognizer(t *testing.T) {

	ctx := context.Background()

	r, err := NewRecognizer(ctx, "capitals://?stopword=survey")

	if err != nil {
		t.Fatalf("Failed to create recognizer, %v", err)
	}

	tests := map[string][]string{
		"Map of Austria and Germany":                  []string{"Austria", "Germany"},
		"The Survey of New South Wales, near Sydney.": []string{"New South Wales", "Sydney"},
		"Fig. 3: Baden-Württemberg study sites":       []string{"Baden-Württemberg"},
		"no place names here":                         []string{},
		"American tourists in Springfield, Illinois":  []string{"American", "Springfield", "Illinois"},
	}

	for text, expected := range tests {

		occurrences, err := r.Recognize(ctx, text)

		if err != nil {
			t.Fatalf("Failed to recognize '%s', %v", text, err)
		}

		diff := cmp.Diff(expected, Texts(occurrences))

		if diff != "" {
			t.Fatalf("Unexpected names for '%s' (-want +got):\n%s", text, diff)
		}
	}
}

func TestOccurrenceOffsets(t *testing.T) {

	ctx := context.Background()

	r, err := NewRecognizer(ctx, "capitals://")

	if err != nil {
		t.Fatalf("Failed to create recognizer, %v", err)
	}

	text := "Rivers of Österreich"

	occurrences, err := r.Recognize(ctx, text)

	if err != nil {
		t.Fatalf("Failed to recognize text, %v", err)
	}

	if len(occurrences) != 2 {
		t.Fatalf("Expected 2 occurrences, got %d", len(occurrences))
	}

	o := occurrences[1]

	if text[o.Start:o.End] != "Österreich" {
		t.Fatalf("Unexpected offsets %s", o)
	}
}

func TestSchemes(t *testing.T) {

	schemes := Schemes()

	if len(schemes) != 1 || schemes[0] != "capitals://" {
		t.Fatalf("Unexpected schemes %v", schemes)
	}
}
