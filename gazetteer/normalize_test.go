package gazetteer

import (
	"testing"
)

func TestNormalizeName(t *testing.T) {

	tests := map[string]string{
		"Zürich":              "zurich",
		"ZURICH":              "zurich",
		"  São   Paulo ":      "sao paulo",
		"Saint-Jean-de-Luz":   "saint jean de luz",
		"Côte d'Ivoire":       "cote d ivoire",
		"Straße":              "strasse",
		"!!!":                 "",
		"Springfield (Mass.)": "springfield mass",
	}

	for raw, expected := range tests {

		v := NormalizeName(raw)

		if v != expected {
			t.Fatalf("Expected '%s' for '%s', got '%s'", expected, raw, v)
		}
	}
}

func TestDemonymFilter(t *testing.T) {

	f := NewDemonymFilter()

	for _, n := range []string{"American", "BRITISH", "Germans", "Austrian"} {

		if !f.IsDemonym(n) {
			t.Fatalf("Expected %s to be a demonym", n)
		}
	}

	kept := f.Filter([]string{"American", "Germany", "Swiss", "Austria"})

	if len(kept) != 2 || kept[0] != "Germany" || kept[1] != "Austria" {
		t.Fatalf("Unexpected filtered names, %v", kept)
	}

	custom := NewDemonymFilter("Martian")

	if custom.IsDemonym("American") {
		t.Fatalf("Did not expect custom filter to include defaults")
	}

	if !custom.IsDemonym("martians") {
		t.Fatalf("Expected plural of custom demonym to match")
	}
}
