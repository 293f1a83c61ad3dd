package strategy

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"testing"

	"github.com/sfomuseum/go-geoextent/detector"
	"github.com/sfomuseum/go-geoextent/document"
	"github.com/sfomuseum/go-geoextent/location"
	_ "gocloud.dev/runtimevar/filevar"
)

type failingSource struct{}

func (s *failingSource) ExtentsFromText(ctx context.Context, text string) ([]*location.GeoExtent, error) {
	return nil, fmt.Errorf("Unavailable")
}

func init() {

	ctx := context.Background()

	init_func := func(ctx context.Context, uri string, services *detector.Services) (detector.TextSignalSource, error) {
		return &failingSource{}, nil
	}

	err := detector.RegisterTextSignalSource(ctx, "failing", init_func)

	if err != nil {
		panic(err)
	}
}

func newStrategy(t *testing.T, cfg *Config) *Strategy {

	ctx := context.Background()

	services, err := NewServices(ctx, cfg)

	if err != nil {
		t.Fatalf("Failed to create services, %v", err)
	}

	t.Cleanup(func() {
		CloseServices(services)
	})

	s, err := NewStrategy(ctx, cfg, services)

	if err != nil {
		t.Fatalf("Failed to create strategy, %v", err)
	}

	return s
}

func TestResolveAustriaAndGermany(t *testing.T) {

	ctx := context.Background()

	s := newStrategy(t, DefaultConfig())

	doc := &document.Document{
		Id: "test",
		Figures: []*document.Figure{
			{Id: "fig-1", Caption: "Map of Austria and Germany"},
		},
	}

	rsp, err := s.ResolveDocument(ctx, doc)

	if err != nil {
		t.Fatalf("Failed to resolve document, %v", err)
	}

	if rsp.Extent != nil {
		t.Fatalf("Did not expect a document extent without a title or abstract")
	}

	if len(rsp.Figures) != 1 || rsp.Figures[0].Extent == nil {
		t.Fatalf("Failed to resolve figure")
	}

	austria := location.NewGeoExtent(9.53, 46.37, 17.16, 49.02, 1.0)
	germany := location.NewGeoExtent(5.87, 47.27, 15.04, 55.06, 1.0)

	reference := location.NewGeoExtentFromBound(austria.Union(germany), 1.0)

	j := rsp.Figures[0].Extent.JaccardIndex(reference)

	if j <= 0.9 {
		t.Fatalf("Expected Jaccard index > 0.9, got %f (%s)", j, rsp.Figures[0].Extent)
	}
}

func TestResolveDocumentSeedsFigures(t *testing.T) {

	ctx := context.Background()

	s := newStrategy(t, DefaultConfig())

	doc := &document.Document{
		Id:       "test",
		Title:    "Glaciers of Austria",
		Abstract: "Records between 46° N, 10° E and 48° N, 14° E.",
		Figures: []*document.Figure{
			{Id: "fig-1", Caption: "Sampling sites"},
		},
	}

	rsp, err := s.ResolveDocument(ctx, doc)

	if err != nil {
		t.Fatalf("Failed to resolve document, %v", err)
	}

	if rsp.Extent == nil {
		t.Fatalf("Failed to resolve document extent")
	}

	fig := rsp.Figures[0].Extent

	if fig == nil {
		t.Fatalf("Expected figure to inherit the document's candidates")
	}

	if !fig.Equal(rsp.Extent) {
		t.Fatalf("Expected figure extent %s to equal document extent %s", fig, rsp.Extent)
	}
}

func TestResolveGraphicSources(t *testing.T) {

	ctx := context.Background()

	im := image.NewGray(image.Rect(0, 0, 50, 50))

	tests := map[string]bool{
		"":                            false,
		"static://?map=0.1&world=0.9": false,
		"static://?map=0.9&world=0.9": true,
	}

	for classifier_uri, expect_world := range tests {

		cfg := DefaultConfig()
		cfg.Services.Classifier = classifier_uri

		s := newStrategy(t, cfg)

		doc := &document.Document{
			Id: "test",
			Figures: []*document.Figure{
				{Id: "fig-1", Caption: "Map of Austria", Image: im},
			},
		}

		rsp, err := s.ResolveDocument(ctx, doc)

		if err != nil {
			t.Fatalf("Failed to resolve document, %v", err)
		}

		e := rsp.Figures[0].Extent

		if e == nil {
			t.Fatalf("Failed to resolve figure for '%s'", classifier_uri)
		}

		is_world := e.Width() == 360.0

		if is_world != expect_world {
			t.Fatalf("Unexpected extent %s for classifier '%s'", e, classifier_uri)
		}
	}
}

func TestResolveSourceErrors(t *testing.T) {

	ctx := context.Background()

	cfg := DefaultConfig()
	cfg.Caption.Sources = []string{"failing://", "gazetteer://"}

	s := newStrategy(t, cfg)

	doc := &document.Document{
		Id: "test",
		Figures: []*document.Figure{
			{Id: "fig-1", Caption: "Map of Germany"},
		},
	}

	rsp, err := s.ResolveDocument(ctx, doc)

	if err != nil {
		t.Fatalf("Failed to resolve document, %v", err)
	}

	if rsp.Errors == nil {
		t.Fatalf("Expected source errors to be recorded")
	}

	if rsp.Figures[0].Extent == nil {
		t.Fatalf("Expected remaining sources to resolve figure")
	}
}

func TestUnknownSourcesSkipped(t *testing.T) {

	cfg := DefaultConfig()
	cfg.Caption.Sources = []string{"bogus://", "coordinates://"}

	s := newStrategy(t, cfg)

	if len(s.caption.sources) != 1 {
		t.Fatalf("Expected 1 caption source, got %d", len(s.caption.sources))
	}

	// No OCR engine or map classifier is configured by default
	if len(s.image) != 0 {
		t.Fatalf("Expected no graphic sources, got %d", len(s.image))
	}
}

func TestLoadConfig(t *testing.T) {

	ctx := context.Background()

	path, err := filepath.Abs("../fixtures/strategy/heatmap.yaml")

	if err != nil {
		t.Fatalf("Failed to derive config path, %v", err)
	}

	cfg, err := LoadConfig(ctx, "file://"+path+"?decoder=string")

	if err != nil {
		t.Fatalf("Failed to load config, %v", err)
	}

	if cfg.Resolver != "heatmap://?threshold=maximum" || cfg.MapThreshold != 0.75 {
		t.Fatalf("Unexpected resolver config %s %f", cfg.Resolver, cfg.MapThreshold)
	}

	if cfg.Caption.Weight != 0.6 || len(cfg.Caption.Sources) != 1 {
		t.Fatalf("Unexpected caption config %v", cfg.Caption)
	}

	// Scopes not in the document keep their defaults
	if cfg.Title.Weight != 0.5 || len(cfg.Title.Sources) != 2 {
		t.Fatalf("Unexpected title config %v", cfg.Title)
	}

	if cfg.Springfield.ChunkSize != 4 || cfg.Calibration.Significance != 0.05 {
		t.Fatalf("Unexpected tuning config")
	}

	s := newStrategy(t, cfg)

	if s.services.Classifier == nil {
		t.Fatalf("Expected map classifier")
	}
}

func TestInvalidResolver(t *testing.T) {

	ctx := context.Background()

	cfg := DefaultConfig()
	cfg.Resolver = "bogus://"

	_, err := NewStrategy(ctx, cfg, nil)

	if err == nil {
		t.Fatalf("Expected invalid resolver to fail")
	}
}
