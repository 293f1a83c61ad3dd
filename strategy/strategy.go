// Package strategy resolves the geographic extents of documents and their figures by applying ordered
// lists of signal sources to each scope of a document and collapsing the resulting candidate sets
// with a resolver.
package strategy

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/sfomuseum/go-geoextent"
	"github.com/sfomuseum/go-geoextent/detector"
	"github.com/sfomuseum/go-geoextent/document"
	"github.com/sfomuseum/go-geoextent/location"
	"github.com/sfomuseum/go-geoextent/resolver"
)

type textSource struct {
	uri    string
	source detector.TextSignalSource
}

type graphicSource struct {
	uri    string
	source detector.GraphicSignalSource
}

type textScope struct {
	name    string
	weight  float64
	sources []*textSource
}

// type Strategy resolves documents and figures.
type Strategy struct {
	resolver      resolver.Resolver
	resolver_uri  string
	map_threshold float64
	services      *detector.Services
	title         *textScope
	abstract      *textScope
	caption       *textScope
	image_weight  float64
	image         []*graphicSource
}

// type FigureResult is the resolved extent of a single figure.
type FigureResult struct {
	FigureId string
	// Extent is nil if the figure could not be resolved.
	Extent *location.GeoExtent
}

// type Result is the outcome of resolving a document.
type Result struct {
	DocumentId string
	// Resolver is the URI of the resolver that produced the extents.
	Resolver string
	// Extent is the resolved extent of the document's title and abstract, or nil.
	Extent  *location.GeoExtent
	Figures []*FigureResult
	// Errors accumulates the failures of individual sources, none of which stopped resolution.
	Errors error
}

// NewStrategy returns a new `Strategy` for 'cfg' using the collaborators in 'services'. Sources which
// can not be created, usually because a collaborator is unavailable, are logged and skipped.
func NewStrategy(ctx context.Context, cfg *Config, services *detector.Services) (*Strategy, error) {

	r, err := resolver.NewResolver(ctx, cfg.Resolver)

	if err != nil {
		return nil, fmt.Errorf("Failed to create resolver, %w", err)
	}

	if services == nil {
		services = &detector.Services{}
	}

	s := &Strategy{
		resolver:      r,
		resolver_uri:  cfg.Resolver,
		map_threshold: cfg.MapThreshold,
		services:      services,
		image:         make([]*graphicSource, 0),
	}

	s.title = newTextScope(ctx, geoextent.SCOPE_TITLE, cfg.Title, services)
	s.abstract = newTextScope(ctx, geoextent.SCOPE_ABSTRACT, cfg.Abstract, services)
	s.caption = newTextScope(ctx, geoextent.SCOPE_CAPTION, cfg.Caption, services)

	if cfg.Image != nil {

		s.image_weight = cfg.Image.Weight

		for _, uri := range cfg.Image.Sources {

			src, err := detector.NewGraphicSignalSource(ctx, uri, services)

			if err != nil {
				slog.Warn("Skip graphic source", "scope", geoextent.SCOPE_IMAGE, "uri", uri, "error", err)
				continue
			}

			s.image = append(s.image, &graphicSource{uri: uri, source: src})
		}
	}

	return s, nil
}

func newTextScope(ctx context.Context, name string, cfg *ScopeConfig, services *detector.Services) *textScope {

	sc := &textScope{
		name:    name,
		sources: make([]*textSource, 0),
	}

	if cfg == nil {
		return sc
	}

	sc.weight = cfg.Weight

	for _, uri := range cfg.Sources {

		src, err := detector.NewTextSignalSource(ctx, uri, services)

		if err != nil {
			slog.Warn("Skip text source", "scope", name, "uri", uri, "error", err)
			continue
		}

		sc.sources = append(sc.sources, &textSource{uri: uri, source: src})
	}

	return sc
}

// ResolveDocument resolves the extent of 'doc', from its title and abstract, and of each of its
// figures. Each figure's candidate set starts as a copy of the document's set, to which the figure's
// caption and (map) image sources are added. A source failure is recorded in `Result.Errors` and does
// not prevent the remaining sources from contributing.
func (s *Strategy) ResolveDocument(ctx context.Context, doc *document.Document) (*Result, error) {

	logger := slog.Default()
	logger = logger.With("document", doc.Id)

	result := &Result{
		DocumentId: doc.Id,
		Resolver:   s.resolver_uri,
		Figures:    make([]*FigureResult, 0),
	}

	var errors error

	doc_set := location.NewCandidateSet()

	s.applyText(ctx, s.title, doc_set, doc.Title, &errors)
	s.applyText(ctx, s.abstract, doc_set, doc.Abstract, &errors)

	doc_extent, ok := s.resolver.Resolve(ctx, doc_set)

	if ok {
		result.Extent = doc_extent
	}

	logger.Debug("Resolved document", "candidates", doc_set.Len(), "ok", ok)

	for _, f := range doc.Figures {

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			// pass
		}

		fig_set := doc_set.Copy()

		s.applyText(ctx, s.caption, fig_set, f.Caption, &errors)

		if f.Image != nil {
			s.applyImage(ctx, fig_set, f.Id, f.Image, &errors)
		}

		fig_extent, ok := s.resolver.Resolve(ctx, fig_set)

		logger.Debug("Resolved figure", "figure", f.Id, "candidates", fig_set.Len(), "ok", ok)

		fr := &FigureResult{
			FigureId: f.Id,
		}

		if ok {
			fr.Extent = fig_extent
		}

		result.Figures = append(result.Figures, fr)
	}

	result.Errors = errors
	return result, nil
}

func (s *Strategy) applyText(ctx context.Context, sc *textScope, set *location.CandidateSet, text string, errors *error) {

	if text == "" {
		return
	}

	for _, src := range sc.sources {

		extents, err := src.source.ExtentsFromText(ctx, text)

		if err != nil {
			slog.Warn("Text source failed", "scope", sc.name, "uri", src.uri, "error", err)
			*errors = multierror.Append(*errors, fmt.Errorf("Failed to apply %s to %s, %w", src.uri, sc.name, err))
			continue
		}

		slog.Debug("Text source", "scope", sc.name, "uri", src.uri, "count", len(extents))
		set.AddWithWeight(sc.weight, extents...)
	}
}

// applyImage adds the extents of the graphic sources to 'set' if a map classifier is available and
// it thinks 'im' is a map.
func (s *Strategy) applyImage(ctx context.Context, set *location.CandidateSet, figure_id string, im image.Image, errors *error) {

	if len(s.image) == 0 {
		return
	}

	if s.services.Classifier == nil {
		slog.Debug("No map classifier, skip graphic sources", "figure", figure_id)
		return
	}

	p, err := s.services.Classifier.MapProbability(ctx, im)

	if err != nil {
		slog.Warn("Map classifier failed", "figure", figure_id, "error", err)
		*errors = multierror.Append(*errors, fmt.Errorf("Failed to classify figure %s, %w", figure_id, err))
		return
	}

	if p < s.map_threshold {
		slog.Debug("Figure is not a map", "figure", figure_id, "probability", p)
		return
	}

	for _, src := range s.image {

		extents, err := src.source.ExtentsFromImage(ctx, im)

		if err != nil {
			slog.Warn("Graphic source failed", "figure", figure_id, "uri", src.uri, "error", err)
			*errors = multierror.Append(*errors, fmt.Errorf("Failed to apply %s to figure %s, %w", src.uri, figure_id, err))
			continue
		}

		slog.Debug("Graphic source", "figure", figure_id, "uri", src.uri, "count", len(extents))
		set.AddWithWeight(s.image_weight, extents...)
	}
}
