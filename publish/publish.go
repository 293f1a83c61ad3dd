// Package publish provides methods for resolving the extents of a document and writing them, as
// GeoJSON features, to a go-writer target.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/paulmach/orb/geojson"
	"github.com/sfomuseum/go-geoextent/document"
	"github.com/sfomuseum/go-geoextent/feature"
	"github.com/sfomuseum/go-geoextent/github"
	"github.com/sfomuseum/go-geoextent/strategy"
	geo_writers "github.com/sfomuseum/go-geoextent/writers"
)

type PublishDocumentOptions struct {
	// A valid `document.Source` instance for reading documents.
	Source document.Source
	// A valid `strategy.Strategy` instance used to resolve extents.
	Strategy *strategy.Strategy
	// WriterURI is a valid whosonfirst/go-writer URI that features are written to.
	WriterURI string
	// Author is the name of a person to associate with commit messages if using a `githubapi://` writer
	Author string
}

// PublishDocument reads the document 'key' from 'opts.Source', resolves its extents and writes one
// feature for the document and each resolved figure. It returns the features that were written.
func PublishDocument(ctx context.Context, opts *PublishDocumentOptions, key string) (*geojson.FeatureCollection, error) {

	logger := slog.Default()
	logger = logger.With("key", key)

	doc, err := opts.Source.Read(ctx, key)

	if err != nil {
		logger.Error("Failed to read document", "error", err)
		return nil, fmt.Errorf("Failed to read document %s, %w", key, err)
	}

	logger = logger.With("document", doc.Id)

	rsp, err := opts.Strategy.ResolveDocument(ctx, doc)

	if err != nil {
		logger.Error("Failed to resolve document", "error", err)
		return nil, fmt.Errorf("Failed to resolve document %s, %w", doc.Id, err)
	}

	if rsp.Errors != nil {
		logger.Warn("Signal sources reported errors", "error", rsp.Errors)
	}

	var github_opts *github.UpdateWriterURIOptions

	if opts.Author != "" {

		github_opts = &github.UpdateWriterURIOptions{
			DocumentId: doc.Id,
			Author:     opts.Author,
		}
	}

	writers_opts := &geo_writers.CreateWritersOptions{
		ExtentWriterURI:     opts.WriterURI,
		GithubWriterOptions: github_opts,
	}

	writers, err := geo_writers.CreateWriters(ctx, writers_opts)

	if err != nil {
		logger.Error("Failed to create writers", "error", err)
		return nil, fmt.Errorf("Failed to create extent writers, %w", err)
	}

	features, err := feature.FeaturesFromResult(rsp)

	if err != nil {
		return nil, fmt.Errorf("Failed to derive features for %s, %w", doc.Id, err)
	}

	for _, kf := range features {

		body, err := feature.FormatExtentFeature(kf.Feature)

		if err != nil {
			return nil, fmt.Errorf("Failed to format feature for %s, %w", kf.Path, err)
		}

		_, err = writers.ExtentMultiWriter.Write(ctx, kf.Path, bytes.NewReader(body))

		if err != nil {
			return nil, fmt.Errorf("Failed to write feature %s, %w", kf.Path, err)
		}

		logger.Debug("Wrote feature", "path", kf.Path)
	}

	if len(features) == 0 {
		logger.Info("No extents resolved")
	}

	// Close is required to commit changes for things like the githubapi-pr:// writer

	err = writers.Close(ctx)

	if err != nil {
		logger.Error("Failed to close extent writer", "error", err)
		return nil, fmt.Errorf("Failed to close extent writer, %w", err)
	}

	return writers.AsFeatureCollection()
}
