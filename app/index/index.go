// Package index implements the index-gazetteer application.
package index

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"github.com/sfomuseum/go-flags/flagset"
	"github.com/sfomuseum/go-geoextent/gazetteer"
	"github.com/whosonfirst/go-reader/v2"
)

func Run(ctx context.Context) error {
	fs := DefaultFlagSet(ctx)
	return RunWithFlagSet(ctx, fs)
}

func RunWithFlagSet(ctx context.Context, fs *flag.FlagSet) error {

	flagset.Parse(fs)

	err := flagset.SetFlagsFromEnvVars(fs, "GEOEXTENT")

	if err != nil {
		return fmt.Errorf("Failed to set flags from environment variables, %w", err)
	}

	if verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
		slog.Debug("Verbose logging enabled")
	}

	if len(ids) == 0 {
		return fmt.Errorf("No IDs to index")
	}

	r, err := reader.NewReader(ctx, reader_uri)

	if err != nil {
		return fmt.Errorf("Failed to create reader, %w", err)
	}

	g, err := gazetteer.NewGazetteer(ctx, gazetteer_uri)

	if err != nil {
		return fmt.Errorf("Failed to create gazetteer, %w", err)
	}

	defer g.Close()

	return IndexWhosOnFirst(ctx, r, g, ids...)
}

type indexer interface {
	Add(context.Context, ...*gazetteer.GazetteerCandidate) error
}

// IndexWhosOnFirst reads the Who's On First records for 'ids' from 'r' and adds their candidates to 'g'.
// 'g' must implement an `Add` method, as `*gazetteer.SQLiteGazetteer` and `*gazetteer.MemoryGazetteer` do.
func IndexWhosOnFirst(ctx context.Context, r reader.Reader, g gazetteer.Gazetteer, ids ...int64) error {

	candidates, err := gazetteer.LoadWhosOnFirstCandidates(ctx, r, ids...)

	if err != nil {
		return fmt.Errorf("Failed to load candidates, %w", err)
	}

	idx, ok := g.(indexer)

	if !ok {
		return fmt.Errorf("Gazetteer does not support adding places")
	}

	err = idx.Add(ctx, candidates...)

	if err != nil {
		return fmt.Errorf("Failed to add candidates, %w", err)
	}

	slog.Info("Indexed records", "ids", len(ids), "candidates", len(candidates))
	return nil
}
