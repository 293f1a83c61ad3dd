// Package resolve implements the resolve-extents application.
package resolve

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"github.com/sfomuseum/go-flags/flagset"
	"github.com/sfomuseum/go-geoextent/document"
	"github.com/sfomuseum/go-geoextent/publish"
	"github.com/sfomuseum/go-geoextent/strategy"
	gh_writer "github.com/whosonfirst/go-writer-github/v3"
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

	writer_uri, err = gh_writer.EnsureGitHubAccessToken(ctx, writer_uri, access_token_uri)

	if err != nil {
		return fmt.Errorf("Failed to ensure access token for writer URI, %w", err)
	}

	cfg := strategy.DefaultConfig()

	if strategy_uri != "" {

		cfg, err = strategy.LoadConfig(ctx, strategy_uri)

		if err != nil {
			return fmt.Errorf("Failed to load strategy configuration, %w", err)
		}
	}

	services, err := strategy.NewServices(ctx, cfg)

	if err != nil {
		return fmt.Errorf("Failed to create services, %w", err)
	}

	defer strategy.CloseServices(services)

	s, err := strategy.NewStrategy(ctx, cfg, services)

	if err != nil {
		return fmt.Errorf("Failed to create strategy, %w", err)
	}

	src, err := document.NewSource(ctx, document_source_uri)

	if err != nil {
		return fmt.Errorf("Failed to create document source, %w", err)
	}

	defer src.Close()

	opts := &publish.PublishDocumentOptions{
		Source:    src,
		Strategy:  s,
		WriterURI: writer_uri,
		Author:    author,
	}

	switch mode {
	case "cli":

		keys := append([]string(documents), fs.Args()...)
		return runCommandLine(ctx, opts, keys...)

	case "lambda":
		return runLambda(ctx, opts)
	default:
		return fmt.Errorf("Invalid or unsupported mode")
	}
}
