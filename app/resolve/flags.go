package resolve

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sfomuseum/go-flags/flagset"
	"github.com/sfomuseum/go-flags/multi"
)

var mode string

var document_source_uri string
var strategy_uri string
var writer_uri string

var access_token_uri string
var author string

var documents multi.MultiString

var print_collection bool
var verbose bool

func DefaultFlagSet(ctx context.Context) *flag.FlagSet {

	fs := flagset.NewFlagSet("resolve")

	fs.StringVar(&mode, "mode", "cli", "Valid options are: cli, lambda.")

	fs.StringVar(&document_source_uri, "document-source-uri", "file:///usr/local/data/documents", "A valid sfomuseum/go-geoextent/document.Source URI.")
	fs.StringVar(&strategy_uri, "strategy-uri", "", "An optional gocloud.dev/runtimevar URI referencing a YAML (or JSON) strategy configuration. If empty the default strategy is used.")
	fs.StringVar(&writer_uri, "writer-uri", "stdout://", "A valid whosonfirst/go-writer URI.")

	fs.StringVar(&access_token_uri, "access-token", "", "A valid gocloud.dev/runtimevar URI")
	fs.StringVar(&author, "author", "", "The name of the person to associate with commit messages if using a githubapi:// writer.")

	fs.Var(&documents, "document", "One or more keys, relative to -document-source-uri, of the documents to resolve. Positional arguments are also treated as document keys.")

	fs.BoolVar(&print_collection, "print-collection", false, "Print the features written for each document as a GeoJSON FeatureCollection to STDOUT.")
	fs.BoolVar(&verbose, "verbose", false, "Enable verbose (debug) logging.")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "resolve-extents is a command-line tool for estimating the geographic extents of one or more documents and their figures.\n")
		fmt.Fprintf(os.Stderr, "Usage:\n\t %s [options] document(N) document(N)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Valid options are:\n")
		fs.PrintDefaults()
	}

	return fs
}
