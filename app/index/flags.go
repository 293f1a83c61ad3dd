package index

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sfomuseum/go-flags/flagset"
	"github.com/sfomuseum/go-flags/multi"
)

var reader_uri string
var gazetteer_uri string

var ids multi.MultiInt64

var verbose bool

func DefaultFlagSet(ctx context.Context) *flag.FlagSet {

	fs := flagset.NewFlagSet("index")

	fs.StringVar(&reader_uri, "reader-uri", "repo:///usr/local/data/whosonfirst-data-admin", "A valid whosonfirst/go-reader URI.")
	fs.StringVar(&gazetteer_uri, "gazetteer-uri", "sqlite:///usr/local/data/gazetteer.db", "A valid sqlite:// gazetteer URI.")

	fs.Var(&ids, "id", "One or more valid Who's On First IDs to add to the gazetteer.")

	fs.BoolVar(&verbose, "verbose", false, "Enable verbose (debug) logging.")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "index-gazetteer is a command-line tool for adding Who's On First records to a SQLite gazetteer database.\n")
		fmt.Fprintf(os.Stderr, "Usage:\n\t %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Valid options are:\n")
		fs.PrintDefaults()
	}

	return fs
}
