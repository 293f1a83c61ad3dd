package resolve

import (
	"context"
	"fmt"
	"os"

	"github.com/sfomuseum/go-geoextent/publish"
)

func runCommandLine(ctx context.Context, opts *publish.PublishDocumentOptions, keys ...string) error {

	if len(keys) == 0 {
		return fmt.Errorf("No documents to resolve")
	}

	for _, key := range keys {

		fc, err := publish.PublishDocument(ctx, opts, key)

		if err != nil {
			return fmt.Errorf("Failed to resolve extents for %s, %w", key, err)
		}

		if !print_collection {
			continue
		}

		fc_body, err := fc.MarshalJSON()

		if err != nil {
			return fmt.Errorf("Failed to marshal feature collection for %s, %w", key, err)
		}

		fmt.Fprintln(os.Stdout, string(fc_body))
	}

	return nil
}
