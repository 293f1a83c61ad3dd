package resolve

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/paulmach/orb/geojson"
	"github.com/sfomuseum/go-geoextent/publish"
)

// type ResolveRequest is the payload sent to the resolve-extents Lambda function.
type ResolveRequest struct {
	Document string `json:"document"`
}

func runLambda(ctx context.Context, opts *publish.PublishDocumentOptions) error {

	handler := func(ctx context.Context, req *ResolveRequest) (*geojson.FeatureCollection, error) {

		if req.Document == "" {
			return nil, fmt.Errorf("Missing document")
		}

		fc, err := publish.PublishDocument(ctx, opts, req.Document)

		if err != nil {
			return nil, fmt.Errorf("Failed to resolve extents for %s, %w", req.Document, err)
		}

		return fc, nil
	}

	lambda.Start(handler)
	return nil
}
