package main

import (
	"context"
	"log"

	_ "github.com/whosonfirst/go-writer-featurecollection/v3"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/s3blob"
	_ "gocloud.dev/runtimevar/awsparamstore"
	_ "gocloud.dev/runtimevar/constantvar"
	_ "gocloud.dev/runtimevar/filevar"

	"github.com/sfomuseum/go-geoextent/app/resolve"
)

func main() {

	ctx := context.Background()

	err := resolve.Run(ctx)

	if err != nil {
		log.Fatalf("Failed to resolve extents, %v", err)
	}
}
