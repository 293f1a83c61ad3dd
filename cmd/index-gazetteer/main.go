package main

import (
	"context"
	"log"

	_ "github.com/whosonfirst/go-reader-findingaid/v2"
	_ "github.com/whosonfirst/go-reader-github/v2"

	"github.com/sfomuseum/go-geoextent/app/index"
)

func main() {

	ctx := context.Background()

	err := index.Run(ctx)

	if err != nil {
		log.Fatalf("Failed to index gazetteer, %v", err)
	}
}
