package github

import (
	"context"
	"net/url"
	"testing"
)

func TestUpdateWriterURI(t *testing.T) {

	ctx := context.Background()

	opts := &UpdateWriterURIOptions{
		DocumentId: "austria germany",
		Author:     "geoextent",
	}

	pr_uri, err := UpdateWriterURI(ctx, opts, "githubapi-pr://sfomuseum-data/sfomuseum-data-extents?prefix=data")

	if err != nil {
		t.Fatalf("Failed to update writer URI, %v", err)
	}

	u, err := url.Parse(pr_uri)

	if err != nil {
		t.Fatalf("Failed to parse updated URI, %v", err)
	}

	q := u.Query()

	if q.Get("pr-branch") != "geoextent-austria-germany" {
		t.Fatalf("Unexpected branch: %s", q.Get("pr-branch"))
	}

	if q.Get("pr-title") != "[geoextent] update geoextents for austria germany" {
		t.Fatalf("Unexpected title: %s", q.Get("pr-title"))
	}

	if q.Get("prefix") != "data" {
		t.Fatalf("Expected existing parameters to be preserved")
	}

	api_uri, err := UpdateWriterURI(ctx, opts, "githubapi://sfomuseum-data/sfomuseum-data-extents")

	if err != nil {
		t.Fatalf("Failed to update writer URI, %v", err)
	}

	u, _ = url.Parse(api_uri)

	if u.Query().Get("update") != "[geoextent] updated geoextents for %s" {
		t.Fatalf("Unexpected update message: %s", u.Query().Get("update"))
	}

	fs_uri, _ := UpdateWriterURI(ctx, opts, "fs:///usr/local/data")

	if fs_uri != "fs:///usr/local/data" {
		t.Fatalf("Expected non-GitHub URI to be unchanged, got %s", fs_uri)
	}
}
