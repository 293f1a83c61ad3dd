// Package github provides methods for configuring go-writer-github URIs for geoextent updates.
package github

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var re_branch = regexp.MustCompile(`[^a-zA-Z0-9\-_]+`)

type UpdateWriterURIOptions struct {
	DocumentId string
	Author     string
}

// UpdateWriterURI assigns commit messages, or pull request details, to 'writer_uri' if it is a
// "githubapi://" or "githubapi-pr://" URI. Other URIs are returned unchanged.
func UpdateWriterURI(ctx context.Context, opts *UpdateWriterURIOptions, writer_uri string) (string, error) {

	wr_u, err := url.Parse(writer_uri)

	if err != nil {
		return "", fmt.Errorf("Failed to parse URI, %w", err)
	}

	switch wr_u.Scheme {

	case "githubapi":

		// go-writer-github substitutes the path being written for "%s"
		update_msg := fmt.Sprintf("[%s] updated geoextents for ", opts.Author) + "%s"

		wr_q := wr_u.Query()

		wr_q.Set("new", update_msg)
		wr_q.Set("update", update_msg)

		wr_u.RawQuery = wr_q.Encode()

	case "githubapi-pr":

		title := fmt.Sprintf("[%s] update geoextents for %s", opts.Author, opts.DocumentId)
		description := title

		branch := fmt.Sprintf("%s-%s", opts.Author, opts.DocumentId)
		branch = strings.Trim(re_branch.ReplaceAllString(branch, "-"), "-")

		wr_q := wr_u.Query()

		wr_q.Set("pr-branch", branch)
		wr_q.Set("pr-title", title)
		wr_q.Set("pr-description", description)

		wr_u.RawQuery = wr_q.Encode()
	}

	return wr_u.String(), nil
}
