// Package writers provides methods for creating the go-writer instances that resolved extents are
// published to.
package writers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/paulmach/orb/geojson"
	"github.com/sfomuseum/go-geoextent/github"
	"github.com/whosonfirst/go-writer/v3"
)

type Writers struct {
	ExtentWriter      writer.Writer
	ExtentMultiWriter writer.Writer

	extentBuf       *bytes.Buffer
	extentBufWriter *bufio.Writer
}

type CreateWritersOptions struct {
	ExtentWriterURI     string
	GithubWriterOptions *github.UpdateWriterURIOptions
}

func CreateWriters(ctx context.Context, opts *CreateWritersOptions) (*Writers, error) {

	extent_writer_uri := opts.ExtentWriterURI

	if opts.GithubWriterOptions != nil {

		var err error

		extent_writer_uri, err = github.UpdateWriterURI(ctx, opts.GithubWriterOptions, extent_writer_uri)

		if err != nil {
			return nil, fmt.Errorf("Failed to update extent writer URI, %w", err)
		}
	}

	extent_writer, err := writer.NewWriter(ctx, extent_writer_uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to create new extent writer for '%s', %w", extent_writer_uri, err)
	}

	// Keep a local copy of everything written so it can be returned in the method response

	var local_extent_buf bytes.Buffer
	local_extent_buf_writer := bufio.NewWriter(&local_extent_buf)

	local_extent_writer, err := writer.NewIOWriterWithWriter(ctx, local_extent_buf_writer)

	if err != nil {
		return nil, fmt.Errorf("Failed to create IOWriter for extents, %w", err)
	}

	extent_mw, err := writer.NewMultiWriter(ctx, extent_writer, local_extent_writer)

	if err != nil {
		return nil, fmt.Errorf("Failed to create multi writer for extents, %w", err)
	}

	all_writers := &Writers{
		ExtentWriter:      extent_writer,
		ExtentMultiWriter: extent_mw,
		extentBufWriter:   local_extent_buf_writer,
		extentBuf:         &local_extent_buf,
	}

	return all_writers, nil
}

// AsFeatureCollection returns everything written to 'writers.ExtentMultiWriter' as a GeoJSON
// FeatureCollection.
func (writers *Writers) AsFeatureCollection() (*geojson.FeatureCollection, error) {

	writers.extentBufWriter.Flush()

	fc := geojson.NewFeatureCollection()

	dec := json.NewDecoder(bytes.NewReader(writers.extentBuf.Bytes()))

	for {

		var raw json.RawMessage

		err := dec.Decode(&raw)

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			slog.Error("Bad extent buffer", "body", string(writers.extentBuf.Bytes()))
			return nil, fmt.Errorf("Failed to decode extent buffer, %w", err)
		}

		f, err := geojson.UnmarshalFeature(raw)

		if err != nil {
			return nil, fmt.Errorf("Failed to unmarshal feature from extent buffer, %w", err)
		}

		fc.Append(f)
	}

	return fc, nil
}

// Close closes the underlying writers.
func (writers *Writers) Close(ctx context.Context) error {
	return writers.ExtentMultiWriter.Close(ctx)
}
