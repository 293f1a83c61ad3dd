package document

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"gopkg.in/yaml.v3"
)

// type BlobSource implements the `Source` interface for documents stored in a gocloud.dev/blob bucket.
// Keys ending in ".pdf" are read as PDF files; any other key is read as a YAML (or JSON) manifest:
//
//	id: doc-1
//	title: Map of Austria and Germany
//	abstract: ...
//	figures:
//	  - id: fig-1
//	    caption: ...
//	    image: fig-1.png
//
// Figure image paths are relative to the manifest.
type BlobSource struct {
	Source
	bucket *blob.Bucket
}

func init() {

	ctx := context.Background()

	for _, scheme := range []string{"file", "mem", "s3"} {

		err := RegisterSource(ctx, scheme, NewBlobSource)

		if err != nil {
			panic(err)
		}
	}
}

// NewBlobSource returns a new `BlobSource` instance for the gocloud.dev/blob bucket URI 'uri'.
func NewBlobSource(ctx context.Context, uri string) (Source, error) {

	bucket, err := blob.OpenBucket(ctx, uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to open bucket, %w", err)
	}

	return NewBlobSourceWithBucket(ctx, bucket)
}

// NewBlobSourceWithBucket returns a new `BlobSource` instance reading from 'bucket'.
func NewBlobSourceWithBucket(ctx context.Context, bucket *blob.Bucket) (Source, error) {

	s := &BlobSource{
		bucket: bucket,
	}

	return s, nil
}

func (s *BlobSource) Read(ctx context.Context, key string) (*Document, error) {

	body, err := s.bucket.ReadAll(ctx, key)

	if err != nil {
		return nil, fmt.Errorf("Failed to read %s, %w", key, err)
	}

	if strings.ToLower(filepath.Ext(key)) == ".pdf" {

		doc, err := ReadPDF(bytes.NewReader(body), int64(len(body)))

		if err != nil {
			return nil, fmt.Errorf("Failed to read PDF %s, %w", key, err)
		}

		if doc.Id == "" {
			doc.Id = strings.TrimSuffix(path.Base(key), filepath.Ext(key))
		}

		return doc, nil
	}

	var doc *Document

	err = yaml.Unmarshal(body, &doc)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse manifest %s, %w", key, err)
	}

	if doc == nil {
		return nil, fmt.Errorf("Manifest %s is empty", key)
	}

	if doc.Id == "" {
		doc.Id = strings.TrimSuffix(path.Base(key), filepath.Ext(key))
	}

	root := path.Dir(key)

	for idx, f := range doc.Figures {

		if f.Id == "" {
			f.Id = fmt.Sprintf("%s-%d", doc.Id, idx+1)
		}

		if f.Path == "" {
			continue
		}

		im_key := f.Path

		if root != "." {
			im_key = path.Join(root, f.Path)
		}

		im, err := s.readImage(ctx, im_key)

		if err != nil {
			return nil, fmt.Errorf("Failed to read image for figure %s, %w", f.Id, err)
		}

		f.Image = im
	}

	return doc, nil
}

func (s *BlobSource) readImage(ctx context.Context, key string) (image.Image, error) {

	r, err := s.bucket.NewReader(ctx, key, nil)

	if err != nil {
		return nil, fmt.Errorf("Failed to open %s, %w", key, err)
	}

	defer r.Close()

	im, format, err := image.Decode(r)

	if err != nil {
		return nil, fmt.Errorf("Failed to decode %s, %w", key, err)
	}

	slog.Debug("Decoded image", "key", key, "format", format, "bounds", im.Bounds().String())
	return im, nil
}

func (s *BlobSource) Close() error {
	return s.bucket.Close()
}
