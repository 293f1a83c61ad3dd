// Package document provides the documents and figures whose geographic extents are resolved, and
// sources for reading them from gocloud.dev/blob buckets.
package document

import (
	"context"
	"fmt"
	"image"
	"net/url"
	"sort"
	"strings"

	"github.com/aaronland/go-roster"
)

// type Figure is a single figure in a document.
type Figure struct {
	Id      string `json:"id" yaml:"id"`
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`
	// Path is the location of the figure's image, relative to the document manifest.
	Path string `json:"image,omitempty" yaml:"image,omitempty"`
	// Image is the decoded figure image, if there is one.
	Image image.Image `json:"-" yaml:"-"`
}

// type Document is a document with a title, an abstract and zero or more figures.
type Document struct {
	Id       string    `json:"id" yaml:"id"`
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	Abstract string    `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Figures  []*Figure `json:"figures,omitempty" yaml:"figures,omitempty"`
}

func (d *Document) String() string {
	return fmt.Sprintf("%s (%d figures)", d.Id, len(d.Figures))
}

// type Source is an interface for reading documents.
type Source interface {
	// Read returns the document identified by 'key'.
	Read(context.Context, string) (*Document, error)
	// Close releases any resources held by the source.
	Close() error
}

// SourceInitializationFunc is a function defined by individual source packages and used to create
// an instance of that source.
type SourceInitializationFunc func(ctx context.Context, uri string) (Source, error)

var source_roster roster.Roster

// RegisterSource registers 'scheme' as a key pointing to 'init_func' in an internal lookup table
// used to create new `Source` instances by the `NewSource` method.
func RegisterSource(ctx context.Context, scheme string, init_func SourceInitializationFunc) error {

	err := ensureSourceRoster()

	if err != nil {
		return err
	}

	return source_roster.Register(ctx, scheme, init_func)
}

func ensureSourceRoster() error {

	if source_roster == nil {

		r, err := roster.NewDefaultRoster()

		if err != nil {
			return err
		}

		source_roster = r
	}

	return nil
}

// NewSource returns a new `Source` instance configured by 'uri'. The value of 'uri' is parsed
// as a `url.URL` and its scheme is used as the key for a corresponding `SourceInitializationFunc`
// function used to instantiate the new `Source`. It is assumed that the scheme (and initialization
// function) have been registered by the `RegisterSource` method.
func NewSource(ctx context.Context, uri string) (Source, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	scheme := u.Scheme

	err = ensureSourceRoster()

	if err != nil {
		return nil, err
	}

	i, err := source_roster.Driver(ctx, scheme)

	if err != nil {
		return nil, fmt.Errorf("Failed to find document source for '%s', %w", scheme, err)
	}

	init_func := i.(SourceInitializationFunc)
	return init_func(ctx, uri)
}

// Schemes returns the list of schemes that have been registered.
func Schemes() []string {

	ctx := context.Background()
	schemes := []string{}

	err := ensureSourceRoster()

	if err != nil {
		return schemes
	}

	for _, dr := range source_roster.Drivers(ctx) {
		scheme := fmt.Sprintf("%s://", strings.ToLower(dr))
		schemes = append(schemes, scheme)
	}

	sort.Strings(schemes)
	return schemes
}
