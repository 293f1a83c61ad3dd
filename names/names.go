// Package names provides interfaces and implementations for recognizing place name occurrences in text.
package names

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/aaronland/go-roster"
)

// type Occurrence is a candidate place name found in a text.
type Occurrence struct {
	Text string `json:"text"`
	// Start and End are the byte offsets of the occurrence in the source text.
	Start int `json:"start"`
	End   int `json:"end"`
}

func (o *Occurrence) String() string {
	return fmt.Sprintf("%s [%d:%d]", o.Text, o.Start, o.End)
}

// type Recognizer is an interface for finding place name occurrences in text.
type Recognizer interface {
	// Recognize returns the place name occurrences in 'text' in document order.
	Recognize(context.Context, string) ([]*Occurrence, error)
}

// RecognizerInitializationFunc is a function defined by individual recognizer packages and used to create
// an instance of that recognizer.
type RecognizerInitializationFunc func(ctx context.Context, uri string) (Recognizer, error)

var recognizer_roster roster.Roster

// RegisterRecognizer registers 'scheme' as a key pointing to 'init_func' in an internal lookup table
// used to create new `Recognizer` instances by the `NewRecognizer` method.
func RegisterRecognizer(ctx context.Context, scheme string, init_func RecognizerInitializationFunc) error {

	err := ensureRecognizerRoster()

	if err != nil {
		return err
	}

	return recognizer_roster.Register(ctx, scheme, init_func)
}

func ensureRecognizerRoster() error {

	if recognizer_roster == nil {

		r, err := roster.NewDefaultRoster()

		if err != nil {
			return err
		}

		recognizer_roster = r
	}

	return nil
}

// NewRecognizer returns a new `Recognizer` instance configured by 'uri'. The value of 'uri' is parsed
// as a `url.URL` and its scheme is used as the key for a corresponding `RecognizerInitializationFunc`
// function used to instantiate the new `Recognizer`. It is assumed that the scheme (and initialization
// function) have been registered by the `RegisterRecognizer` method.
func NewRecognizer(ctx context.Context, uri string) (Recognizer, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	scheme := u.Scheme

	err = ensureRecognizerRoster()

	if err != nil {
		return nil, err
	}

	i, err := recognizer_roster.Driver(ctx, scheme)

	if err != nil {
		return nil, fmt.Errorf("Failed to find recognizer for '%s', %w", scheme, err)
	}

	init_func := i.(RecognizerInitializationFunc)
	return init_func(ctx, uri)
}

// Schemes returns the list of schemes that have been registered.
func Schemes() []string {

	ctx := context.Background()
	schemes := []string{}

	err := ensureRecognizerRoster()

	if err != nil {
		return schemes
	}

	for _, dr := range recognizer_roster.Drivers(ctx) {
		scheme := fmt.Sprintf("%s://", strings.ToLower(dr))
		schemes = append(schemes, scheme)
	}

	sort.Strings(schemes)
	return schemes
}

// Texts returns the text of each member of 'occurrences'.
func Texts(occurrences []*Occurrence) []string {

	texts := make([]string, len(occurrences))

	for i, o := range occurrences {
		texts[i] = o.Text
	}

	return texts
}
