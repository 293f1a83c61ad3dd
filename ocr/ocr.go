// Package ocr provides interfaces and implementations for recognizing words, and their positions, in
// raster images.
//
// The Tesseract implementation requires the package to be compiled with the "ocr" build tag and Tesseract
// to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/url"
	"sort"
	"strings"

	"github.com/aaronland/go-roster"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support was not compiled in.
// Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// type Word is a single word recognized in an image.
type Word struct {
	Text string `json:"text"`
	// Confidence is the recognizer's confidence in the range 0-100.
	Confidence float64 `json:"confidence"`
	// Box is the pixel bounding box of the word.
	Box image.Rectangle `json:"box"`
}

// type OCR is an interface for recognizing words in an image.
type OCR interface {
	// Recognize returns the words in 'im' in reading order.
	Recognize(context.Context, image.Image) ([]*Word, error)
	// Close releases any resources held by the recognizer.
	Close() error
}

// OCRInitializationFunc is a function defined by individual OCR packages and used to create
// an instance of that OCR.
type OCRInitializationFunc func(ctx context.Context, uri string) (OCR, error)

var ocr_roster roster.Roster

// RegisterOCR registers 'scheme' as a key pointing to 'init_func' in an internal lookup table
// used to create new `OCR` instances by the `NewOCR` method.
func RegisterOCR(ctx context.Context, scheme string, init_func OCRInitializationFunc) error {

	err := ensureOCRRoster()

	if err != nil {
		return err
	}

	return ocr_roster.Register(ctx, scheme, init_func)
}

func ensureOCRRoster() error {

	if ocr_roster == nil {

		r, err := roster.NewDefaultRoster()

		if err != nil {
			return err
		}

		ocr_roster = r
	}

	return nil
}

// NewOCR returns a new `OCR` instance configured by 'uri'. The value of 'uri' is parsed
// as a `url.URL` and its scheme is used as the key for a corresponding `OCRInitializationFunc`
// function used to instantiate the new `OCR`. It is assumed that the scheme (and initialization
// function) have been registered by the `RegisterOCR` method.
func NewOCR(ctx context.Context, uri string) (OCR, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	scheme := u.Scheme

	err = ensureOCRRoster()

	if err != nil {
		return nil, err
	}

	i, err := ocr_roster.Driver(ctx, scheme)

	if err != nil {
		return nil, fmt.Errorf("Failed to find OCR for '%s', %w", scheme, err)
	}

	init_func := i.(OCRInitializationFunc)
	return init_func(ctx, uri)
}

// Schemes returns the list of schemes that have been registered.
func Schemes() []string {

	ctx := context.Background()
	schemes := []string{}

	err := ensureOCRRoster()

	if err != nil {
		return schemes
	}

	for _, dr := range ocr_roster.Drivers(ctx) {
		scheme := fmt.Sprintf("%s://", strings.ToLower(dr))
		schemes = append(schemes, scheme)
	}

	sort.Strings(schemes)
	return schemes
}

// FilterByConfidence returns the members of 'words' with a confidence of at least 'min'.
func FilterByConfidence(words []*Word, min float64) []*Word {

	kept := make([]*Word, 0)

	for _, w := range words {

		if w.Confidence >= min {
			kept = append(kept, w)
		}
	}

	return kept
}
