// Package detector provides the signal sources which turn text and images in to candidate extents.
// Text sources read titles, abstracts and captions; graphic sources read figure images. Sources are
// constructed from URIs and share a set of collaborator services.
package detector

import (
	"context"
	"fmt"
	"image"
	"net/url"
	"sort"
	"strings"

	"github.com/aaronland/go-roster"
	"github.com/sfomuseum/go-geoextent/calibration"
	"github.com/sfomuseum/go-geoextent/classifier"
	"github.com/sfomuseum/go-geoextent/gazetteer"
	"github.com/sfomuseum/go-geoextent/lines"
	"github.com/sfomuseum/go-geoextent/location"
	"github.com/sfomuseum/go-geoextent/names"
	"github.com/sfomuseum/go-geoextent/ocr"
)

// type Services are the collaborators shared by signal sources. Any member may be nil, in which case
// sources that require it can not be created.
type Services struct {
	Gazetteer   gazetteer.Gazetteer
	Recognizer  names.Recognizer
	Demonyms    *gazetteer.DemonymFilter
	Springfield *gazetteer.Springfield
	OCR         ocr.OCR
	Lines       lines.Detector
	Calibrator  *calibration.Calibrator
	Classifier  classifier.Classifier
}

// type TextSignalSource is an interface for deriving candidate extents from text.
type TextSignalSource interface {
	// ExtentsFromText returns the candidate extents found in 'text'. Weights are assigned by the
	// `location.CandidateSet` the extents are added to.
	ExtentsFromText(context.Context, string) ([]*location.GeoExtent, error)
}

// type GraphicSignalSource is an interface for deriving candidate extents from an image.
type GraphicSignalSource interface {
	// ExtentsFromImage returns the candidate extents found in 'im'.
	ExtentsFromImage(context.Context, image.Image) ([]*location.GeoExtent, error)
}

// TextSignalSourceInitializationFunc is a function defined by individual source packages and used to create
// an instance of that source.
type TextSignalSourceInitializationFunc func(ctx context.Context, uri string, services *Services) (TextSignalSource, error)

// GraphicSignalSourceInitializationFunc is a function defined by individual source packages and used to create
// an instance of that source.
type GraphicSignalSourceInitializationFunc func(ctx context.Context, uri string, services *Services) (GraphicSignalSource, error)

var text_roster roster.Roster

var graphic_roster roster.Roster

// RegisterTextSignalSource registers 'scheme' as a key pointing to 'init_func' in an internal lookup table
// used to create new `TextSignalSource` instances by the `NewTextSignalSource` method.
func RegisterTextSignalSource(ctx context.Context, scheme string, init_func TextSignalSourceInitializationFunc) error {

	err := ensureRosters()

	if err != nil {
		return err
	}

	return text_roster.Register(ctx, scheme, init_func)
}

// RegisterGraphicSignalSource registers 'scheme' as a key pointing to 'init_func' in an internal lookup table
// used to create new `GraphicSignalSource` instances by the `NewGraphicSignalSource` method.
func RegisterGraphicSignalSource(ctx context.Context, scheme string, init_func GraphicSignalSourceInitializationFunc) error {

	err := ensureRosters()

	if err != nil {
		return err
	}

	return graphic_roster.Register(ctx, scheme, init_func)
}

func ensureRosters() error {

	if text_roster == nil {

		r, err := roster.NewDefaultRoster()

		if err != nil {
			return err
		}

		text_roster = r
	}

	if graphic_roster == nil {

		r, err := roster.NewDefaultRoster()

		if err != nil {
			return err
		}

		graphic_roster = r
	}

	return nil
}

// NewTextSignalSource returns a new `TextSignalSource` instance configured by 'uri' and using 'services'.
func NewTextSignalSource(ctx context.Context, uri string, services *Services) (TextSignalSource, error) {

	scheme, err := schemeFromURI(uri)

	if err != nil {
		return nil, err
	}

	i, err := text_roster.Driver(ctx, scheme)

	if err != nil {
		return nil, fmt.Errorf("Failed to find text signal source for '%s', %w", scheme, err)
	}

	init_func := i.(TextSignalSourceInitializationFunc)
	return init_func(ctx, uri, ensureServices(services))
}

// NewGraphicSignalSource returns a new `GraphicSignalSource` instance configured by 'uri' and using 'services'.
func NewGraphicSignalSource(ctx context.Context, uri string, services *Services) (GraphicSignalSource, error) {

	scheme, err := schemeFromURI(uri)

	if err != nil {
		return nil, err
	}

	i, err := graphic_roster.Driver(ctx, scheme)

	if err != nil {
		return nil, fmt.Errorf("Failed to find graphic signal source for '%s', %w", scheme, err)
	}

	init_func := i.(GraphicSignalSourceInitializationFunc)
	return init_func(ctx, uri, ensureServices(services))
}

// TextSchemes returns the list of text signal source schemes that have been registered.
func TextSchemes() []string {
	return schemes(text_roster)
}

// GraphicSchemes returns the list of graphic signal source schemes that have been registered.
func GraphicSchemes() []string {
	return schemes(graphic_roster)
}

func schemes(r roster.Roster) []string {

	ctx := context.Background()
	schemes := []string{}

	err := ensureRosters()

	if err != nil || r == nil {
		return schemes
	}

	for _, dr := range r.Drivers(ctx) {
		scheme := fmt.Sprintf("%s://", strings.ToLower(dr))
		schemes = append(schemes, scheme)
	}

	sort.Strings(schemes)
	return schemes
}

func schemeFromURI(uri string) (string, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return "", fmt.Errorf("Failed to parse URI, %w", err)
	}

	err = ensureRosters()

	if err != nil {
		return "", err
	}

	return u.Scheme, nil
}

func ensureServices(services *Services) *Services {

	if services == nil {
		services = &Services{}
	}

	return services
}
