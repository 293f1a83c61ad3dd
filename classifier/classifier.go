// Package classifier provides interfaces and implementations for estimating whether an image is a map,
// and whether it is a map of the whole world.
package classifier

import (
	"context"
	"fmt"
	"image"
	"net/url"
	"sort"
	"strings"

	"github.com/aaronland/go-roster"
)

// type Classifier is an interface for estimating whether images are maps.
type Classifier interface {
	// MapProbability returns the probability, in the range 0-1, that an image is a map.
	MapProbability(context.Context, image.Image) (float64, error)
	// WorldMapProbability returns the probability, in the range 0-1, that an image is a map of the whole world.
	WorldMapProbability(context.Context, image.Image) (float64, error)
}

// ClassifierInitializationFunc is a function defined by individual classifier packages and used to create
// an instance of that classifier.
type ClassifierInitializationFunc func(ctx context.Context, uri string) (Classifier, error)

var classifier_roster roster.Roster

// RegisterClassifier registers 'scheme' as a key pointing to 'init_func' in an internal lookup table
// used to create new `Classifier` instances by the `NewClassifier` method.
func RegisterClassifier(ctx context.Context, scheme string, init_func ClassifierInitializationFunc) error {

	err := ensureClassifierRoster()

	if err != nil {
		return err
	}

	return classifier_roster.Register(ctx, scheme, init_func)
}

func ensureClassifierRoster() error {

	if classifier_roster == nil {

		r, err := roster.NewDefaultRoster()

		if err != nil {
			return err
		}

		classifier_roster = r
	}

	return nil
}

// NewClassifier returns a new `Classifier` instance configured by 'uri'. The value of 'uri' is parsed
// as a `url.URL` and its scheme is used as the key for a corresponding `ClassifierInitializationFunc`
// function used to instantiate the new `Classifier`. It is assumed that the scheme (and initialization
// function) have been registered by the `RegisterClassifier` method.
func NewClassifier(ctx context.Context, uri string) (Classifier, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	scheme := u.Scheme

	err = ensureClassifierRoster()

	if err != nil {
		return nil, err
	}

	i, err := classifier_roster.Driver(ctx, scheme)

	if err != nil {
		return nil, fmt.Errorf("Failed to find classifier for '%s', %w", scheme, err)
	}

	init_func := i.(ClassifierInitializationFunc)
	return init_func(ctx, uri)
}

// Schemes returns the list of schemes that have been registered.
func Schemes() []string {

	ctx := context.Background()
	schemes := []string{}

	err := ensureClassifierRoster()

	if err != nil {
		return schemes
	}

	for _, dr := range classifier_roster.Drivers(ctx) {
		scheme := fmt.Sprintf("%s://", strings.ToLower(dr))
		schemes = append(schemes, scheme)
	}

	sort.Strings(schemes)
	return schemes
}

func clamp(v float64) float64 {

	if v < 0.0 {
		return 0.0
	}

	if v > 1.0 {
		return 1.0
	}

	return v
}
