// Package resolver provides strategies for collapsing a set of candidate extents in to a single extent.
package resolver

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/aaronland/go-roster"
	"github.com/sfomuseum/go-geoextent/location"
)

// type Resolver is an interface for collapsing a `location.CandidateSet` in to a single `location.GeoExtent`.
type Resolver interface {
	// Resolve returns the extent derived from 'set'. The boolean is false when there is no answer,
	// which is not an error.
	Resolve(context.Context, *location.CandidateSet) (*location.GeoExtent, bool)
}

// ResolverInitializationFunc is a function defined by individual resolver packages and used to create
// an instance of that resolver.
type ResolverInitializationFunc func(ctx context.Context, uri string) (Resolver, error)

var resolver_roster roster.Roster

// RegisterResolver registers 'scheme' as a key pointing to 'init_func' in an internal lookup table
// used to create new `Resolver` instances by the `NewResolver` method.
func RegisterResolver(ctx context.Context, scheme string, init_func ResolverInitializationFunc) error {

	err := ensureResolverRoster()

	if err != nil {
		return err
	}

	return resolver_roster.Register(ctx, scheme, init_func)
}

func ensureResolverRoster() error {

	if resolver_roster == nil {

		r, err := roster.NewDefaultRoster()

		if err != nil {
			return err
		}

		resolver_roster = r
	}

	return nil
}

// NewResolver returns a new `Resolver` instance configured by 'uri'. The value of 'uri' is parsed
// as a `url.URL` and its scheme is used as the key for a corresponding `ResolverInitializationFunc`
// function used to instantiate the new `Resolver`. It is assumed that the scheme (and initialization
// function) have been registered by the `RegisterResolver` method.
func NewResolver(ctx context.Context, uri string) (Resolver, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	scheme := u.Scheme

	err = ensureResolverRoster()

	if err != nil {
		return nil, err
	}

	i, err := resolver_roster.Driver(ctx, scheme)

	if err != nil {
		return nil, fmt.Errorf("Failed to find resolver for '%s', %w", scheme, err)
	}

	init_func := i.(ResolverInitializationFunc)
	return init_func(ctx, uri)
}

// Schemes returns the list of schemes that have been registered.
func Schemes() []string {

	ctx := context.Background()
	schemes := []string{}

	err := ensureResolverRoster()

	if err != nil {
		return schemes
	}

	for _, dr := range resolver_roster.Drivers(ctx) {
		scheme := fmt.Sprintf("%s://", strings.ToLower(dr))
		schemes = append(schemes, scheme)
	}

	sort.Strings(schemes)
	return schemes
}
