// Package gazetteer provides interfaces and implementations for looking up place names, along with
// methods for choosing a coherent set of candidates for the place names mentioned in a document.
package gazetteer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"github.com/aaronland/go-roster"
	"github.com/sfomuseum/go-geoextent/location"
)

// ErrUnavailable is returned when a gazetteer can not be opened or queried.
var ErrUnavailable = errors.New("Gazetteer unavailable")

// FALLBACK_GAZETTEER_URI is the gazetteer used when a configured gazetteer can not be opened.
const FALLBACK_GAZETTEER_URI string = "countries://"

// type GazetteerCandidate is a single place matching a name search.
type GazetteerCandidate struct {
	// Id is the unique identifier of the place in its gazetteer.
	Id int64 `json:"id"`
	// Name is the name that was matched.
	Name string `json:"name"`
	// Placetype is the kind of place (country, region, locality, ...).
	Placetype string `json:"placetype,omitempty"`
	// Country is the ISO 3166-1 alpha-2 code of the country containing the place.
	Country string `json:"country,omitempty"`
	// Region is the code (or identifier) of the administrative region containing the place.
	Region string `json:"region,omitempty"`
	// Importance is a 0-1 measure of how likely a bare mention of the name refers to this place.
	Importance float64 `json:"importance"`
	// Rank is the (zero-indexed) position of the candidate in its result set.
	Rank int `json:"rank"`
	// West, South, East and North are the bounds of the place.
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// Extent returns a `location.GeoExtent` for 'c' whose probability is the candidate's importance.
func (c *GazetteerCandidate) Extent() *location.GeoExtent {
	e := location.NewGeoExtent(c.West, c.South, c.East, c.North, c.Importance)
	e.Source = fmt.Sprintf("gazetteer#%d", c.Id)
	return e
}

// RegionKey returns the country and region codes of 'c' combined in to a single key.
func (c *GazetteerCandidate) RegionKey() string {
	return fmt.Sprintf("%s:%s", c.Country, c.Region)
}

func (c *GazetteerCandidate) String() string {
	return fmt.Sprintf("%s (%d) %s/%s", c.Name, c.Id, c.Country, c.Region)
}

// type Gazetteer is an interface for searching place names. Implementations must be safe for
// concurrent reads.
type Gazetteer interface {
	// Search returns the candidates matching 'name' ordered by descending importance. If 'fuzzy' is
	// true names beginning with 'name' also match.
	Search(context.Context, string, bool) ([]*GazetteerCandidate, error)
	// Close releases any resources held by the gazetteer.
	Close() error
}

// GazetteerInitializationFunc is a function defined by individual gazetteer packages and used to create
// an instance of that gazetteer.
type GazetteerInitializationFunc func(ctx context.Context, uri string) (Gazetteer, error)

var gazetteer_roster roster.Roster

// RegisterGazetteer registers 'scheme' as a key pointing to 'init_func' in an internal lookup table
// used to create new `Gazetteer` instances by the `NewGazetteer` method.
func RegisterGazetteer(ctx context.Context, scheme string, init_func GazetteerInitializationFunc) error {

	err := ensureGazetteerRoster()

	if err != nil {
		return err
	}

	return gazetteer_roster.Register(ctx, scheme, init_func)
}

func ensureGazetteerRoster() error {

	if gazetteer_roster == nil {

		r, err := roster.NewDefaultRoster()

		if err != nil {
			return err
		}

		gazetteer_roster = r
	}

	return nil
}

// NewGazetteer returns a new `Gazetteer` instance configured by 'uri'. The value of 'uri' is parsed
// as a `url.URL` and its scheme is used as the key for a corresponding `GazetteerInitializationFunc`
// function used to instantiate the new `Gazetteer`. It is assumed that the scheme (and initialization
// function) have been registered by the `RegisterGazetteer` method.
func NewGazetteer(ctx context.Context, uri string) (Gazetteer, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	scheme := u.Scheme

	err = ensureGazetteerRoster()

	if err != nil {
		return nil, err
	}

	i, err := gazetteer_roster.Driver(ctx, scheme)

	if err != nil {
		return nil, fmt.Errorf("Failed to find gazetteer for '%s', %w", scheme, err)
	}

	init_func := i.(GazetteerInitializationFunc)
	return init_func(ctx, uri)
}

// NewGazetteerWithFallback returns the `Gazetteer` for 'uri' or, if it can not be created, the
// gazetteer defined by FALLBACK_GAZETTEER_URI. An error is only returned if neither can be created.
func NewGazetteerWithFallback(ctx context.Context, uri string) (Gazetteer, error) {

	g, err := NewGazetteer(ctx, uri)

	if err == nil {
		return g, nil
	}

	slog.Warn("Failed to create gazetteer, using fallback", "uri", uri, "fallback", FALLBACK_GAZETTEER_URI, "error", err)

	fb, fb_err := NewGazetteer(ctx, FALLBACK_GAZETTEER_URI)

	if fb_err != nil {
		return nil, fmt.Errorf("%w, %w", ErrUnavailable, fb_err)
	}

	return fb, nil
}

// Schemes returns the list of schemes that have been registered.
func Schemes() []string {

	ctx := context.Background()
	schemes := []string{}

	err := ensureGazetteerRoster()

	if err != nil {
		return schemes
	}

	for _, dr := range gazetteer_roster.Drivers(ctx) {
		scheme := fmt.Sprintf("%s://", strings.ToLower(dr))
		schemes = append(schemes, scheme)
	}

	sort.Strings(schemes)
	return schemes
}

// rankCandidates sorts 'candidates' by descending importance (and ascending id, for ties) and assigns
// each its rank.
func rankCandidates(candidates []*GazetteerCandidate) []*GazetteerCandidate {

	sort.SliceStable(candidates, func(i, j int) bool {

		if candidates[i].Importance != candidates[j].Importance {
			return candidates[i].Importance > candidates[j].Importance
		}

		return candidates[i].Id < candidates[j].Id
	})

	for idx, c := range candidates {
		c.Rank = idx
	}

	return candidates
}
