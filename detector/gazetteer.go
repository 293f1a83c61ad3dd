package detector

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/sfomuseum/go-geoextent/gazetteer"
	"github.com/sfomuseum/go-geoextent/location"
	"github.com/sfomuseum/go-geoextent/names"
)

// DEFAULT_GAZETTEER_LIMIT is the default number of gazetteer results considered for each place name.
const DEFAULT_GAZETTEER_LIMIT int = 10

// type GazetteerSource implements the `TextSignalSource` interface for place names in text. Names are
// found by a `names.Recognizer`, demonyms are discarded, the remaining names are looked up in a
// `gazetteer.Gazetteer` and a `gazetteer.Springfield` chooses one candidate for each name.
type GazetteerSource struct {
	TextSignalSource
	gazetteer   gazetteer.Gazetteer
	recognizer  names.Recognizer
	demonyms    *gazetteer.DemonymFilter
	springfield *gazetteer.Springfield
	fuzzy       bool
	limit       int
}

func init() {

	ctx := context.Background()

	err := RegisterTextSignalSource(ctx, "gazetteer", NewGazetteerSource)

	if err != nil {
		panic(err)
	}
}

// NewGazetteerSource returns a new `GazetteerSource` instance. 'uri' takes the form of:
//
//	gazetteer://?fuzzy={BOOLEAN}&limit={INT}
//
// 'services' must provide a gazetteer. If it does not provide a recognizer the "capitals://" recognizer
// is used; the demonym filter and Springfield resolver default to their default configurations.
func NewGazetteerSource(ctx context.Context, uri string, services *Services) (TextSignalSource, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	if services.Gazetteer == nil {
		return nil, fmt.Errorf("Gazetteer source requires a gazetteer, %w", gazetteer.ErrUnavailable)
	}

	q := u.Query()

	s := &GazetteerSource{
		gazetteer:   services.Gazetteer,
		recognizer:  services.Recognizer,
		demonyms:    services.Demonyms,
		springfield: services.Springfield,
		limit:       DEFAULT_GAZETTEER_LIMIT,
	}

	if q.Has("fuzzy") {

		v, err := strconv.ParseBool(q.Get("fuzzy"))

		if err != nil {
			return nil, fmt.Errorf("Failed to parse ?fuzzy= parameter, %w", err)
		}

		s.fuzzy = v
	}

	if q.Has("limit") {

		v, err := strconv.Atoi(q.Get("limit"))

		if err != nil || v < 1 {
			return nil, fmt.Errorf("Invalid ?limit= parameter")
		}

		s.limit = v
	}

	if s.recognizer == nil {

		r, err := names.NewRecognizer(ctx, "capitals://")

		if err != nil {
			return nil, fmt.Errorf("Failed to create recognizer, %w", err)
		}

		s.recognizer = r
	}

	if s.demonyms == nil {
		s.demonyms = gazetteer.NewDemonymFilter()
	}

	if s.springfield == nil {
		s.springfield = gazetteer.NewSpringfield(nil)
	}

	return s, nil
}

// ExtentsFromText returns one extent for each place name in 'text' that the gazetteer knows about. A
// failed lookup skips that name; an error is only returned if every lookup failed.
func (s *GazetteerSource) ExtentsFromText(ctx context.Context, text string) ([]*location.GeoExtent, error) {

	occurrences, err := s.recognizer.Recognize(ctx, text)

	if err != nil {
		return nil, fmt.Errorf("Failed to recognize place names, %w", err)
	}

	place_names := s.demonyms.Filter(names.Texts(occurrences))

	extents := make([]*location.GeoExtent, 0)

	if len(place_names) == 0 {
		return extents, nil
	}

	var result error
	failed := 0

	candidates := make([][]*gazetteer.GazetteerCandidate, len(place_names))

	for idx, name := range place_names {

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			// pass
		}

		results, err := s.gazetteer.Search(ctx, name, s.fuzzy)

		if err != nil {
			slog.Warn("Failed to search gazetteer", "name", name, "error", err)
			result = multierror.Append(result, fmt.Errorf("Failed to search for '%s', %w", name, err))
			failed += 1
			continue
		}

		if len(results) > s.limit {
			results = results[:s.limit]
		}

		slog.Debug("Gazetteer results", "name", name, "count", len(results))
		candidates[idx] = results
	}

	if failed == len(place_names) {
		return nil, result
	}

	for _, c := range s.springfield.Resolve(candidates) {

		if c == nil {
			continue
		}

		slog.Debug("Resolved place name", "candidate", c.String())
		extents = append(extents, c.Extent())
	}

	return extents, nil
}
