package gazetteer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/sfomuseum/go-geoextent/geometry"
	"github.com/tidwall/gjson"
	"github.com/whosonfirst/go-reader/v2"
	"github.com/whosonfirst/go-whosonfirst-feature/properties"
)

// DEFAULT_PLACETYPE_IMPORTANCE is the importance assigned to Who's On First placetypes not listed in
// PLACETYPE_IMPORTANCE.
const DEFAULT_PLACETYPE_IMPORTANCE float64 = 0.3

// PLACETYPE_IMPORTANCE maps Who's On First placetypes to the importance of their gazetteer entries.
var PLACETYPE_IMPORTANCE = map[string]float64{
	"continent":     1.0,
	"ocean":         0.9,
	"country":       0.9,
	"dependency":    0.7,
	"disputed":      0.6,
	"marinearea":    0.7,
	"macroregion":   0.7,
	"region":        0.7,
	"macrocounty":   0.5,
	"county":        0.5,
	"locality":      0.6,
	"localadmin":    0.4,
	"borough":       0.4,
	"macrohood":     0.3,
	"neighbourhood": 0.2,
	"microhood":     0.1,
	"campus":        0.2,
	"postalcode":    0.1,
	"venue":         0.1,
}

// CandidatesFromWhosOnFirst returns one `GazetteerCandidate` for each distinct name (the "wof:name"
// property and any preferred or variant names) of the Who's On First record 'body'.
func CandidatesFromWhosOnFirst(body []byte) ([]*GazetteerCandidate, error) {

	id, err := properties.Id(body)

	if err != nil {
		return nil, fmt.Errorf("Failed to derive ID, %w", err)
	}

	name, err := properties.Name(body)

	if err != nil {
		return nil, fmt.Errorf("Failed to derive name for %d, %w", id, err)
	}

	pt, err := properties.Placetype(body)

	if err != nil {
		return nil, fmt.Errorf("Failed to derive placetype for %d, %w", id, err)
	}

	b, err := geometry.DeriveBound(body)

	if err != nil {
		return nil, fmt.Errorf("Failed to derive bounds for %d, %w", id, err)
	}

	country := gjson.GetBytes(body, "properties.wof:country").String()
	region := ""

	for _, h := range properties.Hierarchies(body) {

		region_id, ok := h["region_id"]

		if ok && region_id > 0 {
			region = strconv.FormatInt(region_id, 10)
			break
		}
	}

	importance, ok := PLACETYPE_IMPORTANCE[pt]

	if !ok {
		importance = DEFAULT_PLACETYPE_IMPORTANCE
	}

	names := []string{name}

	props := gjson.GetBytes(body, "properties")

	props.ForEach(func(k gjson.Result, v gjson.Result) bool {

		key := k.String()

		if !strings.HasPrefix(key, "name:") {
			return true
		}

		if !strings.HasSuffix(key, "_x_preferred") && !strings.HasSuffix(key, "_x_variant") {
			return true
		}

		for _, n := range v.Array() {
			names = append(names, n.String())
		}

		return true
	})

	seen := make(map[string]bool)
	candidates := make([]*GazetteerCandidate, 0)

	for _, n := range names {

		norm := NormalizeName(n)

		if norm == "" || seen[norm] {
			continue
		}

		seen[norm] = true

		c := &GazetteerCandidate{
			Id:         id,
			Name:       n,
			Placetype:  pt,
			Country:    country,
			Region:     region,
			Importance: importance,
			West:       b.Min.X(),
			South:      b.Min.Y(),
			East:       b.Max.X(),
			North:      b.Max.Y(),
		}

		candidates = append(candidates, c)
	}

	return candidates, nil
}

// LoadWhosOnFirstCandidates reads the Who's On First records for 'ids' from 'r', concurrently, and
// returns their candidates ordered by ID.
func LoadWhosOnFirstCandidates(ctx context.Context, r reader.Reader, ids ...int64) ([]*GazetteerCandidate, error) {

	derive := func(id int64, body []byte) ([]*GazetteerCandidate, error) {

		candidates, err := CandidatesFromWhosOnFirst(body)

		if err != nil {
			return nil, err
		}

		slog.Debug("Derived candidates", "id", id, "count", len(candidates))
		return candidates, nil
	}

	results, err := geometry.LoadFromIds(ctx, r, derive, ids...)

	if err != nil {
		return nil, err
	}

	all := make([]*GazetteerCandidate, 0)

	for _, candidates := range results {
		all = append(all, candidates...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Id < all[j].Id
	})

	return all, nil
}
