package gazetteer

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
)

//go:embed countries.csv
var countries_csv []byte

// COUNTRY_IMPORTANCE is the default importance assigned to entries in the countries table.
const COUNTRY_IMPORTANCE float64 = 0.9

// type CountriesGazetteer implements the `Gazetteer` interface for a static table of country bounding
// boxes embedded in the package. It is the always-available fallback when no other gazetteer can be
// opened.
type CountriesGazetteer struct {
	*MemoryGazetteer
}

func init() {

	ctx := context.Background()

	err := RegisterGazetteer(ctx, "countries", NewCountriesGazetteer)

	if err != nil {
		panic(err)
	}
}

// NewCountriesGazetteer returns a new `CountriesGazetteer` instance. 'uri' takes the form of:
//
//	countries://?importance={FLOAT}
//
// Where 'importance' is the optional importance assigned to every country, defaulting to COUNTRY_IMPORTANCE.
func NewCountriesGazetteer(ctx context.Context, uri string) (Gazetteer, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	importance := COUNTRY_IMPORTANCE

	str_importance := u.Query().Get("importance")

	if str_importance != "" {

		v, err := strconv.ParseFloat(str_importance, 64)

		if err != nil {
			return nil, fmt.Errorf("Failed to parse ?importance= parameter, %w", err)
		}

		importance = v
	}

	candidates, err := readCountries(bytes.NewReader(countries_csv), importance)

	if err != nil {
		return nil, fmt.Errorf("Failed to read countries table, %w", err)
	}

	m, err := NewMemoryGazetteer(ctx, "memory://")

	if err != nil {
		return nil, fmt.Errorf("Failed to create memory gazetteer, %w", err)
	}

	mem := m.(*MemoryGazetteer)

	err = mem.Add(ctx, candidates...)

	if err != nil {
		return nil, fmt.Errorf("Failed to add countries, %w", err)
	}

	g := &CountriesGazetteer{
		MemoryGazetteer: mem,
	}

	return g, nil
}

// readCountries reads rows of "id,iso,names,west,south,east,north" from 'r', where 'names' is a
// "|"-separated list, emitting one candidate per name.
func readCountries(r io.Reader, importance float64) ([]*GazetteerCandidate, error) {

	csv_r := csv.NewReader(r)
	csv_r.FieldsPerRecord = 7

	candidates := make([]*GazetteerCandidate, 0)
	header := true

	for {

		row, err := csv_r.Read()

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, err
		}

		if header {
			header = false
			continue
		}

		id, err := strconv.ParseInt(row[0], 10, 64)

		if err != nil {
			return nil, fmt.Errorf("Invalid id '%s', %w", row[0], err)
		}

		coords := make([]float64, 4)

		for i := 0; i < 4; i++ {

			v, err := strconv.ParseFloat(row[3+i], 64)

			if err != nil {
				return nil, fmt.Errorf("Invalid coordinate for %d, %w", id, err)
			}

			coords[i] = v
		}

		for _, name := range strings.Split(row[2], "|") {

			c := &GazetteerCandidate{
				Id:         id,
				Name:       name,
				Placetype:  "country",
				Country:    row[1],
				Importance: importance,
				West:       coords[0],
				South:      coords[1],
				East:       coords[2],
				North:      coords[3],
			}

			candidates = append(candidates, c)
		}
	}

	return candidates, nil
}
