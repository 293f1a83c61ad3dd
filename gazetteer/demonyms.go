package gazetteer

// DEFAULT_DEMONYMS are words that name entity recognizers commonly report as places but which describe
// people or languages. Matching is done against normalized names.
var DEFAULT_DEMONYMS = []string{
	"african",
	"american",
	"arab",
	"arabian",
	"asian",
	"australian",
	"austrian",
	"belgian",
	"brazilian",
	"british",
	"canadian",
	"chinese",
	"danish",
	"dutch",
	"egyptian",
	"english",
	"european",
	"finnish",
	"french",
	"german",
	"greek",
	"indian",
	"irish",
	"italian",
	"japanese",
	"korean",
	"mexican",
	"norwegian",
	"polish",
	"portuguese",
	"russian",
	"scottish",
	"spanish",
	"swedish",
	"swiss",
	"turkish",
	"welsh",
}

// type DemonymFilter discards place name occurrences that are demonyms.
type DemonymFilter struct {
	demonyms map[string]bool
}

// NewDemonymFilter returns a new `DemonymFilter` for 'demonyms'. If 'demonyms' is empty DEFAULT_DEMONYMS
// is used.
func NewDemonymFilter(demonyms ...string) *DemonymFilter {

	if len(demonyms) == 0 {
		demonyms = DEFAULT_DEMONYMS
	}

	lookup := make(map[string]bool)

	for _, d := range demonyms {
		lookup[NormalizeName(d)] = true
	}

	f := &DemonymFilter{
		demonyms: lookup,
	}

	return f
}

// IsDemonym reports whether 'name', or its plural, is a known demonym.
func (f *DemonymFilter) IsDemonym(name string) bool {

	n := NormalizeName(name)

	if f.demonyms[n] {
		return true
	}

	l := len(n)

	if l > 1 && n[l-1] == 's' && f.demonyms[n[:l-1]] {
		return true
	}

	return false
}

// Filter returns the members of 'names' which are not demonyms, preserving their order.
func (f *DemonymFilter) Filter(names []string) []string {

	kept := make([]string, 0)

	for _, n := range names {

		if f.IsDemonym(n) {
			continue
		}

		kept = append(kept, n)
	}

	return kept
}
