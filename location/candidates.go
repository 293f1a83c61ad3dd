package location

import (
	"sort"

	"github.com/paulmach/orb"
)

// DEFAULT_WEIGHT is the ambient weight a `CandidateSet` starts with and resets to.
const DEFAULT_WEIGHT float64 = 1.0

// type CandidateSet is an ordered collection of `GeoExtent` candidates. Every extent added to the set
// is stamped with the set's current ambient weight. A set is owned by a single document or figure
// scope and is not safe for concurrent use.
type CandidateSet struct {
	extents []*GeoExtent
	weight  float64
}

// NewCandidateSet returns a new, empty `CandidateSet`, optionally seeded with 'extents' (which are
// stamped with DEFAULT_WEIGHT).
func NewCandidateSet(extents ...*GeoExtent) *CandidateSet {

	s := &CandidateSet{
		extents: make([]*GeoExtent, 0),
		weight:  DEFAULT_WEIGHT,
	}

	s.Add(extents...)
	return s
}

// SetWeight assigns the ambient weight applied to subsequently added extents.
func (s *CandidateSet) SetWeight(w float64) {
	s.weight = clamp(w)
}

// ResetWeight restores the ambient weight to DEFAULT_WEIGHT.
func (s *CandidateSet) ResetWeight() {
	s.weight = DEFAULT_WEIGHT
}

// Weight returns the current ambient weight.
func (s *CandidateSet) Weight() float64 {
	return s.weight
}

// Add appends 'extents' to the set, assigning each the current ambient weight. Nil values are ignored.
func (s *CandidateSet) Add(extents ...*GeoExtent) {

	for _, e := range extents {

		if e == nil {
			continue
		}

		e.Weight = s.weight
		s.extents = append(s.extents, e)
	}
}

// AddWithWeight adds 'extents' stamped with 'w' and then resets the ambient weight.
func (s *CandidateSet) AddWithWeight(w float64, extents ...*GeoExtent) {
	s.SetWeight(w)
	defer s.ResetWeight()
	s.Add(extents...)
}

// Len returns the number of extents in the set.
func (s *CandidateSet) Len() int {
	return len(s.extents)
}

// Extents returns the members of the set sorted in ascending order of score. Extents with equal
// scores keep the order they were added in.
func (s *CandidateSet) Extents() []*GeoExtent {

	sorted := make([]*GeoExtent, len(s.extents))
	copy(sorted, s.extents)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score() < sorted[j].Score()
	})

	return sorted
}

// Highest returns the extent with the highest score. It is always the last member of Extents(), so
// when several extents share the highest score the one added last is returned.
func (s *CandidateSet) Highest() (*GeoExtent, bool) {

	extents := s.Extents()

	if len(extents) == 0 {
		return nil, false
	}

	return extents[len(extents)-1], true
}

// Bound returns the geometric union of every member of the set.
func (s *CandidateSet) Bound() (orb.Bound, bool) {

	if len(s.extents) == 0 {
		return orb.Bound{}, false
	}

	b := s.extents[0].Bound()

	for _, e := range s.extents[1:] {
		b = b.Union(e.Bound())
	}

	return b, true
}

// MeanScore returns the arithmetic mean of the members' scores, or 0 for an empty set.
func (s *CandidateSet) MeanScore() float64 {

	if len(s.extents) == 0 {
		return 0.0
	}

	sum := 0.0

	for _, e := range s.extents {
		sum += e.Score()
	}

	return sum / float64(len(s.extents))
}

// MaxScore returns the highest member score, or 0 for an empty set.
func (s *CandidateSet) MaxScore() float64 {

	e, ok := s.Highest()

	if !ok {
		return 0.0
	}

	return e.Score()
}

// Filter returns a new set containing the members for which 'fn' returns true. Members keep their
// existing weights.
func (s *CandidateSet) Filter(fn func(*GeoExtent) bool) *CandidateSet {

	new_s := &CandidateSet{
		extents: make([]*GeoExtent, 0),
		weight:  DEFAULT_WEIGHT,
	}

	for _, e := range s.extents {

		if fn(e) {
			new_s.extents = append(new_s.extents, e)
		}
	}

	return new_s
}

// Copy returns a deep copy of the set. It is used to seed a figure's set from its document's set.
func (s *CandidateSet) Copy() *CandidateSet {

	new_s := &CandidateSet{
		extents: make([]*GeoExtent, len(s.extents)),
		weight:  DEFAULT_WEIGHT,
	}

	for idx, e := range s.extents {
		new_s.extents[idx] = e.Clone()
	}

	return new_s
}
