package gazetteer

import (
	"log/slog"
)

const (
	// DEFAULT_CHUNK_SIZE is the maximum number of occurrences disambiguated together.
	DEFAULT_CHUNK_SIZE int = 8
	// DEFAULT_START_DEPTH is the number of top candidates per occurrence considered in the first pass.
	DEFAULT_START_DEPTH int = 3
	// DEFAULT_MAX_DEPTH is the deepest search attempted regardless of improvement.
	DEFAULT_MAX_DEPTH int = 10
	// DEFAULT_MAX_COMBINATIONS is the maximum number of combinations scored at any one depth. Deeper
	// passes over large chunks can exceed it, in which case only a prefix of the combinations is scored.
	DEFAULT_MAX_COMBINATIONS int = 250000
)

// type SpringfieldOptions defines configuration for a `Springfield` resolver. Zero values are replaced
// by their defaults.
type SpringfieldOptions struct {
	ChunkSize       int `yaml:"chunk_size" json:"chunk_size"`
	StartDepth      int `yaml:"start_depth" json:"start_depth"`
	MaxDepth        int `yaml:"max_depth" json:"max_depth"`
	// MaxCombinations caps the combinations scored at any one depth. Passes that hit the cap are partial.
	MaxCombinations int `yaml:"max_combinations" json:"max_combinations"`
}

// type Springfield chooses one gazetteer candidate for each of a list of place name occurrences such
// that the chosen candidates are, as far as possible, in the same countries and regions. It is a
// bounded heuristic and not guaranteed to find the best combination.
type Springfield struct {
	chunk_size       int
	start_depth      int
	max_depth        int
	max_combinations int
}

// NewSpringfield returns a new `Springfield` instance configured by 'opts', which may be nil.
func NewSpringfield(opts *SpringfieldOptions) *Springfield {

	s := &Springfield{
		chunk_size:       DEFAULT_CHUNK_SIZE,
		start_depth:      DEFAULT_START_DEPTH,
		max_depth:        DEFAULT_MAX_DEPTH,
		max_combinations: DEFAULT_MAX_COMBINATIONS,
	}

	if opts == nil {
		return s
	}

	if opts.ChunkSize > 0 {
		s.chunk_size = opts.ChunkSize
	}

	if opts.StartDepth > 0 {
		s.start_depth = opts.StartDepth
	}

	if opts.MaxDepth > 0 {
		s.max_depth = opts.MaxDepth
	}

	if s.max_depth < s.start_depth {
		s.max_depth = s.start_depth
	}

	if opts.MaxCombinations > 0 {
		s.max_combinations = opts.MaxCombinations
	}

	return s
}

// Resolve returns one candidate for each member of 'occurrences', which are the ranked gazetteer
// results for each place name in document order. The returned slice has the same length as
// 'occurrences'; entries for occurrences without any candidates are nil.
func (s *Springfield) Resolve(occurrences [][]*GazetteerCandidate) []*GazetteerCandidate {

	resolved := make([]*GazetteerCandidate, len(occurrences))

	// Positions of occurrences that have at least one candidate
	positions := make([]int, 0)

	for idx, candidates := range occurrences {

		if len(candidates) > 0 {
			positions = append(positions, idx)
		}
	}

	for _, chunk := range chunkPositions(positions, s.chunk_size) {

		lists := make([][]*GazetteerCandidate, len(chunk))

		for i, pos := range chunk {
			lists[i] = occurrences[pos]
		}

		best, _ := s.resolveChunk(lists)

		for i, pos := range chunk {
			resolved[pos] = best[i]
		}
	}

	return resolved
}

// resolveChunk deepens the search while the best score strictly improves and returns the best
// combination along with the best score of every depth that was accepted.
func (s *Springfield) resolveChunk(lists [][]*GazetteerCandidate) ([]*GazetteerCandidate, []float64) {

	var best []*GazetteerCandidate
	best_score := 0.0

	trace := make([]float64, 0)

	for d := s.start_depth; d <= s.max_depth; d++ {

		combo, score := s.bestAtDepth(lists, d)

		slog.Debug("Springfield depth", "depth", d, "score", score, "occurrences", len(lists))

		if best != nil && score <= best_score {
			break
		}

		best = combo
		best_score = score
		trace = append(trace, score)
	}

	return best, trace
}

// bestAtDepth enumerates combinations of the top 'depth' candidates of each list, odometer fashion,
// and returns the highest scoring one. Ties go to the combination found first, which favours higher
// ranked candidates. Enumeration stops after max_combinations, so a deep pass over a large chunk is
// partial: the odometer advances the last occurrence fastest and the first occurrence may never move
// past its top few candidates (with 8 occurrences at depth 5 and the default cap the first occurrence
// never reaches its fifth candidate).
func (s *Springfield) bestAtDepth(lists [][]*GazetteerCandidate, depth int) ([]*GazetteerCandidate, float64) {

	count := len(lists)

	limits := make([]int, count)

	for i, l := range lists {
		limits[i] = min(depth, len(l))
	}

	indices := make([]int, count)
	combo := make([]*GazetteerCandidate, count)

	var best []*GazetteerCandidate
	best_score := -1.0

	for n := 0; n < s.max_combinations; n++ {

		for i, idx := range indices {
			combo[i] = lists[i][idx]
		}

		score := SpringfieldScore(combo, depth)

		if score > best_score {
			best_score = score
			best = append(make([]*GazetteerCandidate, 0, count), combo...)
		}

		// Advance the odometer; stop once every position has wrapped

		pos := count - 1

		for pos >= 0 {

			indices[pos] += 1

			if indices[pos] < limits[pos] {
				break
			}

			indices[pos] = 0
			pos -= 1
		}

		if pos < 0 {
			break
		}
	}

	return best, best_score
}

// SpringfieldScore returns the coherence score of 'combo' at search depth 'depth':
//
//	(len(combo) / (distinct countries + distinct country/region pairs)) / depth
func SpringfieldScore(combo []*GazetteerCandidate, depth int) float64 {

	if len(combo) == 0 || depth < 1 {
		return 0.0
	}

	countries := make(map[string]bool)
	regions := make(map[string]bool)

	for _, c := range combo {
		countries[c.Country] = true
		regions[c.RegionKey()] = true
	}

	distinct := float64(len(countries) + len(regions))

	return (float64(len(combo)) / distinct) / float64(depth)
}

// chunkPositions splits 'positions' in to the fewest chunks of at most 'size' members, with sizes
// differing by at most one so that no chunk is left with a tiny remainder.
func chunkPositions(positions []int, size int) [][]int {

	n := len(positions)
	chunks := make([][]int, 0)

	if n == 0 {
		return chunks
	}

	if size < 1 {
		size = 1
	}

	count := (n + size - 1) / size
	base := n / count
	extra := n % count

	offset := 0

	for i := 0; i < count; i++ {

		l := base

		if i < extra {
			l += 1
		}

		chunks = append(chunks, positions[offset:offset+l])
		offset += l
	}

	return chunks
}
