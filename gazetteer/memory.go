package gazetteer

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// type MemoryGazetteer implements the `Gazetteer` interface for places held in memory.
type MemoryGazetteer struct {
	Gazetteer
	places map[string][]*GazetteerCandidate
	mu     *sync.RWMutex
}

func init() {

	ctx := context.Background()

	err := RegisterGazetteer(ctx, "memory", NewMemoryGazetteer)

	if err != nil {
		panic(err)
	}
}

// NewMemoryGazetteer returns a new, empty `MemoryGazetteer` instance. 'uri' takes the form of:
//
//	memory://
func NewMemoryGazetteer(ctx context.Context, uri string) (Gazetteer, error) {

	g := &MemoryGazetteer{
		places: make(map[string][]*GazetteerCandidate),
		mu:     new(sync.RWMutex),
	}

	return g, nil
}

// Add indexes 'candidates' by their normalized names.
func (g *MemoryGazetteer) Add(ctx context.Context, candidates ...*GazetteerCandidate) error {

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, c := range candidates {
		key := NormalizeName(c.Name)
		g.places[key] = append(g.places[key], c)
	}

	return nil
}

// Search returns copies of the candidates whose normalized name equals (or, if 'fuzzy' is true,
// begins with) the normalized form of 'name'.
func (g *MemoryGazetteer) Search(ctx context.Context, name string, fuzzy bool) ([]*GazetteerCandidate, error) {

	q := NormalizeName(name)

	results := make([]*GazetteerCandidate, 0)

	if q == "" {
		return results, nil
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	keys := make([]string, 0)

	for key := range g.places {

		if key == q || (fuzzy && strings.HasPrefix(key, q)) {
			keys = append(keys, key)
		}
	}

	// Exact matches first, then shortest names
	sort.Slice(keys, func(i, j int) bool {

		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}

		return keys[i] < keys[j]
	})

	seen := make(map[int64]bool)

	for _, key := range keys {

		for _, c := range g.places[key] {

			if seen[c.Id] {
				continue
			}

			seen[c.Id] = true

			copy_c := *c
			results = append(results, &copy_c)
		}
	}

	return rankCandidates(results), nil
}

func (g *MemoryGazetteer) Close() error {
	return nil
}
