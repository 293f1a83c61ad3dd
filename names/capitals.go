package names

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DEFAULT_STOPWORDS are capitalised words which commonly start sentences or captions and are never
// place names on their own.
var DEFAULT_STOPWORDS = []string{
	"a", "an", "and", "figure", "fig", "map", "maps", "in", "of", "on", "location", "locations",
	"study", "area", "areas", "site", "sites", "the", "this", "these", "those", "we", "our", "table",
	"abstract", "introduction", "from", "to", "at", "for", "with",
}

var re_word = regexp.MustCompile(`[\p{L}][\p{L}\p{M}'’\-]*`)

// type CapitalsRecognizer implements the `Recognizer` interface treating runs of adjacent capitalised
// words, excluding stopwords, as place name occurrences.
type CapitalsRecognizer struct {
	Recognizer
	stopwords map[string]bool
}

func init() {

	ctx := context.Background()

	err := RegisterRecognizer(ctx, "capitals", NewCapitalsRecognizer)

	if err != nil {
		panic(err)
	}
}

// NewCapitalsRecognizer returns a new `CapitalsRecognizer` instance. 'uri' takes the form of:
//
//	capitals://?stopword={WORD}&stopword={WORD}
//
// Where each (optional) 'stopword' is added to DEFAULT_STOPWORDS.
func NewCapitalsRecognizer(ctx context.Context, uri string) (Recognizer, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	stopwords := make(map[string]bool)

	for _, w := range DEFAULT_STOPWORDS {
		stopwords[w] = true
	}

	for _, w := range u.Query()["stopword"] {
		stopwords[strings.ToLower(w)] = true
	}

	r := &CapitalsRecognizer{
		stopwords: stopwords,
	}

	return r, nil
}

func (r *CapitalsRecognizer) Recognize(ctx context.Context, text string) ([]*Occurrence, error) {

	occurrences := make([]*Occurrence, 0)

	var current *Occurrence

	flush := func() {

		if current != nil {
			current.Text = text[current.Start:current.End]
			occurrences = append(occurrences, current)
			current = nil
		}
	}

	for _, idx := range re_word.FindAllStringIndex(text, -1) {

		start := idx[0]
		end := idx[1]
		word := text[start:end]

		if !r.isCandidate(word) {
			flush()
			continue
		}

		if current != nil && isSeparator(text[current.End:start]) {
			current.End = end
			continue
		}

		flush()

		current = &Occurrence{
			Start: start,
			End:   end,
		}
	}

	flush()
	return occurrences, nil
}

func (r *CapitalsRecognizer) isCandidate(word string) bool {

	if utf8.RuneCountInString(word) < 2 {
		return false
	}

	first, _ := utf8.DecodeRuneInString(word)

	if !unicode.IsUpper(first) {
		return false
	}

	if r.stopwords[strings.ToLower(word)] {
		return false
	}

	return true
}

// isSeparator reports whether the text between two capitalised words joins them in to a single name.
func isSeparator(s string) bool {
	return s == " " || s == "-"
}
