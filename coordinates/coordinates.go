// Package coordinates extracts coordinate notations (WGS84 degrees, UTM, British National Grid and
// MGRS) from free text and converts them to decimal degrees.
package coordinates

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// type Format identifies the notation a coordinate was parsed from.
type Format string

const (
	WGS84            Format = "wgs84"
	WGS84_SIMPLIFIED Format = "wgs84-simplified"
	UTM              Format = "utm"
	OSGB             Format = "osgb"
	MGRS             Format = "mgrs"
)

// type Orientation identifies the axis a parsed value belongs to.
type Orientation int

const (
	UNKNOWN_ORIENTATION Orientation = iota
	LATITUDE
	LONGITUDE
	BOTH
)

// type ParsedCoordinate is a single match of one of the supported coordinate notations.
type ParsedCoordinate struct {
	// Latitude is the decimal latitude, if the match carries one.
	Latitude *float64 `json:"latitude,omitempty"`
	// Longitude is the decimal longitude, if the match carries one.
	Longitude *float64 `json:"longitude,omitempty"`
	// Value is the decimal value of a single-axis match, regardless of whether its orientation is known.
	Value float64 `json:"value"`
	// Start and End are the byte offsets of the match in the source text.
	Start int `json:"start"`
	End   int `json:"end"`
	// Text is the matched text.
	Text string `json:"text"`
	// Confidence is the likelihood, in the range 0-1, that the match is really a coordinate.
	Confidence float64 `json:"confidence"`
	Format     Format  `json:"format"`
	// UnknownOrientation is true for bare values which may be either a latitude or a longitude.
	UnknownOrientation bool `json:"unknown_orientation"`
}

// Orientation returns the axis (or axes) 'c' describes.
func (c *ParsedCoordinate) Orientation() Orientation {

	switch {
	case c.Latitude != nil && c.Longitude != nil:
		return BOTH
	case c.Latitude != nil:
		return LATITUDE
	case c.Longitude != nil:
		return LONGITUDE
	default:
		return UNKNOWN_ORIENTATION
	}
}

// IsPoint reports whether 'c' carries both a latitude and a longitude.
func (c *ParsedCoordinate) IsPoint() bool {
	return c.Orientation() == BOTH
}

func (c *ParsedCoordinate) String() string {

	switch c.Orientation() {
	case BOTH:
		return fmt.Sprintf("%s: %f, %f (%.2f)", c.Format, *c.Latitude, *c.Longitude, c.Confidence)
	case LATITUDE:
		return fmt.Sprintf("%s: lat %f (%.2f)", c.Format, *c.Latitude, c.Confidence)
	case LONGITUDE:
		return fmt.Sprintf("%s: lon %f (%.2f)", c.Format, *c.Longitude, c.Confidence)
	default:
		return fmt.Sprintf("%s: %f ? (%.2f)", c.Format, c.Value, c.Confidence)
	}
}

// ParserOptions defines configuration options for a `Parser`.
type ParserOptions struct {
	// Simplified enables the looser WGS84 grammar that accepts bare degree values and suffixless
	// numbers. Matches are flagged as having an unknown orientation and carry a low confidence.
	Simplified bool
}

// type Parser extracts coordinates from text.
type Parser struct {
	options *ParserOptions
}

// match is a span claimed by a grammar. 'coord' is nil when the span matched but could not be converted.
type match struct {
	start int
	end   int
	coord *ParsedCoordinate
}

type matcher func(text string) []*match

// NewParser returns a new `Parser` instance configured by 'opts'. A nil 'opts' yields the strict grammar.
func NewParser(opts *ParserOptions) *Parser {

	if opts == nil {
		opts = &ParserOptions{}
	}

	p := &Parser{
		options: opts,
	}

	return p
}

// Parse extracts coordinates from 'text' using the strict grammars.
func Parse(text string) []*ParsedCoordinate {
	return NewParser(nil).Parse(text)
}

// Parse extracts coordinates from 'text'. The grid grammars (UTM, British National Grid, MGRS) run
// first and each matched span is blanked out before the WGS84 grammar runs, so that the looser
// grammar never re-matches a substring claimed by a stricter one. Matches which fail to convert
// are discarded.
func (p *Parser) Parse(text string) []*ParsedCoordinate {

	matchers := []matcher{
		matchUTM,
		matchOSGB,
		matchMGRS,
		matchWGS84,
	}

	if p.options.Simplified {
		matchers = append(matchers, matchWGS84Simplified)
	}

	working := text
	coords := make([]*ParsedCoordinate, 0)

	for _, m := range matchers {

		matches := m(working)

		for _, mt := range matches {

			if mt.coord != nil {
				mt.coord.Start = mt.start
				mt.coord.End = mt.end
				mt.coord.Text = text[mt.start:mt.end]
				coords = append(coords, mt.coord)
			} else {
				slog.Debug("Discard coordinate match", "text", text[mt.start:mt.end])
			}

			working = blank(working, mt.start, mt.end)
		}
	}

	return coords
}

// blank replaces the bytes between 'start' and 'end' with spaces, preserving offsets.
func blank(text string, start int, end int) string {
	return text[:start] + strings.Repeat(" ", end-start) + text[end:]
}

// boundedBefore reports whether the match starting at 'start' is not glued to a preceding word or number.
func boundedBefore(text string, start int) bool {

	if start == 0 {
		return true
	}

	r, _ := utf8.DecodeLastRuneInString(text[:start])

	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return false
	}

	switch r {
	case '.', '-', '+', '°', '\'':
		return false
	}

	return true
}

// boundedAfter reports whether the match ending at 'end' is followed by whitespace, end of text or
// a list/closing delimiter. A trailing full stop does not count; see boundedSentence.
func boundedAfter(text string, end int) bool {

	if end >= len(text) {
		return true
	}

	r, _ := utf8.DecodeRuneInString(text[end:])

	if unicode.IsSpace(r) {
		return true
	}

	switch r {
	case ',', ';', ':', ')', ']', '}', '/', '|':
		return true
	}

	return false
}

// boundedSentence reports whether the match ending at 'end' is bounded as in boundedAfter or is
// followed by a full stop that ends a sentence (whitespace or end of text after it).
func boundedSentence(text string, end int) bool {

	if boundedAfter(text, end) {
		return true
	}

	if text[end] != '.' {
		return false
	}

	return end+1 == len(text) || isSpaceAt(text, end+1)
}

func isSpaceAt(text string, offset int) bool {
	r, _ := utf8.DecodeRuneInString(text[offset:])
	return unicode.IsSpace(r)
}

func float64Ptr(v float64) *float64 {
	return &v
}
