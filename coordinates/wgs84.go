package coordinates

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const re_degrees string = `(\d{1,3}(?:\.\d+)?)\s*[°º˚]`
const re_minutes string = `(?:\s*(\d{1,2}(?:\.\d+)?)\s*['′’´])`
const re_seconds string = `(?:\s*(\d{1,2}(?:\.\d+)?)\s*(?:"|″|”|''|′′))`

var re_wgs84 = regexp.MustCompile(re_degrees + `(?:` + re_minutes + re_seconds + `?)?` + `\s*([NSEW])\b`)

var re_wgs84_degrees = regexp.MustCompile(`(-?)` + re_degrees + `(?:` + re_minutes + re_seconds + `?)?`)

var re_wgs84_number = regexp.MustCompile(`-?\d{1,3}(?:\.\d+)?`)

const (
	confidence_dms float64 = 1.0
	confidence_dm  float64 = 0.95
	confidence_d   float64 = 0.9

	confidence_simplified_degrees float64 = 0.5
	confidence_simplified_decimal float64 = 0.1
	confidence_simplified_integer float64 = 0.01
)

// matchWGS84 matches degree, degree-minute and degree-minute-second values with a hemisphere suffix.
func matchWGS84(text string) []*match {

	matches := make([]*match, 0)

	for _, idx := range re_wgs84.FindAllStringSubmatchIndex(text, -1) {

		start := idx[0]
		end := idx[1]

		if !boundedBefore(text, start) {
			continue
		}

		// A hemisphere glued to the degree sign ("12°N.") may not end a sentence

		glued := idx[4] == -1 && gluedHemisphere(text, idx[8])

		if glued && !boundedAfter(text, end) {
			continue
		}

		if !boundedSentence(text, end) {
			continue
		}

		deg := submatch(text, idx, 1)
		min := submatch(text, idx, 2)
		sec := submatch(text, idx, 3)
		hemisphere := submatch(text, idx, 4)

		v, ok := dmsToDecimal(deg, min, sec)

		confidence := confidence_d

		switch {
		case sec != "":
			confidence = confidence_dms
		case min != "":
			confidence = confidence_dm
		}

		var coord *ParsedCoordinate

		if ok {
			coord = newAxisCoordinate(v, hemisphere, confidence, WGS84)
		}

		matches = append(matches, &match{start: start, end: end, coord: coord})
	}

	return matches
}

// matchWGS84Simplified matches bare degree values and suffixless numbers. Every match has an unknown
// orientation; it is up to the caller (for example axis calibration) to decide which axis it belongs to.
func matchWGS84Simplified(text string) []*match {

	matches := make([]*match, 0)
	working := text

	for _, idx := range re_wgs84_degrees.FindAllStringSubmatchIndex(text, -1) {

		start := idx[0]
		end := idx[1]

		if !boundedBefore(text, start) || !boundedAfter(text, end) {
			continue
		}

		sign := submatch(text, idx, 1)
		deg := submatch(text, idx, 2)
		min := submatch(text, idx, 3)
		sec := submatch(text, idx, 4)

		v, ok := dmsToDecimal(deg, min, sec)

		var coord *ParsedCoordinate

		if ok && v <= 180.0 {

			if sign == "-" {
				v = -v
			}

			coord = newUnknownCoordinate(v, confidence_simplified_degrees)
		}

		matches = append(matches, &match{start: start, end: end, coord: coord})
		working = blank(working, start, end)
	}

	for _, idx := range re_wgs84_number.FindAllStringIndex(working, -1) {

		start := idx[0]
		end := idx[1]

		if !boundedBefore(working, start) || !boundedAfter(working, end) {
			continue
		}

		str_v := working[start:end]

		v, err := strconv.ParseFloat(str_v, 64)

		var coord *ParsedCoordinate

		if err == nil && v >= -180.0 && v <= 180.0 {

			confidence := confidence_simplified_integer

			if strings.Contains(str_v, ".") {
				confidence = confidence_simplified_decimal
			}

			coord = newUnknownCoordinate(v, confidence)
		}

		matches = append(matches, &match{start: start, end: end, coord: coord})
	}

	return matches
}

// gluedHemisphere reports whether the hemisphere letter at 'offset' immediately follows a degree sign.
func gluedHemisphere(text string, offset int) bool {
	r, _ := utf8.DecodeLastRuneInString(text[:offset])
	return r == '°' || r == 'º' || r == '˚'
}

// dmsToDecimal converts degree, minute and second strings to decimal degrees. Minutes and seconds
// may be empty.
func dmsToDecimal(str_deg string, str_min string, str_sec string) (float64, bool) {

	deg, err := strconv.ParseFloat(str_deg, 64)

	if err != nil {
		return 0.0, false
	}

	v := deg

	if str_min != "" {

		min, err := strconv.ParseFloat(str_min, 64)

		if err != nil || min >= 60.0 {
			return 0.0, false
		}

		v += min / 60.0
	}

	if str_sec != "" {

		sec, err := strconv.ParseFloat(str_sec, 64)

		if err != nil || sec >= 60.0 {
			return 0.0, false
		}

		v += sec / 3600.0
	}

	return v, true
}

func newAxisCoordinate(v float64, hemisphere string, confidence float64, format Format) *ParsedCoordinate {

	if hemisphere == "S" || hemisphere == "W" {
		v = -v
	}

	c := &ParsedCoordinate{
		Value:      v,
		Confidence: confidence,
		Format:     format,
	}

	switch hemisphere {
	case "N", "S":

		if v < -90.0 || v > 90.0 {
			return nil
		}

		c.Latitude = float64Ptr(v)

	case "E", "W":

		if v < -180.0 || v > 180.0 {
			return nil
		}

		c.Longitude = float64Ptr(v)

	default:
		return nil
	}

	return c
}

func newUnknownCoordinate(v float64, confidence float64) *ParsedCoordinate {

	c := &ParsedCoordinate{
		Value:              v,
		Confidence:         confidence,
		Format:             WGS84_SIMPLIFIED,
		UnknownOrientation: true,
	}

	return c
}

// submatch returns the text of capture group 'group' or an empty string if it did not participate.
func submatch(text string, idx []int, group int) string {

	i := group * 2

	if i+1 >= len(idx) || idx[i] < 0 {
		return ""
	}

	return text[idx[i]:idx[i+1]]
}
