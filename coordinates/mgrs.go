package coordinates

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var re_mgrs = regexp.MustCompile(`(\d{1,2})([C-HJ-NP-X])\s*([A-HJ-NP-Z])([A-HJ-NP-V])\s*(\d{1,5}\s+\d{1,5}|\d{2,10})`)

const set_origin_columns string = "AJSAJS"
const set_origin_rows string = "AFAFAF"

// The minimum northing, in metres, of each latitude band
var mgrs_band_min_northing = map[string]float64{
	"C": 1100000.0,
	"D": 2000000.0,
	"E": 2800000.0,
	"F": 3700000.0,
	"G": 4600000.0,
	"H": 5500000.0,
	"J": 6400000.0,
	"K": 7300000.0,
	"L": 8200000.0,
	"M": 9100000.0,
	"N": 0.0,
	"P": 800000.0,
	"Q": 1700000.0,
	"R": 2600000.0,
	"S": 3500000.0,
	"T": 4400000.0,
	"U": 5300000.0,
	"V": 6200000.0,
	"W": 7000000.0,
	"X": 7900000.0,
}

const confidence_mgrs float64 = 1.0

// matchMGRS matches Military Grid Reference System references such as "4QFJ 12345 67890".
func matchMGRS(text string) []*match {

	matches := make([]*match, 0)

	for _, idx := range re_mgrs.FindAllStringSubmatchIndex(text, -1) {

		start := idx[0]
		end := idx[1]

		if !boundedBefore(text, start) || !boundedSentence(text, end) {
			continue
		}

		var coord *ParsedCoordinate

		zone, err := strconv.Atoi(submatch(text, idx, 1))
		band := submatch(text, idx, 2)
		column := submatch(text, idx, 3)
		row := submatch(text, idx, 4)

		str_e, str_n, ok := splitGridDigits(submatch(text, idx, 5))

		if err == nil && ok {

			lat, lon, ok := MGRSToLatLon(zone, band, column, row, str_e, str_n)

			if ok {
				coord = newPointCoordinate(lat, lon, confidence_mgrs, MGRS)
			}
		}

		matches = append(matches, &match{start: start, end: end, coord: coord})
	}

	return matches
}

// MGRSToLatLon converts an MGRS reference (zone, band, 100km column and row letters plus easting and
// northing digits of equal precision) to WGS84 decimal degrees.
func MGRSToLatLon(zone int, band string, column string, row string, str_easting string, str_northing string) (float64, float64, bool) {

	easting, northing, ok := MGRSToUTM(zone, band, column, row, str_easting, str_northing)

	if !ok {
		return 0.0, 0.0, false
	}

	return UTMToLatLon(zone, band, easting, northing)
}

// MGRSToUTM converts an MGRS reference to a UTM easting and northing in metres.
func MGRSToUTM(zone int, band string, column string, row string, str_easting string, str_northing string) (float64, float64, bool) {

	band = strings.ToUpper(band)
	column = strings.ToUpper(column)
	row = strings.ToUpper(row)

	if zone < 1 || zone > 60 || len(column) != 1 || len(row) != 1 {
		return 0.0, 0.0, false
	}

	min_northing, ok := mgrs_band_min_northing[band]

	if !ok {
		return 0.0, 0.0, false
	}

	if len(str_easting) != len(str_northing) || len(str_easting) == 0 || len(str_easting) > 5 {
		return 0.0, 0.0, false
	}

	set := zone % 6

	if set == 0 {
		set = 6
	}

	e100k, ok := gridLetterOffset(set_origin_columns[set-1], column[0], 'Z')

	if !ok {
		return 0.0, 0.0, false
	}

	n100k, ok := gridLetterOffset(set_origin_rows[set-1], row[0], 'V')

	if !ok {
		return 0.0, 0.0, false
	}

	e, err := strconv.Atoi(str_easting)

	if err != nil {
		return 0.0, 0.0, false
	}

	n, err := strconv.Atoi(str_northing)

	if err != nil {
		return 0.0, 0.0, false
	}

	scale := math.Pow(10, float64(5-len(str_easting)))

	easting := float64(e100k+1)*100000.0 + float64(e)*scale
	northing := float64(n100k) * 100000.0

	for northing < min_northing {
		northing += 2000000.0
	}

	northing += float64(n) * scale

	return easting, northing, true
}

// gridLetterOffset counts the letters between 'origin' and 'letter', skipping I and O and wrapping
// after 'last'. Column letters cycle through eight squares per set and rows through twenty.
func gridLetterOffset(origin byte, letter byte, last byte) (int, bool) {

	if letter == 'I' || letter == 'O' || letter > last {
		return 0, false
	}

	offset := 0
	current := origin

	for current != letter {

		current += 1

		if current == 'I' || current == 'O' {
			current += 1
		}

		if current > last {
			current = 'A'
		}

		offset += 1

		if offset > 24 {
			return 0, false
		}
	}

	if last == 'Z' && offset > 7 {
		return 0, false
	}

	return offset, true
}
