package coordinates

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Airy 1830 ellipsoid and National Grid projection constants.
const (
	airy_a       float64 = 6377563.396
	airy_b       float64 = 6356256.909
	osgb_f0      float64 = 0.9996012717
	osgb_lat0    float64 = 49.0
	osgb_lon0    float64 = -2.0
	osgb_n0      float64 = -100000.0
	osgb_e0      float64 = 400000.0
	osgb_epsilon float64 = 0.00001
)

var re_osgb = regexp.MustCompile(`([HJNOST][A-HJ-Z])\s*(\d{1,5}\s+\d{1,5}|\d{2,10})`)

const (
	confidence_osgb              float64 = 0.9
	confidence_osgb_concatenated float64 = 0.8
)

// matchOSGB matches British National Grid references in both the space separated ("NY 9545 9776")
// and concatenated ("NY95459776") forms.
func matchOSGB(text string) []*match {

	matches := make([]*match, 0)

	for _, idx := range re_osgb.FindAllStringSubmatchIndex(text, -1) {

		start := idx[0]
		end := idx[1]

		if !boundedBefore(text, start) || !boundedSentence(text, end) {
			continue
		}

		letters := submatch(text, idx, 1)
		digits := submatch(text, idx, 2)

		str_e, str_n, ok := splitGridDigits(digits)

		var coord *ParsedCoordinate

		if ok {

			confidence := confidence_osgb

			if !strings.ContainsAny(digits, " \t") {
				confidence = confidence_osgb_concatenated
			}

			lat, lon, ok := OSGBToLatLon(letters, str_e, str_n)

			if ok {
				coord = newPointCoordinate(lat, lon, confidence, OSGB)
			}
		}

		matches = append(matches, &match{start: start, end: end, coord: coord})
	}

	return matches
}

// splitGridDigits splits a grid reference's digits into easting and northing halves. Space separated
// values must have the same precision; concatenated values are split into two equal halves.
func splitGridDigits(digits string) (string, string, bool) {

	parts := strings.Fields(digits)

	switch len(parts) {
	case 1:

		d := parts[0]

		if len(d)%2 != 0 {
			return "", "", false
		}

		half := len(d) / 2
		return d[:half], d[half:], true

	case 2:

		if len(parts[0]) != len(parts[1]) {
			return "", "", false
		}

		return parts[0], parts[1], true

	default:
		return "", "", false
	}
}

// OSGBToLatLon converts a British National Grid reference (100km square letters plus easting and
// northing digits of equal precision) to decimal degrees on the Airy 1830 ellipsoid.
func OSGBToLatLon(letters string, str_easting string, str_northing string) (float64, float64, bool) {

	easting, northing, ok := OSGBToEastingNorthing(letters, str_easting, str_northing)

	if !ok {
		return 0.0, 0.0, false
	}

	lat, lon := osgbInverse(easting, northing)
	return lat, lon, true
}

// OSGBToEastingNorthing converts a grid reference to full National Grid easting and northing in metres.
func OSGBToEastingNorthing(letters string, str_easting string, str_northing string) (float64, float64, bool) {

	letters = strings.ToUpper(letters)

	if len(letters) != 2 || len(str_easting) != len(str_northing) || len(str_easting) == 0 || len(str_easting) > 5 {
		return 0.0, 0.0, false
	}

	l1 := int(letters[0] - 'A')
	l2 := int(letters[1] - 'A')

	// There is no I in the grid alphabet
	if l1 > 7 {
		l1 -= 1
	}

	if l2 > 7 {
		l2 -= 1
	}

	e100km := ((l1-2)%5)*5 + (l2 % 5)
	n100km := (19 - (l1/5)*5) - (l2 / 5)

	if e100km < 0 || e100km > 6 || n100km < 0 || n100km > 12 {
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

	easting := float64(e100km)*100000.0 + float64(e)*scale
	northing := float64(n100km)*100000.0 + float64(n)*scale

	return easting, northing, true
}

// osgbInverse is the inverse transverse mercator projection for the National Grid.
func osgbInverse(easting float64, northing float64) (float64, float64) {

	a := airy_a
	b := airy_b
	f0 := osgb_f0

	lat0 := osgb_lat0 * math.Pi / 180.0
	lon0 := osgb_lon0 * math.Pi / 180.0

	e2 := 1 - (b*b)/(a*a)
	n := (a - b) / (a + b)
	n2 := n * n
	n3 := n2 * n

	lat := lat0
	m := 0.0

	for northing-osgb_n0-m >= osgb_epsilon {

		lat = (northing-osgb_n0-m)/(a*f0) + lat

		ma := (1 + n + 1.25*n2 + 1.25*n3) * (lat - lat0)
		mb := (3*n + 3*n2 + 21.0/8*n3) * math.Sin(lat-lat0) * math.Cos(lat+lat0)
		mc := (15.0/8*n2 + 15.0/8*n3) * math.Sin(2*(lat-lat0)) * math.Cos(2*(lat+lat0))
		md := 35.0 / 24 * n3 * math.Sin(3*(lat-lat0)) * math.Cos(3*(lat+lat0))

		m = b * f0 * (ma - mb + mc - md)
	}

	sin_lat := math.Sin(lat)

	nu := a * f0 / math.Sqrt(1-e2*sin_lat*sin_lat)
	rho := a * f0 * (1 - e2) * math.Pow(1-e2*sin_lat*sin_lat, -1.5)
	eta2 := nu/rho - 1

	t := math.Tan(lat)
	t2 := t * t
	t4 := t2 * t2
	t6 := t4 * t2
	sec := 1 / math.Cos(lat)

	vii := t / (2 * rho * nu)
	viii := t / (24 * rho * math.Pow(nu, 3)) * (5 + 3*t2 + eta2 - 9*t2*eta2)
	ix := t / (720 * rho * math.Pow(nu, 5)) * (61 + 90*t2 + 45*t4)
	x := sec / nu
	xi := sec / (6 * math.Pow(nu, 3)) * (nu/rho + 2*t2)
	xii := sec / (120 * math.Pow(nu, 5)) * (5 + 28*t2 + 24*t4)
	xiia := sec / (5040 * math.Pow(nu, 7)) * (61 + 662*t2 + 1320*t4 + 720*t6)

	de := easting - osgb_e0

	phi := lat - vii*math.Pow(de, 2) + viii*math.Pow(de, 4) - ix*math.Pow(de, 6)
	lambda := lon0 + x*de - xi*math.Pow(de, 3) + xii*math.Pow(de, 5) - xiia*math.Pow(de, 7)

	return phi * 180.0 / math.Pi, lambda * 180.0 / math.Pi
}
