package coordinates

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// WGS84 ellipsoid parameters used by the UTM and MGRS conversions.
const (
	wgs84_a  float64 = 6378137.0
	wgs84_e2 float64 = 0.00669438
	utm_k0   float64 = 0.9996
)

const utm_bands string = "CDEFGHJKLMNPQRSTUVWX"

var re_utm = regexp.MustCompile(`(\d{1,2})\s?([C-HJ-NP-X])\s+(\d{6})(?:\s*m?\s*E)?[\s,]+(\d{1,7}(?:\.\d+)?)(?:\s*m?\s*N)?`)

const confidence_utm float64 = 1.0

// matchUTM matches zone, band, easting and northing references such as "17T 630084 4833438".
func matchUTM(text string) []*match {

	matches := make([]*match, 0)

	for _, idx := range re_utm.FindAllStringSubmatchIndex(text, -1) {

		start := idx[0]
		end := idx[1]

		if !boundedBefore(text, start) || !boundedSentence(text, end) {
			continue
		}

		var coord *ParsedCoordinate

		zone, err_z := strconv.Atoi(submatch(text, idx, 1))
		band := submatch(text, idx, 2)
		easting, err_e := strconv.ParseFloat(submatch(text, idx, 3), 64)
		northing, err_n := strconv.ParseFloat(submatch(text, idx, 4), 64)

		if err_z == nil && err_e == nil && err_n == nil {

			lat, lon, ok := UTMToLatLon(zone, band, easting, northing)

			if ok {
				coord = newPointCoordinate(lat, lon, confidence_utm, UTM)
			}
		}

		matches = append(matches, &match{start: start, end: end, coord: coord})
	}

	return matches
}

// UTMToLatLon converts a UTM position to WGS84 decimal degrees. The final boolean is false for grid
// positions which are not defined: invalid zones or bands, eastings or northings outside the grid,
// or positions whose latitude falls outside the band they claim to be in.
func UTMToLatLon(zone int, band string, easting float64, northing float64) (float64, float64, bool) {

	band = strings.ToUpper(band)

	if zone < 1 || zone > 60 {
		return 0.0, 0.0, false
	}

	band_idx := strings.Index(utm_bands, band)

	if len(band) != 1 || band_idx == -1 {
		return 0.0, 0.0, false
	}

	if easting < 100000.0 || easting >= 1000000.0 {
		return 0.0, 0.0, false
	}

	if northing < 0.0 || northing > 10000000.0 {
		return 0.0, 0.0, false
	}

	northern := band >= "N"

	lat, lon := utmInverse(zone, northern, easting, northing)

	band_south := -80.0 + float64(band_idx)*8.0
	band_north := band_south + 8.0

	if band == "X" {
		band_north = 84.0
	}

	// Allow some slack for positions near band edges
	if lat < band_south-0.5 || lat > band_north+0.5 {
		return 0.0, 0.0, false
	}

	return lat, lon, true
}

// utmInverse is the inverse transverse mercator projection (Snyder's series) for a UTM zone.
func utmInverse(zone int, northern bool, easting float64, northing float64) (float64, float64) {

	e2 := wgs84_e2
	e4 := e2 * e2
	e6 := e4 * e2
	ep2 := e2 / (1 - e2)

	sqrt_e := math.Sqrt(1 - e2)
	_e := (1 - sqrt_e) / (1 + sqrt_e)
	_e2 := _e * _e
	_e3 := _e2 * _e
	_e4 := _e3 * _e
	_e5 := _e4 * _e

	m1 := 1 - e2/4 - 3*e4/64 - 5*e6/256

	p2 := 3.0/2*_e - 27.0/32*_e3 + 269.0/512*_e5
	p3 := 21.0/16*_e2 - 55.0/32*_e4
	p4 := 151.0/96*_e3 - 417.0/128*_e5
	p5 := 1097.0 / 512 * _e4

	x := easting - 500000.0
	y := northing

	if !northern {
		y -= 10000000.0
	}

	m := y / utm_k0
	mu := m / (wgs84_a * m1)

	p_rad := mu + p2*math.Sin(2*mu) + p3*math.Sin(4*mu) + p4*math.Sin(6*mu) + p5*math.Sin(8*mu)

	p_sin := math.Sin(p_rad)
	p_sin2 := p_sin * p_sin
	p_cos := math.Cos(p_rad)
	p_tan := p_sin / p_cos
	p_tan2 := p_tan * p_tan
	p_tan4 := p_tan2 * p_tan2

	ep_sin := 1 - e2*p_sin2
	ep_sin_sqrt := math.Sqrt(ep_sin)

	n := wgs84_a / ep_sin_sqrt
	r := (1 - e2) / ep_sin

	c := ep2 * p_cos * p_cos
	c2 := c * c

	d := x / (n * utm_k0)
	d2 := d * d
	d3 := d2 * d
	d4 := d3 * d
	d5 := d4 * d
	d6 := d5 * d

	lat := p_rad - (p_tan/r)*(d2/2-d4/24*(5+3*p_tan2+10*c-4*c2-9*ep2)+d6/720*(61+90*p_tan2+298*c+45*p_tan4-252*ep2-3*c2))
	lon := (d - d3/6*(1+2*p_tan2+c) + d5/120*(5-2*c+28*p_tan2-3*c2+8*ep2+24*p_tan4)) / p_cos

	central_meridian := float64((zone-1)*6 - 180 + 3)

	return lat * 180.0 / math.Pi, lon*180.0/math.Pi + central_meridian
}

func newPointCoordinate(lat float64, lon float64, confidence float64, format Format) *ParsedCoordinate {

	if lat < -90.0 || lat > 90.0 || lon < -180.0 || lon > 180.0 {
		return nil
	}

	c := &ParsedCoordinate{
		Latitude:   float64Ptr(lat),
		Longitude:  float64Ptr(lon),
		Confidence: confidence,
		Format:     format,
	}

	return c
}
