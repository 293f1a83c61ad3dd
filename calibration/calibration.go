// Package calibration refines the bounds of a map image by fitting the pixel positions of coordinate
// labels, read along lines detected in the image, to their values.
package calibration

import (
	"log/slog"
	"math"

	"github.com/paulmach/orb"
	"github.com/sfomuseum/go-geoextent/coordinates"
	"github.com/sfomuseum/go-geoextent/lines"
	"github.com/sfomuseum/go-geoextent/location"
)

const (
	// DEFAULT_ANGLE_TOLERANCE is the maximum deviation, in degrees, of an axis from horizontal or vertical.
	DEFAULT_ANGLE_TOLERANCE float64 = 10.0
	// DEFAULT_MAX_TOKENS is the maximum number of coordinate labels considered.
	DEFAULT_MAX_TOKENS int = 200
	// DEFAULT_MAX_LINES is the maximum number of (longest) lines considered.
	DEFAULT_MAX_LINES int = 100
	// DEFAULT_SIGNIFICANCE is the regression p-value an axis must fall below to be used.
	DEFAULT_SIGNIFICANCE float64 = 0.1
	// MIN_POINTS is the minimum number of labels an axis needs to be fitted.
	MIN_POINTS int = 2
	// UNKNOWN_ORIENTATION_CONFIDENCE is the confidence given to labels whose orientation was inferred from their axis.
	UNKNOWN_ORIENTATION_CONFIDENCE float64 = 0.5
)

const (
	LONGITUDE_LIMIT   float64 = 180.0
	LONGITUDE_DISCARD float64 = 200.0
	LATITUDE_LIMIT    float64 = 90.0
	LATITUDE_DISCARD  float64 = 100.0
)

// type CalibratorOptions defines configuration for a `Calibrator`. Zero values are replaced by their defaults.
type CalibratorOptions struct {
	AngleTolerance float64 `yaml:"angle_tolerance" json:"angle_tolerance"`
	MaxTokens      int     `yaml:"max_tokens" json:"max_tokens"`
	MaxLines       int     `yaml:"max_lines" json:"max_lines"`
	Significance   float64 `yaml:"significance" json:"significance"`
}

// type Calibrator refines candidate extents using coordinate labels and lines detected in an image.
type Calibrator struct {
	angle_tolerance float64
	max_tokens      int
	max_lines       int
	significance    float64
}

// NewCalibrator returns a new `Calibrator` configured by 'opts', which may be nil.
func NewCalibrator(opts *CalibratorOptions) *Calibrator {

	c := &Calibrator{
		angle_tolerance: DEFAULT_ANGLE_TOLERANCE,
		max_tokens:      DEFAULT_MAX_TOKENS,
		max_lines:       DEFAULT_MAX_LINES,
		significance:    DEFAULT_SIGNIFICANCE,
	}

	if opts == nil {
		return c
	}

	if opts.AngleTolerance > 0 {
		c.angle_tolerance = opts.AngleTolerance
	}

	if opts.MaxTokens > 0 {
		c.max_tokens = opts.MaxTokens
	}

	if opts.MaxLines > 0 {
		c.max_lines = opts.MaxLines
	}

	if opts.Significance > 0 {
		c.significance = opts.Significance
	}

	return c
}

// Calibrate returns a copy of 'candidate' whose longitude and/or latitude range has been replaced by
// the range read off the usable axes, along with true. Each refined dimension raises the
// probability as (p + k) / (1 + k) where k is the number of refined dimensions. If no axis is usable
// 'candidate' itself is returned along with false. 'tokens' are updated with their nearest axis.
func (c *Calibrator) Calibrate(candidate *location.GeoExtent, tokens []*Token, segments []lines.Segment) (*location.GeoExtent, bool) {

	axes := c.axes(segments)

	if len(axes) == 0 {
		return candidate, false
	}

	if len(tokens) > c.max_tokens {
		tokens = tokens[:c.max_tokens]
	}

	c.assign(axes, tokens)

	for _, a := range axes {
		a.fit(c.significance)
	}

	min_lon, max_lon, ok_lon := c.extentFor(axes, HORIZONTAL, LONGITUDE_LIMIT, LONGITUDE_DISCARD)
	min_lat, max_lat, ok_lat := c.extentFor(axes, VERTICAL, LATITUDE_LIMIT, LATITUDE_DISCARD)

	refined := 0
	b := candidate.Bound()

	if ok_lon {
		b.Min = orb.Point{min_lon, b.Min.Y()}
		b.Max = orb.Point{max_lon, b.Max.Y()}
		refined += 1
	}

	if ok_lat {
		b.Min = orb.Point{b.Min.X(), min_lat}
		b.Max = orb.Point{b.Max.X(), max_lat}
		refined += 1
	}

	if refined == 0 {
		return candidate, false
	}

	k := float64(refined)

	calibrated := candidate.WithBound(b)
	calibrated.Probability = (candidate.Probability + k) / (1.0 + k)

	slog.Debug("Calibrated extent", "longitude", ok_lon, "latitude", ok_lat, "extent", calibrated.String())
	return calibrated, true
}

// axes classifies the longest 'segments' as horizontal or vertical axes, discarding diagonal lines.
func (c *Calibrator) axes(segments []lines.Segment) []*Axis {

	axes := make([]*Axis, 0)

	for _, s := range lines.Longest(segments, c.max_lines) {

		if s.Length() == 0 {
			continue
		}

		o, ok := classifySegment(s, c.angle_tolerance)

		if !ok {
			continue
		}

		a := &Axis{
			Segment:     s,
			Orientation: o,
			offsets:     make([]float64, 0),
			values:      make([]float64, 0),
		}

		axes = append(axes, a)
	}

	return axes
}

// assign links each token to the nearest axis spanning its centre. Tokens of known orientation are
// only linked to axes of the matching orientation; tokens of unknown orientation adopt the
// orientation of their axis at a reduced confidence.
func (c *Calibrator) assign(axes []*Axis, tokens []*Token) {

	for _, t := range tokens {

		t.Axis = -1

		cx, cy := t.Center()

		nearest := -1
		nearest_d := math.Inf(1)

		for idx, a := range axes {

			if t.Orientation != coordinates.UNKNOWN_ORIENTATION && t.Orientation != a.Orientation.Coordinate() {
				continue
			}

			if !a.spans(cx, cy) {
				continue
			}

			d := a.distance(cx, cy)

			if d < nearest_d {
				nearest = idx
				nearest_d = d
			}
		}

		if nearest == -1 {
			continue
		}

		a := axes[nearest]
		t.Axis = nearest

		if t.Orientation == coordinates.UNKNOWN_ORIENTATION {
			t.Orientation = a.Orientation.Coordinate()
			t.Confidence = UNKNOWN_ORIENTATION_CONFIDENCE
		}

		a.add(a.offset(cx, cy), t.Value)
	}
}

// extentFor returns the widest range predicted by the usable axes of orientation 'o'. Axes predicting
// a value beyond +/- 'discard' are ignored; predictions beyond +/- 'limit' are clamped.
func (c *Calibrator) extentFor(axes []*Axis, o AxisOrientation, limit float64, discard float64) (float64, float64, bool) {

	found := false
	min := math.Inf(1)
	max := math.Inf(-1)

	for _, a := range axes {

		if a.Orientation != o || !a.usable {
			continue
		}

		v1, v2 := a.predict()

		if math.Abs(v1) > discard || math.Abs(v2) > discard {
			slog.Debug("Discard axis with out of range predictions", "axis", a.Segment.String(), "start", v1, "end", v2)
			continue
		}

		v1 = math.Max(-limit, math.Min(limit, v1))
		v2 = math.Max(-limit, math.Min(limit, v2))

		min = math.Min(min, math.Min(v1, v2))
		max = math.Max(max, math.Max(v1, v2))
		found = true
	}

	return min, max, found
}
