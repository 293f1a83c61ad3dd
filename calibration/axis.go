package calibration

import (
	"fmt"
	"image"
	"math"

	"github.com/sfomuseum/go-geoextent/coordinates"
	"github.com/sfomuseum/go-geoextent/lines"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// type AxisOrientation identifies whether an axis runs (mostly) horizontally or vertically.
type AxisOrientation int

const (
	HORIZONTAL AxisOrientation = iota
	VERTICAL
)

func (o AxisOrientation) String() string {

	switch o {
	case HORIZONTAL:
		return "horizontal"
	case VERTICAL:
		return "vertical"
	default:
		return "unknown"
	}
}

// Coordinate returns the coordinate orientation labels along an axis carry. Longitudes are read
// along horizontal axes and latitudes along vertical ones.
func (o AxisOrientation) Coordinate() coordinates.Orientation {

	if o == HORIZONTAL {
		return coordinates.LONGITUDE
	}

	return coordinates.LATITUDE
}

// type Axis is a line segment in an image along which coordinate labels are read, and the linear
// mapping from pixel offset along the segment to geographic value fitted from those labels.
type Axis struct {
	Segment     lines.Segment
	Orientation AxisOrientation
	offsets     []float64
	values      []float64
	intercept   float64
	slope       float64
	usable      bool
}

// type Token is a coordinate label found in an image. Tokens refer to their nearest axis by its
// index in the axes of a calibration pass.
type Token struct {
	// Box is the pixel bounding box of the label.
	Box image.Rectangle
	// Value is the decimal value of the label.
	Value float64
	// Orientation is coordinates.LATITUDE, coordinates.LONGITUDE or coordinates.UNKNOWN_ORIENTATION.
	Orientation coordinates.Orientation
	// Confidence is the likelihood, in the range 0-1, that the label is really a coordinate.
	Confidence float64
	// Axis is the index of the token's nearest axis, or -1.
	Axis int
}

// NewToken returns a `Token` for a coordinate parsed from the text of the OCR word with bounding box 'box'.
// Coordinates carrying both a latitude and a longitude are not labels and return false.
func NewToken(box image.Rectangle, c *coordinates.ParsedCoordinate) (*Token, bool) {

	t := &Token{
		Box:        box,
		Confidence: c.Confidence,
		Axis:       -1,
	}

	switch c.Orientation() {
	case coordinates.LATITUDE:
		t.Value = *c.Latitude
		t.Orientation = coordinates.LATITUDE
	case coordinates.LONGITUDE:
		t.Value = *c.Longitude
		t.Orientation = coordinates.LONGITUDE
	case coordinates.UNKNOWN_ORIENTATION:
		t.Value = c.Value
		t.Orientation = coordinates.UNKNOWN_ORIENTATION
	default:
		return nil, false
	}

	return t, true
}

// Center returns the centre of the token's bounding box.
func (t *Token) Center() (float64, float64) {
	cx := float64(t.Box.Min.X+t.Box.Max.X) / 2.0
	cy := float64(t.Box.Min.Y+t.Box.Max.Y) / 2.0
	return cx, cy
}

func (t *Token) String() string {
	return fmt.Sprintf("%f %v (%.2f) axis=%d", t.Value, t.Box, t.Confidence, t.Axis)
}

// classifySegment returns the orientation of 's' if its angle is within 'tolerance' degrees of
// horizontal or vertical.
func classifySegment(s lines.Segment, tolerance float64) (AxisOrientation, bool) {

	a := s.Angle()

	switch {
	case a <= tolerance || a >= 180.0-tolerance:
		return HORIZONTAL, true
	case math.Abs(a-90.0) <= tolerance:
		return VERTICAL, true
	default:
		return HORIZONTAL, false
	}
}

// spans reports whether the point (x, y) falls within the extent of the axis, measured along its
// own orientation.
func (a *Axis) spans(x float64, y float64) bool {

	s := a.Segment

	if a.Orientation == HORIZONTAL {
		return x >= math.Min(s.X1, s.X2) && x <= math.Max(s.X1, s.X2)
	}

	return y >= math.Min(s.Y1, s.Y2) && y <= math.Max(s.Y1, s.Y2)
}

// distance returns the perpendicular distance from (x, y) to the line through the axis segment.
func (a *Axis) distance(x float64, y float64) float64 {

	s := a.Segment
	l := s.Length()

	if l == 0 {
		return math.Hypot(x-s.X1, y-s.Y1)
	}

	return math.Abs((s.X2-s.X1)*(s.Y1-y)-(s.X1-x)*(s.Y2-s.Y1)) / l
}

// offset returns the distance from the start of the axis segment to the projection of (x, y) on to it.
func (a *Axis) offset(x float64, y float64) float64 {

	s := a.Segment
	l := s.Length()

	if l == 0 {
		return 0.0
	}

	ux := (s.X2 - s.X1) / l
	uy := (s.Y2 - s.Y1) / l

	return (x-s.X1)*ux + (y-s.Y1)*uy
}

func (a *Axis) add(offset float64, value float64) {
	a.offsets = append(a.offsets, offset)
	a.values = append(a.values, value)
}

// fit fits the offset to value regression and records whether it is usable: it needs at least
// MIN_POINTS points, with distinct offsets, and a significance below 'significance'.
func (a *Axis) fit(significance float64) {

	a.usable = false

	if len(a.offsets) < MIN_POINTS {
		return
	}

	if stat.Variance(a.offsets, nil) == 0 {
		return
	}

	a.intercept, a.slope = stat.LinearRegression(a.offsets, a.values, nil, false)

	p := pValue(a.offsets, a.values, a.slope)

	a.usable = p < significance
}

// predict returns the values at both ends of the axis segment.
func (a *Axis) predict() (float64, float64) {
	l := a.Segment.Length()
	return a.intercept, a.intercept + a.slope*l
}

// pValue returns the two-sided p-value for the null hypothesis that the regression slope is zero,
// using a Student's t distribution with n-2 degrees of freedom. Two points define a line exactly,
// so any non-zero slope is significant.
func pValue(x []float64, y []float64, slope float64) float64 {

	n := len(x)

	if n < 2 {
		return 1.0
	}

	if n == 2 {

		if slope != 0 {
			return 0.0
		}

		return 1.0
	}

	r := stat.Correlation(x, y, nil)

	if math.IsNaN(r) {
		return 1.0
	}

	if math.Abs(r) >= 1.0 {
		return 0.0
	}

	df := float64(n - 2)
	t := r * math.Sqrt(df/(1.0-r*r))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}

	return 2.0 * (1.0 - dist.CDF(math.Abs(t)))
}
