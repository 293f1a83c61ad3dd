// Package lines provides interfaces and implementations for detecting straight line segments in raster images.
package lines

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"net/url"
	"sort"
	"strings"

	"github.com/aaronland/go-roster"
)

// ErrGoCVNotEnabled is returned by detectors that require the package to be compiled with the "gocv" tag.
var ErrGoCVNotEnabled = errors.New("OpenCV support not enabled, rebuild with -tags gocv")

// type Segment is a straight line between two pixel positions.
type Segment struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Length returns the length of 's' in pixels.
func (s Segment) Length() float64 {
	return math.Hypot(s.X2-s.X1, s.Y2-s.Y1)
}

// Angle returns the angle of 's' relative to the x axis, in degrees, in the range [0, 180).
func (s Segment) Angle() float64 {

	a := math.Atan2(s.Y2-s.Y1, s.X2-s.X1) * 180.0 / math.Pi

	if a < 0 {
		a += 180.0
	}

	if a >= 180.0 {
		a -= 180.0
	}

	return a
}

func (s Segment) String() string {
	return fmt.Sprintf("(%.1f,%.1f)-(%.1f,%.1f)", s.X1, s.Y1, s.X2, s.Y2)
}

// type Detector is an interface for detecting line segments in an image.
type Detector interface {
	// Detect returns the line segments found in 'im'.
	Detect(context.Context, image.Image) ([]Segment, error)
}

// DetectorInitializationFunc is a function defined by individual detector packages and used to create
// an instance of that detector.
type DetectorInitializationFunc func(ctx context.Context, uri string) (Detector, error)

var detector_roster roster.Roster

// RegisterDetector registers 'scheme' as a key pointing to 'init_func' in an internal lookup table
// used to create new `Detector` instances by the `NewDetector` method.
func RegisterDetector(ctx context.Context, scheme string, init_func DetectorInitializationFunc) error {

	err := ensureDetectorRoster()

	if err != nil {
		return err
	}

	return detector_roster.Register(ctx, scheme, init_func)
}

func ensureDetectorRoster() error {

	if detector_roster == nil {

		r, err := roster.NewDefaultRoster()

		if err != nil {
			return err
		}

		detector_roster = r
	}

	return nil
}

// NewDetector returns a new `Detector` instance configured by 'uri'. The value of 'uri' is parsed
// as a `url.URL` and its scheme is used as the key for a corresponding `DetectorInitializationFunc`
// function used to instantiate the new `Detector`. It is assumed that the scheme (and initialization
// function) have been registered by the `RegisterDetector` method.
func NewDetector(ctx context.Context, uri string) (Detector, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	scheme := u.Scheme

	err = ensureDetectorRoster()

	if err != nil {
		return nil, err
	}

	i, err := detector_roster.Driver(ctx, scheme)

	if err != nil {
		return nil, fmt.Errorf("Failed to find detector for '%s', %w", scheme, err)
	}

	init_func := i.(DetectorInitializationFunc)
	return init_func(ctx, uri)
}

// Schemes returns the list of schemes that have been registered.
func Schemes() []string {

	ctx := context.Background()
	schemes := []string{}

	err := ensureDetectorRoster()

	if err != nil {
		return schemes
	}

	for _, dr := range detector_roster.Drivers(ctx) {
		scheme := fmt.Sprintf("%s://", strings.ToLower(dr))
		schemes = append(schemes, scheme)
	}

	sort.Strings(schemes)
	return schemes
}

// Longest returns the 'max' longest members of 'segments', longest first. If 'max' is less than 1 all
// the segments are returned.
func Longest(segments []Segment, max int) []Segment {

	sorted := make([]Segment, len(segments))
	copy(sorted, segments)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Length() > sorted[j].Length()
	})

	if max > 0 && len(sorted) > max {
		sorted = sorted[:max]
	}

	return sorted
}
