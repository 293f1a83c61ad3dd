//go:build gocv

package lines

import (
	"context"
	"fmt"
	"image"
	"math"
	"net/url"
	"strconv"

	"gocv.io/x/gocv"
)

// type HoughDetector implements the `Detector` interface using OpenCV's probabilistic Hough transform.
type HoughDetector struct {
	Detector
	threshold  int
	min_length float64
	max_gap    float64
	canny_low  float64
	canny_high float64
}

func init() {

	ctx := context.Background()

	err := RegisterDetector(ctx, "hough", NewHoughDetector)

	if err != nil {
		panic(err)
	}
}

// NewHoughDetector returns a new `HoughDetector` instance. 'uri' takes the form of:
//
//	hough://?threshold={INT}&min_length={FLOAT}&max_gap={FLOAT}
//
// Where 'min_length' is a fraction of the smaller image dimension.
func NewHoughDetector(ctx context.Context, uri string) (Detector, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	q := u.Query()

	d := &HoughDetector{
		threshold:  80,
		min_length: DEFAULT_RUNS_MIN_LENGTH,
		max_gap:    float64(DEFAULT_RUNS_GAP * 2),
		canny_low:  50,
		canny_high: 150,
	}

	if q.Has("threshold") {

		v, err := strconv.Atoi(q.Get("threshold"))

		if err != nil {
			return nil, fmt.Errorf("Failed to parse ?threshold= parameter, %w", err)
		}

		d.threshold = v
	}

	if q.Has("min_length") {

		v, err := strconv.ParseFloat(q.Get("min_length"), 64)

		if err != nil {
			return nil, fmt.Errorf("Failed to parse ?min_length= parameter, %w", err)
		}

		d.min_length = v
	}

	if q.Has("max_gap") {

		v, err := strconv.ParseFloat(q.Get("max_gap"), 64)

		if err != nil {
			return nil, fmt.Errorf("Failed to parse ?max_gap= parameter, %w", err)
		}

		d.max_gap = v
	}

	return d, nil
}

func (d *HoughDetector) Detect(ctx context.Context, im image.Image) ([]Segment, error) {

	mat, err := imageToMat(im)

	if err != nil {
		return nil, fmt.Errorf("Failed to convert image, %w", err)
	}

	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()

	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	edges := gocv.NewMat()
	defer edges.Close()

	gocv.Canny(gray, &edges, float32(d.canny_low), float32(d.canny_high))

	hough := gocv.NewMat()
	defer hough.Close()

	b := im.Bounds()
	min_px := d.min_length * math.Min(float64(b.Dx()), float64(b.Dy()))

	gocv.HoughLinesPWithParams(edges, &hough, 1, float32(math.Pi/180.0), d.threshold, float32(min_px), float32(d.max_gap))

	segments := make([]Segment, 0)

	for i := 0; i < hough.Rows(); i++ {

		v := hough.GetVeciAt(i, 0)

		s := Segment{
			X1: float64(b.Min.X) + float64(v[0]),
			Y1: float64(b.Min.Y) + float64(v[1]),
			X2: float64(b.Min.X) + float64(v[2]),
			Y2: float64(b.Min.Y) + float64(v[3]),
		}

		segments = append(segments, s)
	}

	return segments, nil
}

func imageToMat(im image.Image) (gocv.Mat, error) {

	bounds := im.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			rgba.Set(x, y, im.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}

	mat, err := gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC4, rgba.Pix)

	if err != nil {
		return gocv.Mat{}, err
	}

	defer mat.Close()

	bgr := gocv.NewMat()
	gocv.CvtColor(mat, &bgr, gocv.ColorRGBAToBGR)

	return bgr, nil
}
