package lines

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"net/url"
	"strconv"
)

const (
	// DEFAULT_RUNS_THRESHOLD is the luminance below which a pixel is considered part of a line.
	DEFAULT_RUNS_THRESHOLD int = 128
	// DEFAULT_RUNS_MIN_LENGTH is the minimum length of a line as a fraction of the image width (or height).
	DEFAULT_RUNS_MIN_LENGTH float64 = 0.25
	// DEFAULT_RUNS_GAP is the number of consecutive light pixels tolerated inside a line.
	DEFAULT_RUNS_GAP int = 2
)

// type RunsDetector implements the `Detector` interface finding axis-aligned lines as long runs of
// dark pixels. Runs on adjacent rows (or columns) are merged in to a single segment, so thick lines
// are reported once.
type RunsDetector struct {
	Detector
	threshold  uint8
	min_length float64
	gap        int
}

// run is a span of dark pixels from 'start' to 'end' (inclusive) on row or column 'pos'.
type run struct {
	start int
	end   int
	pos   int
}

func init() {

	ctx := context.Background()

	err := RegisterDetector(ctx, "runs", NewRunsDetector)

	if err != nil {
		panic(err)
	}
}

// NewRunsDetector returns a new `RunsDetector` instance. 'uri' takes the form of:
//
//	runs://?threshold={INT}&min_length={FLOAT}&gap={INT}
//
// Where 'threshold' defaults to DEFAULT_RUNS_THRESHOLD, 'min_length' to DEFAULT_RUNS_MIN_LENGTH and 'gap'
// to DEFAULT_RUNS_GAP.
func NewRunsDetector(ctx context.Context, uri string) (Detector, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	q := u.Query()

	threshold := DEFAULT_RUNS_THRESHOLD
	min_length := DEFAULT_RUNS_MIN_LENGTH
	gap := DEFAULT_RUNS_GAP

	if q.Has("threshold") {

		v, err := strconv.Atoi(q.Get("threshold"))

		if err != nil || v < 0 || v > 255 {
			return nil, fmt.Errorf("Invalid ?threshold= parameter")
		}

		threshold = v
	}

	if q.Has("min_length") {

		v, err := strconv.ParseFloat(q.Get("min_length"), 64)

		if err != nil || v <= 0 || v > 1 {
			return nil, fmt.Errorf("Invalid ?min_length= parameter")
		}

		min_length = v
	}

	if q.Has("gap") {

		v, err := strconv.Atoi(q.Get("gap"))

		if err != nil || v < 0 {
			return nil, fmt.Errorf("Invalid ?gap= parameter")
		}

		gap = v
	}

	d := &RunsDetector{
		threshold:  uint8(threshold),
		min_length: min_length,
		gap:        gap,
	}

	return d, nil
}

// Detect returns the horizontal and vertical lines in 'im'.
func (d *RunsDetector) Detect(ctx context.Context, im image.Image) ([]Segment, error) {

	b := im.Bounds()
	w := b.Dx()
	h := b.Dy()

	if w == 0 || h == 0 {
		return []Segment{}, nil
	}

	dark := make([]bool, w*h)

	for y := 0; y < h; y++ {

		for x := 0; x < w; x++ {
			g := color.GrayModel.Convert(im.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			dark[y*w+x] = g.Y < d.threshold
		}
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		// pass
	}

	h_runs := d.findRuns(h, w, func(pos int, i int) bool {
		return dark[pos*w+i]
	})

	v_runs := d.findRuns(w, h, func(pos int, i int) bool {
		return dark[i*w+pos]
	})

	segments := make([]Segment, 0)

	for _, r := range mergeRuns(h_runs, d.gap+1) {

		y := float64(b.Min.Y) + float64(r.pos)

		s := Segment{
			X1: float64(b.Min.X + r.start),
			Y1: y,
			X2: float64(b.Min.X + r.end),
			Y2: y,
		}

		segments = append(segments, s)
	}

	for _, r := range mergeRuns(v_runs, d.gap+1) {

		x := float64(b.Min.X) + float64(r.pos)

		s := Segment{
			X1: x,
			Y1: float64(b.Min.Y + r.start),
			X2: x,
			Y2: float64(b.Min.Y + r.end),
		}

		segments = append(segments, s)
	}

	slog.Debug("Detected lines", "horizontal", len(h_runs), "vertical", len(v_runs), "segments", len(segments))
	return segments, nil
}

// findRuns scans 'count' rows (or columns) of 'length' pixels each and returns every run of dark
// pixels at least min_length × 'length' long.
func (d *RunsDetector) findRuns(count int, length int, is_dark func(int, int) bool) []run {

	min_px := int(math.Ceil(d.min_length * float64(length)))

	runs := make([]run, 0)

	for pos := 0; pos < count; pos++ {

		start := -1
		last := -1

		for i := 0; i < length; i++ {

			if !is_dark(pos, i) {
				continue
			}

			if start != -1 && i-last-1 > d.gap {

				if last-start+1 >= min_px {
					runs = append(runs, run{start: start, end: last, pos: pos})
				}

				start = -1
			}

			if start == -1 {
				start = i
			}

			last = i
		}

		if start != -1 && last-start+1 >= min_px {
			runs = append(runs, run{start: start, end: last, pos: pos})
		}
	}

	return runs
}

// mergeRuns combines runs on adjacent rows (or columns) whose ends are within 'tolerance' pixels of
// each other. The merged run sits on the (rounded down) middle position of its members. 'runs' must
// be ordered by position, as returned by findRuns.
func mergeRuns(runs []run, tolerance int) []run {

	type group struct {
		start int
		end   int
		first int
		last  int
	}

	groups := make([]*group, 0)

	for _, r := range runs {

		var match *group

		for _, g := range groups {

			if r.pos-g.last != 1 {
				continue
			}

			if abs(r.start-g.start) <= tolerance && abs(r.end-g.end) <= tolerance {
				match = g
				break
			}
		}

		if match == nil {
			groups = append(groups, &group{start: r.start, end: r.end, first: r.pos, last: r.pos})
			continue
		}

		match.start = min(match.start, r.start)
		match.end = max(match.end, r.end)
		match.last = r.pos
	}

	merged := make([]run, len(groups))

	for i, g := range groups {
		merged[i] = run{start: g.start, end: g.end, pos: (g.first + g.last) / 2}
	}

	return merged
}

func abs(v int) int {

	if v < 0 {
		return -v
	}

	return v
}
