package detector

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/sfomuseum/go-geoextent/calibration"
	"github.com/sfomuseum/go-geoextent/coordinates"
	"github.com/sfomuseum/go-geoextent/lines"
	"github.com/sfomuseum/go-geoextent/location"
	"github.com/sfomuseum/go-geoextent/ocr"
	"github.com/sfomuseum/go-geoextent/outlier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DEFAULT_OCR_MIN_CONFIDENCE is the default minimum OCR confidence (0-100) of words considered as labels.
const DEFAULT_OCR_MIN_CONFIDENCE float64 = 30.0

// type OCRCoordinatesSource implements the `GraphicSignalSource` interface for coordinate labels printed
// on a map image. Labels are read with an `ocr.OCR`, parsed with the simplified coordinate grammar and,
// when a `lines.Detector` is available, calibrated against the lines found in the image.
type OCRCoordinatesSource struct {
	GraphicSignalSource
	ocr            ocr.OCR
	lines          lines.Detector
	calibrator     *calibration.Calibrator
	parser         *coordinates.Parser
	min_confidence float64
}

func init() {

	ctx := context.Background()

	err := RegisterGraphicSignalSource(ctx, "ocr-coordinates", NewOCRCoordinatesSource)

	if err != nil {
		panic(err)
	}
}

// NewOCRCoordinatesSource returns a new `OCRCoordinatesSource` instance. 'uri' takes the form of:
//
//	ocr-coordinates://?min_confidence={FLOAT}
//
// 'services' must provide an OCR engine.
func NewOCRCoordinatesSource(ctx context.Context, uri string, services *Services) (GraphicSignalSource, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	if services.OCR == nil {
		return nil, fmt.Errorf("OCR coordinates source requires an OCR engine")
	}

	s := &OCRCoordinatesSource{
		ocr:            services.OCR,
		lines:          services.Lines,
		calibrator:     services.Calibrator,
		parser:         coordinates.NewParser(&coordinates.ParserOptions{Simplified: true}),
		min_confidence: DEFAULT_OCR_MIN_CONFIDENCE,
	}

	if s.calibrator == nil {
		s.calibrator = calibration.NewCalibrator(nil)
	}

	q := u.Query()

	if q.Has("min_confidence") {

		v, err := strconv.ParseFloat(q.Get("min_confidence"), 64)

		if err != nil {
			return nil, fmt.Errorf("Failed to parse ?min_confidence= parameter, %w", err)
		}

		s.min_confidence = v
	}

	return s, nil
}

// ExtentsFromImage returns at most one extent for the coordinate labels in 'im'. The base extent spans
// the labels of known orientation (or the full range of an axis with none) and is then calibrated. If
// calibration fails the base extent is only returned when labels of both orientations were read.
func (s *OCRCoordinatesSource) ExtentsFromImage(ctx context.Context, im image.Image) ([]*location.GeoExtent, error) {

	extents := make([]*location.GeoExtent, 0)

	words, err := s.ocr.Recognize(ctx, im)

	if err != nil {
		return nil, fmt.Errorf("Failed to recognize words, %w", err)
	}

	words = ocr.FilterByConfidence(words, s.min_confidence)

	tokens := make([]*calibration.Token, 0)

	for _, w := range words {

		for _, c := range s.parser.Parse(w.Text) {

			t, ok := calibration.NewToken(w.Box, c)

			if !ok {
				continue
			}

			tokens = append(tokens, t)
		}
	}

	slog.Debug("Coordinate labels", "words", len(words), "tokens", len(tokens))

	if len(tokens) == 0 {
		return extents, nil
	}

	base, known := baseExtent(tokens)

	if s.lines != nil {

		segments, err := s.lines.Detect(ctx, im)

		if err != nil {
			return nil, fmt.Errorf("Failed to detect lines, %w", err)
		}

		calibrated, ok := s.calibrator.Calibrate(base, tokens, segments)

		if ok {
			calibrated.Source = "ocr-coordinates#calibrated"
			extents = append(extents, calibrated)
			return extents, nil
		}
	}

	if known < 2 {
		return extents, nil
	}

	extents = append(extents, base)
	return extents, nil
}

// baseExtent returns the extent spanned by the (non-outlying) values of 'tokens' of known orientation,
// using the full range of any axis without labels, and the number of axes that had labels. Its
// probability is the mean token confidence.
func baseExtent(tokens []*calibration.Token) (*location.GeoExtent, int) {

	lats := make([]float64, 0)
	lons := make([]float64, 0)
	confidence := make([]float64, len(tokens))

	for idx, t := range tokens {

		confidence[idx] = t.Confidence

		switch t.Orientation {
		case coordinates.LATITUDE:
			lats = append(lats, t.Value)
		case coordinates.LONGITUDE:
			lons = append(lons, t.Value)
		}
	}

	lats, _ = outlier.Filter(lats, outlier.LATITUDE)
	lons, _ = outlier.Filter(lons, outlier.LONGITUDE)

	known := 0

	west, east := -180.0, 180.0
	south, north := -90.0, 90.0

	if len(lons) > 0 {
		west, east = floats.Min(lons), floats.Max(lons)
		known += 1
	}

	if len(lats) > 0 {
		south, north = floats.Min(lats), floats.Max(lats)
		known += 1
	}

	e := location.NewGeoExtent(west, south, east, north, stat.Mean(confidence, nil))
	e.Source = "ocr-coordinates"

	return e, known
}
