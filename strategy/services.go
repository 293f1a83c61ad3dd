package strategy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/sfomuseum/go-geoextent/calibration"
	"github.com/sfomuseum/go-geoextent/classifier"
	"github.com/sfomuseum/go-geoextent/detector"
	"github.com/sfomuseum/go-geoextent/gazetteer"
	"github.com/sfomuseum/go-geoextent/lines"
	"github.com/sfomuseum/go-geoextent/names"
	"github.com/sfomuseum/go-geoextent/ocr"
)

// NewServices returns the collaborators defined by 'cfg'. Collaborators that can not be created are
// logged and left unavailable, except for the gazetteer which falls back to gazetteer.FALLBACK_GAZETTEER_URI.
// Only an invalid recognizer URI is an error.
func NewServices(ctx context.Context, cfg *Config) (*detector.Services, error) {

	services := &detector.Services{
		Springfield: gazetteer.NewSpringfield(cfg.Springfield),
		Calibrator:  calibration.NewCalibrator(cfg.Calibration),
	}

	svc_cfg := cfg.Services

	if svc_cfg == nil {
		svc_cfg = &ServicesConfig{}
	}

	services.Demonyms = gazetteer.NewDemonymFilter(svc_cfg.Demonyms...)

	if svc_cfg.Gazetteer != "" {

		g, err := gazetteer.NewGazetteerWithFallback(ctx, svc_cfg.Gazetteer)

		if err != nil {
			slog.Warn("Gazetteer unavailable, place name sources will be skipped", "uri", svc_cfg.Gazetteer, "error", err)
		} else {
			services.Gazetteer = g
		}
	}

	if svc_cfg.Recognizer != "" {

		r, err := names.NewRecognizer(ctx, svc_cfg.Recognizer)

		if err != nil {
			return nil, fmt.Errorf("Failed to create recognizer, %w", err)
		}

		services.Recognizer = r
	}

	if svc_cfg.OCR != "" {

		o, err := ocr.NewOCR(ctx, svc_cfg.OCR)

		if err != nil {
			slog.Warn("OCR unavailable", "uri", svc_cfg.OCR, "error", err)
		} else {
			services.OCR = o
		}
	}

	if svc_cfg.Lines != "" {

		d, err := lines.NewDetector(ctx, svc_cfg.Lines)

		if err != nil {
			slog.Warn("Line detector unavailable", "uri", svc_cfg.Lines, "error", err)
		} else {
			services.Lines = d
		}
	}

	if svc_cfg.Classifier != "" {

		c, err := classifier.NewClassifier(ctx, svc_cfg.Classifier)

		if err != nil {
			slog.Warn("Map classifier unavailable, graphic sources will be skipped", "uri", svc_cfg.Classifier, "error", err)
		} else {
			services.Classifier = c
		}
	}

	return services, nil
}

// CloseServices releases the resources held by the collaborators in 'services'.
func CloseServices(services *detector.Services) error {

	var result error

	if services.Gazetteer != nil {

		err := services.Gazetteer.Close()

		if err != nil {
			result = multierror.Append(result, fmt.Errorf("Failed to close gazetteer, %w", err))
		}
	}

	if services.OCR != nil {

		err := services.OCR.Close()

		if err != nil {
			result = multierror.Append(result, fmt.Errorf("Failed to close OCR, %w", err))
		}
	}

	return result
}
