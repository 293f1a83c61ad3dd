package strategy

import (
	"context"
	"fmt"

	"github.com/sfomuseum/go-geoextent"
	"github.com/sfomuseum/go-geoextent/calibration"
	"github.com/sfomuseum/go-geoextent/gazetteer"
	"github.com/sfomuseum/runtimevar"
	"gopkg.in/yaml.v3"
)

// DEFAULT_MAP_THRESHOLD is the map probability a figure must reach before graphic sources are applied to it.
const DEFAULT_MAP_THRESHOLD float64 = 0.5

// type ScopeConfig defines the ordered signal sources applied to one scope (title, abstract, caption
// or image) and the weight assigned to the extents they produce.
type ScopeConfig struct {
	Weight  float64  `yaml:"weight" json:"weight"`
	Sources []string `yaml:"sources" json:"sources"`
}

// type ServicesConfig defines the URIs of the collaborators shared by signal sources. Empty URIs
// leave the corresponding service unavailable.
type ServicesConfig struct {
	Gazetteer  string   `yaml:"gazetteer" json:"gazetteer"`
	Recognizer string   `yaml:"recognizer" json:"recognizer"`
	OCR        string   `yaml:"ocr" json:"ocr"`
	Lines      string   `yaml:"lines" json:"lines"`
	Classifier string   `yaml:"classifier" json:"classifier"`
	Demonyms   []string `yaml:"demonyms" json:"demonyms"`
}

// type Config defines a strategy: the collaborators, the sources applied to each scope and the resolver
// that collapses each candidate set.
type Config struct {
	Resolver     string                         `yaml:"resolver" json:"resolver"`
	MapThreshold float64                        `yaml:"map_threshold" json:"map_threshold"`
	Services     *ServicesConfig                `yaml:"services" json:"services"`
	Title        *ScopeConfig                   `yaml:"title" json:"title"`
	Abstract     *ScopeConfig                   `yaml:"abstract" json:"abstract"`
	Caption      *ScopeConfig                   `yaml:"caption" json:"caption"`
	Image        *ScopeConfig                   `yaml:"image" json:"image"`
	Springfield  *gazetteer.SpringfieldOptions  `yaml:"springfield" json:"springfield"`
	Calibration  *calibration.CalibratorOptions `yaml:"calibration" json:"calibration"`
}

// DefaultConfig returns the default strategy: coordinates and place names in every text scope,
// world maps and calibrated coordinate labels in figure images, resolved with the "union://" resolver.
func DefaultConfig() *Config {

	text_sources := func() []string {
		return []string{
			"coordinates://",
			"gazetteer://",
		}
	}

	cfg := &Config{
		Resolver:     "union://",
		MapThreshold: DEFAULT_MAP_THRESHOLD,
		Services: &ServicesConfig{
			Gazetteer:  gazetteer.FALLBACK_GAZETTEER_URI,
			Recognizer: "capitals://",
			Lines:      "runs://",
		},
		Title: &ScopeConfig{
			Weight:  geoextent.DOCUMENT_TEXT_WEIGHT,
			Sources: text_sources(),
		},
		Abstract: &ScopeConfig{
			Weight:  geoextent.DOCUMENT_TEXT_WEIGHT,
			Sources: text_sources(),
		},
		Caption: &ScopeConfig{
			Weight:  geoextent.CAPTION_TEXT_WEIGHT,
			Sources: text_sources(),
		},
		Image: &ScopeConfig{
			Weight: geoextent.GRAPHIC_WEIGHT,
			Sources: []string{
				"worldmap://",
				"ocr-coordinates://",
			},
		},
		Springfield: &gazetteer.SpringfieldOptions{},
		Calibration: &calibration.CalibratorOptions{},
	}

	return cfg
}

// ParseConfig parses the YAML (or JSON) document 'body' on top of `DefaultConfig`.
func ParseConfig(body []byte) (*Config, error) {

	cfg := DefaultConfig()

	err := yaml.Unmarshal(body, cfg)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse config, %w", err)
	}

	return cfg, nil
}

// LoadConfig reads the strategy document from the gocloud.dev/runtimevar URI 'uri' and parses it with
// `ParseConfig`.
func LoadConfig(ctx context.Context, uri string) (*Config, error) {

	str_cfg, err := runtimevar.StringVar(ctx, uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to read config, %w", err)
	}

	return ParseConfig([]byte(str_cfg))
}
