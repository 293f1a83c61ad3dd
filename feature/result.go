package feature

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sfomuseum/go-geoextent"
	"github.com/sfomuseum/go-geoextent/strategy"
	"github.com/whosonfirst/go-whosonfirst-uri"
)

var re_label = regexp.MustCompile(`[^a-z0-9]+`)

// type KeyedFeature is an `ExtentFeature` and the (relative) path it should be written to.
type KeyedFeature struct {
	Path    string
	Feature *ExtentFeature
}

// FeaturesFromResult returns the features for the resolved extents in 'rsp'. The document extent is
// written to the document's own path; figure extents are written as alternate geometries of the
// document labelled "geoextent-{FIGURE}". Unresolved extents are skipped.
//
// Figure identifiers are folded to lower case alphanumeric labels. An empty label becomes "figure"
// and a label already used by an earlier figure gets a numeric suffix ("fig_1_2"), so every figure
// is written to its own path.
func FeaturesFromResult(rsp *strategy.Result) ([]*KeyedFeature, error) {

	doc_id := DocumentId(rsp.DocumentId)
	features := make([]*KeyedFeature, 0)

	if rsp.Extent != nil {

		path, err := uri.Id2RelPath(doc_id, &uri.URIArgs{})

		if err != nil {
			return nil, fmt.Errorf("Failed to derive path for document %s, %w", rsp.DocumentId, err)
		}

		f := NewExtentFeature(doc_id, rsp.Extent)
		assignProperties(f, rsp, geoextent.SCOPE_DOCUMENT, "")

		features = append(features, &KeyedFeature{Path: path, Feature: f})
	}

	seen := make(map[string]bool)

	for _, fr := range rsp.Figures {

		if fr.Extent == nil {
			continue
		}

		label := figureLabel(fr.FigureId, seen)
		alt_label := fmt.Sprintf("%s-%s", geoextent.RESERVED_GEOEXTENT_NS, label)

		alt_args := &uri.URIArgs{
			IsAlternate: true,
			AltGeom: &uri.AltGeom{
				Source: alt_label,
			},
		}

		path, err := uri.Id2RelPath(doc_id, alt_args)

		if err != nil {
			return nil, fmt.Errorf("Failed to derive path for figure %s, %w", fr.FigureId, err)
		}

		f := NewExtentFeature(doc_id, fr.Extent)
		assignProperties(f, rsp, geoextent.SCOPE_FIGURE, fr.FigureId)

		f.Properties["src:alt_label"] = alt_label

		features = append(features, &KeyedFeature{Path: path, Feature: f})
	}

	return features, nil
}

func figureLabel(figure_id string, seen map[string]bool) string {

	base := strings.Trim(re_label.ReplaceAllString(strings.ToLower(figure_id), "_"), "_")

	if base == "" {
		base = "figure"
	}

	label := base

	for i := 2; seen[label]; i++ {
		label = fmt.Sprintf("%s_%d", base, i)
	}

	seen[label] = true
	return label
}

func assignProperties(f *ExtentFeature, rsp *strategy.Result, scope string, figure_id string) {

	f.Properties[geoextent.RESERVED_GEOEXTENT_SCOPE] = scope
	f.Properties[geoextent.RESERVED_GEOEXTENT_DOCUMENT] = rsp.DocumentId
	f.Properties[geoextent.RESERVED_GEOEXTENT_RESOLVER] = rsp.Resolver

	if figure_id != "" {
		f.Properties[geoextent.RESERVED_GEOEXTENT_FIGURE] = figure_id
	}
}
