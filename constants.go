// Package geoextent estimates the geographic extent referenced by a document or one of its figures
// by fusing many weak signals (parsed coordinates, gazetteer matches, map graphics) into a single
// bounding box.
package geoextent

// The property namespace assigned to output features.
const RESERVED_GEOEXTENT_NS string = "geoextent"

const RESERVED_GEOEXTENT_PROBABILITY string = "geoextent:probability"

const RESERVED_GEOEXTENT_WEIGHT string = "geoextent:weight"

const RESERVED_GEOEXTENT_SCOPE string = "geoextent:scope"

const RESERVED_GEOEXTENT_RESOLVER string = "geoextent:resolver"

const RESERVED_GEOEXTENT_DOCUMENT string = "geoextent:document_id"

const RESERVED_GEOEXTENT_FIGURE string = "geoextent:figure_id"

// Default ambient weights assigned to candidates by the scope they were detected in.
const (
	DOCUMENT_TEXT_WEIGHT float64 = 0.5
	CAPTION_TEXT_WEIGHT  float64 = 0.75
	GRAPHIC_WEIGHT       float64 = 1.0
)

// Scopes a candidate extent may be detected in.
const (
	SCOPE_TITLE    string = "title"
	SCOPE_ABSTRACT string = "abstract"
	SCOPE_CAPTION  string = "caption"
	SCOPE_IMAGE    string = "image"
	SCOPE_DOCUMENT string = "document"
	SCOPE_FIGURE   string = "figure"
)
