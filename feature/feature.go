// Package feature provides methods for formatting resolved extents as Who's On First style GeoJSON features.
package feature

import (
	"fmt"
	"hash/fnv"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/sfomuseum/go-geoextent"
	"github.com/sfomuseum/go-geoextent/location"
	"github.com/tidwall/sjson"
	"github.com/whosonfirst/go-whosonfirst-format"
)

// ExtentFeature is a struct defining a GeoJSON Feature for a resolved extent.
type ExtentFeature struct {
	Id         int64                  `json:"id"`
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   *geojson.Geometry      `json:"geometry"`
}

// NewExtentFeature returns a new `ExtentFeature` for 'e' with the ID 'id'. Point extents are encoded
// as Point geometries and everything else as the Polygon of the extent's bounds.
func NewExtentFeature(id int64, e *location.GeoExtent) *ExtentFeature {

	var geom orb.Geometry

	if e.IsPoint() {
		geom = orb.Point{e.West(), e.South()}
	} else {
		geom = e.Bound().ToPolygon()
	}

	lbl := orb.Point{e.West(), e.South()}

	if !e.IsDegenerate() {
		lbl, _ = planar.CentroidArea(geom)
	}

	props := map[string]interface{}{
		geoextent.RESERVED_GEOEXTENT_PROBABILITY: e.Probability,
		geoextent.RESERVED_GEOEXTENT_WEIGHT:      e.Weight,
		"geom:bbox":                              fmt.Sprintf("%f,%f,%f,%f", e.West(), e.South(), e.East(), e.North()),
		"lbl:latitude":                           lbl.Y(),
		"lbl:longitude":                          lbl.X(),
		"src:geom":                               geoextent.RESERVED_GEOEXTENT_NS,
		"wof:id":                                 id,
	}

	if e.Source != "" {
		props["geoextent:source"] = e.Source
	}

	f := &ExtentFeature{
		Type:       "Feature",
		Id:         id,
		Properties: props,
		Geometry:   geojson.NewGeometry(geom),
	}

	return f
}

// FormatExtentFeature formats 'f' and removes any top-level `bbox` properties.
func FormatExtentFeature(f *ExtentFeature) ([]byte, error) {

	ff := &format.Feature{
		Type:       f.Type,
		ID:         f.Id,
		Properties: f.Properties,
		Geometry:   f.Geometry,
	}

	body, err := format.FormatFeature(ff)

	if err != nil {
		return nil, fmt.Errorf("Failed to format feature, %w", err)
	}

	body, err = sjson.DeleteBytes(body, "bbox")

	if err != nil {
		return nil, fmt.Errorf("Failed to delete bbox property, %w", err)
	}

	return body, nil
}

// DocumentId returns the numeric ID for the document identifier 'str_id'. Numeric identifiers are
// used as-is; anything else is hashed (FNV-1a) in to a positive 63-bit integer.
func DocumentId(str_id string) int64 {

	id, err := strconv.ParseInt(str_id, 10, 64)

	if err == nil && id > 0 {
		return id
	}

	h := fnv.New64a()
	h.Write([]byte(str_id))

	return int64(h.Sum64() & 0x7fffffffffffffff)
}
