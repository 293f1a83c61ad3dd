// Package geometry provides helpers for deriving points and bounds from geometries and Who's On First records.
package geometry

import (
	"github.com/paulmach/orb"
)

// AddPointIfNotExist adds 'new' to 'points' unless it is already present.
func AddPointIfNotExist(points []orb.Point, new orb.Point) []orb.Point {

	exists := false

	for _, pt := range points {

		if pt.Equal(new) {
			exists = true
			break
		}
	}

	if !exists {
		points = append(points, new)
	}

	return points
}

// DeriveMultiPoint returns a `orb.MultiPoint` of the distinct members of 'points', in the order they
// were first seen.
func DeriveMultiPoint(points ...orb.Point) orb.MultiPoint {

	distinct := make([]orb.Point, 0)

	for _, pt := range points {
		distinct = AddPointIfNotExist(distinct, pt)
	}

	return orb.MultiPoint(distinct)
}
