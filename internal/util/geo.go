// Package util holds small helpers shared by use cases.
package util

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// DistanceKm returns the great-circle distance between two coordinates in kilometers.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	return geo.Distance(orb.Point{lng1, lat1}, orb.Point{lng2, lat2}) / 1000
}

// RadiusFilter keeps points within RadiusKm of a center.
type RadiusFilter struct {
	bound    orb.Bound
	center   orb.Point
	radiusKm float64
}

// NewRadiusFilter prepares a filter around (lat, lng). The bounding box rejects far points
// before the haversine distance is computed.
func NewRadiusFilter(lat, lng, radiusKm float64) RadiusFilter {
	center := orb.Point{lng, lat}

	return RadiusFilter{
		bound:    geo.NewBoundAroundPoint(center, radiusKm*1000),
		center:   center,
		radiusKm: radiusKm,
	}
}

// Contains reports whether (lat, lng) lies within the radius.
func (f RadiusFilter) Contains(lat, lng float64) bool {
	p := orb.Point{lng, lat}
	if !f.bound.Contains(p) {
		return false
	}

	return geo.Distance(f.center, p)/1000 <= f.radiusKm
}
