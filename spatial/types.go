// Copyright 2025 The StareSlike Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"fmt"
	"math"
)

const earthRadius = 6371e3 // meters

const metersPerDegree = earthRadius * math.Pi / 180

// Point represents a geographical point with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("POINT(%f %f)", p.Lng, p.Lat)
}

// Valid reports whether both coordinates are finite and inside the WGS84 ranges.
func (p Point) Valid() bool {
	return ValidCoordinates(p.Lat, p.Lng)
}

// ValidCoordinates reports whether lat/lng are finite and within [-90,90] and [-180,180].
func ValidCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}

	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// centralAngle returns the great-circle angle between two points in radians.
// Only sin²(Δλ/2) depends on the longitudes, so the ±180° seam needs no special case.
func centralAngle(p, other Point) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - p.Lat) * math.Pi / 180
	dLng := (other.Lng - p.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	if a > 1 {
		a = 1
	}

	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// HaversineDistance calculates the distance between two points on Earth in meters.
func (p *Point) HaversineDistance(other *Point) float64 {
	return earthRadius * centralAngle(*p, *other)
}

// AngularDistance returns the great-circle distance to other in degrees of arc.
func (p Point) AngularDistance(other Point) float64 {
	return centralAngle(p, other) * 180 / math.Pi
}

// Centroid returns the arithmetic mean of the latitudes and longitudes of points.
// It is not seam aware. An empty slice yields the zero Point.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}

	n := float64(len(points))

	return Point{Lat: sumLat / n, Lng: sumLng / n}
}

// MetersToDegrees converts a distance on the earth surface to degrees of arc.
func MetersToDegrees(meters float64) float64 {
	return meters / metersPerDegree
}

// DegreesToMeters converts degrees of arc to a distance on the earth surface.
func DegreesToMeters(degrees float64) float64 {
	return degrees * metersPerDegree
}
