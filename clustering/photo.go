// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

// Package clustering groups geotagged photographs into map markers for a zoom level.
//
// The pipeline is Filter -> ZoomModel.RadiusFor -> Cluster. Every step is a pure
// function of its arguments, so callers may run passes concurrently and memoize the
// output keyed by the photo set and zoom.
package clustering

import (
	"github.com/stareslike/stareslike/spatial"
)

// DisplayFields is the payload shown in popups. The engine carries it through untouched.
type DisplayFields struct {
	Description  string `json:"description,omitempty"`
	Year         int    `json:"year,omitempty"`
	Author       string `json:"author,omitempty"`
	LocationName string `json:"location_name,omitempty"`
	Address      string `json:"address,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	Likes        int    `json:"likes"`
	Views        int    `json:"views"`
}

// Coordinates is the optional location block of a stored photograph.
// A nil Latitude or Longitude means the value was never resolved.
type Coordinates struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Address   string   `json:"address,omitempty"`
}

// NewCoordinates returns Coordinates holding lat and lng.
func NewCoordinates(lat, lng float64) *Coordinates {
	return &Coordinates{Latitude: &lat, Longitude: &lng}
}

// Point returns the coordinates as a spatial.Point and whether they are usable.
func (c *Coordinates) Point() (spatial.Point, bool) {
	if c == nil || c.Latitude == nil || c.Longitude == nil {
		return spatial.Point{}, false
	}

	p := spatial.Point{Lat: *c.Latitude, Lng: *c.Longitude}

	return p, p.Valid()
}

// PhotoRecord is a photograph as supplied by the photo store.
type PhotoRecord struct {
	ID string `json:"id"`
	DisplayFields
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// GeoPhoto is a photograph with a resolved, valid position.
type GeoPhoto struct {
	ID       string        `json:"id"`
	Position spatial.Point `json:"position"`
	Display  DisplayFields `json:"display"`
}

// Filter returns the records that carry valid coordinates, in input order.
// Records with missing, NaN, infinite or out-of-range coordinates are skipped.
func Filter(records []PhotoRecord) []GeoPhoto {
	photos := make([]GeoPhoto, 0, len(records))

	for _, r := range records {
		pos, ok := r.Coordinates.Point()
		if !ok {
			continue
		}

		display := r.DisplayFields
		if display.Address == "" {
			display.Address = r.Coordinates.Address
		}

		photos = append(photos, GeoPhoto{
			ID:       r.ID,
			Position: pos,
			Display:  display,
		})
	}

	return photos
}
