// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package gallery

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/stareslike/stareslike/clustering"
	"github.com/stareslike/stareslike/gallery/utils"
	"github.com/uber/h3-go/v4"
)

const (
	// DefaultTopLocations is the number of location names reported by Summarize.
	DefaultTopLocations = 10
	// DefaultH3Resolution groups photos in cells of roughly 250 km².
	DefaultH3Resolution = 5
	maxH3Resolution     = 15
)

// SummaryOptions tunes Summarize.
type SummaryOptions struct {
	TopLocations int
	H3Resolution int
}

// DecadeCount is the number of photos taken in a decade.
type DecadeCount struct {
	Decade int `json:"decade"`
	Count  int `json:"count"`
}

// KeyCount is the number of photos sharing a key.
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Summary describes a photo collection and its markers at one zoom level.
type Summary struct {
	Records        int           `json:"records"`
	Geotagged      int           `json:"geotagged"`
	Undated        int           `json:"undated"`
	Zoom           int           `json:"zoom"`
	Radius         float64       `json:"radius"`
	Markers        int           `json:"markers"`
	Clusters       int           `json:"clusters"`
	Individuals    int           `json:"individuals"`
	LargestCluster int           `json:"largest_cluster"`
	Decades        []DecadeCount `json:"decades"`
	Locations      []KeyCount    `json:"locations"`
	H3Resolution   int           `json:"h3_resolution"`
	Cells          []KeyCount    `json:"cells"`
}

// byCountThenKey orders counts descending, breaking ties by key.
func byCountThenKey(a, b KeyCount) int {
	if c := cmp.Compare(b.Count, a.Count); c != 0 {
		return c
	}

	return cmp.Compare(a.Key, b.Key)
}

// Summarize aggregates records, the geotagged photos derived from them, and their markers.
func Summarize(records []clustering.PhotoRecord, photos []clustering.GeoPhoto, markers Markers, opts SummaryOptions) (*Summary, error) {
	if opts.H3Resolution < 0 || opts.H3Resolution > maxH3Resolution {
		return nil, fmt.Errorf("h3 resolution must be between 0 and %d (got %d)", maxH3Resolution, opts.H3Resolution)
	}

	if opts.TopLocations <= 0 {
		opts.TopLocations = DefaultTopLocations
	}

	s := &Summary{
		Records:      len(records),
		Geotagged:    len(photos),
		Zoom:         markers.Zoom,
		Radius:       markers.Radius,
		Markers:      len(markers.Items),
		H3Resolution: opts.H3Resolution,
		Decades:      []DecadeCount{},
		Locations:    []KeyCount{},
		Cells:        []KeyCount{},
	}

	for _, item := range markers.Items {
		if item.IsCluster() {
			s.Clusters++
			s.LargestCluster = max(s.LargestCluster, item.Count)
		} else {
			s.Individuals++
		}
	}

	decades := make(map[int]int)
	locations := make(map[string]int)
	names := make(map[string]string) // folded -> first spelling seen

	for i := range records {
		r := &records[i]

		if d := Decade(r.Year); d != 0 {
			decades[d]++
		} else {
			s.Undated++
		}

		if key := utils.LowerASCIIFolding(r.LocationName); key != "" {
			if _, ok := names[key]; !ok {
				names[key] = r.LocationName
			}

			locations[key]++
		}
	}

	for d, n := range decades {
		s.Decades = append(s.Decades, DecadeCount{Decade: d, Count: n})
	}

	slices.SortFunc(s.Decades, func(a, b DecadeCount) int { return cmp.Compare(a.Decade, b.Decade) })

	for key, n := range locations {
		s.Locations = append(s.Locations, KeyCount{Key: names[key], Count: n})
	}

	slices.SortFunc(s.Locations, byCountThenKey)

	if len(s.Locations) > opts.TopLocations {
		s.Locations = s.Locations[:opts.TopLocations]
	}

	cells := make(map[string]int)

	for _, p := range photos {
		cell, err := h3.LatLngToCell(h3.NewLatLng(p.Position.Lat, p.Position.Lng), opts.H3Resolution)
		if err != nil {
			return nil, fmt.Errorf("computing h3 cell for photo %s: %w", p.ID, err)
		}

		cells[strconv.FormatInt(int64(cell), 16)]++
	}

	for key, n := range cells {
		s.Cells = append(s.Cells, KeyCount{Key: key, Count: n})
	}

	slices.SortFunc(s.Cells, byCountThenKey)

	return s, nil
}
