// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package gallery

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/stareslike/stareslike/clustering"
	"github.com/stareslike/stareslike/gallery/utils"
	"github.com/stareslike/stareslike/spatial"
)

// Municipality is a town or municipality centroid from the GIS layer.
type Municipality struct {
	Name   string        `json:"name"`
	County string        `json:"county"`
	Point  spatial.Point `json:"point"`
}

// MunicipalityIndex provides lookup of municipality centroids by folded name.
type MunicipalityIndex struct {
	byName map[string]*Municipality // key: folded name
}

// LoadMunicipalities loads a GeoJSON FeatureCollection of municipality centroids.
func LoadMunicipalities(filepath string) (*MunicipalityIndex, error) {
	data, err := os.ReadFile(filepath) // #nosec G304 - filepath is provided by admin
	if err != nil {
		return nil, fmt.Errorf("reading municipalities file: %w", err)
	}

	return ParseMunicipalities(data)
}

// ParseMunicipalities builds an index from GeoJSON bytes.
// Features without a name or a valid point geometry are skipped.
func ParseMunicipalities(data []byte) (*MunicipalityIndex, error) {
	var geoJSON struct {
		Features []struct {
			Geometry struct {
				Type        string          `json:"type"`
				Coordinates json.RawMessage `json:"coordinates"`
			} `json:"geometry"`
			Properties struct {
				Name   string `json:"name"`
				County string `json:"county"`
			} `json:"properties"`
		} `json:"features"`
	}

	if err := json.Unmarshal(data, &geoJSON); err != nil {
		return nil, fmt.Errorf("parsing municipalities JSON: %w", err)
	}

	index := &MunicipalityIndex{
		byName: make(map[string]*Municipality),
	}

	for _, feature := range geoJSON.Features {
		if feature.Geometry.Type != "Point" {
			continue
		}

		var coords []float64
		if err := json.Unmarshal(feature.Geometry.Coordinates, &coords); err != nil || len(coords) < 2 {
			continue
		}

		m := &Municipality{
			Name:   strings.TrimSpace(feature.Properties.Name),
			County: feature.Properties.County,
			Point: spatial.Point{
				Lng: coords[0],
				Lat: coords[1],
			},
		}
		if m.Name == "" || !m.Point.Valid() {
			continue
		}

		index.byName[utils.LowerASCIIFolding(m.Name)] = m
	}

	return index, nil
}

// Len returns the number of indexed municipalities.
func (idx *MunicipalityIndex) Len() int {
	return len(idx.byName)
}

// e.g. "Grad Zagreb", "Općina Bol".
var adminPrefix = regexp.MustCompile(`^(grad|opcina|opcine|mjesto|otok)\s+`)

// nameCandidates expands a free-form place string into folded lookup keys,
// most specific first: "Riva, Split" -> "riva, split", "riva", "split".
func nameCandidates(place string) []string {
	folded := utils.LowerASCIIFolding(place)
	if folded == "" {
		return nil
	}

	candidates := []string{folded}

	for part := range strings.SplitSeq(folded, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == folded {
			continue
		}

		candidates = append(candidates, part)
	}

	for _, c := range candidates {
		if stripped := adminPrefix.ReplaceAllString(c, ""); stripped != c {
			candidates = append(candidates, stripped)
		}
	}

	return candidates
}

// Find returns the municipality named by place, or nil.
func (idx *MunicipalityIndex) Find(place string) *Municipality {
	if idx == nil {
		return nil
	}

	for _, key := range nameCandidates(place) {
		if m, ok := idx.byName[key]; ok {
			return m
		}
	}

	return nil
}

// Resolve returns a copy of records where photos without usable coordinates get the
// centroid of the municipality named by their location name or address.
// Records that already have valid coordinates, or name no known place, are copied as is.
func (idx *MunicipalityIndex) Resolve(records []clustering.PhotoRecord) []clustering.PhotoRecord {
	out := make([]clustering.PhotoRecord, len(records))
	copy(out, records)

	if idx == nil || len(idx.byName) == 0 {
		return out
	}

	for i := range out {
		r := &out[i]
		if _, ok := r.Coordinates.Point(); ok {
			continue
		}

		places := []string{r.LocationName, r.Address}
		if r.Coordinates != nil {
			places = append(places, r.Coordinates.Address)
		}

		for _, place := range places {
			m := idx.Find(place)
			if m == nil {
				continue
			}

			coords := clustering.NewCoordinates(m.Point.Lat, m.Point.Lng)
			if r.Coordinates != nil {
				coords.Address = r.Coordinates.Address
			}

			r.Coordinates = coords

			break
		}
	}

	return out
}
