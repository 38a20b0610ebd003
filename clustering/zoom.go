// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package clustering

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ZoomModel maps a map zoom level to a clustering radius in degrees of arc.
//
// The radius is the footprint of a PointSize marker on a TileSize tile at that zoom,
// capped at MaxRadius. From DisableAtZoom on the radius is zero and every photo is
// rendered on its own.
type ZoomModel struct {
	MinZoom       int     `mapstructure:"min_zoom" json:"min_zoom"`
	MaxZoom       int     `mapstructure:"max_zoom" json:"max_zoom"`
	DisableAtZoom int     `mapstructure:"disable_at_zoom" json:"disable_at_zoom"`
	PointSize     float64 `mapstructure:"point_size" json:"point_size"`
	TileSize      float64 `mapstructure:"tile_size" json:"tile_size"`
	MaxRadius     float64 `mapstructure:"max_radius" json:"max_radius"`
}

// DefaultZoomModel returns the model used by the web map:
// zoom 1-19, 80px markers on 256px tiles, a 2° cap and no clustering from zoom 18.
func DefaultZoomModel() ZoomModel {
	return ZoomModel{
		MinZoom:       1,
		MaxZoom:       19,
		DisableAtZoom: 18,
		PointSize:     80,
		TileSize:      256,
		MaxRadius:     2.0,
	}
}

// Validate checks that the model can produce a monotonic curve reaching zero.
func (m ZoomModel) Validate() error {
	var errs []string

	if m.MinZoom < 0 {
		errs = append(errs, fmt.Sprintf("min_zoom must be >= 0, got %d", m.MinZoom))
	}

	if m.MinZoom > m.MaxZoom {
		errs = append(errs, fmt.Sprintf("min_zoom (%d) must not exceed max_zoom (%d)", m.MinZoom, m.MaxZoom))
	}

	if m.DisableAtZoom > m.MaxZoom {
		errs = append(errs, fmt.Sprintf("disable_at_zoom (%d) must not exceed max_zoom (%d)", m.DisableAtZoom, m.MaxZoom))
	}

	if !(m.PointSize > 0) {
		errs = append(errs, "point_size must be positive")
	}

	if !(m.TileSize > 0) {
		errs = append(errs, "tile_size must be positive")
	}

	if !(m.MaxRadius >= 0) || math.IsInf(m.MaxRadius, 0) {
		errs = append(errs, "max_radius must be a finite value >= 0")
	}

	if len(errs) > 0 {
		return errors.New("invalid zoom model: " + strings.Join(errs, "; "))
	}

	return nil
}

// Clamp limits zoom to the supported range.
func (m ZoomModel) Clamp(zoom int) int {
	if zoom < m.MinZoom {
		return m.MinZoom
	}

	if zoom > m.MaxZoom {
		return m.MaxZoom
	}

	return zoom
}

// RadiusFor returns the clustering radius for zoom, in degrees of arc.
// Out-of-range zoom levels are clamped rather than rejected.
func (m ZoomModel) RadiusFor(zoom int) float64 {
	zoom = m.Clamp(zoom)
	if zoom >= m.DisableAtZoom {
		return 0
	}

	r := m.PointSize * 360 / (m.TileSize * math.Exp2(float64(zoom)))

	return math.Min(r, m.MaxRadius)
}
