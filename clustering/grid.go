// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package clustering

import (
	"math"
	"sort"
)

const (
	// minCellSize bounds the number of grid columns for tiny radii (about 1m).
	minCellSize = 1e-5
	// maxGridRadius is the largest radius for which the grid prunes anything useful.
	maxGridRadius = 10.0
	// polarMargin switches to whole rows when the search circle gets close to a pole.
	polarMargin = 89.0
)

type cellKey struct {
	row, col int64
}

// grid buckets photos into lat/lng cells whose size divides 360°, so that
// column indexes wrap cleanly across the ±180° seam.
type grid struct {
	photos []GeoPhoto
	radius float64
	cell   float64
	cols   int64
	cells  map[cellKey][]int
	rows   map[int64][]int
}

func newGrid(photos []GeoPhoto, radius float64) *grid {
	cols := int64(math.Ceil(360 / math.Max(radius, minCellSize)))
	if cols < 1 {
		cols = 1
	}

	g := &grid{
		photos: photos,
		radius: radius,
		cell:   360 / float64(cols),
		cols:   cols,
		cells:  make(map[cellKey][]int),
		rows:   make(map[int64][]int),
	}

	for i, p := range photos {
		row := g.row(p.Position.Lat)
		key := cellKey{row: row, col: g.col(p.Position.Lng)}
		g.cells[key] = append(g.cells[key], i)
		g.rows[row] = append(g.rows[row], i)
	}

	return g
}

func (g *grid) row(lat float64) int64 {
	return int64(math.Floor((lat + 90) / g.cell))
}

func (g *grid) col(lng float64) int64 {
	return g.wrap(int64(math.Floor((lng + 180) / g.cell)))
}

func (g *grid) wrap(col int64) int64 {
	col %= g.cols
	if col < 0 {
		col += g.cols
	}

	return col
}

// near returns, in ascending order, the indexes of every photo that may lie within
// radius of photo i. The search box is padded by one cell on each side.
func (g *grid) near(i int) []int {
	p := g.photos[i].Position

	rowLo := g.row(p.Lat-g.radius) - 1
	rowHi := g.row(p.Lat+g.radius) + 1

	wholeRows := math.Abs(p.Lat)+g.radius >= polarMargin

	var colLo, colHi int64

	if !wholeRows {
		s := math.Sin(g.radius*math.Pi/180) / math.Cos(p.Lat*math.Pi/180)
		if s >= 1 {
			wholeRows = true
		} else {
			dLng := math.Asin(s) * 180 / math.Pi
			colLo = int64(math.Floor((p.Lng-dLng+180)/g.cell)) - 1
			colHi = int64(math.Floor((p.Lng+dLng+180)/g.cell)) + 1
			wholeRows = colHi-colLo+1 >= g.cols
		}
	}

	var out []int

	for row := rowLo; row <= rowHi; row++ {
		if wholeRows {
			out = append(out, g.rows[row]...)

			continue
		}

		for col := colLo; col <= colHi; col++ {
			out = append(out, g.cells[cellKey{row: row, col: g.wrap(col)}]...)
		}
	}

	sort.Ints(out)

	return out
}
