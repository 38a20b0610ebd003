// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package clustering

import (
	"fmt"
	"math"
)

// gridThreshold is the input size from which candidates come from a grid index
// instead of a scan over every photo.
const gridThreshold = 256

// Cluster partitions photos into markers for the given radius in degrees of arc.
//
// Photos are taken as seeds in input order. Each unclaimed seed claims every other
// unclaimed photo whose great-circle distance to the seed is at most radius. Proximity
// is only ever measured against the seed, so chains longer than radius are not merged.
// Every photo ends up in exactly one item and the output is identical for identical input.
//
// A negative or NaN radius is a caller bug and panics.
func Cluster(photos []GeoPhoto, radius float64) []Item {
	if math.IsNaN(radius) || radius < 0 {
		panic(fmt.Sprintf("clustering: invalid radius %v", radius))
	}

	if radius == 0 || len(photos) < 2 {
		items := make([]Item, len(photos))
		for i, p := range photos {
			items[i] = NewIndividual(p)
		}

		return items
	}

	var candidates func(i int) []int
	if len(photos) >= gridThreshold && radius < maxGridRadius {
		candidates = newGrid(photos, radius).near
	} else {
		all := make([]int, len(photos))
		for i := range all {
			all[i] = i
		}

		candidates = func(int) []int { return all }
	}

	return group(photos, radius, candidates)
}

// group runs the seed pass. candidates(i) must return, in ascending order, a superset
// of the indexes within radius of photo i.
func group(photos []GeoPhoto, radius float64, candidates func(i int) []int) []Item {
	items := make([]Item, 0, len(photos))
	claimed := make([]bool, len(photos))

	for i, seed := range photos {
		if claimed[i] {
			continue
		}

		claimed[i] = true
		members := []GeoPhoto{seed}

		for _, j := range candidates(i) {
			if claimed[j] {
				continue
			}

			if seed.Position.AngularDistance(photos[j].Position) <= radius {
				members = append(members, photos[j])
				claimed[j] = true
			}
		}

		if len(members) == 1 {
			items = append(items, NewIndividual(seed))
		} else {
			items = append(items, newCluster(members))
		}
	}

	return items
}
