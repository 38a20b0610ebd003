// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package clustering

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stareslike/stareslike/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func photo(id string, lat, lng float64) GeoPhoto {
	return GeoPhoto{ID: id, Position: spatial.Point{Lat: lat, Lng: lng}}
}

// randomPhotos spreads n photos over a bounding box with a fixed seed.
func randomPhotos(r *rand.Rand, prefix string, n int, minLat, maxLat, minLng, maxLng float64) []GeoPhoto {
	photos := make([]GeoPhoto, n)
	for i := range photos {
		photos[i] = photo(
			fmt.Sprintf("%s-%04d", prefix, i),
			minLat+r.Float64()*(maxLat-minLat),
			minLng+r.Float64()*(maxLng-minLng),
		)
	}

	return photos
}

func ids(items []Item) map[string]int {
	seen := make(map[string]int)

	for _, it := range items {
		for _, p := range it.Photos() {
			seen[p.ID]++
		}
	}

	return seen
}

func TestClusterScenarios(t *testing.T) {
	tests := []struct {
		name         string
		photos       []GeoPhoto
		radius       float64
		wantItems    int
		wantClusters []int
	}{
		{
			name: "three photos in zagreb within 50m",
			photos: []GeoPhoto{
				photo("ban-jelacic-1", 45.8131, 15.9775),
				photo("ban-jelacic-2", 45.8133, 15.9776),
				photo("ban-jelacic-3", 45.8130, 15.9778),
			},
			radius:       spatial.MetersToDegrees(500),
			wantItems:    1,
			wantClusters: []int{3},
		},
		{
			name: "zagreb and split at low zoom",
			photos: []GeoPhoto{
				photo("zagreb", 45.8131, 15.9775),
				photo("split", 43.5081, 16.4402),
			},
			radius:    spatial.MetersToDegrees(50_000),
			wantItems: 2,
		},
		{
			name: "identical coordinates with zero radius",
			photos: []GeoPhoto{
				photo("a", 45.1, 15.2),
				photo("b", 45.1, 15.2),
				photo("c", 45.1, 15.2),
				photo("d", 45.1, 15.2),
				photo("e", 45.1, 15.2),
			},
			radius:    0,
			wantItems: 5,
		},
		{
			name:      "empty input",
			photos:    nil,
			radius:    1,
			wantItems: 0,
		},
		{
			name: "across the antimeridian",
			photos: []GeoPhoto{
				photo("east", 45.0, 179.99),
				photo("west", 45.0, -179.99),
			},
			radius:       0.05,
			wantItems:    1,
			wantClusters: []int{2},
		},
		{
			name: "across the antimeridian at the equator",
			photos: []GeoPhoto{
				photo("east", 0, 179.9),
				photo("west", 0, -179.9),
			},
			radius:       0.3,
			wantItems:    1,
			wantClusters: []int{2},
		},
		{
			name: "identical coordinates cluster with any positive radius",
			photos: []GeoPhoto{
				photo("a", 43.5, 16.4),
				photo("b", 43.5, 16.4),
			},
			radius:       1e-12,
			wantItems:    1,
			wantClusters: []int{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := Cluster(tt.photos, tt.radius)
			require.Len(t, items, tt.wantItems)

			var clusters []int

			for _, it := range items {
				if it.IsCluster() {
					clusters = append(clusters, it.Count)
				} else {
					assert.Equal(t, KindIndividual, it.Kind)
					assert.Equal(t, 1, it.Count)
					assert.Equal(t, it.Photo.Position, it.Position)
				}
			}

			assert.Equal(t, tt.wantClusters, clusters)
		})
	}
}

func TestClusterPartition(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for _, n := range []int{0, 1, 2, 17, 300} {
		photos := randomPhotos(r, "p", n, 42.4, 46.5, 13.5, 19.4)

		for _, radius := range []float64{0, 0.001, 0.05, 0.5, 5, 200} {
			t.Run(fmt.Sprintf("n=%d/r=%g", n, radius), func(t *testing.T) {
				items := Cluster(photos, radius)
				seen := ids(items)

				require.Len(t, seen, n)

				for _, p := range photos {
					assert.Equal(t, 1, seen[p.ID], "photo %s", p.ID)
				}

				for _, it := range items {
					if it.IsCluster() {
						assert.GreaterOrEqual(t, len(it.Members), 2)
						assert.Equal(t, len(it.Members), it.Count)
						assert.Nil(t, it.Photo)
					}
				}
			})
		}
	}
}

func TestClusterDeterminism(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	photos := randomPhotos(r, "d", 400, 42.4, 46.5, 13.5, 19.4)

	for _, radius := range []float64{0.01, 0.1, 1} {
		first := Cluster(photos, radius)
		second := Cluster(photos, radius)

		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("Cluster(r=%g) not deterministic (-first +second):\n%s", radius, diff)
		}
	}
}

func TestClusterZeroRadiusIdentity(t *testing.T) {
	photos := []GeoPhoto{
		photo("a", 45.8, 15.9),
		photo("b", 45.8, 15.9),
		{ID: "c", Position: spatial.Point{Lat: 43.5, Lng: 16.4}, Display: DisplayFields{Year: 1911, Author: "Tomislav"}},
	}

	items := Cluster(photos, 0)
	require.Len(t, items, len(photos))

	for i, it := range items {
		assert.Equal(t, KindIndividual, it.Kind)
		assert.Equal(t, photos[i], *it.Photo)
	}
}

func TestClusterCentroid(t *testing.T) {
	photos := []GeoPhoto{
		photo("a", 45.00, 15.00),
		photo("b", 45.02, 15.01),
		photo("c", 45.01, 15.05),
	}

	items := Cluster(photos, 1)
	require.Len(t, items, 1)

	c := items[0]
	assert.True(t, c.IsCluster())
	assert.InDelta(t, (45.00+45.02+45.01)/3, c.Position.Lat, 1e-12)
	assert.InDelta(t, (15.00+15.01+15.05)/3, c.Position.Lng, 1e-12)
	assert.Equal(t, photos, c.Members)
}

func TestClusterCentroidAcrossSeamIsArithmeticMean(t *testing.T) {
	items := Cluster([]GeoPhoto{photo("east", 45, 179.99), photo("west", 45, -179.99)}, 0.05)
	require.Len(t, items, 1)

	assert.InDelta(t, 45, items[0].Position.Lat, 1e-12)
	assert.InDelta(t, 0, items[0].Position.Lng, 1e-9)
}

func TestClusterIsSeedBasedNotTransitive(t *testing.T) {
	// a-b and b-c are within the radius, a-c is not.
	photos := []GeoPhoto{
		photo("a", 45.0, 15.00),
		photo("b", 45.0, 15.08),
		photo("c", 45.0, 15.16),
	}
	radius := photos[0].Position.AngularDistance(photos[1].Position) * 1.1

	items := Cluster(photos, radius)
	require.Len(t, items, 2)

	assert.Equal(t, KindCluster, items[0].Kind)
	assert.Equal(t, []GeoPhoto{photos[0], photos[1]}, items[0].Members)
	assert.Equal(t, KindIndividual, items[1].Kind)
	assert.Equal(t, "c", items[1].Photo.ID)

	// Processing b first changes the grouping: b claims both neighbours.
	reordered := Cluster([]GeoPhoto{photos[1], photos[0], photos[2]}, radius)
	require.Len(t, reordered, 1)
	assert.Equal(t, 3, reordered[0].Count)
}

func TestClusterGroupsShrinkWithRadius(t *testing.T) {
	towns := []spatial.Point{
		{Lat: 45.8131, Lng: 15.9775}, // Zagreb
		{Lat: 43.5081, Lng: 16.4402}, // Split
		{Lat: 45.3271, Lng: 14.4422}, // Rijeka
		{Lat: 42.6507, Lng: 18.0944}, // Dubrovnik
		{Lat: 45.5550, Lng: 18.6955}, // Osijek
	}

	var photos []GeoPhoto

	for i, town := range towns {
		for k := range 4 {
			photos = append(photos, photo(
				fmt.Sprintf("town%d-%d", i, k),
				town.Lat+float64(k)*0.0001,
				town.Lng+float64(k)*0.0001,
			))
		}
	}

	counts := []int{}
	for _, radius := range []float64{0, 0.01, 0.1, 20} {
		counts = append(counts, len(Cluster(photos, radius)))
	}

	assert.Equal(t, []int{20, 5, 5, 1}, counts)
}

func TestClusterInvalidRadiusPanics(t *testing.T) {
	photos := []GeoPhoto{photo("a", 45, 15), photo("b", 45, 15)}

	assert.Panics(t, func() { Cluster(photos, -0.1) })
}

func allCandidates(n int) func(int) []int {
	all := make([]int, n)
	for i := range all {
		all[i] = i
	}

	return func(int) []int { return all }
}

func TestClusterGridMatchesScan(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	var photos []GeoPhoto
	photos = append(photos, randomPhotos(r, "hr", 500, 42.4, 46.5, 13.5, 19.4)...)
	photos = append(photos, randomPhotos(r, "east", 60, -5, 5, 179.7, 180)...)
	photos = append(photos, randomPhotos(r, "west", 60, -5, 5, -180, -179.7)...)
	photos = append(photos, randomPhotos(r, "north", 40, 88.5, 90, -180, 180)...)
	photos = append(photos, randomPhotos(r, "south", 40, -90, -88.5, -180, 180)...)
	photos = append(photos, photo("dup-1", 45.0, 16.0), photo("dup-2", 45.0, 16.0))

	require.GreaterOrEqual(t, len(photos), gridThreshold)

	for _, radius := range []float64{1e-7, 0.001, 0.02, 0.1, 0.5, 2, 9.5} {
		t.Run(fmt.Sprintf("r=%g", radius), func(t *testing.T) {
			got := Cluster(photos, radius)
			want := group(photos, radius, allCandidates(len(photos)))

			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("grid result differs from full scan (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGridNearIsSuperset(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	photos := randomPhotos(r, "g", 300, -89, 89, -180, 180)
	photos = append(photos, photo("seam-e", 10, 180), photo("seam-w", 10, -180))

	for _, radius := range []float64{0.5, 3} {
		g := newGrid(photos, radius)

		for i, p := range photos {
			near := make(map[int]bool)
			for _, j := range g.near(i) {
				near[j] = true
			}

			for j, q := range photos {
				if p.Position.AngularDistance(q.Position) <= radius && !near[j] {
					t.Fatalf("r=%g: photo %s within radius of %s but not returned by grid", radius, q.ID, p.ID)
				}
			}
		}
	}
}

func benchmarkCluster(b *testing.B, n int, radius float64) {
	r := rand.New(rand.NewSource(42))
	photos := randomPhotos(r, "b", n, 42.4, 46.5, 13.5, 19.4)

	b.ResetTimer()

	for range b.N {
		Cluster(photos, radius)
	}
}

func BenchmarkClusterSmall_LowZoom(b *testing.B)  { benchmarkCluster(b, 200, 1.0) }
func BenchmarkClusterSmall_HighZoom(b *testing.B) { benchmarkCluster(b, 200, 0.005) }
func BenchmarkClusterLarge_LowZoom(b *testing.B)  { benchmarkCluster(b, 5000, 1.0) }
func BenchmarkClusterLarge_HighZoom(b *testing.B) { benchmarkCluster(b, 5000, 0.005) }
