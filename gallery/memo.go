// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package gallery

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/stareslike/stareslike/clustering"
)

// Fingerprint hashes a photo set in order. Any change to ids, positions or display
// payloads yields a different value with overwhelming probability.
func Fingerprint(photos []clustering.GeoPhoto) uint64 {
	h := xxhash.New()

	var buf [8]byte

	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	writeString := func(s string) {
		writeUint(uint64(len(s)))
		_, _ = h.WriteString(s)
	}

	writeUint(uint64(len(photos)))

	for i := range photos {
		p := &photos[i]
		writeString(p.ID)
		writeUint(math.Float64bits(p.Position.Lat))
		writeUint(math.Float64bits(p.Position.Lng))

		d := &p.Display
		writeString(d.Description)
		writeUint(uint64(int64(d.Year)))
		writeString(d.Author)
		writeString(d.LocationName)
		writeString(d.Address)
		writeString(d.ImageURL)
		writeUint(uint64(int64(d.Likes)))
		writeUint(uint64(int64(d.Views)))
	}

	return h.Sum64()
}

type cacheKey struct {
	fingerprint uint64
	zoom        int
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Size   int    `json:"size"`
}

// ClusterCache is a bounded FIFO cache of clustering results.
// A capacity of zero disables caching.
type ClusterCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[cacheKey][]clustering.Item
	order    []cacheKey
	hits     uint64
	misses   uint64
}

// NewClusterCache creates a cache holding at most capacity results.
func NewClusterCache(capacity int) *ClusterCache {
	return &ClusterCache{
		capacity: max(capacity, 0),
		entries:  make(map[cacheKey][]clustering.Item),
	}
}

func (c *ClusterCache) get(k cacheKey) ([]clustering.Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, ok := c.entries[k]
	if ok {
		c.hits++
	} else {
		c.misses++
	}

	return items, ok
}

func (c *ClusterCache) put(k cacheKey, items []clustering.Item) {
	if c.capacity == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[k]; ok {
		return
	}

	for len(c.order) >= c.capacity {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
	}

	c.entries[k] = items
	c.order = append(c.order, k)
}

// Stats returns a snapshot of the counters.
func (c *ClusterCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStats{Hits: c.hits, Misses: c.misses, Size: len(c.entries)}
}

// Markers is the clustering result for one zoom level.
type Markers struct {
	Zoom   int               `json:"zoom"`
	Radius float64           `json:"radius"`
	Count  int               `json:"count"`
	Items  []clustering.Item `json:"items"`
}

// MapView turns a photo set and a zoom level into markers, memoizing results.
type MapView struct {
	model clustering.ZoomModel
	cache *ClusterCache
}

// NewMapView validates model and creates a view with a cache of cacheSize entries.
func NewMapView(model clustering.ZoomModel, cacheSize int) (*MapView, error) {
	if err := model.Validate(); err != nil {
		return nil, err
	}

	return &MapView{model: model, cache: NewClusterCache(cacheSize)}, nil
}

// Model returns the zoom model of the view.
func (v *MapView) Model() clustering.ZoomModel {
	return v.model
}

// Markers clusters photos for zoom, which is clamped to the model range first.
// The returned items may be shared with other callers and must not be modified.
func (v *MapView) Markers(photos []clustering.GeoPhoto, zoom int) Markers {
	zoom = v.model.Clamp(zoom)
	radius := v.model.RadiusFor(zoom)
	key := cacheKey{fingerprint: Fingerprint(photos), zoom: zoom}

	items, ok := v.cache.get(key)
	if !ok {
		items = clustering.Cluster(photos, radius)
		v.cache.put(key, items)
	}

	return Markers{Zoom: zoom, Radius: radius, Count: len(items), Items: items}
}

// CacheStats returns the view's cache counters.
func (v *MapView) CacheStats() CacheStats {
	return v.cache.Stats()
}
