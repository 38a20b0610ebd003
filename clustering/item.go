// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package clustering

import (
	"fmt"
	"strconv"

	"github.com/stareslike/stareslike/spatial"
)

// Kind tags the variant held by an Item.
type Kind int

const (
	// KindIndividual is a single photo rendered as its own marker.
	KindIndividual Kind = iota
	// KindCluster is an aggregate marker for two or more photos.
	KindCluster
)

func (k Kind) String() string {
	switch k {
	case KindIndividual:
		return "individual"
	case KindCluster:
		return "cluster"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// MarshalText encodes the kind as "individual" or "cluster".
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case KindIndividual, KindCluster:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("clustering: unknown kind %d", int(k))
	}
}

// UnmarshalText decodes "individual" or "cluster".
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "individual":
		*k = KindIndividual
	case "cluster":
		*k = KindCluster
	default:
		return fmt.Errorf("clustering: unknown kind %q", text)
	}

	return nil
}

// Item is one marker produced by Cluster.
//
// For KindIndividual, Photo is set, Position is the photo position and Count is 1.
// For KindCluster, Members holds two or more photos in input order, Count equals
// len(Members) and Position is their centroid, which need not coincide with any member.
type Item struct {
	Kind     Kind          `json:"type"`
	Position spatial.Point `json:"position"`
	Photo    *GeoPhoto     `json:"photo,omitempty"`
	Members  []GeoPhoto    `json:"members,omitempty"`
	Count    int           `json:"count"`
}

// NewIndividual wraps a single photo.
func NewIndividual(photo GeoPhoto) Item {
	return Item{
		Kind:     KindIndividual,
		Position: photo.Position,
		Photo:    &photo,
		Count:    1,
	}
}

func newCluster(members []GeoPhoto) Item {
	points := make([]spatial.Point, len(members))
	for i, m := range members {
		points[i] = m.Position
	}

	return Item{
		Kind:     KindCluster,
		Position: spatial.Centroid(points),
		Members:  members,
		Count:    len(members),
	}
}

// IsCluster reports whether the item aggregates several photos.
func (it Item) IsCluster() bool {
	return it.Kind == KindCluster
}

// Photos returns the photos represented by the item.
func (it Item) Photos() []GeoPhoto {
	if it.Kind == KindCluster {
		return it.Members
	}

	if it.Photo == nil {
		return nil
	}

	return []GeoPhoto{*it.Photo}
}

// Key returns a marker key that stays the same across passes with identical input.
func (it Item) Key() string {
	if it.Kind == KindCluster {
		if len(it.Members) == 0 {
			return "cluster:"
		}

		return fmt.Sprintf("cluster:%s+%d", it.Members[0].ID, it.Count)
	}

	if it.Photo == nil {
		return "photo:"
	}

	return "photo:" + it.Photo.ID
}
