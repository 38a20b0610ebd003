// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package gallery

import (
	"fmt"
	"strings"

	"github.com/stareslike/stareslike/clustering"
	"github.com/stareslike/stareslike/gallery/utils"
)

// Query narrows the photo set shown on the map. Zero fields match everything.
type Query struct {
	Decade int    `json:"decade,omitempty"` // e.g. 1960 keeps 1960-1969
	Author string `json:"author,omitempty"`
	Text   string `json:"q,omitempty"`
}

// IsZero reports whether the query matches every photo.
func (q Query) IsZero() bool {
	return q.Decade == 0 && strings.TrimSpace(q.Author) == "" && strings.TrimSpace(q.Text) == ""
}

// Validate rejects decades that are not a multiple of ten.
func (q Query) Validate() error {
	if q.Decade != 0 && (q.Decade < 0 || q.Decade%10 != 0) {
		return fmt.Errorf("decade must be a positive multiple of 10 (got %d)", q.Decade)
	}

	return nil
}

// Decade returns the decade a year belongs to, or 0 for unknown years.
func Decade(year int) int {
	if year <= 0 {
		return 0
	}

	return year - year%10
}

// Match reports whether a record satisfies every set field.
func (q Query) Match(r *clustering.PhotoRecord) bool {
	if q.Decade != 0 && Decade(r.Year) != q.Decade {
		return false
	}

	if author := strings.TrimSpace(q.Author); author != "" &&
		utils.LowerASCIIFolding(r.Author) != utils.LowerASCIIFolding(author) {
		return false
	}

	if text := strings.TrimSpace(q.Text); text != "" &&
		!utils.ContainsFolded(r.Description, text) &&
		!utils.ContainsFolded(r.LocationName, text) &&
		!utils.ContainsFolded(r.Author, text) {
		return false
	}

	return true
}

// Apply returns the matching records in input order.
func (q Query) Apply(records []clustering.PhotoRecord) []clustering.PhotoRecord {
	if q.IsZero() {
		return records
	}

	out := make([]clustering.PhotoRecord, 0, len(records))

	for i := range records {
		if q.Match(&records[i]) {
			out = append(out, records[i])
		}
	}

	return out
}
