// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package gallery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stareslike/stareslike/clustering"
	"github.com/stareslike/stareslike/spatial"
)

const (
	maxIDLength          = 128
	maxTextLength        = 2000
	maxShortFieldLength  = 500
	earliestPhotographed = 1800
)

// Rough bounding box of Croatia with a small margin for islands and border towns.
const (
	croatiaMinLat = 42.2
	croatiaMaxLat = 46.7
	croatiaMinLng = 13.3
	croatiaMaxLng = 19.6
)

// validatePhoto rejects records the repository must not store.
// Coordinates are stored as given; clustering.Filter decides what is mappable.
func validatePhoto(p *clustering.PhotoRecord) error {
	if p == nil {
		return errors.New("photo cannot be nil")
	}

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("photo id cannot be empty")
	}

	if len(p.ID) > maxIDLength {
		return fmt.Errorf("photo id too long (max %d characters)", maxIDLength)
	}

	if len(p.Description) > maxTextLength {
		return fmt.Errorf("description too long (max %d characters)", maxTextLength)
	}

	for name, v := range map[string]string{
		"author":        p.Author,
		"location_name": p.LocationName,
		"address":       p.Address,
		"image_url":     p.ImageURL,
	} {
		if len(v) > maxShortFieldLength {
			return fmt.Errorf("%s too long (max %d characters)", name, maxShortFieldLength)
		}
	}

	if p.Year != 0 {
		if now := time.Now().Year(); p.Year < earliestPhotographed || p.Year > now {
			return fmt.Errorf("year must be between %d and %d (got %d)", earliestPhotographed, now, p.Year)
		}
	}

	if p.Likes < 0 || p.Views < 0 {
		return errors.New("likes and views cannot be negative")
	}

	return nil
}

// inCroatia reports whether a point falls inside the country's bounding box.
func inCroatia(p spatial.Point) bool {
	return p.Lat >= croatiaMinLat && p.Lat <= croatiaMaxLat &&
		p.Lng >= croatiaMinLng && p.Lng <= croatiaMaxLng
}
