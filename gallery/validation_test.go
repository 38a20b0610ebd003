// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package gallery

import (
	"strings"
	"testing"
	"time"

	"github.com/stareslike/stareslike/clustering"
	"github.com/stareslike/stareslike/spatial"
	"github.com/stretchr/testify/assert"
)

func TestValidatePhoto(t *testing.T) {
	tests := []struct {
		name    string
		photo   *clustering.PhotoRecord
		wantErr string
	}{
		{name: "valid", photo: geoRecord("ok", 45.0, 15.0)},
		{name: "nil", photo: nil, wantErr: "cannot be nil"},
		{name: "blank id", photo: &clustering.PhotoRecord{ID: " "}, wantErr: "photo id cannot be empty"},
		{name: "long id", photo: &clustering.PhotoRecord{ID: strings.Repeat("x", 129)}, wantErr: "photo id too long"},
		{
			name: "long description",
			photo: &clustering.PhotoRecord{ID: "a", DisplayFields: clustering.DisplayFields{
				Description: strings.Repeat("x", 2001),
			}},
			wantErr: "description too long",
		},
		{
			name: "long author",
			photo: &clustering.PhotoRecord{ID: "a", DisplayFields: clustering.DisplayFields{
				Author: strings.Repeat("x", 501),
			}},
			wantErr: "author too long",
		},
		{
			name:    "year before photography",
			photo:   &clustering.PhotoRecord{ID: "a", DisplayFields: clustering.DisplayFields{Year: 1799}},
			wantErr: "year must be between",
		},
		{
			name:    "year in the future",
			photo:   &clustering.PhotoRecord{ID: "a", DisplayFields: clustering.DisplayFields{Year: time.Now().Year() + 1}},
			wantErr: "year must be between",
		},
		{
			name:    "negative likes",
			photo:   &clustering.PhotoRecord{ID: "a", DisplayFields: clustering.DisplayFields{Likes: -1}},
			wantErr: "cannot be negative",
		},
		{
			name:  "out of range coordinates are stored",
			photo: geoRecord("far", 95.0, 200.0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePhoto(tt.photo)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestInCroatia(t *testing.T) {
	assert.True(t, inCroatia(spatial.Point{Lat: 45.8150, Lng: 15.9819}))  // Zagreb
	assert.True(t, inCroatia(spatial.Point{Lat: 42.6507, Lng: 18.0944}))  // Dubrovnik
	assert.False(t, inCroatia(spatial.Point{Lat: 48.2082, Lng: 16.3738})) // Vienna
	assert.False(t, inCroatia(spatial.Point{Lat: 41.9028, Lng: 12.4964})) // Rome
}
