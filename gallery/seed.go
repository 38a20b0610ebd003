// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package gallery

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/stareslike/stareslike/clustering"
)

// SeedData represents the JSON seed file format.
type SeedData struct {
	Version     string                    `json:"version"`
	LastUpdated time.Time                 `json:"last_updated"`
	Photos      []*clustering.PhotoRecord `json:"photos"`
}

// ReadSeed parses a seed file.
func ReadSeed(filepath string) (*SeedData, error) {
	data, err := os.ReadFile(filepath) // #nosec G304 - filepath is provided by admin
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var seed SeedData
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	for i, photo := range seed.Photos {
		if photo == nil {
			return nil, fmt.Errorf("parsing JSON: photo %d is null", i)
		}
	}

	return &seed, nil
}

// ExportToJSON exports all photos to a JSON file.
func ExportToJSON(repo PhotoRepository, filepath string) (int, error) {
	photos, err := repo.ListPhotos()
	if err != nil {
		return 0, fmt.Errorf("listing photos: %w", err)
	}

	seed := &SeedData{
		Version:     "1.0",
		LastUpdated: time.Now(),
		Photos:      make([]*clustering.PhotoRecord, len(photos)),
	}
	for i := range photos {
		seed.Photos[i] = &photos[i]
	}

	data, err := json.MarshalIndent(seed, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("marshaling JSON: %w", err)
	}

	err = os.WriteFile(filepath, data, 0o600)
	if err != nil {
		return 0, fmt.Errorf("writing file: %w", err)
	}

	return len(photos), nil
}

// ImportFromJSON imports photos from a JSON file, inserting new ids and updating known ones.
func ImportFromJSON(repo PhotoRepository, filepath string, progress func()) (int, error) {
	seed, err := ReadSeed(filepath)
	if err != nil {
		return 0, err
	}

	return ImportSeed(repo, seed, progress)
}

// ImportSeed saves every photo of seed. progress, when not nil, is called after each one.
func ImportSeed(repo PhotoRepository, seed *SeedData, progress func()) (int, error) {
	imported := 0

	for i, photo := range seed.Photos {
		if photo == nil {
			return imported, fmt.Errorf("saving photo %d: photo is null", i)
		}

		if pos, ok := photo.Coordinates.Point(); ok && !inCroatia(pos) {
			log.Printf("photo %s is located outside Croatia: %s", photo.ID, pos)
		}

		if err := repo.SavePhoto(photo); err != nil {
			return imported, fmt.Errorf("saving photo %s: %w", photo.ID, err)
		}

		imported++

		if progress != nil {
			progress()
		}
	}

	return imported, nil
}

// SeedIfEmpty seeds the database from a JSON file if no photos exist.
func SeedIfEmpty(repo PhotoRepository, filepath string) (bool, int, error) {
	count, err := repo.CountPhotos()
	if err != nil {
		return false, 0, fmt.Errorf("counting photos: %w", err)
	}

	if count > 0 {
		return false, count, nil
	}

	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return false, 0, nil
	}

	imported, err := ImportFromJSON(repo, filepath, nil)
	if err != nil {
		return false, 0, err
	}

	return true, imported, nil
}
