// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package gallery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stareslike/stareslike/clustering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportRoundTrip(t *testing.T) {
	_, source := setupTestDB(t)

	require.NoError(t, source.BulkInsertPhotos([]*clustering.PhotoRecord{
		geoRecord("du-001", 42.6403, 18.1083),
		{ID: "undated", DisplayFields: clustering.DisplayFields{LocationName: "Split"}},
	}))

	path := filepath.Join(t.TempDir(), "seed.json")

	exported, err := ExportToJSON(source, path)
	require.NoError(t, err)
	assert.Equal(t, 2, exported)

	seed, err := ReadSeed(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0", seed.Version)
	assert.Len(t, seed.Photos, 2)

	_, target := setupTestDB(t)

	calls := 0
	imported, err := ImportFromJSON(target, path, func() { calls++ })
	require.NoError(t, err)
	assert.Equal(t, 2, imported)
	assert.Equal(t, 2, calls)

	want, err := source.ListPhotos()
	require.NoError(t, err)
	got, err := target.ListPhotos()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestImportFromJSONErrors(t *testing.T) {
	_, repo := setupTestDB(t)
	dir := t.TempDir()

	_, err := ImportFromJSON(repo, filepath.Join(dir, "missing.json"), nil)
	assert.ErrorContains(t, err, "reading file")

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{"), 0o600))

	_, err = ImportFromJSON(repo, broken, nil)
	assert.ErrorContains(t, err, "parsing JSON")

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"photos":[{"id":"a"},{"id":""}]}`), 0o600))

	imported, err := ImportFromJSON(repo, invalid, nil)
	assert.ErrorContains(t, err, "photo id cannot be empty")
	assert.Equal(t, 1, imported)

	nullPhoto := filepath.Join(dir, "null.json")
	require.NoError(t, os.WriteFile(nullPhoto, []byte(`{"version":"1.0","photos":[{"id":"a"},null]}`), 0o600))

	_, err = ReadSeed(nullPhoto)
	assert.ErrorContains(t, err, "photo 1 is null")

	_, err = ImportFromJSON(repo, nullPhoto, nil)
	assert.ErrorContains(t, err, "photo 1 is null")

	imported, err = ImportSeed(repo, &SeedData{Photos: []*clustering.PhotoRecord{
		geoRecord("zd-001", 44.1194, 15.2314),
		nil,
	}}, nil)
	assert.ErrorContains(t, err, "photo is null")
	assert.Equal(t, 1, imported)
}

func TestSeedIfEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"version": "1.0",
		"photos": [
			{"id": "ri-001", "location_name": "Rijeka", "coordinates": {"latitude": 45.3271, "longitude": 14.4422}},
			{"id": "ri-002", "location_name": "Rijeka"}
		]
	}`), 0o600))

	_, repo := setupTestDB(t)

	seeded, count, err := SeedIfEmpty(repo, filepath.Join(dir, "none.json"))
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Zero(t, count)

	seeded, count, err = SeedIfEmpty(repo, path)
	require.NoError(t, err)
	assert.True(t, seeded)
	assert.Equal(t, 2, count)

	seeded, count, err = SeedIfEmpty(repo, path)
	require.NoError(t, err)
	assert.False(t, seeded)
	assert.Equal(t, 2, count)
}
