// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package gallery

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stareslike/stareslike/clustering"
)

// ErrPhotoNotFound is returned when no photo has the requested id.
var ErrPhotoNotFound = errors.New("photo not found")

// PhotoRepository handles persistence of photographs.
type PhotoRepository interface {
	// CreateSchema creates the photos table
	CreateSchema() error

	// SavePhoto inserts a photo or updates the one with the same id
	SavePhoto(photo *clustering.PhotoRecord) error

	// BulkInsertPhotos inserts a slice of photos in a single transaction
	BulkInsertPhotos(photos []*clustering.PhotoRecord) error

	// GetPhoto returns the photo with the given id or ErrPhotoNotFound
	GetPhoto(id string) (*clustering.PhotoRecord, error)

	// ListPhotos returns every photo sorted by id
	ListPhotos() ([]clustering.PhotoRecord, error)

	// CountPhotos returns the total number of photos
	CountPhotos() (int, error)

	// DB returns the underlying database connection
	DB() *sql.DB
}

type sqlPhotoRepository struct {
	db *sql.DB
}

// NewPhotoRepository creates a new photo repository.
func NewPhotoRepository(db *sql.DB) PhotoRepository {
	return &sqlPhotoRepository{db: db}
}

// DB returns the underlying database connection for advanced queries.
func (r *sqlPhotoRepository) DB() *sql.DB {
	return r.db
}

func (r *sqlPhotoRepository) CreateSchema() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS photos (
			id VARCHAR PRIMARY KEY,
			description VARCHAR NOT NULL DEFAULT '',
			year INTEGER,
			author VARCHAR NOT NULL DEFAULT '',
			location_name VARCHAR NOT NULL DEFAULT '',
			address VARCHAR NOT NULL DEFAULT '',
			image_url VARCHAR NOT NULL DEFAULT '',
			likes INTEGER NOT NULL DEFAULT 0,
			views INTEGER NOT NULL DEFAULT 0,
			latitude DOUBLE,
			longitude DOUBLE,
			coordinates_address VARCHAR,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)

	return err
}

// columns flattens a record into the values bound by insert and update statements.
func columns(p *clustering.PhotoRecord) (year, lat, lng, coordsAddress any) {
	if p.Year != 0 {
		year = p.Year
	}

	if c := p.Coordinates; c != nil {
		if c.Latitude != nil {
			lat = *c.Latitude
		}

		if c.Longitude != nil {
			lng = *c.Longitude
		}

		coordsAddress = c.Address
	}

	return year, lat, lng, coordsAddress
}

func (r *sqlPhotoRepository) SavePhoto(photo *clustering.PhotoRecord) error {
	if err := validatePhoto(photo); err != nil {
		return err
	}

	_, err := r.GetPhoto(photo.ID)
	if err != nil && !errors.Is(err, ErrPhotoNotFound) {
		return err
	}

	if errors.Is(err, ErrPhotoNotFound) {
		return r.BulkInsertPhotos([]*clustering.PhotoRecord{photo})
	}

	year, lat, lng, coordsAddress := columns(photo)

	_, err = r.db.Exec(`
		UPDATE photos
		SET description = ?, year = ?, author = ?, location_name = ?, address = ?,
		    image_url = ?, likes = ?, views = ?,
		    latitude = ?, longitude = ?, coordinates_address = ?,
		    updated_at = ?
		WHERE id = ?
	`,
		photo.Description,
		year,
		photo.Author,
		photo.LocationName,
		photo.Address,
		photo.ImageURL,
		photo.Likes,
		photo.Views,
		lat,
		lng,
		coordsAddress,
		time.Now(),
		photo.ID,
	)
	if err != nil {
		return fmt.Errorf("updating photo %s: %w", photo.ID, err)
	}

	return nil
}

func (r *sqlPhotoRepository) BulkInsertPhotos(photos []*clustering.PhotoRecord) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO photos(
			id,
			description,
			year,
			author,
			location_name,
			address,
			image_url,
			likes,
			views,
			latitude,
			longitude,
			coordinates_address,
			created_at,
			updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		if rErr := tx.Rollback(); rErr != nil {
			err = rErr
		}

		return err
	}
	defer stmt.Close()

	now := time.Now()

	for _, p := range photos {
		if err := validatePhoto(p); err != nil {
			if rErr := tx.Rollback(); rErr != nil {
				err = rErr
			}

			return err
		}

		year, lat, lng, coordsAddress := columns(p)

		if _, err := stmt.Exec(
			p.ID,
			p.Description,
			year,
			p.Author,
			p.LocationName,
			p.Address,
			p.ImageURL,
			p.Likes,
			p.Views,
			lat,
			lng,
			coordsAddress,
			now,
			now,
		); err != nil {
			if rErr := tx.Rollback(); rErr != nil {
				err = rErr
			}

			return fmt.Errorf("inserting photo %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

const baseSelect = `
	SELECT id, description, year, author, location_name, address,
	       image_url, likes, views, latitude, longitude, coordinates_address
	FROM photos
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPhoto(row rowScanner) (*clustering.PhotoRecord, error) {
	p := &clustering.PhotoRecord{}

	var (
		year          sql.NullInt64
		lat, lng      sql.NullFloat64
		coordsAddress sql.NullString
	)

	err := row.Scan(
		&p.ID, &p.Description, &year, &p.Author, &p.LocationName, &p.Address,
		&p.ImageURL, &p.Likes, &p.Views, &lat, &lng, &coordsAddress,
	)
	if err != nil {
		return nil, err
	}

	if year.Valid {
		p.Year = int(year.Int64)
	}

	if lat.Valid || lng.Valid || coordsAddress.Valid {
		p.Coordinates = &clustering.Coordinates{Address: coordsAddress.String}

		if lat.Valid {
			p.Coordinates.Latitude = &lat.Float64
		}

		if lng.Valid {
			p.Coordinates.Longitude = &lng.Float64
		}
	}

	return p, nil
}

func (r *sqlPhotoRepository) GetPhoto(id string) (*clustering.PhotoRecord, error) {
	p, err := scanPhoto(r.db.QueryRow(baseSelect+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPhotoNotFound, id)
	}

	return p, err
}

func (r *sqlPhotoRepository) ListPhotos() ([]clustering.PhotoRecord, error) {
	rows, err := r.db.Query(baseSelect + ` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []clustering.PhotoRecord

	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}

		photos = append(photos, *p)
	}

	return photos, rows.Err()
}

func (r *sqlPhotoRepository) CountPhotos() (int, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM photos",
	).Scan(&count)

	return count, err
}
