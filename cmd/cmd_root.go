// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/spf13/cobra"
	"github.com/stareslike/stareslike/config"
	"github.com/stareslike/stareslike/gallery"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

var rootCmd = &cobra.Command{
	Use:   "stareslike",
	Short: "map of historical photographs of Croatia",
	Long: `
stareslike stores old photographs of Croatian towns and groups them into map
markers that follow the zoom level of the web map.
`,
	SilenceUsage: true,
}

var (
	Version    = "dev"
	configFile string
	settings   = config.New()
)

func init() {
	rootCmd.PersistentFlags().StringVar(
		&configFile,
		"config",
		"",
		"Config file (default: stareslike.yaml in . or ./config)",
	)
	rootCmd.PersistentFlags().String(
		"db-path",
		"",
		"DuckDB database file (env STARESLIKE_DB_PATH)",
	)

	if err := settings.BindPFlag("db_path", rootCmd.PersistentFlags().Lookup("db-path")); err != nil {
		log.Fatal(err)
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(settings, configFile)
}

// openRepository opens the photo database, creating the file and schema when missing.
func openRepository(cfg *config.Config) (*sql.DB, gallery.PhotoRepository, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	repo := gallery.NewPhotoRepository(db)
	if err := repo.CreateSchema(); err != nil {
		db.Close()

		return nil, nil, fmt.Errorf("creating schema: %w", err)
	}

	return db, repo, nil
}

// loadMunicipalities returns nil when no municipality file is configured.
func loadMunicipalities(cfg *config.Config) (*gallery.MunicipalityIndex, error) {
	if cfg.Municipalities == "" {
		return nil, nil
	}

	idx, err := gallery.LoadMunicipalities(cfg.Municipalities)
	if err != nil {
		return nil, err
	}

	log.Printf("loaded %d municipalities from %s", idx.Len(), cfg.Municipalities)

	return idx, nil
}

func Execute(version string) {
	Version = version
	rootCmd.Version = version

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
