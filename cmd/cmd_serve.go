// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/stareslike/stareslike/gallery"
)

var serveSeedFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the photo map HTTP API",
	Long: `Serves the clustering API used by the web map:

  GET /api/clusters?zoom=&decade=&author=&q=
  GET /api/summary?zoom=
  GET /api/radius
  GET /api/photos/:id
`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, repo, err := openRepository(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if serveSeedFile != "" {
			seeded, count, err := gallery.SeedIfEmpty(repo, serveSeedFile)
			if err != nil {
				return fmt.Errorf("seeding database: %w", err)
			}

			if seeded {
				log.Printf("seeded empty database with %d photos from %s", count, serveSeedFile)
			}
		}

		municipalities, err := loadMunicipalities(cfg)
		if err != nil {
			return err
		}

		view, err := gallery.NewMapView(cfg.Zoom, cfg.CacheSize)
		if err != nil {
			return err
		}

		server := gallery.NewServer(repo, municipalities, view, gallery.ServerOptions{
			H3Resolution: cfg.H3Resolution,
			TopLocations: cfg.TopLocations,
		})

		return server.Run(cfg.Addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveSeedFile, "seed", "", "Seed file loaded when the database is empty")
}
