// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stareslike/stareslike/config"
	"github.com/stareslike/stareslike/gallery"
)

const defaultSeedFile = "cmd/testdata/seed.json"

func newSeedCmd() *cobra.Command {
	var seedFile string

	c := &cobra.Command{
		Use:   "seed",
		Short: "Recreates the database with the photos from cmd/testdata/seed.json",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			return seedDatabase(cfg, seedFile)
		},
	}

	c.Flags().StringVar(&seedFile, "file", defaultSeedFile, "Seed file to load")

	return c
}

func init() {
	rootCmd.AddCommand(newSeedCmd())
}

func seedDatabase(cfg *config.Config, seedFile string) error {
	// remove old db if it exists
	_ = os.Remove(cfg.DBPath)
	_ = os.Remove(cfg.DBPath + ".wal")

	db, repo, err := openRepository(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	imported, err := gallery.ImportFromJSON(repo, seedFile, nil)
	if err != nil {
		return fmt.Errorf("seeding from %s: %w", seedFile, err)
	}

	fmt.Printf("Database seeded successfully with %d photos.\n", imported)

	return nil
}
