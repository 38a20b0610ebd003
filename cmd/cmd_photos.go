// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/stareslike/stareslike/gallery"
	"github.com/stareslike/stareslike/gallery/utils"
)

var photosCmd = &cobra.Command{
	Use:   "photos",
	Short: "Manage the photo database",
}

var photosImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Imports photos from a JSON seed file, updating existing ids",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		seed, err := gallery.ReadSeed(args[0])
		if err != nil {
			return err
		}

		db, repo, err := openRepository(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		var bar *progressbar.ProgressBar
		if isatty.IsTerminal(os.Stderr.Fd()) {
			bar = progressbar.NewOptions(len(seed.Photos),
				progressbar.OptionSetDescription("Importing photos"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}

		imported, err := gallery.ImportSeed(repo, seed, func() {
			if bar != nil {
				_ = bar.Add(1)
			}
		})
		if bar != nil {
			_ = bar.Finish()
		}

		if err != nil {
			return err
		}

		fmt.Printf("✅ Imported %s photos from %s\n", utils.FormatInt(int64(imported)), args[0])

		return nil
	},
}

var photosExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Exports every photo to a JSON seed file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, repo, err := openRepository(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		exported, err := gallery.ExportToJSON(repo, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("✅ Exported %s photos to %s\n", utils.FormatInt(int64(exported)), args[0])

		return nil
	},
}

func init() {
	rootCmd.AddCommand(photosCmd)
	photosCmd.AddCommand(photosImportCmd)
	photosCmd.AddCommand(photosExportCmd)
}
