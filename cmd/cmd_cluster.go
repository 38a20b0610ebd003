// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stareslike/stareslike/clustering"
	"github.com/stareslike/stareslike/config"
	"github.com/stareslike/stareslike/gallery"
)

var clusterOptions struct {
	zoom   int
	input  string
	json   bool
	decade int
	author string
	text   string
}

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Prints the map markers for a zoom level",
	Long: `Groups the photos of the database, or of a seed file given with --input,
into the markers the web map shows at --zoom.

$ stareslike cluster --zoom 8 --decade 1960
`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		records, err := loadRecords(cfg, clusterOptions.input)
		if err != nil {
			return err
		}

		municipalities, err := loadMunicipalities(cfg)
		if err != nil {
			return err
		}

		q := gallery.Query{
			Decade: clusterOptions.decade,
			Author: clusterOptions.author,
			Text:   clusterOptions.text,
		}
		if err := q.Validate(); err != nil {
			return err
		}

		records = q.Apply(municipalities.Resolve(records))

		view, err := gallery.NewMapView(cfg.Zoom, 0)
		if err != nil {
			return err
		}

		markers := view.Markers(clustering.Filter(records), clusterOptions.zoom)

		if clusterOptions.json {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")

			return enc.Encode(markers)
		}

		printMarkers(markers)

		return nil
	},
}

// loadRecords reads photos from a seed file when input is set, or from the database.
func loadRecords(cfg *config.Config, input string) ([]clustering.PhotoRecord, error) {
	if input != "" {
		seed, err := gallery.ReadSeed(input)
		if err != nil {
			return nil, err
		}

		records := make([]clustering.PhotoRecord, 0, len(seed.Photos))
		for _, p := range seed.Photos {
			records = append(records, *p)
		}

		return records, nil
	}

	db, repo, err := openRepository(cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return repo.ListPhotos()
}

func markerLabel(item clustering.Item) string {
	photos := item.Photos()
	if len(photos) == 0 {
		return ""
	}

	d := photos[0].Display

	label := d.LocationName
	if label == "" {
		label = d.Description
	}

	if r := []rune(label); len(r) > 40 {
		label = string(r[:39]) + "…"
	}

	return label
}

func printMarkers(m gallery.Markers) {
	a, b, c, d := strings.Repeat("─", 10), strings.Repeat("─", 5), strings.Repeat("─", 21), strings.Repeat("─", 40)

	fmt.Printf("Zoom %d, radius %.6f°, %d markers\n", m.Zoom, m.Radius, m.Count)
	fmt.Printf("╭─%-10s─┬─%5s─┬─%-21s─┬─%-40s─╮\n", a, b, c, d)
	fmt.Printf("│ %-10s │ %5s │ %-21s │ %-40s │\n", "Type", "Count", "Position", "Label")
	fmt.Printf("├─%-10s─┼─%5s─┼─%-21s─┼─%-40s─┤\n", a, b, c, d)

	for _, item := range m.Items {
		pos := fmt.Sprintf("%.5f, %.5f", item.Position.Lat, item.Position.Lng)
		fmt.Printf("│ %-10s │ %5d │ %-21s │ %-40s │\n", item.Kind, item.Count, pos, markerLabel(item))
	}

	fmt.Printf("╰─%-10s─┴─%5s─┴─%-21s─┴─%-40s─╯\n", a, b, c, d)
}

func init() {
	rootCmd.AddCommand(clusterCmd)
	clusterCmd.Flags().IntVarP(&clusterOptions.zoom, "zoom", "z", 10, "Map zoom level, clamped to the configured range")
	clusterCmd.Flags().StringVar(&clusterOptions.input, "input", "", "Read photos from this seed file instead of the database")
	clusterCmd.Flags().BoolVar(&clusterOptions.json, "json", false, "Print markers as JSON")
	clusterCmd.Flags().IntVar(&clusterOptions.decade, "decade", 0, "Only photos from this decade, e.g. 1960")
	clusterCmd.Flags().StringVar(&clusterOptions.author, "author", "", "Only photos by this author")
	clusterCmd.Flags().StringVarP(&clusterOptions.text, "query", "q", "", "Only photos whose description, place or author contains this text")
}
