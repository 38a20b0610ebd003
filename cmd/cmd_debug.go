// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/stareslike/stareslike/gallery"
	"github.com/stareslike/stareslike/gallery/utils"
	"github.com/stareslike/stareslike/spatial"
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Dev tools",
}

var debugRadiusCmd = &cobra.Command{
	Use:   "radius",
	Short: "Prints the clustering radius of every zoom level",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		a, b, c := strings.Repeat("─", 4), strings.Repeat("─", 12), strings.Repeat("─", 12)
		fmt.Printf("╭─%4s─┬─%12s─┬─%12s─╮\n", a, b, c)
		fmt.Printf("│ %4s │ %12s │ %12s │\n", "Zoom", "Radius (°)", "Radius (m)")
		fmt.Printf("├─%4s─┼─%12s─┼─%12s─┤\n", a, b, c)

		for _, row := range gallery.RadiusTable(cfg.Zoom) {
			meters := utils.FormatInt(int64(math.Round(row.Meters)))
			fmt.Printf("│ %4d │ %12.6f │ %12s │\n", row.Zoom, row.Radius, meters)
		}

		fmt.Printf("╰─%4s─┴─%12s─┴─%12s─╯\n", a, b, c)

		return nil
	},
}

func parsePoint(lat, lng string) (spatial.Point, error) {
	var p spatial.Point

	var err error

	if p.Lat, err = strconv.ParseFloat(lat, 64); err != nil {
		return p, fmt.Errorf("invalid latitude %q", lat)
	}

	if p.Lng, err = strconv.ParseFloat(lng, 64); err != nil {
		return p, fmt.Errorf("invalid longitude %q", lng)
	}

	if !p.Valid() {
		return p, fmt.Errorf("coordinates out of range: %s", p)
	}

	return p, nil
}

var debugDistanceCmd = &cobra.Command{
	Use:   "distance",
	Short: "Measures the distance between pairs of points",
	Long: `Reads "lat1 lng1 lat2 lng2" per line and prints the great-circle distance
in degrees of arc and in meters.

$ echo 45.8150 15.9819 43.5081 16.4402 | stareslike debug distance
45.8150 15.9819 43.5081 16.4402	2.331516°	259,254 m
`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		input := os.Stdin
		if isatty.IsTerminal(input.Fd()) {
			fmt.Fprintln(os.Stderr, "Enter point pairs as: lat1 lng1 lat2 lng2, one per line…")
		}

		scanner := bufio.NewScanner(input)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
			if len(fields) != 4 {
				fmt.Printf("%s\t%q\n", line, "expected 4 numbers")

				continue
			}

			a, err := parsePoint(fields[0], fields[1])
			if err != nil {
				fmt.Printf("%s\t%q\n", line, err)

				continue
			}

			b, err := parsePoint(fields[2], fields[3])
			if err != nil {
				fmt.Printf("%s\t%q\n", line, err)

				continue
			}

			meters := utils.FormatInt(int64(math.Round(a.HaversineDistance(&b))))
			fmt.Printf("%s\t%.6f°\t%s m\n", line, a.AngularDistance(b), meters)
		}

		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugRadiusCmd)
	debugCmd.AddCommand(debugDistanceCmd)
}
