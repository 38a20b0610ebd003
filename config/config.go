// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads runtime settings from defaults, an optional YAML file and
// STARESLIKE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/stareslike/stareslike/clustering"
)

// EnvPrefix is prepended to every environment variable: STARESLIKE_ZOOM_MAX_RADIUS -> zoom.max_radius.
const EnvPrefix = "STARESLIKE"

// Config holds all application configuration.
type Config struct {
	DBPath         string               `mapstructure:"db_path"`
	Addr           string               `mapstructure:"addr"`
	Municipalities string               `mapstructure:"municipalities"`
	CacheSize      int                  `mapstructure:"cache_size"`
	H3Resolution   int                  `mapstructure:"h3_resolution"`
	TopLocations   int                  `mapstructure:"top_locations"`
	Zoom           clustering.ZoomModel `mapstructure:"zoom"`
}

// New returns a viper instance with defaults and environment lookup configured.
// Callers may bind command line flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	zoom := clustering.DefaultZoomModel()

	v.SetDefault("db_path", "stareslike.duckdb")
	v.SetDefault("addr", "localhost:8080")
	v.SetDefault("municipalities", "")
	v.SetDefault("cache_size", 64)
	v.SetDefault("h3_resolution", 5)
	v.SetDefault("top_locations", 10)
	v.SetDefault("zoom.min_zoom", zoom.MinZoom)
	v.SetDefault("zoom.max_zoom", zoom.MaxZoom)
	v.SetDefault("zoom.disable_at_zoom", zoom.DisableAtZoom)
	v.SetDefault("zoom.point_size", zoom.PointSize)
	v.SetDefault("zoom.tile_size", zoom.TileSize)
	v.SetDefault("zoom.max_radius", zoom.MaxRadius)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads configFile, or stareslike.yaml from . or ./config when configFile is
// empty, and returns the validated configuration.
// A missing stareslike.yaml is fine; a missing explicit configFile is not.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("stareslike")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, "db_path is required")
	}

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, "addr is required")
	}

	if c.CacheSize < 0 {
		errs = append(errs, fmt.Sprintf("cache_size must be >= 0, got %d", c.CacheSize))
	}

	if c.H3Resolution < 0 || c.H3Resolution > 15 {
		errs = append(errs, fmt.Sprintf("h3_resolution must be 0-15, got %d", c.H3Resolution))
	}

	if c.TopLocations <= 0 {
		errs = append(errs, fmt.Sprintf("top_locations must be positive, got %d", c.TopLocations))
	}

	if err := c.Zoom.Validate(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
