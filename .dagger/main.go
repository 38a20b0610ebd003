// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"dagger/stareslike/internal/dagger"
)

type Stareslike struct{}

// Runs the unit tests of every package
func (c *Stareslike) Test(
	ctx context.Context,
	// +defaultPath="/"
	// +ignore=["build", "*.duckdb"]
	src *dagger.Directory,
) (string, error) {
	return c.BuildCliBase(ctx, src, "development").
		WithExec([]string{"go", "test", "-count=1", "./..."}).
		Stdout(ctx)
}

// Serves the API on port 8080 seeded with cmd/testdata/seed.json
//
// dagger call serve up --ports 8080:8080
func (c *Stareslike) Serve(
	ctx context.Context,
	// +defaultPath="/"
	// +ignore=["build", "*.duckdb"]
	src *dagger.Directory,
) *dagger.Service {
	return c.BuildCli(ctx, src, "development").
		WithEnvVariable("STARESLIKE_ADDR", "0.0.0.0:8080").
		WithEnvVariable("STARESLIKE_DB_PATH", "/tmp/stareslike.duckdb").
		WithEnvVariable("STARESLIKE_MUNICIPALITIES", "/app/municipalities.json").
		WithExposedPort(8080).
		AsService(dagger.ContainerAsServiceOpts{
			Args: []string{"/app/stareslike", "serve", "--seed", "/app/seed.json"},
		})
}
