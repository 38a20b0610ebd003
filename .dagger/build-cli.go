// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

// Builds the stareslike binary
package main

import (
	"context"
	"dagger/stareslike/internal/dagger"
)

const (
	cliUser        = "appuser"
	distrolessUser = "65532" // nonroot in the distroless images
)

// Container with the module sources and a compiled build/stareslike
func (c *Stareslike) BuildCliBase(
	ctx context.Context,
	// +defaultPath="/"
	// +ignore=["build", "*.duckdb"]
	src *dagger.Directory,
	// +optional
	// +default="development"
	version string,
) *dagger.Container {
	const cacheDir = "/home/" + cliUser + "/.cache"

	return dag.Container().
		// duckdb does not build against musl
		From("golang:1.25.5-bookworm").
		WithExec([]string{"useradd", "-m", "-u", "1000", cliUser}).
		WithWorkdir("/src").
		WithMountedCache(
			"/go/pkg",
			dag.CacheVolume("stareslike-go-pkg"),
			dagger.ContainerWithMountedCacheOpts{Owner: cliUser},
		).
		WithEnvVariable("GOCACHE", cacheDir+"/go-build").
		WithMountedCache(
			cacheDir,
			dag.CacheVolume("stareslike-go-cache"),
			dagger.ContainerWithMountedCacheOpts{Owner: cliUser},
		).
		WithDirectory("/src", src, dagger.ContainerWithDirectoryOpts{Owner: cliUser}).
		WithUser(cliUser).
		WithExec([]string{"go", "mod", "tidy"}).
		WithExec([]string{
			"go", "build",
			"-ldflags", "-X main.Version=" + version,
			"-o", "build/stareslike",
			".",
		})
}

// Runs go vet, golangci-lint and the license header check
func (c *Stareslike) BuildCliValidate(
	ctx context.Context,
	// +defaultPath="/"
	// +ignore=["build", "*.duckdb"]
	src *dagger.Directory,
) *dagger.Container {
	return c.BuildCliBase(ctx, src, "development").
		WithExec([]string{"go", "vet", "./..."}).
		WithExec([]string{"go", "install", "github.com/golangci/golangci-lint/cmd/golangci-lint@latest"}).
		WithExec([]string{"golangci-lint", "run", "--timeout", "5m", "./..."}).
		WithExec([]string{"go", "install", "github.com/google/addlicense@latest"}).
		WithExec([]string{
			"addlicense", "--check",
			"--ignore", "build/**",
			"--ignore", ".dagger/internal/**",
			"--ignore", "**/testdata/**",
			"-c", "The StareSlike Authors",
			"-l", "apache",
			"-s=only",
			".",
		})
}

// Runtime image with the binary, the sample seed and the municipality centres
func (c *Stareslike) BuildCli(
	ctx context.Context,
	// +defaultPath="/"
	// +ignore=["build", "*.duckdb"]
	src *dagger.Directory,
	// +optional
	// +default="development"
	version string,
) *dagger.Container {
	builder := c.BuildCliBase(ctx, src, version)

	return dag.Container().
		From("gcr.io/distroless/cc-debian12").
		WithWorkdir("/app").
		WithFile("/app/stareslike", builder.File("/src/build/stareslike")).
		WithFile("/app/seed.json", src.File("cmd/testdata/seed.json")).
		WithFile("/app/municipalities.json", src.File("cmd/testdata/municipalities.json")).
		WithUser(distrolessUser)
}
