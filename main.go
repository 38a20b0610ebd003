// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/stareslike/stareslike/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
