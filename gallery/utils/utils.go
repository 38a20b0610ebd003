// Copyright 2025 The StareSlike Authors
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// đ has no canonical decomposition, so NFD alone leaves it untouched.
var strokeReplacer = strings.NewReplacer("đ", "d")

// LowerASCIIFolding normalizes a string by removing accents, lowercasing, and trimming spaces.
// "Đakovo" and "Šibenik" fold to "dakovo" and "sibenik".
func LowerASCIIFolding(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		strokeReplacer.Replace(strings.TrimSpace(strings.ToLower(s))),
	)

	return s
}

// ContainsFolded reports whether needle occurs in haystack once both are folded.
func ContainsFolded(haystack, needle string) bool {
	return strings.Contains(LowerASCIIFolding(haystack), LowerASCIIFolding(needle))
}

// FormatInt formats an integer with commas for human readability.
func FormatInt(n int64) string {
	in := strconv.FormatInt(n, 10)

	numOfDigits := len(in)
	if n < 0 {
		numOfDigits-- // First character is the - sign (not a digit)
	}

	numOfCommas := (numOfDigits - 1) / 3

	out := make([]byte, len(in)+numOfCommas)
	if n < 0 {
		in, out[0] = in[1:], '-'
	}

	for i, j, k := len(in)-1, len(out)-1, 0; ; i, j = i-1, j-1 {
		out[j] = in[i]
		if i == 0 {
			return string(out)
		}

		if k++; k == 3 {
			j, k = j-1, 0
			out[j] = ','
		}
	}
}
