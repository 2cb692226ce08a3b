// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

// Package tsjson reads and writes the TimeSeries.JSON format: a JSON
// array of entries, each holding a "header" object, a "signals" array
// of signal definitions, and a "data" array of value rows. Bulk data
// may alternatively live in a separate binary file referenced by the
// dataUri header property.
package tsjson

import (
	"bytes"
	"strings"
	"unicode"
)

// ISO8601 is the timestamp layout used on file.
const ISO8601 = "2006-01-02T15:04:05.000Z07:00"

// IsTimeSeries returns the probability [0.0,1.0] that the given file is
// a TimeSeries.JSON file. Either argument may be empty; content is a
// portion from the start of the file, typically 2-3000 bytes.
func IsTimeSeries(fileName string, content []byte) float64 {
	isNameMatching := strings.HasSuffix(strings.ToLower(fileName), ".json")

	if content == nil {
		if isNameMatching {
			return 0.75
		}
		return 0.2
	}

	trimmed := bytes.TrimLeftFunc(content, unicode.IsSpace)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return 0.0
	}

	p := 0.1
	if bytes.Contains(content, []byte(`"header"`)) {
		p += 0.4
	}
	if bytes.Contains(content, []byte(`"signals"`)) {
		p += 0.4
	}
	if isNameMatching {
		p += 0.1
	}
	return p
}
