// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

// Package format detects and reads the file formats supported by the
// tscli tool.
package format

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/geosoft-as/timeseries-io/pkg/gpx"
	"github.com/geosoft-as/timeseries-io/pkg/series"
	"github.com/geosoft-as/timeseries-io/pkg/signalset"
	"github.com/geosoft-as/timeseries-io/pkg/tsjson"
)

type Format int

const (
	Unknown Format = iota
	TimeSeriesJSON
	GPX
	SignalSet
)

func (f Format) String() string {
	switch f {
	case TimeSeriesJSON:
		return "TimeSeries.JSON"
	case GPX:
		return "GPX"
	case SignalSet:
		return "SignalSet"
	}
	return "unknown"
}

// Detect classifies the named file on its name and leading content.
func Detect(file string) Format {
	content := readLeading(file)

	if strings.HasSuffix(strings.ToLower(file), ".yaml") ||
		strings.HasSuffix(strings.ToLower(file), ".yml") {
		return SignalSet
	}

	jsonProbability := tsjson.IsTimeSeries(file, content)
	gpxProbability := gpx.IsGPX(file, content)
	if jsonProbability < 0.5 && gpxProbability < 0.5 {
		return Unknown
	}
	if jsonProbability >= gpxProbability {
		return TimeSeriesJSON
	}
	return GPX
}

// ReadFile reads the named file of any supported format as a list of
// time series. SignalSet files give empty series.
func ReadFile(file string) ([]*series.TimeSeries, error) {
	switch Detect(file) {
	case TimeSeriesJSON:
		return tsjson.NewFileReader(file).Read()
	case GPX:
		return gpx.NewFileReader(file).Read()
	case SignalSet:
		docList, err := signalset.Load(file)
		if err != nil {
			return nil, err
		}
		list := []*series.TimeSeries{}
		for _, doc := range docList {
			list = append(list, doc.TimeSeries())
		}
		return list, nil
	}
	return nil, fmt.Errorf("unsupported file format: %s", file)
}

func readLeading(file string) []byte {
	f, err := os.Open(file)
	if err != nil {
		return nil
	}
	defer f.Close()

	content := make([]byte, 2000)
	n, err := f.Read(content)
	if err != nil && err != io.EOF {
		return nil
	}
	return content[:n]
}
