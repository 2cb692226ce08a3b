// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

// Package gpx imports GPS exchange format (GPX) tracks as time series.
// Each <trk> element becomes one series with time, latitude, longitude
// and elevation signals, plus heart rate and cadence when the track
// carries the common trackpoint extensions.
package gpx

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	mgerrors "github.com/geosoft-as/timeseries-io/pkg/errors"
	"github.com/geosoft-as/timeseries-io/pkg/series"
	"github.com/geosoft-as/timeseries-io/pkg/signal"
)

// Reader reads GPX content from a stream, file or string.
type Reader struct {
	reader io.Reader
	file   string
}

func NewReader(r io.Reader) *Reader {
	return &Reader{reader: r}
}

func NewFileReader(path string) *Reader {
	return &Reader{file: path}
}

func NewStringReader(text string) *Reader {
	return &Reader{reader: strings.NewReader(text)}
}

// IsGPX gives the probability [0.0,1.0] that the named file with the
// given leading content (either may be empty) is a GPX file.
func IsGPX(fileName string, content []byte) float64 {
	isFileNameMatching := strings.HasSuffix(strings.ToLower(fileName), ".gpx")

	if len(content) == 0 {
		if isFileNameMatching {
			return 0.75
		}
		return 0.2
	}

	s := strings.ToLower(string(content))
	if strings.Contains(s, "xml") && strings.Contains(s, "<gpx") {
		return 0.95
	}
	return 0.1
}

type gpxDocument struct {
	Tracks []gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Name     string       `xml:"name"`
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Latitude   float64  `xml:"lat,attr"`
	Longitude  float64  `xml:"lon,attr"`
	Elevation  *float64 `xml:"ele"`
	Time       string   `xml:"time"`
	Extensions *struct {
		HeartRate *float64 `xml:"TrackPointExtension>hr"`
		Cadence   *float64 `xml:"TrackPointExtension>cad"`
	} `xml:"extensions"`
}

// Read reads the GPX content and returns one time series per track.
func (r *Reader) Read() ([]*series.TimeSeries, error) {
	stream := r.reader
	if len(r.file) > 0 {
		f, err := os.Open(r.file)
		if err != nil {
			return nil, mgerrors.NewCodecError(err, fmt.Sprintf("Unable to open file: %s", r.file))
		}
		defer f.Close()
		stream = f
	}

	var document gpxDocument
	if err := xml.NewDecoder(stream).Decode(&document); err != nil {
		return nil, mgerrors.NewCodecError(err, "Unable to parse GPX content")
	}

	list := []*series.TimeSeries{}
	for _, track := range document.Tracks {
		list = append(list, readTrack(track))
	}
	return list, nil
}

// ReadOne reads the GPX content and returns the first track, or nil
// if the source holds none.
func (r *Reader) ReadOne() (*series.TimeSeries, error) {
	list, err := r.Read()
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func readTrack(track gpxTrack) *series.TimeSeries {
	ts := series.New()
	if len(track.Name) > 0 {
		ts.SetName(track.Name)
	}

	timeSignal := signal.New("time", "", "time", "s", signal.DateTime, 1)
	latitudeSignal := signal.New("latitude", "", "angle", "degA", signal.Float, 1)
	longitudeSignal := signal.New("longitude", "", "angle", "degA", signal.Float, 1)
	elevationSignal := signal.New("elevation", "", "length", "m", signal.Float, 1)
	ts.AddSignal(timeSignal)
	ts.AddSignal(latitudeSignal)
	ts.AddSignal(longitudeSignal)
	ts.AddSignal(elevationSignal)

	index := 0
	for _, segment := range track.Segments {
		for _, point := range segment.Points {
			// Extension signals are added lazily and aligned by index
			// so rows without extensions stay absent.
			if point.Extensions != nil {
				if point.Extensions.HeartRate != nil {
					heartRateSignal := ts.FindSignal("heartRate")
					if heartRateSignal == nil {
						heartRateSignal = signal.New("heartRate", "", "frequency", "1/min", signal.Float, 1)
						ts.AddSignal(heartRateSignal)
					}
					heartRateSignal.SetValue(index, 0, *point.Extensions.HeartRate)
				}
				if point.Extensions.Cadence != nil {
					cadenceSignal := ts.FindSignal("cadence")
					if cadenceSignal == nil {
						cadenceSignal = signal.New("cadence", "", "frequency", "1/min", signal.Float, 1)
						ts.AddSignal(cadenceSignal)
					}
					cadenceSignal.SetValue(index, 0, *point.Extensions.Cadence)
				}
			}

			timeSignal.Append(parsePointTime(point.Time))
			latitudeSignal.Append(point.Latitude)
			longitudeSignal.Append(point.Longitude)
			if point.Elevation != nil {
				elevationSignal.Append(*point.Elevation)
			} else {
				elevationSignal.Append(nil)
			}

			index++
		}
	}
	return ts
}

func parsePointTime(text string) any {
	if len(text) == 0 {
		return nil
	}
	t, err := time.Parse(time.RFC3339, text)
	if err != nil {
		slog.Warn(fmt.Sprintf("Invalid time value: %s", text))
		return nil
	}
	return t
}
