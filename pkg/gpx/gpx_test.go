// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

package gpx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/geosoft-as/timeseries-io/pkg/signal"
)

const testContent = `<?xml version="1.0" encoding="UTF-8"?>
<gpx xmlns="http://www.topografix.com/GPX/1/1"
     xmlns:gpxtpx="http://www.garmin.com/xmlschemas/TrackPointExtension/v1"
     creator="test" version="1.1">
  <trk>
    <name>Gramstad</name>
    <trkseg>
      <trkpt lat="58.8701" lon="6.1912">
        <ele>102.4</ele>
        <time>2025-06-01T08:00:00Z</time>
      </trkpt>
      <trkpt lat="58.8702" lon="6.1913">
        <time>2025-06-01T08:00:02Z</time>
        <extensions>
          <gpxtpx:TrackPointExtension>
            <gpxtpx:hr>128</gpxtpx:hr>
            <gpxtpx:cad>74</gpxtpx:cad>
          </gpxtpx:TrackPointExtension>
        </extensions>
      </trkpt>
      <trkpt lat="58.8703" lon="6.1914">
        <ele>104.1</ele>
        <time>2025-06-01T08:00:04Z</time>
      </trkpt>
    </trkseg>
  </trk>
</gpx>`

func TestReadTrack(t *testing.T) {
	ts, err := NewStringReader(testContent).ReadOne()
	assert.Nil(t, err)
	assert.NotNil(t, ts)

	assert.Equal(t, "Gramstad", ts.Name())
	assert.Equal(t, 6, ts.NSignals())
	assert.Equal(t, 3, ts.Length())

	timeSignal := ts.IndexSignal()
	assert.Equal(t, "time", timeSignal.Name())
	assert.Equal(t, signal.DateTime, timeSignal.ValueType())
	assert.Equal(t, time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC), timeSignal.ValueAt(0))

	assert.Equal(t, 58.8702, ts.FindSignal("latitude").ValueAt(1))
	assert.Equal(t, 6.1914, ts.FindSignal("longitude").ValueAt(2))
	assert.Equal(t, "degA", ts.FindSignal("latitude").Unit())
}

func TestReadElevation(t *testing.T) {
	ts, err := NewStringReader(testContent).ReadOne()
	assert.Nil(t, err)

	elevation := ts.FindSignal("elevation")
	assert.Equal(t, 102.4, elevation.ValueAt(0))
	assert.Nil(t, elevation.ValueAt(1), "missing <ele> is absent")
	assert.Equal(t, 104.1, elevation.ValueAt(2))
}

func TestReadExtensions(t *testing.T) {
	ts, err := NewStringReader(testContent).ReadOne()
	assert.Nil(t, err)

	heartRate := ts.FindSignal("heartRate")
	assert.NotNil(t, heartRate)
	assert.Equal(t, "1/min", heartRate.Unit())
	assert.Nil(t, heartRate.ValueAt(0))
	assert.Equal(t, 128.0, heartRate.ValueAt(1))
	assert.Nil(t, heartRate.ValueAt(2))

	cadence := ts.FindSignal("cadence")
	assert.NotNil(t, cadence)
	assert.Equal(t, 74.0, cadence.ValueAt(1))
}

func TestReadNoTracks(t *testing.T) {
	ts, err := NewStringReader(`<gpx version="1.1"></gpx>`).ReadOne()
	assert.Nil(t, err)
	assert.Nil(t, ts)
}

func TestReadInvalidContent(t *testing.T) {
	_, err := NewStringReader("not xml at all").Read()
	assert.NotNil(t, err)
}

func TestIsGPX(t *testing.T) {
	assert.Equal(t, 0.75, IsGPX("track.gpx", nil))
	assert.Equal(t, 0.2, IsGPX("track.json", nil))
	assert.Equal(t, 0.95, IsGPX("track.gpx", []byte(testContent)))
	assert.Equal(t, 0.1, IsGPX("track.gpx", []byte(`{"header": {}}`)))
}
