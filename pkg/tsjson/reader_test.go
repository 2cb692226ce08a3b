// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

package tsjson

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/geosoft-as/timeseries-io/pkg/series"
	"github.com/geosoft-as/timeseries-io/pkg/signal"
)

const testContent = `[
  {
    "header": {
      "name": "gps-track",
      "description": "morning run",
      "location": [58.8, 6.1],
      "custom": {"operator": "tiger"}
    },
    "signals": [
      {
        "name": "time",
        "description": null,
        "quantity": "time",
        "unit": "s",
        "valueType": "datetime",
        "dimensions": 1
      },
      {
        "name": "position",
        "quantity": "angle",
        "unit": "degA",
        "valueType": "float",
        "dimensions": 2
      },
      {
        "name": "comment",
        "valueType": "string",
        "dimensions": 1,
        "maxSize": 10
      }
    ],
    "data": [
      ["2025-06-01T08:00:00.000Z", [58.8, 6.1], "start"],
      ["2025-06-01T08:00:02.000Z", [58.9, 6.2], null],
      ["2025-06-01T08:00:04.000Z", [null, 6.3], "end"]
    ]
  }
]`

func TestReadContent(t *testing.T) {
	list, err := NewStringReader(testContent).Read()
	assert.Nil(t, err)
	assert.Equal(t, 1, len(list), "one entry")

	ts := list[0]
	assert.Equal(t, "gps-track", ts.Name())
	assert.Equal(t, "morning run", ts.Description())
	assert.Equal(t, []float64{58.8, 6.1}, ts.Location())
	assert.Equal(t, map[string]any{"operator": "tiger"}, ts.Property("custom"))
	assert.True(t, ts.HasSignalData())

	assert.Equal(t, 3, ts.NSignals())
	assert.Equal(t, 3, ts.Length())

	timeSignal := ts.IndexSignal()
	assert.Equal(t, "time", timeSignal.Name())
	assert.Equal(t, signal.DateTime, timeSignal.ValueType())
	t0 := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, t0, timeSignal.ValueAt(0))
	assert.Equal(t, t0.Add(4*time.Second), timeSignal.ValueAt(2))

	position := ts.FindSignal("position")
	assert.Equal(t, 2, position.Dimensions())
	assert.Equal(t, 58.9, position.Value(1, 0))
	assert.Equal(t, 6.2, position.Value(1, 1))
	assert.Nil(t, position.Value(2, 0), "absent dimension value")
	assert.Equal(t, 6.3, position.Value(2, 1))

	comment := ts.FindSignal("comment")
	assert.Equal(t, signal.String, comment.ValueType())
	assert.Equal(t, 10, comment.Size(), "maxSize applied")
	assert.Equal(t, "start", comment.ValueAt(0))
	assert.Nil(t, comment.ValueAt(1))
}

func TestReadOne(t *testing.T) {
	ts, err := NewStringReader(testContent).ReadOne()
	assert.Nil(t, err)
	assert.NotNil(t, ts)
	assert.Equal(t, "gps-track", ts.Name())

	ts, err = NewStringReader("[]").ReadOne()
	assert.Nil(t, err)
	assert.Nil(t, ts, "empty content")
}

func TestReadMetadataOnly(t *testing.T) {
	list, err := NewStringReader(testContent).ReadWithOptions(ReadOptions{MetadataOnly: true})
	assert.Nil(t, err)
	ts := list[0]
	assert.False(t, ts.HasSignalData())
	assert.Equal(t, 3, ts.NSignals(), "definitions kept")
	assert.Equal(t, 0, ts.Length(), "no rows")
	assert.Equal(t, "gps-track", ts.Name(), "header kept")
}

func TestReadListenerAbort(t *testing.T) {
	calls := 0
	listener := func(ts *series.TimeSeries, nRows int) bool {
		calls++
		return nRows < 2
	}
	list, err := NewStringReader(testContent).ReadWithOptions(ReadOptions{Listener: listener})
	assert.Nil(t, err)
	assert.Equal(t, 2, calls, "aborted after second row")
	assert.Equal(t, 2, list[0].Length(), "rows before abort kept")
}

func TestReadDataBeforeSignals(t *testing.T) {
	content := `[
  {
    "data": [[1.0, 10.0], [2.0, 20.0]],
    "signals": [
      {"name": "index", "valueType": "float", "dimensions": 1},
      {"name": "value", "valueType": "float", "dimensions": 1}
    ],
    "header": {"name": "reordered"}
  }
]`
	ts, err := NewStringReader(content).ReadOne()
	assert.Nil(t, err)
	assert.Equal(t, "reordered", ts.Name())
	assert.Equal(t, 2, ts.Length())
	assert.Equal(t, 20.0, ts.FindSignal("value").ValueAt(1))
}

func TestReadSignalDefinitionFallbacks(t *testing.T) {
	content := `[
  {
    "header": {},
    "signals": [
      {"name": "ok", "valueType": "double", "dimensions": 1},
      {"valueType": "float"},
      {"name": "unnamedType"}
    ],
    "data": []
  }
]`
	ts, err := NewStringReader(content).ReadOne()
	assert.Nil(t, err)
	assert.Equal(t, 1, ts.NSignals(), "incomplete definitions skipped")
	assert.Equal(t, signal.Float, ts.Signals()[0].ValueType(), "unrecognized type falls back to float")
}

func TestReadInvalidContent(t *testing.T) {
	_, err := NewStringReader("{}").Read()
	assert.NotNil(t, err, "top level must be an array")

	_, err = NewStringReader("[{").Read()
	assert.NotNil(t, err)
}

func TestIsTimeSeries(t *testing.T) {
	assert.Equal(t, 0.75, IsTimeSeries("log.json", nil))
	assert.Equal(t, 0.2, IsTimeSeries("log.txt", nil))
	assert.Equal(t, 0.0, IsTimeSeries("log.json", []byte("<gpx>")))
	assert.InDelta(t, 1.0, IsTimeSeries("log.json", []byte(testContent)), 1e-9)
	assert.InDelta(t, 0.9, IsTimeSeries("log.bin", []byte(testContent)), 1e-9)
}
