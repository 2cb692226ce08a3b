// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSignalMetadata(t *testing.T) {
	s := New("lat", "test", "test", "m", Float, 1)
	assert.Equal(t, "lat", s.Name(), "name")
	assert.Equal(t, "test", s.Description(), "description")
	assert.Equal(t, "test", s.Quantity(), "quantity")
	assert.Equal(t, "m", s.Unit(), "unit")
	assert.Equal(t, Float, s.ValueType(), "valueType")
	assert.Equal(t, 1, s.Dimensions(), "dimensions")
	assert.Equal(t, 0, s.Length(), "length")
}

func TestSignalSize(t *testing.T) {
	assert.Equal(t, 8, New("a", "", "", "", Float, 1).Size())
	assert.Equal(t, 8, New("a", "", "", "", Integer, 1).Size())
	assert.Equal(t, 30, New("a", "", "", "", DateTime, 1).Size())
	assert.Equal(t, 1, New("a", "", "", "", Boolean, 1).Size())
	assert.Equal(t, 0, New("a", "", "", "", String, 1).Size())
	assert.Equal(t, 0, New("a", "", "", "", Unknown, 1).Size())
	assert.Equal(t, 0, New("a", "", "", "", ValueType(99), 1).Size())
}

func TestSignalSetSize(t *testing.T) {
	s := New("a", "", "", "", Float, 1)
	assert.Equal(t, 8, s.Size())

	// The override wins over the derived value.
	s.SetSize(16)
	assert.Equal(t, 16, s.Size())
}

func TestSignalAddValue(t *testing.T) {
	s := New("depth", "", "distance", "m", Float, 1)

	assert.Nil(t, s.Append(1.0))
	assert.Nil(t, s.Append(2))
	assert.Nil(t, s.Append(nil))
	assert.Equal(t, 3, s.Length(), "length")
	assert.Equal(t, 1.0, s.ValueAt(0))
	assert.Equal(t, 2.0, s.ValueAt(1), "coerced to float64")
	assert.Nil(t, s.ValueAt(2), "absent")

	// Out of range dimensions are rejected.
	assert.NotNil(t, s.AddValue(1, 3.0))
	assert.NotNil(t, s.AddValue(-1, 3.0))
	assert.Equal(t, 3, s.Length(), "length unchanged")
}

func TestSignalMultiDimensional(t *testing.T) {
	s := New("position", "", "", "deg", Float, 2)

	assert.Nil(t, s.AddValue(0, 58.8))
	assert.Nil(t, s.AddValue(1, 6.1))
	assert.Equal(t, 58.8, s.Value(0, 0))
	assert.Equal(t, 6.1, s.Value(0, 1))
	assert.Nil(t, s.Value(0, 2), "out of bounds dimension")
	assert.Nil(t, s.Value(1, 0), "out of bounds index")
}

func TestSignalSetValuePadding(t *testing.T) {
	s := New("test", "", "", "", Float, 4)

	assert.Nil(t, s.SetValue(10, 2, nil))
	assert.Equal(t, 11, s.Length(), "padded length")
	assert.Nil(t, s.SetValue(2, 1, 42.0))
	assert.Equal(t, 11, s.Length(), "length unchanged")
	assert.Equal(t, 42.0, s.Value(2, 1))
	assert.Nil(t, s.Value(5, 3), "padding is absent")

	assert.NotNil(t, s.SetValue(-1, 0, 1.0), "negative index")
	assert.NotNil(t, s.SetValue(0, 4, 1.0), "dimension out of range")
}

func TestSignalStringSize(t *testing.T) {
	s := New("comment", "", "", "", String, 1)
	assert.Equal(t, 0, s.Size())

	s.Append("ab")
	assert.Equal(t, 2, s.Size())
	s.Append("norwegian blÅ")
	assert.Equal(t, 14, s.Size(), "UTF-8 byte length, not rune count")
	s.Append("x")
	assert.Equal(t, 14, s.Size(), "size never shrinks on add")

	s.Clear()
	assert.Equal(t, 0, s.Size(), "size reset on clear")
	assert.Equal(t, 0, s.Length())
}

func TestSignalRange(t *testing.T) {
	s := New("depth", "", "distance", "m", Float, 1)

	min, max := s.Range()
	assert.Nil(t, min, "empty range min")
	assert.Nil(t, max, "empty range max")

	s.Append(4.0)
	s.Append(nil)
	s.Append(1.5)
	s.Append(9.0)

	min, max = s.Range()
	assert.Equal(t, 1.5, min)
	assert.Equal(t, 9.0, max)

	// Range covers all dimensions.
	s2 := New("pair", "", "", "", Integer, 2)
	s2.AddValue(0, 10)
	s2.AddValue(1, -3)
	min, max = s2.Range()
	assert.Equal(t, int64(-3), min)
	assert.Equal(t, int64(10), max)
}

func TestSignalStatistics(t *testing.T) {
	s := New("speed", "", "velocity", "m/s", Float, 1)
	s.Append(1.0)
	s.Append(2.0)
	s.Append(nil)
	s.Append(3.0)

	stats := s.Statistics()
	assert.Equal(t, 4, stats.NValues(), "nValues")
	assert.Equal(t, 3, stats.NActual(), "nActual")
	assert.Equal(t, 1.0, stats.Min(), "min")
	assert.Equal(t, 3.0, stats.Max(), "max")
	assert.InDelta(t, 2.0, stats.Mean(), 1e-9, "mean")
	assert.InDelta(t, 1.0, stats.Variance(), 1e-9, "variance")

	s.Clear()
	assert.Equal(t, 0, s.Statistics().NValues(), "reset on clear")
}

func TestSignalDateTimeValues(t *testing.T) {
	s := New("time", "", "time", "s", DateTime, 1)
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s.Append(t0)
	s.Append("2025-06-01T12:00:10Z")
	s.Append("not a timestamp")

	assert.Equal(t, t0, s.ValueAt(0))
	assert.Equal(t, t0.Add(10*time.Second), s.ValueAt(1), "parsed from ISO string")
	assert.Nil(t, s.ValueAt(2), "unparsable becomes absent")
}

func TestSignalCopy(t *testing.T) {
	s := New("lat", "test", "test", "m", Float, 1)
	s.Append(58.8)
	s.SetSize(12)

	c := Copy(s, false)
	assert.Equal(t, "lat", c.Name())
	assert.Equal(t, 12, c.Size(), "size carried over")
	assert.Equal(t, 0, c.Length(), "values excluded")

	c = Copy(s, true)
	assert.Equal(t, 1, c.Length(), "values included")
	assert.Equal(t, 58.8, c.ValueAt(0))
}

func TestSignalEndToEnd(t *testing.T) {
	s := New("lat", "test", "test", "m", Float, 1)
	assert.Equal(t, "lat", s.Name())
}
