// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

// Package series holds the TimeSeries container: an ordered header of
// metadata properties plus the signals that make up the measurement
// data. The first signal is the index signal, typically time.
package series

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/elliotchance/orderedmap/v3"

	"github.com/geosoft-as/timeseries-io/pkg/errors"
	"github.com/geosoft-as/timeseries-io/pkg/signal"
)

// Version is the TimeSeries.JSON format version written to file.
const Version = "1.0"

// TimeSeries is one TimeSeries.JSON entry. The header keeps any
// client metadata in insertion order; clients are free to store
// properties beyond the well known ones.
type TimeSeries struct {
	header  *orderedmap.OrderedMap[string, any]
	signals []*signal.Signal

	// hasSignalData is false when only metadata was read.
	hasSignalData bool
}

func New() *TimeSeries {
	return &TimeSeries{
		header:        orderedmap.NewOrderedMap[string, any](),
		hasSignalData: true,
	}
}

// Copy creates a new time series with the header and signal metadata of
// the given one, optionally including the signal values.
func Copy(ts *TimeSeries, includeValues bool) *TimeSeries {
	t := New()
	for key, value := range ts.header.AllFromFront() {
		t.header.Set(key, value)
	}
	for _, s := range ts.signals {
		t.AddSignal(signal.Copy(s, includeValues))
	}
	t.hasSignalData = ts.hasSignalData
	return t
}

// HasSignalData reports whether this instance includes signal values,
// or header data only.
func (t *TimeSeries) HasSignalData() bool {
	return t.hasSignalData
}

func (t *TimeSeries) SetHasSignalData(hasSignalData bool) {
	t.hasSignalData = hasSignalData
}

// SetProperty sets a header property. A nil value unsets the key.
// Legal value types are bool, int, int64, float64, string, time.Time
// and []float64, plus []any and map[string]any for client JSON content.
func (t *TimeSeries) SetProperty(key string, value any) error {
	if value == nil {
		t.header.Delete(key)
		return nil
	}
	switch value.(type) {
	case bool, int, int64, float64, string, time.Time, []float64, []any, map[string]any:
		t.header.Set(key, value)
		return nil
	}
	return errors.ErrInvalidProperty(key)
}

// Property returns the header property for the given key, or nil if
// not present.
func (t *TimeSeries) Property(key string) any {
	value, _ := t.header.Get(key)
	return value
}

// Properties returns all header keys in insertion order.
func (t *TimeSeries) Properties() []string {
	keys := make([]string, 0, t.header.Len())
	for key := range t.header.Keys() {
		keys = append(keys, key)
	}
	return keys
}

func (t *TimeSeries) PropertyAsString(key string) string {
	switch v := t.Property(key).(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (t *TimeSeries) PropertyAsFloat(key string) (float64, bool) {
	switch v := t.Property(key).(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func (t *TimeSeries) PropertyAsInt(key string) (int, bool) {
	switch v := t.Property(key).(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(math.Round(v)), true
	}
	return 0, false
}

func (t *TimeSeries) PropertyAsBool(key string) (bool, bool) {
	v, ok := t.Property(key).(bool)
	return v, ok
}

func (t *TimeSeries) PropertyAsTime(key string) (time.Time, bool) {
	switch v := t.Property(key).(type) {
	case time.Time:
		return v, true
	case string:
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func (t *TimeSeries) PropertyAsFloatSlice(key string) []float64 {
	v, _ := t.Property(key).([]float64)
	return v
}

//
// Well known property accessors.
//

func (t *TimeSeries) Version() string {
	return t.PropertyAsString(PropVersion.Key())
}

func (t *TimeSeries) SetVersion(version string) {
	t.SetProperty(PropVersion.Key(), version)
}

func (t *TimeSeries) Name() string {
	return t.PropertyAsString(PropName.Key())
}

func (t *TimeSeries) SetName(name string) {
	t.SetProperty(PropName.Key(), name)
}

func (t *TimeSeries) Description() string {
	return t.PropertyAsString(PropDescription.Key())
}

func (t *TimeSeries) SetDescription(description string) {
	t.SetProperty(PropDescription.Key(), description)
}

func (t *TimeSeries) Source() string {
	return t.PropertyAsString(PropSource.Key())
}

func (t *TimeSeries) SetSource(source string) {
	t.SetProperty(PropSource.Key(), source)
}

func (t *TimeSeries) Organization() string {
	return t.PropertyAsString(PropOrganization.Key())
}

func (t *TimeSeries) SetOrganization(organization string) {
	t.SetProperty(PropOrganization.Key(), organization)
}

func (t *TimeSeries) License() string {
	return t.PropertyAsString(PropLicense.Key())
}

func (t *TimeSeries) SetLicense(license string) {
	t.SetProperty(PropLicense.Key(), license)
}

// Location returns the [latitude, longitude] of this time series, or
// nil if not set.
func (t *TimeSeries) Location() []float64 {
	return t.PropertyAsFloatSlice(PropLocation.Key())
}

func (t *TimeSeries) SetLocation(latitude, longitude float64) {
	t.SetProperty(PropLocation.Key(), []float64{latitude, longitude})
}

func (t *TimeSeries) DataURI() string {
	return t.PropertyAsString(PropDataURI.Key())
}

func (t *TimeSeries) SetDataURI(dataURI string) {
	t.SetProperty(PropDataURI.Key(), dataURI)
}

//
// Signals.
//

func (t *TimeSeries) AddSignal(s *signal.Signal) {
	t.signals = append(t.signals, s)
}

func (t *TimeSeries) Signals() []*signal.Signal {
	return t.signals
}

func (t *TimeSeries) NSignals() int {
	return len(t.signals)
}

// FindSignal returns the signal of the given name, or nil if not
// present.
func (t *TimeSeries) FindSignal(name string) *signal.Signal {
	for _, s := range t.signals {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// IndexSignal returns the index signal, by convention the first one.
func (t *TimeSeries) IndexSignal() *signal.Signal {
	if len(t.signals) == 0 {
		return nil
	}
	return t.signals[0]
}

// IndexType returns the value type of the index signal. Datetime is
// assumed when no signals exist yet.
func (t *TimeSeries) IndexType() signal.ValueType {
	s := t.IndexSignal()
	if s == nil {
		return signal.DateTime
	}
	return s.ValueType()
}

// Length returns the number of value rows, taken from the index signal.
func (t *TimeSeries) Length() int {
	s := t.IndexSignal()
	if s == nil {
		return 0
	}
	return s.Length()
}

//
// Index range.
//

// StartIndex returns the declared start index from the header: a
// time.Time for datetime indexes, a float64 otherwise. Nil if unset.
func (t *TimeSeries) StartIndex() any {
	return t.declaredIndex(PropTimeStart.Key())
}

// EndIndex returns the declared end index from the header.
func (t *TimeSeries) EndIndex() any {
	return t.declaredIndex(PropTimeEnd.Key())
}

func (t *TimeSeries) declaredIndex(key string) any {
	if t.IndexType() == signal.DateTime {
		if v, ok := t.PropertyAsTime(key); ok {
			return v
		}
		return nil
	}
	if v, ok := t.PropertyAsFloat(key); ok {
		return v
	}
	return nil
}

func (t *TimeSeries) SetStartIndex(startIndex any) error {
	return t.SetProperty(PropTimeStart.Key(), startIndex)
}

func (t *TimeSeries) SetEndIndex(endIndex any) error {
	return t.SetProperty(PropTimeEnd.Key(), endIndex)
}

// ActualStartIndex returns the first value of the index signal, or nil
// if there is no data.
func (t *TimeSeries) ActualStartIndex() any {
	s := t.IndexSignal()
	if s == nil || s.Length() == 0 {
		return nil
	}
	return s.Value(0, 0)
}

// ActualEndIndex returns the last value of the index signal.
func (t *TimeSeries) ActualEndIndex() any {
	s := t.IndexSignal()
	if s == nil || s.Length() == 0 {
		return nil
	}
	return s.Value(s.Length()-1, 0)
}

// Step returns the declared sampling step from the header. For datetime
// indexes the unit is milliseconds.
func (t *TimeSeries) Step() (float64, bool) {
	return t.PropertyAsFloat(PropTimeStep.Key())
}

func (t *TimeSeries) SetStep(step float64) {
	t.SetProperty(PropTimeStep.Key(), step)
}

// ActualStep computes the sampling step of the index signal as the
// median of the consecutive deltas. For datetime indexes the unit is
// milliseconds. Reports false with fewer than two index values.
func (t *TimeSeries) ActualStep() (float64, bool) {
	s := t.IndexSignal()
	if s == nil || s.Length() < 2 {
		return 0, false
	}

	deltas := make([]float64, 0, s.Length()-1)
	for i := 1; i < s.Length(); i++ {
		v0 := indexValueAsFloat(s.Value(i-1, 0))
		v1 := indexValueAsFloat(s.Value(i, 0))
		if math.IsNaN(v0) || math.IsNaN(v1) {
			continue
		}
		deltas = append(deltas, v1-v0)
	}
	if len(deltas) == 0 {
		return 0, false
	}

	sort.Float64s(deltas)
	return deltas[len(deltas)/2], true
}

func indexValueAsFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case time.Time:
		return float64(v.UnixMilli())
	}
	return math.NaN()
}

// Summary returns a short logging friendly description of this time
// series: name, signal count and up to four index values.
func (t *TimeSeries) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "TimeSeries: %s\n", t.Name())

	more := ""
	if t.NSignals() > 1 {
		more = fmt.Sprintf(", ... (%d more signals)", t.NSignals()-1)
	}

	n := t.Length()
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "[%v%s]\n", t.IndexSignal().Value(i, 0), more)
		if i > 1 && n > 4 {
			fmt.Fprintf(&sb, ": %d more values\n", n-4)
			fmt.Fprintf(&sb, "[%v%s]\n", t.IndexSignal().Value(n-1, 0), more)
			break
		}
	}
	return sb.String()
}
