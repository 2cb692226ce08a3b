// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

package signal

import (
	"fmt"
	"math"
	"strings"

	"github.com/geosoft-as/timeseries-io/pkg/errors"
)

// Signal is one measurement channel of a time series. It holds
// descriptive metadata, a value type, and value storage for each of its
// dimensions. Instances are not safe for concurrent writers.
type Signal struct {
	name        string
	description string
	quantity    string
	unit        string
	valueType   ValueType
	nDimensions int

	// values holds one buffer per dimension. Entries are the canonical
	// Go type of valueType, or nil for absent.
	values [][]any

	statistics *Statistics

	// rangeMin/rangeMax cache the computed range until the next write.
	rangeMin   any
	rangeMax   any
	rangeValid bool

	// size is the binary element size in bytes. Derived from valueType
	// at construction, but freely assignable afterwards. For string
	// signals it grows to the longest stored UTF-8 byte length.
	size int
}

// New creates a signal. All arguments are accepted as given; an
// unrecognized value type is legal and gives element size 0.
func New(name, description, quantity, unit string, valueType ValueType, nDimensions int) *Signal {
	s := &Signal{
		name:        name,
		description: description,
		quantity:    quantity,
		unit:        unit,
		valueType:   valueType,
		nDimensions: nDimensions,
		statistics:  NewStatistics(),
	}

	n := nDimensions
	if n < 0 {
		n = 0
	}
	s.values = make([][]any, n)

	switch valueType {
	case Float, Integer:
		s.size = 8
	case DateTime:
		s.size = 30
	case Boolean:
		s.size = 1
	default:
		s.size = 0
	}

	return s
}

// Copy creates a new signal with the same metadata as the given one,
// optionally including its values. The element size is carried over as
// it may have been adjusted for string signals.
func Copy(signal *Signal, includeValues bool) *Signal {
	s := New(signal.name, signal.description, signal.quantity, signal.unit,
		signal.valueType, signal.nDimensions)
	s.size = signal.size

	if includeValues {
		for index := 0; index < signal.Length(); index++ {
			for dimension := 0; dimension < signal.nDimensions; dimension++ {
				s.AddValue(dimension, signal.Value(index, dimension))
			}
		}
	}
	return s
}

func (s *Signal) Name() string {
	return s.name
}

func (s *Signal) Description() string {
	return s.description
}

func (s *Signal) Quantity() string {
	return s.quantity
}

func (s *Signal) Unit() string {
	return s.unit
}

func (s *Signal) ValueType() ValueType {
	return s.valueType
}

func (s *Signal) Dimensions() int {
	return s.nDimensions
}

// Size returns the binary element size of this signal in bytes.
func (s *Signal) Size() int {
	return s.size
}

// SetSize overrides the derived element size. After this call Size() is
// no longer guaranteed to be consistent with ValueType().
func (s *Signal) SetSize(size int) {
	s.size = size
}

func (s *Signal) Statistics() *Statistics {
	return s.statistics
}

// Length returns the number of value rows, taken from the first
// dimension.
func (s *Signal) Length() int {
	if len(s.values) == 0 {
		return 0
	}
	return len(s.values[0])
}

// LengthDimension returns the number of values in the given dimension.
func (s *Signal) LengthDimension(dimension int) int {
	if dimension < 0 || dimension >= len(s.values) {
		return 0
	}
	return len(s.values[dimension])
}

// AddValue appends a value to the given dimension. The value is coerced
// to the canonical Go type of the signal value type; nil means absent.
func (s *Signal) AddValue(dimension int, value any) error {
	if dimension < 0 || dimension >= len(s.values) {
		return errors.ErrInvalidDimension(dimension)
	}

	v := coerce(value, s.valueType)
	s.values[dimension] = append(s.values[dimension], v)
	s.store(v)
	return nil
}

// Append adds a value to the first dimension, a convenience for single
// dimensional signals.
func (s *Signal) Append(value any) error {
	return s.AddValue(0, value)
}

// SetValue sets the value at the given index and dimension. If index is
// beyond the current length, all dimensions are padded with absent
// values first.
func (s *Signal) SetValue(index, dimension int, value any) error {
	if index < 0 {
		return errors.ErrInvalidIndex(index)
	}
	if dimension < 0 || dimension >= len(s.values) {
		return errors.ErrInvalidDimension(dimension)
	}

	for s.Length() <= index {
		for dim := range s.values {
			s.values[dim] = append(s.values[dim], nil)
		}
	}

	v := coerce(value, s.valueType)
	s.values[dimension][index] = v
	s.store(v)
	return nil
}

// store accounts for a newly written value: statistics, string size
// growth and range invalidation.
func (s *Signal) store(value any) {
	s.statistics.Push(toFloat(value))

	if s.valueType == String && value != nil {
		if n := len(value.(string)); n > s.size {
			s.size = n
		}
	}
	s.rangeValid = false
}

// Value returns the value at the given index and dimension, or nil if
// absent or out of bounds.
func (s *Signal) Value(index, dimension int) any {
	if dimension < 0 || dimension >= len(s.values) {
		return nil
	}
	if index < 0 || index >= len(s.values[dimension]) {
		return nil
	}
	return s.values[dimension][index]
}

// ValueAt returns the value at the given index of the first dimension.
func (s *Signal) ValueAt(index int) any {
	return s.Value(index, 0)
}

// Range returns the min and max value of this signal across all
// dimensions. Either may be nil if no values exist. The result is
// cached until the next write.
func (s *Signal) Range() (min, max any) {
	if !s.rangeValid {
		minValue := math.NaN()
		maxValue := math.NaN()

		for dimension := range s.values {
			for _, value := range s.values[dimension] {
				v := toFloat(value)
				if math.IsNaN(v) {
					continue
				}
				if math.IsNaN(minValue) || v < minValue {
					minValue = v
				}
				if math.IsNaN(maxValue) || v > maxValue {
					maxValue = v
				}
			}
		}

		s.rangeMin = fromFloat(minValue, s.valueType)
		s.rangeMax = fromFloat(maxValue, s.valueType)
		s.rangeValid = true
	}
	return s.rangeMin, s.rangeMax
}

// Clear removes all values. For string signals the element size falls
// back to 0 as it was tracking the stored content.
func (s *Signal) Clear() {
	for dimension := range s.values {
		s.values[dimension] = nil
	}
	s.statistics.Reset()
	if s.valueType == String {
		s.size = 0
	}
	s.rangeValid = false
}

func (s *Signal) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s", s.name)
	if len(s.unit) > 0 {
		fmt.Fprintf(&sb, " [%s]", s.unit)
	}
	fmt.Fprintf(&sb, " (%s, %dD, %d values)", s.valueType, s.nDimensions, s.Length())
	return sb.String()
}
