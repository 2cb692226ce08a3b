// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

// Package signal models a time series signal: a named, typed measurement
// channel with descriptive metadata and per-dimension value storage.
package signal

import (
	"reflect"
	"time"
)

// ValueType enumerates the value types defined by the TimeSeries.JSON
// format. The set is closed; Unknown is the zero value and not a member.
type ValueType int

const (
	Unknown ValueType = iota
	Float
	Integer
	String
	Boolean
	DateTime
)

// Item is the (name, Go type) pair backing one ValueType member.
// Immutable after construction.
type Item struct {
	name   string
	goType reflect.Type
}

func (i Item) Name() string {
	return i.name
}

func (i Item) GoType() reflect.Type {
	return i.goType
}

func (i Item) String() string {
	return i.name
}

// members holds the declaration order used by the lookup functions.
var members = [...]ValueType{Float, Integer, String, Boolean, DateTime}

var items = map[ValueType]Item{
	Float:    {"float", reflect.TypeOf(float64(0))},
	Integer:  {"integer", reflect.TypeOf(int64(0))},
	String:   {"string", reflect.TypeOf("")},
	Boolean:  {"boolean", reflect.TypeOf(false)},
	DateTime: {"datetime", reflect.TypeOf(time.Time{})},
}

func (vt ValueType) Item() Item {
	return items[vt]
}

func (vt ValueType) Name() string {
	return items[vt].name
}

func (vt ValueType) GoType() reflect.Type {
	return items[vt].goType
}

func (vt ValueType) String() string {
	return items[vt].name
}

func (vt ValueType) valid() bool {
	_, ok := items[vt]
	return ok
}

// Get resolves either a value type name (string) or a Go type
// (reflect.Type) to its ValueType member. Members are scanned in
// declaration order, first match wins. Any other input, or no match,
// yields (Unknown, false).
func Get(value any) (ValueType, bool) {
	switch v := value.(type) {
	case string:
		return GetByName(v)
	case reflect.Type:
		for _, vt := range members {
			if vt.GoType() == v {
				return vt, true
			}
		}
	}
	return Unknown, false
}

func GetByName(name string) (ValueType, bool) {
	for _, vt := range members {
		if vt.Name() == name {
			return vt, true
		}
	}
	return Unknown, false
}

// GetByType resolves a Go type to its ValueType member. In addition to
// the exact member types the obvious numeric relations are searched, so
// float32 resolves to Float and the sized integer types to Integer.
func GetByType(t reflect.Type) (ValueType, bool) {
	for _, vt := range members {
		if vt.GoType() == t {
			return vt, true
		}
	}
	if t == nil {
		return Unknown, false
	}
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		return Float, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integer, true
	}
	return Unknown, false
}
