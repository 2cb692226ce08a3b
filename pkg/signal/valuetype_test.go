// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

package signal

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValueTypeMembers(t *testing.T) {
	assert.Equal(t, 5, len(members), "member count")

	assert.Equal(t, "float", Float.Name())
	assert.Equal(t, "integer", Integer.Name())
	assert.Equal(t, "string", String.Name())
	assert.Equal(t, "boolean", Boolean.Name())
	assert.Equal(t, "datetime", DateTime.Name())

	assert.Equal(t, reflect.TypeOf(float64(0)), Float.GoType())
	assert.Equal(t, reflect.TypeOf(int64(0)), Integer.GoType())
	assert.Equal(t, reflect.TypeOf(""), String.GoType())
	assert.Equal(t, reflect.TypeOf(false), Boolean.GoType())
	assert.Equal(t, reflect.TypeOf(time.Time{}), DateTime.GoType())

	for _, vt := range members {
		assert.Equal(t, vt.Name(), vt.String(), "String equals Name")
		assert.Equal(t, vt.Name(), vt.Item().Name(), "item name")
		assert.Equal(t, vt.GoType(), vt.Item().GoType(), "item type")
	}
}

func TestValueTypeGet(t *testing.T) {
	// Every member resolves by its own name and its own Go type.
	for _, vt := range members {
		byName, ok := Get(vt.Name())
		assert.True(t, ok, "get by name")
		assert.Equal(t, vt, byName)

		byType, ok := Get(vt.GoType())
		assert.True(t, ok, "get by type")
		assert.Equal(t, vt, byType)
	}
}

func TestValueTypeGetNotFound(t *testing.T) {
	vt, ok := Get("double")
	assert.False(t, ok)
	assert.Equal(t, Unknown, vt)

	vt, ok = Get(reflect.TypeOf(complex128(0)))
	assert.False(t, ok)
	assert.Equal(t, Unknown, vt)

	// Neither a string nor a reflect.Type.
	vt, ok = Get(42)
	assert.False(t, ok)
	assert.Equal(t, Unknown, vt)

	vt, ok = Get(nil)
	assert.False(t, ok)
	assert.Equal(t, Unknown, vt)
}

func TestValueTypeGetByTypeRelations(t *testing.T) {
	vt, ok := GetByType(reflect.TypeOf(float32(0)))
	assert.True(t, ok)
	assert.Equal(t, Float, vt)

	for _, v := range []any{int(0), int8(0), int16(0), int32(0), uint32(0), uint64(0)} {
		vt, ok := GetByType(reflect.TypeOf(v))
		assert.True(t, ok, "integer relation")
		assert.Equal(t, Integer, vt)
	}

	vt, ok = GetByType(reflect.TypeOf(struct{}{}))
	assert.False(t, ok)
	assert.Equal(t, Unknown, vt)

	vt, ok = GetByType(nil)
	assert.False(t, ok)
	assert.Equal(t, Unknown, vt)
}
