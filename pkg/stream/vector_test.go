// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorAdd(t *testing.T) {
	v := NewVector[float64]("gps")
	v.Add([]string{"latitude", "longitude"})
	v.Add([]string{"latitude"})

	assert.Equal(t, 2, v.Count(), "duplicate add ignored")
	assert.Equal(t, 0, v.Index.Name["latitude"])
	assert.Equal(t, 1, v.Index.Name["longitude"])
}

func TestVectorIndexSignals(t *testing.T) {
	v := NewVector[float64]("gps")
	v.Add([]string{"latitude"})

	err := v.IndexSignals([]string{"latitude", "heartRate"}, []uint32{101, 102})
	assert.Nil(t, err)
	assert.Equal(t, 2, v.Count(), "unknown names added")
	assert.Equal(t, uint32(101), v.Sample[0].Uid)
	assert.Equal(t, 0, v.Index.Uid[101])
	assert.Equal(t, 1, v.Index.Uid[102])

	err = v.IndexSignals([]string{"a"}, []uint32{1, 2})
	assert.NotNil(t, err)
}

func TestVectorSetGet(t *testing.T) {
	v := NewVector[float64]("gps")
	v.Add([]string{"latitude", "longitude"})

	v.Set(map[string]float64{"latitude": 58.87, "unknown": 1.0})
	values := map[string]float64{"latitude": 0, "longitude": 0}
	v.Get(values)
	assert.Equal(t, 58.87, values["latitude"])
	assert.Equal(t, 0.0, values["longitude"])

	v.SetByName([]string{"longitude"}, []float64{6.19})
	ref := v.GetValueRef("longitude")
	assert.NotNil(t, ref)
	assert.Equal(t, 6.19, *ref)
	assert.Nil(t, v.GetValueRef("unknown"))
}

func TestVectorEncodeDecode(t *testing.T) {
	tx := NewVector[float64]("gps")
	tx.IndexSignals([]string{"latitude", "longitude"}, []uint32{101, 102})
	tx.Set(map[string]float64{"latitude": 58.87, "longitude": 6.19})

	buf, err := tx.Encode()
	assert.Nil(t, err)
	assert.Equal(t, 0, len(tx.Updated()))

	rx := NewVector[float64]("gps")
	rx.IndexSignals([]string{"latitude", "longitude"}, []uint32{101, 102})
	assert.Nil(t, rx.Decode(buf))
	assert.Equal(t, []string{"latitude", "longitude"}, rx.Updated())
	assert.Equal(t, 58.87, *rx.GetValueRef("latitude"))
	assert.Equal(t, 6.19, *rx.GetValueRef("longitude"))
}

func TestVectorEncodeDelta(t *testing.T) {
	tx := NewVector[float64]("gps")
	tx.IndexSignals([]string{"latitude", "longitude"}, []uint32{101, 102})
	tx.Set(map[string]float64{"latitude": 58.87})

	buf, _ := tx.Encode()
	rx := NewVector[float64]("gps")
	rx.IndexSignals([]string{"latitude", "longitude"}, []uint32{101, 102})
	rx.Decode(buf)
	assert.Equal(t, []string{"latitude"}, rx.Updated(), "unchanged samples not carried")

	// Second encode carries nothing.
	buf, _ = tx.Encode()
	rx.ClearUpdated()
	rx.Decode(buf)
	assert.Equal(t, 0, len(rx.Updated()))
}

func TestVectorDecodeEmpty(t *testing.T) {
	v := NewVector[float64]("gps")
	assert.Nil(t, v.Decode(new(bytes.Buffer)))
}

func TestVectorBinarySamples(t *testing.T) {
	v := NewVector[[]byte]("nmea")
	v.IndexSignals([]string{"sentence"}, []uint32{201})

	v.Set(map[string][]byte{"sentence": []byte("$GPGGA,")})
	v.Set(map[string][]byte{"sentence": []byte("0844")})
	assert.Equal(t, []byte("$GPGGA,0844"), *v.GetValueRef("sentence"), "binary samples accumulate")

	buf, err := v.Encode()
	assert.Nil(t, err)

	rx := NewVector[[]byte]("nmea")
	rx.IndexSignals([]string{"sentence"}, []uint32{201})
	assert.Nil(t, rx.Decode(buf))
	assert.Equal(t, []byte("$GPGGA,0844"), *rx.GetValueRef("sentence"))

	v.Reset()
	assert.Equal(t, []byte{}, *v.GetValueRef("sentence"))
}
