// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

// Package stream captures live signal feeds into time series. A
// Vector holds the latest sample of each signal on a feed channel and
// encodes its changed samples as a compact msgpack delta. A Feed ties
// a vector to a connection and records received samples as rows of a
// time series.
package stream

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/vmihailenco/msgpack/v5"

	mgerrors "github.com/geosoft-as/timeseries-io/pkg/errors"
)

type SampleType interface {
	float64 | []byte
}

type Sample[T SampleType] struct {
	Name  string
	Uid   uint32
	Value T
}

// Vector is the set of samples on one feed channel, indexed by signal
// name and by the UID assigned by the feed hub.
type Vector[T SampleType] struct {
	Name   string
	Sample []Sample[T]
	Index  struct {
		Name map[string]int
		Uid  map[uint32]int
	}
	delta struct {
		changed map[int]struct{} // changed locally
		updated map[int]struct{} // updated from the hub
	}
}

func NewVector[T SampleType](name string) *Vector[T] {
	v := Vector[T]{Name: name}
	v.Index.Name = make(map[string]int)
	v.Index.Uid = make(map[uint32]int)
	v.delta.changed = make(map[int]struct{})
	v.delta.updated = make(map[int]struct{})
	return &v
}

func (v *Vector[T]) Count() int {
	return len(v.Sample)
}

func (v *Vector[T]) ClearChanged() {
	clear(v.delta.changed)
}

func (v *Vector[T]) ClearUpdated() {
	clear(v.delta.updated)
}

// Updated returns the names of the samples updated from the hub since
// the last ClearUpdated call.
func (v *Vector[T]) Updated() []string {
	names := []string{}
	for i := range v.delta.updated {
		names = append(names, v.Sample[i].Name)
	}
	slices.Sort(names)
	return names
}

func (v *Vector[T]) Add(signals []string) *Vector[T] {
	for _, n := range signals {
		if _, ok := v.Index.Name[n]; !ok {
			var s Sample[T]
			s.Name = n
			s.Uid = 0
			v.Sample = append(v.Sample, s)
			v.Index.Name[n] = len(v.Sample) - 1
		}
	}
	return v
}

// IndexSignals binds hub assigned UIDs to signal names. Unknown names
// are added to the vector.
func (v *Vector[T]) IndexSignals(name []string, uid []uint32) error {
	if len(name) != len(uid) {
		return errors.New("different count for name and uid slice")
	}
	for i, n := range name {
		if _, ok := v.Index.Name[n]; !ok {
			v.Add([]string{n})
		}
		v.Index.Uid[uid[i]] = v.Index.Name[n]

		s := &v.Sample[v.Index.Name[n]]
		s.Uid = uid[i]
		slog.Debug(fmt.Sprintf("    SampleIndex: %d [name=%s]", s.Uid, s.Name))
	}
	return nil
}

// Scalar samples hold the latest reading only, and writing the same
// reading again is not a change. Binary samples accumulate until the
// next Reset, so fragments arriving across capture cycles concatenate.
func (v *Vector[T]) setValue(index int, value T) {
	s := &v.Sample[index]
	switch any(s.Value).(type) {
	case float64:
		if val, ok := any(value).(float64); ok {
			if any(s.Value).(float64) != val {
				s.Value = value
				slog.Debug(fmt.Sprintf("    SampleValue: %d = %f [name=%s]", s.Uid, val, s.Name))
			}
		} else {
			slog.Error("error: type mismatch, expected float64")
		}
	case []byte:
		if val, ok := any(value).([]byte); ok {
			val = append(any(s.Value).([]byte), val...)
			s.Value = any(val).(T)
		} else {
			slog.Error("error: type mismatch, expected []byte")
		}
	}
}

func (v *Vector[T]) Set(signals map[string]T) error {
	for n, val := range signals {
		if index, ok := v.Index.Name[n]; ok {
			v.setValue(index, val)
			v.delta.changed[index] = struct{}{}
		}
	}
	return nil
}

func (v *Vector[T]) SetByName(name []string, value []T) error {
	if len(name) != len(value) {
		return errors.New("different count for name and value slice")
	}
	for i, n := range name {
		if index, ok := v.Index.Name[n]; ok {
			v.setValue(index, value[i])
			v.delta.changed[index] = struct{}{}
		}
	}
	return nil
}

func (v *Vector[T]) Get(signals map[string]T) error {
	for n := range maps.Keys(signals) {
		if index, ok := v.Index.Name[n]; ok {
			signals[n] = v.Sample[index].Value
		}
	}
	return nil
}

func (v *Vector[T]) GetByName(name []string, value []T) error {
	if len(name) != len(value) {
		return errors.New("different count for name and value slice")
	}
	for i, n := range name {
		if index, ok := v.Index.Name[n]; ok {
			value[i] = v.Sample[index].Value
		}
	}
	return nil
}

func (v *Vector[T]) GetValueRef(name string) *T {
	if index, ok := v.Index.Name[name]; ok {
		return &v.Sample[index].Value
	}
	return nil
}

func (v *Vector[T]) updateByUid(uid []uint32, value []T) error {
	if len(uid) != len(value) {
		return errors.New("different count for uid and value slice")
	}
	for i, u := range uid {
		if index, ok := v.Index.Uid[u]; ok {
			v.setValue(index, value[i])
			v.delta.updated[index] = struct{}{}
		}
	}
	return nil
}

// Reset drops accumulated binary payloads at the end of a capture
// cycle. Scalar samples keep their last reading so a feed without
// fresh data still records the previous value.
func (v *Vector[T]) Reset() {
	for i := range v.Sample {
		s := &v.Sample[i]
		switch any(s.Value).(type) {
		case []byte:
			s.Value = any([]byte{}).(T)
		}
	}
}

// Encode encodes the changed samples as a msgpack UID/value array pair
// and clears the changed delta.
func (v *Vector[T]) Encode() (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	enc := msgpack.NewEncoder(buf)

	delta := slices.Collect(maps.Keys(v.delta.changed))
	slices.Sort(delta)
	enc.EncodeArrayLen(2)
	enc.EncodeArrayLen(len(delta))
	for _, i := range delta {
		enc.EncodeUint32(v.Sample[i].Uid)
	}
	enc.EncodeArrayLen(len(delta))
	for _, i := range delta {
		switch any(v.Sample[i].Value).(type) {
		case float64:
			enc.EncodeFloat64(any(v.Sample[i].Value).(float64))
		case []byte:
			enc.EncodeBytes(any(v.Sample[i].Value).([]byte))
		}
	}
	v.ClearChanged()

	return buf, nil
}

// Decode applies a msgpack UID/value array pair, marking the carried
// samples as updated.
func (v *Vector[T]) Decode(buf *bytes.Buffer) error {
	reader := bytes.NewReader(buf.Bytes())
	dec := msgpack.NewDecoder(reader)

	cLen, err := dec.DecodeArrayLen()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if cLen != 2 {
		return mgerrors.NewStreamError(nil, fmt.Sprintf("unexpected container array len (%d)", cLen))
	}

	uidArrayLen, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	uids := []uint32{}
	for range uidArrayLen {
		u, err := dec.DecodeUint32()
		if err != nil {
			return err
		}
		uids = append(uids, u)
	}

	valueArrayLen, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if uidArrayLen != valueArrayLen {
		return mgerrors.ErrVectorLenMismatch(uidArrayLen, valueArrayLen)
	}
	values := []T{}
	switch any(values).(type) {
	case []float64:
		for range valueArrayLen {
			val, err := dec.DecodeFloat64()
			if err != nil {
				return err
			}
			values = append(values, any(val).(T))
		}
	case [][]byte:
		for range valueArrayLen {
			val, err := dec.DecodeBytes()
			if err != nil {
				return err
			}
			values = append(values, any(val).(T))
		}
	}
	return v.updateByUid(uids, values)
}
