// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

package tsjson

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"strings"
	"time"

	mgerrors "github.com/geosoft-as/timeseries-io/pkg/errors"
	"github.com/geosoft-as/timeseries-io/pkg/series"
	"github.com/geosoft-as/timeseries-io/pkg/signal"
)

// Binary bulk data layout: values in row order, per signal per
// dimension, each element of fixed size. Floats and integers are 8
// byte big-endian with NaN and MaxInt64 meaning absent, booleans one
// byte (255 absent), datetimes 30 byte space padded ISO 8601 ASCII,
// strings space padded UTF-8 of the signal element size.

const datetimeSize = 30

// WriteBinaryData writes the signal values of the given time series in
// binary form.
func WriteBinaryData(ts *series.TimeSeries, w io.Writer) error {
	out := bufio.NewWriter(w)

	n := ts.Length()
	for index := 0; index < n; index++ {
		for _, s := range ts.Signals() {
			for dimension := 0; dimension < s.Dimensions(); dimension++ {
				if err := writeElement(out, s, s.Value(index, dimension)); err != nil {
					return err
				}
			}
		}
	}
	return out.Flush()
}

func writeElement(out *bufio.Writer, s *signal.Signal, value any) error {
	switch s.ValueType() {
	case signal.Float:
		v := math.NaN()
		if f, ok := value.(float64); ok {
			v = f
		}
		return binary.Write(out, binary.BigEndian, math.Float64bits(v))

	case signal.Integer:
		v := int64(math.MaxInt64)
		if i, ok := value.(int64); ok {
			v = i
		}
		return binary.Write(out, binary.BigEndian, v)

	case signal.Boolean:
		b := byte(255)
		if v, ok := value.(bool); ok {
			b = 0
			if v {
				b = 1
			}
		}
		return out.WriteByte(b)

	case signal.DateTime:
		text := ""
		if v, ok := value.(time.Time); ok {
			text = v.UTC().Format(ISO8601)
		}
		_, err := out.WriteString(pad(text, datetimeSize))
		return err

	case signal.String:
		text, _ := value.(string)
		_, err := out.WriteString(pad(text, s.Size()))
		return err
	}

	// Unrecognized value types have element size 0.
	return nil
}

// ReadBinaryData reads binary signal values into the time series. The
// signal definitions determine the record layout. Reading stops at a
// clean end of stream; a partial record is an error.
func ReadBinaryData(ts *series.TimeSeries, r io.Reader) error {
	in := bufio.NewReader(r)

	rowSize := 0
	for _, s := range ts.Signals() {
		rowSize += s.Dimensions() * elementSize(s)
	}
	if rowSize == 0 {
		return nil
	}

	for {
		first := true
		for _, s := range ts.Signals() {
			for dimension := 0; dimension < s.Dimensions(); dimension++ {
				value, err := readElement(in, s)
				if err == io.EOF && first {
					return nil
				}
				if err != nil {
					return mgerrors.ErrDataDecode(err)
				}
				if elementSize(s) > 0 {
					first = false
				}
				s.AddValue(dimension, value)
			}
		}
	}
}

func elementSize(s *signal.Signal) int {
	switch s.ValueType() {
	case signal.Float, signal.Integer:
		return 8
	case signal.Boolean:
		return 1
	case signal.DateTime:
		return datetimeSize
	case signal.String:
		return s.Size()
	}
	return 0
}

func readElement(in *bufio.Reader, s *signal.Signal) (any, error) {
	switch s.ValueType() {
	case signal.Float:
		var bits uint64
		if err := binary.Read(in, binary.BigEndian, &bits); err != nil {
			return nil, err
		}
		v := math.Float64frombits(bits)
		if math.IsNaN(v) {
			return nil, nil
		}
		return v, nil

	case signal.Integer:
		var v int64
		if err := binary.Read(in, binary.BigEndian, &v); err != nil {
			return nil, err
		}
		if v == math.MaxInt64 {
			return nil, nil
		}
		return v, nil

	case signal.Boolean:
		b, err := in.ReadByte()
		if err != nil {
			return nil, err
		}
		if b == 255 {
			return nil, nil
		}
		return b == 1, nil

	case signal.DateTime:
		text, err := readPadded(in, datetimeSize)
		if err != nil {
			return nil, err
		}
		if len(text) == 0 {
			return nil, nil
		}
		v, err := time.Parse(time.RFC3339, text)
		if err != nil {
			return nil, nil
		}
		return v, nil

	case signal.String:
		text, err := readPadded(in, s.Size())
		if err != nil {
			return nil, err
		}
		if len(text) == 0 {
			return nil, nil
		}
		return text, nil
	}

	return nil, nil
}

// pad space-pads or truncates a string to exactly size bytes.
func pad(s string, size int) string {
	if len(s) >= size {
		return s[:size]
	}
	return s + strings.Repeat(" ", size-len(s))
}

func readPadded(in *bufio.Reader, size int) (string, error) {
	if size <= 0 {
		return "", nil
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(in, buf); err != nil {
		return "", err
	}
	return strings.TrimRight(string(buf), " "), nil
}
