// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

package tsjson

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	mgerrors "github.com/geosoft-as/timeseries-io/pkg/errors"
	"github.com/geosoft-as/timeseries-io/pkg/series"
	"github.com/geosoft-as/timeseries-io/pkg/signal"
)

// DataListener is notified as value rows are read. Returning false
// aborts the read; the rows read so far are kept.
type DataListener func(ts *series.TimeSeries, nRows int) bool

// ReadOptions control how much of the stream content is captured.
type ReadOptions struct {
	// MetadataOnly skips the bulk data, leaving header and signal
	// definitions only.
	MetadataOnly bool

	// Listener is called after each row read. Nil if not used.
	Listener DataListener
}

// Reader reads TimeSeries.JSON content from a stream, file or string.
type Reader struct {
	reader io.Reader
	file   string // set when reading from a file, used to resolve dataUri
}

func NewReader(r io.Reader) *Reader {
	return &Reader{reader: r}
}

func NewFileReader(path string) *Reader {
	return &Reader{file: path}
}

func NewStringReader(text string) *Reader {
	return &Reader{reader: strings.NewReader(text)}
}

// Read reads the entire content including bulk data.
func (r *Reader) Read() ([]*series.TimeSeries, error) {
	return r.ReadWithOptions(ReadOptions{})
}

// ReadOne reads the content and returns the first time series, or nil
// if the source holds none.
func (r *Reader) ReadOne() (*series.TimeSeries, error) {
	list, err := r.Read()
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *Reader) ReadWithOptions(opts ReadOptions) ([]*series.TimeSeries, error) {
	stream := r.reader
	if len(r.file) > 0 {
		f, err := os.Open(r.file)
		if err != nil {
			return nil, mgerrors.NewCodecError(err, "unable to open file")
		}
		defer f.Close()
		stream = f
	}

	dec := json.NewDecoder(stream)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, mgerrors.ErrContentInvalid(r.source())
	}

	list := []*series.TimeSeries{}
	for dec.More() {
		ts, aborted, err := r.readTimeSeries(dec, opts)
		if err != nil {
			return nil, err
		}
		list = append(list, ts)
		if aborted {
			return list, nil
		}
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, mgerrors.ErrContentInvalid(r.source())
	}

	return list, nil
}

func (r *Reader) source() string {
	if len(r.file) > 0 {
		return r.file
	}
	return "stream"
}

func (r *Reader) readTimeSeries(dec *json.Decoder, opts ReadOptions) (*series.TimeSeries, bool, error) {
	ts := series.New()
	ts.SetHasSignalData(!opts.MetadataOnly)

	// Rows read before the signal definitions are parked here.
	var pending [][]any
	aborted := false

	if err := expectDelim(dec, '{'); err != nil {
		return nil, false, mgerrors.ErrContentInvalid(r.source())
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, false, mgerrors.ErrDataDecode(err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, false, mgerrors.ErrContentInvalid(r.source())
		}

		switch key {
		case "header":
			if err := readHeader(dec, ts); err != nil {
				return nil, false, err
			}

		case "signals":
			if err := readSignalDefinitions(dec, ts); err != nil {
				return nil, false, err
			}
			if pending != nil {
				storeRows(ts, pending, opts, &aborted)
				pending = nil
			}

		case "data":
			rows, stop, err := readData(dec, ts, opts)
			if err != nil {
				return nil, false, err
			}
			aborted = aborted || stop
			if ts.NSignals() == 0 {
				pending = rows
			}

		default:
			// Unknown keys are skipped for forward compatibility.
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, false, mgerrors.ErrDataDecode(err)
			}
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, false, mgerrors.ErrContentInvalid(r.source())
	}

	if dataURI := ts.DataURI(); len(dataURI) > 0 && !opts.MetadataOnly {
		if err := r.readBinaryFile(ts, dataURI); err != nil {
			slog.Warn(fmt.Sprintf("Unable to read binary data from %s (%v)", dataURI, err))
		}
	}

	return ts, aborted, nil
}

func (r *Reader) readBinaryFile(ts *series.TimeSeries, dataURI string) error {
	path := dataURI
	if !filepath.IsAbs(path) {
		if len(r.file) == 0 {
			return mgerrors.NewCodecError(nil, "relative dataUri requires a file source")
		}
		path = filepath.Join(filepath.Dir(r.file), path)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ReadBinaryData(ts, f)
}

func readHeader(dec *json.Decoder, ts *series.TimeSeries) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return mgerrors.ErrDataDecode(err)
		}
		key, ok := tok.(string)
		if !ok {
			return mgerrors.NewCodecError(nil, "malformed header")
		}
		value, err := readValue(dec)
		if err != nil {
			return err
		}
		if err := ts.SetProperty(key, value); err != nil {
			slog.Debug(fmt.Sprintf("Skipping header property: %s", key))
		}
	}
	return expectDelim(dec, '}')
}

// readValue reads any JSON value. Numbers become float64 or int64,
// arrays of numbers become []float64, other arrays []any and objects
// map[string]any.
func readValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, mgerrors.ErrDataDecode(err)
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			object := map[string]any{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, mgerrors.ErrDataDecode(err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, mgerrors.NewCodecError(nil, "malformed object")
				}
				value, err := readValue(dec)
				if err != nil {
					return nil, err
				}
				object[key] = value
			}
			if err := expectDelim(dec, '}'); err != nil {
				return nil, err
			}
			return object, nil

		case '[':
			array := []any{}
			for dec.More() {
				value, err := readValue(dec)
				if err != nil {
					return nil, err
				}
				array = append(array, value)
			}
			if err := expectDelim(dec, ']'); err != nil {
				return nil, err
			}
			return asFloatSlice(array), nil
		}
		return nil, mgerrors.NewCodecError(nil, "unexpected delimiter")

	case json.Number:
		return parseNumber(t), nil

	default:
		// string, bool or nil.
		return tok, nil
	}
}

// asFloatSlice converts an all-numeric array to []float64, keeping
// mixed arrays as []any.
func asFloatSlice(array []any) any {
	values := make([]float64, len(array))
	for i, v := range array {
		switch n := v.(type) {
		case float64:
			values[i] = n
		case int64:
			values[i] = float64(n)
		default:
			return array
		}
	}
	return values
}

func parseNumber(n json.Number) any {
	if strings.ContainsAny(n.String(), ".eE") {
		f, _ := n.Float64()
		return f
	}
	i, err := n.Int64()
	if err != nil {
		f, _ := n.Float64()
		return f
	}
	return i
}

// signalDefinition mirrors one entry of the "signals" array.
type signalDefinition struct {
	Name        *string `json:"name"`
	Description string  `json:"description"`
	Quantity    string  `json:"quantity"`
	Unit        string  `json:"unit"`
	ValueType   *string `json:"valueType"`
	Dimensions  int     `json:"dimensions"`
	MaxSize     int     `json:"maxSize"`
}

func readSignalDefinitions(dec *json.Decoder, ts *series.TimeSeries) error {
	if err := expectDelim(dec, '['); err != nil {
		return err
	}
	for dec.More() {
		var def signalDefinition
		if err := dec.Decode(&def); err != nil {
			return mgerrors.ErrDataDecode(err)
		}
		if s := buildSignal(def); s != nil {
			ts.AddSignal(s)
		}
	}
	return expectDelim(dec, ']')
}

func buildSignal(def signalDefinition) *signal.Signal {
	if def.Name == nil {
		slog.Warn("Signal name is missing. Skip signal.")
		return nil
	}
	if def.ValueType == nil {
		slog.Warn("Signal value type is missing. Skip signal.")
		return nil
	}

	valueType, ok := signal.GetByName(*def.ValueType)
	if !ok {
		slog.Warn(fmt.Sprintf("Unrecognized value type: %s. Using float instead.", *def.ValueType))
		valueType = signal.Float
	}

	nDimensions := def.Dimensions
	if nDimensions <= 0 {
		nDimensions = 1
	}

	s := signal.New(*def.Name, def.Description, def.Quantity, def.Unit, valueType, nDimensions)
	if valueType == signal.String && def.MaxSize > 0 {
		s.SetSize(def.MaxSize)
	}
	return s
}

// readData reads the "data" array. When the signal definitions have
// not been seen yet the raw rows are returned so the caller can store
// them later.
func readData(dec *json.Decoder, ts *series.TimeSeries, opts ReadOptions) ([][]any, bool, error) {
	if err := expectDelim(dec, '['); err != nil {
		return nil, false, err
	}

	rows := [][]any{}
	deferred := ts.NSignals() == 0
	aborted := false
	nRows := 0

	for dec.More() {
		row, err := readRow(dec)
		if err != nil {
			return nil, false, err
		}
		if opts.MetadataOnly || aborted {
			continue
		}
		if deferred {
			rows = append(rows, row)
			continue
		}

		storeRow(ts, row)
		nRows++
		if opts.Listener != nil && !opts.Listener(ts, nRows) {
			aborted = true
		}
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, false, err
	}

	if opts.MetadataOnly {
		return nil, false, nil
	}
	return rows, aborted, nil
}

// readRow reads one data row: a JSON array with one entry per signal,
// where multi-dimensional signals nest an inner array.
func readRow(dec *json.Decoder) ([]any, error) {
	value, err := readValue(dec)
	if err != nil {
		return nil, err
	}
	switch row := value.(type) {
	case []any:
		return row, nil
	case []float64:
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		return cells, nil
	}
	return nil, mgerrors.NewCodecError(nil, "malformed data row")
}

func storeRows(ts *series.TimeSeries, rows [][]any, opts ReadOptions, aborted *bool) {
	for i, row := range rows {
		if *aborted {
			return
		}
		storeRow(ts, row)
		if opts.Listener != nil && !opts.Listener(ts, i+1) {
			*aborted = true
		}
	}
}

func storeRow(ts *series.TimeSeries, row []any) {
	for signalNo, s := range ts.Signals() {
		if signalNo >= len(row) {
			break
		}
		cell := row[signalNo]

		if s.Dimensions() > 1 {
			values, _ := cell.([]any)
			if floats, ok := cell.([]float64); ok {
				values = make([]any, len(floats))
				for i, v := range floats {
					values[i] = v
				}
			}
			for dimension := 0; dimension < s.Dimensions(); dimension++ {
				var value any
				if dimension < len(values) {
					value = values[dimension]
				}
				s.AddValue(dimension, value)
			}
			continue
		}

		s.AddValue(0, cell)
	}
}

func expectDelim(dec *json.Decoder, delim json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return mgerrors.ErrDataDecode(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != delim {
		return mgerrors.NewCodecError(nil, fmt.Sprintf("expected %q", delim))
	}
	return nil
}
