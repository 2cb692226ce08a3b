// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

package tsjson

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	mgerrors "github.com/geosoft-as/timeseries-io/pkg/errors"
	"github.com/geosoft-as/timeseries-io/pkg/series"
	"github.com/geosoft-as/timeseries-io/pkg/signal"
)

// Writer writes TimeSeries.JSON content to a stream or file. Multiple
// time series can be written in sequence; additional rows can be
// appended to the last one with Append. Close finishes the stream.
//
// If the header holds a dataUri property and the writer is file based,
// the bulk data is written in binary form to that location instead of
// as JSON text.
type Writer struct {
	writer *bufio.Writer
	file   string
	osFile *os.File

	nEntries     int
	entryOpen    bool
	current      *series.TimeSeries
	nRowsWritten int
	binaryData   bool
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{writer: bufio.NewWriter(w)}
}

func NewFileWriter(path string) *Writer {
	return &Writer{file: path}
}

func (w *Writer) open() error {
	if w.writer != nil {
		return nil
	}
	f, err := os.Create(w.file)
	if err != nil {
		return mgerrors.NewCodecError(err, "unable to create file")
	}
	w.osFile = f
	w.writer = bufio.NewWriter(f)
	return nil
}

// Write writes the given time series as the next entry of the stream.
func (w *Writer) Write(ts *series.TimeSeries) error {
	if err := w.open(); err != nil {
		return err
	}

	if w.nEntries == 0 {
		fmt.Fprint(w.writer, "[\n")
	} else {
		w.closeEntry()
		fmt.Fprint(w.writer, ",\n")
	}
	w.nEntries++

	fmt.Fprint(w.writer, "  {\n")
	w.writeHeader(ts)
	w.writeSignalDefinitions(ts)
	fmt.Fprint(w.writer, "    \"data\": [")

	w.current = ts
	w.nRowsWritten = 0
	w.entryOpen = true
	w.binaryData = false

	if dataURI := ts.DataURI(); len(dataURI) > 0 && len(w.file) > 0 {
		w.binaryData = true
		if err := w.writeBinaryFile(ts, dataURI); err != nil {
			slog.Warn(fmt.Sprintf("Unable to write binary data to %s (%v)", dataURI, err))
		}
		return w.writer.Flush()
	}

	w.writeRows(ts, 0)
	return w.writer.Flush()
}

// Append writes the rows added to the last written time series since
// the previous Write or Append call.
func (w *Writer) Append(ts *series.TimeSeries) error {
	if !w.entryOpen || w.current != ts {
		return mgerrors.NewCodecError(nil, "nothing to append to")
	}
	if w.binaryData {
		return mgerrors.NewCodecError(nil, "append not supported for binary data")
	}
	w.writeRows(ts, w.nRowsWritten)
	return w.writer.Flush()
}

// Close finishes the stream and closes the backing file if any.
func (w *Writer) Close() error {
	if w.writer == nil {
		return nil
	}
	if w.nEntries > 0 {
		w.closeEntry()
		fmt.Fprint(w.writer, "\n]\n")
	}
	if err := w.writer.Flush(); err != nil {
		return err
	}
	if w.osFile != nil {
		return w.osFile.Close()
	}
	return nil
}

func (w *Writer) closeEntry() {
	if !w.entryOpen {
		return
	}
	if w.nRowsWritten > 0 {
		fmt.Fprint(w.writer, "\n    ")
	}
	fmt.Fprint(w.writer, "]\n  }")
	w.entryOpen = false
}

func (w *Writer) writeHeader(ts *series.TimeSeries) {
	fmt.Fprint(w.writer, "    \"header\": {")
	keys := ts.Properties()
	for i, key := range keys {
		if i > 0 {
			fmt.Fprint(w.writer, ",")
		}
		fmt.Fprintf(w.writer, "\n      %s: %s", quote(key), jsonValue(ts.Property(key)))
	}
	if len(keys) > 0 {
		fmt.Fprint(w.writer, "\n    ")
	}
	fmt.Fprint(w.writer, "},\n")
}

func (w *Writer) writeSignalDefinitions(ts *series.TimeSeries) {
	fmt.Fprint(w.writer, "    \"signals\": [")
	for i, s := range ts.Signals() {
		if i > 0 {
			fmt.Fprint(w.writer, ",")
		}
		fmt.Fprint(w.writer, "\n      {\n")
		fmt.Fprintf(w.writer, "        \"name\": %s,\n", quote(s.Name()))
		fmt.Fprintf(w.writer, "        \"description\": %s,\n", quoteOrNull(s.Description()))
		fmt.Fprintf(w.writer, "        \"quantity\": %s,\n", quoteOrNull(s.Quantity()))
		fmt.Fprintf(w.writer, "        \"unit\": %s,\n", quoteOrNull(s.Unit()))
		fmt.Fprintf(w.writer, "        \"valueType\": %s,\n", quote(s.ValueType().Name()))
		fmt.Fprintf(w.writer, "        \"dimensions\": %d", s.Dimensions())
		if s.ValueType() == signal.String && s.Size() > 0 {
			fmt.Fprintf(w.writer, ",\n        \"maxSize\": %d", s.Size())
		}
		fmt.Fprint(w.writer, "\n      }")
	}
	if ts.NSignals() > 0 {
		fmt.Fprint(w.writer, "\n    ")
	}
	fmt.Fprint(w.writer, "],\n")
}

func (w *Writer) writeRows(ts *series.TimeSeries, from int) {
	n := ts.Length()
	for index := from; index < n; index++ {
		if w.nRowsWritten > 0 {
			fmt.Fprint(w.writer, ",")
		}
		fmt.Fprint(w.writer, "\n      [")
		for signalNo, s := range ts.Signals() {
			if signalNo > 0 {
				fmt.Fprint(w.writer, ", ")
			}
			if s.Dimensions() > 1 {
				fmt.Fprint(w.writer, "[")
				for dimension := 0; dimension < s.Dimensions(); dimension++ {
					if dimension > 0 {
						fmt.Fprint(w.writer, ", ")
					}
					fmt.Fprint(w.writer, formatValue(s.Value(index, dimension)))
				}
				fmt.Fprint(w.writer, "]")
			} else {
				fmt.Fprint(w.writer, formatValue(s.Value(index, 0)))
			}
		}
		fmt.Fprint(w.writer, "]")
		w.nRowsWritten++
	}
}

func (w *Writer) writeBinaryFile(ts *series.TimeSeries, dataURI string) error {
	path := dataURI
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(w.file), path)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteBinaryData(ts, f)
}

// formatValue renders one signal value as JSON text. Absent values
// render as null, datetimes in ISO 8601.
func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return quote(v.UTC().Format(ISO8601))
	case string:
		return quote(v)
	}
	return "null"
}

func jsonValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case time.Time:
		return quote(v.UTC().Format(ISO8601))
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case []float64:
		out := "["
		for i, f := range v {
			if i > 0 {
				out += ", "
			}
			out += strconv.FormatFloat(f, 'g', -1, 64)
		}
		return out + "]"
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "null"
		}
		return string(data)
	}
}

func quote(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

func quoteOrNull(s string) string {
	if len(s) == 0 {
		return "null"
	}
	return quote(s)
}
