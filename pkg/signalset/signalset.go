// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

// Package signalset loads and writes SignalSet YAML documents. A
// SignalSet declares the signals of an acquisition before any data
// exists, and converts to an empty time series ready for capture.
package signalset

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	mgerrors "github.com/geosoft-as/timeseries-io/pkg/errors"
	"github.com/geosoft-as/timeseries-io/pkg/series"
	"github.com/geosoft-as/timeseries-io/pkg/signal"
)

// Doc is one YAML document of kind SignalSet.
type Doc struct {
	File     string `yaml:"-"`
	Kind     string `yaml:"kind"`
	Metadata struct {
		Name        string            `yaml:"name"`
		Annotations map[string]any    `yaml:"annotations,omitempty"`
		Labels      map[string]string `yaml:"labels,omitempty"`
	} `yaml:"metadata"`
	Spec Spec `yaml:"spec"`
}

type Spec struct {
	Signals []SignalSpec `yaml:"signals"`
}

type SignalSpec struct {
	Signal      string `yaml:"signal"`
	Description string `yaml:"description,omitempty"`
	Quantity    string `yaml:"quantity,omitempty"`
	Unit        string `yaml:"unit,omitempty"`
	ValueType   string `yaml:"valueType,omitempty"`
	Dimensions  int    `yaml:"dimensions,omitempty"`
}

// Load reads all SignalSet documents from the given YAML file.
// Documents of other kinds are skipped.
func Load(file string) ([]Doc, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, mgerrors.NewCodecError(err, fmt.Sprintf("Unable to open file: %s", file))
	}

	docList := []Doc{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc Doc
		if err := decoder.Decode(&doc); err != nil {
			if err == io.EOF {
				break
			}
			return nil, mgerrors.NewCodecError(err, fmt.Sprintf("Unable to parse file: %s", file))
		}
		if doc.Kind != "SignalSet" {
			slog.Debug(fmt.Sprintf("Skipping document;  kind=%s", doc.Kind))
			continue
		}
		doc.File = file
		docList = append(docList, doc)
		slog.Debug(fmt.Sprintf("SignalSet loaded;  name=%s signals=%d", doc.Metadata.Name, len(doc.Spec.Signals)))
	}
	return docList, nil
}

// Write writes the documents to the given YAML file, one document per
// YAML stream entry.
func Write(file string, docList []Doc) error {
	f, err := os.Create(file)
	if err != nil {
		return mgerrors.NewCodecError(err, fmt.Sprintf("Unable to create file: %s", file))
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	for _, doc := range docList {
		doc.Kind = "SignalSet"
		if err := encoder.Encode(doc); err != nil {
			return mgerrors.NewCodecError(err, fmt.Sprintf("Unable to write file: %s", file))
		}
	}
	return encoder.Close()
}

// FromTimeSeries captures the signal declarations of a time series as
// a SignalSet document.
func FromTimeSeries(ts *series.TimeSeries) Doc {
	doc := Doc{Kind: "SignalSet"}
	doc.Metadata.Name = ts.Name()
	for _, s := range ts.Signals() {
		doc.Spec.Signals = append(doc.Spec.Signals, SignalSpec{
			Signal:      s.Name(),
			Description: s.Description(),
			Quantity:    s.Quantity(),
			Unit:        s.Unit(),
			ValueType:   s.ValueType().Name(),
			Dimensions:  s.Dimensions(),
		})
	}
	return doc
}

// TimeSeries creates an empty time series holding the declared
// signals. Unknown value types fall back to float.
func (d *Doc) TimeSeries() *series.TimeSeries {
	ts := series.New()
	if len(d.Metadata.Name) > 0 {
		ts.SetName(d.Metadata.Name)
	}
	for _, spec := range d.Spec.Signals {
		valueType, ok := signal.GetByName(spec.ValueType)
		if !ok {
			slog.Warn(fmt.Sprintf("Unknown value type: %s, using float", spec.ValueType))
			valueType = signal.Float
		}
		dimensions := spec.Dimensions
		if dimensions <= 0 {
			dimensions = 1
		}
		ts.AddSignal(signal.New(spec.Signal, spec.Description, spec.Quantity, spec.Unit, valueType, dimensions))
	}
	return ts
}
