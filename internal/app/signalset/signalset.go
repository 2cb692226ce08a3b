// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

// Package signalset implements the tscli signalset command. A data
// file input has its signal declarations captured as a SignalSet YAML
// document; a SignalSet YAML input is expanded to an empty
// TimeSeries.JSON skeleton ready for capture.
package signalset

import (
	"flag"
	"fmt"
	"log/slog"

	"github.com/geosoft-as/timeseries-io/internal/pkg/command"
	"github.com/geosoft-as/timeseries-io/internal/pkg/format"
	setio "github.com/geosoft-as/timeseries-io/pkg/signalset"
	"github.com/geosoft-as/timeseries-io/pkg/tsjson"
)

type SignalSetCommand struct {
	command.Command

	inputFile  string
	outputFile string
}

func NewSignalSetCommand(name string) *SignalSetCommand {
	c := &SignalSetCommand{
		Command: command.Command{
			Name:    name,
			FlagSet: flag.NewFlagSet(name, flag.ExitOnError),
		},
	}
	c.FlagSet().StringVar(&c.inputFile, "input", "", "path to input file (TimeSeries.JSON, GPX or SignalSet YAML)")
	c.FlagSet().StringVar(&c.outputFile, "output", "", "path to output file (SignalSet YAML, or TimeSeries.JSON for YAML input)")
	return c
}

func (c SignalSetCommand) Name() string {
	return c.Command.Name
}

func (c SignalSetCommand) FlagSet() *flag.FlagSet {
	return c.Command.FlagSet
}

func (c *SignalSetCommand) Parse(args []string) error {
	if err := c.FlagSet().Parse(args); err != nil {
		return err
	}
	if len(c.inputFile) == 0 || len(c.outputFile) == 0 {
		return fmt.Errorf("both -input and -output must be given")
	}
	return nil
}

func (c *SignalSetCommand) Run() error {
	if format.Detect(c.inputFile) == format.SignalSet {
		return c.writeSkeleton()
	}
	return c.writeSignalSet()
}

// writeSkeleton expands a SignalSet YAML input to an empty
// TimeSeries.JSON file, one entry per document.
func (c *SignalSetCommand) writeSkeleton() error {
	docList, err := setio.Load(c.inputFile)
	if err != nil {
		return err
	}

	writer := tsjson.NewFileWriter(c.outputFile)
	for _, doc := range docList {
		if err := writer.Write(doc.TimeSeries()); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}
	slog.Info(fmt.Sprintf("Wrote %d empty time series to %s", len(docList), c.outputFile))
	return nil
}

func (c *SignalSetCommand) writeSignalSet() error {
	list, err := format.ReadFile(c.inputFile)
	if err != nil {
		return err
	}

	docList := []setio.Doc{}
	for _, ts := range list {
		docList = append(docList, setio.FromTimeSeries(ts))
	}
	if err := setio.Write(c.outputFile, docList); err != nil {
		return err
	}
	slog.Info(fmt.Sprintf("Wrote %d SignalSet documents to %s", len(docList), c.outputFile))
	return nil
}
