// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

// Package convert implements the tscli convert command. Any supported
// input format is written as TimeSeries.JSON, optionally with the bulk
// data in a separate binary file.
package convert

import (
	"flag"
	"fmt"
	"log/slog"

	"github.com/geosoft-as/timeseries-io/internal/pkg/command"
	"github.com/geosoft-as/timeseries-io/internal/pkg/format"
	"github.com/geosoft-as/timeseries-io/pkg/tsjson"
)

type ConvertCommand struct {
	command.Command

	inputFile  string
	outputFile string
	dataURI    string
}

func NewConvertCommand(name string) *ConvertCommand {
	c := &ConvertCommand{
		Command: command.Command{
			Name:    name,
			FlagSet: flag.NewFlagSet(name, flag.ExitOnError),
		},
	}
	c.FlagSet().StringVar(&c.inputFile, "input", "", "path to input file (TimeSeries.JSON, GPX or SignalSet YAML)")
	c.FlagSet().StringVar(&c.outputFile, "output", "", "path to output TimeSeries.JSON file")
	c.FlagSet().StringVar(&c.dataURI, "dataUri", "", "write bulk data to this binary file")
	return c
}

func (c ConvertCommand) Name() string {
	return c.Command.Name
}

func (c ConvertCommand) FlagSet() *flag.FlagSet {
	return c.Command.FlagSet
}

func (c *ConvertCommand) Parse(args []string) error {
	if err := c.FlagSet().Parse(args); err != nil {
		return err
	}
	if len(c.inputFile) == 0 || len(c.outputFile) == 0 {
		return fmt.Errorf("both -input and -output must be given")
	}
	return nil
}

func (c *ConvertCommand) Run() error {
	list, err := format.ReadFile(c.inputFile)
	if err != nil {
		return err
	}
	slog.Info(fmt.Sprintf("Read %d time series from %s", len(list), c.inputFile))

	if len(c.dataURI) > 0 {
		if len(list) == 1 {
			list[0].SetDataURI(c.dataURI)
		} else {
			slog.Warn("Option -dataUri applies to single series input only, ignored")
		}
	}

	writer := tsjson.NewFileWriter(c.outputFile)
	for _, ts := range list {
		if err := writer.Write(ts); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}
	slog.Info(fmt.Sprintf("Wrote %s", c.outputFile))
	return nil
}
