// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

// Package info implements the tscli info command.
package info

import (
	"flag"
	"fmt"

	"github.com/geosoft-as/timeseries-io/internal/pkg/command"
	"github.com/geosoft-as/timeseries-io/internal/pkg/format"
)

type InfoCommand struct {
	command.Command

	inputFile string
}

func NewInfoCommand(name string) *InfoCommand {
	c := &InfoCommand{
		Command: command.Command{
			Name:    name,
			FlagSet: flag.NewFlagSet(name, flag.ExitOnError),
		},
	}
	c.FlagSet().StringVar(&c.inputFile, "input", "", "path to input file (TimeSeries.JSON, GPX or SignalSet YAML)")
	return c
}

func (c InfoCommand) Name() string {
	return c.Command.Name
}

func (c InfoCommand) FlagSet() *flag.FlagSet {
	return c.Command.FlagSet
}

func (c *InfoCommand) Parse(args []string) error {
	if err := c.FlagSet().Parse(args); err != nil {
		return err
	}
	if len(c.inputFile) == 0 {
		return fmt.Errorf("option -input must be given")
	}
	return nil
}

func (c *InfoCommand) Run() error {
	list, err := format.ReadFile(c.inputFile)
	if err != nil {
		return err
	}

	fmt.Printf("File: %s (%s, %d time series)\n", c.inputFile, format.Detect(c.inputFile), len(list))
	for i, ts := range list {
		fmt.Printf("\nTime series #%d\n", i)
		fmt.Print(ts.Summary())
		for _, s := range ts.Signals() {
			fmt.Printf("  %s\n", s)
		}
	}
	return nil
}
