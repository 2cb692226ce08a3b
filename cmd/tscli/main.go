// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/geosoft-as/timeseries-io/internal/app/chart"
	"github.com/geosoft-as/timeseries-io/internal/app/convert"
	"github.com/geosoft-as/timeseries-io/internal/app/info"
	"github.com/geosoft-as/timeseries-io/internal/app/signalset"
	"github.com/geosoft-as/timeseries-io/internal/pkg/command"
)

var logger = flag.Int("logger", 3, "log level (select between 0..4)")

var cmds = []command.CommandRunner{
	command.NewHelpCommand("help"),
	convert.NewConvertCommand("convert"),
	info.NewInfoCommand("info"),
	signalset.NewSignalSetCommand("signalset"),
	chart.NewChartCommand("chart"),
}

var usage = `
TimeSeries.JSON supporting tools.

Usage:

	tscli [-logger N] <command> [option]

`

func printUsage() {
	command.PrintUsage(usage[1:], cmds)
}

func main() {
	os.Exit(main_())
}

func main_() int {
	flag.Usage = printUsage
	// Global flags come before the command; flag parsing stops at the
	// first non-flag argument.
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		return 1
	}
	slog.SetDefault(NewLogger(*logger))
	if err := command.DispatchCommand(args[0], args[1:], cmds); err != nil {
		slog.Error(err.Error())
		return 2
	}

	return 0
}
