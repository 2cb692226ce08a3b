// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

// Package chart implements the tscli chart command, plotting the
// signals of a time series as a line chart.
package chart

import (
	"flag"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/elliotchance/orderedmap/v3"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/snapshot-chromedp/render"

	"github.com/geosoft-as/timeseries-io/internal/pkg/command"
	"github.com/geosoft-as/timeseries-io/internal/pkg/format"
	"github.com/geosoft-as/timeseries-io/pkg/series"
	"github.com/geosoft-as/timeseries-io/pkg/signal"
)

type ChartCommand struct {
	command.Command

	title      string
	signals    string
	inputFile  string
	outputFile string
	html       bool
}

func NewChartCommand(name string) *ChartCommand {
	c := &ChartCommand{
		Command: command.Command{
			Name:    name,
			FlagSet: flag.NewFlagSet(name, flag.ExitOnError),
		},
	}
	c.FlagSet().StringVar(&c.title, "title", "", "chart title (defaults to the time series name)")
	c.FlagSet().StringVar(&c.signals, "signals", "", "comma separated signal names (defaults to all numeric signals)")
	c.FlagSet().StringVar(&c.inputFile, "input", "", "path to input file (TimeSeries.JSON or GPX)")
	c.FlagSet().StringVar(&c.outputFile, "output", "", "path to write generated chart")
	c.FlagSet().BoolVar(&c.html, "html", false, "write HTML instead of rendering a PNG")
	return c
}

func (c ChartCommand) Name() string {
	return c.Command.Name
}

func (c ChartCommand) FlagSet() *flag.FlagSet {
	return c.Command.FlagSet
}

func (c *ChartCommand) Parse(args []string) error {
	if err := c.FlagSet().Parse(args); err != nil {
		return err
	}
	if len(c.inputFile) == 0 {
		return fmt.Errorf("option -input must be given")
	}
	if len(c.outputFile) == 0 {
		ext := ".png"
		if c.html {
			ext = ".html"
		}
		c.outputFile = strings.TrimSuffix(c.inputFile, path.Ext(c.inputFile)) + ext
	}
	return nil
}

func (c *ChartCommand) Run() error {
	ts, err := func() (*series.TimeSeries, error) {
		list, err := format.ReadFile(c.inputFile)
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("no time series in file: %s", c.inputFile)
		}
		return list[0], nil
	}()
	if err != nil {
		return err
	}

	line, err := c.generateChart(ts)
	if err != nil {
		return err
	}

	fmt.Printf("writing chart: %s\n", c.outputFile)
	if c.html {
		f, err := os.Create(c.outputFile)
		if err != nil {
			return err
		}
		defer f.Close()
		return line.Render(f)
	}
	config := render.NewSnapshotConfig(line.RenderContent(), c.outputFile)
	config.KeepHtml = false
	return render.MakeSnapshot(config)
}

func (c *ChartCommand) getLines(ts *series.TimeSeries) *orderedmap.OrderedMap[string, []opts.LineData] {
	selected := map[string]bool{}
	for _, name := range strings.Split(c.signals, ",") {
		if name = strings.TrimSpace(name); len(name) > 0 {
			selected[name] = true
		}
	}

	lines := orderedmap.NewOrderedMap[string, []opts.LineData]()
	for _, s := range ts.Signals() {
		if s == ts.IndexSignal() {
			continue
		}
		if len(selected) > 0 && !selected[s.Name()] {
			continue
		}
		if len(selected) == 0 && s.ValueType() != signal.Float && s.ValueType() != signal.Integer {
			continue
		}
		items := make([]opts.LineData, 0, ts.Length())
		for index := range ts.Length() {
			items = append(items, opts.LineData{Value: s.ValueAt(index)})
		}
		lines.Set(s.Name(), items)
	}
	return lines
}

func (c *ChartCommand) generateChart(ts *series.TimeSeries) (*charts.Line, error) {
	lines := c.getLines(ts)
	if lines.Len() == 0 {
		return nil, fmt.Errorf("no plottable signals in file: %s", c.inputFile)
	}

	title := c.title
	if len(title) == 0 {
		title = ts.Name()
	}

	index := ts.IndexSignal()
	axis := make([]string, 0, ts.Length())
	for i := range ts.Length() {
		axis = append(axis, formatIndex(index.ValueAt(i)))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithAnimation(false),
		charts.WithTitleOpts(opts.Title{
			Title: title,
			Left:  "center",
		}),
		charts.WithLegendOpts(opts.Legend{Top: "bottom"}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:         index.Name(),
			NameLocation: "center",
			NameGap:      30,
		}),
	)
	x := line.SetXAxis(axis)
	for name, items := range lines.AllFromFront() {
		x.AddSeries(name, items).SetSeriesOptions(
			charts.WithLineStyleOpts(opts.LineStyle{
				Width: 2,
			}),
			charts.WithLineChartOpts(opts.LineChart{
				Smooth: opts.Bool(true),
			}),
		)
	}
	return line, nil
}

func formatIndex(value any) string {
	switch v := value.(type) {
	case time.Time:
		return v.Format("15:04:05")
	case nil:
		return ""
	}
	return fmt.Sprintf("%v", value)
}
