// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

package series

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/geosoft-as/timeseries-io/pkg/signal"
)

var latencyNamePattern = regexp.MustCompile(`^([a-zA-Z_\s]*)(.*)$`)

// AddLatencySignal adds a latency tracking signal to the time series.
// The signal name gets a numeric suffix if it does not carry one
// already. The first such signal holds timestamps (milliseconds since
// epoch); signals added later hold the latency in milliseconds since
// the previous one. With isTotalLatency set, the signal instead holds
// the grand total since the initial timestamp and no suffix is added.
// Returns the actual name of the signal added.
func AddLatencySignal(t *TimeSeries, signalName, signalDescription string, isTotalLatency bool) string {
	baseName := signalName
	suffixString := ""
	if m := latencyNamePattern.FindStringSubmatch(signalName); m != nil {
		baseName = m[1]
		suffixString = m[2]
	}

	suffix, err := strconv.Atoi(suffixString)
	if err != nil {
		suffix = 0
	}
	for t.FindSignal(fmt.Sprintf("%s%d", baseName, suffix)) != nil {
		suffix++
	}

	newName := baseName
	if !isTotalLatency {
		newName = fmt.Sprintf("%s%d", baseName, suffix)
	}
	latencySignal := signal.New(newName, signalDescription, "time", "ms", signal.Integer, 1)

	// Existing latency signals need not be a consecutive sequence.
	existing := []*signal.Signal{}
	for n := 0; n < 9999; n++ {
		if s := t.FindSignal(fmt.Sprintf("%s%d", baseName, n)); s != nil {
			existing = append(existing, s)
		}
	}

	now := time.Now().UnixMilli()

	for i := 0; i < t.Length(); i++ {
		total := now
		absent := false
		for _, s := range existing {
			value, ok := s.ValueAt(i).(int64)
			if !ok {
				absent = true
				break
			}
			// In the total latency case only the initial timestamp is
			// subtracted, not the intermediate latencies.
			if isTotalLatency && value < 10000000 {
				value = 0
			}
			total -= value
		}
		if absent {
			latencySignal.Append(nil)
		} else {
			latencySignal.Append(total)
		}
	}

	t.AddSignal(latencySignal)
	return newName
}
