// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/geosoft-as/timeseries-io/pkg/connection"
	"github.com/geosoft-as/timeseries-io/pkg/series"
	"github.com/geosoft-as/timeseries-io/pkg/signal"
)

// Feed ties a sample vector to a connection channel and records the
// received samples as rows of a time series.
type Feed struct {
	Channel string
	Vector  *Vector[float64]

	conn       connection.Connection
	series     *series.TimeSeries
	timeSignal *signal.Signal
}

func NewFeed(conn connection.Connection, channel string, signals []string) *Feed {
	f := Feed{
		Channel: channel,
		Vector:  NewVector[float64](channel),
		conn:    conn,
	}
	f.Vector.Add(signals)

	f.series = series.New()
	f.series.SetName(channel)
	f.timeSignal = signal.New("time", "", "time", "s", signal.DateTime, 1)
	f.series.AddSignal(f.timeSignal)
	for _, name := range signals {
		f.series.AddSignal(signal.New(name, "", "", "", signal.Float, 1))
	}
	return &f
}

// Series returns the time series recorded so far.
func (f *Feed) Series() *series.TimeSeries {
	return f.series
}

// Publish sends the changed samples of the vector on the feed channel.
func (f *Feed) Publish() error {
	buf, err := f.Vector.Encode()
	if err != nil {
		return err
	}
	slog.Debug(fmt.Sprintf("Feed: publish: %s (%d bytes)", f.Channel, buf.Len()))
	return f.conn.SendMessage(buf.Bytes(), f.Channel)
}

// Receive waits for the next message on the feed channel and applies
// it to the vector. Messages for other channels are dropped.
func (f *Feed) Receive(immediate bool) error {
	msg, channel, err := f.conn.WaitMessage(immediate)
	if err != nil {
		return err
	}
	if channel != f.Channel {
		slog.Debug(fmt.Sprintf("Feed: dropping message for channel: %s", channel))
		return nil
	}
	return f.Vector.Decode(bytes.NewBuffer(msg))
}

// Record appends the current vector values as a row of the time
// series at the given time. Samples not present as signals yet, such
// as signals indexed after the feed was created, get their signal
// added with earlier rows absent.
func (f *Feed) Record(t time.Time) {
	index := f.timeSignal.Length()
	f.timeSignal.Append(t)
	for i := range f.Vector.Sample {
		sample := &f.Vector.Sample[i]
		s := f.series.FindSignal(sample.Name)
		if s == nil {
			s = signal.New(sample.Name, "", "", "", signal.Float, 1)
			f.series.AddSignal(s)
		}
		s.SetValue(index, 0, sample.Value)
	}
	f.Vector.ClearUpdated()
}
