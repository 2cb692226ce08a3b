// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

// Package connection provides the message transport used by live
// signal feeds. Messages are opaque byte payloads tagged with the
// feed channel they belong to.
package connection

import (
	"fmt"

	"github.com/geosoft-as/timeseries-io/pkg/errors"
)

type Connection interface {
	Connect(channels []string) (err error)
	Disconnect()
	SendMessage(msg []byte, channel string) (err error)
	WaitMessage(immediate bool) (msg []byte, channel string, err error)
	PeekMessage() (msg []byte, channel string, err error)
	Token() int32
}

type MsgBufferItem struct {
	Channel string
	Msg     []byte
}

// StubConnection is an in-memory Connection for testing. Messages
// pushed with PushMessage are returned by WaitMessage; sent messages
// are kept on the Trace.
type StubConnection struct {
	Stack       []MsgBufferItem
	Trace       []MsgBufferItem
	SendToStack bool
	token       int32
}

func (s *StubConnection) Token() int32 {
	s.token += 1
	return s.token
}

func (s *StubConnection) Connect(channels []string) (err error) {
	return nil
}

func (s *StubConnection) Disconnect() {

}

func (s *StubConnection) SendMessage(msg []byte, channel string) (err error) {
	// Deep copy, callers may reuse the message buffer.
	_msg := make([]byte, len(msg))
	copy(_msg, msg)

	if s.SendToStack {
		s.Stack = append(s.Stack, MsgBufferItem{Channel: channel, Msg: _msg})
	}
	s.Trace = append(s.Trace, MsgBufferItem{Channel: channel, Msg: _msg})
	return nil
}

func (s *StubConnection) WaitMessage(immediate bool) (msg []byte, channel string, err error) {
	if len(s.Stack) > 0 {
		m := s.Stack[0]
		s.Stack = s.Stack[1:]
		s.Trace = append(s.Trace, m)
		return m.Msg, m.Channel, nil
	}
	return nil, "", errors.ErrNoMessage
}

func (s *StubConnection) PeekMessage() (msg []byte, channel string, err error) {
	if len(s.Stack) > 0 {
		m := s.Stack[0]
		return m.Msg, m.Channel, nil
	}
	return nil, "", errors.ErrNoMessage
}

func (s *StubConnection) PushMessage(msg []byte, channel string) (err error) {
	_msg := make([]byte, len(msg))
	copy(_msg, msg)
	s.Stack = append(s.Stack, MsgBufferItem{Channel: channel, Msg: _msg})
	return nil
}

func (s *StubConnection) TraceMessage(index int) (msg []byte, channel string, err error) {
	if len(s.Trace) > index {
		m := s.Trace[index]
		return m.Msg, m.Channel, nil
	}
	return nil, "", fmt.Errorf("no message at index (%d) available on connection Trace", index)
}

func (s *StubConnection) Reset() {
	s.Stack = []MsgBufferItem{}
	s.Trace = []MsgBufferItem{}
}
