// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

package connection

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/geosoft-as/timeseries-io/pkg/errors"
)

func TestStubConnection(t *testing.T) {
	s := StubConnection{}
	assert.Nil(t, s.Connect([]string{"gps"}))

	s.PushMessage([]byte("hello"), "gps")
	msg, channel, err := s.WaitMessage(false)
	assert.Nil(t, err)
	assert.Equal(t, "gps", channel)
	assert.Equal(t, []byte("hello"), msg)

	_, _, err = s.WaitMessage(false)
	assert.Equal(t, errors.ErrNoMessage, err)
}

func TestStubConnectionPeek(t *testing.T) {
	s := StubConnection{}

	_, _, err := s.PeekMessage()
	assert.Equal(t, errors.ErrNoMessage, err)

	s.PushMessage([]byte("hello"), "gps")
	msg, channel, err := s.PeekMessage()
	assert.Nil(t, err)
	assert.Equal(t, "gps", channel)
	assert.Equal(t, []byte("hello"), msg)
	assert.Equal(t, 1, len(s.Stack), "peek does not consume")
}

func TestStubConnectionTrace(t *testing.T) {
	s := StubConnection{}
	s.SendMessage([]byte("one"), "a")
	s.SendMessage([]byte("two"), "b")

	msg, channel, err := s.TraceMessage(1)
	assert.Nil(t, err)
	assert.Equal(t, "b", channel)
	assert.Equal(t, []byte("two"), msg)

	_, _, err = s.TraceMessage(2)
	assert.NotNil(t, err)

	s.Reset()
	assert.Equal(t, 0, len(s.Trace))
}

func TestStubConnectionSendToStack(t *testing.T) {
	s := StubConnection{SendToStack: true}
	s.SendMessage([]byte("loop"), "a")

	msg, channel, err := s.WaitMessage(false)
	assert.Nil(t, err)
	assert.Equal(t, "a", channel)
	assert.Equal(t, []byte("loop"), msg)
}

func TestStubConnectionToken(t *testing.T) {
	s := StubConnection{}
	for i := range int32(5) {
		assert.Equal(t, i+1, s.Token())
	}
}

func TestRedisToken(t *testing.T) {
	r := RedisConnection{}
	for i := range int32(5) {
		assert.Equal(t, i+1, r.Token())
	}
}

func redisAvailable() bool {
	conn, err := net.DialTimeout("tcp", "localhost:6379", 200*time.Millisecond)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func TestRedisConnection(t *testing.T) {
	if !redisAvailable() {
		t.Skip("redis not available")
	}

	r := RedisConnection{Uid: 42, Url: "redis://localhost:6379"}
	err := r.Connect([]string{})
	assert.Nil(t, err)
	assert.Equal(t, "ts.feed.client.42", r.endpoint.pull)
	assert.Equal(t, "ts.feed.hub", r.endpoint.push)
	assert.Equal(t, 60*time.Second, r.endpoint.recvTimeout)

	c := r.client.Ping(r.ctx)
	assert.Nil(t, c.Err())

	r.Disconnect()
}

func TestRedisChannelMessage(t *testing.T) {
	if !redisAvailable() {
		t.Skip("redis not available")
	}

	r := RedisConnection{Uid: 42, Url: "redis://localhost:6379"}
	err := r.Connect([]string{})
	assert.Nil(t, err)
	r.client.FlushAll(r.ctx)

	r.SendMessage([]byte("hello world"), "gps")
	c := r.client.RPop(r.ctx, r.endpoint.push)
	assert.Nil(t, c.Err())
	r.client.LPush(r.ctx, r.endpoint.pull, c.Val())
	msg, channel, err := r.WaitMessage(false)
	assert.Nil(t, err)
	assert.Equal(t, "gps", channel)
	assert.Equal(t, []byte("hello world"), msg)

	r.Disconnect()
}

func TestRedisConnectNoUid(t *testing.T) {
	r := RedisConnection{Url: "redis://localhost:6379"}
	err := r.Connect([]string{})
	assert.NotNil(t, err)
}
