// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

package errors

import "fmt"

var (
	ErrVectorLenMismatch = func(a int, b int) error {
		return NewStreamError(nil, fmt.Sprintf("decode vector length mismatch: %d != %d", a, b))
	}
)

type StreamError struct {
	msg string
	err error
}

func NewStreamError(e error, msg string) *StreamError {
	return &StreamError{msg: msg, err: e}
}

func (e *StreamError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("stream: %q - %v", e.msg, e.err)
	} else {
		return fmt.Sprintf("stream: %q", e.msg)
	}
}

func (e *StreamError) Unwrap() error {
	return e.err
}
