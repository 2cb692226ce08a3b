// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

package errors

import "fmt"

var (
	ErrInvalidDimension = func(dimension int) error {
		return NewSignalError(nil, fmt.Sprintf("invalid dimension: %d", dimension))
	}
	ErrInvalidIndex = func(index int) error {
		return NewSignalError(nil, fmt.Sprintf("invalid index: %d", index))
	}
	ErrValueConvert = func(e error) error { return NewSignalError(e, "value conversion failed") }
)

type SignalError struct {
	msg string
	err error
}

func NewSignalError(e error, msg string) *SignalError {
	return &SignalError{msg: msg, err: e}
}

func (e *SignalError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("signal: %q - %v", e.msg, e.err)
	} else {
		return fmt.Sprintf("signal: %q", e.msg)
	}
}

func (e *SignalError) Unwrap() error {
	return e.err
}
