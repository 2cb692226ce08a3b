// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

package errors

import "fmt"

var (
	ErrNoIndexSignal   = fmt.Errorf("time series has no index signal")
	ErrNoDatetimeIndex = fmt.Errorf("index signal is not of datetime type")
	ErrDuplicateSignal = func(name string) error {
		return NewSeriesError(nil, fmt.Sprintf("signal exists: %q", name))
	}
	ErrInvalidProperty = func(key string) error {
		return NewSeriesError(nil, fmt.Sprintf("invalid property value for key: %q", key))
	}
)

type SeriesError struct {
	msg string
	err error
}

func NewSeriesError(e error, msg string) *SeriesError {
	return &SeriesError{msg: msg, err: e}
}

func (e *SeriesError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("series: %q - %v", e.msg, e.err)
	} else {
		return fmt.Sprintf("series: %q", e.msg)
	}
}

func (e *SeriesError) Unwrap() error {
	return e.err
}
