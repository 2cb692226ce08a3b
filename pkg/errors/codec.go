// Copyright 2025 GeoSoft AS
//
// SPDX-License-Identifier: Apache-2.0

package errors

import "fmt"

var (
	ErrContentInvalid = func(source string) error {
		return NewCodecError(nil, fmt.Sprintf("invalid content: %q", source))
	}
	ErrSignalSkipped = func(m string) error { return NewCodecError(nil, m) }
	ErrDataDecode    = func(e error) error { return NewCodecError(e, "data decode failed") }
)

type CodecError struct {
	msg string
	err error
}

func NewCodecError(e error, msg string) *CodecError {
	return &CodecError{msg: msg, err: e}
}

func (e *CodecError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("codec: %q - %v", e.msg, e.err)
	} else {
		return fmt.Sprintf("codec: %q", e.msg)
	}
}

func (e *CodecError) Unwrap() error {
	return e.err
}
