// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package review

import (
	"fmt"
)

// ErrorCodeT represents an error that is returned by the review package.
type ErrorCodeT uint32

const (
	// ErrorCodeInvalid is an invalid error code.
	ErrorCodeInvalid ErrorCodeT = 0

	// ErrorCodeIntegrity is returned when a required core attribute is
	// missing or malformed during hydration. This indicates a caller bug
	// or corrupted upstream data and is not recoverable.
	ErrorCodeIntegrity ErrorCodeT = 1

	// ErrorCodeSignatureInvalid is returned when a review signature does
	// not contain the expected number of fields.
	ErrorCodeSignatureInvalid ErrorCodeT = 2

	// ErrorCodeRatingInvalid is returned when rating text contains a token
	// that is not a known rating label.
	ErrorCodeRatingInvalid ErrorCodeT = 3

	// ErrorCodeLast is used by unit tests to verify that all error codes
	// have a human readable entry in the ErrorCodes map. This error will
	// never be returned.
	ErrorCodeLast ErrorCodeT = 4
)

var (
	// ErrorCodes contains the human readable errors.
	ErrorCodes = map[ErrorCodeT]string{
		ErrorCodeInvalid:          "error code invalid",
		ErrorCodeIntegrity:        "review integrity violation",
		ErrorCodeSignatureInvalid: "review signature invalid",
		ErrorCodeRatingInvalid:    "rating invalid",
	}
)

// Error is returned by the review package when a review cannot be decoded or
// a rating cannot be parsed. The ErrorContext contains the offending input.
type Error struct {
	ErrorCode    ErrorCodeT `json:"errorcode"`
	ErrorContext string     `json:"errorcontext,omitempty"`
}

// Error satisfies the error interface.
func (e Error) Error() string {
	if e.ErrorContext == "" {
		return ErrorCodes[e.ErrorCode]
	}
	return fmt.Sprintf("%v: %v", ErrorCodes[e.ErrorCode], e.ErrorContext)
}

// IsIntegrity returns whether the error is an integrity violation. Integrity
// violations include malformed signatures.
func (e Error) IsIntegrity() bool {
	switch e.ErrorCode {
	case ErrorCodeIntegrity, ErrorCodeSignatureInvalid:
		return true
	}
	return false
}
