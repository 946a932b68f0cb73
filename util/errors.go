// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"fmt"

	"github.com/pkg/errors"
)

// stackTracer is implemented by the errors created by pkg/errors.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// StackTrace returns the stack trace of the first pkg/errors error in
// the chain. False is returned if no error in the chain carries a stack
// trace.
func StackTrace(err error) (string, bool) {
	var st stackTracer
	if !errors.As(err, &st) {
		return "", false
	}
	return fmt.Sprintf("%+v\n", st.StackTrace()), true
}
