// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"runtime"

	"github.com/decred/peerreview/review"
)

// version is the reviewctl version.
const version = "1.0.0"

// cmdVersion prints the version information.
type cmdVersion struct{}

// Execute executes the command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdVersion) Execute(args []string) error {
	v := struct {
		Version          string `json:"version"`
		GoVersion        string `json:"goversion"`
		SchemaVersion    int    `json:"schemaversion"`
		SignatureVersion int    `json:"signatureversion"`
	}{
		Version:          version,
		GoVersion:        runtime.Version(),
		SchemaVersion:    cfg.SchemaVersion,
		SignatureVersion: review.SignatureVersion,
	}
	log.Infof("%v", formatJSON(v))
	return nil
}
