// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/decred/peerreview/review"
)

// cmdFieldInfo prints the storage strategy of review fields under the
// configured schema version. The fields can be given as either short ids or
// legacy names. All legacy fields are printed when no fields are given.
type cmdFieldInfo struct {
	Args struct {
		Fields []string `positional-arg-name:"fields"`
	} `positional-args:"true"`
}

// Execute executes the command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdFieldInfo) Execute(args []string) error {
	ids := c.Args.Fields
	if len(ids) == 0 {
		ids = append(review.ScoreFieldLegacyNames(),
			review.TextFieldLegacyNames()...)
	}

	infos := make([]*review.FieldInfo, 0, len(ids))
	for _, id := range ids {
		fi, ok := review.Resolve(id, cfg.SchemaVersion)
		if !ok {
			return fmt.Errorf("field %v does not exist in schema version %v",
				id, cfg.SchemaVersion)
		}
		infos = append(infos, fi)
	}

	log.Infof("%v", formatJSON(infos))

	return nil
}
