// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/decred/peerreview/review"
)

// cmdSignature decodes a review signature aggregate of a paper and prints
// the resulting review records in display order. The signatures are saved
// to the signature cache when the save flag is provided.
type cmdSignature struct {
	Args struct {
		PaperID   int    `positional-arg-name:"paperid"`
		Aggregate string `positional-arg-name:"signatures"`
	} `required:"true" positional-args:"true"`

	Save bool `long:"save" description:"Save the signatures to the cache"`
}

// Execute executes the command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdSignature) Execute(args []string) error {
	p := newPaper(c.Args.PaperID)
	records, err := review.HydrateSignatures(p, c.Args.Aggregate)
	if err != nil {
		return err
	}

	if c.Save {
		err = cache.PutRecords(p.ID(), records)
		if err != nil {
			return err
		}
		log.Debugf("Paper %v: %v signatures saved", p.ID(), len(records))
	}

	review.SortDisplay(records)
	printRecords(records)

	return nil
}
