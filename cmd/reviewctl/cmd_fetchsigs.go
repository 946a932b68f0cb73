// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"sort"

	"github.com/decred/peerreview/review"
)

// cmdFetchSigs loads the review signatures of the provided papers from the
// conference database, saves them to the signature cache, and prints the
// decoded reviews of each paper in display order.
type cmdFetchSigs struct {
	Args struct {
		PaperIDs []int `positional-arg-name:"paperids"`
	} `required:"true" positional-args:"true"`
}

// Execute executes the command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdFetchSigs) Execute(args []string) error {
	m, err := openReviewDB()
	if err != nil {
		return err
	}
	defer m.Close()

	sigs, err := m.Signatures(c.Args.PaperIDs)
	if err != nil {
		return err
	}

	// Decode every aggregate before anything is cached so that a
	// truncated aggregate is never saved.
	paperIDs := make([]int, 0, len(sigs))
	records := make(map[int][]*review.Record, len(sigs))
	for paperID, agg := range sigs {
		rs, err := review.HydrateSignatures(newPaper(paperID), agg)
		if err != nil {
			return err
		}
		review.SortDisplay(rs)
		records[paperID] = rs
		paperIDs = append(paperIDs, paperID)
	}
	err = cache.Put(sigs)
	if err != nil {
		return err
	}

	log.Debugf("%v of %v papers have reviews", len(sigs), len(c.Args.PaperIDs))

	sort.Ints(paperIDs)
	for _, paperID := range paperIDs {
		log.Infof("Paper %v", paperID)
		printRecords(records[paperID])
	}

	return nil
}
