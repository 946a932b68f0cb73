// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/decred/peerreview/review"
	"github.com/decred/peerreview/review/mysql"
)

// cmdReviews reads the reviews of a paper from the conference database and
// prints them in display order. The review signatures of the paper are saved
// to the signature cache.
type cmdReviews struct {
	Args struct {
		PaperID int `positional-arg-name:"paperid"`
	} `required:"true" positional-args:"true"`

	// Rewrite writes the field blobs of every review back to the database
	// using the current encoding.
	Rewrite bool `long:"rewrite" description:"Rewrite the review field blobs"`
}

// Execute executes the command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdReviews) Execute(args []string) error {
	m, err := openReviewDB()
	if err != nil {
		return err
	}
	defer m.Close()

	records, err := m.Reviews(c.Args.PaperID)
	if err != nil {
		return err
	}

	if c.Rewrite {
		for _, r := range records {
			err := m.SaveFields(r)
			if err != nil {
				return err
			}
		}
		log.Debugf("Paper %v: %v reviews rewritten",
			c.Args.PaperID, len(records))
	}

	err = cache.PutRecords(c.Args.PaperID, records)
	if err != nil {
		return err
	}

	printRecords(records)

	return nil
}

// reviewDB is the review database used by the commands.
type reviewDB interface {
	Reviews(paperID int) ([]*review.Record, error)
	Signatures(paperIDs []int) (map[int]string, error)
	SaveFields(r *review.Record) error
	Close() error
}

// openReviewDB opens the configured review database. It is a variable so
// that tests can replace the database.
var openReviewDB = func() (reviewDB, error) {
	db, err := mysql.Open(cfg.DBHost, cfg.DBUser, cfg.DBPass, cfg.DBName)
	if err != nil {
		return nil, err
	}
	return mysql.New(db, cfg.conf(), &mysql.Opts{
		OpTimeout: cfg.DBTimeout,
	}), nil
}
