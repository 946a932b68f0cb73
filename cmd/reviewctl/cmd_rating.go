// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/decred/peerreview/review"
)

// cmdParseRating parses rating text into a rating mask.
type cmdParseRating struct {
	Args struct {
		Text []string `positional-arg-name:"text"`
	} `required:"true" positional-args:"true"`
}

// Execute executes the command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdParseRating) Execute(args []string) error {
	mask, err := review.ParseRating(strings.Join(c.Args.Text, " "))
	if err != nil {
		return err
	}
	log.Infof("%v", mask)
	return nil
}

// cmdUnparseRating prints the rating text of a rating mask.
type cmdUnparseRating struct {
	Args struct {
		Mask int `positional-arg-name:"mask"`
	} `required:"true" positional-args:"true"`
}

// Execute executes the command.
//
// This function satisfies the go-flags Commander interface.
func (c *cmdUnparseRating) Execute(args []string) error {
	if !review.RatingValid(c.Args.Mask) {
		return fmt.Errorf("invalid rating mask %v", c.Args.Mask)
	}
	text := review.UnparseRating(c.Args.Mask)
	if review.RatingIsBad(c.Args.Mask) {
		log.Debugf("Mask %v contains needs improvement bits",
			c.Args.Mask)
	}
	log.Infof("%v", text)
	return nil
}
