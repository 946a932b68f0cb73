// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/decred/peerreview/review"
)

// paper is a paper of the configured conference.
type paper struct {
	id   int
	conf review.Conf
}

var (
	_ review.Paper = (*paper)(nil)
)

// newPaper returns a paper of the configured conference.
func newPaper(id int) *paper {
	return &paper{
		id:   id,
		conf: cfg.conf(),
	}
}

// ID satisfies the review.Paper interface.
func (p *paper) ID() int {
	return p.id
}

// Conf satisfies the review.Paper interface.
func (p *paper) Conf() review.Conf {
	return p.conf
}
