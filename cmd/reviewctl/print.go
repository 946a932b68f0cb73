// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/decred/peerreview/review"
)

// formatJSON returns a pretty printed JSON string for the provided structure.
func formatJSON(v interface{}) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("json error: %v", err)
	}
	return string(b)
}

// recordView is the printable representation of a review record.
type recordView struct {
	PaperID     int               `json:"paperid"`
	ReviewID    int               `json:"reviewid"`
	ContactID   int               `json:"contactid"`
	Ordinal     int               `json:"ordinal,omitempty"`
	Round       string            `json:"round,omitempty"`
	Submitted   int64             `json:"submitted,omitempty"`
	Modified    int64             `json:"modified,omitempty"`
	NeedsSubmit bool              `json:"needssubmit,omitempty"`
	Ratings     map[int]string    `json:"ratings,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
	Signature   string            `json:"signature"`
}

// newRecordView returns the printable representation of a review record.
func newRecordView(r *review.Record) recordView {
	v := recordView{
		PaperID:     r.PaperID,
		ReviewID:    r.ReviewID,
		ContactID:   r.ContactID,
		Ordinal:     r.ReviewOrdinal,
		Round:       r.RoundName(),
		Submitted:   r.ReviewSubmitted,
		Modified:    r.ReviewModified,
		NeedsSubmit: r.ReviewNeedsSubmit != 0,
		Signature:   r.Signature(),
	}
	if rs := r.Ratings(); len(rs) > 0 {
		v.Ratings = make(map[int]string, len(rs))
		for contactID, mask := range rs {
			v.Ratings[contactID] = review.UnparseRating(mask)
		}
	}
	if ids := r.FieldIDs(); len(ids) > 0 {
		v.Fields = make(map[string]string, len(ids))
		for _, id := range ids {
			fv, _ := r.Value(id)
			v.Fields[id] = fv.String()
		}
	}
	return v
}

// printRecords prints the provided review records.
func printRecords(records []*review.Record) {
	views := make([]recordView, 0, len(records))
	for _, r := range records {
		views = append(views, newRecordView(r))
	}
	log.Infof("%v", formatJSON(views))
}
