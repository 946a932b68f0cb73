// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package review

import (
	"sort"
	"strings"
)

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// CompareDisplay orders reviews for display. Reviews are ordered by paper,
// then by ordinal when both reviews have one, then submitted reviews before
// unsubmitted reviews, then by submission time, then by sorter when both
// reviews have one, and finally by review id.
func CompareDisplay(a, b *Record) int {
	if c := compareInt(a.PaperID, b.PaperID); c != 0 {
		return c
	}
	if a.ReviewOrdinal != 0 && b.ReviewOrdinal != 0 &&
		a.ReviewOrdinal != b.ReviewOrdinal {
		return compareInt(a.ReviewOrdinal, b.ReviewOrdinal)
	}
	if a.IsSubmitted() != b.IsSubmitted() {
		if a.IsSubmitted() {
			return -1
		}
		return 1
	}
	if c := compareInt64(a.ReviewSubmitted, b.ReviewSubmitted); c != 0 {
		return c
	}
	as, aok := a.Sorter()
	bs, bok := b.Sorter()
	if aok && bok {
		if c := strings.Compare(as, bs); c != 0 {
			return c
		}
	}
	return compareInt(a.ReviewID, b.ReviewID)
}

// CompareIdentity orders reviews by paper id and review id.
func CompareIdentity(a, b *Record) int {
	if c := compareInt(a.PaperID, b.PaperID); c != 0 {
		return c
	}
	return compareInt(a.ReviewID, b.ReviewID)
}

// SortDisplay sorts the reviews in place using CompareDisplay.
func SortDisplay(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return CompareDisplay(records[i], records[j]) < 0
	})
}

// SortIdentity sorts the reviews in place using CompareIdentity.
func SortIdentity(records []*Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return CompareIdentity(records[i], records[j]) < 0
	})
}
