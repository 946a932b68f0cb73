// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package review

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// RatingGoodMask is the rating bit of a good review.
	RatingGoodMask = 1

	// RatingBadMask contains all of the "needs improvement" rating bits.
	RatingBadMask = 126

	// ratingMax is the first integer that is not a valid rating mask.
	ratingMax = 127

	// ratingNone is the rating text of an empty rating mask.
	ratingNone = "none"
)

// RatingBit describes a single bit of a rating mask.
type RatingBit struct {
	Mask        int
	Label       string // Single word used in rating text
	Description string // Human readable description
}

// RatingBits contains the rating bits in their declared order.
var RatingBits = []RatingBit{
	{1, "good", "good review"},
	{2, "bad", "needs work"},
	{4, "short", "too short"},
	{8, "vague", "too vague"},
	{16, "narrow", "too narrow"},
	{32, "not-constructive", "not constructive"},
	{64, "wrong", "not correct"},
}

var (
	// ratingLabels maps a single bit mask to its label.
	ratingLabels = make(map[int]string, len(RatingBits))

	// ratingMasks maps a label to its single bit mask.
	ratingMasks = make(map[string]int, len(RatingBits))
)

func init() {
	for _, v := range RatingBits {
		ratingLabels[v.Mask] = v.Label
		ratingMasks[v.Label] = v.Mask
	}
}

// RatingValid returns whether the mask only contains known rating bits.
func RatingValid(mask int) bool {
	return mask >= 0 && mask < ratingMax
}

// RatingIsGood returns whether the rating contains the good bit.
func RatingIsGood(mask int) bool {
	return mask&RatingGoodMask != 0
}

// RatingIsBad returns whether the rating contains any needs improvement bit.
func RatingIsBad(mask int) bool {
	return mask&RatingBadMask != 0
}

// RatingSet maps a reviewer contact id to the rating mask they gave.
type RatingSet map[int]int

// DecodeRatings decodes an allRatings string. The string is a comma
// separated list of "<contactId> <mask>" pairs. Malformed pairs are skipped.
func DecodeRatings(allRatings string) RatingSet {
	rs := make(RatingSet)
	if allRatings == "" {
		return rs
	}
	for _, pair := range strings.Split(allRatings, ",") {
		f := strings.Fields(pair)
		if len(f) != 2 {
			log.Debugf("DecodeRatings: malformed pair %q", pair)
			continue
		}
		cid, err := strconv.Atoi(f[0])
		if err != nil {
			log.Debugf("DecodeRatings: malformed contact id %q", pair)
			continue
		}
		mask, err := strconv.Atoi(f[1])
		if err != nil {
			log.Debugf("DecodeRatings: malformed mask %q", pair)
			continue
		}
		rs[cid] = mask
	}
	return rs
}

// EncodeRatings encodes a rating set into an allRatings string. Pairs are
// ordered by contact id. Empty ratings are left out.
func EncodeRatings(rs RatingSet) string {
	cids := make([]int, 0, len(rs))
	for cid, mask := range rs {
		if mask == 0 {
			continue
		}
		cids = append(cids, cid)
	}
	sort.Ints(cids)

	pairs := make([]string, 0, len(cids))
	for _, cid := range cids {
		pairs = append(pairs, strconv.Itoa(cid)+" "+strconv.Itoa(rs[cid]))
	}
	return strings.Join(pairs, ",")
}

// Ratings returns the ratings that other reviewers have given the review.
func (r *Record) Ratings() RatingSet {
	return DecodeRatings(r.AllRatings)
}

// RatingOf returns the rating the provided contact gave the review. False is
// returned if the contact has not rated the review.
func (r *Record) RatingOf(contactID int) (int, bool) {
	mask, ok := r.Ratings()[contactID]
	return mask, ok
}

// UnparseRating returns the rating text of a rating mask. A single bit is
// returned as its label, an empty mask as "none", and anything else as the
// space joined labels of the set bits in declared order.
func UnparseRating(mask int) string {
	if l, ok := ratingLabels[mask]; ok {
		return l
	}
	if mask == 0 {
		return ratingNone
	}
	labels := make([]string, 0, len(RatingBits))
	for _, v := range RatingBits {
		if mask&v.Mask != 0 {
			labels = append(labels, v.Label)
		}
	}
	return strings.Join(labels, " ")
}

// ParseRating parses rating text into a rating mask. The text is either an
// integer mask below 127 or a whitespace separated list of rating labels. A
// zero mask means no rating. An ErrorCodeRatingInvalid error is returned if
// the text contains an unknown label.
func ParseRating(text string) (int, error) {
	if isDigits(text) {
		n, err := strconv.Atoi(text)
		if err == nil && n < ratingMax {
			return n, nil
		}
	}

	var mask int
	for _, word := range strings.Fields(text) {
		if m, ok := ratingMasks[word]; ok {
			mask |= m
			continue
		}
		if word == ratingNone {
			continue
		}
		return 0, errors.WithStack(Error{
			ErrorCode:    ErrorCodeRatingInvalid,
			ErrorContext: word,
		})
	}

	return mask, nil
}

// isDigits returns whether s is a non-empty string of decimal digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
