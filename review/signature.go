// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package review

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// SignatureVersion is the version of the review signature layout. Any change
// to signatureColumns must increment it.
const SignatureVersion = 1

// signatureColumns contains the review signature fields in their positional
// order. The order is a wire contract.
var signatureColumns = []string{
	ColReviewID,
	ColContactID,
	ColReviewToken,
	ColReviewType,
	ColReviewRound,
	ColRequestedBy,
	ColReviewBlind,
	ColReviewModified,
	ColReviewSubmitted,
	ColReviewAuthorSeen,
	ColReviewOrdinal,
	ColTimeApprovalRequested,
	ColReviewNeedsSubmit,
}

// noReviewToken is the signature encoding of a review without a token.
const noReviewToken = "0"

// SignatureSQL returns the select expression that aggregates the signatures
// of every review of a paper into a single comma joined string. The review
// table must be aliased as r.
func SignatureSQL() string {
	cols := make([]string, 0, len(signatureColumns))
	for _, c := range signatureColumns {
		switch c {
		case ColReviewSubmitted, ColReviewAuthorSeen:
			cols = append(cols, fmt.Sprintf("coalesce(r.%v,0)", c))
		default:
			cols = append(cols, "r."+c)
		}
	}
	return fmt.Sprintf("group_concat(%v order by r.reviewId)",
		strings.Join(cols, ", ' ', "))
}

// Signature returns the review signature of the record. It is the inverse of
// HydrateSignature.
func (r *Record) Signature() string {
	token := r.ReviewToken
	if token == "" {
		token = noReviewToken
	}
	fields := []string{
		strconv.Itoa(r.ReviewID),
		strconv.Itoa(r.ContactID),
		token,
		strconv.Itoa(r.ReviewType),
		strconv.Itoa(r.ReviewRound),
		strconv.Itoa(r.RequestedBy),
		strconv.Itoa(r.ReviewBlind),
		strconv.FormatInt(r.ReviewModified, 10),
		strconv.FormatInt(r.ReviewSubmitted, 10),
		strconv.FormatInt(r.ReviewAuthorSeen, 10),
		strconv.Itoa(r.ReviewOrdinal),
		strconv.FormatInt(r.TimeApprovalRequested, 10),
		strconv.Itoa(r.ReviewNeedsSubmit),
	}
	return strings.Join(fields, " ")
}

// HydrateSignature builds a review record of the provided paper from a
// review signature. The signature contains the core review attributes joined
// by a single space in the order defined by signatureColumns.
func HydrateSignature(p Paper, signature string) (*Record, error) {
	fields := strings.Split(signature, " ")
	if len(fields) != len(signatureColumns) {
		return nil, errors.WithStack(Error{
			ErrorCode: ErrorCodeSignatureInvalid,
			ErrorContext: fmt.Sprintf("got %v fields, want %v: %q",
				len(fields), len(signatureColumns), signature),
		})
	}

	row := make(Row, len(signatureColumns)+1)
	row[ColPaperID] = strconv.Itoa(p.ID())
	for i, c := range signatureColumns {
		row[c] = fields[i]
	}
	r := NewRecord(p.Conf())
	err := setCoreAttributes(r, row)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// HydrateSignatures builds the review records of the provided paper from a
// comma joined signature aggregate, as produced by SignatureSQL.
func HydrateSignatures(p Paper, aggregate string) ([]*Record, error) {
	if aggregate == "" {
		return []*Record{}, nil
	}
	sigs := strings.Split(aggregate, ",")
	records := make([]*Record, 0, len(sigs))
	for _, s := range sigs {
		r, err := HydrateSignature(p, s)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// JoinSignatures returns the comma joined signature aggregate of the
// provided records.
func JoinSignatures(records []*Record) string {
	sigs := make([]string, 0, len(records))
	for _, r := range records {
		sigs = append(sigs, r.Signature())
	}
	return strings.Join(sigs, ",")
}
