// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package review

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Column names of the review table that are decoded into core record
// attributes.
const (
	ColPaperID               = "paperId"
	ColReviewID              = "reviewId"
	ColContactID             = "contactId"
	ColReviewToken           = "reviewToken"
	ColReviewType            = "reviewType"
	ColReviewRound           = "reviewRound"
	ColRequestedBy           = "requestedBy"
	ColReviewBlind           = "reviewBlind"
	ColReviewModified        = "reviewModified"
	ColReviewSubmitted       = "reviewSubmitted"
	ColReviewAuthorSeen      = "reviewAuthorSeen"
	ColReviewOrdinal         = "reviewOrdinal"
	ColTimeApprovalRequested = "timeApprovalRequested"
	ColReviewNeedsSubmit     = "reviewNeedsSubmit"
	ColAllRatings            = "allRatings"
	ColSFields               = "sfields"
	ColTFields               = "tfields"
)

// Row is a raw review row keyed by column name. A column that is missing
// from the map is NULL.
type Row map[string]string

// coreColumns contains the columns that are decoded into core attributes
// and are therefore not copied into the dynamic fields.
var coreColumns = map[string]struct{}{
	ColPaperID:               {},
	ColReviewID:              {},
	ColContactID:             {},
	ColReviewToken:           {},
	ColReviewType:            {},
	ColReviewRound:           {},
	ColRequestedBy:           {},
	ColReviewBlind:           {},
	ColReviewModified:        {},
	ColReviewSubmitted:       {},
	ColReviewAuthorSeen:      {},
	ColReviewOrdinal:         {},
	ColTimeApprovalRequested: {},
	ColReviewNeedsSubmit:     {},
	ColAllRatings:            {},
	ColSFields:               {},
	ColTFields:               {},
}

// integrityError returns an integrity violation error with a stack trace.
func integrityError(format string, args ...interface{}) error {
	return errors.WithStack(Error{
		ErrorCode:    ErrorCodeIntegrity,
		ErrorContext: fmt.Sprintf(format, args...),
	})
}

// setCoreAttributes decodes the core attributes of the row into the record.
// The required attributes must be present and must be integers. Timestamps
// are only decoded when they are present.
func setCoreAttributes(r *Record, row Row) error {
	required := []struct {
		col string
		dst *int
	}{
		{ColPaperID, &r.PaperID},
		{ColReviewID, &r.ReviewID},
		{ColContactID, &r.ContactID},
		{ColReviewType, &r.ReviewType},
		{ColReviewRound, &r.ReviewRound},
		{ColRequestedBy, &r.RequestedBy},
		{ColReviewBlind, &r.ReviewBlind},
		{ColReviewOrdinal, &r.ReviewOrdinal},
		{ColReviewNeedsSubmit, &r.ReviewNeedsSubmit},
	}
	for _, v := range required {
		s, ok := row[v.col]
		if !ok {
			return integrityError("null %v", v.col)
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return integrityError("%v is not an integer: %q", v.col, s)
		}
		*v.dst = n
	}

	timestamps := []struct {
		col string
		dst *int64
	}{
		{ColReviewModified, &r.ReviewModified},
		{ColReviewSubmitted, &r.ReviewSubmitted},
		{ColReviewAuthorSeen, &r.ReviewAuthorSeen},
		{ColTimeApprovalRequested, &r.TimeApprovalRequested},
	}
	for _, v := range timestamps {
		s, ok := row[v.col]
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return integrityError("%v is not an integer: %q", v.col, s)
		}
		*v.dst = n
	}

	// A zero token is the stored form of a review without a token
	r.ReviewToken = row[ColReviewToken]
	if r.ReviewToken == noReviewToken {
		r.ReviewToken = ""
	}
	r.AllRatings = row[ColAllRatings]

	return nil
}

// columnValue converts a non core column into a dynamic field value. Score
// columns hold integers, everything else is text.
func columnValue(col, s string) Value {
	_, legacyScore := scoreFields.shortID(col)
	if legacyScore || IsScoreFieldID(col) {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err == nil {
			return IntValue(n)
		}
	}
	return TextValue(s)
}

// jsonValue converts a JSON blob entry into a dynamic field value. The
// returned bool is false for JSON null, which means the field is absent.
func jsonValue(raw json.RawMessage) (Value, bool) {
	trimmed := strings.TrimSpace(string(raw))
	switch {
	case trimmed == "null":
		return Value{}, false
	case strings.HasPrefix(trimmed, `"`):
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return TextValue(s), true
		}
	default:
		var n int
		if err := json.Unmarshal(raw, &n); err == nil {
			return IntValue(n), true
		}
	}
	return RawValue(raw), true
}

// mergeBlob decodes a JSON field blob and merges its keys into the record.
// Keys that are not known field ids are kept unmodified. A blob that is not
// a JSON object is logged and ignored.
func mergeBlob(r *Record, col, blob string) {
	if blob == "" {
		return
	}
	var m map[string]json.RawMessage
	err := json.Unmarshal([]byte(blob), &m)
	if err != nil {
		log.Warnf("review #%v/%v: %v is not a JSON object: %v",
			r.PaperID, r.ReviewID, col, err)
		return
	}
	for k, raw := range m {
		v, ok := jsonValue(raw)
		if !ok {
			continue
		}
		r.fields[k] = v
	}
}

// Hydrate builds a review record from a raw review row. The schema version
// of the conference decides how legacy columns are interpreted.
//
// An ErrorCodeIntegrity error is returned if a required core attribute is
// missing or malformed. This signals a caller bug or corrupted data and must
// not be treated as a user error. A nil conf is reported the same way.
func Hydrate(row Row, conf Conf) (*Record, error) {
	if conf == nil {
		return nil, integrityError("review #%v/%v: no conference",
			row[ColPaperID], row[ColReviewID])
	}

	r := NewRecord(conf)
	err := setCoreAttributes(r, row)
	if err != nil {
		return nil, err
	}

	// Copy the remaining columns into the dynamic fields. This includes
	// the legacy score and text columns.
	for col, s := range row {
		if _, ok := coreColumns[col]; ok {
			continue
		}
		r.fields[col] = columnValue(col, s)
	}

	// The JSON blobs take precedence over the columns
	if s, ok := row[ColTFields]; ok {
		mergeBlob(r, ColTFields, s)
	}
	if s, ok := row[ColSFields]; ok {
		mergeBlob(r, ColSFields, s)
	}

	// Reviews written before the text fields moved to the JSON blob only
	// have the legacy text columns. Back-fill the short ids so that text
	// fields can always be addressed by short id.
	if conf.SchemaVersion() < SchemaVersionNoTextBackfill {
		for _, name := range textFields.legacy {
			v, ok := r.fields[name]
			if !ok {
				continue
			}
			short, _ := textFields.shortID(name)
			if _, ok := r.fields[short]; !ok {
				r.fields[short] = v
			}
		}
	}

	log.Tracef("Hydrate: review #%v/%v: %v fields",
		r.PaperID, r.ReviewID, len(r.fields))

	return r, nil
}
