// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package review

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
)

// testPaper implements the Paper interface.
type testPaper struct {
	id   int
	conf Conf
}

func (p *testPaper) ID() int    { return p.id }
func (p *testPaper) Conf() Conf { return p.conf }

func newTestConf(sversion int) *StaticConf {
	return &StaticConf{
		Name:    "testdb",
		Version: sversion,
		Rounds:  []string{"", "R1", "R2"},
	}
}

// newTestRow returns a review row that contains all required core columns.
func newTestRow() Row {
	return Row{
		ColPaperID:           "1",
		ColReviewID:          "2",
		ColContactID:         "3",
		ColReviewType:        "4",
		ColReviewRound:       "1",
		ColRequestedBy:       "5",
		ColReviewBlind:       "1",
		ColReviewOrdinal:     "2",
		ColReviewNeedsSubmit: "0",
	}
}

// errorCode returns the review error code of the error. ErrorCodeInvalid is
// returned for errors that are not review errors.
func errorCode(err error) ErrorCodeT {
	var e Error
	if errors.As(err, &e) {
		return e.ErrorCode
	}
	return ErrorCodeInvalid
}

func TestHydrateCoreAttributes(t *testing.T) {
	row := newTestRow()
	row[ColReviewModified] = "1600000000"
	row[ColReviewSubmitted] = "1600000100"
	row[ColReviewToken] = "998877"
	row[ColAllRatings] = "5 3,9 64"

	r, err := Hydrate(row, newTestConf(176))
	if err != nil {
		t.Fatal(err)
	}

	want := Record{
		PaperID:           1,
		ReviewID:          2,
		ContactID:         3,
		ReviewToken:       "998877",
		ReviewType:        4,
		ReviewRound:       1,
		RequestedBy:       5,
		ReviewBlind:       1,
		ReviewModified:    1600000000,
		ReviewSubmitted:   1600000100,
		ReviewOrdinal:     2,
		ReviewNeedsSubmit: 0,
		AllRatings:        "5 3,9 64",
	}
	got := *r
	got.conf = nil
	got.fields = nil
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("Record got/want diff:\n%v", spew.Sdump(diff))
	}
	if len(r.FieldIDs()) != 0 {
		t.Errorf("got fields %v, want none", r.FieldIDs())
	}
	if r.RoundName() != "R1" {
		t.Errorf("got round name %q, want R1", r.RoundName())
	}
}

func TestHydrateIntegrity(t *testing.T) {
	required := []string{
		ColPaperID, ColReviewID, ColContactID, ColReviewType,
		ColReviewRound, ColRequestedBy, ColReviewBlind, ColReviewOrdinal,
		ColReviewNeedsSubmit,
	}
	for _, col := range required {
		t.Run("missing "+col, func(t *testing.T) {
			row := newTestRow()
			delete(row, col)
			_, err := Hydrate(row, newTestConf(176))
			if errorCode(err) != ErrorCodeIntegrity {
				t.Errorf("got err %v, want integrity violation", err)
			}
		})
	}

	t.Run("malformed required", func(t *testing.T) {
		row := newTestRow()
		row[ColReviewID] = "abc"
		_, err := Hydrate(row, newTestConf(176))
		if errorCode(err) != ErrorCodeIntegrity {
			t.Errorf("got err %v, want integrity violation", err)
		}
	})

	t.Run("malformed timestamp", func(t *testing.T) {
		row := newTestRow()
		row[ColReviewSubmitted] = "yesterday"
		_, err := Hydrate(row, newTestConf(176))
		if errorCode(err) != ErrorCodeIntegrity {
			t.Errorf("got err %v, want integrity violation", err)
		}
	})

	t.Run("timestamps optional", func(t *testing.T) {
		r, err := Hydrate(newTestRow(), newTestConf(176))
		if err != nil {
			t.Fatal(err)
		}
		if r.ReviewModified != 0 || r.ReviewSubmitted != 0 ||
			r.ReviewAuthorSeen != 0 || r.TimeApprovalRequested != 0 {
			t.Errorf("unset timestamps are not zero: %v", spew.Sdump(r))
		}
	})
}

func TestHydrateFields(t *testing.T) {
	row := newTestRow()
	row["overAllMerit"] = "3"
	row["reviewFormat"] = "1"
	row[ColTFields] = `{"t01":"summary","t09":"extra","t10":null}`
	row[ColSFields] = `{"s12":4,"s13":2,"x99":[1,2]}`

	r, err := Hydrate(row, newTestConf(176))
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]Value{
		"overAllMerit": IntValue(3),
		"reviewFormat": TextValue("1"),
		"t01":          TextValue("summary"),
		"t09":          TextValue("extra"),
		"s12":          IntValue(4),
		"s13":          IntValue(2),
		"x99":          RawValue(json.RawMessage(`[1,2]`)),
	}
	if diff := deep.Equal(r.fields, want); diff != nil {
		t.Errorf("fields got/want diff:\n%v", spew.Sdump(diff))
	}

	// Score field s01 is read from its legacy column
	fi, ok := Resolve("s01", 176)
	if !ok {
		t.Fatalf("s01 not found")
	}
	v, ok := r.FieldValue(fi)
	if !ok || v.AsInt() != 3 {
		t.Errorf("got s01 %v %v, want 3", v, ok)
	}
}

func TestHydrateMalformedBlob(t *testing.T) {
	row := newTestRow()
	row[ColSFields] = `not json`
	r, err := Hydrate(row, newTestConf(176))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.FieldIDs()) != 0 {
		t.Errorf("got fields %v, want none", r.FieldIDs())
	}
}

func TestHydrateTextBackfill(t *testing.T) {
	var tests = []struct {
		name     string
		sversion int
		tfields  string
		wantT01  string
		wantSet  bool
	}{
		{"backfill before json", 173, "", "legacy", true},
		{"backfill transitional", 175, "", "legacy", true},
		{"json wins over legacy", 175, `{"t01":"json"}`, "json", true},
		{"no backfill", 176, "", "", false},
	}
	for _, v := range tests {
		t.Run(v.name, func(t *testing.T) {
			row := newTestRow()
			row["paperSummary"] = "legacy"
			if v.tfields != "" {
				row[ColTFields] = v.tfields
			}
			r, err := Hydrate(row, newTestConf(v.sversion))
			if err != nil {
				t.Fatal(err)
			}
			got, ok := r.Value("t01")
			if ok != v.wantSet {
				t.Fatalf("got t01 set %v, want %v", ok, v.wantSet)
			}
			if got.String() != v.wantT01 {
				t.Errorf("got t01 %q, want %q", got.String(), v.wantT01)
			}
		})
	}
}

func TestHydrateSignature(t *testing.T) {
	p := &testPaper{id: 10, conf: newTestConf(176)}
	sig := "5 7 _ 2 0 0 0 1600000000 1600000100 1600000050 1 0 0"

	r, err := HydrateSignature(p, sig)
	if err != nil {
		t.Fatal(err)
	}

	want := Record{
		PaperID:          10,
		ReviewID:         5,
		ContactID:        7,
		ReviewToken:      "_",
		ReviewType:       2,
		ReviewModified:   1600000000,
		ReviewSubmitted:  1600000100,
		ReviewAuthorSeen: 1600000050,
		ReviewOrdinal:    1,
	}
	got := *r
	got.conf = nil
	got.fields = nil
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("Record got/want diff:\n%v", spew.Sdump(diff))
	}
	if r.Signature() != sig {
		t.Errorf("got signature %q, want %q", r.Signature(), sig)
	}
}

func TestHydrateSignatureInvalid(t *testing.T) {
	p := &testPaper{id: 10, conf: newTestConf(176)}
	var tests = []struct {
		name string
		sig  string
		want ErrorCodeT
	}{
		{"too few fields", "5 7 0 2", ErrorCodeSignatureInvalid},
		{"too many fields", "5 7 0 2 0 0 0 1 1 1 1 0 0 9",
			ErrorCodeSignatureInvalid},
		{"double space", "5  7 0 2 0 0 0 1 1 1 1 0 0",
			ErrorCodeSignatureInvalid},
		{"non integer", "5 x 0 2 0 0 0 1 1 1 1 0 0", ErrorCodeIntegrity},
	}
	for _, v := range tests {
		t.Run(v.name, func(t *testing.T) {
			_, err := HydrateSignature(p, v.sig)
			if errorCode(err) != v.want {
				t.Errorf("got err %v, want %v", err, ErrorCodes[v.want])
			}
			var e Error
			if !errors.As(err, &e) || !e.IsIntegrity() {
				t.Errorf("error is not an integrity violation")
			}
		})
	}
}

func TestHydrateSignatures(t *testing.T) {
	p := &testPaper{id: 3, conf: newTestConf(176)}

	records, err := HydrateSignatures(p, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("got %v records, want 0", len(records))
	}

	agg := "1 7 0 2 0 0 0 100 0 0 0 0 1,2 8 0 2 1 7 1 200 250 0 1 0 0"
	records, err = HydrateSignatures(p, agg)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %v records, want 2", len(records))
	}
	if records[0].ReviewToken != "" {
		t.Errorf("got token %q, want none", records[0].ReviewToken)
	}
	if records[1].ReviewSubmitted != 250 || records[1].ReviewRound != 1 {
		t.Errorf("unexpected record: %v", spew.Sdump(records[1]))
	}
	if got := JoinSignatures(records); got != agg {
		t.Errorf("got aggregate %q, want %q", got, agg)
	}
}

func TestSignatureSQL(t *testing.T) {
	want := "group_concat(r.reviewId, ' ', r.contactId, ' ', " +
		"r.reviewToken, ' ', r.reviewType, ' ', r.reviewRound, ' ', " +
		"r.requestedBy, ' ', r.reviewBlind, ' ', r.reviewModified, ' ', " +
		"coalesce(r.reviewSubmitted,0), ' ', " +
		"coalesce(r.reviewAuthorSeen,0), ' ', r.reviewOrdinal, ' ', " +
		"r.timeApprovalRequested, ' ', r.reviewNeedsSubmit " +
		"order by r.reviewId)"
	if got := SignatureSQL(); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestHydrateNilConf(t *testing.T) {
	_, err := Hydrate(newTestRow(), nil)
	if errorCode(err) != ErrorCodeIntegrity {
		t.Errorf("got err %v, want %v", err, ErrorCodes[ErrorCodeIntegrity])
	}
}

func TestHydrateZeroToken(t *testing.T) {
	conf := newTestConf(176)
	p := &testPaper{id: 1, conf: conf}

	row := newTestRow()
	row[ColReviewToken] = "0"
	fromRow, err := Hydrate(row, conf)
	if err != nil {
		t.Fatal(err)
	}
	if fromRow.ReviewToken != "" {
		t.Errorf("row: got token %q, want none", fromRow.ReviewToken)
	}

	// The row and the signature paths must agree
	fromSig, err := HydrateSignature(p, fromRow.Signature())
	if err != nil {
		t.Fatal(err)
	}
	got := *fromSig
	want := *fromRow
	got.conf, got.fields = nil, nil
	want.conf, want.fields = nil, nil
	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("Record got/want diff:\n%v", spew.Sdump(diff))
	}
}
