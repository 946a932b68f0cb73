// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mysql

import (
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/decred/peerreview/review"
	"github.com/google/go-cmp/cmp"
)

// newTestMySQL returns a mysql context that has been setup for testing along
// with the sql mocking context and a cleanup function. Invocation of the
// cleanup function should be deferred by the caller.
func newTestMySQL(t *testing.T, sversion int) (*mysql, sqlmock.Sqlmock, func()) {
	t.Helper()

	// sqlmock defaults to using the expected SQL string as a regular
	// expression to match incoming query strings. The QueryMatcherEqual
	// overrides this default behavior and does a full case sensitive
	// match.
	opts := sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual)
	db, mock, err := sqlmock.New(opts)
	if err != nil {
		t.Fatal(err)
	}
	cleanup := func() {
		defer db.Close()
	}
	conf := &review.StaticConf{
		Name:    "testdb",
		Version: sversion,
	}

	return New(db, conf, nil), mock, cleanup
}

const reviewsQuery = "SELECT r.*, (SELECT group_concat(rr.contactId, ' ', " +
	"rr.rating ORDER BY rr.contactId) FROM ReviewRating rr WHERE " +
	"rr.paperId = r.paperId AND rr.reviewId = r.reviewId) AS allRatings " +
	"FROM PaperReview r WHERE r.paperId = ?"

var reviewColumns = []string{
	"paperId", "reviewId", "contactId", "reviewToken", "reviewType",
	"reviewRound", "requestedBy", "reviewBlind", "reviewModified",
	"reviewSubmitted", "reviewAuthorSeen", "reviewOrdinal",
	"timeApprovalRequested", "reviewNeedsSubmit", "overAllMerit",
	"paperSummary", "sfields", "tfields", "allRatings",
}

func TestNewDefaults(t *testing.T) {
	m := New(nil, nil, &Opts{ReviewTable: "Reviews"})
	want := &Opts{
		ReviewTable: "Reviews",
		RatingTable: defaultRatingTable,
		OpTimeout:   defaultOpTimeout,
	}
	if diff := cmp.Diff(m.opts, want); diff != "" {
		t.Errorf("got/want diff: \n%v", diff)
	}
}

func TestReviews(t *testing.T) {
	m, mock, cleanup := newTestMySQL(t, 175)
	defer cleanup()

	// Test the unexpected error path
	unexpectedErr := errors.New("unexpected error")
	mock.ExpectQuery(reviewsQuery).
		WithArgs(12).
		WillReturnError(unexpectedErr)

	_, err := m.Reviews(12)
	if !errors.Is(err, unexpectedErr) {
		t.Errorf("got err '%v', want '%v'", err, unexpectedErr)
	}

	// Test the success path. The unsubmitted review has the lower
	// review id and must be ordered last.
	rows := sqlmock.NewRows(reviewColumns).
		AddRow(12, 1, 7, nil, 2, 0, 7, 0, 100, nil, nil, 0, 0, 1,
			0, "draft", nil, nil, nil).
		AddRow(12, 2, 8, nil, 2, 0, 7, 0, 200, 300, nil, 1, 0, 0,
			4, "old summary", `{"s12":2}`, `{"t09":"extra"}`, "7 1")
	mock.ExpectQuery(reviewsQuery).
		WithArgs(12).
		WillReturnRows(rows)

	records, err := m.Reviews(12)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %v records, want 2", len(records))
	}

	r := records[0]
	if r.ReviewID != 2 || r.ReviewSubmitted != 300 || r.ReviewOrdinal != 1 {
		t.Errorf("unexpected first record %+v", r)
	}
	checks := map[string]string{
		"overAllMerit": "4",
		"s12":          "2",
		"t01":          "old summary",
		"t09":          "extra",
	}
	for id, want := range checks {
		v, ok := r.Value(id)
		if !ok || v.String() != want {
			t.Errorf("%v: got %v %v, want %v", id, v, ok, want)
		}
	}
	if mask, ok := r.RatingOf(7); !ok || mask != 1 {
		t.Errorf("RatingOf(7): got %v %v, want 1", mask, ok)
	}
	if records[1].ReviewID != 1 || records[1].IsSubmitted() {
		t.Errorf("unexpected second record %+v", records[1])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestReviewsIntegrity(t *testing.T) {
	m, mock, cleanup := newTestMySQL(t, 176)
	defer cleanup()

	// A NULL reviewOrdinal is an integrity violation
	rows := sqlmock.NewRows(reviewColumns).
		AddRow(12, 1, 7, nil, 2, 0, 7, 0, 100, nil, nil, nil, 0, 1,
			0, nil, nil, nil, nil)
	mock.ExpectQuery(reviewsQuery).
		WithArgs(12).
		WillReturnRows(rows)

	_, err := m.Reviews(12)
	var e review.Error
	if !errors.As(err, &e) || e.ErrorCode != review.ErrorCodeIntegrity {
		t.Errorf("got err %v, want integrity violation", err)
	}
}

func TestSignatures(t *testing.T) {
	m, mock, cleanup := newTestMySQL(t, 176)
	defer cleanup()

	q := "SELECT r.paperId, " + review.SignatureSQL() + " FROM " +
		"PaperReview r WHERE r.paperId IN (?,?) GROUP BY r.paperId"

	// No papers does not hit the database
	sigs, err := m.Signatures(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(sigs) != 0 {
		t.Errorf("got %v signatures, want 0", len(sigs))
	}

	// Test the unexpected error path
	unexpectedErr := errors.New("unexpected error")
	mock.ExpectQuery(q).
		WithArgs(1, 2).
		WillReturnError(unexpectedErr)

	_, err = m.Signatures([]int{1, 2})
	if !errors.Is(err, unexpectedErr) {
		t.Errorf("got err '%v', want '%v'", err, unexpectedErr)
	}

	// Test the success path
	agg := "1 7 0 2 0 0 0 100 0 0 0 0 1,2 8 0 2 1 7 1 200 250 0 1 0 0"
	rows := sqlmock.NewRows([]string{"paperId", "signatures"}).
		AddRow(1, agg)
	mock.ExpectQuery(q).
		WithArgs(1, 2).
		WillReturnRows(rows)

	sigs, err = m.Signatures([]int{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sigs, map[int]string{1: agg}); diff != "" {
		t.Errorf("got/want diff: \n%v", diff)
	}
}

func TestSaveFields(t *testing.T) {
	m, mock, cleanup := newTestMySQL(t, 176)
	defer cleanup()

	q := "UPDATE PaperReview SET sfields = ?, tfields = ? " +
		"WHERE paperId = ? AND reviewId = ?"

	r := review.NewRecord(m.conf)
	r.PaperID = 3
	r.ReviewID = 4
	r.SetValue("s01", review.IntValue(2))
	r.SetValue("s12", review.IntValue(5))

	// Test the unexpected error path
	unexpectedErr := errors.New("unexpected error")
	mock.ExpectExec(q).
		WithArgs(`{"s12":5}`, nil, 3, 4).
		WillReturnError(unexpectedErr)

	err := m.SaveFields(r)
	if !errors.Is(err, unexpectedErr) {
		t.Errorf("got err '%v', want '%v'", err, unexpectedErr)
	}

	// Test the success path
	r.SetValue("t01", review.TextValue("summary"))
	mock.ExpectExec(q).
		WithArgs(`{"s12":5}`, `{"t01":"summary"}`, 3, 4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = m.SaveFields(r)
	if err != nil {
		t.Error(err)
	}
}

func TestSaveFieldsLegacySchema(t *testing.T) {
	m, mock, cleanup := newTestMySQL(t, 173)
	defer cleanup()

	// Schemas without field blobs must not be written to. Any query
	// fails the test since no expectations are set.
	r := review.NewRecord(m.conf)
	r.PaperID = 3
	r.ReviewID = 4
	r.SetValue("t01", review.TextValue("summary"))
	r.SetValue("s12", review.IntValue(5))

	err := m.SaveFields(r)
	if err != nil {
		t.Error(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSaveFieldsTextEncoding(t *testing.T) {
	m, mock, cleanup := newTestMySQL(t, 176)
	defer cleanup()

	// Text fields that cannot be encoded leave the stored tfields blob
	// untouched while the score fields are still written.
	q := "UPDATE PaperReview SET sfields = ? WHERE paperId = ? AND " +
		"reviewId = ?"
	r := review.NewRecord(m.conf)
	r.PaperID = 3
	r.ReviewID = 4
	r.SetValue("s12", review.IntValue(5))
	r.SetValue("t01", review.TextValue("good text"))
	r.SetValue("t02", review.TextValue("bad \xff"))

	mock.ExpectExec(q).
		WithArgs(`{"s12":5}`, 3, 4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := m.SaveFields(r)
	if err != nil {
		t.Error(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestDSN(t *testing.T) {
	got := dsn("db.example.com:3306", "reviewer", "secret", "conf26")
	want := "reviewer:secret@tcp(db.example.com:3306)/conf26?"
	if !strings.HasPrefix(got, want) {
		t.Errorf("got %v, want prefix %v", got, want)
	}
	if !strings.Contains(got, "group_concat_max_len=4194304") {
		t.Errorf("%v does not raise group_concat_max_len", got)
	}
}
