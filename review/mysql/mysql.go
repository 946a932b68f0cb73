// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/decred/peerreview/review"
	driver "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
)

const (
	// defaultReviewTable is the default name of the review table.
	defaultReviewTable = "PaperReview"

	// defaultRatingTable is the default name of the review rating table.
	defaultRatingTable = "ReviewRating"

	// defaultOpTimeout is the default timeout for a single database
	// operation.
	defaultOpTimeout = 1 * time.Minute

	// Database connection settings
	connMaxLifetime = 1 * time.Minute
	maxOpenConns    = 0 // 0 is unlimited
	maxIdleConns    = 10

	// groupConcatMaxLen is the session group_concat result limit in
	// bytes.
	groupConcatMaxLen = 1 << 22
)

// Opts includes configurable options for the review database.
type Opts struct {
	// ReviewTable is the name of the review table. Defaults to
	// "PaperReview".
	ReviewTable string

	// RatingTable is the name of the review rating table. Defaults to
	// "ReviewRating".
	RatingTable string

	// OpTimeout is the timeout for a single database operation. Defaults
	// to 1 minute.
	OpTimeout time.Duration
}

// mysql reads review rows from an existing review table and hydrates them
// into review records. It writes the serialized review field blobs back to
// the same table.
type mysql struct {
	db   *sql.DB
	conf review.Conf
	opts *Opts
}

// ctxForOp returns a context and cancel function for a single database
// operation.
func (m *mysql) ctxForOp() (context.Context, func()) {
	return context.WithTimeout(context.Background(), m.opts.OpTimeout)
}

// reviewsQuery returns the query that selects the review rows of a paper
// along with their aggregated ratings.
func (m *mysql) reviewsQuery() string {
	return fmt.Sprintf("SELECT r.*, (SELECT group_concat(rr.contactId, ' ', "+
		"rr.rating ORDER BY rr.contactId) FROM %v rr WHERE rr.paperId = "+
		"r.paperId AND rr.reviewId = r.reviewId) AS %v FROM %v r "+
		"WHERE r.paperId = ?",
		m.opts.RatingTable, review.ColAllRatings, m.opts.ReviewTable)
}

// signaturesQuery returns the query that selects the signature aggregate of
// each of the provided number of papers.
func (m *mysql) signaturesQuery(papers int) string {
	return fmt.Sprintf("SELECT r.paperId, %v FROM %v r WHERE r.paperId "+
		"IN (%v) GROUP BY r.paperId", review.SignatureSQL(),
		m.opts.ReviewTable, placeholders(papers))
}

// placeholders returns n comma separated query placeholders.
func placeholders(n int) string {
	p := make([]string, n)
	for i := range p {
		p[i] = "?"
	}
	return strings.Join(p, ",")
}

// scanRows scans all remaining rows into raw review rows. NULL columns are
// left out of the returned rows.
func scanRows(rows *sql.Rows) ([]review.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var (
		out  = make([]review.Row, 0, 16)
		vals = make([]sql.NullString, len(cols))
		ptrs = make([]interface{}, len(cols))
	)
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		err := rows.Scan(ptrs...)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		row := make(review.Row, len(cols))
		for i, c := range cols {
			if vals[i].Valid {
				row[c] = vals[i].String
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	return out, nil
}

// Reviews returns the reviews of a paper in display order.
func (m *mysql) Reviews(paperID int) ([]*review.Record, error) {
	log.Tracef("Reviews: %v", paperID)

	ctx, cancel := m.ctxForOp()
	defer cancel()

	rows, err := m.db.QueryContext(ctx, m.reviewsQuery(), paperID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	raw, err := scanRows(rows)
	if err != nil {
		return nil, err
	}

	records := make([]*review.Record, 0, len(raw))
	for _, row := range raw {
		r, err := review.Hydrate(row, m.conf)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	review.SortDisplay(records)

	log.Debugf("Paper %v: %v reviews", paperID, len(records))

	return records, nil
}

// Signatures returns the signature aggregate of each of the provided papers.
// Papers without reviews are not included in the returned map.
func (m *mysql) Signatures(paperIDs []int) (map[int]string, error) {
	log.Tracef("Signatures: %v", paperIDs)

	sigs := make(map[int]string, len(paperIDs))
	if len(paperIDs) == 0 {
		return sigs, nil
	}

	ctx, cancel := m.ctxForOp()
	defer cancel()

	args := make([]interface{}, 0, len(paperIDs))
	for _, v := range paperIDs {
		args = append(args, v)
	}
	rows, err := m.db.QueryContext(ctx, m.signaturesQuery(len(paperIDs)),
		args...)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			paperID int
			agg     sql.NullString
		)
		err := rows.Scan(&paperID, &agg)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if agg.Valid {
			sigs[paperID] = agg.String
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	return sigs, nil
}

// blobArg returns the query argument for a JSON field blob. A nil blob is
// stored as NULL.
func blobArg(b []byte) interface{} {
	if b == nil {
		return nil
	}
	return string(b)
}

// SaveFields writes the sfields and tfields JSON blobs of the record.
//
// Reviews of a conference whose schema predates the JSON blobs have no blob
// columns, so nothing is written. The tfields column is left untouched when
// the text fields cannot be encoded so that the stored text survives.
func (m *mysql) SaveFields(r *review.Record) error {
	log.Tracef("SaveFields: %v/%v", r.PaperID, r.ReviewID)

	sversion := m.conf.SchemaVersion()
	if sversion < review.SchemaVersionJSONStorage {
		log.Debugf("SaveFields: review #%v/%v: schema version %v has no "+
			"field blobs", r.PaperID, r.ReviewID, sversion)
		return nil
	}

	var (
		cols = []string{review.ColSFields + " = ?"}
		args = []interface{}{blobArg(review.UnparseScores(r))}
	)
	texts, ok := review.EncodeTexts(r)
	if ok {
		cols = append(cols, review.ColTFields+" = ?")
		args = append(args, blobArg(texts))
	}
	args = append(args, r.PaperID, r.ReviewID)

	ctx, cancel := m.ctxForOp()
	defer cancel()

	q := fmt.Sprintf("UPDATE %v SET %v WHERE paperId = ? AND reviewId = ?",
		m.opts.ReviewTable, strings.Join(cols, ", "))
	_, err := m.db.ExecContext(ctx, q, args...)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Close closes the database connection.
func (m *mysql) Close() error {
	return m.db.Close()
}

// dsn returns the data source name of a MySQL database.
func dsn(host, user, password, dbname string) string {
	cfg := driver.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = host
	cfg.DBName = dbname

	// Signature aggregates of papers with many reviews exceed the
	// default group_concat limit of 1024 bytes.
	cfg.Params = map[string]string{
		"group_concat_max_len": strconv.Itoa(groupConcatMaxLen),
	}

	return cfg.FormatDSN()
}

// Open opens and verifies a connection to a MySQL database.
func Open(host, user, password, dbname string) (*sql.DB, error) {
	log.Infof("MySQL host: %v:[password]@tcp(%v)/%v", user, host, dbname)

	db, err := sql.Open("mysql", dsn(host, user, password, dbname))
	if err != nil {
		return nil, err
	}

	// Setup database options
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)

	// Verify database connection
	ctx, cancel := context.WithTimeout(context.Background(),
		defaultOpTimeout)
	defer cancel()
	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, errors.Errorf("db ping: %v", err)
	}

	return db, nil
}

// New returns a new mysql context for the reviews of the provided
// conference. The conf must not be nil. The opts param can be used to
// override the default settings.
func New(db *sql.DB, conf review.Conf, opts *Opts) *mysql {
	// Setup database options
	reviewTable := defaultReviewTable
	ratingTable := defaultRatingTable
	opTimeout := defaultOpTimeout

	// Override defaults if options are provided
	if opts != nil {
		if opts.ReviewTable != "" {
			reviewTable = opts.ReviewTable
		}
		if opts.RatingTable != "" {
			ratingTable = opts.RatingTable
		}
		if opts.OpTimeout != 0 {
			opTimeout = opts.OpTimeout
		}
	}

	return &mysql{
		db:   db,
		conf: conf,
		opts: &Opts{
			ReviewTable: reviewTable,
			RatingTable: ratingTable,
			OpTimeout:   opTimeout,
		},
	}
}
