// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package review

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Conf is the conference a review belongs to.
type Conf interface {
	// SchemaVersion returns the schema version of the stored reviews.
	SchemaVersion() int

	// RoundName returns the name of a review round.
	RoundName(round int) string

	// DBName returns the database name. It is used to identify the
	// conference in log messages.
	DBName() string
}

// Paper is the paper that owns a set of reviews.
type Paper interface {
	ID() int
	Conf() Conf
}

// Contact contains the name of a reviewer.
type Contact struct {
	FirstName string
	LastName  string
	Email     string
}

// StaticConf is a Conf whose settings are fixed at construction. Rounds is
// indexed by round number. Round 0 is the default round and is unnamed.
type StaticConf struct {
	Name    string
	Version int
	Rounds  []string
}

var (
	_ Conf = (*StaticConf)(nil)
)

// SchemaVersion satisfies the Conf interface.
func (c *StaticConf) SchemaVersion() int {
	return c.Version
}

// RoundName satisfies the Conf interface.
func (c *StaticConf) RoundName(round int) string {
	if round <= 0 || round >= len(c.Rounds) {
		return ""
	}
	return c.Rounds[round]
}

// DBName satisfies the Conf interface.
func (c *StaticConf) DBName() string {
	return c.Name
}

// ValueKindT represents the kind of a dynamic review field value.
type ValueKindT int

const (
	ValueKindInvalid ValueKindT = 0
	ValueKindInt     ValueKindT = 1
	ValueKindText    ValueKindT = 2

	// ValueKindRaw is a JSON value of an unrecognized type. It is carried
	// through unmodified so that newer field sets survive hydration.
	ValueKindRaw ValueKindT = 3
)

// Value is the value of a dynamic score or text field.
type Value struct {
	Kind ValueKindT
	Int  int
	Text string
	Raw  json.RawMessage
}

// IntValue returns an integer Value.
func IntValue(n int) Value {
	return Value{Kind: ValueKindInt, Int: n}
}

// TextValue returns a text Value.
func TextValue(s string) Value {
	return Value{Kind: ValueKindText, Text: s}
}

// RawValue returns a raw JSON Value.
func RawValue(b json.RawMessage) Value {
	return Value{Kind: ValueKindRaw, Raw: b}
}

// AsInt returns the value as an integer. Text values are parsed and yield 0
// when they are not integers.
func (v Value) AsInt() int {
	switch v.Kind {
	case ValueKindInt:
		return v.Int
	case ValueKindText:
		n, _ := strconv.Atoi(strings.TrimSpace(v.Text))
		return n
	}
	return 0
}

// String returns the value as a string.
func (v Value) String() string {
	switch v.Kind {
	case ValueKindInt:
		return strconv.Itoa(v.Int)
	case ValueKindText:
		return v.Text
	case ValueKindRaw:
		return string(v.Raw)
	}
	return ""
}

// Record is a single review of a paper. A record is built by one of the
// hydration functions and must be treated as immutable once it has been
// handed to readers.
type Record struct {
	PaperID               int
	ReviewID              int
	ContactID             int
	ReviewToken           string
	ReviewType            int
	ReviewRound           int
	RequestedBy           int
	ReviewBlind           int
	ReviewModified        int64
	ReviewSubmitted       int64
	ReviewAuthorSeen      int64
	ReviewOrdinal         int
	TimeApprovalRequested int64
	ReviewNeedsSubmit     int

	// AllRatings contains the ratings other reviewers have given this
	// review. See DecodeRatings for the format.
	AllRatings string

	// Reviewer name, set by AssignName.
	FirstName string
	LastName  string
	Email     string

	conf   Conf
	sorter *string
	fields map[string]Value // [fieldID]Value
}

// NewRecord returns an empty record that belongs to the provided conference.
func NewRecord(conf Conf) *Record {
	return &Record{
		conf:   conf,
		fields: make(map[string]Value),
	}
}

// Conf returns the conference the record belongs to.
func (r *Record) Conf() Conf {
	return r.conf
}

// IsSubmitted returns whether the review has been submitted.
func (r *Record) IsSubmitted() bool {
	return r.ReviewSubmitted > 0
}

// RoundName returns the name of the review round. The default round has no
// name.
func (r *Record) RoundName() string {
	if r.ReviewRound == 0 || r.conf == nil {
		return ""
	}
	return r.conf.RoundName(r.ReviewRound)
}

// AssignName sets the reviewer name.
func (r *Record) AssignName(c Contact) {
	r.FirstName = c.FirstName
	r.LastName = c.LastName
	r.Email = c.Email
}

// SetSorter attaches a display sort key to the record. It is used by
// CompareDisplay when both records have one.
func (r *Record) SetSorter(s string) {
	r.sorter = &s
}

// Sorter returns the display sort key, if one has been attached.
func (r *Record) Sorter() (string, bool) {
	if r.sorter == nil {
		return "", false
	}
	return *r.sorter, true
}

// Value returns the value of a dynamic field. False is returned if the field
// has not been answered.
func (r *Record) Value(id string) (Value, bool) {
	v, ok := r.fields[id]
	return v, ok
}

// SetValue sets a dynamic field. A value with an invalid kind removes the
// field.
func (r *Record) SetValue(id string, v Value) {
	if r.fields == nil {
		r.fields = make(map[string]Value)
	}
	if v.Kind == ValueKindInvalid {
		delete(r.fields, id)
		return
	}
	r.fields[id] = v
}

// FieldValue returns the value of the field described by the FieldInfo.
func (r *Record) FieldValue(fi *FieldInfo) (Value, bool) {
	return r.Value(fi.ID)
}

// FieldIDs returns the ids of all dynamic fields in lexicographic order.
func (r *Record) FieldIDs() []string {
	ids := make([]string, 0, len(r.fields))
	for k := range r.fields {
		ids = append(ids, k)
	}
	sort.Strings(ids)
	return ids
}
