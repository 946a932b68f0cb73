// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package review

import (
	"fmt"
)

const (
	// MinSField is the first score field slot that never had a dedicated
	// database column. Score fields numbered below it may be stored in a
	// legacy column. Score fields at or above it are only ever stored in the
	// sfields JSON blob.
	MinSField = 12

	// SchemaVersionJSONStorage is the first schema version that stores
	// review fields in the sfields and tfields JSON blobs.
	SchemaVersionJSONStorage = 174

	// SchemaVersionJSONOnlyText is the first schema version where the
	// legacy text columns are no longer written. Text fields are stored in
	// the tfields JSON blob only.
	SchemaVersionJSONOnlyText = 175

	// SchemaVersionNoTextBackfill is the first schema version where the
	// short id text fields no longer need to be back-filled from the legacy
	// text columns during hydration.
	SchemaVersionNoTextBackfill = 176
)

// fieldTable is an immutable bidirectional mapping between the legacy long
// names of a field kind and their short ids. The slot number of a legacy
// field is its position in the table, starting at 1.
type fieldTable struct {
	prefix  byte
	legacy  []string          // Legacy names ordered by slot number
	byName  map[string]string // [legacyName]shortID
	byShort map[string]string // [shortID]legacyName
}

// newFieldTable builds a field table from the provided legacy names. The
// first name is assigned slot 1. Duplicate names are a programming error.
func newFieldTable(prefix byte, legacyNames ...string) fieldTable {
	if len(legacyNames) == 0 {
		panic("field table must contain at least one field")
	}

	t := fieldTable{
		prefix:  prefix,
		legacy:  make([]string, len(legacyNames)),
		byName:  make(map[string]string, len(legacyNames)),
		byShort: make(map[string]string, len(legacyNames)),
	}
	for i, name := range legacyNames {
		if _, ok := t.byName[name]; ok {
			panic(fmt.Sprintf("duplicate legacy field name %v", name))
		}
		short := shortFieldID(prefix, i+1)
		t.legacy[i] = name
		t.byName[name] = short
		t.byShort[short] = name
	}

	return t
}

// legacyName returns the legacy name for the provided slot number.
func (t *fieldTable) legacyName(n int) (string, bool) {
	if n < 1 || n > len(t.legacy) {
		return "", false
	}
	return t.legacy[n-1], true
}

// shortID returns the short id for the provided legacy name.
func (t *fieldTable) shortID(legacyName string) (string, bool) {
	s, ok := t.byName[legacyName]
	return s, ok
}

// names returns a copy of the legacy names ordered by slot number.
func (t *fieldTable) names() []string {
	n := make([]string, len(t.legacy))
	copy(n, t.legacy)
	return n
}

var (
	// textFields contains the text fields that had a dedicated legacy
	// column, ordered by slot number.
	textFields = newFieldTable('t',
		"paperSummary", "commentsToAuthor", "commentsToPC",
		"commentsToAddress", "weaknessOfPaper", "strengthOfPaper",
		"textField7", "textField8")

	// scoreFields contains the score fields that had a dedicated legacy
	// column, ordered by slot number.
	scoreFields = newFieldTable('s',
		"overAllMerit", "reviewerQualification", "novelty",
		"technicalMerit", "interestToCommunity", "longevity", "grammar",
		"likelyPresentation", "suitableForShort", "potential", "fixability")
)

func init() {
	if len(scoreFields.legacy) >= MinSField {
		panic("legacy score fields overlap the JSON only score fields")
	}
}

// FieldInfo describes where a review field is stored under a specific schema
// version.
type FieldInfo struct {
	// ID is the record attribute the field value is read from. This is the
	// legacy name for column backed score fields and the short id for
	// everything else.
	ID string `json:"id"`

	ShortID     string `json:"shortid"`               // Canonical 3 char id
	IsScore     bool   `json:"isscore"`               // Score or text field
	MainStorage string `json:"mainstorage,omitempty"` // Legacy column name
	JSONStorage string `json:"jsonstorage,omitempty"` // JSON blob key
}

// shortFieldID returns the short id for a field prefix and number.
func shortFieldID(prefix byte, n int) string {
	return fmt.Sprintf("%c%02d", prefix, n)
}

// parseFieldID parses a 3 character field id, one letter followed by two
// decimal digits, and returns the letter and the field number.
func parseFieldID(id string) (byte, int, bool) {
	if len(id) != 3 {
		return 0, 0, false
	}
	if !isDigit(id[1]) || !isDigit(id[2]) {
		return 0, 0, false
	}
	return id[0], int(id[1]-'0')*10 + int(id[2]-'0'), true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// FieldNumber returns the number of a 3 character field id.
func FieldNumber(id string) (int, bool) {
	_, n, ok := parseFieldID(id)
	return n, ok
}

// IsScoreFieldID returns whether the id has the shape of a score field id.
func IsScoreFieldID(id string) bool {
	p, _, ok := parseFieldID(id)
	return ok && p == 's'
}

// IsTextFieldID returns whether the id has the shape of a text field id.
func IsTextFieldID(id string) bool {
	p, _, ok := parseFieldID(id)
	return ok && p == 't'
}

// TextFieldShortID returns the short id for a legacy text field name.
func TextFieldShortID(legacyName string) (string, bool) {
	return textFields.shortID(legacyName)
}

// ScoreFieldShortID returns the short id for a legacy score field name.
func ScoreFieldShortID(legacyName string) (string, bool) {
	return scoreFields.shortID(legacyName)
}

// TextFieldLegacyName returns the legacy name for a text field short id.
func TextFieldLegacyName(shortID string) (string, bool) {
	n, ok := textFields.byShort[shortID]
	return n, ok
}

// ScoreFieldLegacyName returns the legacy name for a score field short id.
func ScoreFieldLegacyName(shortID string) (string, bool) {
	n, ok := scoreFields.byShort[shortID]
	return n, ok
}

// TextFieldLegacyNames returns the legacy text field names ordered by slot.
func TextFieldLegacyNames() []string {
	return textFields.names()
}

// ScoreFieldLegacyNames returns the legacy score field names ordered by slot.
func ScoreFieldLegacyNames() []string {
	return scoreFields.names()
}

// Resolve returns the storage strategy of the provided field id under the
// provided schema version. The id can either be a legacy field name or a
// 3 character short id. False is returned if the field does not exist under
// the schema version.
//
// Three storage eras exist:
//
//	< 174     legacy columns only
//	174       legacy columns and JSON blobs are both written
//	>= 175    text fields are JSON only, legacy score columns are kept
func Resolve(id string, sversion int) (*FieldInfo, bool) {
	if prefix, n, ok := parseFieldID(id); ok {
		var jsonStorage string
		if sversion >= SchemaVersionJSONStorage {
			jsonStorage = id
		}
		switch prefix {
		case 't':
			legacy, ok := textFields.legacyName(n)
			switch {
			case ok && sversion < SchemaVersionJSONOnlyText:
				return &FieldInfo{
					ID:          id,
					ShortID:     id,
					MainStorage: legacy,
					JSONStorage: jsonStorage,
				}, true
			case jsonStorage != "":
				return &FieldInfo{
					ID:          id,
					ShortID:     id,
					JSONStorage: jsonStorage,
				}, true
			}
		case 's':
			// Legacy score slots keep their dedicated column
			// regardless of the schema version.
			if legacy, ok := scoreFields.legacyName(n); ok {
				return &FieldInfo{
					ID:          legacy,
					ShortID:     id,
					IsScore:     true,
					MainStorage: legacy,
				}, true
			}
			if jsonStorage != "" {
				return &FieldInfo{
					ID:          id,
					ShortID:     id,
					IsScore:     true,
					JSONStorage: jsonStorage,
				}, true
			}
		}
		return nil, false
	}

	if short, ok := textFields.shortID(id); ok {
		fi := FieldInfo{
			ID:      short,
			ShortID: short,
		}
		if sversion < SchemaVersionJSONOnlyText {
			fi.MainStorage = id
		}
		if sversion >= SchemaVersionJSONStorage {
			fi.JSONStorage = short
		}
		return &fi, true
	}

	if short, ok := scoreFields.shortID(id); ok {
		return &FieldInfo{
			ID:          id,
			ShortID:     short,
			IsScore:     true,
			MainStorage: id,
		}, true
	}

	return nil, false
}
