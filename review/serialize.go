// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package review

import (
	"encoding/json"
	"unicode/utf8"
)

// UnparseScores returns the sfields JSON blob of the record. Only score
// fields numbered at or above MinSField are included since the lower score
// fields are stored in their legacy columns. Nil is returned if no score
// field qualifies.
func UnparseScores(r *Record) []byte {
	var data map[string]int
	for k, v := range r.fields {
		n, ok := FieldNumber(k)
		if !ok || !IsScoreFieldID(k) || n < MinSField {
			continue
		}
		score := v.AsInt()
		if score == 0 {
			continue
		}
		if data == nil {
			data = make(map[string]int)
		}
		data[k] = score
	}
	if data == nil {
		return nil
	}

	b, err := json.Marshal(data)
	if err != nil {
		// Not possible with integer values
		log.Errorf("review #%v/%v: score fields cannot be converted "+
			"to JSON: %v", r.PaperID, r.ReviewID, err)
		return nil
	}

	return b
}

// UnparseTexts returns the tfields JSON blob of the record. Empty text
// fields are left out. Nil is returned if the record has no text fields.
//
// A text field that is not valid UTF-8 cannot be stored in the blob. The
// failure is logged and nil is returned so that the surrounding write can
// continue. Use EncodeTexts to tell the two nil cases apart.
func UnparseTexts(r *Record) []byte {
	b, _ := EncodeTexts(r)
	return b
}

// EncodeTexts returns the tfields JSON blob of the record. The returned bool
// is false if the text fields could not be encoded. A nil blob with a true
// bool means the record has no text fields.
func EncodeTexts(r *Record) ([]byte, bool) {
	var data map[string]string
	for k, v := range r.fields {
		if !IsTextFieldID(k) {
			continue
		}
		switch v.Kind {
		case ValueKindText, ValueKindInt:
		default:
			continue
		}
		s := v.String()
		if s == "" {
			continue
		}
		if data == nil {
			data = make(map[string]string)
		}
		data[k] = s
	}
	if data == nil {
		return nil, true
	}

	for _, s := range data {
		if !utf8.ValidString(s) {
			logTextEncodingFailure(r)
			return nil, false
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		logTextEncodingFailure(r)
		return nil, false
	}

	return b, true
}

func logTextEncodingFailure(r *Record) {
	var prefix string
	if r.conf != nil && r.conf.DBName() != "" {
		prefix = r.conf.DBName() + ": "
	}
	log.Errorf("%vreview #%v/%v: text fields cannot be converted to JSON",
		prefix, r.PaperID, r.ReviewID)
}
