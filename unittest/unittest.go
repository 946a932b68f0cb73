// Copyright (c) 2021-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package unittest contains helpers that are shared by the unit tests of
// other packages.
package unittest

import (
	"reflect"

	"github.com/pkg/errors"
)

// mapKey returns the provided integer map key as a uint64.
func mapKey(k reflect.Value) (uint64, error) {
	switch k.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64:
		return k.Uint(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64:
		if k.Int() < 0 {
			return 0, errors.Errorf("negative key: %v", k.Int())
		}
		return uint64(k.Int()), nil
	}
	return 0, errors.Errorf("unsupported key type: %v", k.Kind())
}

// TestGenericConstMap verifies that a map of constant codes to human
// readable descriptions contains every code from 0 up to, but not including,
// lastCode and nothing else. String descriptions must not be empty.
//
// This function is for unit tests only.
func TestGenericConstMap(constMap interface{}, lastCode uint64) error {
	val := reflect.ValueOf(constMap)
	if val.Kind() != reflect.Map {
		return errors.Errorf("not a map: %T", constMap)
	}

	seen := make(map[uint64]struct{}, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		key, err := mapKey(iter.Key())
		if err != nil {
			return err
		}
		if key >= lastCode {
			return errors.Errorf("code %v is not below the last code %v",
				key, lastCode)
		}
		v := iter.Value()
		if v.Kind() == reflect.String && v.Len() == 0 {
			return errors.Errorf("code %v has an empty description", key)
		}
		seen[key] = struct{}{}
	}

	if uint64(len(seen)) != lastCode {
		missing := make([]uint64, 0, lastCode)
		for i := uint64(0); i < lastCode; i++ {
			if _, ok := seen[i]; !ok {
				missing = append(missing, i)
			}
		}
		return errors.Errorf("someone added a code without adding a "+
			"human readable description: missing %v", missing)
	}

	return nil
}
