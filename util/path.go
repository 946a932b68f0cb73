// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// FileExists reports whether the named file or directory exists.
func FileExists(name string) bool {
	_, err := os.Stat(name)
	return !os.IsNotExist(err)
}

// homeDir returns the home directory of the named user, or of the current
// user when no name is given. The working directory is returned when the
// user cannot be found.
func homeDir(name string) string {
	var (
		u   *user.User
		err error
	)
	if name == "" {
		u, err = user.Current()
	} else {
		u, err = user.Lookup(name)
	}
	if err != nil || u.HomeDir == "" {
		return "."
	}
	return u.HomeDir
}

// CleanAndExpandPath expands environment variables and a leading ~ or ~user
// in the path, then cleans the result.
func CleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}

	path = os.ExpandEnv(path)
	if !strings.HasPrefix(path, "~") {
		return filepath.Clean(path)
	}

	// Split "~name/rest" into the user name and the remainder. Both
	// separators are accepted on Windows.
	rest := path[1:]
	var name string
	if i := strings.IndexAny(rest, `/`+string(os.PathSeparator)); i != -1 {
		name, rest = rest[:i], rest[i:]
	} else {
		name, rest = rest, ""
	}

	return filepath.Join(homeDir(name), rest)
}
