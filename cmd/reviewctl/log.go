// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/decred/peerreview/review"
	"github.com/decred/peerreview/review/mysql"
	"github.com/decred/peerreview/sigcache"
	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
	"github.com/pkg/errors"
)

// logWriter implements an io.Writer that outputs to the write-end pipe of an
// initialized log rotator and can optionally write to stdout as well.
type logWriter struct {
	stdout bool // Write to the log file and stdout
}

var (
	// logPrefix matches the timestamp, level and subsystem that slog
	// prefixes onto each log line.
	//
	// Log line    : "2026-10-17 11:23:19.766 [INF] RCTL: s01 overAllMerit"
	// Regexp match: "2026-10-17 11:23:19.766 [INF] RCTL: "
	logPrefix = regexp.MustCompile(`^[^\[]+[^:]+: `)
)

func (l logWriter) Write(p []byte) (n int, err error) {
	if l.stdout {
		line := p
		if idx := logPrefix.FindIndex(p); idx != nil {
			line = p[idx[1]:]
		}
		os.Stdout.Write(line)
	}
	if logRotator == nil {
		// Log rotator not initialized
		return len(p), nil
	}
	return logRotator.Write(p)
}

// Loggers per subsystem. A single backend logger is created and all
// subsystem loggers created from it write to the backend.
//
// Log file output starts once InitLogRotator has been called. Output written
// before then only goes to stdout.
var (
	// backendLog is the logging backend used to create all subsystem
	// loggers.
	backendLog = slog.NewBackend(logWriter{stdout: true})

	// logRotator is one of the logging outputs. It should be closed on
	// application shutdown.
	logRotator *rotator.Rotator

	// subsystemLoggers contains all of the subsystem loggers.
	subsystemLoggers = map[string]slog.Logger{}
)

// Initialize the package-global loggers of the libraries.
func init() {
	review.UseLogger(NewSubsystemLogger("REVW"))
	mysql.UseLogger(NewSubsystemLogger("RSQL"))
	sigcache.UseLogger(NewSubsystemLogger("SCCH"))
}

// InitLogRotator initializes the logging rotater to write logs to logFile and
// create roll files in the same directory. It must be called before the
// package-global log rotater variables are used.
func InitLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	err := os.MkdirAll(logDir, 0700)
	if err != nil {
		return errors.Errorf("failed to create log dir %v: %v",
			logDir, err)
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return errors.Errorf("failed to create log file rotator: %v", err)
	}

	logRotator = r

	return nil
}

// CloseLogRotator closes the log rotator.
func CloseLogRotator() {
	if logRotator != nil {
		logRotator.Close()
	}
}

// NewSubsystemLogger registers and returns a new subsystem logger.
func NewSubsystemLogger(subsystemTag string) slog.Logger {
	l, ok := subsystemLoggers[subsystemTag]
	if ok {
		return l
	}
	l = backendLog.Logger(subsystemTag)
	subsystemLoggers[subsystemTag] = l
	return l
}

// SupportedSubsystems returns a sorted slice of the supported subsystems for
// logging purposes.
func SupportedSubsystems() []string {
	subsystems := make([]string, 0, len(subsystemLoggers))
	for subsysID := range subsystemLoggers {
		subsystems = append(subsystems, subsysID)
	}
	sort.Strings(subsystems)
	return subsystems
}

// SetLogLevel sets the logging level for provided subsystem. Invalid
// subsystems are ignored. The log level defaults to info if an invalid log
// level is provided.
func SetLogLevel(subsystemID string, logLevel string) {
	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}
	level, _ := slog.LevelFromString(logLevel)
	logger.SetLevel(level)
}

// SetLogLevels sets the log level for all subsystem loggers to the passed
// level.
func SetLogLevels(logLevel string) {
	for subsystemID := range subsystemLoggers {
		SetLogLevel(subsystemID, logLevel)
	}
}
