// Copyright (c) 2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/decred/peerreview/sigcache"
	"github.com/decred/peerreview/util"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

var (
	// cfg is the global config object that all commands have access to.
	cfg *config

	// cache is the signature cache that commands can use to persist the
	// review signatures of a paper between invocations.
	cache *sigcache.Cache

	// log is the global log variable that commands can use to write output
	// to the log file and stdout.
	log = NewSubsystemLogger("RCTL")
)

func main() {
	err := _main()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)

		// If this is a pkg/errors error then we can
		// pull the stack trace out of the error and
		// print it.
		stack, ok := util.StackTrace(err)
		if ok {
			fmt.Fprintf(os.Stderr, "%v\n", stack)
		}

		os.Exit(1)
	}
}

func _main() error {
	// Load the config. This also sets the global
	// cfg variable.
	var err error
	cfg, err = loadConfig()
	if err != nil {
		return errors.Errorf("load config: %v", err)
	}

	// Setup the log rotation. The log global variable may now
	// be used.
	err = InitLogRotator(filepath.Join(cfg.LogDir, logFilename))
	if err != nil {
		return err
	}
	defer CloseLogRotator()

	log.Tracef("App dir: %v", cfg.AppDir)

	// Setup the signature cache
	cache, err = sigcache.New(cfg.DataDir)
	if err != nil {
		return err
	}
	defer cache.Close()

	// Parse the CLI args and execute the command. The help message
	// flags and unknown flag errors are caught during this parse.
	parser := flags.NewParser(&cmds{DoNotUse: cfg}, flags.Default)
	_, err = parser.Parse()
	if err != nil {
		// An error has occurred during command
		// execution. go-flags will have already
		// printed the error to os.Stdout. Exit
		// with an error code.
		os.Exit(1)
	}

	return nil
}
