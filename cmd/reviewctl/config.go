// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/decred/dcrd/dcrutil/v3"
	"github.com/decred/peerreview/review"
	"github.com/decred/peerreview/util"
	"github.com/decred/slog"
	"github.com/jessevdk/go-flags"
)

const (
	// General application settings
	appName     = "reviewctl"
	dataDirname = "data"
	logDirname  = "logs"
	logLevel    = "info"

	// Review database settings
	defaultSchemaVersion = review.SchemaVersionNoTextBackfill
	defaultDBHost        = "localhost:3306"
	defaultDBUser        = "reviewctl"
	defaultDBTimeout     = 1 * time.Minute
)

var (
	// General application settings
	configFilename = fmt.Sprintf("%v.conf", appName)
	logFilename    = fmt.Sprintf("%v.log", appName)

	appDir     = dcrutil.AppDataDir(appName, false)
	dataDir    = filepath.Join(appDir, dataDirname)
	logDir     = filepath.Join(appDir, logDirname)
	configFile = filepath.Join(appDir, configFilename)
)

// config is the command configuration.
type config struct {
	AppDir     string `long:"appdir" description:"Application home directory path"`
	DataDir    string `long:"datadir" description:"Data directory path"`
	LogDir     string `long:"logdir" description:"Log directory path"`
	ConfigFile string `long:"configfile" description:"Config file path"`
	LogLevel   string `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`

	// Conference settings
	SchemaVersion int      `long:"sversion" description:"Schema version of the stored reviews"`
	DBName        string   `long:"dbname" description:"Conference database name"`
	Rounds        []string `long:"round" description:"Review round name, in round order starting at round 1 (may be repeated)"`

	// Review database settings
	DBHost    string        `long:"dbhost" description:"MySQL host:port"`
	DBUser    string        `long:"dbuser" description:"MySQL user"`
	DBPass    string        `long:"dbpass" description:"MySQL password"`
	DBTimeout time.Duration `long:"dbtimeout" description:"Timeout of a single database operation"`
}

// conf returns the conference described by the config.
func (c *config) conf() *review.StaticConf {
	rounds := make([]string, 0, len(c.Rounds)+1)
	rounds = append(rounds, "")
	rounds = append(rounds, c.Rounds...)
	return &review.StaticConf{
		Name:    c.DBName,
		Version: c.SchemaVersion,
		Rounds:  rounds,
	}
}

// loadConfig initializes and parses the config using a config file and command
// line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// Command line options always take precedence.
func loadConfig() (*config, error) {
	// Setup the default config
	cfg := &config{
		AppDir:        appDir,
		DataDir:       dataDir,
		LogDir:        logDir,
		ConfigFile:    configFile,
		LogLevel:      logLevel,
		SchemaVersion: defaultSchemaVersion,
		DBHost:        defaultDBHost,
		DBUser:        defaultDBUser,
		DBTimeout:     defaultDBTimeout,
	}

	// Pre-parse the command line options to see if an alternative config
	// file was specified. The help message and unknown flag errors are
	// handled by the command parser.
	var (
		preCfg    = *cfg
		preParser = flags.NewParser(&preCfg, flags.IgnoreUnknown)
	)
	_, err := preParser.Parse()
	if err != nil {
		return nil, err
	}

	// Update the home directory if specified. Since the home directory
	// is updated, other variables need to be updated to reflect the new
	// changes.
	if preCfg.AppDir != appDir {
		cfg.AppDir = util.CleanAndExpandPath(preCfg.AppDir)

		if preCfg.DataDir == dataDir {
			cfg.DataDir = filepath.Join(cfg.AppDir, dataDirname)
		} else {
			cfg.DataDir = preCfg.DataDir
		}
		if preCfg.LogDir == logDir {
			cfg.LogDir = filepath.Join(cfg.AppDir, logDirname)
		} else {
			cfg.LogDir = preCfg.LogDir
		}
		if preCfg.ConfigFile == configFile {
			cfg.ConfigFile = filepath.Join(cfg.AppDir, configFilename)
		} else {
			cfg.ConfigFile = preCfg.ConfigFile
		}
	} else if preCfg.ConfigFile != configFile {
		cfg.ConfigFile = preCfg.ConfigFile
	}

	// Load any additional settings from the config file. A config file
	// is not required.
	parser := flags.NewParser(cfg, flags.IgnoreUnknown|flags.PassDoubleDash)
	if util.FileExists(cfg.ConfigFile) {
		err = flags.NewIniParser(parser).ParseFile(cfg.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("parse config file: %v", err)
		}
	}

	// Parse command line options again to ensure they take precedence
	_, err = parser.Parse()
	if err != nil {
		return nil, err
	}

	// Check for the show log level. This is used to list supported
	// subsystems and exit.
	if cfg.LogLevel == "show" {
		fmt.Println("Supported subsystems", SupportedSubsystems())
		os.Exit(0)
	}

	// Parse, validate, and set the log level
	err = parseAndSetLogLevels(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	// Validate the conference settings
	if cfg.SchemaVersion <= 0 {
		return nil, fmt.Errorf("invalid schema version %v",
			cfg.SchemaVersion)
	}
	if cfg.DBTimeout <= 0 {
		return nil, fmt.Errorf("invalid database timeout %v", cfg.DBTimeout)
	}

	// Clean and expand all file paths
	cfg.AppDir = util.CleanAndExpandPath(cfg.AppDir)
	cfg.DataDir = util.CleanAndExpandPath(cfg.DataDir)
	cfg.LogDir = util.CleanAndExpandPath(cfg.LogDir)
	cfg.ConfigFile = util.CleanAndExpandPath(cfg.ConfigFile)

	// Create the app and data directories if they don't exist
	err = os.MkdirAll(cfg.AppDir, 0700)
	if err != nil {
		return nil, fmt.Errorf("create app dir: %v", err)
	}
	err = os.MkdirAll(cfg.DataDir, 0700)
	if err != nil {
		return nil, fmt.Errorf("create data dir: %v", err)
	}

	return cfg, nil
}

// parseAndSetLogLevels attempts to parse the specified log level and set
// the levels accordingly. An appropriate error is returned if anything is
// invalid.
func parseAndSetLogLevels(logLevel string) error {
	// When the specified string doesn't have any delimiters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(logLevel, ",") &&
		!strings.Contains(logLevel, "=") {
		if !validLogLevel(logLevel) {
			return fmt.Errorf("the specified log level "+
				"[%v] is invalid", logLevel)
		}
		SetLogLevels(logLevel)
		return nil
	}

	// Split the specified string into subsystem/level pairs while
	// detecting issues and update the log levels accordingly.
	subsystems := make(map[string]struct{})
	for _, v := range SupportedSubsystems() {
		subsystems[v] = struct{}{}
	}
	for _, logLevelPair := range strings.Split(logLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			str := "The specified log level contains an invalid " +
				"subsystem/level pair [%v]"
			return fmt.Errorf(str, logLevelPair)
		}

		// Extract the specified subsystem and log level
		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		if _, exists := subsystems[subsysID]; !exists {
			str := "The specified subsystem [%v] is invalid -- " +
				"supported subsytems %v"
			return fmt.Errorf(str, subsysID, SupportedSubsystems())
		}
		if !validLogLevel(logLevel) {
			str := "The specified log level [%v] is invalid"
			return fmt.Errorf(str, logLevel)
		}

		SetLogLevel(subsysID, logLevel)
	}

	return nil
}

// validLogLevel returns whether the logLevel is a valid log level.
func validLogLevel(logLevel string) bool {
	_, ok := slog.LevelFromString(logLevel)
	return ok
}
