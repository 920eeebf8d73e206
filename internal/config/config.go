// internal/config/config.go
//
// This package holds the run configuration for triage-filter. The entry point
// builds one Config from flags (and environment fallbacks) and hands it to
// every component; nothing reads flags or the environment after that.

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kingrea/triage-filter/internal/logging"
)

// EnvPrefix is prepended to upper-cased flag names when looking up
// environment fallbacks, e.g. --test-results -> TRIAGE_TEST_RESULTS.
const EnvPrefix = "TRIAGE_"

// Flag names.
const (
	FlagNotes       = "notes"
	FlagTestResults = "test-results"
	FlagVerbose     = "verbose"
	FlagNoColor     = "no-color"
)

// Config is the complete set of knobs for a single run.
type Config struct {
	// NotesPath is the triage notes YAML file. Required.
	NotesPath string
	// ResultsPath is an optional JUnit XML report. When empty, failures are
	// read from standard input.
	ResultsPath string
	// Verbosity is the number of times -v was given.
	Verbosity int
	// NoColor disables ANSI styling in the report.
	NoColor bool
}

// RegisterFlags binds Config fields to the given FlagSet.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.NotesPath, FlagNotes, "", "path to triage notes file (required)")
	fs.StringVar(&c.ResultsPath, FlagTestResults, "", "path to a JUnit XML results file (default: read failure names from stdin)")
	fs.CountVarP(&c.Verbosity, FlagVerbose, "v", "increase log verbosity (-v info, -vv debug)")
	fs.BoolVar(&c.NoColor, FlagNoColor, false, "disable colored section titles")
}

// FillFromEnv sets any of the path flags not given on the command line from
// TRIAGE_<FLAG> environment variables. Command-line values always win.
func FillFromEnv(fs *pflag.FlagSet, lookup func(string) (string, bool)) error {
	var errs []error
	for _, name := range []string{FlagNotes, FlagTestResults} {
		f := fs.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		value, ok := lookup(EnvName(name))
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if err := fs.Set(name, value); err != nil {
			errs = append(errs, fmt.Errorf("config: %s: %w", EnvName(name), err))
		}
	}
	return errors.Join(errs...)
}

// EnvName returns the environment variable consulted for a flag.
func EnvName(flag string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// Validate checks all configuration fields for correctness.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.NotesPath) == "" {
		errs = append(errs, fmt.Errorf("--%s is required", FlagNotes))
	}
	if c.Verbosity < 0 {
		errs = append(errs, fmt.Errorf("invalid verbosity %d (must be >= 0)", c.Verbosity))
	}
	if c.ResultsPath != "" && strings.TrimSpace(c.ResultsPath) == "" {
		errs = append(errs, fmt.Errorf("--%s must not be blank", FlagTestResults))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ValidateFlags checks values that only make sense together with how they
// were given. An explicit --test-results "" would otherwise fall through to
// reading stdin.
func (c *Config) ValidateFlags(fs *pflag.FlagSet) error {
	if fs.Changed(FlagTestResults) && strings.TrimSpace(c.ResultsPath) == "" {
		return fmt.Errorf("--%s must not be empty", FlagTestResults)
	}
	return nil
}

// UsesStdin reports whether failure names come from standard input.
func (c *Config) UsesStdin() bool {
	return c.ResultsPath == ""
}

// LogLevel maps the -v count to a logging level.
func (c *Config) LogLevel() logging.Level {
	return logging.LevelFromVerbosity(c.Verbosity)
}
