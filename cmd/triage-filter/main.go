// cmd/triage-filter/main.go
//
// Entry point for triage-filter. It sorts failing test names (from a JUnit
// report or stdin) against a triage notes file and prints four sections:
// not triaged, partially triaged, true failures and flakey tests.
//
// Flow:
// 1. Build a Config from flags, with TRIAGE_* environment fallbacks
// 2. Load the notes file (abort on any problem)
// 3. Collect failure names from --test-results or stdin
// 4. Classify and print the report

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kingrea/triage-filter/internal/classify"
	"github.com/kingrea/triage-filter/internal/config"
	"github.com/kingrea/triage-filter/internal/failures"
	"github.com/kingrea/triage-filter/internal/logging"
	"github.com/kingrea/triage-filter/internal/notes"
	"github.com/kingrea/triage-filter/internal/report"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries the process streams so tests can swap them out.
type app struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	lookupEnv func(string) (string, bool)
}

// reportedError wraps a failure that has already been written to the log.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func main() {
	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr, lookupEnv: os.LookupEnv}
	if err := a.rootCmd().Execute(); err != nil {
		reportFatal(os.Stderr, err)
		os.Exit(1)
	}
}

// reportFatal prints err unless it already went through the logger.
func reportFatal(w io.Writer, err error) {
	var rep reportedError
	if errors.As(err, &rep) {
		return
	}
	fmt.Fprintln(w, "fatal error:", err)
}

func (a *app) rootCmd() *cobra.Command {
	var cfg config.Config
	cmd := &cobra.Command{
		Use:   "triage-filter --notes PATH [--test-results PATH]",
		Short: "Filter test failures through triage notes",
		Long: `Filter results from stdin or a JUnit file using triage notes.

Failures are grouped into four sections:
  Not Triaged        no entry in the notes file
  Partially Triaged  an entry exists but carries no label
  True Failures      entries labelled "failing"
  Flakey Tests       entries labelled "flake"

Without --test-results, failure names are read from stdin, one per line.

Example:
  triage-filter --notes triage.yaml --test-results junit.xml
  grep FAIL build.log | cut -d' ' -f2 | triage-filter --notes triage.yaml -v`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.FillFromEnv(cmd.Flags(), a.lookupEnv); err != nil {
				return err
			}
			if err := errors.Join(cfg.Validate(), cfg.ValidateFlags(cmd.Flags())); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			lg := logging.New(a.stderr, cfg.LogLevel())
			defer func() { _ = lg.Sync() }()

			if err := a.run(cfg, lg); err != nil {
				lg.Criticalf("%v", err)
				return reportedError{err: err}
			}
			return nil
		},
	}
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cfg.RegisterFlags(cmd.Flags())
	return cmd
}

func (a *app) run(cfg config.Config, lg logging.Logger) error {
	store, err := notes.Load(cfg.NotesPath, lg)
	if err != nil {
		return err
	}

	var names []string
	if cfg.UsesStdin() {
		names, err = failures.FromLines(a.stdin, lg)
	} else {
		lg.Infof("loading test results from %s", cfg.ResultsPath)
		names, err = failures.FromJUnitFile(cfg.ResultsPath)
	}
	if err != nil {
		return err
	}

	lg.Debugf("loaded failures:")
	for _, name := range names {
		lg.Debugf("  %s", name)
	}

	res := classify.Classify(names, store)
	lg.Infof("classified %d failures into %d report items: %d untriaged, %d partially triaged, %d failing, %d flaky, %d excluded",
		len(names), res.Total(), len(res.Untriaged), len(res.PartiallyTriaged), len(res.ConfirmedFailing), len(res.Flaky), res.Excluded)

	noColor := cfg.NoColor || !isTerminal(a.stdout)
	return report.New(a.stdout, report.Options{NoColor: noColor}).Render(res)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
