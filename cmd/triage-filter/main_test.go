package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/kingrea/triage-filter/internal/failures"
	"github.com/kingrea/triage-filter/internal/notes"
)

const notesYAML = `tests:
  - name: T1
    label: failing
    description: db timeout
    links:
      - https://issues.example.com/7
  - name: T2
  - name: T3
    label: flake
  - name: T5
    label: wontfix
`

const resultsXML = `<testsuites>
  <testsuite name="s">
    <testcase name="T1"><failure/></testcase>
    <testcase name="T2"><error/></testcase>
    <testcase name="T3"><failure/></testcase>
    <testcase name="T4"><failure/></testcase>
    <testcase name="T5"><failure/></testcase>
    <testcase name="T6"/>
    <testcase name="T7"><skipped/></testcase>
  </testsuite>
</testsuites>
`

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type harness struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
	env    map[string]string
}

func (h *harness) exec(t *testing.T, stdin string, args ...string) error {
	t.Helper()
	a := &app{
		stdin:  strings.NewReader(stdin),
		stdout: &h.stdout,
		stderr: &h.stderr,
		lookupEnv: func(k string) (string, bool) {
			v, ok := h.env[k]
			return v, ok
		},
	}
	cmd := a.rootCmd()
	if args == nil {
		// cobra falls back to os.Args when args is nil
		args = []string{}
	}
	cmd.SetArgs(args)
	return cmd.Execute()
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func sections(out string) map[string][]string {
	res := map[string][]string{}
	var current string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case line == "":
		case !strings.HasPrefix(line, " "):
			current = line
			res[current] = nil
		default:
			res[current] = append(res[current], strings.TrimSpace(line))
		}
	}
	return res
}

func TestRunFromJUnitReport(t *testing.T) {
	var h harness
	notesPath := writeFile(t, "notes.yaml", notesYAML)
	resultsPath := writeFile(t, "results.xml", resultsXML)

	require.NoError(t, h.exec(t, "", "--notes", notesPath, "--test-results", resultsPath))

	got := sections(h.stdout.String())
	assert.Equal(t, []string{"T4"}, got["Not Triaged"])
	assert.Equal(t, []string{"T2"}, got["Partially Triaged"])
	assert.Equal(t, []string{"T1" + strings.Repeat(" ", 38) + "db timeout", "- https://issues.example.com/7"}, got["True Failures"])
	assert.Equal(t, []string{"T3"}, got["Flakey Tests"])
	assert.NotContains(t, h.stdout.String(), "T5")
	assert.NotContains(t, h.stdout.String(), "\x1b[")
	assert.Empty(t, h.stderr.String())
}

func TestRunFromStdin(t *testing.T) {
	var h harness
	notesPath := writeFile(t, "notes.yaml", notesYAML)

	require.NoError(t, h.exec(t, "T3\nT9\n", "--notes", notesPath))

	got := sections(h.stdout.String())
	assert.Equal(t, []string{"T9"}, got["Not Triaged"])
	assert.Equal(t, []string{"none"}, got["Partially Triaged"])
	assert.Equal(t, []string{"none"}, got["True Failures"])
	assert.Equal(t, []string{"T3"}, got["Flakey Tests"])
}

func TestRunVerboseLogsFailures(t *testing.T) {
	var h harness
	notesPath := writeFile(t, "notes.yaml", notesYAML)

	require.NoError(t, h.exec(t, "T1\nT2\n", "--notes", notesPath, "-vv"))

	logs := h.stderr.String()
	assert.Contains(t, logs, "loading triage notes from "+notesPath)
	assert.Contains(t, logs, "reading failures from stdin")
	assert.Contains(t, logs, "loaded failures:")
	assert.Contains(t, logs, "  T2")
}

func TestRunInfoOmitsDebug(t *testing.T) {
	var h harness
	notesPath := writeFile(t, "notes.yaml", notesYAML)

	require.NoError(t, h.exec(t, "T1\n", "--notes", notesPath, "-v"))

	logs := h.stderr.String()
	assert.Contains(t, logs, "loading triage notes")
	assert.NotContains(t, logs, "loaded failures:")
}

func TestRunNotesFromEnv(t *testing.T) {
	h := harness{env: map[string]string{"TRIAGE_NOTES": writeFile(t, "notes.yaml", notesYAML)}}
	require.NoError(t, h.exec(t, "T2\n"))
	assert.Equal(t, []string{"T2"}, sections(h.stdout.String())["Partially Triaged"])
}

func TestRunMissingNotesFlag(t *testing.T) {
	var h harness
	err := h.exec(t, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--notes is required")
	assert.Empty(t, h.stdout.String())
}

func TestRunBadNotesAbortsBeforeOutput(t *testing.T) {
	var h harness
	notesPath := writeFile(t, "notes.yaml", "other: true\n")

	err := h.exec(t, "T1\n", "--notes", notesPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, notes.ErrNotesLoad)
	var rep reportedError
	assert.True(t, errors.As(err, &rep))
	assert.Empty(t, h.stdout.String())
	assert.Contains(t, h.stderr.String(), notesPath)
}

func TestRunBadReportAbortsBeforeOutput(t *testing.T) {
	var h harness
	notesPath := writeFile(t, "notes.yaml", notesYAML)
	resultsPath := writeFile(t, "results.xml", "<testsuite><testcase name=\"a\"></testsuite>")

	err := h.exec(t, "", "--notes", notesPath, "--test-results", resultsPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, failures.ErrReportParse)
	assert.Empty(t, h.stdout.String())
}

func TestRunRejectsPositionalArgs(t *testing.T) {
	var h harness
	notesPath := writeFile(t, "notes.yaml", notesYAML)
	err := h.exec(t, "", "--notes", notesPath, "extra")
	require.Error(t, err)
	assert.Empty(t, h.stdout.String())
}

func TestRunRejectsNonJUnitResults(t *testing.T) {
	notesPath := writeFile(t, "notes.yaml", notesYAML)
	bodies := map[string]string{
		"empty":      "",
		"plain text": "T1\nT4\n",
		"html":       "<html><body/></html>",
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			var h harness
			resultsPath := writeFile(t, "results.xml", body)
			err := h.exec(t, "", "--notes", notesPath, "--test-results", resultsPath)
			require.Error(t, err)
			assert.ErrorIs(t, err, failures.ErrReportParse)
			assert.Empty(t, h.stdout.String())
			assert.Contains(t, h.stderr.String(), resultsPath)
		})
	}
}

func TestRunRejectsExplicitEmptyResultsPath(t *testing.T) {
	var h harness
	notesPath := writeFile(t, "notes.yaml", notesYAML)
	err := h.exec(t, "T1\n", "--notes", notesPath, "--test-results", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--test-results must not be empty")
	assert.Empty(t, h.stdout.String())
}

func TestReportFatal(t *testing.T) {
	var buf bytes.Buffer
	reportFatal(&buf, errors.New("configuration validation failed: --notes is required"))
	assert.Equal(t, "fatal error: configuration validation failed: --notes is required\n", buf.String())

	buf.Reset()
	reportFatal(&buf, reportedError{err: errors.New("already logged")})
	assert.Empty(t, buf.String())
}
