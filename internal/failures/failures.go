// Package failures produces the list of failing test names a run is
// classified against, either from a JUnit XML report or from plain text with
// one name per line.
package failures

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	junit "github.com/joshdk/go-junit"

	"github.com/kingrea/triage-filter/internal/logging"
)

var (
	// ErrReportParse is wrapped by every error FromJUnitFile returns.
	ErrReportParse = errors.New("failures: report parse failed")
	// ErrNoTestSuites reports a file whose root is not a JUnit suite element.
	ErrNoTestSuites = errors.New("failures: not a JUnit report")
)

// maxLineBytes bounds a single line read from a text stream.
const maxLineBytes = 1 << 20

// ParseError describes a results file that could not be read or decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failures: parse %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrReportParse and the underlying cause.
func (e *ParseError) Unwrap() []error {
	return []error{ErrReportParse, e.Err}
}

// FromJUnitFile returns the names of every failed or errored test case in the
// report, in document order. Passing, skipped and result-less cases are
// ignored. Names are returned exactly as written.
func FromJUnitFile(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("is a directory")}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if err := checkRoot(data); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	suites, err := junit.Ingest(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	var names []string
	for _, suite := range suites {
		names = collect(names, suite)
	}
	return names, nil
}

// checkRoot requires the document element to be <testsuites> or <testsuite>.
// junit.Ingest wraps its input in a synthetic root, so empty files, plain
// text and foreign XML would otherwise decode to zero suites.
func checkRoot(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return ErrNoTestSuites
		}
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "testsuites", "testsuite":
				return nil
			default:
				return fmt.Errorf("%w: root element is <%s>", ErrNoTestSuites, t.Name.Local)
			}
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return fmt.Errorf("%w: text outside of any element", ErrNoTestSuites)
			}
		}
	}
}

func collect(names []string, suite junit.Suite) []string {
	for _, test := range suite.Tests {
		if isFailure(test.Status) {
			names = append(names, test.Name)
		}
	}
	for _, nested := range suite.Suites {
		names = collect(names, nested)
	}
	return names
}

func isFailure(status junit.Status) bool {
	switch status {
	case junit.StatusFailed, junit.StatusError:
		return true
	default:
		return false
	}
}

// FromLines reads r to EOF and returns one name per line with surrounding
// whitespace removed. Blank lines are kept as empty names.
func FromLines(r io.Reader, log logging.Logger) ([]string, error) {
	if log == nil {
		log = logging.Nop()
	}
	log.Infof("reading failures from stdin")
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var names []string
	for scanner.Scan() {
		names = append(names, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failures: read lines: %w", err)
	}
	log.Infof("finished reading from stdin")
	return names, nil
}
