package notes

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/triage-filter/internal/logging"
)

var (
	// ErrNotesLoad is wrapped by every error Load returns.
	ErrNotesLoad = errors.New("notes: load failed")
	// ErrMalformedEntry marks an entry that cannot be used for lookups.
	ErrMalformedEntry = errors.New("notes: malformed entry")
	// ErrMissingTests reports a document without a `tests` list.
	ErrMissingTests = errors.New("notes: document has no tests key")
)

// LoadError describes why a notes file could not be used.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("notes: load %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrNotesLoad and the underlying cause to errors.Is.
func (e *LoadError) Unwrap() []error {
	return []error{ErrNotesLoad, e.Err}
}

type document struct {
	Tests *[]rawEntry `yaml:"tests"`
}

// Store holds the entries of a notes document in file order.
type Store struct {
	path    string
	entries EntrySet
}

// New builds a Store from already-parsed entries. Names are trimmed.
func New(entries ...Entry) *Store {
	set := make(EntrySet, 0, len(entries))
	for _, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		e.Description = strings.TrimSpace(e.Description)
		set = append(set, e)
	}
	return &Store{entries: set}
}

// Load reads and parses the notes file at path.
func Load(path string, log logging.Logger) (*Store, error) {
	if log == nil {
		log = logging.Nop()
	}
	log.Infof("loading triage notes from %s", path)
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("is a directory")}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	store, err := parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	store.path = path
	log.Infof("loaded %d triage entries", store.Len())
	return store, nil
}

// Parse decodes a notes document held in memory.
func Parse(data []byte) (*Store, error) {
	store, err := parse(data)
	if err != nil {
		return nil, &LoadError{Path: "<memory>", Err: err}
	}
	return store, nil
}

func parse(data []byte) (*Store, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrMissingTests
	}
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.Tests == nil {
		return nil, ErrMissingTests
	}
	raw := *doc.Tests
	entries := make(EntrySet, 0, len(raw))
	for i, r := range raw {
		entry, err := r.toEntry()
		if err != nil {
			return nil, fmt.Errorf("%w: tests[%d]: %v", ErrMalformedEntry, i, err)
		}
		entries = append(entries, entry)
	}
	return &Store{entries: entries}, nil
}

// Path returns the file the store was loaded from, if any.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Len returns the number of entries in the document.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entry returns the first entry whose name equals the trimmed name.
// Duplicate names in the document are legal; the earliest one wins.
func (s *Store) Entry(name string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	name = strings.TrimSpace(name)
	for _, e := range s.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns every entry, or only those carrying label when it is
// non-empty.
func (s *Store) Entries(label Label) EntrySet {
	if s == nil {
		return nil
	}
	if label == LabelNone {
		return append(EntrySet(nil), s.entries...)
	}
	var res EntrySet
	for _, e := range s.entries {
		if e.Label == label {
			res = append(res, e)
		}
	}
	return res
}
