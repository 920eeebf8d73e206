package notes

import (
	"fmt"
	"strings"
)

// Entry is one record from the notes document.
type Entry struct {
	Name        string
	Description string
	Label       Label
	Links       []string
}

// rawEntry mirrors the on-disk shape. Pointers distinguish a missing name
// from an empty one.
type rawEntry struct {
	Name        *string  `yaml:"name"`
	Description *string  `yaml:"description"`
	Label       *string  `yaml:"label"`
	Links       []string `yaml:"links"`
}

func (r rawEntry) toEntry() (Entry, error) {
	if r.Name == nil {
		return Entry{}, fmt.Errorf("name is required")
	}
	name := strings.TrimSpace(*r.Name)
	if name == "" {
		return Entry{}, fmt.Errorf("name is blank")
	}
	entry := Entry{Name: name}
	if r.Description != nil {
		entry.Description = strings.TrimSpace(*r.Description)
	}
	if r.Label != nil {
		entry.Label = ParseLabel(*r.Label)
	}
	if len(r.Links) > 0 {
		entry.Links = append([]string(nil), r.Links...)
	}
	return entry, nil
}

// EntrySet is an ordered collection of entries.
type EntrySet []Entry

// Names returns the non-empty entry names in order.
func (s EntrySet) Names() []string {
	var names []string
	for _, e := range s {
		if e.Name == "" {
			continue
		}
		names = append(names, e.Name)
	}
	return names
}

// Len returns the number of entries.
func (s EntrySet) Len() int {
	return len(s)
}
