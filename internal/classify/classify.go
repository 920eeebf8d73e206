// Package classify sorts failing test names into the four triage buckets.
package classify

import "github.com/kingrea/triage-filter/internal/notes"

// Lookup resolves a failure name to its triage entry.
type Lookup interface {
	Entry(name string) (notes.Entry, bool)
}

// Result holds the four buckets. Each bucket keeps the relative order of the
// failures that produced it; a failure listed twice appears twice.
type Result struct {
	// Untriaged holds raw names with no notes entry.
	Untriaged []string
	// PartiallyTriaged holds entries that have no label yet.
	PartiallyTriaged notes.EntrySet
	// ConfirmedFailing holds entries labelled "failing".
	ConfirmedFailing notes.EntrySet
	// Flaky holds entries labelled "flake".
	Flaky notes.EntrySet
	// Excluded counts failures whose entry carries any other label. Those
	// failures appear in no bucket.
	Excluded int
}

// Total returns the number of items across all four buckets.
func (r Result) Total() int {
	return len(r.Untriaged) + len(r.PartiallyTriaged) + len(r.ConfirmedFailing) + len(r.Flaky)
}

// Classify partitions failures using store. Every bucket is computed by its
// own pass over failures, so no bucket depends on another's state.
func Classify(failures []string, store Lookup) Result {
	return Result{
		Untriaged:        untriaged(failures, store),
		PartiallyTriaged: withKind(failures, store, notes.KindUnlabeled),
		ConfirmedFailing: withKind(failures, store, notes.KindFailing),
		Flaky:            withKind(failures, store, notes.KindFlake),
		Excluded:         len(withKind(failures, store, notes.KindOther)),
	}
}

func untriaged(failures []string, store Lookup) []string {
	var res []string
	for _, name := range failures {
		if _, ok := store.Entry(name); ok {
			continue
		}
		res = append(res, name)
	}
	return res
}

func withKind(failures []string, store Lookup, kind notes.LabelKind) notes.EntrySet {
	var res notes.EntrySet
	for _, name := range failures {
		entry, ok := store.Entry(name)
		if !ok {
			continue
		}
		if entry.Label.Kind() == kind {
			res = append(res, entry)
		}
	}
	return res
}
