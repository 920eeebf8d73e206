package notes

import "strings"

// Label is the status tag attached to a triage entry. The set of tags is
// open, but only LabelFailing and LabelFlake carry meaning.
type Label string

const (
	// LabelNone marks an entry that has been triaged but not yet judged.
	LabelNone Label = ""
	// LabelFailing marks a confirmed, real failure.
	LabelFailing Label = "failing"
	// LabelFlake marks a test known to fail intermittently.
	LabelFlake Label = "flake"
)

// LabelKind is the closed classification of a Label.
type LabelKind int

const (
	KindUnlabeled LabelKind = iota
	KindFailing
	KindFlake
	KindOther
)

func (k LabelKind) String() string {
	switch k {
	case KindUnlabeled:
		return "unlabeled"
	case KindFailing:
		return "failing"
	case KindFlake:
		return "flake"
	default:
		return "other"
	}
}

// ParseLabel normalizes a raw label value.
func ParseLabel(raw string) Label {
	return Label(strings.TrimSpace(raw))
}

// Kind reports which recognized tag the label is. Anything that is not empty,
// "failing" or "flake" is KindOther; the raw value stays available via String.
func (l Label) Kind() LabelKind {
	switch l {
	case LabelNone:
		return KindUnlabeled
	case LabelFailing:
		return KindFailing
	case LabelFlake:
		return KindFlake
	default:
		return KindOther
	}
}

func (l Label) String() string {
	return string(l)
}
