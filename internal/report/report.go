// Package report renders a classification result as four titled sections.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/kingrea/triage-filter/internal/classify"
	"github.com/kingrea/triage-filter/internal/notes"
)

const (
	namePad    = 40
	descPad    = 20
	itemIndent = 3
)

// Section titles, in print order.
const (
	TitleUntriaged = "Not Triaged"
	TitlePartial   = "Partially Triaged"
	TitleFailing   = "True Failures"
	TitleFlaky     = "Flakey Tests"
)

// Options tweak rendering.
type Options struct {
	// NoColor prints titles without ANSI styling.
	NoColor bool
}

// Reporter writes reports to a single writer.
type Reporter struct {
	out      io.Writer
	renderer *lipgloss.Renderer
}

// New returns a Reporter writing to w.
func New(w io.Writer, opts Options) *Reporter {
	r := lipgloss.NewRenderer(w)
	if opts.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Reporter{out: w, renderer: r}
}

type section struct {
	title string
	color lipgloss.Color
	items []string
}

// Render prints every section, including empty ones.
func (r *Reporter) Render(res classify.Result) error {
	sections := []section{
		{title: TitleUntriaged, color: lipgloss.Color("4"), items: res.Untriaged},
		{title: TitlePartial, color: lipgloss.Color("3"), items: formatEntries(res.PartiallyTriaged)},
		{title: TitleFailing, color: lipgloss.Color("1"), items: formatEntries(res.ConfirmedFailing)},
		{title: TitleFlaky, color: lipgloss.Color("8"), items: formatEntries(res.Flaky)},
	}
	var b strings.Builder
	for _, s := range sections {
		r.writeSection(&b, s)
	}
	_, err := io.WriteString(r.out, b.String())
	if err != nil {
		return fmt.Errorf("report: write: %w", err)
	}
	return nil
}

func (r *Reporter) writeSection(b *strings.Builder, s section) {
	title := r.renderer.NewStyle().Bold(true).Foreground(s.color).Render(s.title)
	b.WriteString(title)
	b.WriteByte('\n')
	indent := strings.Repeat(" ", itemIndent)
	if len(s.items) == 0 {
		b.WriteString(indent + "none\n")
	}
	for _, item := range s.items {
		for _, line := range strings.Split(item, "\n") {
			b.WriteString(indent + line + "\n")
		}
	}
	b.WriteByte('\n')
}

func formatEntries(set notes.EntrySet) []string {
	if len(set) == 0 {
		return nil
	}
	items := make([]string, 0, len(set))
	for _, e := range set {
		items = append(items, FormatEntry(e))
	}
	return items
}

// FormatEntry lays out an entry as the name padded to a fixed column, the
// description padded to a second column, then one "- link" line per link
// aligned under the description column.
func FormatEntry(e notes.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-*s", namePad, e.Name)
	if e.Description != "" {
		fmt.Fprintf(&b, "%-*s", descPad, e.Description)
	}
	for _, link := range e.Links {
		b.WriteString("\n" + strings.Repeat(" ", namePad) + "- " + link)
	}
	return b.String()
}
