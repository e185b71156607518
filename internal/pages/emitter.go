// Package pages builds the drawable content of every journal page type.
// Each emitter is a pure function of the derived geometry, the resolved
// events and the page side decided by the pagination engine; nothing here
// mutates pagination state or touches the output stream.
package pages

import (
	"strings"

	"github.com/username/forever-journal/internal/events"
	"github.com/username/forever-journal/internal/layout"
	"github.com/username/forever-journal/internal/pagination"
)

// AlignMode controls which edge block labels bind to.
type AlignMode string

const (
	// AlignMirrored puts labels on the outer edge: right-aligned on recto
	// pages, left-aligned on verso pages.
	AlignMirrored AlignMode = "mirrored"
	// AlignLeft always left-aligns, regardless of page side.
	AlignLeft AlignMode = "left"
)

// Emitter carries the run-constant inputs every page type needs.
type Emitter struct {
	Geo        layout.Geometry
	StartYear  int
	Resolver   *events.Resolver
	SundaysRed bool
	// LocalizedDays renders weekdays as single Japanese day glyphs instead
	// of English abbreviations.
	LocalizedDays bool
	Align         AlignMode
}

// alignRight reports whether labels right-align on the given side.
func (e *Emitter) alignRight(side pagination.Parity) bool {
	return e.Align == AlignMirrored && side == pagination.Recto
}

// year returns the calendar year of the journal's year row index.
func (e *Emitter) year(idx int) int {
	return e.StartYear + idx
}

// EndYear returns the last tracked year.
func (e *Emitter) EndYear() int {
	return e.StartYear + e.Geo.NumYears - 1
}

// escape protects user-supplied names destined for the markup stream.
// Only the characters that actually occur in event names are handled.
func escape(s string) string {
	r := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"#", `\#`,
		"_", `\_`,
	)
	return r.Replace(s)
}
