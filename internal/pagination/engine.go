// Package pagination keeps the logical page numbering of the journal in sync
// with the physical pages written to the output stream. Logical numbers are
// what gets printed on pages and referenced by cross-references; physical
// pages include blank fillers inserted to satisfy left/right binding
// constraints. A single off-by-one here breaks the side alignment of every
// page that follows, so all page emission goes through this package.
package pagination

import (
	"fmt"

	"github.com/username/forever-journal/internal/layout"
	"go.uber.org/zap"
)

// Parity identifies the side of a bound, double-sided page. Odd pages are
// recto (right-hand), even pages verso (left-hand).
type Parity int

const (
	Verso Parity = 0 // even, left-hand
	Recto Parity = 1 // odd, right-hand
)

// ParityOf returns the side a page number falls on.
func ParityOf(pageNumber int) Parity {
	return Parity(pageNumber % 2)
}

func (p Parity) String() string {
	if p == Recto {
		return "recto"
	}
	return "verso"
}

// Sink receives pages in emission order. The stream is append-only; pages
// are never revisited.
type Sink interface {
	// WritePage writes a numbered content page.
	WritePage(p *layout.Page) error
	// WriteFiller writes a blank physical page carrying no logical number.
	WriteFiller() error
}

// FillerFunc produces the content for a numbered filler page inserted at a
// section boundary. The journal fills these with event-list layouts rather
// than leaving them blank. The argument is the 1-based filler ordinal.
type FillerFunc func(ordinal int) *layout.Page

// Cursor is the pagination state: the next logical page number to assign
// and the count of physical pages written so far. It only ever moves
// forward.
type Cursor struct {
	logical  int // number the next emitted page will carry
	physical int // pages actually written, fillers included
}

// NewCursor returns a cursor positioned before page 1.
func NewCursor() Cursor {
	return Cursor{logical: 1, physical: 0}
}

// Logical returns the number the next emitted page will carry.
func (c Cursor) Logical() int { return c.logical }

// PhysicalEmitted returns the count of physical pages written so far.
func (c Cursor) PhysicalEmitted() int { return c.physical }

// Engine drives page emission. It owns the cursor; emitters read the
// logical number through the engine but never advance it themselves.
type Engine struct {
	cur         Cursor
	sink        Sink
	filler      FillerFunc
	fillerCount int
	logger      *zap.Logger
}

// NewEngine creates an engine writing to sink. filler may be nil, in which
// case section-boundary fillers are emitted as blank numbered pages.
func NewEngine(sink Sink, filler FillerFunc, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cur: NewCursor(), sink: sink, filler: filler, logger: logger}
}

// Cursor returns a copy of the current pagination state.
func (e *Engine) Cursor() Cursor { return e.cur }

// Logical returns the number the next emitted page will carry.
func (e *Engine) Logical() int { return e.cur.logical }

// AlignToParity brings the next physical page onto the target side by
// writing at most one blank filler. The filler carries no logical number;
// this reconciles the stream after logical pages were skipped. Calling it
// again with the same target is a no-op.
func (e *Engine) AlignToParity(target Parity) error {
	if ParityOf(e.cur.physical+1) == target {
		return nil
	}
	if err := e.sink.WriteFiller(); err != nil {
		return fmt.Errorf("failed to write parity filler before page %d: %w", e.cur.logical, err)
	}
	e.cur.physical++
	e.logger.Debug("inserted parity filler",
		zap.Int("logical", e.cur.logical),
		zap.Int("physical", e.cur.physical),
		zap.String("target", target.String()))
	return nil
}

// EmitPage assigns the next logical number to the page, writes it, and
// advances both counters. Side constraints must be established beforehand
// via AlignToParity or StartSection.
func (e *Engine) EmitPage(p *layout.Page) error {
	p.Number = e.cur.logical
	if err := e.sink.WritePage(p); err != nil {
		return fmt.Errorf("failed to write page %d: %w", e.cur.logical, err)
	}
	e.cur.logical++
	e.cur.physical++
	return nil
}

// SkipLogicalPage consumes a logical page number without writing anything.
// Reduced test-subset generation uses this so the surviving pages keep the
// numbers they would have in the full document.
func (e *Engine) SkipLogicalPage() {
	e.cur.logical++
}

// StartSection forces the next emitted page onto the given side. When the
// next logical number falls on the wrong side, one numbered filler page is
// emitted to consume it (the binding needs a real sheet there, so it may as
// well hold useful content). The physical stream is then aligned to the
// logical number's parity.
func (e *Engine) StartSection(side Parity) error {
	if ParityOf(e.cur.logical) != side {
		if err := e.AlignToParity(ParityOf(e.cur.logical)); err != nil {
			return err
		}
		var page *layout.Page
		if e.filler != nil {
			e.fillerCount++
			page = e.filler(e.fillerCount)
		} else {
			page = &layout.Page{}
		}
		if err := e.EmitPage(page); err != nil {
			return fmt.Errorf("failed to emit section filler: %w", err)
		}
	}
	return e.AlignToParity(ParityOf(e.cur.logical))
}

// SkipSectionStart consumes the logical number and the filler ordinal that a
// StartSection on this side would have used, without writing anything.
// Reduced test-subset generation calls it for skipped sections so that the
// numbering of the surviving pages and fillers matches the full document.
func (e *Engine) SkipSectionStart(side Parity) {
	if ParityOf(e.cur.logical) != side {
		e.fillerCount++
		e.cur.logical++
	}
}

// FillersEmitted returns how many numbered section fillers were produced.
func (e *Engine) FillersEmitted() int { return e.fillerCount }

// PadSectionLength returns the page count for a section that nominally
// occupies nominal pages starting at startPage, padded by one page when the
// following section would otherwise start on the wrong side.
func PadSectionLength(startPage, nominal int, nextSide Parity) int {
	if ParityOf(startPage+nominal) != nextSide {
		return nominal + 1
	}
	return nominal
}
