package pagination

import (
	"fmt"
	"testing"

	"github.com/username/forever-journal/internal/layout"
)

// recordingSink captures the emission order of numbered pages and blank
// fillers.
type recordingSink struct {
	entries []string // "page:N" or "filler"
	fail    bool
}

func (s *recordingSink) WritePage(p *layout.Page) error {
	if s.fail {
		return fmt.Errorf("stream closed")
	}
	s.entries = append(s.entries, fmt.Sprintf("page:%d", p.Number))
	return nil
}

func (s *recordingSink) WriteFiller() error {
	if s.fail {
		return fmt.Errorf("stream closed")
	}
	s.entries = append(s.entries, "filler")
	return nil
}

func (s *recordingSink) physicalCount() int { return len(s.entries) }

func TestCursorStartsAtOneZero(t *testing.T) {
	c := NewCursor()
	if c.Logical() != 1 || c.PhysicalEmitted() != 0 {
		t.Errorf("NewCursor() = (%d, %d), want (1, 0)", c.Logical(), c.PhysicalEmitted())
	}
}

func TestEmitPageAdvancesBothCounters(t *testing.T) {
	sink := &recordingSink{}
	e := NewEngine(sink, nil, nil)

	for i := 1; i <= 5; i++ {
		if err := e.EmitPage(&layout.Page{}); err != nil {
			t.Fatalf("EmitPage failed: %v", err)
		}
	}

	if e.Logical() != 6 {
		t.Errorf("logical = %d, want 6", e.Logical())
	}
	if e.Cursor().PhysicalEmitted() != 5 {
		t.Errorf("physical = %d, want 5", e.Cursor().PhysicalEmitted())
	}
	if sink.entries[0] != "page:1" || sink.entries[4] != "page:5" {
		t.Errorf("pages numbered wrong: %v", sink.entries)
	}
}

func TestAlignToParityInsertsAtMostOneFiller(t *testing.T) {
	sink := &recordingSink{}
	e := NewEngine(sink, nil, nil)

	// Next physical page is 1 (recto): aligning to recto is a no-op.
	if err := e.AlignToParity(Recto); err != nil {
		t.Fatal(err)
	}
	if sink.physicalCount() != 0 {
		t.Errorf("no-op alignment wrote %d pages", sink.physicalCount())
	}

	// Aligning to verso inserts exactly one blank.
	if err := e.AlignToParity(Verso); err != nil {
		t.Fatal(err)
	}
	if sink.physicalCount() != 1 || sink.entries[0] != "filler" {
		t.Errorf("alignment output = %v, want one filler", sink.entries)
	}

	// The invariant: parity of physical+1 now matches the target.
	if ParityOf(e.Cursor().PhysicalEmitted()+1) != Verso {
		t.Error("next physical page is not verso after alignment")
	}
}

func TestAlignToParityIsIdempotent(t *testing.T) {
	sink := &recordingSink{}
	e := NewEngine(sink, nil, nil)

	for i := 0; i < 4; i++ {
		if err := e.AlignToParity(Verso); err != nil {
			t.Fatal(err)
		}
	}
	if got := e.Cursor().PhysicalEmitted(); got != 1 {
		t.Errorf("repeated alignment emitted %d pages, want 1", got)
	}
}

func TestLogicalNumberingInvariant(t *testing.T) {
	// After any mix of operations, logical-1 equals emits+skips.
	sink := &recordingSink{}
	e := NewEngine(sink, nil, nil)

	emits, skips := 0, 0
	ops := []func(){
		func() { e.EmitPage(&layout.Page{}); emits++ },
		func() { e.SkipLogicalPage(); skips++ },
		func() { e.AlignToParity(Recto) },
		func() { e.EmitPage(&layout.Page{}); emits++ },
		func() { e.SkipLogicalPage(); skips++ },
		func() { e.SkipLogicalPage(); skips++ },
		func() { e.AlignToParity(Verso) },
		func() { e.AlignToParity(Verso) },
		func() { e.EmitPage(&layout.Page{}); emits++ },
	}
	for _, op := range ops {
		op()
		if got := e.Logical() - 1; got != emits+skips {
			t.Fatalf("logical-1 = %d, want %d after %d emits and %d skips", got, emits+skips, emits, skips)
		}
	}
}

func TestSkipThenAlignRestoresParity(t *testing.T) {
	// Test-subset mode: page 2 is suppressed; page 3 must still land on a
	// recto physical sheet, which takes exactly one blank filler.
	sink := &recordingSink{}
	e := NewEngine(sink, nil, nil)

	e.EmitPage(&layout.Page{}) // page 1, physical 1
	e.SkipLogicalPage()        // page 2 suppressed

	if err := e.AlignToParity(ParityOf(e.Logical())); err != nil {
		t.Fatal(err)
	}
	e.EmitPage(&layout.Page{}) // page 3, physical 3

	want := []string{"page:1", "filler", "page:3"}
	if len(sink.entries) != len(want) {
		t.Fatalf("emission = %v, want %v", sink.entries, want)
	}
	for i := range want {
		if sink.entries[i] != want[i] {
			t.Fatalf("emission = %v, want %v", sink.entries, want)
		}
	}

	// Two suppressed pages need no filler: the parity works out on its own.
	e.SkipLogicalPage() // page 4
	e.SkipLogicalPage() // page 5
	if err := e.AlignToParity(ParityOf(e.Logical())); err != nil {
		t.Fatal(err)
	}
	e.EmitPage(&layout.Page{}) // page 6 on physical 4: both verso
	if got := sink.entries[len(sink.entries)-1]; got != "page:6" {
		t.Errorf("last emission = %q, want page:6 with no filler before it", got)
	}
	if sink.physicalCount() != 4 {
		t.Errorf("physical pages = %d, want 4", sink.physicalCount())
	}
}

func TestStartSectionForcesSide(t *testing.T) {
	fillerPages := 0
	filler := func(ordinal int) *layout.Page {
		fillerPages++
		return &layout.Page{Label: fmt.Sprintf("sec:event_list_%d", ordinal)}
	}

	sink := &recordingSink{}
	e := NewEngine(sink, filler, nil)

	e.EmitPage(&layout.Page{}) // page 1 (recto)

	// Next logical page is 2 (verso); forcing recto must burn page 2 on a
	// numbered filler and start the section at page 3.
	if err := e.StartSection(Recto); err != nil {
		t.Fatal(err)
	}
	if e.Logical() != 3 {
		t.Errorf("section starts at logical %d, want 3", e.Logical())
	}
	if fillerPages != 1 {
		t.Errorf("filler pages = %d, want 1", fillerPages)
	}

	// Already on the right side: idempotent, no new pages.
	before := sink.physicalCount()
	if err := e.StartSection(Recto); err != nil {
		t.Fatal(err)
	}
	if sink.physicalCount() != before {
		t.Error("StartSection on the correct side wrote pages")
	}
}

func TestStartSectionVerso(t *testing.T) {
	sink := &recordingSink{}
	e := NewEngine(sink, nil, nil)

	e.EmitPage(&layout.Page{}) // page 1
	if err := e.StartSection(Verso); err != nil {
		t.Fatal(err)
	}
	if e.Logical() != 2 {
		t.Errorf("verso section starts at logical %d, want 2", e.Logical())
	}
	if sink.physicalCount() != 1 {
		t.Errorf("physical pages = %d, want 1 (no filler needed)", sink.physicalCount())
	}
}

func TestSkipSectionStartMirrorsStartSection(t *testing.T) {
	// Two engines walk the same section sequence; one renders, one skips.
	// Their logical numbers and filler ordinals must stay in lockstep.
	full := NewEngine(&recordingSink{}, func(int) *layout.Page { return &layout.Page{} }, nil)
	reduced := NewEngine(&recordingSink{}, func(int) *layout.Page { return &layout.Page{} }, nil)

	full.EmitPage(&layout.Page{})
	reduced.EmitPage(&layout.Page{})

	sections := []struct {
		side  Parity
		pages int
	}{
		{Recto, 3}, {Recto, 2}, {Verso, 1}, {Recto, 4},
	}
	for i, s := range sections {
		if err := full.StartSection(s.side); err != nil {
			t.Fatal(err)
		}
		for p := 0; p < s.pages; p++ {
			full.EmitPage(&layout.Page{})
		}

		if i == 2 {
			// The reduced run renders only the third section.
			if err := reduced.StartSection(s.side); err != nil {
				t.Fatal(err)
			}
			for p := 0; p < s.pages; p++ {
				reduced.EmitPage(&layout.Page{})
			}
		} else {
			reduced.SkipSectionStart(s.side)
			for p := 0; p < s.pages; p++ {
				reduced.SkipLogicalPage()
			}
		}

		if full.Logical() != reduced.Logical() {
			t.Fatalf("after section %d: full logical %d, reduced %d", i, full.Logical(), reduced.Logical())
		}
		if full.FillersEmitted() != reduced.FillersEmitted() {
			t.Fatalf("after section %d: full fillers %d, reduced %d", i, full.FillersEmitted(), reduced.FillersEmitted())
		}
	}
}

func TestPadSectionLength(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		nominal  int
		nextSide Parity
		want     int
	}{
		// Section starts on 37, spans 10 pages, next starts at 47 (recto): no pad.
		{"already aligned", 37, 10, Recto, 10},
		// Section starts on 38, spans 10 pages, next would start at 48 (verso): pad.
		{"needs pad", 38, 10, Recto, 11},
		{"verso target aligned", 38, 10, Verso, 10},
		{"verso target needs pad", 37, 10, Verso, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PadSectionLength(tt.start, tt.nominal, tt.nextSide); got != tt.want {
				t.Errorf("PadSectionLength(%d, %d, %v) = %d, want %d",
					tt.start, tt.nominal, tt.nextSide, got, tt.want)
			}
		})
	}
}

func TestEmitErrorsAreFatal(t *testing.T) {
	sink := &recordingSink{fail: true}
	e := NewEngine(sink, nil, nil)

	if err := e.EmitPage(&layout.Page{}); err == nil {
		t.Error("EmitPage should surface sink errors")
	}
	if err := e.AlignToParity(Verso); err == nil {
		t.Error("AlignToParity should surface sink errors")
	}
}
