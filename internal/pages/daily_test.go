package pages

import (
	"strings"
	"testing"

	"github.com/username/forever-journal/internal/events"
	"github.com/username/forever-journal/internal/layout"
	"github.com/username/forever-journal/internal/pagination"
)

func testEmitter(t *testing.T, daysPerPage int) *Emitter {
	t.Helper()
	g, err := layout.Derive(layout.PhysicalConfig{
		Paper:        layout.PaperSizes["A4"],
		Margins:      layout.Margins{Inner: 13, Outer: 5, Top: 5, Bottom: 10},
		NumYears:     10,
		WritingLines: 5,
		DaysPerPage:  daysPerPage,
		Gutter:       5,
	})
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	return &Emitter{
		Geo:        g,
		StartYear:  2026,
		SundaysRed: true,
		Align:      AlignMirrored,
	}
}

func canvasTexts(c layout.Canvas) []layout.Text {
	var out []layout.Text
	for _, p := range c.Prims {
		if t, ok := p.(layout.Text); ok {
			out = append(out, t)
		}
	}
	return out
}

func canvasLines(c layout.Canvas) []layout.Line {
	var out []layout.Line
	for _, p := range c.Prims {
		if l, ok := p.(layout.Line); ok {
			out = append(out, l)
		}
	}
	return out
}

func canvasCircles(c layout.Canvas) []layout.Circle {
	var out []layout.Circle
	for _, p := range c.Prims {
		if ci, ok := p.(layout.Circle); ok {
			out = append(out, ci)
		}
	}
	return out
}

func TestDailyPageReservesOneBlockPerYear(t *testing.T) {
	e := testEmitter(t, 1)
	page := e.DailyPage([]DayRef{{Month: 3, Day: 15}}, pagination.Recto, 31)

	if len(page.Columns) != 1 {
		t.Fatalf("2up page has %d columns, want 1", len(page.Columns))
	}
	if got := len(page.Columns[0].Canvases); got != 10 {
		t.Errorf("column has %d year blocks, want 10", got)
	}
	for _, c := range page.Columns[0].Canvases {
		if c.H != e.Geo.BlockHeight {
			t.Errorf("block height %v, want %v", c.H, e.Geo.BlockHeight)
		}
	}
}

func TestFeb29RowsBlankOnNonLeapYears(t *testing.T) {
	// Years 2026..2035 include leap years 2028, 2032 only... 2036 exceeds
	// the range; leap rows are 2028 and 2032.
	e := testEmitter(t, 1)
	page := e.DailyPage([]DayRef{{Month: 2, Day: 29}}, pagination.Verso, 29)

	col := page.Columns[0]
	if len(col.Canvases) != 10 {
		t.Fatalf("Feb 29 column has %d blocks, want 10 (space reserved)", len(col.Canvases))
	}

	for i, c := range col.Canvases {
		year := 2026 + i
		leap := year%4 == 0
		texts := canvasTexts(c)
		if leap && len(texts) == 0 {
			t.Errorf("leap year %d block is empty", year)
		}
		if !leap && len(texts) != 0 {
			t.Errorf("non-leap year %d block has %d texts, want blank row", year, len(texts))
		}
		// Borders are drawn either way so the grid stays uniform.
		if len(canvasLines(c)) == 0 {
			t.Errorf("year %d block has no border lines", year)
		}
	}
}

func TestDailyBlockGuidesAndBullets(t *testing.T) {
	e := testEmitter(t, 1)
	c := e.dayBlock(DayRef{Month: 3, Day: 15}, 0, false)

	var dashed, solid int
	for _, l := range canvasLines(c) {
		if l.Dashed {
			dashed++
		} else {
			solid++
		}
	}
	if dashed != e.Geo.Lines-1 {
		t.Errorf("dashed guide lines = %d, want %d", dashed, e.Geo.Lines-1)
	}
	if solid != 2 { // top border (first block) + bottom divider
		t.Errorf("solid border lines = %d, want 2", solid)
	}

	circles := canvasCircles(c)
	if len(circles) != 2 {
		t.Fatalf("bullet circles = %d, want 2", len(circles))
	}
	// Left-aligned label: bullets sit near the right edge.
	for _, ci := range circles {
		if ci.CX < c.W/2 {
			t.Errorf("bullet at x=%v should be on the right half", ci.CX)
		}
	}
}

func TestMirroredAlignmentFollowsPageSide(t *testing.T) {
	e := testEmitter(t, 2)

	recto := e.DailyPage([]DayRef{{3, 1}, {3, 2}}, pagination.Recto, 31)
	verso := e.DailyPage([]DayRef{{3, 3}, {3, 4}}, pagination.Verso, 31)

	for _, col := range recto.Columns {
		if !col.Header.AlignRight {
			t.Error("recto page headers should right-align in mirrored mode")
		}
	}
	for _, col := range verso.Columns {
		if col.Header.AlignRight {
			t.Error("verso page headers should left-align in mirrored mode")
		}
	}

	// Left mode ignores parity.
	e.Align = AlignLeft
	page := e.DailyPage([]DayRef{{3, 1}, {3, 2}}, pagination.Recto, 31)
	for _, col := range page.Columns {
		if col.Header.AlignRight {
			t.Error("left mode should never right-align")
		}
	}
}

func TestInnerColumnHidesMonth(t *testing.T) {
	e := testEmitter(t, 2)

	// Recto page: column 0 is inner, so it hides the month name; column 1
	// is outer and shows it.
	page := e.DailyPage([]DayRef{{3, 1}, {3, 2}}, pagination.Recto, 31)
	if page.Columns[0].Header.TitleLabel != "" {
		t.Error("inner column on recto page should hide the month")
	}
	if page.Columns[1].Header.TitleLabel != "MARCH" {
		t.Errorf("outer column title = %q, want MARCH", page.Columns[1].Header.TitleLabel)
	}

	// Verso page: mirrored, column 1 is inner.
	page = e.DailyPage([]DayRef{{3, 3}, {3, 4}}, pagination.Verso, 31)
	if page.Columns[0].Header.TitleLabel != "MARCH" {
		t.Error("outer column on verso page should show the month")
	}
	if page.Columns[1].Header.TitleLabel != "" {
		t.Error("inner column on verso page should hide the month")
	}

	// Last day of month always shows the month, even on an inner column.
	page = e.DailyPage([]DayRef{{3, 30}, {3, 31}}, pagination.Verso, 31)
	if page.Columns[1].Header.TitleLabel != "MARCH" {
		t.Error("last day of month must show the month on inner columns")
	}
}

func TestTrailingOddDayLeavesBlankColumn(t *testing.T) {
	e := testEmitter(t, 2)
	page := e.DailyPage([]DayRef{{2, 29}}, pagination.Recto, 29)

	if len(page.Columns) != 2 {
		t.Fatalf("4up page has %d columns, want 2", len(page.Columns))
	}
	if !page.Columns[1].Blank {
		t.Error("trailing column should be blank")
	}
	if page.Columns[1].WidthMM != e.Geo.ColumnWidth {
		t.Error("blank column must still reserve its width")
	}
}

func TestSundayLabelIsRed(t *testing.T) {
	e := testEmitter(t, 1)
	// 2026-01-04 is a Sunday; year row 0.
	c := e.dayBlock(DayRef{Month: 1, Day: 4}, 0, false)

	var found bool
	for _, tx := range canvasTexts(c) {
		if tx.S == "Sun" && tx.Color == layout.ColorSunday {
			found = true
		}
	}
	if !found {
		t.Error("Sunday weekday label should use the sundayred color")
	}

	e.SundaysRed = false
	c = e.dayBlock(DayRef{Month: 1, Day: 4}, 0, false)
	for _, tx := range canvasTexts(c) {
		if tx.Color == layout.ColorSunday {
			t.Error("sundayred used with the option disabled")
		}
	}
}

func TestLocalizedDayGlyphs(t *testing.T) {
	e := testEmitter(t, 1)
	e.LocalizedDays = true

	// 2026-01-04 is a Sunday: the glyph renders, the red check still fires.
	c := e.dayBlock(DayRef{Month: 1, Day: 4}, 0, false)
	var found bool
	for _, tx := range canvasTexts(c) {
		if tx.S == "日" {
			found = true
			if tx.Color != layout.ColorSunday {
				t.Error("localized Sunday glyph should still be red")
			}
		}
		if tx.S == "Sun" {
			t.Error("English abbreviation rendered in localized mode")
		}
	}
	if !found {
		t.Error("Sunday glyph missing")
	}
}

func TestSpecialEventNoteAppears(t *testing.T) {
	e := testEmitter(t, 1)
	e.Resolver = events.NewResolver(
		[]events.AnnualRule{{Name: "Christmas", Month: 12, Day: 25}},
		[]events.DatedRule{{Name: "Benjamin", Date: "1995-08-18", Category: events.CategoryBirthday}},
		false,
	)

	c := e.dayBlock(DayRef{Month: 12, Day: 25}, 0, false)
	var found bool
	for _, tx := range canvasTexts(c) {
		if strings.Contains(tx.S, "Christmas") {
			found = true
		}
	}
	if !found {
		t.Error("Christmas note missing from Dec 25 block")
	}

	c = e.dayBlock(DayRef{Month: 8, Day: 18}, 0, false)
	found = false
	for _, tx := range canvasTexts(c) {
		if strings.Contains(tx.S, "Benjamin (31y)") {
			found = true
		}
	}
	if !found {
		t.Error("birthday note with elapsed years missing from Aug 18 block")
	}
}
