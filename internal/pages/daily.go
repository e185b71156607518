package pages

import (
	"fmt"
	"strings"

	"github.com/username/forever-journal/internal/layout"
	"github.com/username/forever-journal/internal/pagination"
	"github.com/username/forever-journal/pkg/dateutil"
)

// yearLabelGap is the vertical offset between the year label and the
// weekday abbreviation beneath it.
const yearLabelGap = 4.0

// DayRef names one (month, day) cell of the journal grid.
type DayRef struct {
	Month int
	Day   int
}

// DailyPage lays out one physical page of daily writing blocks. chunk holds
// one or two days depending on the spread mode; daysInMonth is the length
// of the month in the leap reference year, used to decide whether a day is
// the month's last.
func (e *Emitter) DailyPage(chunk []DayRef, side pagination.Parity, daysInMonth int) *layout.Page {
	page := &layout.Page{}

	for colIdx := 0; colIdx < e.Geo.DaysPerPage; colIdx++ {
		if colIdx >= len(chunk) {
			// Trailing odd day in 4up mode: reserve the column, draw nothing.
			page.Columns = append(page.Columns, layout.Column{WidthMM: e.Geo.ColumnWidth, Blank: true})
			continue
		}
		page.Columns = append(page.Columns, e.dayColumn(chunk[colIdx], side, colIdx, daysInMonth))
	}

	return page
}

// dayColumn builds the header band and the stack of per-year writing blocks
// for a single day.
func (e *Emitter) dayColumn(day DayRef, side pagination.Parity, colIdx, daysInMonth int) layout.Column {
	alignRight := e.alignRight(side)

	// Column 0 is outer on verso pages and inner on recto pages; the inner
	// column hides the month name to reduce clutter, except on the last day
	// of the month.
	inner := (side == pagination.Verso && colIdx == 1) || (side == pagination.Recto && colIdx == 0)
	showMonth := true
	if e.Geo.DaysPerPage == 2 && inner && day.Day != daysInMonth {
		showMonth = false
	}

	col := layout.Column{
		WidthMM: e.Geo.ColumnWidth,
		Header: &layout.Header{
			HeightMM:   layout.HeaderHeight,
			DayLabel:   fmt.Sprintf("%d", day.Day),
			AlignRight: alignRight,
		},
	}
	if showMonth {
		col.Header.TitleLabel = strings.ToUpper(dateutil.MonthName(day.Month))
	}

	for yIdx := 0; yIdx < e.Geo.NumYears; yIdx++ {
		col.Canvases = append(col.Canvases, e.dayBlock(day, yIdx, alignRight))
	}

	return col
}

// dayBlock draws one year's writing block: label, guide lines, bullet
// circles and the continuation glyph. Feb 29 rows of non-leap years keep
// their vertical space but render only the borders, so block heights stay
// uniform across years.
func (e *Emitter) dayBlock(day DayRef, yIdx int, alignRight bool) layout.Canvas {
	w := e.Geo.ColumnWidth
	h := e.Geo.BlockHeight
	spacing := e.Geo.LineSpacing
	radius := spacing * 0.25

	c := layout.Canvas{W: w, H: h}

	year := e.year(yIdx)
	weekday := dateutil.DayOfWeek(year, day.Month, day.Day)
	skip := day.Month == 2 && day.Day == 29 && !dateutil.IsLeapYear(year)

	if yIdx == 0 {
		c.AddLine(layout.Line{X1: 0, Y1: h, X2: w, Y2: h, Color: layout.ColorBorder})
	}

	display := weekday
	if e.LocalizedDays {
		display = dateutil.DayGlyph(year, day.Month, day.Day)
	}

	if !skip {
		e.addBlockLabel(&c, year, weekday, display, alignRight)
		e.addEventNote(&c, year, day, alignRight, radius)

		// Bullet circles on the first two lines, opposite the label.
		for s := 0; s < 2; s++ {
			cy := h - (float64(s)+0.5)*spacing
			cx := w - radius - 1
			if alignRight {
				cx = radius + 1
			}
			c.AddCircle(layout.Circle{CX: cx, CY: cy, R: radius, Color: layout.ColorGuide})
		}

		// Continuation prompt near the bottom edge.
		c.AddText(layout.Text{
			X: w - 6, Y: 2.5,
			S:      `\vec{p}`,
			Anchor: layout.AnchorBaseEast,
			Font:   layout.FontSmall,
			Color:  layout.ColorText,
			Math:   true,
		})

		// Writing guides; the first is shortened to clear the label column.
		guideGap := layout.YearLabelWidth + 1
		for l := 1; l < e.Geo.Lines; l++ {
			y := h - float64(l)*spacing
			x1, x2 := 0.0, w
			if l == 1 {
				if alignRight {
					x2 = w - guideGap
				} else {
					x1 = guideGap
				}
			}
			c.AddLine(layout.Line{X1: x1, Y1: y, X2: x2, Y2: y, Color: layout.ColorGuide, Dashed: true})
		}
	}

	c.AddLine(layout.Line{X1: 0, Y1: 0, X2: w, Y2: 0, Color: layout.ColorBorder})
	return c
}

// addBlockLabel places the year number with the weekday label beneath it,
// on the side the alignment mode dictates. weekday is the English
// abbreviation used for the Sunday check; display is what actually renders.
func (e *Emitter) addBlockLabel(c *layout.Canvas, year int, weekday, display string, alignRight bool) {
	dayColor := layout.ColorText
	if e.SundaysRed && weekday == "Sun" {
		dayColor = layout.ColorSunday
	}

	x := 0.0
	anchor := layout.AnchorNorthWest
	if alignRight {
		x = c.W
		anchor = layout.AnchorNorthEast
	}

	c.AddText(layout.Text{
		X: x, Y: c.H,
		S:        fmt.Sprintf("%d", year),
		Anchor:   anchor,
		Bold:     true,
		WidthMM:  layout.YearLabelWidth,
		AlignR:   alignRight,
		YShiftMM: layout.LabelYShift,
	})
	c.AddText(layout.Text{
		X: x, Y: c.H - yearLabelGap,
		S:        display,
		Anchor:   anchor,
		Font:     layout.FontSmall,
		Color:    dayColor,
		WidthMM:  layout.YearLabelWidth,
		AlignR:   alignRight,
		YShiftMM: layout.LabelYShift,
	})
}

// addEventNote writes the resolved special events onto the first writing
// line, starting clear of whichever side holds the label.
func (e *Emitter) addEventNote(c *layout.Canvas, year int, day DayRef, alignRight bool, radius float64) {
	if e.Resolver == nil {
		return
	}
	matched := e.Resolver.Resolve(year, day.Month, day.Day)
	if len(matched) == 0 {
		return
	}

	label := escape(strings.Join(matched, ", "))
	y := c.H - 0.5*e.Geo.LineSpacing
	x := layout.YearLabelWidth + 2
	if alignRight {
		// Label sits on the right; start the note after the bullet circle.
		x = (radius + 1) + radius + 1
	}

	c.AddText(layout.Text{
		X: x, Y: y,
		S:      label,
		Anchor: layout.AnchorWest,
		Font:   layout.FontFootnote,
		Color:  layout.ColorText,
	})
}
