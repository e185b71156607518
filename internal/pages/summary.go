package pages

import (
	"fmt"

	"github.com/username/forever-journal/internal/layout"
	"github.com/username/forever-journal/pkg/dateutil"
)

// Month summary grid measurements.
const (
	summaryRowHeight = 8.0
	dayNumberWidth   = 8.0
)

// MonthSummary lays out the month overview grid: one row per day of the
// month, one column per tracked year, each cell carrying the two-letter
// weekday abbreviation for that (year, month, day). refYear supplies the
// day count so February always shows 29 rows.
func (e *Emitter) MonthSummary(month, refYear int) *layout.Page {
	daysInMonth := dateutil.DaysInMonth(refYear, month)
	yearColWidth := (e.Geo.TextWidth - dayNumberWidth) / float64(e.Geo.NumYears)

	w := dayNumberWidth + float64(e.Geo.NumYears)*yearColWidth
	gridH := float64(daysInMonth+1) * summaryRowHeight
	c := layout.Canvas{W: w, H: gridH}

	// Horizontal rules: one above the header row, one under each day row.
	for d := 0; d <= daysInMonth+1; d++ {
		y := gridH - float64(d)*summaryRowHeight
		c.AddLine(layout.Line{X1: 0, Y1: y, X2: w, Y2: y, Color: layout.ColorBorder})
	}

	// Vertical rules: outer left border, day-number separator, year columns.
	c.AddLine(layout.Line{X1: 0, Y1: 0, X2: 0, Y2: gridH, Color: layout.ColorBorder})
	c.AddLine(layout.Line{X1: dayNumberWidth, Y1: 0, X2: dayNumberWidth, Y2: gridH, Color: layout.ColorBorder})
	for i := 0; i < e.Geo.NumYears; i++ {
		x := dayNumberWidth + float64(i+1)*yearColWidth
		c.AddLine(layout.Line{X1: x, Y1: 0, X2: x, Y2: gridH, Color: layout.ColorBorder})
	}

	// Day numbers down the first column.
	for day := 1; day <= daysInMonth; day++ {
		yCenter := gridH - float64(day)*summaryRowHeight - summaryRowHeight/2
		c.AddText(layout.Text{
			X: dayNumberWidth / 2, Y: yCenter,
			S:      fmt.Sprintf("%d", day),
			Anchor: layout.AnchorCenter,
			Font:   layout.FontSmall,
			Bold:   true,
		})
	}

	// Year headers across the top row.
	headerY := gridH - summaryRowHeight/2
	for i := 0; i < e.Geo.NumYears; i++ {
		x := dayNumberWidth + float64(i)*yearColWidth + yearColWidth/2
		c.AddText(layout.Text{
			X: x, Y: headerY,
			S:      fmt.Sprintf("%d", e.year(i)),
			Anchor: layout.AnchorCenter,
			Bold:   true,
		})
	}

	// Weekday cells. Feb 29 of non-leap years resolves to the empty
	// sentinel and the cell stays blank.
	for day := 1; day <= daysInMonth; day++ {
		rowTop := gridH - float64(day)*summaryRowHeight
		for i := 0; i < e.Geo.NumYears; i++ {
			full := dateutil.DayOfWeek(e.year(i), month, day)
			if full == "" {
				continue
			}
			dow := full[:2]
			if e.LocalizedDays {
				dow = dateutil.DayGlyph(e.year(i), month, day)
			}
			color := layout.ColorNone
			if e.SundaysRed && full == "Sun" {
				color = layout.ColorSunday
			}
			c.AddText(layout.Text{
				X: dayNumberWidth + float64(i)*yearColWidth + 1, Y: rowTop - 1,
				S:      dow,
				Anchor: layout.AnchorNorthWest,
				Font:   layout.FontTiny,
				Color:  color,
			})
		}
	}

	return &layout.Page{
		Label:         fmt.Sprintf("sec:month_%d", month),
		TOCTitle:      dateutil.MonthName(month),
		CenteredTitle: fmt.Sprintf("%s Summary", dateutil.MonthName(month)),
		Columns:       []layout.Column{{WidthMM: w, Canvases: []layout.Canvas{c}}},
	}
}
