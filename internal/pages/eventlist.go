package pages

import (
	"fmt"

	"github.com/username/forever-journal/internal/layout"
)

// EventList lays out an event-list page or column: per tracked year, a
// block of three repeated (date, event) column pairs over the standard
// writing guides. These pages double as section-boundary fillers, so width
// may be a single column or the full text width.
func (e *Emitter) EventList(ordinal int, width float64) *layout.Page {
	page := &layout.Page{
		Label:    fmt.Sprintf("sec:event_list_%d", ordinal),
		TOCTitle: fmt.Sprintf("Event List %d", ordinal),
		Header: &layout.Header{
			HeightMM:   layout.HeaderHeight,
			TitleLabel: fmt.Sprintf("Event List %d", ordinal),
		},
	}

	col := layout.Column{WidthMM: width}
	for yIdx := 0; yIdx < e.Geo.NumYears; yIdx++ {
		col.Canvases = append(col.Canvases, e.eventListBlock(yIdx, width))
	}
	page.Columns = []layout.Column{col}

	return page
}

// eventListBlock draws one year's row of date/event pairs.
func (e *Emitter) eventListBlock(yIdx int, w float64) layout.Canvas {
	h := e.Geo.BlockHeight
	c := layout.Canvas{W: w, H: h}

	// Year label on the right edge.
	c.AddText(layout.Text{
		X: w, Y: h,
		S:        fmt.Sprintf("%d", e.year(yIdx)),
		Anchor:   layout.AnchorNorthEast,
		Bold:     true,
		WidthMM:  layout.YearLabelWidth,
		AlignR:   true,
		YShiftMM: layout.LabelYShift,
	})

	// Three (date, event) column pairs; the date column takes a quarter of
	// each pair.
	pairW := w / 3
	dateW := pairW / 4
	for g := 0; g < 3; g++ {
		gx := float64(g) * pairW
		c.AddText(layout.Text{
			X: gx, Y: h,
			S:      "date",
			Anchor: layout.AnchorNorthWest,
			Font:   layout.FontScript,
			Italic: true,
		})
		c.AddText(layout.Text{
			X: gx + dateW, Y: h,
			S:      "event",
			Anchor: layout.AnchorNorthWest,
			Font:   layout.FontScript,
			Italic: true,
		})

		// Divider inside the pair and, for later groups, before it.
		if g > 0 {
			c.AddLine(layout.Line{X1: gx, Y1: 0, X2: gx, Y2: h, Color: layout.ColorGuide})
		}
		c.AddLine(layout.Line{X1: gx + dateW, Y1: 0, X2: gx + dateW, Y2: h, Color: layout.ColorGuide})
	}

	if yIdx == 0 {
		c.AddLine(layout.Line{X1: 0, Y1: h, X2: w, Y2: h, Color: layout.ColorBorder})
	}

	for l := 1; l < e.Geo.Lines; l++ {
		y := h - float64(l)*e.Geo.LineSpacing
		c.AddLine(layout.Line{X1: 0, Y1: y, X2: w, Y2: y, Color: layout.ColorGuide, Dashed: true})
	}

	c.AddLine(layout.Line{X1: 0, Y1: 0, X2: w, Y2: 0, Color: layout.ColorBorder})
	return c
}
