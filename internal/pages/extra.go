package pages

import (
	"github.com/username/forever-journal/internal/layout"
	"github.com/username/forever-journal/internal/pagination"
)

// ExtraPage lays out a free-writing page: two columns of uniform dashed
// guides at the daily line spacing, with a "date" annotation above each
// column. first marks the page carrying the section label.
func (e *Emitter) ExtraPage(side pagination.Parity, first bool) *layout.Page {
	spacing := e.Geo.LineSpacing
	// One line of height is given up to the date annotation above the rules.
	usableH := e.Geo.ContentH - spacing
	colW := (e.Geo.TextWidth - e.Geo.Gutter) / 2
	numLines := int(usableH / spacing)

	page := &layout.Page{
		Header: &layout.Header{
			HeightMM:   layout.HeaderHeight,
			TitleLabel: "Extra Pages",
			AlignRight: side == pagination.Recto,
		},
		HeaderGapMM: spacing,
	}
	if first {
		page.Label = "sec:extra_pages"
		page.TOCTitle = "Extra Pages"
	}

	for col := 0; col < 2; col++ {
		c := layout.Canvas{W: colW, H: usableH}

		c.AddText(layout.Text{
			X: 0, Y: usableH,
			S:        "date",
			Anchor:   layout.AnchorSouthWest,
			Font:     layout.FontSmall,
			Italic:   true,
			Color:    layout.ColorText,
			YShiftMM: 0.5,
		})

		c.AddLine(layout.Line{X1: 0, Y1: usableH, X2: colW, Y2: usableH, Color: layout.ColorBorder})
		for l := 1; l <= numLines; l++ {
			y := usableH - float64(l)*spacing
			if l == numLines {
				c.AddLine(layout.Line{X1: 0, Y1: y, X2: colW, Y2: y, Color: layout.ColorBorder})
			} else {
				c.AddLine(layout.Line{X1: 0, Y1: y, X2: colW, Y2: y, Color: layout.ColorGuide, Dashed: true})
			}
		}

		page.Columns = append(page.Columns, layout.Column{WidthMM: colW, Canvases: []layout.Canvas{c}})
	}

	return page
}
