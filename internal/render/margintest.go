package render

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/username/forever-journal/internal/layout"
)

// MarginTestOffsets are per-side printer feed offsets in millimeters. Duplex
// paths rarely place the front and back of a sheet identically; each side's
// grid is shifted by its own offsets so the print reveals the true skew.
type MarginTestOffsets struct {
	FrontTop  float64
	FrontLeft float64
	BackTop   float64
	BackLeft  float64
}

// WriteMarginTest emits a two-page duplex calibration document. Each side
// draws a border around the text area plus centimeter rulers growing inward
// from every edge, shifted by that side's feed offsets; printing it
// double-sided and measuring the clipped ticks tells the user how far to
// adjust the margins and offsets for their printer.
func WriteMarginTest(w io.Writer, paper layout.PaperSize, margin layout.Margins, off MarginTestOffsets, logger *zap.Logger) error {
	doc, err := NewDocument(w, paper, margin, logger)
	if err != nil {
		return err
	}

	front := marginTestPage(paper, margin, false, off)
	front.Number = 1
	if err := doc.WritePage(front); err != nil {
		return err
	}

	back := marginTestPage(paper, margin, true, off)
	back.Number = 2
	if err := doc.WritePage(back); err != nil {
		return err
	}

	return doc.Close()
}

// marginTestPage draws the calibration grid for one side of the sheet. The
// twoside document class mirrors the inner margin onto the right edge of
// the back page; on top of that, the whole grid shifts right and down by
// the side's feed offsets.
func marginTestPage(paper layout.PaperSize, margin layout.Margins, back bool, off MarginTestOffsets) *layout.Page {
	w := textWidthOf(paper, margin)
	h := paper.Height - margin.Top - margin.Bottom

	side := "FRONT"
	top, left := off.FrontTop, off.FrontLeft
	if back {
		side = "BACK"
		top, left = off.BackTop, off.BackLeft
	}
	ox, oy := left, -top

	c := layout.Canvas{W: w, H: h}

	// Text-area border.
	c.AddRect(layout.Rect{X: ox, Y: oy, W: w, H: h, Color: layout.ColorBorder})

	// Rulers: a tick every 10 mm along each edge, labeled with its distance
	// from the border.
	for x := 10.0; x < w; x += 10 {
		c.AddLine(layout.Line{X1: ox + x, Y1: oy, X2: ox + x, Y2: oy + 3, Color: layout.ColorGuide})
		c.AddLine(layout.Line{X1: ox + x, Y1: oy + h - 3, X2: ox + x, Y2: oy + h, Color: layout.ColorGuide})
	}
	for y := 10.0; y < h; y += 10 {
		c.AddLine(layout.Line{X1: ox, Y1: oy + y, X2: ox + 3, Y2: oy + y, Color: layout.ColorGuide})
		c.AddLine(layout.Line{X1: ox + w - 3, Y1: oy + y, X2: ox + w, Y2: oy + y, Color: layout.ColorGuide})
	}

	c.AddText(layout.Text{
		X: ox + w/2, Y: oy + h/2,
		S:      fmt.Sprintf("MARGIN TEST -- %s", side),
		Anchor: layout.AnchorCenter,
		Font:   layout.FontLarge,
		Bold:   true,
	})
	c.AddText(layout.Text{
		X: ox + w/2, Y: oy + h/2 - 8,
		S: fmt.Sprintf("inner %smm / outer %smm / top %smm / bottom %smm",
			mm(margin.Inner), mm(margin.Outer), mm(margin.Top), mm(margin.Bottom)),
		Anchor: layout.AnchorCenter,
		Font:   layout.FontSmall,
		Color:  layout.ColorText,
	})
	c.AddText(layout.Text{
		X: ox + w/2, Y: oy + h/2 - 14,
		S:      fmt.Sprintf("offsets applied: top %smm, left %smm", mm(top), mm(left)),
		Anchor: layout.AnchorCenter,
		Font:   layout.FontSmall,
		Color:  layout.ColorSunday,
	})
	c.AddText(layout.Text{
		X: ox + w/2, Y: oy + h/2 - 20,
		S:      "Print double-sided, then check that the borders line up against the light.",
		Anchor: layout.AnchorCenter,
		Font:   layout.FontSmall,
		Color:  layout.ColorText,
	})

	return &layout.Page{
		Columns: []layout.Column{{WidthMM: w, Canvases: []layout.Canvas{c}}},
	}
}

func textWidthOf(paper layout.PaperSize, m layout.Margins) float64 {
	return paper.Width - m.Inner - m.Outer
}
