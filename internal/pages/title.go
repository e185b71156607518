package pages

import (
	"fmt"

	"github.com/username/forever-journal/internal/events"
	"github.com/username/forever-journal/internal/layout"
	"github.com/username/forever-journal/pkg/dateutil"
)

// maxEventListRefs bounds the cross-reference rows probed on the title
// page; event-list fillers beyond this never appear in the contents table.
const maxEventListRefs = 14

const titleRowStep = 4.5

// TitleInfo carries the run metadata the title page displays.
type TitleInfo struct {
	Annual        []events.AnnualRule
	Dated         []events.DatedRule
	TOC           bool
	IncludeSource bool
	Whimsy        bool
	InfoLines     []string // configuration summary box, bottom right
	MonthIncluded func(month int) bool
	ExtraIncluded bool
}

// TitlePage lays out the cover: heading, special-days listing on the left,
// optional table of contents on the right, and the configuration info box.
// Page-number references are emitted as cross-reference placeholders for
// the external compiler to resolve; the generator itself never knows final
// page counts (the output stream is append-only).
func (e *Emitter) TitlePage(info TitleInfo) *layout.Page {
	w := e.Geo.TextWidth
	h := e.Geo.TextHeight
	c := layout.Canvas{W: w, H: h}

	c.AddText(layout.Text{
		X: w / 2, Y: h - 8,
		S:      "Forever Journal",
		Anchor: layout.AnchorCenter,
		Font:   layout.FontHugeUpper,
		Bold:   true,
	})
	c.AddText(layout.Text{
		X: w / 2, Y: h - 18,
		S:      fmt.Sprintf("%d -- %d", e.StartYear, e.EndYear()),
		Anchor: layout.AnchorCenter,
		Font:   layout.FontLarge,
	})

	e.addSpecialDaysTable(&c, info, h-30)
	if info.TOC {
		e.addContentsTable(&c, info, h-30)
	}
	e.addInfoBox(&c, info.InfoLines)

	return &layout.Page{
		Label:   "sec:title",
		Title:   true,
		Columns: []layout.Column{{WidthMM: w, Canvases: []layout.Canvas{c}}},
	}
}

// addSpecialDaysTable lists every configured rule on the left half.
func (e *Emitter) addSpecialDaysTable(c *layout.Canvas, info TitleInfo, top float64) {
	nameX := 4.0
	ruleX := c.W/2 - 28

	c.AddText(layout.Text{
		X: c.W / 4, Y: top,
		S:      "Special Days",
		Anchor: layout.AnchorCenter,
		Bold:   true,
	})

	y := top - 2*titleRowStep
	row := func(left, right string, bold bool) {
		c.AddText(layout.Text{X: nameX, Y: y, S: left, Anchor: layout.AnchorWest, Font: layout.FontSmall, Bold: bold})
		if right != "" {
			c.AddText(layout.Text{X: ruleX, Y: y, S: right, Anchor: layout.AnchorWest, Font: layout.FontSmall, Bold: bold})
		}
		y -= titleRowStep
	}

	row("Annual", "Rule/Date", true)
	for _, item := range info.Annual {
		name := events.WhimsyDecorate(escape(item.Name), item.Name, info.Whimsy)
		row(name, item.RuleText(), false)
	}

	y -= titleRowStep / 2
	row("Counting", "Date", true)
	for _, item := range info.Dated {
		name := events.WhimsyDecorate(escape(item.Name), events.DatedStyleKey(item.Category), info.Whimsy)
		row(fmt.Sprintf("%s (%s)", name, item.Category), item.Date, false)
	}
}

// addContentsTable lists section references on the right half. Skipped
// sections in reduced runs are labeled instead of referenced, so the page
// still documents the full numbering scheme.
func (e *Emitter) addContentsTable(c *layout.Canvas, info TitleInfo, top float64) {
	nameX := c.W/2 + 12
	refX := c.W - 24

	c.AddText(layout.Text{
		X: 3 * c.W / 4, Y: top,
		S:      "Table of Contents",
		Anchor: layout.AnchorCenter,
		Bold:   true,
	})

	y := top - 2*titleRowStep
	row := func(title, ref string) {
		c.AddText(layout.Text{X: nameX, Y: y, S: title, Anchor: layout.AnchorWest, Font: layout.FontSmall})
		c.AddText(layout.Text{X: refX, Y: y, S: ref, Anchor: layout.AnchorWest, Font: layout.FontSmall})
		y -= titleRowStep
	}

	row("Title Page", `\pageref{sec:title}`)
	for m := 1; m <= 12; m++ {
		if info.MonthIncluded == nil || info.MonthIncluded(m) {
			row(dateutil.MonthName(m), fmt.Sprintf(`\pageref{sec:month_%d}`, m))
		} else {
			row(dateutil.MonthName(m), "(Skipped)")
		}
	}

	// Event-list fillers are numbered as they happen to be needed; probe a
	// fixed range and let undefined references collapse to empty rows.
	for i := 1; i <= maxEventListRefs; i++ {
		c.AddText(layout.Text{
			X: nameX, Y: y,
			S:      fmt.Sprintf(`\eventlistrow{%d}`, i),
			Anchor: layout.AnchorWest,
			Font:   layout.FontSmall,
		})
		y -= titleRowStep
	}

	if info.ExtraIncluded {
		row("Extra Pages", `\pageref{sec:extra_pages}`)
	} else {
		row("Extra Pages", "(Skipped)")
	}
	if info.IncludeSource {
		row("Source Code", `\pageref{sec:source}`)
	}
}

// addInfoBox writes the configuration summary in the bottom-right corner.
// Lines carry configuration values verbatim (paper keys like US_LETTER), so
// they pass through the same escaping as user-supplied names.
func (e *Emitter) addInfoBox(c *layout.Canvas, lines []string) {
	y := 6 + titleRowStep*float64(len(lines))
	for _, line := range lines {
		c.AddText(layout.Text{
			X: c.W - 2, Y: y,
			S:      escape(line),
			Anchor: layout.AnchorEast,
			Font:   layout.FontTypewriter,
			Color:  layout.ColorText,
		})
		y -= titleRowStep
	}
}
