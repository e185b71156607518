// Package layout computes the page geometry of the journal from physical
// measurements and defines the drawable primitives that page emitters
// produce. All dimensions are millimeters.
package layout

import "fmt"

// Fixed layout constants shared by every page type.
const (
	// HeaderHeight is the band reserved at the top of content pages for the
	// day/month heading.
	HeaderHeight = 6.0

	// SummaryHeaderHeight is the taller heading band used on month summary
	// and appendix pages.
	SummaryHeaderHeight = 15.0

	// YearLabelWidth is the column reserved for the year/weekday label
	// inside each writing block.
	YearLabelWidth = 10.0

	// LabelYShift nudges block labels down so they clear the border above.
	LabelYShift = -0.8

	// contentPadding is subtracted from the usable height below the header
	// so the last block's bottom rule stays clear of the footer.
	contentPadding = 2.0
)

// PaperSize is a named paper preset.
type PaperSize struct {
	Name   string
	Width  float64
	Height float64
}

// PaperSizes holds the supported paper presets.
var PaperSizes = map[string]PaperSize{
	"A4":        {Name: "A4", Width: 210.0, Height: 297.0},
	"US_LETTER": {Name: "US Letter", Width: 215.9, Height: 279.4},
	"JIS_B5":    {Name: "JIS B5", Width: 182.0, Height: 257.0},
}

// Margins are the four physical page margins. Inner is the binding side.
type Margins struct {
	Inner  float64
	Outer  float64
	Top    float64
	Bottom float64
}

// PhysicalConfig is the full set of physical inputs the geometry derives
// from. It is built once per run and never mutated.
type PhysicalConfig struct {
	Paper        PaperSize
	Margins      Margins
	NumYears     int
	WritingLines int
	DaysPerPage  int // 1 (2up) or 2 (4up)
	Gutter       float64
}

// Geometry holds every derived block dimension. Derive is a pure function so
// callers may re-derive after overriding the year or line count.
type Geometry struct {
	PageWidth   float64
	PageHeight  float64
	TextWidth   float64 // page width minus inner+outer margins
	TextHeight  float64 // page height minus top+bottom margins
	ContentH    float64 // text height minus header band and padding
	BlockHeight float64 // per-year writing block
	LineSpacing float64 // per writing line inside a block
	ColumnWidth float64 // per-day column
	Gutter      float64
	NumYears    int
	Lines       int
	DaysPerPage int
}

// Derive computes the geometry from the physical configuration. Any
// non-positive derived dimension is a configuration error reported before a
// single page is emitted.
func Derive(pc PhysicalConfig) (Geometry, error) {
	if pc.NumYears <= 0 {
		return Geometry{}, fmt.Errorf("num_years must be positive, got %d", pc.NumYears)
	}
	if pc.WritingLines <= 0 {
		return Geometry{}, fmt.Errorf("writing_lines must be positive, got %d", pc.WritingLines)
	}
	if pc.DaysPerPage != 1 && pc.DaysPerPage != 2 {
		return Geometry{}, fmt.Errorf("days_per_page must be 1 or 2, got %d", pc.DaysPerPage)
	}

	g := Geometry{
		PageWidth:   pc.Paper.Width,
		PageHeight:  pc.Paper.Height,
		Gutter:      pc.Gutter,
		NumYears:    pc.NumYears,
		Lines:       pc.WritingLines,
		DaysPerPage: pc.DaysPerPage,
	}

	g.TextWidth = pc.Paper.Width - pc.Margins.Inner - pc.Margins.Outer
	if g.TextWidth <= 0 {
		return Geometry{}, fmt.Errorf("usable text width %.1fmm is not positive: paper %.1fmm minus inner %.1fmm and outer %.1fmm margins",
			g.TextWidth, pc.Paper.Width, pc.Margins.Inner, pc.Margins.Outer)
	}

	g.TextHeight = pc.Paper.Height - pc.Margins.Top - pc.Margins.Bottom
	if g.TextHeight <= 0 {
		return Geometry{}, fmt.Errorf("usable text height %.1fmm is not positive: paper %.1fmm minus top %.1fmm and bottom %.1fmm margins",
			g.TextHeight, pc.Paper.Height, pc.Margins.Top, pc.Margins.Bottom)
	}

	g.ContentH = g.TextHeight - HeaderHeight - contentPadding
	if g.ContentH <= 0 {
		return Geometry{}, fmt.Errorf("content height %.1fmm is not positive after %.1fmm header", g.ContentH, HeaderHeight)
	}

	g.BlockHeight = g.ContentH / float64(pc.NumYears)
	g.LineSpacing = g.BlockHeight / float64(pc.WritingLines)

	if pc.DaysPerPage == 2 {
		g.ColumnWidth = (g.TextWidth - pc.Gutter) / 2
	} else {
		g.ColumnWidth = g.TextWidth
	}
	if g.ColumnWidth <= 0 {
		return Geometry{}, fmt.Errorf("column width %.1fmm is not positive: gutter %.1fmm too wide for text width %.1fmm",
			g.ColumnWidth, pc.Gutter, g.TextWidth)
	}

	return g, nil
}
