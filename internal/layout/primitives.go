package layout

// Drawing primitives. Emitters build pages out of these in page-local
// millimeter coordinates (origin bottom-left of each canvas); the render
// package serializes them without doing any layout math of its own.

// Color names a stroke/text color defined by the output preamble.
type Color string

const (
	ColorBorder Color = "bordergray"
	ColorGuide  Color = "guidegray"
	ColorText   Color = "textgray"
	ColorSunday Color = "sundayred"
	ColorNone   Color = ""
)

// Anchor positions a text node relative to its coordinate.
type Anchor string

const (
	AnchorNorthWest Anchor = "north west"
	AnchorNorthEast Anchor = "north east"
	AnchorWest      Anchor = "west"
	AnchorEast      Anchor = "east"
	AnchorBaseEast  Anchor = "base east"
	AnchorSouthWest Anchor = "south west"
	AnchorCenter    Anchor = "center"
)

// FontSize selects one of the preamble's fixed text sizes.
type FontSize string

const (
	FontTiny       FontSize = "tiny"
	FontScript     FontSize = "scriptsize"
	FontFootnote   FontSize = "footnotesize"
	FontSmall      FontSize = "small"
	FontNormal     FontSize = ""
	FontLarge      FontSize = "Large"
	FontHuge       FontSize = "huge"
	FontHugeUpper  FontSize = "Huge"
	FontTypewriter FontSize = "ttfamily"
)

// Line is a straight segment. Dashed lines use the writing-guide dash
// pattern.
type Line struct {
	X1, Y1, X2, Y2 float64
	Color          Color
	Dashed         bool
}

// Rect is an axis-aligned rectangle outline.
type Rect struct {
	X, Y, W, H float64
	Color      Color
}

// Circle is a writing-guide bullet mark.
type Circle struct {
	CX, CY, R float64
	Color     Color
}

// Text is a positioned text label. The string may carry markup commands
// (colors, icons); the serializer writes it verbatim after the emitters have
// escaped user-supplied content.
type Text struct {
	X, Y     float64
	S        string
	Anchor   Anchor
	Font     FontSize
	Color    Color
	Bold     bool
	Italic   bool
	WidthMM  float64 // wrap width; 0 = natural width
	AlignR   bool    // right-align wrapped text
	YShiftMM float64
	Math     bool // typeset S in math mode
}

// Canvas is one fixed-size drawing area; a page column stacks canvases
// vertically.
type Canvas struct {
	W, H  float64
	Prims []any
}

// AddLine appends a line segment.
func (c *Canvas) AddLine(l Line) { c.Prims = append(c.Prims, l) }

// AddRect appends a rectangle.
func (c *Canvas) AddRect(r Rect) { c.Prims = append(c.Prims, r) }

// AddCircle appends a circle.
func (c *Canvas) AddCircle(ci Circle) { c.Prims = append(c.Prims, ci) }

// AddText appends a text label.
func (c *Canvas) AddText(t Text) { c.Prims = append(c.Prims, t) }

// Header is a heading band spanning its container (the whole page, or one
// column on day pages).
type Header struct {
	HeightMM   float64
	DayLabel   string // boxed fixed-width label (day number); empty to omit
	TitleLabel string // month name or section title
	AlignRight bool
}

// Column is one vertical strip of a page.
type Column struct {
	WidthMM  float64
	Header   *Header
	Canvases []Canvas
	Blank    bool // reserved space with no content (trailing 4up column)
}

// Page is the emitted page intermediate representation. A page is produced
// once, serialized once and discarded.
type Page struct {
	Number        int    // logical page number; assigned by the pagination engine
	Label         string // cross-reference label, e.g. "sec:month_2"
	TOCTitle      string // table-of-contents entry; empty to omit
	Title         bool   // render inside a title-page environment
	CenteredTitle string // centered heading above the body (month summaries)
	Header        *Header
	HeaderGapMM   float64 // vertical gap between page header and columns
	Columns       []Column
	Landscape     bool   // rotate the page (source listing appendix)
	Verbatim      string // preformatted listing text; rendered instead of columns
}
