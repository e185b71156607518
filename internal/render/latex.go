// Package render serializes page intermediate representations into a LaTeX
// document and drives the external PDF compiler. It performs no layout math:
// every coordinate arriving here is final.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/username/forever-journal/internal/layout"
)

// Document is an append-only LaTeX output stream. It implements the
// pagination engine's sink: pages and fillers are written in order, exactly
// once, and never revisited.
type Document struct {
	w      io.Writer
	paper  layout.PaperSize
	margin layout.Margins
	logger *zap.Logger

	pages   int
	fillers int
}

// NewDocument writes the preamble and returns the open stream. The caller
// must Close it to terminate the document.
func NewDocument(w io.Writer, paper layout.PaperSize, margin layout.Margins, logger *zap.Logger) (*Document, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Document{w: w, paper: paper, margin: margin, logger: logger}
	if err := d.writePreamble(); err != nil {
		return nil, fmt.Errorf("failed to write preamble: %w", err)
	}
	return d, nil
}

func (d *Document) writePreamble() error {
	var b strings.Builder

	b.WriteString("\\documentclass[10pt,twoside]{article}\n")
	fmt.Fprintf(&b, "\\usepackage[paperwidth=%smm,paperheight=%smm,inner=%smm,outer=%smm,top=%smm,bottom=%smm,footskip=1mm]{geometry}\n",
		mm(d.paper.Width), mm(d.paper.Height),
		mm(d.margin.Inner), mm(d.margin.Outer), mm(d.margin.Top), mm(d.margin.Bottom))
	b.WriteString("\\usepackage{helvet}\n")
	b.WriteString("\\renewcommand{\\familydefault}{\\sfdefault}\n")
	b.WriteString("\\usepackage{xcolor}\n")
	b.WriteString("\\usepackage{tikz}\n")
	b.WriteString("\\usepackage{fancyhdr}\n")
	b.WriteString("\\usepackage{listings}\n")
	b.WriteString("\\usepackage{multicol}\n")
	b.WriteString("\\usepackage{pdflscape}\n")
	b.WriteString("\\usepackage{fontawesome5}\n")

	b.WriteString("\\definecolor{guidegray}{gray}{0.6}\n")
	b.WriteString("\\definecolor{bordergray}{gray}{0.3}\n")
	b.WriteString("\\definecolor{textgray}{gray}{0.4}\n")
	b.WriteString("\\definecolor{sundayred}{rgb}{0.8,0.3,0.3}\n")

	b.WriteString("\\pagestyle{fancy}\n")
	b.WriteString("\\fancyhf{}\n")
	b.WriteString("\\renewcommand{\\headrulewidth}{0pt}\n")
	b.WriteString("\\fancyfoot[C]{\\footnotesize\\textcolor{textgray}{\\thepage}}\n")
	b.WriteString("\\setlength{\\parindent}{0pt}\n")

	// A contents row for an event-list filler that may or may not exist in
	// this run: the row only renders once the label is defined.
	b.WriteString("\\newcommand{\\eventlistrow}[1]{%\n")
	b.WriteString("  \\ifcsname r@sec:event_list_#1\\endcsname Event List #1\\hfill\\pageref{sec:event_list_#1}\\fi}\n")

	b.WriteString("\\lstset{basicstyle=\\tiny\\ttfamily,breaklines=true,columns=fullflexible}\n")

	b.WriteString("\\begin{document}\n")

	_, err := io.WriteString(d.w, b.String())
	return err
}

// WritePage serializes one page IR and terminates it with a page break.
func (d *Document) WritePage(p *layout.Page) error {
	var b strings.Builder

	// The printed folio is the logical number the pagination engine assigned,
	// never LaTeX's own count (blank fillers desynchronize the two).
	fmt.Fprintf(&b, "\\setcounter{page}{%d}%%\n", p.Number)
	if p.Title {
		b.WriteString("\\thispagestyle{empty}%\n")
	}
	if p.Label != "" {
		fmt.Fprintf(&b, "\\label{%s}%%\n", p.Label)
	}
	if p.TOCTitle != "" {
		fmt.Fprintf(&b, "\\addcontentsline{toc}{section}{%s}%%\n", p.TOCTitle)
	}

	if p.Landscape {
		b.WriteString("\\begin{landscape}\n")
	}

	if p.Verbatim != "" {
		b.WriteString("\\begin{multicols}{3}\n")
		b.WriteString("\\begin{lstlisting}\n")
		b.WriteString(p.Verbatim)
		if !strings.HasSuffix(p.Verbatim, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("\\end{lstlisting}\n")
		b.WriteString("\\end{multicols}\n")
	} else {
		if p.CenteredTitle != "" {
			fmt.Fprintf(&b, "\\begin{center}\\textbf{\\Large %s}\\end{center}\n", p.CenteredTitle)
		}
		if p.Header != nil {
			d.writeHeader(&b, p.Header, pageHeaderWidth(p))
		}
		if p.HeaderGapMM > 0 {
			fmt.Fprintf(&b, "\\vspace{%smm}\n", mm(p.HeaderGapMM))
		}
		d.writeColumns(&b, p.Columns)
	}

	if p.Landscape {
		b.WriteString("\\end{landscape}\n")
	}
	b.WriteString("\\newpage\n")

	if _, err := io.WriteString(d.w, b.String()); err != nil {
		return fmt.Errorf("failed to write page %d: %w", p.Number, err)
	}
	d.pages++
	return nil
}

// WriteFiller emits a blank physical page carrying no folio.
func (d *Document) WriteFiller() error {
	if _, err := io.WriteString(d.w, "\\thispagestyle{empty}\\mbox{}\\newpage\n"); err != nil {
		return fmt.Errorf("failed to write filler page: %w", err)
	}
	d.fillers++
	return nil
}

// Close terminates the document. The underlying writer is not closed.
func (d *Document) Close() error {
	if _, err := io.WriteString(d.w, "\\end{document}\n"); err != nil {
		return fmt.Errorf("failed to close document: %w", err)
	}
	d.logger.Info("document complete",
		zap.Int("pages", d.pages),
		zap.Int("fillers", d.fillers))
	return nil
}

func pageHeaderWidth(p *layout.Page) float64 {
	var w float64
	for _, col := range p.Columns {
		w += col.WidthMM
	}
	return w
}

// writeHeader draws a heading band as its own picture so it measures exactly
// HeightMM regardless of font metrics.
func (d *Document) writeHeader(b *strings.Builder, h *layout.Header, w float64) {
	fmt.Fprintf(b, "\\begin{tikzpicture}[x=1mm,y=1mm]\n")
	fmt.Fprintf(b, "\\path[use as bounding box] (0,0) rectangle (%s,%s);\n", mm(w), mm(h.HeightMM))

	x := 0.0
	anchor := layout.AnchorSouthWest
	titleAnchor := "base west"
	titleX := 10.0
	if h.AlignRight {
		x = w
		anchor = "south east"
		titleAnchor = "base east"
		titleX = w - 10
	}

	if h.DayLabel != "" {
		fmt.Fprintf(b, "\\node[anchor=%s,inner sep=0] at (%s,0) {\\Huge\\textbf{%s}};\n",
			anchor, mm(x), h.DayLabel)
	} else {
		titleX = x
		if h.AlignRight {
			titleAnchor = "south east"
		} else {
			titleAnchor = "south west"
		}
	}
	if h.TitleLabel != "" {
		fmt.Fprintf(b, "\\node[anchor=%s,text=textgray] at (%s,0) {\\small %s};\n",
			titleAnchor, mm(titleX), h.TitleLabel)
	}
	b.WriteString("\\end{tikzpicture}\\par\\nointerlineskip\n")
}

// writeColumns lays the page's columns side by side in top-aligned boxes.
func (d *Document) writeColumns(b *strings.Builder, cols []layout.Column) {
	if len(cols) == 0 {
		b.WriteString("\\mbox{}\n")
		return
	}

	b.WriteString("\\noindent\n")
	for i, col := range cols {
		if i > 0 {
			b.WriteString("\\hfill\n")
		}
		fmt.Fprintf(b, "\\begin{minipage}[t]{%smm}\n", mm(col.WidthMM))
		if col.Blank {
			b.WriteString("\\mbox{}\n")
		} else {
			if col.Header != nil {
				d.writeHeader(b, col.Header, col.WidthMM)
			}
			for _, c := range col.Canvases {
				d.writeCanvas(b, c)
			}
		}
		b.WriteString("\\end{minipage}")
		if i == len(cols)-1 {
			b.WriteString("\n")
		} else {
			b.WriteString("%\n")
		}
	}
}

// writeCanvas serializes one drawing area as a tikzpicture with a fixed
// bounding box, so stacked canvases keep their designed heights.
func (d *Document) writeCanvas(b *strings.Builder, c layout.Canvas) {
	b.WriteString("\\begin{tikzpicture}[x=1mm,y=1mm]\n")
	fmt.Fprintf(b, "\\path[use as bounding box] (0,0) rectangle (%s,%s);\n", mm(c.W), mm(c.H))

	for _, prim := range c.Prims {
		switch v := prim.(type) {
		case layout.Line:
			d.writeLine(b, v)
		case layout.Rect:
			fmt.Fprintf(b, "\\draw[%s] (%s,%s) rectangle (%s,%s);\n",
				colorOpt(v.Color), mm(v.X), mm(v.Y), mm(v.X+v.W), mm(v.Y+v.H))
		case layout.Circle:
			fmt.Fprintf(b, "\\draw[%s] (%s,%s) circle (%smm);\n",
				colorOpt(v.Color), mm(v.CX), mm(v.CY), mm(v.R))
		case layout.Text:
			d.writeText(b, v)
		}
	}

	b.WriteString("\\end{tikzpicture}\\par\\nointerlineskip\n")
}

func (d *Document) writeLine(b *strings.Builder, l layout.Line) {
	opts := colorOpt(l.Color)
	if l.Dashed {
		opts += ",dash pattern=on 0.5pt off 1pt"
	}
	fmt.Fprintf(b, "\\draw[%s] (%s,%s) -- (%s,%s);\n",
		opts, mm(l.X1), mm(l.Y1), mm(l.X2), mm(l.Y2))
}

func (d *Document) writeText(b *strings.Builder, t layout.Text) {
	opts := []string{fmt.Sprintf("anchor=%s", t.Anchor)}
	if t.Color != layout.ColorNone {
		opts = append(opts, fmt.Sprintf("text=%s", t.Color))
	}
	if font := fontOpt(t.Font, t.Bold, t.Italic); font != "" {
		opts = append(opts, "font="+font)
	}
	if t.WidthMM > 0 {
		opts = append(opts, fmt.Sprintf("text width=%smm", mm(t.WidthMM)))
		if t.AlignR {
			opts = append(opts, "align=right")
		}
	}
	if t.YShiftMM != 0 {
		opts = append(opts, fmt.Sprintf("yshift=%smm", mm(t.YShiftMM)))
	}
	opts = append(opts, "inner sep=1pt")

	body := t.S
	if t.Math {
		body = "$" + body + "$"
	}

	fmt.Fprintf(b, "\\node[%s] at (%s,%s) {%s};\n",
		strings.Join(opts, ","), mm(t.X), mm(t.Y), body)
}

// fontOpt builds a tikz font option from the size and weight flags.
func fontOpt(f layout.FontSize, bold, italic bool) string {
	var parts []string
	switch f {
	case layout.FontNormal:
	case layout.FontTypewriter:
		parts = append(parts, "\\ttfamily")
	default:
		parts = append(parts, "\\"+string(f))
	}
	if bold {
		parts = append(parts, "\\bfseries")
	}
	if italic {
		parts = append(parts, "\\itshape")
	}
	return strings.Join(parts, "")
}

func colorOpt(c layout.Color) string {
	if c == layout.ColorNone {
		return "black"
	}
	return string(c)
}

// mm formats a millimeter quantity with just enough precision.
func mm(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
