// Package journal assembles the complete document: it walks the section
// sequence in order, asks the pagination engine for side alignment, and
// feeds every page IR to the output sink. All content decisions (what gets
// rendered in a reduced test run, how many extra pages, which filler content)
// live here.
package journal

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/username/forever-journal/internal/config"
	"github.com/username/forever-journal/internal/events"
	"github.com/username/forever-journal/internal/layout"
	"github.com/username/forever-journal/internal/pages"
	"github.com/username/forever-journal/internal/pagination"
	"github.com/username/forever-journal/pkg/dateutil"
)

// minExtraPages is the smallest extra-pages section; the section grows by
// one page when the following section would otherwise start on the wrong
// side.
const minExtraPages = 10

// embeddedSource is the default content of the source-code appendix when no
// source file is configured.
//
//go:embed generator.go
var embeddedSource string

// Generator holds everything needed to emit one journal document.
type Generator struct {
	cfg     *config.Config
	geo     layout.Geometry
	emitter *pages.Emitter
	annual  []events.AnnualRule
	dated   []events.DatedRule
	logger  *zap.Logger

	// TestMode emits only a representative subset of pages. The surviving
	// pages keep the numbers and filler ordinals of the full document.
	TestMode bool

	refYear int // leap year whose calendar supplies row counts (Feb 29 rows)
	source  string
}

// New derives the geometry and resolves the special-days configuration.
func New(cfg *config.Config, logger *zap.Logger) (*Generator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	geo, err := layout.Derive(cfg.ToPhysical())
	if err != nil {
		return nil, fmt.Errorf("failed to derive layout: %w", err)
	}

	annual, dated, err := cfg.LoadSpecialDays()
	if err != nil {
		return nil, err
	}
	resolver := events.NewResolver(annual, dated, cfg.Journal.Whimsy)

	g := &Generator{
		cfg:    cfg,
		geo:    geo,
		annual: annual,
		dated:  dated,
		logger: logger,
		emitter: &pages.Emitter{
			Geo:           geo,
			StartYear:     cfg.Journal.StartYear,
			Resolver:      resolver,
			SundaysRed:    cfg.Journal.SundaysRed,
			LocalizedDays: cfg.Journal.LocalizedDays,
			Align:         pages.AlignMode(cfg.Page.Align),
		},
		refYear: dateutil.FirstLeapYearFrom(cfg.Journal.StartYear),
	}

	if cfg.Output.IncludeSource {
		if cfg.Output.SourceFile == "" {
			g.source = embeddedSource
		} else {
			data, err := os.ReadFile(cfg.Output.SourceFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read source file for appendix: %w", err)
			}
			g.source = string(data)
		}
	}

	return g, nil
}

// Generate walks the full section sequence and writes the document to sink.
func (g *Generator) Generate(sink pagination.Sink) error {
	engine := pagination.NewEngine(sink, g.fillerPage, g.logger)
	summarySide := sideOf(g.cfg.Page.SummarySide)

	// Title page is always page 1, even in reduced runs: it carries the
	// cross-reference table that makes the subset navigable.
	if err := engine.EmitPage(g.emitter.TitlePage(g.titleInfo())); err != nil {
		return err
	}

	for month := 1; month <= 12; month++ {
		if err := g.generateMonth(engine, month, summarySide); err != nil {
			return err
		}
	}

	if err := g.generateExtraPages(engine); err != nil {
		return err
	}

	if err := g.generateSourceAppendix(engine); err != nil {
		return err
	}

	g.logger.Info("journal generated",
		zap.Int("logical_pages", engine.Logical()-1),
		zap.Int("physical_pages", engine.Cursor().PhysicalEmitted()),
		zap.Int("section_fillers", engine.FillersEmitted()),
		zap.Bool("test_mode", g.TestMode))
	return nil
}

// generateMonth emits the month's summary grid followed by its daily pages.
func (g *Generator) generateMonth(engine *pagination.Engine, month int, summarySide pagination.Parity) error {
	if g.monthSummaryIncluded(month) {
		if err := engine.StartSection(summarySide); err != nil {
			return err
		}
		if err := engine.EmitPage(g.emitter.MonthSummary(month, g.refYear)); err != nil {
			return err
		}
	} else {
		engine.SkipSectionStart(summarySide)
		engine.SkipLogicalPage()
	}

	daysInMonth := dateutil.DaysInMonth(g.refYear, month)
	perPage := g.geo.DaysPerPage

	for first := 1; first <= daysInMonth; first += perPage {
		var chunk []pages.DayRef
		for d := first; d < first+perPage && d <= daysInMonth; d++ {
			chunk = append(chunk, pages.DayRef{Month: month, Day: d})
		}

		if !g.chunkIncluded(chunk) {
			engine.SkipLogicalPage()
			continue
		}

		side := pagination.ParityOf(engine.Logical())
		if err := engine.AlignToParity(side); err != nil {
			return err
		}
		if err := engine.EmitPage(g.emitter.DailyPage(chunk, side, daysInMonth)); err != nil {
			return err
		}
	}
	return nil
}

// generateExtraPages emits the free-writing section: at least minExtraPages
// pages, padded so whatever follows starts on a recto sheet.
func (g *Generator) generateExtraPages(engine *pagination.Engine) error {
	count := pagination.PadSectionLength(engine.Logical(), minExtraPages, pagination.Recto)
	for i := 0; i < count; i++ {
		if !g.extraPageIncluded(i, count) {
			engine.SkipLogicalPage()
			continue
		}

		side := pagination.ParityOf(engine.Logical())
		if err := engine.AlignToParity(side); err != nil {
			return err
		}
		if err := engine.EmitPage(g.emitter.ExtraPage(side, i == 0)); err != nil {
			return err
		}
	}
	return nil
}

// generateSourceAppendix emits the landscape source listing when configured.
func (g *Generator) generateSourceAppendix(engine *pagination.Engine) error {
	if !g.cfg.Output.IncludeSource {
		return nil
	}

	if err := engine.StartSection(pagination.Recto); err != nil {
		return err
	}
	return engine.EmitPage(&layout.Page{
		Label:     "sec:source",
		TOCTitle:  "Source Code",
		Landscape: true,
		Verbatim:  g.source,
	})
}

// fillerPage supplies content for numbered section-boundary fillers: an
// event-list layout when enabled, a bare numbered page otherwise.
func (g *Generator) fillerPage(ordinal int) *layout.Page {
	if !g.cfg.Journal.EventLists {
		return &layout.Page{}
	}
	return g.emitter.EventList(ordinal, g.geo.TextWidth)
}

func (g *Generator) titleInfo() pages.TitleInfo {
	cfg := g.cfg
	return pages.TitleInfo{
		Annual:        g.annual,
		Dated:         g.dated,
		TOC:           cfg.Journal.TOC,
		IncludeSource: cfg.Output.IncludeSource,
		Whimsy:        cfg.Journal.Whimsy,
		MonthIncluded: g.monthSummaryIncluded,
		ExtraIncluded: g.extraIncluded(),
		InfoLines: []string{
			fmt.Sprintf("%d--%d", cfg.Journal.StartYear, cfg.Journal.StartYear+cfg.Journal.NumYears-1),
			fmt.Sprintf("%s %s %s", cfg.Page.Paper, cfg.Page.Spread, cfg.Page.Align),
			fmt.Sprintf("margins %g/%g/%g/%g", cfg.Page.Margins.Inner, cfg.Page.Margins.Outer,
				cfg.Page.Margins.Top, cfg.Page.Margins.Bottom),
			fmt.Sprintf("%d lines", cfg.Journal.WritingLines),
			fmt.Sprintf("generated %s", time.Now().Format("2006-01-02")),
		},
	}
}

// Passes returns how many compiler passes the document needs: two when
// cross-references must resolve, one otherwise.
func (g *Generator) Passes() int {
	if g.cfg.Journal.TOC {
		return 2
	}
	return 1
}

// Reduced test-run content selection. The subset exercises every page type
// and every tricky calendar edge: short and long months, Feb 29, month and
// year boundaries.

func (g *Generator) monthSummaryIncluded(month int) bool {
	if !g.TestMode {
		return true
	}
	return month == 2
}

var testModeDays = map[int]map[int]bool{
	2:  {1: true, 2: true, 3: true, 4: true, 29: true},
	6:  {30: true},
	11: {29: true, 30: true},
	12: {29: true, 30: true, 31: true},
}

func (g *Generator) chunkIncluded(chunk []pages.DayRef) bool {
	if !g.TestMode {
		return true
	}
	for _, ref := range chunk {
		if testModeDays[ref.Month][ref.Day] {
			return true
		}
	}
	return false
}

func (g *Generator) extraIncluded() bool {
	return true
}

func (g *Generator) extraPageIncluded(idx, count int) bool {
	if !g.TestMode {
		return true
	}
	return idx == 0 || idx == 1 || idx == count-1
}

func sideOf(s string) pagination.Parity {
	if s == "verso" {
		return pagination.Verso
	}
	return pagination.Recto
}
