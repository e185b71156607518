package journal

import (
	"strings"
	"testing"

	"github.com/username/forever-journal/internal/config"
	"github.com/username/forever-journal/internal/layout"
	"github.com/username/forever-journal/internal/pagination"
	"github.com/username/forever-journal/internal/render"
)

// captureSink records the emission stream: numbered pages with their labels,
// and blank parity fillers.
type captureSink struct {
	pages   []pageRecord
	fillers int
	stream  []string // "page:N" / "blank", in physical order
}

type pageRecord struct {
	number int
	label  string
	title  bool
}

func (s *captureSink) WritePage(p *layout.Page) error {
	s.pages = append(s.pages, pageRecord{number: p.Number, label: p.Label, title: p.Title})
	s.stream = append(s.stream, "page")
	return nil
}

func (s *captureSink) WriteFiller() error {
	s.fillers++
	s.stream = append(s.stream, "blank")
	return nil
}

func (s *captureSink) labelNumbers() map[string]int {
	m := make(map[string]int)
	for _, p := range s.pages {
		if p.label != "" {
			m[p.label] = p.number
		}
	}
	return m
}

func testConfig() *config.Config {
	return &config.Config{
		Journal: config.JournalConfig{
			StartYear:    2026,
			NumYears:     10,
			WritingLines: 5,
			SundaysRed:   true,
			TOC:          true,
			EventLists:   true,
		},
		Page: config.PageConfig{
			Paper:       "A4",
			Margins:     config.MarginsConfig{Inner: 13, Outer: 5, Top: 5, Bottom: 10},
			Spread:      "2up",
			Align:       "mirrored",
			SummarySide: "recto",
			GutterMM:    5,
		},
		Output: config.OutputConfig{Dir: "out"},
	}
}

func generate(t *testing.T, cfg *config.Config, testMode bool) *captureSink {
	t.Helper()
	g, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	g.TestMode = testMode

	sink := &captureSink{}
	if err := g.Generate(sink); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return sink
}

func TestFullRunNumbersAreContiguous(t *testing.T) {
	sink := generate(t, testConfig(), false)

	if len(sink.pages) == 0 {
		t.Fatal("no pages emitted")
	}
	if sink.pages[0].number != 1 || !sink.pages[0].title {
		t.Errorf("first page = %+v, want title page numbered 1", sink.pages[0])
	}
	for i, p := range sink.pages {
		if p.number != i+1 {
			t.Fatalf("page %d carries number %d; full runs never skip", i+1, p.number)
		}
	}
	if sink.fillers != 0 {
		t.Errorf("full run inserted %d blank fillers, want 0", sink.fillers)
	}

	// Title + 12 summaries + 366 daily pages + at least 10 extra pages.
	if len(sink.pages) < 1+12+366+10 {
		t.Errorf("only %d pages emitted", len(sink.pages))
	}
}

func TestMonthSummariesLandOnConfiguredSide(t *testing.T) {
	for _, side := range []string{"recto", "verso"} {
		t.Run(side, func(t *testing.T) {
			cfg := testConfig()
			cfg.Page.SummarySide = side
			sink := generate(t, cfg, false)

			wantOdd := side == "recto"
			var seen int
			for _, p := range sink.pages {
				if !strings.HasPrefix(p.label, "sec:month_") {
					continue
				}
				seen++
				odd := p.number%2 == 1
				if odd != wantOdd {
					t.Errorf("%s is page %d, want %s side", p.label, p.number, side)
				}
			}
			if seen != 12 {
				t.Errorf("found %d month summaries, want 12", seen)
			}
		})
	}
}

func TestPhysicalParityMatchesLogicalParity(t *testing.T) {
	// The binding invariant: every numbered page must sit on a physical
	// sheet of the same side as its printed number, in full and reduced
	// runs alike.
	for _, testMode := range []bool{false, true} {
		sink := generate(t, testConfig(), testMode)

		physical := 0
		pageIdx := 0
		for _, entry := range sink.stream {
			physical++
			if entry != "page" {
				continue
			}
			p := sink.pages[pageIdx]
			pageIdx++
			if pagination.ParityOf(physical) != pagination.ParityOf(p.number) {
				t.Fatalf("testMode=%v: page %d sits on physical sheet %d (wrong side)",
					testMode, p.number, physical)
			}
		}
	}
}

func TestReducedRunKeepsFullRunNumbering(t *testing.T) {
	full := generate(t, testConfig(), false)
	reduced := generate(t, testConfig(), true)

	if len(reduced.pages) >= len(full.pages) {
		t.Fatalf("reduced run emitted %d pages, full %d", len(reduced.pages), len(full.pages))
	}

	fullNums := full.labelNumbers()
	for label, num := range reduced.labelNumbers() {
		if fullNums[label] != num {
			t.Errorf("%s is page %d in reduced run but %d in full run", label, num, fullNums[label])
		}
	}

	// The reduced run renders February and the section fillers it needs; the
	// last logical number must match the full run exactly.
	lastFull := full.pages[len(full.pages)-1].number
	lastReduced := reduced.pages[len(reduced.pages)-1].number
	if lastFull != lastReduced {
		t.Errorf("last page: reduced %d, full %d", lastReduced, lastFull)
	}
}

func TestReducedRunSubset(t *testing.T) {
	sink := generate(t, testConfig(), true)

	labels := sink.labelNumbers()
	if _, ok := labels["sec:month_2"]; !ok {
		t.Error("reduced run must keep the February summary")
	}
	if _, ok := labels["sec:month_3"]; ok {
		t.Error("reduced run must not render the March summary")
	}
	if _, ok := labels["sec:extra_pages"]; !ok {
		t.Error("reduced run must keep the first extra page")
	}
}

func TestEventListFillersAreNumberedSections(t *testing.T) {
	sink := generate(t, testConfig(), false)

	var ordinals []int
	for _, p := range sink.pages {
		if strings.HasPrefix(p.label, "sec:event_list_") {
			ordinals = append(ordinals, p.number)
		}
	}
	if len(ordinals) == 0 {
		t.Fatal("no event-list fillers in a recto-summary run")
	}
	for i := 1; i < len(ordinals); i++ {
		if ordinals[i] <= ordinals[i-1] {
			t.Error("event-list fillers out of order")
		}
	}
}

func TestEventListsDisabledStillFillsSections(t *testing.T) {
	cfg := testConfig()
	cfg.Journal.EventLists = false
	sink := generate(t, cfg, false)

	for _, p := range sink.pages {
		if strings.HasPrefix(p.label, "sec:event_list_") {
			t.Fatal("event-list content emitted while disabled")
		}
	}
	// Numbering is unchanged: fillers still consume their pages.
	for i, p := range sink.pages {
		if p.number != i+1 {
			t.Fatalf("page %d carries number %d", i+1, p.number)
		}
	}
}

func TestExtraSectionLeavesNextSectionOnRecto(t *testing.T) {
	sink := generate(t, testConfig(), false)

	last := sink.pages[len(sink.pages)-1].number
	if pagination.ParityOf(last+1) != pagination.Recto {
		t.Errorf("document ends on page %d; the next section would start verso", last)
	}
}

func TestTitleInfoEscapesPaperName(t *testing.T) {
	// US_LETTER is the one paper key with a character LaTeX rejects in text
	// mode; the rendered document must carry it escaped.
	cfg := testConfig()
	cfg.Page.Paper = "US_LETTER"

	g, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	g.TestMode = true

	var buf strings.Builder
	doc, err := render.NewDocument(&buf, layout.PaperSizes[cfg.Page.Paper], cfg.ToPhysical().Margins, nil)
	if err != nil {
		t.Fatalf("NewDocument failed: %v", err)
	}
	if err := g.Generate(doc); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if err := doc.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `US\_LETTER`) {
		t.Error("paper name missing or unescaped in the title info box")
	}
	if strings.Contains(out, "US_LETTER") {
		t.Error("raw underscore written into text mode")
	}
}

func TestPasses(t *testing.T) {
	cfg := testConfig()
	g, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.Passes() != 2 {
		t.Errorf("TOC document needs 2 passes, got %d", g.Passes())
	}

	cfg.Journal.TOC = false
	g, err = New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.Passes() != 1 {
		t.Errorf("plain document needs 1 pass, got %d", g.Passes())
	}
}
