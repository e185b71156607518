package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/username/forever-journal/internal/config"
	"github.com/username/forever-journal/internal/events"
	"github.com/username/forever-journal/internal/journal"
	"github.com/username/forever-journal/internal/layout"
	"github.com/username/forever-journal/internal/render"
	"github.com/username/forever-journal/pkg/dateutil"
)

var (
	configPath string
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "forever-journal",
		Short: "Multi-year one-line-a-day journal generator",
		Long:  "Generate a printable multi-year journal PDF: one page per day of the year, one writing block per year, with month summaries, event lists and extra pages",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Output.LogFile != "" {
				logger, err = initFileLogger(cfg.Output.LogFile, cfg.Output.LogLevel)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(verifyCmd())
	rootCmd.AddCommand(marginTestCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	var (
		testMode      bool
		noCompile     bool
		outputDir     string
		startYear     int
		numYears      int
		lines         int
		spread        string
		align         string
		paper         string
		toc           bool
		whimsy        bool
		localizedDays bool
		includeSource bool
		sourceFile    string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the journal document and compile it to PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			// Flags override the config file.
			flags := cmd.Flags()
			if flags.Changed("output") {
				cfg.Output.Dir = outputDir
			}
			if flags.Changed("no-compile") {
				cfg.Output.NoCompile = noCompile
			}
			if flags.Changed("start-year") {
				cfg.Journal.StartYear = startYear
			}
			if flags.Changed("years") {
				cfg.Journal.NumYears = numYears
			}
			if flags.Changed("lines") {
				cfg.Journal.WritingLines = lines
			}
			if flags.Changed("spread") {
				cfg.Page.Spread = spread
			}
			if flags.Changed("align") {
				cfg.Page.Align = align
			}
			if flags.Changed("paper") {
				cfg.Page.Paper = paper
			}
			if flags.Changed("toc") {
				cfg.Journal.TOC = toc
			}
			if flags.Changed("whimsy") {
				cfg.Journal.Whimsy = whimsy
			}
			if flags.Changed("localized-days") {
				cfg.Journal.LocalizedDays = localizedDays
			}
			if flags.Changed("include-source") {
				cfg.Output.IncludeSource = includeSource
			}
			if flags.Changed("source-file") {
				cfg.Output.SourceFile = sourceFile
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			return runGenerate(cmd, cfg, testMode)
		},
	}

	cmd.Flags().BoolVarP(&testMode, "test", "t", false, "Generate a reduced test subset with full-document page numbers")
	cmd.Flags().BoolVar(&noCompile, "no-compile", false, "Write the .tex file but skip pdflatex")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "output", "Output directory")
	cmd.Flags().IntVar(&startYear, "start-year", 0, "First tracked year")
	cmd.Flags().IntVar(&numYears, "years", 0, "Number of tracked years")
	cmd.Flags().IntVar(&lines, "lines", 0, "Writing lines per day block")
	cmd.Flags().StringVar(&spread, "spread", "", "Days per spread: 2up or 4up")
	cmd.Flags().StringVar(&align, "align", "", "Label alignment: mirrored or left")
	cmd.Flags().StringVar(&paper, "paper", "", "Paper size: A4, US_LETTER or JIS_B5")
	cmd.Flags().BoolVar(&toc, "toc", false, "Put a table of contents on the title page")
	cmd.Flags().BoolVar(&whimsy, "whimsy", false, "Decorate known special days with icons")
	cmd.Flags().BoolVar(&localizedDays, "localized-days", false, "Render weekdays as Japanese day glyphs")
	cmd.Flags().BoolVar(&includeSource, "include-source", false, "Append the generator source as a listing")
	cmd.Flags().StringVar(&sourceFile, "source-file", "", "File to append as the source listing")

	return cmd
}

func runGenerate(cmd *cobra.Command, cfg *config.Config, testMode bool) error {
	gen, err := journal.New(cfg, logger)
	if err != nil {
		return err
	}
	gen.TestMode = testMode

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	texPath := filepath.Join(cfg.Output.Dir, "journal.tex")
	f, err := os.Create(texPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	paper := layout.PaperSizes[cfg.Page.Paper]
	margins := cfg.ToPhysical().Margins
	doc, err := render.NewDocument(f, paper, margins, logger)
	if err != nil {
		f.Close()
		return err
	}
	if err := gen.Generate(doc); err != nil {
		f.Close()
		return err
	}
	if err := doc.Close(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to flush output file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", texPath)

	if cfg.Output.NoCompile {
		return nil
	}

	compiler := render.NewCompiler(logger)
	if !compiler.Available() {
		fmt.Fprintf(cmd.OutOrStdout(), "pdflatex not found; kept %s (install TeX Live or rerun with --no-compile to silence this)\n", texPath)
		return nil
	}
	if err := compiler.Compile(cmd.Context(), texPath, gen.Passes()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", texPath[:len(texPath)-4]+".pdf")
	return nil
}

func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the configuration and print the derived layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			geo, err := layout.Derive(cfg.ToPhysical())
			if err != nil {
				return fmt.Errorf("layout does not fit: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Years:        %d--%d\n", cfg.Journal.StartYear, cfg.Journal.StartYear+cfg.Journal.NumYears-1)
			fmt.Fprintf(out, "Paper:        %s (%gmm x %gmm)\n", cfg.Page.Paper, geo.PageWidth, geo.PageHeight)
			fmt.Fprintf(out, "Text area:    %.1fmm x %.1fmm\n", geo.TextWidth, geo.TextHeight)
			fmt.Fprintf(out, "Day block:    %.2fmm high, %d lines at %.2fmm\n", geo.BlockHeight, geo.Lines, geo.LineSpacing)
			fmt.Fprintf(out, "Column:       %.1fmm (%s)\n", geo.ColumnWidth, cfg.Page.Spread)

			annual, dated, err := cfg.LoadSpecialDays()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Special days: %d annual, %d dated\n", len(annual), len(dated))
			for _, r := range annual {
				if r.Rule == "" {
					continue
				}
				month, day, ok := events.ResolveRule(r.Rule, cfg.Journal.StartYear)
				if !ok {
					return fmt.Errorf("special day %q has unresolvable rule %q", r.Name, r.Rule)
				}
				fmt.Fprintf(out, "  %-20s %s %d, %d\n", r.Name, dateutil.MonthName(month), day, cfg.Journal.StartYear)
			}
			return nil
		},
	}
	return cmd
}

func marginTestCmd() *cobra.Command {
	var noCompile bool
	var outputDir string
	var offsets render.MarginTestOffsets

	cmd := &cobra.Command{
		Use:   "margin-test",
		Short: "Generate a two-page duplex calibration sheet for printer margins",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cmd.Flags().Changed("output") {
				cfg.Output.Dir = outputDir
			}

			if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			texPath := filepath.Join(cfg.Output.Dir, "margin_test.tex")
			f, err := os.Create(texPath)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}

			paper := layout.PaperSizes[cfg.Page.Paper]
			if err := render.WriteMarginTest(f, paper, cfg.ToPhysical().Margins, offsets, logger); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to flush output file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", texPath)

			if noCompile {
				return nil
			}
			compiler := render.NewCompiler(logger)
			if !compiler.Available() {
				fmt.Fprintf(cmd.OutOrStdout(), "pdflatex not found; kept %s\n", texPath)
				return nil
			}
			return compiler.Compile(cmd.Context(), texPath, 1)
		},
	}

	cmd.Flags().BoolVar(&noCompile, "no-compile", false, "Write the .tex file but skip pdflatex")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "output", "Output directory")
	cmd.Flags().Float64Var(&offsets.FrontTop, "offset-top-front", 1.8, "Front-side top feed offset in mm")
	cmd.Flags().Float64Var(&offsets.FrontLeft, "offset-left-front", 2.0, "Front-side left feed offset in mm")
	cmd.Flags().Float64Var(&offsets.BackTop, "offset-top-back", 1.8, "Back-side top feed offset in mm")
	cmd.Flags().Float64Var(&offsets.BackLeft, "offset-left-back", 2.5, "Back-side left feed offset in mm")

	return cmd
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	// Create core with lumberjack writer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
