package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/username/forever-journal/internal/events"
	"github.com/username/forever-journal/internal/layout"
)

// Config represents application configuration
type Config struct {
	Journal JournalConfig `mapstructure:"journal"`
	Page    PageConfig    `mapstructure:"page"`
	Output  OutputConfig  `mapstructure:"output"`
}

// JournalConfig represents the journal's span and content options
type JournalConfig struct {
	StartYear     int    `mapstructure:"start_year"`
	NumYears      int    `mapstructure:"num_years"`
	WritingLines  int    `mapstructure:"writing_lines"`
	SundaysRed    bool   `mapstructure:"sundays_red"`
	LocalizedDays bool   `mapstructure:"localized_days"`
	Whimsy        bool   `mapstructure:"whimsy"`
	TOC           bool   `mapstructure:"toc"`
	EventLists    bool   `mapstructure:"event_lists"`
	SpecialDays   string `mapstructure:"special_days"` // YAML file; empty uses the built-in set
}

// PageConfig represents physical page geometry
type PageConfig struct {
	Paper       string        `mapstructure:"paper"` // A4, US_LETTER or JIS_B5
	Margins     MarginsConfig `mapstructure:"margins"`
	Spread      string        `mapstructure:"spread"` // "2up" or "4up"
	Align       string        `mapstructure:"align"`  // "mirrored" or "left"
	SummarySide string        `mapstructure:"summary_side"`
	GutterMM    float64       `mapstructure:"gutter_mm"`
}

// MarginsConfig represents page margins in millimeters
type MarginsConfig struct {
	Inner  float64 `mapstructure:"inner"`
	Outer  float64 `mapstructure:"outer"`
	Top    float64 `mapstructure:"top"`
	Bottom float64 `mapstructure:"bottom"`
}

// OutputConfig represents output and logging options
type OutputConfig struct {
	Dir           string `mapstructure:"dir"`
	NoCompile     bool   `mapstructure:"no_compile"`
	IncludeSource bool   `mapstructure:"include_source"`
	SourceFile    string `mapstructure:"source_file"`
	LogFile       string `mapstructure:"log_file"`
	LogLevel      string `mapstructure:"log_level"`
}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.forever-journal")
		v.AddConfigPath("/etc/forever-journal")
	}

	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file in the search path is fine: every option has a
		// usable default and can be overridden by flags. An explicitly named
		// file must exist.
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if configPath != "" || !notFound {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("journal.start_year", 2026)
	v.SetDefault("journal.num_years", 10)
	v.SetDefault("journal.writing_lines", 5)
	v.SetDefault("journal.sundays_red", true)
	v.SetDefault("journal.event_lists", true)

	v.SetDefault("page.paper", "A4")
	v.SetDefault("page.margins.inner", 13.0)
	v.SetDefault("page.margins.outer", 5.0)
	v.SetDefault("page.margins.top", 5.0)
	v.SetDefault("page.margins.bottom", 10.0)
	v.SetDefault("page.spread", "2up")
	v.SetDefault("page.align", "mirrored")
	v.SetDefault("page.summary_side", "recto")
	v.SetDefault("page.gutter_mm", 5.0)

	v.SetDefault("output.dir", "output")
	v.SetDefault("output.log_level", "info")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Journal.StartYear < 1583 || c.Journal.StartYear > 9999 {
		return fmt.Errorf("journal.start_year must be a Gregorian calendar year, got %d", c.Journal.StartYear)
	}
	if c.Journal.NumYears <= 0 {
		return fmt.Errorf("journal.num_years must be positive")
	}
	if c.Journal.WritingLines <= 0 {
		return fmt.Errorf("journal.writing_lines must be positive")
	}

	if _, ok := layout.PaperSizes[c.Page.Paper]; !ok {
		return fmt.Errorf("page.paper must be one of A4, US_LETTER or JIS_B5, got '%s'", c.Page.Paper)
	}
	switch c.Page.Spread {
	case "2up", "4up":
	default:
		return fmt.Errorf("page.spread must be '2up' or '4up', got '%s'", c.Page.Spread)
	}
	switch c.Page.Align {
	case "mirrored", "left":
	default:
		return fmt.Errorf("page.align must be 'mirrored' or 'left', got '%s'", c.Page.Align)
	}
	switch c.Page.SummarySide {
	case "recto", "verso":
	default:
		return fmt.Errorf("page.summary_side must be 'recto' or 'verso', got '%s'", c.Page.SummarySide)
	}
	if c.Page.GutterMM < 0 {
		return fmt.Errorf("page.gutter_mm must not be negative")
	}

	m := c.Page.Margins
	if m.Inner < 0 || m.Outer < 0 || m.Top < 0 || m.Bottom < 0 {
		return fmt.Errorf("page.margins values must not be negative")
	}

	return nil
}

// DaysPerPage returns the number of day columns per physical page for the
// configured spread mode.
func (c *PageConfig) DaysPerPage() int {
	if c.Spread == "4up" {
		return 2
	}
	return 1
}

// ToPhysical converts the page settings into the layout engine's input.
func (c *Config) ToPhysical() layout.PhysicalConfig {
	return layout.PhysicalConfig{
		Paper: layout.PaperSizes[c.Page.Paper],
		Margins: layout.Margins{
			Inner:  c.Page.Margins.Inner,
			Outer:  c.Page.Margins.Outer,
			Top:    c.Page.Margins.Top,
			Bottom: c.Page.Margins.Bottom,
		},
		NumYears:     c.Journal.NumYears,
		WritingLines: c.Journal.WritingLines,
		DaysPerPage:  c.Page.DaysPerPage(),
		Gutter:       c.Page.GutterMM,
	}
}

// specialDaysFile is the on-disk shape of the special-days YAML document.
type specialDaysFile struct {
	Annual        []events.AnnualRule `yaml:"annual"`
	Birthdays     []events.DatedRule  `yaml:"birthdays"`
	Anniversaries []events.DatedRule  `yaml:"anniversaries"`
	Other         []events.DatedRule  `yaml:"other"`
}

// LoadSpecialDays reads the configured special-days file, or returns the
// built-in set when none is configured. Dated rules carry their category so
// the title page can group them.
func (c *Config) LoadSpecialDays() ([]events.AnnualRule, []events.DatedRule, error) {
	if c.Journal.SpecialDays == "" {
		return DefaultAnnualRules(), nil, nil
	}

	data, err := os.ReadFile(c.Journal.SpecialDays)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read special days file: %w", err)
	}

	var f specialDaysFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("failed to parse special days file: %w", err)
	}

	var dated []events.DatedRule
	for _, r := range f.Birthdays {
		r.Category = events.CategoryBirthday
		dated = append(dated, r)
	}
	for _, r := range f.Anniversaries {
		r.Category = events.CategoryAnniversary
		dated = append(dated, r)
	}
	for _, r := range f.Other {
		r.Category = events.CategoryOther
		dated = append(dated, r)
	}

	annual := f.Annual
	if annual == nil {
		annual = DefaultAnnualRules()
	}
	return annual, dated, nil
}

// DefaultAnnualRules returns the built-in US holiday set used when no
// special-days file is configured.
func DefaultAnnualRules() []events.AnnualRule {
	return []events.AnnualRule{
		{Name: "New Year's Day", Month: 1, Day: 1},
		{Name: "MLK Day", Rule: "3rd Mon Jan"},
		{Name: "Valentine's Day", Month: 2, Day: 14},
		{Name: "President's Day", Rule: "3rd Mon Feb"},
		{Name: "St. Patrick's Day", Month: 3, Day: 17},
		{Name: "Easter", Rule: "easter"},
		{Name: "Mother's Day", Rule: "2nd Sun May"},
		{Name: "Memorial Day", Rule: "last Mon May"},
		{Name: "Father's Day", Rule: "3rd Sun Jun"},
		{Name: "Juneteenth", Month: 6, Day: 19},
		{Name: "Independence Day", Month: 7, Day: 4},
		{Name: "Labor Day", Rule: "1st Mon Sep"},
		{Name: "Columbus Day", Rule: "2nd Mon Oct"},
		{Name: "Halloween", Month: 10, Day: 31},
		{Name: "Election Day", Rule: "election"},
		{Name: "Veterans Day", Month: 11, Day: 11},
		{Name: "Thanksgiving", Rule: "4th Thu Nov"},
		{Name: "Christmas", Month: 12, Day: 25},
	}
}
