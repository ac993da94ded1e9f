package config

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/aristath/radar-runner/internal/modules/market_hours"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for runner files that are neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Built-in defaults.
const (
	DefaultWindowStart                = 10
	DefaultWindowEnd                  = 20
	DefaultQuoteFrequencyMinutes      = 15
	DefaultHistoricalFrequencyMinutes = 180
	DefaultIndicatorFrequencyMinutes  = 180
	DefaultTimezone                   = "America/Sao_Paulo"
	DefaultProgram                    = "radar-fundamentos"
)

// Built-in category names.
const (
	CategoryStocks = "acao"
	CategoryFunds  = "fundo"
	CategoryQuotes = "geral"
)

// RunnerConfig is the content of radar-runner.conf.
type RunnerConfig struct {
	Holidays []string `toml:"feriados" yaml:"feriados"`

	WindowStart int `toml:"intervalo_inicio" yaml:"intervalo_inicio"`
	WindowEnd   int `toml:"intervalo_fim" yaml:"intervalo_fim"`

	QuoteFrequencyMinutes      int `toml:"frequencia_minutos" yaml:"frequencia_minutos"`
	HistoricalFrequencyMinutes int `toml:"frequencia_historico_minutos" yaml:"frequencia_historico_minutos"`
	IndicatorFrequencyMinutes  int `toml:"frequencia_indicadores_minutos" yaml:"frequencia_indicadores_minutos"`

	// Optional cron expressions replacing the constant intervals above.
	QuoteSchedule      string `toml:"agenda_cotacoes,omitempty" yaml:"agenda_cotacoes,omitempty"`
	HistoricalSchedule string `toml:"agenda_historico,omitempty" yaml:"agenda_historico,omitempty"`
	IndicatorSchedule  string `toml:"agenda_indicadores,omitempty" yaml:"agenda_indicadores,omitempty"`

	Timezone string `toml:"fuso_horario" yaml:"fuso_horario"`
	Program  string `toml:"programa" yaml:"programa"`

	QuoteCodes []string `toml:"ativos_codes" yaml:"ativos_codes"`
	StockCodes []string `toml:"acao_codes" yaml:"acao_codes"`
	FundCodes  []string `toml:"fundo_codes" yaml:"fundo_codes"`

	// Extra categories beyond acao and fundo.
	Categories map[string][]string `toml:"categorias,omitempty" yaml:"categorias,omitempty"`
}

// Defaults returns the built-in configuration. Holidays are the B3 closures
// of now's year and the following one.
func Defaults(now time.Time) RunnerConfig {
	return RunnerConfig{
		Holidays:                   market_hours.B3HolidayStrings(now.Year(), now.Year()+1),
		WindowStart:                DefaultWindowStart,
		WindowEnd:                  DefaultWindowEnd,
		QuoteFrequencyMinutes:      DefaultQuoteFrequencyMinutes,
		HistoricalFrequencyMinutes: DefaultHistoricalFrequencyMinutes,
		IndicatorFrequencyMinutes:  DefaultIndicatorFrequencyMinutes,
		Timezone:                   DefaultTimezone,
		Program:                    DefaultProgram,
		QuoteCodes:                 []string{"VALE3", "PRIO3", "BRAV3", "KLBN11", "ITSA4", "SNEL11", "AFHI11", "RELG11", "VGIR11"},
		StockCodes:                 []string{"VALE3", "PRIO3", "BRAV3", "KLBN11", "ITSA4"},
		FundCodes:                  []string{"SNEL11", "AFHI11", "RELG11", "VGIR11"},
	}
}

// Parse decodes data as TOML or YAML (chosen by the file extension of name)
// on top of base, so keys absent from data keep base's values.
func Parse(name string, data []byte, base RunnerConfig) (RunnerConfig, error) {
	cfg := base
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return base, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".toml", ".conf", "":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return base, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	default:
		return base, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	return cfg, nil
}

// Encode renders cfg as TOML.
func (c RunnerConfig) Encode() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.String(), nil
}

// Normalize clamps out-of-range values and returns a warning per fix.
func (c *RunnerConfig) Normalize() []string {
	var warnings []string

	clamp := func(name string, v *int) {
		if *v < 1 {
			warnings = append(warnings, fmt.Sprintf("%s=%d is below 1 minute, using 1", name, *v))
			*v = 1
		}
	}
	clamp("frequencia_minutos", &c.QuoteFrequencyMinutes)
	clamp("frequencia_historico_minutos", &c.HistoricalFrequencyMinutes)
	clamp("frequencia_indicadores_minutos", &c.IndicatorFrequencyMinutes)

	if c.WindowStart > c.WindowEnd {
		warnings = append(warnings, fmt.Sprintf("intervalo_inicio=%d is after intervalo_fim=%d, periodic runs will never start", c.WindowStart, c.WindowEnd))
	}

	if strings.TrimSpace(c.Timezone) == "" {
		c.Timezone = DefaultTimezone
	} else if _, err := time.LoadLocation(c.Timezone); err != nil {
		warnings = append(warnings, fmt.Sprintf("unknown time zone %q, using %s", c.Timezone, DefaultTimezone))
		c.Timezone = DefaultTimezone
	}

	if strings.TrimSpace(c.Program) == "" {
		c.Program = DefaultProgram
	}

	if invalid := c.HolidaySet().Invalid(); len(invalid) > 0 {
		warnings = append(warnings, fmt.Sprintf("malformed holidays %v will never match (expected YYYY-MM-DD)", invalid))
	}

	return warnings
}

// HolidaySet returns the configured holidays as a set.
func (c RunnerConfig) HolidaySet() market_hours.HolidaySet {
	return market_hours.NewHolidaySet(c.Holidays...)
}

// Window returns the configured execution window.
func (c RunnerConfig) Window() market_hours.Window {
	return market_hours.Window{Start: c.WindowStart, End: c.WindowEnd}
}

// Location returns the market time zone, falling back to UTC when even the
// default zone cannot be loaded.
func (c RunnerConfig) Location() *time.Location {
	if loc, err := time.LoadLocation(c.Timezone); err == nil {
		return loc
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// QuoteInterval is the pause between live-quote cycles.
func (c RunnerConfig) QuoteInterval() time.Duration {
	return minutes(c.QuoteFrequencyMinutes)
}

// HistoricalInterval is the pause between historical export cycles.
func (c RunnerConfig) HistoricalInterval() time.Duration {
	return minutes(c.HistoricalFrequencyMinutes)
}

// IndicatorInterval is the pause between indicator cycles.
func (c RunnerConfig) IndicatorInterval() time.Duration {
	return minutes(c.IndicatorFrequencyMinutes)
}

func minutes(n int) time.Duration {
	if n < 1 {
		n = 1
	}
	return time.Duration(n) * time.Minute
}

// CodesFor returns the code list of category and whether the category is known.
// A known category may have an empty list.
func (c RunnerConfig) CodesFor(category string) ([]string, bool) {
	switch category {
	case CategoryStocks:
		return c.StockCodes, true
	case CategoryFunds:
		return c.FundCodes, true
	case CategoryQuotes:
		return c.QuoteCodes, true
	}
	codes, ok := c.Categories[category]
	return codes, ok
}

// CategoryNames lists every category usable by historical and indicator
// tasks, sorted.
func (c RunnerConfig) CategoryNames() []string {
	names := []string{CategoryStocks, CategoryFunds}
	for name := range c.Categories {
		if name != CategoryStocks && name != CategoryFunds {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
