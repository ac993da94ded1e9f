package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Provider loads the runner file, creating it with default content on first
// use. Every failure degrades to built-in defaults.
type Provider struct {
	path string
	log  zerolog.Logger
}

// NewProvider creates a provider for the runner file at path.
func NewProvider(path string, log zerolog.Logger) *Provider {
	return &Provider{
		path: path,
		log:  log.With().Str("component", "config").Logger(),
	}
}

// Path returns the runner file path.
func (p *Provider) Path() string {
	return p.path
}

// Load returns the effective runner configuration at now.
func (p *Provider) Load(now time.Time) RunnerConfig {
	defaults := Defaults(now)

	if err := EnsureDir(filepath.Dir(p.path)); err != nil {
		p.log.Warn().Err(err).Msg("Failed to create config directory")
	}

	if _, err := os.Stat(p.path); os.IsNotExist(err) {
		if err := p.writeDefault(now); err != nil {
			p.log.Warn().Err(err).Str("path", p.path).Msg("Failed to write default config file")
		} else {
			p.log.Info().Str("path", p.path).Msg("Default config file created")
		}
	}

	cfg := defaults
	data, err := os.ReadFile(p.path)
	if err != nil {
		p.log.Warn().Err(err).Str("path", p.path).Msg("Failed to read config file, using defaults")
	} else if parsed, err := Parse(p.path, data, defaults); err != nil {
		p.log.Warn().Err(err).Str("path", p.path).Msg("Failed to parse config file, using defaults")
	} else {
		cfg = parsed
	}

	for _, w := range cfg.Normalize() {
		p.log.Warn().Str("path", p.path).Msg(w)
	}

	p.log.Debug().
		Str("path", p.path).
		Int("holidays", cfg.HolidaySet().Len()).
		Str("window", cfg.Window().String()).
		Int("quote_codes", len(cfg.QuoteCodes)).
		Msg("Configuration loaded")

	return cfg
}

func (p *Provider) writeDefault(now time.Time) error {
	content, err := DefaultFileContent(p.path, now)
	if err != nil {
		return err
	}
	if err := os.WriteFile(p.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", p.path, err)
	}
	return nil
}

// DefaultFileContent returns the human-editable default runner file for
// path's format.
func DefaultFileContent(path string, now time.Time) (string, error) {
	defaults := Defaults(now)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		out, err := yaml.Marshal(defaults)
		if err != nil {
			return "", fmt.Errorf("failed to encode default config: %w", err)
		}
		return "# radar-runner configuration\n" + string(out), nil
	default:
		return defaultTOML(defaults), nil
	}
}

func defaultTOML(d RunnerConfig) string {
	var b strings.Builder

	b.WriteString("# Datas de feriados no formato YYYY-MM-DD\n")
	b.WriteString("feriados = [\n")
	for _, h := range d.Holidays {
		fmt.Fprintf(&b, "    %q,\n", h)
	}
	b.WriteString("]\n\n")

	b.WriteString("# Intervalo de horas para rastreio periódico (0..23, inclusivo)\n")
	fmt.Fprintf(&b, "intervalo_inicio = %d\n", d.WindowStart)
	fmt.Fprintf(&b, "intervalo_fim = %d\n\n", d.WindowEnd)

	b.WriteString("# Frequência de execução em minutos\n")
	fmt.Fprintf(&b, "frequencia_minutos = %d\n", d.QuoteFrequencyMinutes)
	fmt.Fprintf(&b, "frequencia_historico_minutos = %d\n", d.HistoricalFrequencyMinutes)
	fmt.Fprintf(&b, "frequencia_indicadores_minutos = %d\n\n", d.IndicatorFrequencyMinutes)

	b.WriteString("# Agendas cron opcionais (substituem a frequência), ex.: \"*/10 10-20 * * 1-5\"\n")
	b.WriteString("# agenda_cotacoes = \"\"\n")
	b.WriteString("# agenda_historico = \"\"\n")
	b.WriteString("# agenda_indicadores = \"\"\n\n")

	fmt.Fprintf(&b, "fuso_horario = %q\n", d.Timezone)
	fmt.Fprintf(&b, "programa = %q\n\n", d.Program)

	b.WriteString("# Lista de códigos de ativos de alta frequência (cotacoes)\n")
	fmt.Fprintf(&b, "ativos_codes = %s\n\n", tomlList(d.QuoteCodes))
	b.WriteString("# Lista de códigos de Ações (fundamentalista/histórico)\n")
	fmt.Fprintf(&b, "acao_codes = %s\n\n", tomlList(d.StockCodes))
	b.WriteString("# Lista de códigos de Fundos (fundamentalista/histórico)\n")
	fmt.Fprintf(&b, "fundo_codes = %s\n\n", tomlList(d.FundCodes))

	b.WriteString("# Categorias adicionais\n")
	b.WriteString("# [categorias]\n")
	b.WriteString("# indices = [\"IBOV\"]\n")

	return b.String()
}

func tomlList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
