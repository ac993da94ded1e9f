package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

func TestDefaults(t *testing.T) {
	d := Defaults(testNow)

	assert.Equal(t, 10, d.WindowStart)
	assert.Equal(t, 20, d.WindowEnd)
	assert.Equal(t, 15, d.QuoteFrequencyMinutes)
	assert.Equal(t, 3*time.Hour, d.HistoricalInterval())
	assert.Equal(t, "America/Sao_Paulo", d.Timezone)
	assert.Equal(t, "radar-fundamentos", d.Program)
	assert.Contains(t, d.Holidays, "2025-12-25")
	assert.Contains(t, d.Holidays, "2026-12-25")
	assert.Equal(t, []string{"VALE3", "PRIO3", "BRAV3", "KLBN11", "ITSA4"}, d.StockCodes)
}

func TestParse_TOMLKeepsDefaultsForMissingKeys(t *testing.T) {
	data := []byte(`
feriados = ["2025-12-25"]
intervalo_inicio = 9
frequencia_minutos = 5
acao_codes = ["VALE3"]

[categorias]
indices = ["IBOV"]
`)

	cfg, err := Parse("radar-runner.conf", data, Defaults(testNow))
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-12-25"}, cfg.Holidays)
	assert.Equal(t, 9, cfg.WindowStart)
	assert.Equal(t, 20, cfg.WindowEnd)
	assert.Equal(t, 5*time.Minute, cfg.QuoteInterval())
	assert.Equal(t, []string{"VALE3"}, cfg.StockCodes)
	assert.Equal(t, []string{"SNEL11", "AFHI11", "RELG11", "VGIR11"}, cfg.FundCodes)
	assert.Equal(t, map[string][]string{"indices": {"IBOV"}}, cfg.Categories)
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
feriados:
  - "2025-12-24"
intervalo_fim: 18
fundo_codes: []
`)

	cfg, err := Parse("runner.yml", data, Defaults(testNow))
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-12-24"}, cfg.Holidays)
	assert.Equal(t, 18, cfg.WindowEnd)
	assert.Empty(t, cfg.FundCodes)
	assert.Equal(t, 10, cfg.WindowStart)
}

func TestParse_Errors(t *testing.T) {
	base := Defaults(testNow)

	cfg, err := Parse("radar-runner.conf", []byte("intervalo_inicio = \"dez\""), base)
	require.Error(t, err)
	assert.Equal(t, base, cfg)

	_, err = Parse("runner.json", []byte("{}"), base)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestNormalize(t *testing.T) {
	cfg := Defaults(testNow)
	cfg.QuoteFrequencyMinutes = 0
	cfg.Timezone = "Mars/Olympus_Mons"
	cfg.Program = " "
	cfg.WindowStart = 21
	cfg.Holidays = append(cfg.Holidays, "25/12/2025")

	warnings := cfg.Normalize()

	assert.Len(t, warnings, 4)
	assert.Contains(t, warnings[len(warnings)-1], "25/12/2025")
	assert.Contains(t, warnings[len(warnings)-1], "will never match")
	assert.Equal(t, 1, cfg.QuoteFrequencyMinutes)
	assert.Equal(t, DefaultTimezone, cfg.Timezone)
	assert.Equal(t, DefaultProgram, cfg.Program)
	assert.True(t, cfg.Window().Degenerate())
}

func TestNormalize_CleanConfigHasNoWarnings(t *testing.T) {
	cfg := Defaults(testNow)
	assert.Empty(t, cfg.Normalize())
}

func TestCodesFor(t *testing.T) {
	cfg := Defaults(testNow)
	cfg.Categories = map[string][]string{"indices": {"IBOV"}, "vazia": nil}

	codes, ok := cfg.CodesFor(CategoryFunds)
	assert.True(t, ok)
	assert.Equal(t, cfg.FundCodes, codes)

	codes, ok = cfg.CodesFor(CategoryQuotes)
	assert.True(t, ok)
	assert.Equal(t, cfg.QuoteCodes, codes)

	codes, ok = cfg.CodesFor("indices")
	assert.True(t, ok)
	assert.Equal(t, []string{"IBOV"}, codes)

	codes, ok = cfg.CodesFor("vazia")
	assert.True(t, ok)
	assert.Empty(t, codes)

	_, ok = cfg.CodesFor("cripto")
	assert.False(t, ok)

	assert.Equal(t, []string{"acao", "fundo", "indices", "vazia"}, cfg.CategoryNames())
}

func TestLocation(t *testing.T) {
	cfg := Defaults(testNow)
	assert.Equal(t, "America/Sao_Paulo", cfg.Location().String())

	cfg.Timezone = "nowhere"
	assert.Equal(t, "America/Sao_Paulo", cfg.Location().String())
}

func TestEncode(t *testing.T) {
	out, err := Defaults(testNow).Encode()
	require.NoError(t, err)

	assert.Contains(t, out, "intervalo_inicio = 10")
	assert.Contains(t, out, "fuso_horario = \"America/Sao_Paulo\"")
	assert.NotContains(t, out, "agenda_cotacoes")

	back, err := Parse("x.toml", []byte(out), RunnerConfig{})
	require.NoError(t, err)
	assert.Equal(t, Defaults(testNow), back)
}
