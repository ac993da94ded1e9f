package market_hours

import (
	"sort"
	"time"

	"github.com/aristath/radar-runner/internal/domain"
)

// b3FixedHolidays are the fixed-date B3 closures as month/day pairs.
var b3FixedHolidays = [][2]int{
	{1, 1},   // Confraternização Universal
	{4, 21},  // Tiradentes
	{5, 1},   // Dia do Trabalho
	{9, 7},   // Independência
	{10, 12}, // Nossa Senhora Aparecida
	{11, 2},  // Finados
	{11, 15}, // Proclamação da República
	{11, 20}, // Consciência Negra
	{12, 24}, // Véspera de Natal
	{12, 25}, // Natal
	{12, 31}, // Último dia útil do ano
}

// b3EasterOffsets are B3 closures relative to Easter Sunday, in days.
var b3EasterOffsets = []int{
	-48, // Carnaval (segunda)
	-47, // Carnaval (terça)
	-2,  // Sexta-feira Santa
	60,  // Corpus Christi
}

// CalculateEaster returns Easter Sunday of the Gregorian calendar for year
// using the anonymous Gregorian computus.
func CalculateEaster(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451

	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// B3Holidays returns the Brazilian exchange closures for year, sorted.
// Holidays falling on weekends are included as-is; they never affect the
// business-day check.
func B3Holidays(year int) []time.Time {
	holidays := make([]time.Time, 0, len(b3FixedHolidays)+len(b3EasterOffsets))

	for _, md := range b3FixedHolidays {
		holidays = append(holidays, time.Date(year, time.Month(md[0]), md[1], 0, 0, 0, 0, time.UTC))
	}

	easter := CalculateEaster(year)
	for _, offset := range b3EasterOffsets {
		holidays = append(holidays, easter.AddDate(0, 0, offset))
	}

	sort.Slice(holidays, func(i, j int) bool { return holidays[i].Before(holidays[j]) })
	return holidays
}

// B3HolidayStrings returns the B3 closures of every given year as YYYY-MM-DD.
func B3HolidayStrings(years ...int) []string {
	var out []string
	for _, year := range years {
		for _, h := range B3Holidays(year) {
			out = append(out, h.Format(domain.DateLayout))
		}
	}
	return out
}
