package scheduler

import (
	"testing"
	"time"

	"github.com/aristath/radar-runner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterval(t *testing.T) {
	s := Interval(15 * time.Minute)
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, saoPaulo)

	assert.True(t, s.Next(now).Equal(now.Add(15*time.Minute)))
	assert.Equal(t, "@every 15m0s", s.Spec)
}

func TestParseSchedule_Empty(t *testing.T) {
	s, err := ParseSchedule("  ", 3*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "@every 3h0m0s", s.Spec)
}

func TestParseSchedule_Cron(t *testing.T) {
	s, err := ParseSchedule("*/10 10-20 * * 1-5", time.Hour)
	require.NoError(t, err)

	monday := time.Date(2025, 12, 22, 9, 55, 0, 0, saoPaulo)
	assert.True(t, s.Next(monday).Equal(time.Date(2025, 12, 22, 10, 0, 0, 0, saoPaulo)))

	friday := time.Date(2025, 12, 26, 20, 55, 0, 0, saoPaulo)
	assert.True(t, s.Next(friday).Equal(time.Date(2025, 12, 29, 10, 0, 0, 0, saoPaulo)))
}

func TestParseSchedule_Descriptor(t *testing.T) {
	s, err := ParseSchedule("@every 10m", time.Hour)
	require.NoError(t, err)

	now := time.Date(2025, 12, 22, 10, 0, 0, 0, saoPaulo)
	assert.True(t, s.Next(now).Equal(now.Add(10*time.Minute)))
}

func TestParseSchedule_InvalidFallsBack(t *testing.T) {
	s, err := ParseSchedule("every weekday", 2*time.Hour)
	require.Error(t, err)

	now := time.Date(2025, 12, 22, 10, 0, 0, 0, saoPaulo)
	assert.True(t, s.Next(now).Equal(now.Add(2*time.Hour)))
}

func TestRunPeriodic_CronScheduleWaitsForActivation(t *testing.T) {
	monday := time.Date(2025, 12, 22, 9, 55, 0, 0, saoPaulo)
	h := newHarness(t, monday)
	s, err := ParseSchedule("*/10 10-20 * * 1-5", time.Hour)
	require.NoError(t, err)

	sleeper := h.runPeriodic(t, domain.NewTask(domain.KindQuotePeriodic, "geral", []string{"VALE3"}), s, 3)

	assert.Equal(t, []time.Duration{5 * time.Minute, 10 * time.Minute, 10 * time.Minute}, sleeper.slept)
	// 09:55 is outside the window; 10:00 and 10:10 run
	assert.Len(t, h.launcher.calls, 2)
}

func TestParseSchedule_NeverFiringFallsBack(t *testing.T) {
	s, err := ParseSchedule("0 0 30 2 *", 15*time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "never fires")
	assert.Equal(t, "@every 15m0s", s.Spec)

	now := time.Date(2025, 12, 22, 12, 0, 0, 0, saoPaulo)
	assert.True(t, s.Next(now).Equal(now.Add(15*time.Minute)))
}

func TestRunPeriodic_NeverFiringScheduleKeepsRunning(t *testing.T) {
	monday := time.Date(2025, 12, 22, 12, 0, 0, 0, saoPaulo)
	h := newHarness(t, monday)
	s, err := ParseSchedule("0 0 30 2 *", 15*time.Minute)
	require.Error(t, err)

	sleeper := h.runPeriodic(t, domain.NewTask(domain.KindQuotePeriodic, "geral", []string{"VALE3"}), s, 3)

	assert.Equal(t, []time.Duration{15 * time.Minute, 15 * time.Minute, 15 * time.Minute}, sleeper.slept)
	assert.Len(t, h.launcher.calls, 3)
}
