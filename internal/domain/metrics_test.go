package domain_test

import (
	"testing"
	"time"

	"kittyfit/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// now is fixed at local noon so day arithmetic never crosses midnight.
var now = time.Date(2026, 8, 28, 12, 0, 0, 0, time.Local)

func logsOnDaysAgo(offsets ...int) []domain.WorkoutLog {
	logs := make([]domain.WorkoutLog, 0, len(offsets))
	for i, off := range offsets {
		logs = append(logs, domain.WorkoutLog{
			ID:   string(rune('a' + i)),
			Date: now.AddDate(0, 0, -off),
		})
	}
	return logs
}

func TestStreak(t *testing.T) {
	tests := []struct {
		name    string
		daysAgo []int
		want    int
	}{
		{"no logs", nil, 0},
		{"today only", []int{0}, 1},
		{"yesterday only", []int{1}, 1},
		{"today and yesterday", []int{0, 1}, 2},
		{"three day run ending today", []int{0, 1, 2}, 3},
		{"run ending yesterday", []int{1, 2, 3}, 3},
		{"gap at yesterday blocks history", []int{0, 2, 3}, 1},
		{"gap at yesterday and today", []int{2, 3}, 0},
		{"only two days ago", []int{2}, 0},
		{"gap mid-run stops the walk", []int{0, 1, 2, 4, 5}, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.Streak(logsOnDaysAgo(tc.daysAgo...), now))
		})
	}
}

func TestStreakCollapsesDuplicateDays(t *testing.T) {
	// Three logs on the same two days still make a streak of 2.
	logs := logsOnDaysAgo(0, 0, 1)
	assert.Equal(t, 2, domain.Streak(logs, now))
}

func TestStreakIgnoresTimeOfDay(t *testing.T) {
	yesterday := now.AddDate(0, 0, -1)
	logs := []domain.WorkoutLog{
		{ID: "a", Date: time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 23, 59, 0, 0, time.Local)},
		{ID: "b", Date: time.Date(now.Year(), now.Month(), now.Day(), 0, 1, 0, 0, time.Local)},
	}
	assert.Equal(t, 2, domain.Streak(logs, now))
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		daysAgo    []int
		wantPct    int
		wantStatus domain.HealthStatus
	}{
		{"no logs", nil, 0, domain.HealthPoor},
		{"today", []int{0}, 100, domain.HealthExcellent},
		{"two days ago", []int{2}, 100, domain.HealthExcellent},
		{"three days ago", []int{3}, 100, domain.HealthExcellent},
		{"four days ago", []int{4}, 75, domain.HealthGood},
		{"a week ago", []int{7}, 75, domain.HealthGood},
		{"ten days ago", []int{10}, 50, domain.HealthFair},
		{"two weeks ago", []int{14}, 50, domain.HealthFair},
		{"three weeks ago", []int{21}, 25, domain.HealthPoor},
		{"thirty days ago", []int{30}, 25, domain.HealthPoor},
		{"forty days ago", []int{40}, 0, domain.HealthPoor},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.Health(logsOnDaysAgo(tc.daysAgo...), now)
			assert.Equal(t, tc.wantPct, got.Percentage)
			assert.Equal(t, tc.wantStatus, got.Status)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestHealthUsesMostRecentLogOnly(t *testing.T) {
	// An old pile of logs does not drag the score down.
	got := domain.Health(logsOnDaysAgo(1, 20, 40, 60), now)
	require.Equal(t, 100, got.Percentage)
	require.Equal(t, domain.HealthExcellent, got.Status)
}

func TestHealthFutureDateAtFaceValue(t *testing.T) {
	got := domain.Health(logsOnDaysAgo(-2), now)
	assert.Equal(t, 100, got.Percentage)
}

func TestHealthCountsCalendarDaysAcrossClockShift(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("no timezone database available")
	}
	orig := time.Local
	time.Local = loc
	defer func() { time.Local = orig }()

	// March 7 to March 11, 2026 spans the spring-forward shift: 95 hours on
	// the clock, four calendar days on the wall. Four days is the good band.
	last := time.Date(2026, 3, 7, 12, 0, 0, 0, loc)
	at := time.Date(2026, 3, 11, 12, 0, 0, 0, loc)

	got := domain.Health([]domain.WorkoutLog{{ID: "a", Date: last}}, at)
	assert.Equal(t, 75, got.Percentage)
	assert.Equal(t, domain.HealthGood, got.Status)
}

func TestHealthMessagesAreFixedPerBand(t *testing.T) {
	recent := domain.Health(logsOnDaysAgo(21), now)
	stale := domain.Health(logsOnDaysAgo(40), now)
	// Both poor, but distinct bands carry distinct messages.
	assert.Equal(t, domain.HealthPoor, recent.Status)
	assert.Equal(t, domain.HealthPoor, stale.Status)
	assert.NotEqual(t, recent.Message, stale.Message)
}
