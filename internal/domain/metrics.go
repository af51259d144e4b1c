package domain

import "time"

// localDay normalizes a timestamp to its local calendar day.
func localDay(t time.Time) string {
	return t.In(time.Local).Format("2006-01-02")
}

// dayStart returns midnight of t's local calendar day.
func dayStart(t time.Time) time.Time {
	l := t.In(time.Local)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.Local)
}

// Streak counts consecutive local calendar days with at least one log,
// anchored at yesterday or today relative to now.
//
// A streak must be rooted in the unbroken past: when yesterday has no log, a
// workout today counts as a streak of exactly 1 and is not chained further
// back. Multiple logs on one day collapse to that single day.
func Streak(logs []WorkoutLog, now time.Time) int {
	if len(logs) == 0 {
		return 0
	}

	days := make(map[string]bool, len(logs))
	for _, l := range logs {
		days[localDay(l.Date)] = true
	}

	today := dayStart(now)
	yesterday := today.AddDate(0, 0, -1)

	if !days[localDay(yesterday)] {
		if days[localDay(today)] {
			return 1
		}
		return 0
	}

	count := 0
	for d := yesterday; days[localDay(d)]; d = d.AddDate(0, 0, -1) {
		count++
	}
	if days[localDay(today)] {
		count++
	}
	return count
}

// HealthStatus classifies kitty health.
type HealthStatus string

// Health statuses, best to worst.
const (
	HealthExcellent HealthStatus = "excellent"
	HealthGood      HealthStatus = "good"
	HealthFair      HealthStatus = "fair"
	HealthPoor      HealthStatus = "poor"
)

// HealthReport is the decaying recency score derived from the log history.
type HealthReport struct {
	Percentage int          `json:"percentage"`
	Status     HealthStatus `json:"status"`
	Message    string       `json:"message"`
}

// Health maps days elapsed since the most recent log to a step-function
// score. It only looks at the most recent log; frequency does not matter.
// An empty history is the zero/poor case, not an error. Future-dated logs
// are taken at face value and land in the freshest band.
func Health(logs []WorkoutLog, now time.Time) HealthReport {
	if len(logs) == 0 {
		return HealthReport{
			Percentage: 0,
			Status:     HealthPoor,
			Message:    "Your kitty's health is critical. Get moving!",
		}
	}

	latest := logs[0].Date
	for _, l := range logs[1:] {
		if l.Date.After(latest) {
			latest = l.Date
		}
	}

	// Count calendar days, not hour spans: a day clipped by a clock shift
	// still counts as one full day.
	elapsed := 0
	for d := dayStart(latest); d.Before(dayStart(now)); d = d.AddDate(0, 0, 1) {
		elapsed++
	}

	switch {
	case elapsed <= 3:
		return HealthReport{100, HealthExcellent, "Your kitty is thriving! Keep it up!"}
	case elapsed <= 7:
		return HealthReport{75, HealthGood, "Your kitty is doing well, but misses the gym a little."}
	case elapsed <= 14:
		return HealthReport{50, HealthFair, "Your kitty is getting restless. Time for a workout!"}
	case elapsed <= 30:
		return HealthReport{25, HealthPoor, "Your kitty is feeling neglected. Log a workout soon!"}
	default:
		return HealthReport{0, HealthPoor, "Your kitty's health is critical. Get moving!"}
	}
}
