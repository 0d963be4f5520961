package app

import (
	"fmt"
	"slices"

	"github.com/meeplestats/meeplestats/internal/domain"
)

const (
	hoursAchievementStep    = 100
	sessionsAchievementStep = 100
	playsAchievementStep    = 250

	minutesPerHour = 60
)

// Achievement is the date a cumulative counter first reached a threshold
type Achievement struct {
	Metric    domain.Metric
	Threshold int
	Date      domain.Date
}

// AchievementStep returns the distance between consecutive thresholds of the metric
func AchievementStep(metric domain.Metric) int {
	switch metric {
	case domain.MetricHours:
		return hoursAchievementStep
	case domain.MetricSessions:
		return sessionsAchievementStep
	case domain.MetricPlays:
		return playsAchievementStep
	}
	panic(fmt.Sprintf("logic error: unknown metric %q", string(metric)))
}

// ComputeLoggingAchievements walks the whole play log in date order and records
// the date every threshold was first reached.
//
// Results are ordered by metric, then by threshold. A single play can reach
// several thresholds at once, in which case they all get that play's date.
func ComputeLoggingAchievements(c domain.Collection) []Achievement {
	plays := slices.Clone(c.Plays)
	// Plays within a day keep their logged order
	slices.SortStableFunc(plays, func(a, b domain.Play) int {
		return a.Date.Compare(b.Date)
	})

	byMetric := map[domain.Metric][]Achievement{}
	reached := map[domain.Metric]int{}

	record := func(metric domain.Metric, count int, date domain.Date) {
		step := AchievementStep(metric)
		for next := reached[metric] + step; next <= count; next += step {
			byMetric[metric] = append(byMetric[metric], Achievement{
				Metric:    metric,
				Threshold: next,
				Date:      date,
			})
			reached[metric] = next
		}
	}

	minutes := 0
	sessions := 0
	playCount := 0
	seenDays := make(map[domain.Date]struct{})

	for _, play := range plays {
		if play.DurationMinutes > 0 {
			minutes += play.DurationMinutes
		}
		if _, ok := seenDays[play.Date]; !ok {
			seenDays[play.Date] = struct{}{}
			sessions++
		}
		playCount++

		// Integer hours, so a threshold is only reached once the full hour is logged
		record(domain.MetricHours, minutes/minutesPerHour, play.Date)
		record(domain.MetricSessions, sessions, play.Date)
		record(domain.MetricPlays, playCount, play.Date)
	}

	achievements := []Achievement{}
	for _, metric := range domain.Metrics() {
		achievements = append(achievements, byMetric[metric]...)
	}
	return achievements
}

// FilterAchievementsByYear keeps the achievements reached within the year.
// AllTime keeps everything.
func FilterAchievementsByYear(achievements []Achievement, year int) []Achievement {
	scope := domain.InYear(year)
	filtered := []Achievement{}
	for _, achievement := range achievements {
		if scope.Includes(achievement.Date) {
			filtered = append(filtered, achievement)
		}
	}
	return filtered
}
