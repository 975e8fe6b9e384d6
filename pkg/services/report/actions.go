package report

import (
	"math"

	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
)

// MarkActionCompleted returns a copy of the report with the given headline
// completed and the doom clock extended. The input is never mutated; an
// out-of-range index returns it unchanged.
//
// The multiplier is applied fresh against the report's current stored clock
// using the total completed count, so two completions multiply the original
// values by 1.30 once, not by 1.15 twice.
func MarkActionCompleted(report domain.DoomReport, headlineIndex int) domain.DoomReport {
	if headlineIndex < 0 || headlineIndex >= len(report.BrutalHeadlines) {
		return report
	}

	updated := report
	updated.BrutalHeadlines = append([]domain.BrutalHeadline{}, report.BrutalHeadlines...)
	updated.BrutalHeadlines[headlineIndex].Completed = true

	completed := 0
	for _, h := range updated.BrutalHeadlines {
		if h.Completed {
			completed++
		}
	}

	// Each completed action extends the runway by 15%.
	multiplier := 1 + float64(completed)*0.15
	updated.DoomClock.DaysRemaining = math.Ceil(report.DoomClock.DaysRemaining * multiplier)
	updated.DoomClock.Projections = domain.ScenarioProjections{
		Optimistic:  math.Ceil(report.DoomClock.Projections.Optimistic * multiplier),
		Realistic:   math.Ceil(report.DoomClock.Projections.Realistic * multiplier),
		Pessimistic: math.Ceil(report.DoomClock.Projections.Pessimistic * multiplier),
	}
	return updated
}
