package analyze

import (
	"sort"

	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
)

// BurnRateStrategy turns total costs into an average monthly burn.
type BurnRateStrategy func(ds *domain.FinancialDataset, totalCosts float64) float64

// FixedWindowBurnRate divides by a fixed period count regardless of the
// data. The default 3-period window matches the historical behavior and is
// test-observable; do not change it silently.
func FixedWindowBurnRate(periods float64) BurnRateStrategy {
	return func(_ *domain.FinancialDataset, totalCosts float64) float64 {
		return totalCosts / periods
	}
}

// PeriodCountBurnRate derives the divisor from the distinct months present
// in the dataset's period markers. The corrected model; not the default.
func PeriodCountBurnRate(ds *domain.FinancialDataset, totalCosts float64) float64 {
	months := map[string]struct{}{}
	for _, d := range ds.Dates {
		if len(d) >= 7 {
			months[d[:7]] = struct{}{}
		}
	}
	divisor := float64(len(months))
	if divisor < 1 {
		divisor = 1
	}
	return totalCosts / divisor
}

// GrowthModel produces a period-over-period growth percentage for a series
// of entries.
type GrowthModel func(entries []domain.FinancialEntry) float64

// ZeroGrowth is the historical placeholder model. Combined with the trend
// rule it makes the cashflow trend always neutral; preserved deliberately.
func ZeroGrowth(_ []domain.FinancialEntry) float64 {
	return 0
}

// MonthOverMonthGrowth compares the first and last monthly totals. The
// corrected model; not the default.
func MonthOverMonthGrowth(entries []domain.FinancialEntry) float64 {
	totals := map[string]float64{}
	for _, e := range entries {
		if len(e.Date) >= 7 {
			totals[e.Date[:7]] += e.Amount
		}
	}
	if len(totals) < 2 {
		return 0
	}
	months := make([]string, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Strings(months)
	first := totals[months[0]]
	last := totals[months[len(months)-1]]
	if first == 0 {
		return 0
	}
	return (last - first) / first * 100
}
