package analyze

import (
	"sort"
	"strings"

	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
)

// rankCostLeaks groups cost entries by the leading "Category - " token of
// their description and ranks the buckets by amount. Entries without a
// category token fall into "Unknown", so an uncategorized dataset collapses
// to the legacy single 100% entry. The result is never empty and the
// percentages sum to at most 100.
func rankCostLeaks(costs []domain.FinancialEntry, totalCosts float64) []domain.CostLeak {
	if len(costs) == 0 {
		return []domain.CostLeak{{
			Category:   "Unknown",
			Amount:     totalCosts,
			Percentage: 100,
			Trend:      domain.LeakStable,
		}}
	}

	type bucket struct {
		amount  float64
		entries []domain.FinancialEntry
	}
	buckets := map[string]*bucket{}
	for _, e := range costs {
		category := leakCategory(e.Description)
		b, ok := buckets[category]
		if !ok {
			b = &bucket{}
			buckets[category] = b
		}
		b.amount += e.Amount
		b.entries = append(b.entries, e)
	}

	leaks := make([]domain.CostLeak, 0, len(buckets))
	for category, b := range buckets {
		percentage := 100.0
		if totalCosts != 0 {
			percentage = b.amount / totalCosts * 100
		}
		leaks = append(leaks, domain.CostLeak{
			Category:   category,
			Amount:     b.amount,
			Percentage: percentage,
			Trend:      leakTrend(b.entries),
		})
	}
	sort.Slice(leaks, func(i, j int) bool {
		if leaks[i].Amount != leaks[j].Amount {
			return leaks[i].Amount > leaks[j].Amount
		}
		return leaks[i].Category < leaks[j].Category
	})
	return leaks
}

func leakCategory(description string) string {
	if category, _, found := strings.Cut(description, " - "); found && category != "" {
		return category
	}
	return "Unknown"
}

// leakTrend compares the chronologically first and last amounts of a bucket.
func leakTrend(entries []domain.FinancialEntry) domain.LeakTrend {
	if len(entries) < 2 {
		return domain.LeakStable
	}
	ordered := append([]domain.FinancialEntry{}, entries...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date < ordered[j].Date })
	first := ordered[0].Amount
	last := ordered[len(ordered)-1].Amount
	switch {
	case last > first:
		return domain.LeakIncreasing
	case last < first:
		return domain.LeakDecreasing
	default:
		return domain.LeakStable
	}
}
