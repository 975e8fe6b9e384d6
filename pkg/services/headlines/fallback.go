package headlines

import (
	"fmt"

	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
)

// Fallback derives 5 headlines purely from analysis fields. It backs every
// failure path of the model-based generator, so the pipeline always
// completes with a full headline set.
func Fallback(analysis *domain.AnalysisResult) []domain.BrutalHeadline {
	return []domain.BrutalHeadline{
		{
			Headline:   fmt.Sprintf("Runway critical: Cash zero in %.0f days", analysis.Runway),
			Action:     "Implement immediate spending freeze on all non-essential expenses",
			Impact:     domain.AmountImpact(analysis.TotalCosts * 0.15),
			Confidence: 0.9,
		},
		{
			Headline:   fmt.Sprintf("Burn rate unsustainable: %.0f per month exceeds revenue", analysis.BurnRate),
			Action:     "Cut bottom 20% of underperforming cost centers within 7 days",
			Impact:     domain.AmountImpact(analysis.BurnRate * 0.2),
			Confidence: 0.85,
		},
		{
			Headline:   "Revenue growth stalled while expenses continue to climb",
			Action:     "Revise pricing strategy and implement 10% increase across all services",
			Impact:     domain.PercentageImpact("10%"),
			Confidence: 0.7,
		},
		{
			Headline:   "No emergency reserves: Operating at 100% cash utilization",
			Action:     "Secure bridge funding or negotiate extended payment terms with vendors",
			Impact:     domain.AmountImpact(analysis.BurnRate * 0.5),
			Confidence: 0.6,
		},
		{
			Headline:   "Cost structure misaligned with revenue model",
			Action:     "Restructure team to match current revenue capacity, not future projections",
			Impact:     domain.AmountImpact(analysis.TotalCosts * 0.25),
			Confidence: 0.8,
		},
	}
}
