package forecast

import (
	"math"

	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
)

// ConfidenceStrategy scores how much to trust a forecast, in [0,1].
type ConfidenceStrategy func(analysis *domain.AnalysisResult) float64

// FixedConfidence returns a constant score. The default 0.75 preserves the
// historical placeholder value.
func FixedConfidence(v float64) ConfidenceStrategy {
	return func(_ *domain.AnalysisResult) float64 { return v }
}

// CompletenessConfidence discounts the fixed baseline for every analysis
// field the data could not support. Alternate strategy; not the default.
func CompletenessConfidence(analysis *domain.AnalysisResult) float64 {
	score := 0.9
	for _, v := range []float64{analysis.TotalRevenue, analysis.TotalCosts, analysis.BurnRate} {
		if math.IsNaN(v) {
			score -= 0.2
		}
	}
	if math.IsInf(analysis.Runway, 0) || math.IsNaN(analysis.Runway) {
		score -= 0.2
	}
	if len(analysis.MajorLeaks) == 1 && analysis.MajorLeaks[0].Category == "Unknown" {
		score -= 0.1
	}
	return score
}
