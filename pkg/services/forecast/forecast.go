package forecast

import (
	"math"

	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
)

// Forecaster implements the doom-clock model: days until cash exhaustion,
// scenario projections and break-even feasibility. Pure and synchronous; it
// never errors, arithmetic edge cases flow through as NaN/Inf and the only
// clamp is the doom-days floor of 1.
type Forecaster struct {
	confidence ConfidenceStrategy
}

type Option func(*Forecaster)

func WithConfidenceStrategy(s ConfidenceStrategy) Option {
	return func(f *Forecaster) { f.confidence = s }
}

func NewForecaster(opts ...Option) *Forecaster {
	f := &Forecaster{confidence: FixedConfidence(0.75)}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Forecaster) Forecast(analysis *domain.AnalysisResult) *domain.ForecastResult {
	doomDays := math.Max(1, analysis.Runway)

	return &domain.ForecastResult{
		DoomDays:        doomDays,
		ConfidenceScore: clamp01(f.confidence(analysis)),
		Scenarios: domain.ScenarioProjections{
			Optimistic:  math.Round(doomDays * 1.2),
			Realistic:   doomDays,
			Pessimistic: math.Round(doomDays * 0.8),
		},
		BreakEven: breakEvenPoint(analysis),
	}
}

func breakEvenPoint(analysis *domain.AnalysisResult) domain.BreakEvenPoint {
	revenue := analysis.TotalRevenue
	costs := analysis.TotalCosts

	// Already at or past break-even.
	if revenue >= costs {
		zero := 0.0
		rate := 0.0
		return domain.BreakEvenPoint{
			Possible:           true,
			DaysToBreakEven:    &zero,
			RequiredGrowthRate: &rate,
		}
	}

	// Growing revenue: estimate days until it covers costs.
	if analysis.RevenueGrowth > 0 {
		days := math.Max(1, math.Round((costs-revenue)/(revenue*(analysis.RevenueGrowth/100)/30)))
		rate := analysis.RevenueGrowth
		return domain.BreakEvenPoint{
			Possible:           true,
			DaysToBreakEven:    &days,
			RequiredGrowthRate: &rate,
		}
	}

	// Flat or shrinking revenue: report the monthly growth rate that would
	// be needed. Division by zero revenue yields Inf/NaN and is tolerated.
	required := (costs - revenue) / revenue * 100
	return domain.BreakEvenPoint{
		Possible:           required < 50,
		DaysToBreakEven:    nil,
		RequiredGrowthRate: &required,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
