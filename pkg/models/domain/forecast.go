package domain

// ScenarioProjections are doom-clock day counts per scenario.
type ScenarioProjections struct {
	Optimistic  float64
	Realistic   float64
	Pessimistic float64
}

// BreakEvenPoint describes whether and when revenue can meet costs.
type BreakEvenPoint struct {
	Possible           bool
	DaysToBreakEven    *float64 // nil when not estimable
	RequiredGrowthRate *float64 // monthly percent; nil when already break-even path is known
}

// ForecastResult is derived from an AnalysisResult, once, and never mutated.
type ForecastResult struct {
	DoomDays        float64 // whole days until cash exhaustion, always >= 1
	ConfidenceScore float64 // in [0,1]
	Scenarios       ScenarioProjections
	BreakEven       BreakEvenPoint
}
