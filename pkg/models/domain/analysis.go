package domain

type Trend string

const (
	TrendPositive Trend = "positive"
	TrendNegative Trend = "negative"
	TrendNeutral  Trend = "neutral"
)

type LeakTrend string

const (
	LeakIncreasing LeakTrend = "increasing"
	LeakDecreasing LeakTrend = "decreasing"
	LeakStable     LeakTrend = "stable"
)

// CostLeak is one cost category ranked by its share of total costs.
type CostLeak struct {
	Category   string
	Amount     float64
	Percentage float64 // of total costs; sums to <= 100 across leaks
	Trend      LeakTrend
}

// AnalysisResult is an immutable snapshot derived from a FinancialDataset.
// Sums are unrounded; NaN and Inf propagate instead of erroring.
type AnalysisResult struct {
	TotalRevenue  float64
	TotalCosts    float64
	BurnRate      float64    // average monthly cost
	Runway        float64    // whole days; +Inf when burn rate is <= 0
	RevenueGrowth float64    // percent, period over period
	CostGrowth    float64    // percent, period over period
	MajorLeaks    []CostLeak // ranked, never empty
	CashflowTrend Trend
}
