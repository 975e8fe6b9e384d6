package analyze

import (
	"context"
	"math"

	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
)

// Analyzer derives an AnalysisResult from a FinancialDataset. The burn-rate
// divisor and the growth model are injected strategies: the defaults
// reproduce the documented simplifications (fixed 3-period window, zero
// growth), and corrected models can be swapped in without touching the
// pipeline contract.
type Analyzer struct {
	burnRate BurnRateStrategy
	growth   GrowthModel
}

type Option func(*Analyzer)

func WithBurnRateStrategy(s BurnRateStrategy) Option {
	return func(a *Analyzer) { a.burnRate = s }
}

func WithGrowthModel(m GrowthModel) Option {
	return func(a *Analyzer) { a.growth = m }
}

func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		burnRate: FixedWindowBurnRate(3),
		growth:   ZeroGrowth,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze is pure today; the signature keeps ctx and error so a future
// model that reaches for external data does not break callers.
func (a *Analyzer) Analyze(ctx context.Context, ds *domain.FinancialDataset) (*domain.AnalysisResult, error) {
	totalRevenue := sumAmounts(ds.Revenues)
	totalCosts := sumAmounts(ds.Costs)
	burnRate := a.burnRate(ds, totalCosts)
	revenueGrowth := a.growth(ds.Revenues)
	costGrowth := a.growth(ds.Costs)

	return &domain.AnalysisResult{
		TotalRevenue:  totalRevenue,
		TotalCosts:    totalCosts,
		BurnRate:      burnRate,
		Runway:        runway(totalRevenue, burnRate),
		RevenueGrowth: revenueGrowth,
		CostGrowth:    costGrowth,
		MajorLeaks:    rankCostLeaks(ds.Costs, totalCosts),
		CashflowTrend: cashflowTrend(revenueGrowth, costGrowth),
	}, nil
}

func sumAmounts(entries []domain.FinancialEntry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.Amount
	}
	return sum
}

// runway is the affordable operating time in whole days. Unbounded when the
// burn rate is zero or negative; NaN arithmetic flows through untouched.
func runway(totalRevenue, burnRate float64) float64 {
	if burnRate <= 0 {
		return math.Inf(1)
	}
	return math.Floor((totalRevenue / burnRate) * 30)
}

func cashflowTrend(revenueGrowth, costGrowth float64) domain.Trend {
	switch {
	case revenueGrowth > costGrowth:
		return domain.TrendPositive
	case revenueGrowth < costGrowth:
		return domain.TrendNegative
	default:
		return domain.TrendNeutral
	}
}
