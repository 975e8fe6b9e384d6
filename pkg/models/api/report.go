package api

import "time"

// Day counts are pointers because runway and doom days can be unbounded
// (+Inf) when the burn rate is zero; those render as JSON null.
type FinancialSummary struct {
	TotalRevenue float64  `json:"total_revenue"`
	TotalCosts   float64  `json:"total_costs"`
	BurnRate     float64  `json:"burn_rate"`
	Runway       *float64 `json:"runway"`
}

type ScenarioProjections struct {
	Optimistic  *float64 `json:"optimistic"`
	Realistic   *float64 `json:"realistic"`
	Pessimistic *float64 `json:"pessimistic"`
}

type DoomClock struct {
	DaysRemaining   *float64            `json:"days_remaining"`
	ConfidenceScore float64             `json:"confidence_score"`
	Projections     ScenarioProjections `json:"projections"`
}

type BrutalHeadline struct {
	Headline   string  `json:"headline"`
	Action     string  `json:"action"`
	Impact     any     `json:"impact"` // number or percentage string
	Confidence float64 `json:"confidence"`
	Completed  bool    `json:"completed"`
}

type DoomReport struct {
	Id               string           `json:"id"`
	CreatedAt        time.Time        `json:"created_at"`
	FileName         string           `json:"file_name"`
	FileType         string           `json:"file_type"`
	FinancialSummary FinancialSummary `json:"financial_summary"`
	DoomClock        DoomClock        `json:"doom_clock"`
	BrutalHeadlines  []BrutalHeadline `json:"brutal_headlines"`
	Status           string           `json:"status"`
	SavedToWorkspace bool             `json:"saved_to_workspace"`
}

type Error struct {
	Error string `json:"error"`
}
