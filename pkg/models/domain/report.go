package domain

import "time"

type ReportStatus string

const (
	ReportActive   ReportStatus = "active"
	ReportArchived ReportStatus = "archived"
)

// FinancialSummary is the slice of the analysis a report keeps.
type FinancialSummary struct {
	TotalRevenue float64
	TotalCosts   float64
	BurnRate     float64
	Runway       float64
}

// DoomClock is the slice of the forecast a report keeps.
type DoomClock struct {
	DaysRemaining   float64
	ConfidenceScore float64
	Projections     ScenarioProjections
}

// DoomReport is the persisted aggregate of one pipeline run. Mutations are
// copy-on-write: MarkActionCompleted returns a new value, the old report
// stays valid.
type DoomReport struct {
	ID               string
	CreatedAt        time.Time
	FileName         string
	FileType         string
	FinancialSummary FinancialSummary
	DoomClock        DoomClock
	BrutalHeadlines  []BrutalHeadline // always exactly 5 after assembly
	Status           ReportStatus
	SavedToWorkspace bool
}
