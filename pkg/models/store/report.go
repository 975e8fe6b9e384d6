package store

import "time"

// DoomReport is the row shape for the doom_reports table. The nested report
// sections are stored as JSON documents, mirroring the original store layout.
type DoomReport struct {
	ID               string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	FileName         string
	FileType         string
	FinancialSummary []byte // JSON
	DoomClock        []byte // JSON
	BrutalHeadlines  []byte // JSON array, length 5
	Status           string
	SavedToWorkspace bool
}
