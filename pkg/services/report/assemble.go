package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
	"github.com/coreframe-ai/doom-diag/pkg/services/headlines"
	"github.com/google/uuid"
)

// NewReportID generates an opaque unique id, doom-<unix-ms>-<suffix>.
func NewReportID() string {
	suffix, _, _ := strings.Cut(uuid.NewString(), "-")
	return fmt.Sprintf("doom-%d-%s", time.Now().UnixMilli(), suffix)
}

// Assemble combines the upstream artifacts into a DoomReport. The headline
// list is forced to exactly 5 entries: extras are truncated, a short list is
// padded from the deterministic fallback, and every entry starts incomplete.
func Assemble(
	meta domain.SourceMeta,
	analysis *domain.AnalysisResult,
	fc *domain.ForecastResult,
	brutal []domain.BrutalHeadline,
) domain.DoomReport {
	kept := make([]domain.BrutalHeadline, 0, headlines.HeadlineCount)
	for _, h := range brutal {
		if len(kept) == headlines.HeadlineCount {
			break
		}
		h.Completed = false
		kept = append(kept, h)
	}
	for _, h := range headlines.Fallback(analysis) {
		if len(kept) == headlines.HeadlineCount {
			break
		}
		kept = append(kept, h)
	}

	return domain.DoomReport{
		ID:        NewReportID(),
		CreatedAt: time.Now().UTC(),
		FileName:  meta.FileName,
		FileType:  meta.FileType,
		FinancialSummary: domain.FinancialSummary{
			TotalRevenue: analysis.TotalRevenue,
			TotalCosts:   analysis.TotalCosts,
			BurnRate:     analysis.BurnRate,
			Runway:       analysis.Runway,
		},
		DoomClock: domain.DoomClock{
			DaysRemaining:   fc.DoomDays,
			ConfidenceScore: fc.ConfidenceScore,
			Projections:     fc.Scenarios,
		},
		BrutalHeadlines:  kept,
		Status:           domain.ReportActive,
		SavedToWorkspace: false,
	}
}
