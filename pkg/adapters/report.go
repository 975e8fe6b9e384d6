package adapters

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/coreframe-ai/doom-diag/pkg/models/api"
	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
	"github.com/coreframe-ai/doom-diag/pkg/models/store"
)

// finiteOrNil maps non-finite day counts to nil so they encode as JSON null;
// encoding/json rejects NaN and Inf outright.
func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func nilOrInf(v *float64) float64 {
	if v == nil {
		return math.Inf(1)
	}
	return *v
}

func MapHeadlineDomainToApi(h domain.BrutalHeadline) api.BrutalHeadline {
	var impact any
	switch h.Impact.Kind {
	case domain.ImpactPercentage:
		impact = h.Impact.Percentage
	default:
		if f := finiteOrNil(h.Impact.Amount); f != nil {
			impact = *f
		}
	}
	return api.BrutalHeadline{
		Headline:   h.Headline,
		Action:     h.Action,
		Impact:     impact,
		Confidence: h.Confidence,
		Completed:  h.Completed,
	}
}

func MapReportDomainToApi(r domain.DoomReport) api.DoomReport {
	res := api.DoomReport{
		Id:        r.ID,
		CreatedAt: r.CreatedAt,
		FileName:  r.FileName,
		FileType:  r.FileType,
		FinancialSummary: api.FinancialSummary{
			TotalRevenue: r.FinancialSummary.TotalRevenue,
			TotalCosts:   r.FinancialSummary.TotalCosts,
			BurnRate:     r.FinancialSummary.BurnRate,
			Runway:       finiteOrNil(r.FinancialSummary.Runway),
		},
		DoomClock: api.DoomClock{
			DaysRemaining:   finiteOrNil(r.DoomClock.DaysRemaining),
			ConfidenceScore: r.DoomClock.ConfidenceScore,
			Projections: api.ScenarioProjections{
				Optimistic:  finiteOrNil(r.DoomClock.Projections.Optimistic),
				Realistic:   finiteOrNil(r.DoomClock.Projections.Realistic),
				Pessimistic: finiteOrNil(r.DoomClock.Projections.Pessimistic),
			},
		},
		Status:           string(r.Status),
		SavedToWorkspace: r.SavedToWorkspace,
		BrutalHeadlines:  make([]api.BrutalHeadline, 0, len(r.BrutalHeadlines)),
	}
	for _, h := range r.BrutalHeadlines {
		res.BrutalHeadlines = append(res.BrutalHeadlines, MapHeadlineDomainToApi(h))
	}
	return res
}

// Storage keeps the nested sections as the same null-safe JSON documents the
// API serves, so a stored report round-trips without a second schema.

type storedSummary struct {
	TotalRevenue float64  `json:"total_revenue"`
	TotalCosts   float64  `json:"total_costs"`
	BurnRate     float64  `json:"burn_rate"`
	Runway       *float64 `json:"runway"`
}

type storedClock struct {
	DaysRemaining   *float64 `json:"days_remaining"`
	ConfidenceScore float64  `json:"confidence_score"`
	Optimistic      *float64 `json:"optimistic"`
	Realistic       *float64 `json:"realistic"`
	Pessimistic     *float64 `json:"pessimistic"`
}

func MapReportDomainToStore(r domain.DoomReport) (store.DoomReport, error) {
	summary, err := json.Marshal(storedSummary{
		TotalRevenue: r.FinancialSummary.TotalRevenue,
		TotalCosts:   r.FinancialSummary.TotalCosts,
		BurnRate:     r.FinancialSummary.BurnRate,
		Runway:       finiteOrNil(r.FinancialSummary.Runway),
	})
	if err != nil {
		return store.DoomReport{}, fmt.Errorf("marshal financial summary: %w", err)
	}
	clock, err := json.Marshal(storedClock{
		DaysRemaining:   finiteOrNil(r.DoomClock.DaysRemaining),
		ConfidenceScore: r.DoomClock.ConfidenceScore,
		Optimistic:      finiteOrNil(r.DoomClock.Projections.Optimistic),
		Realistic:       finiteOrNil(r.DoomClock.Projections.Realistic),
		Pessimistic:     finiteOrNil(r.DoomClock.Projections.Pessimistic),
	})
	if err != nil {
		return store.DoomReport{}, fmt.Errorf("marshal doom clock: %w", err)
	}
	headlines, err := json.Marshal(r.BrutalHeadlines)
	if err != nil {
		return store.DoomReport{}, fmt.Errorf("marshal headlines: %w", err)
	}
	return store.DoomReport{
		ID:               r.ID,
		CreatedAt:        r.CreatedAt,
		FileName:         r.FileName,
		FileType:         r.FileType,
		FinancialSummary: summary,
		DoomClock:        clock,
		BrutalHeadlines:  headlines,
		Status:           string(r.Status),
		SavedToWorkspace: r.SavedToWorkspace,
	}, nil
}

func MapReportStoreToDomain(r store.DoomReport) (domain.DoomReport, error) {
	var summary storedSummary
	if err := json.Unmarshal(r.FinancialSummary, &summary); err != nil {
		return domain.DoomReport{}, fmt.Errorf("unmarshal financial summary: %w", err)
	}
	var clock storedClock
	if err := json.Unmarshal(r.DoomClock, &clock); err != nil {
		return domain.DoomReport{}, fmt.Errorf("unmarshal doom clock: %w", err)
	}
	var headlines []domain.BrutalHeadline
	if err := json.Unmarshal(r.BrutalHeadlines, &headlines); err != nil {
		return domain.DoomReport{}, fmt.Errorf("unmarshal headlines: %w", err)
	}
	return domain.DoomReport{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		FileName:  r.FileName,
		FileType:  r.FileType,
		FinancialSummary: domain.FinancialSummary{
			TotalRevenue: summary.TotalRevenue,
			TotalCosts:   summary.TotalCosts,
			BurnRate:     summary.BurnRate,
			Runway:       nilOrInf(summary.Runway),
		},
		DoomClock: domain.DoomClock{
			DaysRemaining:   nilOrInf(clock.DaysRemaining),
			ConfidenceScore: clock.ConfidenceScore,
			Projections: domain.ScenarioProjections{
				Optimistic:  nilOrInf(clock.Optimistic),
				Realistic:   nilOrInf(clock.Realistic),
				Pessimistic: nilOrInf(clock.Pessimistic),
			},
		},
		BrutalHeadlines:  headlines,
		Status:           domain.ReportStatus(r.Status),
		SavedToWorkspace: r.SavedToWorkspace,
	}, nil
}
