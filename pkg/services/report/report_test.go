package report

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
	"github.com/coreframe-ai/doom-diag/pkg/services/headlines"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHeadlines(n int) []domain.BrutalHeadline {
	result := make([]domain.BrutalHeadline, 0, n)
	for i := 0; i < n; i++ {
		result = append(result, domain.BrutalHeadline{
			Headline:   "headline",
			Action:     "action",
			Impact:     domain.AmountImpact(float64(i * 100)),
			Confidence: 0.8,
		})
	}
	return result
}

func sampleReport() domain.DoomReport {
	analysis := &domain.AnalysisResult{
		TotalRevenue: 26000,
		TotalCosts:   39000,
		BurnRate:     13000,
		Runway:       60,
	}
	fc := &domain.ForecastResult{
		DoomDays:        60,
		ConfidenceScore: 0.75,
		Scenarios:       domain.ScenarioProjections{Optimistic: 72, Realistic: 60, Pessimistic: 48},
	}
	return Assemble(
		domain.SourceMeta{FileName: "ledger.csv", FileType: "csv", ExtractionTime: time.Now().UTC()},
		analysis, fc, sampleHeadlines(5),
	)
}

func TestNewReportID(t *testing.T) {
	id := NewReportID()
	assert.True(t, strings.HasPrefix(id, "doom-"))
	assert.NotEqual(t, id, NewReportID())
}

func TestAssemble(t *testing.T) {
	rep := sampleReport()

	assert.NotEmpty(t, rep.ID)
	assert.Equal(t, "ledger.csv", rep.FileName)
	assert.Equal(t, "csv", rep.FileType)
	assert.Equal(t, 60.0, rep.DoomClock.DaysRemaining)
	assert.Equal(t, domain.ReportActive, rep.Status)
	assert.False(t, rep.SavedToWorkspace)
	require.Len(t, rep.BrutalHeadlines, 5)
	for _, h := range rep.BrutalHeadlines {
		assert.False(t, h.Completed)
	}
}

func TestAssemble_TruncatesExtraHeadlines(t *testing.T) {
	analysis := &domain.AnalysisResult{Runway: 10}
	rep := Assemble(domain.SourceMeta{}, analysis, &domain.ForecastResult{}, sampleHeadlines(8))

	require.Len(t, rep.BrutalHeadlines, 5)
	assert.Equal(t, domain.AmountImpact(400), rep.BrutalHeadlines[4].Impact)
}

func TestAssemble_PadsShortHeadlineList(t *testing.T) {
	analysis := &domain.AnalysisResult{TotalCosts: 1000, BurnRate: 500, Runway: 10}
	rep := Assemble(domain.SourceMeta{}, analysis, &domain.ForecastResult{}, sampleHeadlines(2))

	require.Len(t, rep.BrutalHeadlines, 5)
	fallback := headlines.Fallback(analysis)
	assert.Equal(t, fallback[0], rep.BrutalHeadlines[2])
	assert.Equal(t, fallback[2], rep.BrutalHeadlines[4])
}

func TestAssemble_ResetsCompletedFlag(t *testing.T) {
	brutal := sampleHeadlines(5)
	brutal[1].Completed = true

	rep := Assemble(domain.SourceMeta{}, &domain.AnalysisResult{}, &domain.ForecastResult{}, brutal)
	assert.False(t, rep.BrutalHeadlines[1].Completed)
}

func TestMarkActionCompleted(t *testing.T) {
	rep := sampleReport()

	updated := MarkActionCompleted(rep, 0)

	assert.True(t, updated.BrutalHeadlines[0].Completed)
	assert.Equal(t, math.Ceil(60*1.15), updated.DoomClock.DaysRemaining)
	assert.Equal(t, math.Ceil(72*1.15), updated.DoomClock.Projections.Optimistic)
	assert.Equal(t, math.Ceil(48*1.15), updated.DoomClock.Projections.Pessimistic)

	// The input report is untouched.
	assert.False(t, rep.BrutalHeadlines[0].Completed)
	assert.Equal(t, 60.0, rep.DoomClock.DaysRemaining)
}

func TestMarkActionCompleted_MultiplierCompounds(t *testing.T) {
	rep := sampleReport()

	first := MarkActionCompleted(rep, 0)
	second := MarkActionCompleted(first, 1)

	// Two completed actions apply 1.30 against the stored clock.
	assert.Equal(t, math.Ceil(69*1.30), second.DoomClock.DaysRemaining)
	assert.True(t, second.BrutalHeadlines[0].Completed)
	assert.True(t, second.BrutalHeadlines[1].Completed)
}

func TestMarkActionCompleted_OutOfRangeIsNoop(t *testing.T) {
	rep := sampleReport()

	assert.Equal(t, rep, MarkActionCompleted(rep, -1))
	assert.Equal(t, rep, MarkActionCompleted(rep, 5))
}

func TestExport_PDF(t *testing.T) {
	data, contentType := NewExporter().Export(context.Background(), sampleReport())

	assert.Equal(t, ContentTypePDF, contentType)
	require.NotEmpty(t, data)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestExport_ToleratesNonFiniteValues(t *testing.T) {
	rep := sampleReport()
	rep.FinancialSummary.Runway = math.Inf(1)
	rep.DoomClock.DaysRemaining = math.NaN()
	rep.BrutalHeadlines[0].Impact = domain.AmountImpact(math.NaN())

	data, contentType := NewExporter().Export(context.Background(), rep)
	assert.NotEmpty(t, data)
	assert.NotEmpty(t, contentType)
}

func TestFormatDays(t *testing.T) {
	assert.Equal(t, "60", formatDays(60))
	assert.Equal(t, "n/a", formatDays(math.NaN()))
	assert.Equal(t, "unbounded", formatDays(math.Inf(1)))
}

func TestRenderText(t *testing.T) {
	text := string(renderText(sampleReport()))

	assert.Contains(t, text, "ledger.csv")
	assert.Contains(t, text, "Doom Clock: 60 days remaining")
	assert.Contains(t, text, "Burn rate: 13000.00 / month")
}
