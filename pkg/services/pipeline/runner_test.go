package pipeline

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
	"github.com/coreframe-ai/doom-diag/pkg/services/analyze"
	"github.com/coreframe-ai/doom-diag/pkg/services/extract"
	"github.com/coreframe-ai/doom-diag/pkg/services/forecast"
	"github.com/coreframe-ai/doom-diag/pkg/services/headlines"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fallbackGenerator struct{}

func (fallbackGenerator) Generate(_ context.Context, analysis *domain.AnalysisResult, _ *domain.FinancialDataset) []domain.BrutalHeadline {
	return headlines.Fallback(analysis)
}

type memoryStub struct {
	mu      sync.Mutex
	records []domain.UsageRecord
}

func (m *memoryStub) GetPreferences(context.Context, string) (domain.Preferences, error) {
	return domain.Preferences{}, nil
}

func (m *memoryStub) SetPreferences(context.Context, domain.Preferences) error { return nil }

func (m *memoryStub) AppendUsage(_ context.Context, record domain.UsageRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *memoryStub) ListUsage(context.Context, string) ([]domain.UsageRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.UsageRecord{}, m.records...), nil
}

func newTestRunner(mem *memoryStub) *Runner {
	return NewRunner(
		extract.NewService(extract.Settings{}),
		analyze.NewAnalyzer(),
		forecast.NewForecaster(),
		fallbackGenerator{},
		mem,
	)
}

func TestRun_EndToEnd(t *testing.T) {
	body := "Date,Type,Category,Description,Amount\n" +
		"2025-01-15,Revenue,Sales,Product A,10000\n" +
		"2025-02-15,Revenue,Sales,Product A,11000\n" +
		"2025-03-15,Revenue,Sales,Product A,12000\n" +
		"2025-01-10,Cost,Rent,Office,8000\n" +
		"2025-02-10,Cost,Rent,Office,8000\n" +
		"2025-03-10,Cost,Rent,Office,8000\n" +
		"2025-01-20,Cost,Payroll,Salaries,5000\n" +
		"2025-02-20,Cost,Payroll,Salaries,5000\n" +
		"2025-03-20,Cost,Payroll,Salaries,5000\n"

	mem := &memoryStub{}
	src := extract.Source{Name: "q1.csv", Size: int64(len(body)), Reader: strings.NewReader(body)}

	rep, err := newTestRunner(mem).Run(context.Background(), src, extract.FormatCSV)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rep.ID, "doom-"))
	assert.Equal(t, "q1.csv", rep.FileName)
	assert.Equal(t, 33000.0, rep.FinancialSummary.TotalRevenue)
	assert.Equal(t, 39000.0, rep.FinancialSummary.TotalCosts)
	assert.Equal(t, 13000.0, rep.FinancialSummary.BurnRate)
	assert.Equal(t, 76.0, rep.DoomClock.DaysRemaining)
	require.Len(t, rep.BrutalHeadlines, 5)
	assert.Equal(t, domain.ReportActive, rep.Status)
	assert.False(t, rep.SavedToWorkspace)

	require.Len(t, mem.records, 1)
	assert.Equal(t, ToolName, mem.records[0].Tool)
	assert.Equal(t, "q1.csv", mem.records[0].FileName)
}

func TestRun_ExtractionFailureAborts(t *testing.T) {
	mem := &memoryStub{}
	src := extract.Source{Name: "x.csv", Size: 4, Reader: strings.NewReader("junk")}

	_, err := newTestRunner(mem).Run(context.Background(), src, extract.Format("docx"))

	assert.ErrorIs(t, err, extract.ErrUnsupportedFormat)
	assert.Empty(t, mem.records)
}

func TestRun_NilMemoryStoreIsTolerated(t *testing.T) {
	body := "Date,Type,Category,Description,Amount\n2025-01-15,Revenue,Sales,A,100\n"
	src := extract.Source{Name: "tiny.csv", Size: int64(len(body)), Reader: strings.NewReader(body)}

	runner := NewRunner(
		extract.NewService(extract.Settings{}),
		analyze.NewAnalyzer(),
		forecast.NewForecaster(),
		fallbackGenerator{},
		nil,
	)

	rep, err := runner.Run(context.Background(), src, extract.FormatCSV)
	require.NoError(t, err)
	assert.Len(t, rep.BrutalHeadlines, 5)
}
