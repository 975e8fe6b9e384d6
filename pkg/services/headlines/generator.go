package headlines

import (
	"context"

	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
)

// Generator produces exactly 5 brutal headlines for an analysis. The
// headline feature is advisory: implementations must not fail, any
// upstream problem resolves to the deterministic fallback list.
type Generator interface {
	Generate(ctx context.Context, analysis *domain.AnalysisResult, ds *domain.FinancialDataset) []domain.BrutalHeadline
}

// HeadlineCount is fixed by the report contract.
const HeadlineCount = 5
