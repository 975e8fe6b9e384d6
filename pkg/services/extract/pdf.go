package extract

import "github.com/coreframe-ai/doom-diag/pkg/models/domain"

// syntheticDataset stands in for PDF table extraction. The upstream contract
// fixes the return shape and the local/remote routing, not this placeholder
// output; swap in a real table extractor behind parse-by-format to replace it.
func syntheticDataset() *domain.FinancialDataset {
	return &domain.FinancialDataset{
		Revenues: []domain.FinancialEntry{
			{Amount: 20000, Date: "2025-01-15", Description: "Product Sales"},
			{Amount: 22000, Date: "2025-02-15", Description: "Product Sales"},
			{Amount: 24000, Date: "2025-03-15", Description: "Product Sales"},
		},
		Costs: []domain.FinancialEntry{
			{Amount: 10000, Date: "2025-01-10", Description: "Office Expenses"},
			{Amount: 10000, Date: "2025-02-10", Description: "Office Expenses"},
			{Amount: 10000, Date: "2025-03-10", Description: "Office Expenses"},
			{Amount: 15000, Date: "2025-01-20", Description: "Personnel"},
			{Amount: 16000, Date: "2025-02-20", Description: "Personnel"},
			{Amount: 17000, Date: "2025-03-20", Description: "Personnel"},
		},
		Dates: []string{"2025-01-01", "2025-02-01", "2025-03-01", "2025-04-01"},
	}
}
