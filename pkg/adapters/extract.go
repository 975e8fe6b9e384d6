package adapters

import (
	"math"
	"time"

	"github.com/coreframe-ai/doom-diag/pkg/models/api"
	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
)

func mapEntriesDomainToApi(entries []domain.FinancialEntry) []api.FinancialEntry {
	res := make([]api.FinancialEntry, 0, len(entries))
	for _, e := range entries {
		res = append(res, api.FinancialEntry{
			Amount:      finiteOrNil(e.Amount),
			Date:        e.Date,
			Description: e.Description,
		})
	}
	return res
}

func mapEntriesApiToDomain(entries []api.FinancialEntry) []domain.FinancialEntry {
	res := make([]domain.FinancialEntry, 0, len(entries))
	for _, e := range entries {
		amount := math.NaN()
		if e.Amount != nil {
			amount = *e.Amount
		}
		res = append(res, domain.FinancialEntry{
			Amount:      amount,
			Date:        e.Date,
			Description: e.Description,
		})
	}
	return res
}

func MapExtractionDomainToApi(ds domain.FinancialDataset, meta domain.SourceMeta) api.ExtractedData {
	return api.ExtractedData{
		Revenues: mapEntriesDomainToApi(ds.Revenues),
		Costs:    mapEntriesDomainToApi(ds.Costs),
		Dates:    append([]string{}, ds.Dates...),
		Metadata: api.ExtractionMetadata{
			FileName:       meta.FileName,
			ExtractionTime: meta.ExtractionTime.Format(time.RFC3339),
			RowCount:       meta.RowCount,
		},
	}
}

func MapExtractionApiToDomain(data api.ExtractedData) (domain.FinancialDataset, domain.SourceMeta) {
	extractedAt, err := time.Parse(time.RFC3339, data.Metadata.ExtractionTime)
	if err != nil {
		extractedAt = time.Now().UTC()
	}
	return domain.FinancialDataset{
			Revenues: mapEntriesApiToDomain(data.Revenues),
			Costs:    mapEntriesApiToDomain(data.Costs),
			Dates:    append([]string{}, data.Dates...),
		}, domain.SourceMeta{
			FileName:       data.Metadata.FileName,
			ExtractionTime: extractedAt,
			RowCount:       data.Metadata.RowCount,
		}
}
