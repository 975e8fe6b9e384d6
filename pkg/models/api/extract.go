package api

// FinancialEntry mirrors the extraction envelope the original client and
// server exchange, so the remote-delegation path and the /extract endpoint
// stay wire-compatible. Amount is a pointer because unparsable source rows
// carry NaN, which renders as JSON null.
type FinancialEntry struct {
	Amount      *float64 `json:"amount"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
}

type ExtractionMetadata struct {
	FileName       string `json:"fileName"`
	ExtractionTime string `json:"extractionTime"` // RFC 3339
	RowCount       int    `json:"rowCount"`
}

type ExtractedData struct {
	Revenues []FinancialEntry   `json:"revenues"`
	Costs    []FinancialEntry   `json:"costs"`
	Dates    []string           `json:"dates"`
	Metadata ExtractionMetadata `json:"metadata"`
}
