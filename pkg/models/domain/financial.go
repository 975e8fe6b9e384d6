package domain

import "time"

// FinancialEntry is a single revenue or cost line extracted from a source file.
type FinancialEntry struct {
	Amount      float64 // currency units; NaN when the source row was unparsable
	Date        string  // ISO date, YYYY-MM-DD prefix
	Description string  // "Category - Description" when the source carried a category
}

// FinancialDataset is the normalized output of the extractor. It is immutable
// once produced: the analyzer consumes it and discards it, nothing persists it.
type FinancialDataset struct {
	Revenues []FinancialEntry
	Costs    []FinancialEntry
	Dates    []string // distinct sorted period markers, used as a period count proxy
}

// SourceMeta describes the file a dataset was extracted from.
type SourceMeta struct {
	FileName       string
	FileType       string // pdf | csv | xlsx
	ExtractionTime time.Time
	RowCount       int
}
