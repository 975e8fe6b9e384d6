package extract

import (
	"fmt"
	"io"

	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

// parseXLSX reads the first sheet on the same fixed column schema as CSV.
func parseXLSX(r io.Reader) (*domain.FinancialDataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	idx, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}
	return classifyRows(idx, rows[1:]), nil
}
