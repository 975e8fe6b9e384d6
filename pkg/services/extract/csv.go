package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
)

// Fixed header schema: Date, Type, Category, Description, Amount.
type columnIndex struct {
	date        int
	typ         int
	category    int
	description int
	amount      int
}

func resolveColumns(header []string) (columnIndex, error) {
	idx := columnIndex{date: -1, typ: -1, category: -1, description: -1, amount: -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "Date":
			idx.date = i
		case "Type":
			idx.typ = i
		case "Category":
			idx.category = i
		case "Description":
			idx.description = i
		case "Amount":
			idx.amount = i
		}
	}
	if idx.date < 0 || idx.typ < 0 || idx.category < 0 || idx.description < 0 || idx.amount < 0 {
		return idx, fmt.Errorf("missing required columns, expected Date, Type, Category, Description, Amount")
	}
	return idx, nil
}

func parseCSV(r io.Reader) (*domain.FinancialDataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, row)
	}

	return classifyRows(idx, rows), nil
}

// classifyRows splits tabular rows into revenues and costs and collects the
// distinct period markers. Shared by the CSV and XLSX paths.
func classifyRows(idx columnIndex, rows [][]string) *domain.FinancialDataset {
	ds := &domain.FinancialDataset{
		Revenues: []domain.FinancialEntry{},
		Costs:    []domain.FinancialEntry{},
	}
	seen := map[string]struct{}{}

	width := idx.date
	for _, i := range []int{idx.typ, idx.category, idx.description, idx.amount} {
		if i > width {
			width = i
		}
	}

	for _, row := range rows {
		if len(row) <= width {
			continue
		}
		date := strings.TrimSpace(row[idx.date])
		if date == "" {
			continue
		}
		seen[truncateDate(date)] = struct{}{}

		// Unparsable amounts still produce a row; downstream stages
		// tolerate NaN instead of crashing.
		amount, err := strconv.ParseFloat(strings.TrimSpace(row[idx.amount]), 64)
		if err != nil {
			amount = math.NaN()
		}
		entry := domain.FinancialEntry{
			Amount:      amount,
			Date:        date,
			Description: fmt.Sprintf("%s - %s", strings.TrimSpace(row[idx.category]), strings.TrimSpace(row[idx.description])),
		}
		switch strings.ToLower(strings.TrimSpace(row[idx.typ])) {
		case "revenue":
			ds.Revenues = append(ds.Revenues, entry)
		case "cost":
			ds.Costs = append(ds.Costs, entry)
		}
	}

	ds.Dates = make([]string, 0, len(seen))
	for d := range seen {
		ds.Dates = append(ds.Dates, d)
	}
	sort.Strings(ds.Dates)
	return ds
}

func truncateDate(date string) string {
	if len(date) > 10 {
		return date[:10]
	}
	return date
}
