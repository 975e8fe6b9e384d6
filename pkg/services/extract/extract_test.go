package extract

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/coreframe-ai/doom-diag/pkg/models/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func csvSource(body string) Source {
	return Source{Name: "ledger.csv", Size: int64(len(body)), Reader: strings.NewReader(body)}
}

func amountOf(v float64) *float64 {
	return &v
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"pdf", "csv", "xlsx"} {
		format, err := ParseFormat(valid)
		require.NoError(t, err)
		assert.Equal(t, Format(valid), format)
	}

	_, err := ParseFormat("docx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtract_CSV(t *testing.T) {
	body := "Date,Type,Category,Description,Amount\n" +
		"2025-01-15,Revenue,Sales,Product A,20000\n" +
		"2025-01-10,Cost,Rent,Office,8000\n" +
		"2025-02-15,REVENUE,Sales,Product A,21000\n"

	ds, meta, err := NewService(Settings{}).Extract(context.Background(), csvSource(body), FormatCSV)
	require.NoError(t, err)

	require.Len(t, ds.Revenues, 2)
	require.Len(t, ds.Costs, 1)
	assert.Equal(t, 20000.0, ds.Revenues[0].Amount)
	assert.Equal(t, "Sales - Product A", ds.Revenues[0].Description)
	assert.Equal(t, "Rent - Office", ds.Costs[0].Description)
	assert.Equal(t, []string{"2025-01-10", "2025-01-15", "2025-02-15"}, ds.Dates)

	assert.Equal(t, "ledger.csv", meta.FileName)
	assert.Equal(t, "csv", meta.FileType)
	assert.Equal(t, 3, meta.RowCount)
}

func TestExtract_CSVTypeIsCaseInsensitive(t *testing.T) {
	body := "Date,Type,Category,Description,Amount\n" +
		"2025-01-15,revenue,Sales,A,100\n" +
		"2025-01-16,Revenue,Sales,B,200\n" +
		"2025-01-17,COST,Rent,C,300\n" +
		"2025-01-18,Transfer,Bank,D,400\n"

	ds, _, err := NewService(Settings{}).Extract(context.Background(), csvSource(body), FormatCSV)
	require.NoError(t, err)

	assert.Len(t, ds.Revenues, 2)
	assert.Len(t, ds.Costs, 1)
	// Unknown types are dropped but still contribute a period marker.
	assert.Contains(t, ds.Dates, "2025-01-18")
}

func TestExtract_CSVUnparsableAmountBecomesNaN(t *testing.T) {
	body := "Date,Type,Category,Description,Amount\n" +
		"2025-01-15,Cost,Rent,Office,not-a-number\n"

	ds, _, err := NewService(Settings{}).Extract(context.Background(), csvSource(body), FormatCSV)
	require.NoError(t, err)

	require.Len(t, ds.Costs, 1)
	assert.True(t, math.IsNaN(ds.Costs[0].Amount))
}

func TestExtract_CSVTimestampsTruncatedToDay(t *testing.T) {
	body := "Date,Type,Category,Description,Amount\n" +
		"2025-01-15T10:30:00Z,Revenue,Sales,A,100\n" +
		"2025-01-15T18:00:00Z,Cost,Rent,B,50\n"

	ds, _, err := NewService(Settings{}).Extract(context.Background(), csvSource(body), FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-01-15"}, ds.Dates)
	// Entries keep the full timestamp; only period markers are truncated.
	assert.Equal(t, "2025-01-15T10:30:00Z", ds.Revenues[0].Date)
}

func TestExtract_CSVMissingColumns(t *testing.T) {
	body := "Date,Amount\n2025-01-15,100\n"

	_, _, err := NewService(Settings{}).Extract(context.Background(), csvSource(body), FormatCSV)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestExtract_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Date", "Type", "Category", "Description", "Amount"},
		{"2025-01-15", "Revenue", "Sales", "Product A", "20000"},
		{"2025-01-10", "Cost", "Rent", "Office", "8000"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	src := Source{Name: "ledger.xlsx", Size: int64(buf.Len()), Reader: buf}
	ds, meta, err := NewService(Settings{}).Extract(context.Background(), src, FormatXLSX)
	require.NoError(t, err)

	require.Len(t, ds.Revenues, 1)
	require.Len(t, ds.Costs, 1)
	assert.Equal(t, 20000.0, ds.Revenues[0].Amount)
	assert.Equal(t, "xlsx", meta.FileType)
}

func TestExtract_PDFSyntheticDataset(t *testing.T) {
	src := Source{Name: "report.pdf", Size: 128, Reader: strings.NewReader("%PDF-1.4")}
	ds, meta, err := NewService(Settings{}).Extract(context.Background(), src, FormatPDF)
	require.NoError(t, err)

	assert.NotEmpty(t, ds.Revenues)
	assert.NotEmpty(t, ds.Costs)
	assert.Equal(t, "pdf", meta.FileType)
}

func TestExtract_RejectsOversizedFile(t *testing.T) {
	src := Source{Name: "huge.csv", Size: DefaultHardLimit + 1, Reader: strings.NewReader("")}
	_, _, err := NewService(Settings{}).Extract(context.Background(), src, FormatCSV)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestExtract_RejectsUnknownFormat(t *testing.T) {
	_, _, err := NewService(Settings{}).Extract(context.Background(), csvSource("x"), Format("docx"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtract_DelegatesLargeFilesToRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "csv", r.FormValue("format"))

		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "big.csv", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.ExtractedData{
			Revenues: []api.FinancialEntry{{Amount: amountOf(500), Date: "2025-01-15", Description: "Sales - A"}},
			Costs:    []api.FinancialEntry{{Amount: nil, Date: "2025-01-10", Description: "Rent - Office"}},
			Dates:    []string{"2025-01-15"},
			Metadata: api.ExtractionMetadata{
				FileName:       "big.csv",
				ExtractionTime: "2025-01-15T10:00:00Z",
				RowCount:       2,
			},
		})
	}))
	defer server.Close()

	svc := NewService(Settings{
		LocalLimit: 10,
		Remote:     NewRemoteClient(server.URL),
	})

	body := "Date,Type,Category,Description,Amount\n2025-01-15,Revenue,Sales,A,500\n"
	ds, meta, err := svc.Extract(context.Background(), csvSource(body), FormatCSV)
	require.NoError(t, err)

	require.Len(t, ds.Revenues, 1)
	assert.Equal(t, 500.0, ds.Revenues[0].Amount)
	// A null amount in the envelope comes back as the NaN row it stands for.
	require.Len(t, ds.Costs, 1)
	assert.True(t, math.IsNaN(ds.Costs[0].Amount))
	assert.Equal(t, "big.csv", meta.FileName)
	assert.Equal(t, "csv", meta.FileType)
	assert.Equal(t, 2, meta.RowCount)
}

func TestExtract_RemoteFailureIsExtractionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(api.Error{Error: "parser crashed"})
	}))
	defer server.Close()

	svc := NewService(Settings{
		LocalLimit: 10,
		Remote:     NewRemoteClient(server.URL),
	})

	body := "Date,Type,Category,Description,Amount\n2025-01-15,Cost,Rent,A,100\n"
	_, _, err := svc.Extract(context.Background(), csvSource(body), FormatCSV)

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, "parser crashed", extractionErr.Message)
}

func TestExtract_RemoteUnreachableIsExtractionError(t *testing.T) {
	svc := NewService(Settings{
		LocalLimit: 10,
		Remote:     NewRemoteClient("http://127.0.0.1:1/extract"),
	})

	body := "Date,Type,Category,Description,Amount\n2025-01-15,Cost,Rent,A,100\n"
	_, _, err := svc.Extract(context.Background(), csvSource(body), FormatCSV)

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, "unreachable", extractionErr.Status)
}

func TestExtract_LargeFileWithoutRemoteFails(t *testing.T) {
	svc := NewService(Settings{LocalLimit: 10})
	body := "Date,Type,Category,Description,Amount\n2025-01-15,Cost,Rent,A,100\n"
	_, _, err := svc.Extract(context.Background(), csvSource(body), FormatCSV)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no extraction endpoint")
}
