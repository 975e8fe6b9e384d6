package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coreframe-ai/doom-diag/pkg/models/store"
	"github.com/coreframe-ai/doom-diag/pkg/store/duckdb"
)

var ErrNotFound = errors.New("report not found")

// Store persists doom reports with upsert-by-id semantics. Reads are
// newest first.
type Store interface {
	Upsert(ctx context.Context, record store.DoomReport) error
	List(ctx context.Context) ([]store.DoomReport, error)
	Get(ctx context.Context, id string) (*store.DoomReport, error)
}

type defaultStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{db: db}, nil
}

func (s *defaultStore) Upsert(ctx context.Context, record store.DoomReport) error {
	query := `
		INSERT INTO doom_reports (
			id, created_at, updated_at, file_name, file_type,
			financial_summary, doom_clock, brutal_headlines, status, saved_to_workspace
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			updated_at = excluded.updated_at,
			financial_summary = excluded.financial_summary,
			doom_clock = excluded.doom_clock,
			brutal_headlines = excluded.brutal_headlines,
			status = excluded.status,
			saved_to_workspace = excluded.saved_to_workspace
	`
	args := []any{
		record.ID,
		record.CreatedAt,
		record.UpdatedAt,
		record.FileName,
		record.FileType,
		record.FinancialSummary,
		record.DoomClock,
		record.BrutalHeadlines,
		record.Status,
		record.SavedToWorkspace,
	}

	var err error
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		_, err = tx.ExecContext(ctx, query, args...)
	} else {
		_, err = s.db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return fmt.Errorf("upsert report: %w", err)
	}
	return nil
}

func (s *defaultStore) List(ctx context.Context) ([]store.DoomReport, error) {
	query := `
		SELECT id, created_at, updated_at, file_name, file_type,
			financial_summary, doom_clock, brutal_headlines, status, saved_to_workspace
		FROM doom_reports
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	records := make([]store.DoomReport, 0)
	for rows.Next() {
		record, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *defaultStore) Get(ctx context.Context, id string) (*store.DoomReport, error) {
	query := `
		SELECT id, created_at, updated_at, file_name, file_type,
			financial_summary, doom_clock, brutal_headlines, status, saved_to_workspace
		FROM doom_reports
		WHERE id = ?
	`
	row := s.db.QueryRowContext(ctx, query, id)
	record, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report %s: %w", id, err)
	}
	return &record, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (store.DoomReport, error) {
	var record store.DoomReport
	err := row.Scan(
		&record.ID,
		&record.CreatedAt,
		&record.UpdatedAt,
		&record.FileName,
		&record.FileType,
		&record.FinancialSummary,
		&record.DoomClock,
		&record.BrutalHeadlines,
		&record.Status,
		&record.SavedToWorkspace,
	)
	return record, err
}
