package memory

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
	"github.com/coreframe-ai/doom-diag/pkg/services/memory"
)

type defaultStore struct {
	db *sql.DB
}

// NewStore returns a DuckDB-backed user-memory store.
func NewStore(db *sql.DB) (memory.Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{db: db}, nil
}

func (s *defaultStore) GetPreferences(ctx context.Context, tool string) (domain.Preferences, error) {
	prefs := domain.Preferences{Tool: tool, Settings: map[string]string{}}

	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT settings FROM tool_preferences WHERE tool = ?`, tool,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("get preferences for %s: %w", tool, err)
	}
	if err := json.Unmarshal(raw, &prefs.Settings); err != nil {
		return prefs, fmt.Errorf("unmarshal preferences for %s: %w", tool, err)
	}
	return prefs, nil
}

func (s *defaultStore) SetPreferences(ctx context.Context, prefs domain.Preferences) error {
	raw, err := json.Marshal(prefs.Settings)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tool_preferences (tool, settings, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (tool) DO UPDATE SET
			settings = excluded.settings,
			updated_at = excluded.updated_at
	`, prefs.Tool, raw, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set preferences for %s: %w", prefs.Tool, err)
	}
	return nil
}

func (s *defaultStore) AppendUsage(ctx context.Context, record domain.UsageRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO usage_log (id, tool, file_name, run_at) VALUES (?, ?, ?, ?)`,
		record.ID, record.Tool, record.FileName, record.RunAt,
	)
	if err != nil {
		return fmt.Errorf("append usage record: %w", err)
	}
	return nil
}

func (s *defaultStore) ListUsage(ctx context.Context, tool string) ([]domain.UsageRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tool, file_name, run_at FROM usage_log WHERE tool = ? ORDER BY run_at DESC`, tool,
	)
	if err != nil {
		return nil, fmt.Errorf("list usage records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.UsageRecord, 0)
	for rows.Next() {
		var r domain.UsageRecord
		if err := rows.Scan(&r.ID, &r.Tool, &r.FileName, &r.RunAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
