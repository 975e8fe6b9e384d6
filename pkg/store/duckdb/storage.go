package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const reportsSchema = `
	CREATE TABLE IF NOT EXISTS doom_reports (
		id VARCHAR PRIMARY KEY,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		file_name VARCHAR NOT NULL,
		file_type VARCHAR NOT NULL,
		financial_summary JSON NOT NULL,
		doom_clock JSON NOT NULL,
		brutal_headlines JSON NOT NULL,
		status VARCHAR NOT NULL,
		saved_to_workspace BOOLEAN NOT NULL DEFAULT FALSE
	);
`

const preferencesSchema = `
	CREATE TABLE IF NOT EXISTS tool_preferences (
		tool VARCHAR PRIMARY KEY,
		settings JSON NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
`

const usageLogSchema = `
	CREATE TABLE IF NOT EXISTS usage_log (
		id VARCHAR PRIMARY KEY,
		tool VARCHAR NOT NULL,
		file_name VARCHAR,
		run_at TIMESTAMP NOT NULL
	);
`

var bootQueries = []string{
	reportsSchema,
	preferencesSchema,
	usageLogSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sql.OpenDB(c), nil
}

type txKey struct{}

// WithTransaction carries an open transaction through context so store
// methods participate in it without changing their signatures.
func WithTransaction(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func GetTransaction(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}
