package report

import (
	"context"
	"fmt"
	"time"

	"github.com/coreframe-ai/doom-diag/pkg/adapters"
	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
	reportstore "github.com/coreframe-ai/doom-diag/pkg/store/duckdb/report"
	"github.com/rs/zerolog"
)

// Controller owns report persistence and the mutation flow.
type Controller struct {
	store    reportstore.Store
	exporter *Exporter
}

func NewController(store reportstore.Store) *Controller {
	return &Controller{
		store:    store,
		exporter: NewExporter(),
	}
}

// Save upserts the report and flips SavedToWorkspace. A store failure is
// logged but the report is still returned as saved: workspace bookkeeping
// is non-critical and must not block the user's workflow.
func (c *Controller) Save(ctx context.Context, rep domain.DoomReport) domain.DoomReport {
	saved := rep
	saved.SavedToWorkspace = true

	if err := c.upsert(ctx, saved); err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("report_id", rep.ID).
			Msg("failed to persist report, keeping local state")
	}
	return saved
}

// CompleteAction loads a report, marks the headline completed and persists
// the recalculated doom clock.
func (c *Controller) CompleteAction(ctx context.Context, id string, headlineIndex int) (domain.DoomReport, error) {
	current, err := c.Get(ctx, id)
	if err != nil {
		return domain.DoomReport{}, err
	}

	updated := MarkActionCompleted(*current, headlineIndex)
	if err := c.upsert(ctx, updated); err != nil {
		return domain.DoomReport{}, err
	}
	return updated, nil
}

func (c *Controller) List(ctx context.Context) ([]domain.DoomReport, error) {
	records, err := c.store.List(ctx)
	if err != nil {
		return nil, err
	}
	reports := make([]domain.DoomReport, 0, len(records))
	for _, record := range records {
		rep, err := adapters.MapReportStoreToDomain(record)
		if err != nil {
			return nil, fmt.Errorf("decode report %s: %w", record.ID, err)
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func (c *Controller) Get(ctx context.Context, id string) (*domain.DoomReport, error) {
	record, err := c.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rep, err := adapters.MapReportStoreToDomain(*record)
	if err != nil {
		return nil, fmt.Errorf("decode report %s: %w", id, err)
	}
	return &rep, nil
}

// Export renders the report to a downloadable document; see Exporter.
func (c *Controller) Export(ctx context.Context, rep domain.DoomReport) ([]byte, string) {
	return c.exporter.Export(ctx, rep)
}

func (c *Controller) upsert(ctx context.Context, rep domain.DoomReport) error {
	record, err := adapters.MapReportDomainToStore(rep)
	if err != nil {
		return err
	}
	record.UpdatedAt = time.Now().UTC()
	return c.store.Upsert(ctx, record)
}
