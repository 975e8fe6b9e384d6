package pipeline

import (
	"context"
	"time"

	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
	"github.com/coreframe-ai/doom-diag/pkg/services/analyze"
	"github.com/coreframe-ai/doom-diag/pkg/services/extract"
	"github.com/coreframe-ai/doom-diag/pkg/services/forecast"
	"github.com/coreframe-ai/doom-diag/pkg/services/headlines"
	"github.com/coreframe-ai/doom-diag/pkg/services/memory"
	"github.com/coreframe-ai/doom-diag/pkg/services/report"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ToolName keys usage records and preferences for this pipeline.
const ToolName = "doom-diag"

// Runner executes the pipeline stages sequentially:
// extract -> analyze -> forecast -> headlines -> assemble.
// Each stage fully consumes its input value; only extraction may fail the
// run, every later stage degrades instead.
type Runner struct {
	extractor  *extract.Service
	analyzer   *analyze.Analyzer
	forecaster *forecast.Forecaster
	generator  headlines.Generator
	memory     memory.Store // optional
}

func NewRunner(
	extractor *extract.Service,
	analyzer *analyze.Analyzer,
	forecaster *forecast.Forecaster,
	generator headlines.Generator,
	memoryStore memory.Store,
) *Runner {
	return &Runner{
		extractor:  extractor,
		analyzer:   analyzer,
		forecaster: forecaster,
		generator:  generator,
		memory:     memoryStore,
	}
}

func (r *Runner) Run(ctx context.Context, src extract.Source, format extract.Format) (domain.DoomReport, error) {
	logger := zerolog.Ctx(ctx)

	ds, meta, err := r.extractor.Extract(ctx, src, format)
	if err != nil {
		return domain.DoomReport{}, err
	}

	analysis, err := r.analyzer.Analyze(ctx, ds)
	if err != nil {
		return domain.DoomReport{}, err
	}

	fc := r.forecaster.Forecast(analysis)
	brutal := r.generator.Generate(ctx, analysis, ds)
	rep := report.Assemble(*meta, analysis, fc, brutal)

	logger.Info().
		Str("report_id", rep.ID).
		Str("file", meta.FileName).
		Float64("doom_days", fc.DoomDays).
		Msg("pipeline run complete")

	if r.memory != nil {
		record := domain.UsageRecord{
			ID:       uuid.NewString(),
			Tool:     ToolName,
			FileName: meta.FileName,
			RunAt:    time.Now().UTC(),
		}
		if err := r.memory.AppendUsage(ctx, record); err != nil {
			logger.Warn().Err(err).Msg("failed to append usage record")
		}
	}
	return rep, nil
}
