package report

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/coreframe-ai/doom-diag/pkg/adapters"
	"github.com/coreframe-ai/doom-diag/pkg/handlers/httpx"
	"github.com/coreframe-ai/doom-diag/pkg/models/api"
	"github.com/coreframe-ai/doom-diag/pkg/services/extract"
	"github.com/coreframe-ai/doom-diag/pkg/services/pipeline"
	reportsvc "github.com/coreframe-ai/doom-diag/pkg/services/report"
	reportstore "github.com/coreframe-ai/doom-diag/pkg/store/duckdb/report"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxUploadMemory = 32 << 20

type Handler struct {
	runner  *pipeline.Runner
	reports *reportsvc.Controller
}

func NewHandler(runner *pipeline.Runner, reports *reportsvc.Controller) *Handler {
	return &Handler{
		runner:  runner,
		reports: reports,
	}
}

// CreateReport runs the whole pipeline against an uploaded file and returns
// the assembled report. Only input and extraction-transport problems fail
// the request; everything downstream degrades to fallbacks.
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "request must be multipart/form-data")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	format, err := extract.ParseFormat(r.FormValue("format"))
	if err != nil {
		httpx.Error(w, r, http.StatusBadRequest, err.Error())
		return
	}

	src := extract.Source{
		Name:   header.Filename,
		Size:   header.Size,
		Reader: file,
	}
	rep, err := h.runner.Run(ctx, src, format)
	if err != nil {
		var extractionErr *extract.ExtractionError
		switch {
		case errors.Is(err, extract.ErrFileTooLarge):
			httpx.Error(w, r, http.StatusBadRequest, err.Error())
		case errors.As(err, &extractionErr):
			logger.Error().Err(err).Str("file", header.Filename).Msg("server extraction failed")
			httpx.Error(w, r, http.StatusBadGateway, "could not reach the server")
		default:
			logger.Error().Err(err).Str("file", header.Filename).Msg("pipeline run failed")
			httpx.Error(w, r, http.StatusUnprocessableEntity, "could not read this file")
		}
		return
	}

	httpx.JSON(w, r, http.StatusCreated, adapters.MapReportDomainToApi(rep))
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reports.List(r.Context())
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to list reports")
		httpx.Error(w, r, http.StatusInternalServerError, "failed to list reports")
		return
	}

	response := make([]api.DoomReport, 0, len(reports))
	for _, rep := range reports {
		response = append(response, adapters.MapReportDomainToApi(rep))
	}
	httpx.JSON(w, r, http.StatusOK, response)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rep, err := h.reports.Get(r.Context(), id)
	if err != nil {
		h.reportError(w, r, id, err)
		return
	}
	httpx.JSON(w, r, http.StatusOK, adapters.MapReportDomainToApi(*rep))
}

// CompleteAction marks one headline as done and returns the report with the
// recalculated doom clock.
func (h *Handler) CompleteAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "headline index must be an integer")
		return
	}

	rep, err := h.reports.CompleteAction(r.Context(), id, index)
	if err != nil {
		h.reportError(w, r, id, err)
		return
	}
	httpx.JSON(w, r, http.StatusOK, adapters.MapReportDomainToApi(rep))
}

func (h *Handler) SaveReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rep, err := h.reports.Get(r.Context(), id)
	if err != nil {
		h.reportError(w, r, id, err)
		return
	}

	saved := h.reports.Save(r.Context(), *rep)
	httpx.JSON(w, r, http.StatusOK, adapters.MapReportDomainToApi(saved))
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	rep, err := h.reports.Get(ctx, id)
	if err != nil {
		h.reportError(w, r, id, err)
		return
	}

	data, contentType := h.reports.Export(ctx, *rep)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+exportExtension(contentType)))
	if _, err := w.Write(data); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("report_id", id).Msg("failed to write export")
	}
}

func (h *Handler) reportError(w http.ResponseWriter, r *http.Request, id string, err error) {
	if errors.Is(err, reportstore.ErrNotFound) {
		httpx.Error(w, r, http.StatusNotFound, "report not found")
		return
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Str("report_id", id).Msg("report operation failed")
	httpx.Error(w, r, http.StatusInternalServerError, "report operation failed")
}

func exportExtension(contentType string) string {
	if contentType == reportsvc.ContentTypePDF {
		return ".pdf"
	}
	return ".txt"
}
