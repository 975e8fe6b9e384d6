package memory

import (
	"encoding/json"
	"net/http"

	"github.com/coreframe-ai/doom-diag/pkg/adapters"
	"github.com/coreframe-ai/doom-diag/pkg/handlers/httpx"
	"github.com/coreframe-ai/doom-diag/pkg/models/api"
	"github.com/coreframe-ai/doom-diag/pkg/services/memory"
	"github.com/coreframe-ai/doom-diag/pkg/services/pipeline"
	"github.com/rs/zerolog"
)

type Handler struct {
	store memory.Store
}

func NewHandler(store memory.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	tool := r.URL.Query().Get("tool")
	if tool == "" {
		tool = pipeline.ToolName
	}

	prefs, err := h.store.GetPreferences(r.Context(), tool)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("tool", tool).Msg("failed to load preferences")
		httpx.Error(w, r, http.StatusInternalServerError, "failed to load preferences")
		return
	}
	httpx.JSON(w, r, http.StatusOK, adapters.MapPreferencesDomainToApi(prefs))
}

func (h *Handler) SetPreferences(w http.ResponseWriter, r *http.Request) {
	var body api.Preferences
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "invalid preferences payload")
		return
	}
	if body.Tool == "" {
		body.Tool = pipeline.ToolName
	}

	if err := h.store.SetPreferences(r.Context(), adapters.MapPreferencesApiToDomain(body)); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("tool", body.Tool).Msg("failed to store preferences")
		httpx.Error(w, r, http.StatusInternalServerError, "failed to store preferences")
		return
	}
	httpx.JSON(w, r, http.StatusOK, body)
}

func (h *Handler) ListUsage(w http.ResponseWriter, r *http.Request) {
	tool := r.URL.Query().Get("tool")
	if tool == "" {
		tool = pipeline.ToolName
	}

	records, err := h.store.ListUsage(r.Context(), tool)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("tool", tool).Msg("failed to list usage records")
		httpx.Error(w, r, http.StatusInternalServerError, "failed to list usage records")
		return
	}

	response := make([]api.UsageRecord, 0, len(records))
	for _, record := range records {
		response = append(response, adapters.MapUsageRecordDomainToApi(record))
	}
	httpx.JSON(w, r, http.StatusOK, response)
}
