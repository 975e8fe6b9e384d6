package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/coreframe-ai/doom-diag/pkg/models/api"
	"github.com/rs/zerolog"
)

// JSON writes v with the given status; encode failures are logged, the
// status line has already gone out by then.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
	}
}

func Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	JSON(w, r, status, api.Error{Error: message})
}
