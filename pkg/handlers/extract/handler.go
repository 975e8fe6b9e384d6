package extract

import (
	"errors"
	"net/http"
	"strings"

	"github.com/coreframe-ai/doom-diag/pkg/adapters"
	"github.com/coreframe-ai/doom-diag/pkg/handlers/httpx"
	extractsvc "github.com/coreframe-ai/doom-diag/pkg/services/extract"
	"github.com/rs/zerolog"
)

const maxUploadMemory = 32 << 20

// Handler is the server-side extraction collaborator: multipart upload in,
// normalized dataset envelope out. It parses everything locally; the
// size-based delegation decision belongs to the client side.
type Handler struct {
	extractor *extractsvc.Service
}

func NewHandler(extractor *extractsvc.Service) *Handler {
	return &Handler{extractor: extractor}
}

func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		httpx.Error(w, r, http.StatusBadRequest, "Request must be multipart/form-data")
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "Request must be multipart/form-data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	format, err := extractsvc.ParseFormat(r.FormValue("format"))
	if err != nil {
		httpx.Error(w, r, http.StatusBadRequest, "Unsupported file format. Must be PDF, CSV, or XLSX.")
		return
	}

	src := extractsvc.Source{
		Name:   header.Filename,
		Size:   header.Size,
		Reader: file,
	}
	ds, meta, err := h.extractor.Extract(ctx, src, format)
	if err != nil {
		if errors.Is(err, extractsvc.ErrFileTooLarge) {
			httpx.Error(w, r, http.StatusBadRequest, "File too large. Maximum size is 25MB.")
			return
		}
		logger.Error().Err(err).Str("file", header.Filename).Msg("extraction failed")
		httpx.Error(w, r, http.StatusInternalServerError, "Error processing file")
		return
	}

	httpx.JSON(w, r, http.StatusOK, adapters.MapExtractionDomainToApi(*ds, *meta))
}
