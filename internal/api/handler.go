package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noahnghg/hackthebiasproject/internal/document"
	"github.com/noahnghg/hackthebiasproject/internal/match"
	"github.com/noahnghg/hackthebiasproject/internal/pipeline"
	"github.com/noahnghg/hackthebiasproject/internal/redact"
	"github.com/noahnghg/hackthebiasproject/internal/storage"
)

type API struct {
	db           *storage.DB
	pipeline     *pipeline.Pipeline
	validate     *validator.Validate
	log          *zap.Logger
	rescoreQueue chan RescoreJob // Background queue for re-scoring applications after requirement edits
}

func NewAPI(db *storage.DB, pipe *pipeline.Pipeline, log *zap.Logger) *API {
	if log == nil {
		log = zap.NewNop()
	}

	a := &API{
		db:           db,
		pipeline:     pipe,
		validate:     validator.New(),
		log:          log,
		rescoreQueue: make(chan RescoreJob, 50),
	}

	a.StartBackgroundWorkers()

	return a
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Error("encode response", zap.Error(err))
	}
}

func (a *API) writeError(w http.ResponseWriter, status int, msg string) {
	a.writeJSON(w, status, errorResponse{Error: msg})
}

// writePipelineError maps pipeline failures onto HTTP statuses: bad input is
// the caller's fault, an unavailable model is ours.
func (a *API) writePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, document.ErrUnsupportedFormat):
		a.writeError(w, http.StatusBadRequest, "unsupported document format")
	case errors.Is(err, document.ErrExtraction):
		a.writeError(w, http.StatusUnprocessableEntity, "could not extract text from document")
	case errors.Is(err, match.ErrEmptyRequirements):
		a.writeError(w, http.StatusUnprocessableEntity, "job has no required skills")
	case errors.Is(err, redact.ErrUnavailable):
		a.writeError(w, http.StatusServiceUnavailable, "redaction service unavailable")
	case errors.Is(err, match.ErrEmbeddingUnavailable):
		a.writeError(w, http.StatusServiceUnavailable, "embedding service unavailable")
	default:
		a.log.Error("pipeline error", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "internal error")
	}
}
