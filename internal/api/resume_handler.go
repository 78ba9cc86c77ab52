package api

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noahnghg/hackthebiasproject/internal/storage"
)

const maxResumeSize = 10 << 20 // 10MB

// ResumeUploadHandler accepts a resume upload, runs it through the
// anonymization pipeline and stores the resulting profile
// @Summary Upload a resume
// @Description Upload a resume (PDF or plain text), anonymize it and store the candidate profile
// @Tags resume
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Resume file (PDF or TXT)"
// @Param profile_id formData string false "Profile ID to overwrite (optional; a new one is generated otherwise)"
// @Success 200 {object} storage.Profile
// @Failure 400 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /resume/upload [post]
func (a *API) ResumeUploadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	start := time.Now()

	// MaxBytesReader makes oversize uploads fail the parse below instead of
	// being read partially.
	r.Body = http.MaxBytesReader(w, r.Body, maxResumeSize)
	if err := r.ParseMultipartForm(maxResumeSize); err != nil {
		a.writeError(w, http.StatusBadRequest, "file too large or invalid (max 10MB)")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, "could not read file")
		return
	}

	prof, err := a.pipeline.ProcessResume(r.Context(), data, resumeMediaType(header.Filename, header.Header.Get("Content-Type")))
	if err != nil {
		a.writePipelineError(w, err)
		return
	}

	profileID := r.FormValue("profile_id")
	if profileID == "" {
		profileID = uuid.NewString()
	}

	stored := &storage.Profile{
		ID:         profileID,
		Skills:     prof.Skills,
		Experience: prof.Experience,
		Education:  prof.Education,
	}
	if err := a.db.SaveProfile(r.Context(), stored); err != nil {
		a.log.Error("save profile", zap.String("profile_id", profileID), zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	a.log.Info("resume processed",
		zap.String("profile_id", profileID),
		zap.Int("skills", len(prof.Skills)),
		zap.Duration("took", time.Since(start)))

	a.writeJSON(w, http.StatusOK, stored)
}

// ProfileHandler returns a stored anonymized profile
// @Summary Get a profile
// @Description Get a stored anonymized candidate profile by ID
// @Tags resume
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {object} storage.Profile
// @Failure 404 {object} errorResponse
// @Router /profiles/{id} [get]
func (a *API) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/profiles/")
	if id == "" || strings.Contains(id, "/") {
		a.writeError(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	prof, err := a.db.GetProfile(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		a.writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		a.log.Error("get profile", zap.String("profile_id", id), zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	a.writeJSON(w, http.StatusOK, prof)
}

// resumeMediaType maps the uploaded filename to the media type the
// extractor understands, falling back to the part's own Content-Type.
func resumeMediaType(filename, contentType string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	}
	return contentType
}
