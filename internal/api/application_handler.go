package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noahnghg/hackthebiasproject/internal/storage"
)

type createApplicationRequest struct {
	JobID     string `json:"job_id" validate:"required"`
	ProfileID string `json:"profile_id" validate:"required"`
}

// ApplicationsHandler submits an application: the stored anonymized profile
// is scored against the job's requirements and the result persisted
// @Summary Apply to a job
// @Description Score the applicant's stored profile against the job requirements and record the application
// @Tags applications
// @Accept json
// @Produce json
// @Param application body createApplicationRequest true "Application"
// @Success 201 {object} storage.Application
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /applications [post]
func (a *API) ApplicationsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req createApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		a.writeError(w, http.StatusBadRequest, "job_id and profile_id are required")
		return
	}

	job, err := a.db.GetJob(r.Context(), req.JobID)
	if errors.Is(err, storage.ErrNotFound) {
		a.writeError(w, http.StatusNotFound, "job not found")
		return
	}
	if err != nil {
		a.log.Error("get job", zap.String("job_id", req.JobID), zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	if job.PosterID == req.ProfileID {
		a.writeError(w, http.StatusBadRequest, "you cannot apply to your own job posting")
		return
	}

	prof, err := a.db.GetProfile(r.Context(), req.ProfileID)
	if errors.Is(err, storage.ErrNotFound) {
		a.writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		a.log.Error("get profile", zap.String("profile_id", req.ProfileID), zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	result, err := a.pipeline.ScoreProfile(r.Context(), prof.Skills, job.Requirements)
	if err != nil {
		a.writePipelineError(w, err)
		return
	}

	app := &storage.Application{
		ID:            uuid.NewString(),
		JobID:         job.ID,
		ProfileID:     prof.ID,
		Score:         result.Score,
		MatchedCount:  result.MatchedCount,
		TotalRequired: result.TotalRequired,
	}
	if err := a.db.CreateApplication(r.Context(), app); err != nil {
		a.log.Error("create application", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to create application")
		return
	}

	a.log.Info("application created",
		zap.String("application_id", app.ID),
		zap.String("job_id", job.ID),
		zap.Float64("score", app.Score))

	a.writeJSON(w, http.StatusCreated, app)
}

// ApplicationsByProfileHandler lists a candidate's applications
// @Summary List a candidate's applications
// @Description List applications submitted by a profile, joined with job title and company
// @Tags applications
// @Produce json
// @Param id path string true "Profile ID"
// @Success 200 {array} storage.ProfileApplication
// @Router /applications/profile/{id} [get]
func (a *API) ApplicationsByProfileHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/applications/profile/")
	if id == "" || strings.Contains(id, "/") {
		a.writeError(w, http.StatusBadRequest, "invalid profile id")
		return
	}

	apps, err := a.db.ListApplicationsByProfile(r.Context(), id)
	if err != nil {
		a.log.Error("list applications by profile", zap.String("profile_id", id), zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	a.writeJSON(w, http.StatusOK, apps)
}

// ApplicationsByJobHandler lists a job's applicants, best match first
// @Summary List a job's applicants
// @Description List applications for a job with the applicants' anonymized skills, sorted by score descending
// @Tags applications
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {array} storage.JobApplication
// @Router /applications/job/{id} [get]
func (a *API) ApplicationsByJobHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/applications/job/")
	if id == "" || strings.Contains(id, "/") {
		a.writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	apps, err := a.db.ListApplicationsByJob(r.Context(), id)
	if err != nil {
		a.log.Error("list applications by job", zap.String("job_id", id), zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	a.writeJSON(w, http.StatusOK, apps)
}
