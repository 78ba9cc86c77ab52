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

// Requirements are stored as a comma-separated column, so a single
// requirement must not itself contain a comma (0x2C).
type createJobRequest struct {
	PosterID     string   `json:"poster_id" validate:"required"`
	Title        string   `json:"title" validate:"required"`
	Company      string   `json:"company"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements" validate:"required,min=1,dive,required,excludesall=0x2C"`
}

type updateRequirementsRequest struct {
	Requirements []string `json:"requirements" validate:"required,min=1,dive,required,excludesall=0x2C"`
}

// JobsHandler creates a job posting or lists all of them
// @Summary Create or list jobs
// @Description POST creates a job posting; GET lists all postings
// @Tags jobs
// @Accept json
// @Produce json
// @Param job body createJobRequest true "Job posting"
// @Success 200 {array} storage.Job
// @Success 201 {object} storage.Job
// @Failure 400 {object} errorResponse
// @Router /jobs [post]
func (a *API) JobsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.createJob(w, r)
	case http.MethodGet:
		jobs, err := a.db.ListJobs(r.Context())
		if err != nil {
			a.log.Error("list jobs", zap.Error(err))
			a.writeError(w, http.StatusInternalServerError, "database error")
			return
		}
		a.writeJSON(w, http.StatusOK, jobs)
	default:
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (a *API) createJob(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := a.validate.Struct(req); err != nil {
		a.writeError(w, http.StatusBadRequest, "poster_id, title and at least one requirement are required; a requirement must not contain commas")
		return
	}

	job := &storage.Job{
		ID:           uuid.NewString(),
		PosterID:     req.PosterID,
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		Requirements: req.Requirements,
	}
	if err := a.db.CreateJob(r.Context(), job); err != nil {
		a.log.Error("create job", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	a.log.Info("job created", zap.String("job_id", job.ID), zap.String("title", job.Title))
	a.writeJSON(w, http.StatusCreated, job)
}

// JobSearchHandler searches job postings
// @Summary Search jobs
// @Description Search jobs by title, company or description (case-insensitive)
// @Tags jobs
// @Produce json
// @Param q query string false "Search query; empty returns all jobs"
// @Success 200 {array} storage.Job
// @Router /jobs/search [get]
func (a *API) JobSearchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	jobs, err := a.db.SearchJobs(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		a.log.Error("search jobs", zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	a.writeJSON(w, http.StatusOK, jobs)
}

// JobsByPosterHandler lists the jobs posted by one profile
// @Summary List a poster's jobs
// @Description List all job postings created by a profile
// @Tags jobs
// @Produce json
// @Param id path string true "Poster profile ID"
// @Success 200 {array} storage.Job
// @Failure 400 {object} errorResponse
// @Router /jobs/poster/{id} [get]
func (a *API) JobsByPosterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/jobs/poster/")
	if id == "" || strings.Contains(id, "/") {
		a.writeError(w, http.StatusBadRequest, "invalid poster id")
		return
	}

	jobs, err := a.db.ListJobsByPoster(r.Context(), id)
	if err != nil {
		a.log.Error("list jobs by poster", zap.String("poster_id", id), zap.Error(err))
		a.writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	a.writeJSON(w, http.StatusOK, jobs)
}

// JobHandler serves a single job: GET fetches it, PUT replaces its
// requirements and queues a rescore of its applications
// @Summary Get or update a job
// @Description GET returns the job; PUT replaces its required skills and re-scores existing applications in the background
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param requirements body updateRequirementsRequest false "New requirements (PUT only)"
// @Success 200 {object} storage.Job
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /jobs/{id} [get]
func (a *API) JobHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	if id == "" || strings.Contains(id, "/") {
		a.writeError(w, http.StatusBadRequest, "invalid job id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		job, err := a.db.GetJob(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			a.writeError(w, http.StatusNotFound, "job not found")
			return
		}
		if err != nil {
			a.log.Error("get job", zap.String("job_id", id), zap.Error(err))
			a.writeError(w, http.StatusInternalServerError, "database error")
			return
		}
		a.writeJSON(w, http.StatusOK, job)

	case http.MethodPut:
		var req updateRequirementsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			a.writeError(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		if err := a.validate.Struct(req); err != nil {
			a.writeError(w, http.StatusBadRequest, "at least one requirement is required; a requirement must not contain commas")
			return
		}

		err := a.db.UpdateJobRequirements(r.Context(), id, req.Requirements)
		if errors.Is(err, storage.ErrNotFound) {
			a.writeError(w, http.StatusNotFound, "job not found")
			return
		}
		if err != nil {
			a.log.Error("update job requirements", zap.String("job_id", id), zap.Error(err))
			a.writeError(w, http.StatusInternalServerError, "failed to update job")
			return
		}

		// Stored scores are stale now; refresh them off the request path.
		a.QueueRescoreJob(id)

		job, err := a.db.GetJob(r.Context(), id)
		if err != nil {
			a.log.Error("get job after update", zap.String("job_id", id), zap.Error(err))
			a.writeError(w, http.StatusInternalServerError, "database error")
			return
		}
		a.writeJSON(w, http.StatusOK, job)

	default:
		a.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
