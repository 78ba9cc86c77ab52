package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRouter(a *API) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation - must be registered first
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// Health check (for Railway, k8s, etc.)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Resume & profile endpoints
	mux.HandleFunc("/api/resume/upload", a.ResumeUploadHandler)
	mux.HandleFunc("/api/profiles/", a.ProfileHandler)

	// Job endpoints
	mux.HandleFunc("/api/jobs", a.JobsHandler)
	mux.HandleFunc("/api/jobs/search", a.JobSearchHandler)
	mux.HandleFunc("/api/jobs/poster/", a.JobsByPosterHandler)
	mux.HandleFunc("/api/jobs/", a.JobHandler)

	// Application endpoints
	mux.HandleFunc("/api/applications", a.ApplicationsHandler)
	mux.HandleFunc("/api/applications/profile/", a.ApplicationsByProfileHandler)
	mux.HandleFunc("/api/applications/job/", a.ApplicationsByJobHandler)

	return mux
}
