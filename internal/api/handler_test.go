package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAPI builds an API without a database or pipeline; only the paths
// that reject the request before touching either are exercised here. The
// DB-backed paths are covered by integration tests against a real Postgres.
func newTestAPI() *API {
	return NewAPI(nil, nil, nil)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestResumeUploadRequiresPost(t *testing.T) {
	a := newTestAPI()

	req := httptest.NewRequest(http.MethodGet, "/api/resume/upload", nil)
	w := httptest.NewRecorder()
	a.ResumeUploadHandler(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestResumeUploadRequiresFile(t *testing.T) {
	a := newTestAPI()

	req := httptest.NewRequest(http.MethodPost, "/api/resume/upload", strings.NewReader("not multipart"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xxx")
	w := httptest.NewRecorder()
	a.ResumeUploadHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResumeUploadRejectsOversizeFile(t *testing.T) {
	a := newTestAPI()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "huge.txt")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), maxResumeSize+1))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/resume/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	a.ResumeUploadHandler(w, req)

	// Oversize uploads must be rejected outright, never truncated and
	// processed with content missing.
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "too large")
}

func TestProfileHandlerRejectsInvalidID(t *testing.T) {
	a := newTestAPI()

	for _, path := range []string{"/api/profiles/", "/api/profiles/a/b"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		a.ProfileHandler(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestCreateJobValidation(t *testing.T) {
	a := newTestAPI()

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing title", `{"poster_id":"p1","requirements":["go"]}`},
		{"missing poster", `{"title":"Engineer","requirements":["go"]}`},
		{"empty requirements", `{"poster_id":"p1","title":"Engineer","requirements":[]}`},
		{"blank requirement", `{"poster_id":"p1","title":"Engineer","requirements":[""]}`},
		{"requirement with comma", `{"poster_id":"p1","title":"Engineer","requirements":["communication, mentoring"]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(tc.body))
			w := httptest.NewRecorder()
			a.JobsHandler(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateApplicationValidation(t *testing.T) {
	a := newTestAPI()

	req := httptest.NewRequest(http.MethodPost, "/api/applications", strings.NewReader(`{"job_id":"j1"}`))
	w := httptest.NewRecorder()
	a.ApplicationsHandler(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "profile_id")
}

func TestJobsByPosterRejectsInvalidID(t *testing.T) {
	a := newTestAPI()

	req := httptest.NewRequest(http.MethodGet, "/api/jobs/poster/", nil)
	w := httptest.NewRecorder()
	a.JobsByPosterHandler(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/jobs/poster/p1", nil)
	w = httptest.NewRecorder()
	a.JobsByPosterHandler(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestApplicationListingsRejectInvalidID(t *testing.T) {
	a := newTestAPI()

	req := httptest.NewRequest(http.MethodGet, "/api/applications/job/", nil)
	w := httptest.NewRecorder()
	a.ApplicationsByJobHandler(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/applications/profile/", nil)
	w = httptest.NewRecorder()
	a.ApplicationsByProfileHandler(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := NewRouter(newTestAPI())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestResumeMediaType(t *testing.T) {
	assert.Equal(t, "application/pdf", resumeMediaType("cv.PDF", ""))
	assert.Equal(t, "text/plain", resumeMediaType("cv.txt", "application/octet-stream"))
	assert.Equal(t, "application/msword", resumeMediaType("cv.doc", "application/msword"))
}
