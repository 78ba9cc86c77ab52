package storage

import "time"

// Profile is a stored anonymized candidate profile. It carries no name,
// contact details or other identifying fields; those never survive the
// redaction pass that produces it.
type Profile struct {
	ID         string    `json:"id"`
	Skills     []string  `json:"skills"`
	Experience string    `json:"experience"`
	Education  string    `json:"education"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Job is a posted job opening. PosterID ties the posting to the profile
// that created it so self-applications can be rejected.
type Job struct {
	ID           string    `json:"id"`
	PosterID     string    `json:"poster_id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Application records one profile applying to one job, with the match
// result computed at application time.
type Application struct {
	ID            string    `json:"id"`
	JobID         string    `json:"job_id"`
	ProfileID     string    `json:"profile_id"`
	Score         float64   `json:"score"`
	MatchedCount  int       `json:"matched_count"`
	TotalRequired int       `json:"total_required"`
	CreatedAt     time.Time `json:"created_at"`
}

// ProfileApplication is an application joined with its job details, for
// the per-candidate listing.
type ProfileApplication struct {
	Application
	JobTitle   string `json:"job_title"`
	JobCompany string `json:"job_company"`
}

// JobApplication is an application joined with the applicant's anonymized
// skills, for the per-job listing reviewers see.
type JobApplication struct {
	Application
	ProfileSkills []string `json:"profile_skills"`
}
