package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("storage: not found")

type DB struct {
	connection *sql.DB
}

func NewDB(dataSourceName string) (*DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, err
	}

	// Connection pool tuning
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &DB{connection: db}, nil
}

func (db *DB) Close() {
	if err := db.connection.Close(); err != nil {
		log.Println("Error closing the database connection:", err)
	}
}

// EnsureSchema creates the tables if they do not exist yet. Safe to run on
// every startup.
func (db *DB) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			skills TEXT NOT NULL DEFAULT '',
			experience TEXT NOT NULL DEFAULT '',
			education TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			poster_id TEXT NOT NULL,
			title TEXT NOT NULL,
			company TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			requirements TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS applications (
			id TEXT PRIMARY KEY,
			job_id TEXT NOT NULL REFERENCES jobs(id),
			profile_id TEXT NOT NULL REFERENCES profiles(id),
			score DOUBLE PRECISION NOT NULL,
			matched_count INTEGER NOT NULL,
			total_required INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_applications_job ON applications(job_id)`,
		`CREATE INDEX IF NOT EXISTS idx_applications_profile ON applications(profile_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.connection.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// SaveProfile inserts or replaces an anonymized profile. Re-uploading a
// resume for the same profile ID overwrites the stored fields.
func (db *DB) SaveProfile(ctx context.Context, profile *Profile) error {
	query := `INSERT INTO profiles (id, skills, experience, education)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (id) DO UPDATE
	            SET skills = EXCLUDED.skills,
	                experience = EXCLUDED.experience,
	                education = EXCLUDED.education,
	                updated_at = NOW()`
	_, err := db.connection.ExecContext(ctx, query,
		profile.ID,
		strings.Join(profile.Skills, ","),
		profile.Experience,
		profile.Education,
	)
	return err
}

func (db *DB) GetProfile(ctx context.Context, id string) (*Profile, error) {
	profile := &Profile{}
	query := `SELECT id, skills, experience, education, created_at, updated_at FROM profiles WHERE id = $1`
	row := db.connection.QueryRowContext(ctx, query, id)
	var skills string
	err := row.Scan(&profile.ID, &skills, &profile.Experience, &profile.Education, &profile.CreatedAt, &profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	profile.Skills = splitAndTrim(skills)
	return profile, nil
}

func (db *DB) CreateJob(ctx context.Context, job *Job) error {
	query := `INSERT INTO jobs (id, poster_id, title, company, description, requirements)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := db.connection.ExecContext(ctx, query,
		job.ID,
		job.PosterID,
		job.Title,
		job.Company,
		job.Description,
		strings.Join(job.Requirements, ","),
	)
	return err
}

func (db *DB) GetJob(ctx context.Context, id string) (*Job, error) {
	query := jobSelect + ` WHERE id = $1`
	row := db.connection.QueryRowContext(ctx, query, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return job, err
}

func (db *DB) ListJobs(ctx context.Context) ([]*Job, error) {
	return db.queryJobs(ctx, jobSelect+` ORDER BY created_at DESC`)
}

func (db *DB) ListJobsByPoster(ctx context.Context, posterID string) ([]*Job, error) {
	return db.queryJobs(ctx, jobSelect+` WHERE poster_id = $1 ORDER BY created_at DESC`, posterID)
}

// SearchJobs matches the query against title, company and description,
// case-insensitively. An empty query returns everything.
func (db *DB) SearchJobs(ctx context.Context, q string) ([]*Job, error) {
	if q == "" {
		return db.ListJobs(ctx)
	}
	query := jobSelect + ` WHERE title ILIKE $1 OR company ILIKE $1 OR description ILIKE $1 ORDER BY created_at DESC`
	return db.queryJobs(ctx, query, "%"+q+"%")
}

// UpdateJobRequirements replaces a job's required skills. Existing
// applications keep their stored scores until the rescore worker gets to
// them.
func (db *DB) UpdateJobRequirements(ctx context.Context, id string, requirements []string) error {
	query := `UPDATE jobs SET requirements = $2, updated_at = NOW() WHERE id = $1`
	res, err := db.connection.ExecContext(ctx, query, id, strings.Join(requirements, ","))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) CreateApplication(ctx context.Context, app *Application) error {
	query := `INSERT INTO applications (id, job_id, profile_id, score, matched_count, total_required)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := db.connection.ExecContext(ctx, query,
		app.ID,
		app.JobID,
		app.ProfileID,
		app.Score,
		app.MatchedCount,
		app.TotalRequired,
	)
	return err
}

// UpdateApplicationScore rewrites the stored match result, used by the
// rescore worker after a job's requirements change.
func (db *DB) UpdateApplicationScore(ctx context.Context, id string, score float64, matched, required int) error {
	query := `UPDATE applications SET score = $2, matched_count = $3, total_required = $4 WHERE id = $1`
	_, err := db.connection.ExecContext(ctx, query, id, score, matched, required)
	return err
}

// ListApplicationsByProfile returns a candidate's applications joined with
// the job title and company they applied to.
func (db *DB) ListApplicationsByProfile(ctx context.Context, profileID string) ([]*ProfileApplication, error) {
	query := `SELECT a.id, a.job_id, a.profile_id, a.score, a.matched_count, a.total_required, a.created_at,
	                 j.title, j.company
	          FROM applications a
	          JOIN jobs j ON j.id = a.job_id
	          WHERE a.profile_id = $1
	          ORDER BY a.created_at DESC`
	rows, err := db.connection.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*ProfileApplication
	for rows.Next() {
		pa := &ProfileApplication{}
		if err := rows.Scan(&pa.ID, &pa.JobID, &pa.ProfileID, &pa.Score, &pa.MatchedCount, &pa.TotalRequired, &pa.CreatedAt,
			&pa.JobTitle, &pa.JobCompany); err != nil {
			return nil, err
		}
		res = append(res, pa)
	}
	return res, rows.Err()
}

// ListApplicationsByJob returns a job's applicants with their anonymized
// skills, best match first.
func (db *DB) ListApplicationsByJob(ctx context.Context, jobID string) ([]*JobApplication, error) {
	query := `SELECT a.id, a.job_id, a.profile_id, a.score, a.matched_count, a.total_required, a.created_at,
	                 p.skills
	          FROM applications a
	          JOIN profiles p ON p.id = a.profile_id
	          WHERE a.job_id = $1
	          ORDER BY a.score DESC, a.created_at ASC`
	rows, err := db.connection.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*JobApplication
	for rows.Next() {
		ja := &JobApplication{}
		var skills string
		if err := rows.Scan(&ja.ID, &ja.JobID, &ja.ProfileID, &ja.Score, &ja.MatchedCount, &ja.TotalRequired, &ja.CreatedAt,
			&skills); err != nil {
			return nil, err
		}
		ja.ProfileSkills = splitAndTrim(skills)
		res = append(res, ja)
	}
	return res, rows.Err()
}

const jobSelect = `SELECT id, poster_id, title, company, description, requirements, created_at, updated_at FROM jobs`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (*Job, error) {
	job := &Job{}
	var requirements string
	err := row.Scan(&job.ID, &job.PosterID, &job.Title, &job.Company, &job.Description, &requirements, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, err
	}
	job.Requirements = splitAndTrim(requirements)
	return job, nil
}

func (db *DB) queryJobs(ctx context.Context, query string, args ...interface{}) ([]*Job, error) {
	rows, err := db.connection.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, job)
	}
	return res, rows.Err()
}

// helper to split comma-separated skills
func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
