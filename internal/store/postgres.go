package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implements Store on a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ Store = (*Postgres)(nil)

// Connect establishes a connection pool and verifies it.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// EnsureSchema creates the jobs and resumes tables when they do not exist.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS jobs (
			id UUID PRIMARY KEY,
			company TEXT NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'new',
			analysis JSONB,
			application JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS resumes (
			id UUID PRIMARY KEY,
			job_id UUID NOT NULL REFERENCES jobs(id),
			file_path TEXT NOT NULL,
			customization JSONB,
			version INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (job_id, version)
		);`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *Postgres) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InsertJob stores a new job record, assigning an ID when absent.
func (s *Postgres) InsertJob(ctx context.Context, job *JobRecord) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.Status == "" {
		job.Status = StatusNew
	}

	analysisJSON, err := json.Marshal(job.Analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO jobs (id, company, title, url, description, status, analysis)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		job.ID, job.Company, job.Title, job.URL, job.Description, job.Status, analysisJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert job: %w", err)
	}
	return nil
}

// GetJob retrieves one job by ID, returning NotFoundError when absent.
func (s *Postgres) GetJob(ctx context.Context, id uuid.UUID) (*JobRecord, error) {
	job, err := s.scanJob(s.pool.QueryRow(ctx,
		`SELECT id, company, title, url, description, status, analysis, application, created_at, updated_at
		 FROM jobs WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Collection: "job", ID: id}
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// UpdateJobAnalysis stores the job's analysis document.
func (s *Postgres) UpdateJobAnalysis(ctx context.Context, id uuid.UUID, analysis JobAnalysis) error {
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET analysis = $1, updated_at = NOW() WHERE id = $2`,
		analysisJSON, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update job analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Collection: "job", ID: id}
	}
	return nil
}

// UpdateJobStatus transitions the job's status, guarded on the expected
// prior status. It reports whether the transition was applied.
func (s *Postgres) UpdateJobStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		to, id, from,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update job status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SetJobApplication stores application tracking data on the job.
func (s *Postgres) SetJobApplication(ctx context.Context, id uuid.UUID, application map[string]any) error {
	applicationJSON, err := json.Marshal(application)
	if err != nil {
		return fmt.Errorf("failed to marshal application: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET application = $1, updated_at = NOW() WHERE id = $2`,
		applicationJSON, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set job application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Collection: "job", ID: id}
	}
	return nil
}

// PendingJobs lists jobs eligible for resume generation, oldest first.
func (s *Postgres) PendingJobs(ctx context.Context, limit int) ([]*JobRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, company, title, url, description, status, analysis, application, created_at, updated_at
		 FROM jobs
		 WHERE status = $1 AND (analysis->>'match_score')::float8 > $2
		 ORDER BY created_at
		 LIMIT $3`,
		StatusAnalyzed, EligibilityThreshold, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*JobRecord
	for rows.Next() {
		job, err := s.scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list pending jobs: %w", err)
	}
	return jobs, nil
}

// InsertResume stores a rendered artifact, assigning the next version for
// its job when the caller leaves Version unset.
func (s *Postgres) InsertResume(ctx context.Context, resume *ResumeRecord) error {
	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}

	customizationJSON, err := json.Marshal(resume.Customization)
	if err != nil {
		return fmt.Errorf("failed to marshal customization: %w", err)
	}

	if resume.Version == 0 {
		err = s.pool.QueryRow(ctx,
			`INSERT INTO resumes (id, job_id, file_path, customization, version)
			 VALUES ($1, $2, $3, $4,
			         (SELECT COALESCE(MAX(version), 0) + 1 FROM resumes WHERE job_id = $2))
			 RETURNING version`,
			resume.ID, resume.JobID, resume.FilePath, customizationJSON,
		).Scan(&resume.Version)
	} else {
		_, err = s.pool.Exec(ctx,
			`INSERT INTO resumes (id, job_id, file_path, customization, version)
			 VALUES ($1, $2, $3, $4, $5)`,
			resume.ID, resume.JobID, resume.FilePath, customizationJSON, resume.Version,
		)
	}
	if err != nil {
		return fmt.Errorf("failed to insert resume: %w", err)
	}
	return nil
}

// ResumesForJob lists a job's artifacts in version order.
func (s *Postgres) ResumesForJob(ctx context.Context, jobID uuid.UUID) ([]*ResumeRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, job_id, file_path, customization, version, created_at
		 FROM resumes WHERE job_id = $1 ORDER BY version`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []*ResumeRecord
	for rows.Next() {
		var r ResumeRecord
		var customizationJSON []byte
		if err := rows.Scan(&r.ID, &r.JobID, &r.FilePath, &customizationJSON, &r.Version, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		if customizationJSON != nil {
			_ = json.Unmarshal(customizationJSON, &r.Customization)
		}
		resumes = append(resumes, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

func (s *Postgres) scanJob(row pgx.Row) (*JobRecord, error) {
	var job JobRecord
	var analysisJSON, applicationJSON []byte

	err := row.Scan(&job.ID, &job.Company, &job.Title, &job.URL, &job.Description,
		&job.Status, &analysisJSON, &applicationJSON, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if analysisJSON != nil {
		_ = json.Unmarshal(analysisJSON, &job.Analysis)
	}
	if applicationJSON != nil {
		_ = json.Unmarshal(applicationJSON, &job.Application)
	}
	return &job, nil
}
