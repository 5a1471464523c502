// Package store provides PostgreSQL persistence for jobs and resume
// artifacts.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-forge/internal/types"
)

// Job status codes as they transition through the pipeline.
const (
	StatusNew             = "new"
	StatusAnalyzed        = "analyzed"
	StatusResumeGenerated = "resume_generated"
)

// EligibilityThreshold is the stored match score a job must exceed before it
// qualifies for resume generation.
const EligibilityThreshold = 0.5

// JobAnalysis is the persisted analysis for one job: the extracted
// requirements plus the intake match score. Requirements are written once
// and never mutated; a job whose analysis carries only a score still needs
// extraction.
type JobAnalysis struct {
	types.Requirements
	MatchScore float64 `json:"match_score"`
}

// JobRecord is one tracked job posting.
type JobRecord struct {
	ID          uuid.UUID
	Company     string
	Title       string
	URL         string
	Description string
	Status      string
	Analysis    JobAnalysis
	Application map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ResumeCustomization is the tailoring metadata stored with an artifact.
type ResumeCustomization struct {
	SkillsEmphasized []string `json:"skills_emphasized"`
	Summary          string   `json:"summary"`
	MatchScore       float64  `json:"match_score"`
	Reasoning        string   `json:"reasoning,omitempty"`
}

// ResumeRecord is one rendered resume artifact. Records are append-only and
// versioned per job; regeneration inserts a new row with the next version.
type ResumeRecord struct {
	ID            uuid.UUID
	JobID         uuid.UUID
	FilePath      string
	Customization ResumeCustomization
	Version       int
	CreatedAt     time.Time
}

// NotFoundError reports a lookup for a record that does not exist.
type NotFoundError struct {
	Collection string
	ID         uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s record %s not found", e.Collection, e.ID)
}

// Store is the persistence surface the pipeline depends on.
type Store interface {
	InsertJob(ctx context.Context, job *JobRecord) error
	GetJob(ctx context.Context, id uuid.UUID) (*JobRecord, error)
	UpdateJobAnalysis(ctx context.Context, id uuid.UUID, analysis JobAnalysis) error
	// UpdateJobStatus applies the transition only when the job still holds
	// the expected prior status, so a job processed twice concurrently
	// cannot lose an update.
	UpdateJobStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error)
	SetJobApplication(ctx context.Context, id uuid.UUID, application map[string]any) error
	// PendingJobs lists jobs clearing the eligibility gate: status analyzed
	// and stored match score above the threshold.
	PendingJobs(ctx context.Context, limit int) ([]*JobRecord, error)
	InsertResume(ctx context.Context, resume *ResumeRecord) error
	ResumesForJob(ctx context.Context, jobID uuid.UUID) ([]*ResumeRecord, error)
	Close()
}
