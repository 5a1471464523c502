// Package pipeline orchestrates resume generation for tracked jobs:
// requirement extraction, experience matching, rendering and persistence.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-forge/internal/analysis"
	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/matching"
	"github.com/jonathan/resume-forge/internal/render"
	"github.com/jonathan/resume-forge/internal/store"
	"github.com/jonathan/resume-forge/internal/types"
)

// DefaultConcurrency bounds how many jobs a batch processes at once.
const DefaultConcurrency = 4

// DefaultJobTimeout bounds one job's generation calls end to end.
const DefaultJobTimeout = 5 * time.Minute

// Renderer writes one laid-out resume document to a file.
type Renderer interface {
	RenderFile(doc *render.Document, path string) error
}

// Summary is the result record returned for one processed job.
type Summary struct {
	JobID            uuid.UUID `json:"job_id"`
	ResumeID         uuid.UUID `json:"resume_id"`
	ResumePath       string    `json:"resume_path"`
	MatchScore       float64   `json:"match_score"`
	MatchExplanation string    `json:"match_explanation"`
}

// Pipeline wires the generation stages over shared collaborators. It is safe
// for concurrent use; the profile is read-only across jobs.
type Pipeline struct {
	Store       store.Store
	Client      llm.Client
	Renderer    Renderer
	OutputDir   string
	Concurrency int
	JobTimeout  time.Duration

	// now is swapped in tests to pin the filename date.
	now func() time.Time
}

// New builds a pipeline with default batch settings.
func New(st store.Store, client llm.Client, renderer Renderer, outputDir string) *Pipeline {
	return &Pipeline{
		Store:       st,
		Client:      client,
		Renderer:    renderer,
		OutputDir:   outputDir,
		Concurrency: DefaultConcurrency,
		JobTimeout:  DefaultJobTimeout,
	}
}

func (p *Pipeline) clock() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now()
}

// ProcessJob generates a tailored resume for one job: it reuses a stored
// requirement record when present, otherwise extracts and persists one, then
// matches the profile, renders the PDF and records the artifact with the
// status transition to resume_generated.
func (p *Pipeline) ProcessJob(ctx context.Context, jobID uuid.UUID, profile *types.CandidateProfile) (*Summary, error) {
	if p.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.JobTimeout)
		defer cancel()
	}

	job, err := p.Store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	requirements, err := p.ensureRequirements(ctx, job)
	if err != nil {
		return nil, err
	}

	content, err := matching.MatchExperiences(ctx, p.Client, requirements, profile)
	if err != nil {
		return nil, fmt.Errorf("match experiences for job %s: %w", jobID, err)
	}

	outputPath := filepath.Join(p.OutputDir, artifactFilename(jobID, job.Company, p.clock()))
	doc := render.NewDocument(profile, content, job.Title)
	if err := p.Renderer.RenderFile(doc, outputPath); err != nil {
		return nil, fmt.Errorf("render resume for job %s: %w", jobID, err)
	}

	resume := &store.ResumeRecord{
		JobID:    jobID,
		FilePath: outputPath,
		Customization: store.ResumeCustomization{
			SkillsEmphasized: content.SkillsToEmphasize,
			Summary:          content.ProfessionalSummary,
			MatchScore:       content.MatchScore,
			Reasoning:        content.RelevanceReasoning,
		},
	}
	if err := p.Store.InsertResume(ctx, resume); err != nil {
		return nil, err
	}

	application := map[string]any{
		"resume_id":           resume.ID.String(),
		"match_score":         content.MatchScore,
		"relevance_reasoning": content.RelevanceReasoning,
	}
	if err := p.Store.SetJobApplication(ctx, jobID, application); err != nil {
		return nil, err
	}
	if _, err := p.Store.UpdateJobStatus(ctx, jobID, store.StatusAnalyzed, store.StatusResumeGenerated); err != nil {
		return nil, err
	}

	return &Summary{
		JobID:            jobID,
		ResumeID:         resume.ID,
		ResumePath:       outputPath,
		MatchScore:       content.MatchScore,
		MatchExplanation: content.RelevanceReasoning,
	}, nil
}

// ensureRequirements returns the job's stored requirement record, extracting
// and persisting one when the stored analysis carries no requirements. An
// intake match score alone does not count as an analysis.
func (p *Pipeline) ensureRequirements(ctx context.Context, job *store.JobRecord) (*types.Requirements, error) {
	if !job.Analysis.IsEmpty() {
		reqs := job.Analysis.Requirements
		return &reqs, nil
	}

	reqs, err := analysis.ExtractRequirements(ctx, p.Client, job.Description)
	if err != nil {
		return nil, fmt.Errorf("extract requirements for job %s: %w", job.ID, err)
	}

	updated := job.Analysis
	updated.Requirements = *reqs
	if err := p.Store.UpdateJobAnalysis(ctx, job.ID, updated); err != nil {
		return nil, err
	}
	if _, err := p.Store.UpdateJobStatus(ctx, job.ID, job.Status, store.StatusAnalyzed); err != nil {
		return nil, err
	}
	return reqs, nil
}

// ProcessPendingJobs processes up to limit eligible jobs. Failures are
// logged per job and never abort the batch; the returned summaries cover
// only the jobs that completed.
func (p *Pipeline) ProcessPendingJobs(ctx context.Context, profile *types.CandidateProfile, limit int) ([]*Summary, error) {
	jobs, err := p.Store.PendingJobs(ctx, limit)
	if err != nil {
		return nil, err
	}

	concurrency := p.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var mu sync.Mutex
	summaries := make([]*Summary, 0, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			summary, err := p.ProcessJob(gctx, job.ID, profile)
			if err != nil {
				log.Printf("pipeline: job %s failed: %v", job.ID, err)
				return nil
			}
			mu.Lock()
			summaries = append(summaries, summary)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summaries, err
	}
	return summaries, nil
}

// artifactFilename builds the deterministic output filename for one job.
func artifactFilename(jobID uuid.UUID, company string, now time.Time) string {
	sanitized := strings.NewReplacer(" ", "_", "/", "_").Replace(company)
	return fmt.Sprintf("%s_%s_%s.pdf", jobID, sanitized, now.Format("20060102"))
}
