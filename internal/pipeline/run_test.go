package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/render"
	"github.com/jonathan/resume-forge/internal/store"
	"github.com/jonathan/resume-forge/internal/types"
)

type fakeStore struct {
	mu       sync.Mutex
	jobs     map[uuid.UUID]*store.JobRecord
	resumes  []*store.ResumeRecord
	statuses []string
}

func newFakeStore(jobs ...*store.JobRecord) *fakeStore {
	fs := &fakeStore{jobs: make(map[uuid.UUID]*store.JobRecord)}
	for _, job := range jobs {
		fs.jobs[job.ID] = job
	}
	return fs
}

func (fs *fakeStore) InsertJob(_ context.Context, job *store.JobRecord) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.jobs[job.ID] = job
	return nil
}

func (fs *fakeStore) GetJob(_ context.Context, id uuid.UUID) (*store.JobRecord, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	job, ok := fs.jobs[id]
	if !ok {
		return nil, &store.NotFoundError{Collection: "job", ID: id}
	}
	copied := *job
	return &copied, nil
}

func (fs *fakeStore) UpdateJobAnalysis(_ context.Context, id uuid.UUID, analysis store.JobAnalysis) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	job, ok := fs.jobs[id]
	if !ok {
		return &store.NotFoundError{Collection: "job", ID: id}
	}
	job.Analysis = analysis
	return nil
}

func (fs *fakeStore) UpdateJobStatus(_ context.Context, id uuid.UUID, from, to string) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	job, ok := fs.jobs[id]
	if !ok {
		return false, &store.NotFoundError{Collection: "job", ID: id}
	}
	if job.Status != from {
		return false, nil
	}
	job.Status = to
	fs.statuses = append(fs.statuses, fmt.Sprintf("%s->%s", from, to))
	return true, nil
}

func (fs *fakeStore) SetJobApplication(_ context.Context, id uuid.UUID, application map[string]any) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	job, ok := fs.jobs[id]
	if !ok {
		return &store.NotFoundError{Collection: "job", ID: id}
	}
	job.Application = application
	return nil
}

func (fs *fakeStore) PendingJobs(_ context.Context, limit int) ([]*store.JobRecord, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var pending []*store.JobRecord
	for _, job := range fs.jobs {
		if job.Status == store.StatusAnalyzed && job.Analysis.MatchScore > store.EligibilityThreshold {
			copied := *job
			pending = append(pending, &copied)
		}
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (fs *fakeStore) InsertResume(_ context.Context, resume *store.ResumeRecord) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}
	if resume.Version == 0 {
		for _, existing := range fs.resumes {
			if existing.JobID == resume.JobID && existing.Version >= resume.Version {
				resume.Version = existing.Version
			}
		}
		resume.Version++
	}
	fs.resumes = append(fs.resumes, resume)
	return nil
}

func (fs *fakeStore) ResumesForJob(_ context.Context, jobID uuid.UUID) ([]*store.ResumeRecord, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var resumes []*store.ResumeRecord
	for _, r := range fs.resumes {
		if r.JobID == jobID {
			resumes = append(resumes, r)
		}
	}
	return resumes, nil
}

func (fs *fakeStore) Close() {}

// stubClient answers structured calls by schema title and counts extraction
// calls. failJobText makes extraction fail for matching job descriptions.
type stubClient struct {
	mu           sync.Mutex
	extractCalls int
	failOn       string
}

func (c *stubClient) Generate(context.Context, llm.GenerateRequest) (string, error) {
	return "", nil
}

func (c *stubClient) GenerateStructured(_ context.Context, req llm.StructuredRequest) (map[string]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch req.Schema.Title {
	case "JobRequirements":
		c.extractCalls++
		if c.failOn != "" && strings.Contains(req.Prompt, c.failOn) {
			return nil, &llm.BackendError{Provider: "stub", Message: "backend down"}
		}
		return map[string]any{
			"required_skills":        []any{"Go"},
			"preferred_skills":       []any{},
			"years_experience":       3.0,
			"education_requirements": "Not specified",
			"key_responsibilities":   []any{"Build services"},
			"job_level":              "Senior",
			"keywords":               []any{"go"},
		}, nil
	case "ExperienceMatch":
		return map[string]any{
			"highlighted_experiences": []any{
				map[string]any{
					"company":       "Acme",
					"position":      "Engineer",
					"date_range":    "2019 - Present",
					"bullet_points": []any{"Shipped the platform."},
				},
			},
			"skills_to_emphasize":  []any{"Go", "PostgreSQL"},
			"professional_summary": "Seasoned engineer.",
			"match_score":          0.8,
			"relevance_reasoning":  "Strong overlap.",
		}, nil
	}
	return nil, &llm.ParseError{Message: "unknown schema"}
}

func (c *stubClient) Close() error { return nil }

type fakeRenderer struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (r *fakeRenderer) RenderFile(doc *render.Document, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.paths = append(r.paths, path)
	return nil
}

func sampleProfile() *types.CandidateProfile {
	return &types.CandidateProfile{
		User: types.User{
			Name: types.Name{First: "Jordan", Last: "Rivera"},
			Contact: types.Contact{
				Email: "jordan@example.com",
				Phone: "555-0100",
			},
		},
		Experiences: []types.Experience{{Company: "Acme", Title: "Engineer", StartDate: "2019"}},
	}
}

func analyzedJob(score float64) *store.JobRecord {
	return &store.JobRecord{
		ID:          uuid.New(),
		Company:     "Acme Corp",
		Title:       "Platform Engineer",
		Description: "Build Go services.",
		Status:      store.StatusAnalyzed,
		Analysis:    store.JobAnalysis{MatchScore: score},
	}
}

func newTestPipeline(fs *fakeStore, client *stubClient, renderer *fakeRenderer) *Pipeline {
	p := New(fs, client, renderer, "out")
	p.now = func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }
	return p
}

func TestProcessJobFullRun(t *testing.T) {
	job := analyzedJob(0.9)
	fs := newFakeStore(job)
	client := &stubClient{}
	renderer := &fakeRenderer{}
	p := newTestPipeline(fs, client, renderer)

	summary, err := p.ProcessJob(context.Background(), job.ID, sampleProfile())
	if err != nil {
		t.Fatal(err)
	}

	wantPath := filepath.Join("out", job.ID.String()+"_Acme_Corp_20260314.pdf")
	if summary.ResumePath != wantPath {
		t.Fatalf("resume path = %q, want %q", summary.ResumePath, wantPath)
	}
	if summary.MatchScore != 0.8 {
		t.Fatalf("match score = %v, want 0.8", summary.MatchScore)
	}
	if fs.jobs[job.ID].Status != store.StatusResumeGenerated {
		t.Fatalf("job status = %q", fs.jobs[job.ID].Status)
	}
	if len(fs.resumes) != 1 || fs.resumes[0].Version != 1 {
		t.Fatalf("resumes = %+v", fs.resumes)
	}
	if fs.jobs[job.ID].Application["resume_id"] != fs.resumes[0].ID.String() {
		t.Fatal("application does not reference the stored resume")
	}
}

func TestProcessJobSkipsExtractionWhenAnalyzed(t *testing.T) {
	job := analyzedJob(0.9)
	job.Analysis.RequiredSkills = []string{"Go"}
	fs := newFakeStore(job)
	client := &stubClient{}
	p := newTestPipeline(fs, client, &fakeRenderer{})

	if _, err := p.ProcessJob(context.Background(), job.ID, sampleProfile()); err != nil {
		t.Fatal(err)
	}
	if client.extractCalls != 0 {
		t.Fatalf("extraction calls = %d, want 0", client.extractCalls)
	}
}

func TestProcessJobExtractsWhenScoreOnly(t *testing.T) {
	// An intake score without requirements is not an analysis.
	job := analyzedJob(0.9)
	fs := newFakeStore(job)
	client := &stubClient{}
	p := newTestPipeline(fs, client, &fakeRenderer{})

	if _, err := p.ProcessJob(context.Background(), job.ID, sampleProfile()); err != nil {
		t.Fatal(err)
	}
	if client.extractCalls != 1 {
		t.Fatalf("extraction calls = %d, want 1", client.extractCalls)
	}
	stored := fs.jobs[job.ID].Analysis
	if stored.IsEmpty() {
		t.Fatal("requirements were not persisted")
	}
	if stored.MatchScore != 0.9 {
		t.Fatalf("stored match score = %v, want the intake score preserved", stored.MatchScore)
	}
}

func TestProcessJobUnknownJob(t *testing.T) {
	fs := newFakeStore()
	p := newTestPipeline(fs, &stubClient{}, &fakeRenderer{})

	_, err := p.ProcessJob(context.Background(), uuid.New(), sampleProfile())
	var nf *store.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestProcessPendingJobsIsolatesFailures(t *testing.T) {
	good1 := analyzedJob(0.9)
	bad := analyzedJob(0.8)
	bad.Description = "POISON job description"
	good2 := analyzedJob(0.7)
	fs := newFakeStore(good1, bad, good2)
	client := &stubClient{failOn: "POISON"}
	p := newTestPipeline(fs, client, &fakeRenderer{})

	summaries, err := p.ProcessPendingJobs(context.Background(), sampleProfile(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}
	for _, s := range summaries {
		if s.JobID == bad.ID {
			t.Fatal("failed job appeared in summaries")
		}
	}
	if fs.jobs[bad.ID].Status == store.StatusResumeGenerated {
		t.Fatal("failed job was marked generated")
	}
}

func TestProcessPendingJobsHonorsGate(t *testing.T) {
	ineligible := analyzedJob(0.4)
	generated := analyzedJob(0.9)
	generated.Status = store.StatusResumeGenerated
	fs := newFakeStore(ineligible, generated)
	p := newTestPipeline(fs, &stubClient{}, &fakeRenderer{})

	summaries, err := p.ProcessPendingJobs(context.Background(), sampleProfile(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 0 {
		t.Fatalf("summaries = %d, want 0", len(summaries))
	}
}

func TestArtifactFilename(t *testing.T) {
	id := uuid.MustParse("a2f1c7de-0000-4000-8000-000000000001")
	now := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	got := artifactFilename(id, "Marley Spoon/US", now)
	want := "a2f1c7de-0000-4000-8000-000000000001_Marley_Spoon_US_20260105.pdf"
	if got != want {
		t.Fatalf("filename = %q, want %q", got, want)
	}
}
