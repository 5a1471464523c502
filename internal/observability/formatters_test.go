package observability

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-forge/internal/pipeline"
	"github.com/jonathan/resume-forge/internal/types"
)

func TestPrintRequirements(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	reqs := &types.Requirements{
		RequiredSkills:      []string{"Go", "PostgreSQL", "Kubernetes", "Docker", "Terraform", "Kafka"},
		PreferredSkills:     []string{"Rust"},
		YearsExperience:     3,
		JobLevel:            "Senior",
		KeyResponsibilities: []string{"Build services"},
	}

	p.PrintRequirements(reqs)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED REQUIREMENTS")
	assert.Contains(t, output, "Senior")
	assert.Contains(t, output, "3 years")
	assert.Contains(t, output, "Go")
	assert.Contains(t, output, "Rust")
	assert.Contains(t, output, "... and 1 more")
}

func TestPrintRequirements_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRequirements(nil)

	assert.Empty(t, buf.String())
}

func TestPrintTailoredContent(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	content := &types.TailoredContent{
		HighlightedExperiences: []types.HighlightedExperience{
			{Company: "Acme", Position: "Engineer", BulletPoints: []string{"a", "b", "c"}},
		},
		SkillsToEmphasize:  []string{"Go", "PostgreSQL"},
		MatchScore:         0.85,
		RelevanceReasoning: "Strong overlap",
	}

	p.PrintTailoredContent(content)
	output := buf.String()

	assert.Contains(t, output, "TAILORED CONTENT")
	assert.Contains(t, output, "0.85")
	assert.Contains(t, output, "Engineer @ Acme")
	assert.Contains(t, output, "Bullets: 3")
	assert.Contains(t, output, "Strong overlap")
}

func TestPrintSummaries(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	summaries := []*pipeline.Summary{
		{JobID: uuid.New(), MatchScore: 0.8, ResumePath: "out/a.pdf"},
		{JobID: uuid.New(), MatchScore: 0.7, ResumePath: "out/b.pdf"},
	}

	p.PrintSummaries(summaries)
	output := buf.String()

	assert.Contains(t, output, "BATCH RESULTS")
	assert.Contains(t, output, "Resumes generated: 2")
	assert.Contains(t, output, "out/a.pdf")
	assert.Contains(t, output, "0.70")
}
