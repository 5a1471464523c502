// Package analysis extracts a normalized requirement record from free-text
// job postings using schema-constrained generation.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/prompts"
	"github.com/jonathan/resume-forge/internal/schemas"
	"github.com/jonathan/resume-forge/internal/types"
)

// ExtractRequirements analyzes a job posting and returns its requirement
// record. The prompt carries two worked few-shot examples that anchor both
// the output schema and the numeric-minimum convention for experience ranges
// ("3-5 years" yields 3); they are the only enforcement of those conventions,
// so generated fields are stored as-is without coercion.
func ExtractRequirements(ctx context.Context, client llm.Client, jobText string) (*types.Requirements, error) {
	if strings.TrimSpace(jobText) == "" {
		return nil, fmt.Errorf("job posting text is empty")
	}

	prompt := prompts.Format(prompts.MustGet("analysis.json", "extract-requirements"), map[string]string{
		"JobDescription": jobText,
	})

	payload, err := client.GenerateStructured(ctx, llm.StructuredRequest{
		Prompt:        prompt,
		SystemMessage: prompts.MustGet("analysis.json", "extract-requirements-system"),
		Schema: llm.Schema{
			Title:  "JobRequirements",
			Source: schemas.MustRead(schemas.RequirementsFile),
		},
	})
	if err != nil {
		return nil, err
	}

	var reqs types.Requirements
	if err := llm.Decode(payload, &reqs); err != nil {
		return nil, &llm.ParseError{
			Message: "requirement record has unexpected shape",
			Cause:   err,
		}
	}

	return &reqs, nil
}
