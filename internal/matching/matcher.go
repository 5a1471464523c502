// Package matching selects and rephrases profile content against a
// requirement record, producing tailored resume content.
package matching

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/prompts"
	"github.com/jonathan/resume-forge/internal/schemas"
	"github.com/jonathan/resume-forge/internal/types"
)

// MatchExperiences produces tailored content for one job. The match score in
// the result is the model's own estimate of requirement fit and is treated as
// authoritative; no independent scoring happens downstream.
func MatchExperiences(ctx context.Context, client llm.Client, reqs *types.Requirements, profile *types.CandidateProfile) (*types.TailoredContent, error) {
	if reqs == nil {
		return nil, fmt.Errorf("requirements record is nil")
	}
	if profile == nil {
		return nil, fmt.Errorf("candidate profile is nil")
	}

	prompt := prompts.Format(prompts.MustGet("matching.json", "match-experiences"), map[string]string{
		"RequiredSkills":   strings.Join(reqs.RequiredSkills, ", "),
		"PreferredSkills":  strings.Join(reqs.PreferredSkills, ", "),
		"YearsExperience":  formatYears(reqs.YearsExperience),
		"Education":        orNotSpecified(reqs.EducationRequirements),
		"Responsibilities": strings.Join(reqs.KeyResponsibilities, ", "),
		"JobLevel":         orNotSpecified(reqs.JobLevel),
		"Skills":           formatSkills(profile.Skills),
		"Experiences":      formatExperiences(profile.Experiences),
	})

	payload, err := client.GenerateStructured(ctx, llm.StructuredRequest{
		Prompt:        prompt,
		SystemMessage: prompts.MustGet("matching.json", "match-experiences-system"),
		Schema: llm.Schema{
			Title:  "ExperienceMatch",
			Source: schemas.MustRead(schemas.TailoredContentFile),
		},
	})
	if err != nil {
		return nil, err
	}

	var content types.TailoredContent
	if err := llm.Decode(payload, &content); err != nil {
		return nil, &llm.ParseError{
			Message: "tailored content has unexpected shape",
			Cause:   err,
		}
	}

	return &content, nil
}

func formatYears(years float64) string {
	if years <= 0 {
		return "Not specified"
	}
	if years == float64(int(years)) {
		return fmt.Sprintf("%d", int(years))
	}
	return fmt.Sprintf("%.1f", years)
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}

// formatSkills renders the skill inventory as a comma-separated list.
func formatSkills(skills []types.Skill) string {
	names := make([]string, 0, len(skills))
	for _, skill := range skills {
		names = append(names, skill.Name)
	}
	return strings.Join(names, ", ")
}

// formatExperiences renders the work history as labeled blocks, one per role.
func formatExperiences(experiences []types.Experience) string {
	blocks := make([]string, 0, len(experiences))
	for _, exp := range experiences {
		var sb strings.Builder
		sb.WriteString("Company: " + exp.Company + "\n")
		sb.WriteString("Position: " + exp.Title + "\n")
		end := exp.EndDate
		if end == "" {
			end = "Present"
		}
		sb.WriteString("Duration: " + exp.StartDate + " to " + end + "\n")
		sb.WriteString("Description: " + exp.Description + "\n")
		sb.WriteString("Achievements:")
		for _, a := range exp.Achievements {
			sb.WriteString("\n- " + a)
		}
		blocks = append(blocks, sb.String())
	}
	return strings.Join(blocks, "\n\n")
}
