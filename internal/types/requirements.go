// Package types defines the shared data model for the resume synthesis pipeline.
package types

// Requirements is the normalized requirement record extracted from a job
// posting. Fields are stored exactly as generated; no coercion is applied.
type Requirements struct {
	RequiredSkills        []string `json:"required_skills"`
	PreferredSkills       []string `json:"preferred_skills"`
	YearsExperience       float64  `json:"years_experience"`
	EducationRequirements string   `json:"education_requirements"`
	KeyResponsibilities   []string `json:"key_responsibilities"`
	JobLevel              string   `json:"job_level"`
	Keywords              []string `json:"keywords"`
}

// IsEmpty reports whether the record carries no extracted content.
// A record that only holds an intake match score (written by an upstream
// scorer) is considered empty and does not satisfy the idempotent-skip check.
func (r *Requirements) IsEmpty() bool {
	if r == nil {
		return true
	}
	return len(r.RequiredSkills) == 0 &&
		len(r.PreferredSkills) == 0 &&
		len(r.KeyResponsibilities) == 0 &&
		len(r.Keywords) == 0 &&
		r.EducationRequirements == "" &&
		r.JobLevel == ""
}
