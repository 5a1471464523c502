// Package render lays out a tailored resume as typed text blocks and writes
// them to PDF. Layout is split in two: BuildBlocks is a pure function from
// document plus style sheet to a block list, and Renderer walks the blocks
// with a PDF writer.
package render

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-forge/internal/types"
)

// PersonalInfo is the header data for one resume.
type PersonalInfo struct {
	Name     string `validate:"required"`
	JobTitle string
	Email    string `validate:"required,email"`
	Phone    string `validate:"required"`
	LinkedIn string
	Location string
}

// Document is everything one rendered resume contains.
type Document struct {
	PersonalInfo   PersonalInfo
	Summary        string
	Skills         []string
	Experiences    []types.HighlightedExperience
	Education      []types.Education
	Certifications []types.Certification
}

var validate = validator.New()

// NewDocument assembles a renderable document from the candidate profile and
// the tailored content produced for one job.
func NewDocument(profile *types.CandidateProfile, content *types.TailoredContent, jobTitle string) *Document {
	return &Document{
		PersonalInfo: PersonalInfo{
			Name:     profile.FullName(),
			JobTitle: jobTitle,
			Email:    profile.User.Contact.Email,
			Phone:    profile.User.Contact.Phone,
			LinkedIn: profile.User.Contact.LinkedIn,
			Location: profile.LocationLine(),
		},
		Summary:        content.ProfessionalSummary,
		Skills:         content.SkillsToEmphasize,
		Experiences:    content.HighlightedExperiences,
		Education:      profile.Education,
		Certifications: profile.Certifications,
	}
}

// Validate checks the fields a resume cannot go out without.
func (d *Document) Validate() error {
	if err := validate.Struct(d.PersonalInfo); err != nil {
		return &ValidationError{Message: "incomplete personal information", Cause: err}
	}
	return nil
}

// contactLine joins the populated contact fields with the header separator.
func (d *Document) contactLine() string {
	parts := make([]string, 0, 4)
	for _, part := range []string{d.PersonalInfo.Email, d.PersonalInfo.Phone, d.PersonalInfo.LinkedIn, d.PersonalInfo.Location} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " | ")
}
