// Package profile loads and validates the candidate's professional profile.
package profile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-forge/internal/types"
)

var validate = validator.New()

// Load reads a candidate profile from a JSON file and validates the fields
// resume generation cannot run without.
func Load(path string) (*types.CandidateProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates profile JSON.
func Parse(data []byte) (*types.CandidateProfile, error) {
	var p types.CandidateProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks structural requirements: a named candidate with reachable
// contact details and at least one experience to draw from.
func Validate(p *types.CandidateProfile) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	if len(p.Experiences) == 0 {
		return fmt.Errorf("invalid profile: no experiences to match against")
	}
	return nil
}
