package types

// HighlightedExperience is one selected experience with rewritten bullets.
type HighlightedExperience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	DateRange    string   `json:"date_range,omitempty"`
	BulletPoints []string `json:"bullet_points"`
	// Highlights lists substrings to render in bold where they occur
	// verbatim inside a bullet point.
	Highlights []string `json:"highlights,omitempty"`
}

// TailoredContent is the output of the experience matching stage: the content
// selected and rephrased for one job. A new record is produced per processing
// attempt; records are never deduplicated.
type TailoredContent struct {
	HighlightedExperiences []HighlightedExperience `json:"highlighted_experiences"`
	SkillsToEmphasize      []string                `json:"skills_to_emphasize"`
	ProfessionalSummary    string                  `json:"professional_summary"`
	MatchScore             float64                 `json:"match_score"`
	RelevanceReasoning     string                  `json:"relevance_reasoning"`
}
