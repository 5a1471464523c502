package types

import "strings"

// Name is a candidate's first/last name pair.
type Name struct {
	First string `json:"first" validate:"required"`
	Last  string `json:"last" validate:"required"`
}

// Location is a city/state pair used on the contact line.
type Location struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// Contact holds the candidate's contact details.
type Contact struct {
	Email    string   `json:"email" validate:"required,email"`
	Phone    string   `json:"phone" validate:"required"`
	LinkedIn string   `json:"linkedin"`
	Location Location `json:"location"`
}

// User groups identity and contact information.
type User struct {
	Name    Name    `json:"name"`
	Contact Contact `json:"contact"`
}

// Skill is one entry in the candidate's skill inventory.
type Skill struct {
	Name  string  `json:"name"`
	Years float64 `json:"years,omitempty"`
	Level string  `json:"level,omitempty"`
}

// Experience is one role in the candidate's work history.
type Experience struct {
	Company      string   `json:"company"`
	Title        string   `json:"title"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Education is one degree entry.
type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Location    string `json:"location,omitempty"`
	DateRange   string `json:"date_range,omitempty"`
}

// Certification is a name-only certification entry.
type Certification struct {
	Name string `json:"name"`
}

// CandidateProfile is the candidate's full professional profile, loaded once
// per run and shared read-only across jobs.
type CandidateProfile struct {
	User           User            `json:"user"`
	Skills         []Skill         `json:"skills"`
	Experiences    []Experience    `json:"experiences"`
	Education      []Education     `json:"education,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
}

// FullName returns "First Last" with surrounding whitespace trimmed.
func (p *CandidateProfile) FullName() string {
	return strings.TrimSpace(p.User.Name.First + " " + p.User.Name.Last)
}

// LocationLine returns "City, State" or an empty string when unset.
func (p *CandidateProfile) LocationLine() string {
	loc := p.User.Contact.Location
	switch {
	case loc.City != "" && loc.State != "":
		return loc.City + ", " + loc.State
	case loc.City != "":
		return loc.City
	default:
		return loc.State
	}
}
