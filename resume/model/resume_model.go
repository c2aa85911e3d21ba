package model

import "strings"

// ParsedResume is the canonical structured record produced by ingestion and
// consumed by layout/rendering. Every field is present with an empty value
// rather than absent, so downstream code never branches on missing-vs-empty.
type ParsedResume struct {
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	Location       string       `json:"location"`
	Title          string       `json:"title"`
	Summary        string       `json:"summary"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Skills         []string     `json:"skills"`
	Certifications []string     `json:"certifications"`
}

// Experience represents a work history entry.
type Experience struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Period      string   `json:"period,omitempty"`
	Description string   `json:"description,omitempty"`
	Bullets     []string `json:"bullets,omitempty"`
}

// Education represents an education entry.
type Education struct {
	Degree  string `json:"degree"`
	School  string `json:"school,omitempty"`
	Year    string `json:"year,omitempty"`
	Details string `json:"details,omitempty"`
}

// Normalize replaces nil slices with empty ones and trims surrounding
// whitespace in scalar fields. It returns the receiver for chaining.
func (r *ParsedResume) Normalize() *ParsedResume {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Location = strings.TrimSpace(r.Location)
	r.Title = strings.TrimSpace(r.Title)
	r.Summary = strings.TrimSpace(r.Summary)
	if r.Experience == nil {
		r.Experience = []Experience{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.Certifications == nil {
		r.Certifications = []string{}
	}
	return r
}

// IsEmpty reports whether the record carries no extracted content at all.
func (r ParsedResume) IsEmpty() bool {
	return r.Name == "" && r.Email == "" && r.Phone == "" && r.Title == "" &&
		r.Summary == "" && len(r.Experience) == 0 && len(r.Education) == 0 &&
		len(r.Skills) == 0 && len(r.Certifications) == 0
}

// ContactLine joins the available contact fields for header display,
// location first, then phone, then email.
func (r ParsedResume) ContactLine() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{r.Location, r.Phone, r.Email} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " | ")
}
