// Package types provides type definitions for the canonical CV data model
// produced by the import pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// RawProfile is an untyped, provider-shaped payload as returned by the
// scraping API. Key names vary per provider and per API version; it is read
// once by the normalizer and discarded.
type RawProfile map[string]any

// DateRange represents a period as human-readable "Mon YYYY" tokens, matching
// the display granularity of the source data. If Current is true, EndDate is
// the literal token "Present".
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Current   bool   `json:"current"`
}

// ExperienceEntry represents one employment or civic-engagement record.
// IsVolunteer is derived once at normalization time and never changes.
type ExperienceEntry struct {
	Title        string    `json:"title"`
	Organization string    `json:"organization"`
	DateRange    DateRange `json:"date_range"`
	Description  string    `json:"description,omitempty"`
	IsVolunteer  bool      `json:"is_volunteer"`
	Location     string    `json:"location,omitempty"`
}

// EducationEntry represents one education record.
type EducationEntry struct {
	Institution string    `json:"institution"`
	Degree      string    `json:"degree,omitempty"`
	Field       string    `json:"field,omitempty"`
	DateRange   DateRange `json:"date_range"`
	Description string    `json:"description,omitempty"`
}

// CertificationEntry represents a certification, award, or honor.
type CertificationEntry struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
	URL    string `json:"url,omitempty"`
}

// ProjectEntry represents a personal or professional project.
type ProjectEntry struct {
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	DateRange    DateRange `json:"date_range"`
	Technologies string    `json:"technologies,omitempty"`
	URL          string    `json:"url,omitempty"`
}

// LanguageEntry represents a spoken language with a proficiency level.
type LanguageEntry struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
}

// PersonalInfo holds the identity section of a CV.
type PersonalInfo struct {
	FullName   string `json:"full_name"`
	Headline   string `json:"headline,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Location   string `json:"location,omitempty"`
	ProfileURL string `json:"profile_url,omitempty"`
	Summary    string `json:"summary,omitempty"`
}

// SkillSet is an ordered list of skill names, unique under case-insensitive
// comparison. The first-seen casing wins for display.
type SkillSet []string

// Contains reports whether the set already holds name under case-insensitive
// comparison.
func (s SkillSet) Contains(name string) bool {
	for _, existing := range s {
		if strings.EqualFold(existing, name) {
			return true
		}
	}
	return false
}

// NormalizedProfile is the canonical output of the import pipeline. It is
// constructed once per import attempt and immutable after construction.
// Experience and VolunteerExperience are disjoint partitions of the same
// source experience list.
type NormalizedProfile struct {
	PersonalInfo        PersonalInfo         `json:"personal_info"`
	Experience          []ExperienceEntry    `json:"experience"`
	Education           []EducationEntry     `json:"education"`
	Skills              SkillSet             `json:"skills"`
	Languages           []LanguageEntry      `json:"languages"`
	Projects            []ProjectEntry       `json:"projects"`
	Certifications      []CertificationEntry `json:"certifications"`
	VolunteerExperience []ExperienceEntry    `json:"volunteer_experience"`
}
