// Package parsing converts raw provider payloads into the canonical CV data
// model. Provider schemas are untrusted: every logical field is resolved
// through an ordered candidate-key list rather than fixed struct decoding.
package parsing

import (
	"time"

	"github.com/cvera/cv-import/internal/experience"
	"github.com/cvera/cv-import/internal/skills"
	"github.com/cvera/cv-import/internal/types"
)

// Normalizer turns one raw external payload into one NormalizedProfile.
// It is deterministic given its inputs and the injected clock.
type Normalizer struct {
	durations *DurationParser
	skills    skills.Aggregator
}

// NewNormalizer constructs a Normalizer. A nil clock defaults to time.Now;
// maxSkills <= 0 uses the default cap.
func NewNormalizer(now func() time.Time, maxSkills int) *Normalizer {
	return &Normalizer{
		durations: NewDurationParser(now),
		skills:    skills.Aggregator{Max: maxSkills},
	}
}

// Normalize builds the canonical profile from a raw payload plus skills
// gathered from the supplementary provider. Missing optional fields become
// empty values; only a payload with no name, headline, summary, and no
// experience fails, with an EmptyProfileError.
func (n *Normalizer) Normalize(raw types.RawProfile, supplementarySkills []string) (*types.NormalizedProfile, error) {
	if raw == nil {
		return nil, &EmptyProfileError{}
	}

	info := n.personalInfo(raw)
	generic := n.experienceEntries(raw)

	if info.FullName == "" && info.Headline == "" && info.Summary == "" && len(generic) == 0 {
		return nil, &EmptyProfileError{Identifier: info.ProfileURL}
	}

	paid, volunteer := experience.Classify(generic)
	volunteer = append(volunteer, n.explicitVolunteerEntries(raw)...)

	primarySkills := skills.ExtractNames(ResolveList(raw, "skills", "skill_list"))

	return &types.NormalizedProfile{
		PersonalInfo:        info,
		Experience:          paid,
		Education:           n.educationEntries(raw),
		Skills:              n.skills.Merge(primarySkills, supplementarySkills),
		Languages:           n.languageEntries(raw),
		Projects:            n.projectEntries(raw),
		Certifications:      n.certificationEntries(raw),
		VolunteerExperience: volunteer,
	}, nil
}

func (n *Normalizer) personalInfo(raw types.RawProfile) types.PersonalInfo {
	contact := types.RawProfile{}
	if m, ok := Resolve(raw, "contact_info", "contactInfo"); ok {
		if cm, ok := m.(map[string]any); ok {
			contact = types.RawProfile(cm)
		}
	}

	email := ResolveString(raw, "email", "email_address")
	if email == "" {
		email = ResolveString(contact, "email")
	}
	phone := ResolveString(raw, "phone", "phone_number", "phoneNumber")
	if phone == "" {
		phone = ResolveString(contact, "phone")
	}

	return types.PersonalInfo{
		FullName:   CleanText(ResolveString(raw, "name", "full_name", "fullName")),
		Headline:   CleanText(ResolveString(raw, "headline", "title", "position")),
		Email:      email,
		Phone:      phone,
		Location:   CleanText(ResolveString(raw, "location", "geo_location", "city")),
		ProfileURL: ResolveString(raw, "public_profile_url", "url", "input_url", "linkedin_url"),
		Summary:    StripMarkup(ResolveString(raw, "about", "summary", "description")),
	}
}

func (n *Normalizer) experienceEntries(raw types.RawProfile) []types.ExperienceEntry {
	records := ResolveMapList(raw, "experience", "experiences", "work_experience", "positions")
	entries := make([]types.ExperienceEntry, 0, len(records))
	for _, record := range records {
		entry := types.ExperienceEntry{
			Title:        CleanText(ResolveString(record, "position", "title", "job_title")),
			Organization: CleanText(ResolveString(record, "company_name", "company", "organization")),
			DateRange:    n.durations.Parse(map[string]any(record)),
			Description:  StripMarkup(ResolveString(record, "summary", "description")),
			IsVolunteer:  ResolveBool(record, "is_volunteer", "volunteer"),
			Location:     CleanText(ResolveString(record, "location")),
		}
		if entry.Title == "" && entry.Organization == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// explicitVolunteerEntries reads the provider's dedicated volunteer list.
// These arrive pre-classified and bypass the keyword heuristic.
func (n *Normalizer) explicitVolunteerEntries(raw types.RawProfile) []types.ExperienceEntry {
	records := ResolveMapList(raw, "volunteering", "volunteer_experience", "volunteerExperience")
	entries := make([]types.ExperienceEntry, 0, len(records))
	for _, record := range records {
		entry := types.ExperienceEntry{
			Title:        CleanText(ResolveString(record, "role", "position", "title")),
			Organization: CleanText(ResolveString(record, "organization", "company")),
			DateRange:    n.durations.Parse(map[string]any(record)),
			Description:  StripMarkup(ResolveString(record, "summary", "description", "cause")),
			IsVolunteer:  true,
		}
		if entry.Title == "" && entry.Organization == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func (n *Normalizer) educationEntries(raw types.RawProfile) []types.EducationEntry {
	records := ResolveMapList(raw, "education", "educations_details", "educations")
	entries := make([]types.EducationEntry, 0, len(records))
	for _, record := range records {
		entry := types.EducationEntry{
			Institution: CleanText(ResolveString(record, "college_name", "school", "institution", "university")),
			Degree:      CleanText(ResolveString(record, "college_degree", "degree", "qualification")),
			Field:       CleanText(ResolveString(record, "college_degree_field", "field_of_study", "field")),
			DateRange:   n.durations.Parse(map[string]any(record)),
			Description: StripMarkup(ResolveString(record, "college_activity", "description", "activities")),
		}
		if entry.Institution == "" && entry.Degree == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func (n *Normalizer) languageEntries(raw types.RawProfile) []types.LanguageEntry {
	items := ResolveList(raw, "languages")
	entries := make([]types.LanguageEntry, 0, len(items))
	for _, item := range items {
		var entry types.LanguageEntry
		switch v := item.(type) {
		case string:
			// Bare strings carry no level; default follows the provider docs.
			entry = types.LanguageEntry{Name: CleanText(v), Proficiency: "Professional"}
		case map[string]any:
			record := types.RawProfile(v)
			entry = types.LanguageEntry{
				Name:        CleanText(ResolveString(record, "name", "language")),
				Proficiency: CleanText(ResolveString(record, "proficiency", "level")),
			}
			if entry.Proficiency == "" {
				entry.Proficiency = "Professional"
			}
		}
		if entry.Name == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func (n *Normalizer) projectEntries(raw types.RawProfile) []types.ProjectEntry {
	records := ResolveMapList(raw, "projects")
	entries := make([]types.ProjectEntry, 0, len(records))
	for _, record := range records {
		entry := types.ProjectEntry{
			Name:         CleanText(ResolveString(record, "title", "name")),
			Description:  StripMarkup(ResolveString(record, "description", "summary")),
			DateRange:    n.durations.Parse(map[string]any(record)),
			Technologies: technologies(record),
			URL:          ResolveString(record, "link", "url"),
		}
		if entry.Name == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// certificationEntries merges the provider's certification list with awards
// and honors, which one provider reports as a separate section of the same
// shape.
func (n *Normalizer) certificationEntries(raw types.RawProfile) []types.CertificationEntry {
	entries := make([]types.CertificationEntry, 0, 4)
	for _, keys := range [][]string{
		{"certification", "certifications"},
		{"awards", "honors_and_awards"},
	} {
		for _, record := range ResolveMapList(raw, keys...) {
			entry := types.CertificationEntry{
				Name:   CleanText(ResolveString(record, "name", "title")),
				Issuer: CleanText(ResolveString(record, "organization", "authority", "issuer")),
				Date:   CleanText(ResolveString(record, "duration", "date", "issued_date", "issue_date")),
				URL:    ResolveString(record, "url", "credential_url"),
			}
			if entry.Name == "" {
				continue
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

func technologies(record types.RawProfile) string {
	value, ok := Resolve(record, "technologies", "skills")
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case string:
		return CleanText(v)
	case []any:
		names := skills.ExtractNames(v)
		return joinComma(names)
	default:
		return ""
	}
}

func joinComma(names []string) string {
	if len(names) == 0 {
		return ""
	}
	result := names[0]
	for _, name := range names[1:] {
		result += ", " + name
	}
	return result
}
