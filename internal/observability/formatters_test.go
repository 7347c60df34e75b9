package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cvera/cv-import/internal/types"
)

func TestPrinter_PrintProfileSummary(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintProfileSummary(&types.NormalizedProfile{
		PersonalInfo: types.PersonalInfo{
			FullName: "Jane Doe",
			Headline: "Staff Engineer",
			Location: "Berlin, Germany",
		},
		Experience: []types.ExperienceEntry{
			{Title: "Staff Engineer", Organization: "Acme Corp"},
		},
		VolunteerExperience: []types.ExperienceEntry{
			{Title: "Mentor", Organization: "Code Club", IsVolunteer: true},
		},
		Education: []types.EducationEntry{
			{Institution: "TU Berlin", Degree: "BSc"},
		},
		Skills: types.SkillSet{"Go", "PostgreSQL"},
	})

	out := buf.String()
	assert.Contains(t, out, "Imported Profile")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "Staff Engineer @ Acme Corp")
	assert.Contains(t, out, "Mentor @ Code Club")
	assert.Contains(t, out, "TU Berlin (BSc)")
	assert.Contains(t, out, "Go, PostgreSQL")
}

func TestPrinter_PrintProfileSummary_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	profile := &types.NormalizedProfile{
		PersonalInfo: types.PersonalInfo{FullName: "Jane Doe"},
	}
	for i := 0; i < 8; i++ {
		profile.Experience = append(profile.Experience, types.ExperienceEntry{
			Title: "Role", Organization: "Org",
		})
	}

	printer.PrintProfileSummary(profile)
	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrinter_PrintProfileSummary_NilProfile(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProfileSummary(nil)
	assert.Empty(t, buf.String())
}

func TestPrinter_PrintQuotaStatus(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintQuotaStatus(types.TierFree, 1, 1)
	out := buf.String()
	assert.Contains(t, out, "Daily Import Quota")
	assert.Contains(t, out, "Tier:      Free")
	assert.Contains(t, out, "Used:      1")
	assert.Contains(t, out, "Remaining: 1")

	buf.Reset()
	printer.PrintQuotaStatus(types.TierPremium, 12, types.UnlimitedImports)
	assert.Contains(t, buf.String(), "Remaining: unlimited")
}
