// Package experience classifies normalized experience entries into paid and
// volunteer partitions.
package experience

import (
	"strings"

	"github.com/cvera/cv-import/internal/types"
)

// volunteerTerms are the signals that reclassify a generic experience entry
// as volunteer work. The match is recall-oriented: a paid role at a
// non-profit can be miscast as volunteer, which is an accepted limitation
// because many providers carry no structured volunteer signal at all.
var volunteerTerms = []string{
	"volunteer",
	"volunteering",
	"könüllü",
	"charity",
	"non-profit",
	"nonprofit",
	"ngo",
	"civic",
	"community service",
	"humanitarian",
	"red cross",
	"red crescent",
}

// Classify partitions entries into paid and volunteer experience. Entries the
// source explicitly marked as volunteer are trusted; the rest are scanned for
// volunteer terms across title, organization, and description
// (case-insensitive). Every input entry lands in exactly one partition, and
// source order is preserved within each.
func Classify(entries []types.ExperienceEntry) (paid, volunteer []types.ExperienceEntry) {
	paid = make([]types.ExperienceEntry, 0, len(entries))
	volunteer = make([]types.ExperienceEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.IsVolunteer || matchesVolunteerTerm(entry) {
			entry.IsVolunteer = true
			volunteer = append(volunteer, entry)
			continue
		}
		paid = append(paid, entry)
	}
	return paid, volunteer
}

func matchesVolunteerTerm(entry types.ExperienceEntry) bool {
	haystack := strings.ToLower(entry.Title + " " + entry.Organization + " " + entry.Description)
	for _, term := range volunteerTerms {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}
