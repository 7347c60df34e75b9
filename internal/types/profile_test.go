package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillSet_Contains(t *testing.T) {
	set := SkillSet{"Go", "PostgreSQL"}

	assert.True(t, set.Contains("Go"))
	assert.True(t, set.Contains("go"))
	assert.True(t, set.Contains("postgresql"))
	assert.False(t, set.Contains("Rust"))
	assert.False(t, SkillSet(nil).Contains("Go"))
}

func TestNormalizedProfile_JSONShape(t *testing.T) {
	profile := NormalizedProfile{
		PersonalInfo: PersonalInfo{FullName: "Jane Doe"},
		Experience: []ExperienceEntry{
			{
				Title:        "Engineer",
				Organization: "Acme",
				DateRange:    DateRange{StartDate: "Jan 2020", EndDate: "Present", Current: true},
			},
		},
		Skills: SkillSet{"Go"},
	}

	jsonBytes, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"full_name":"Jane Doe"`)
	assert.Contains(t, string(jsonBytes), `"start_date":"Jan 2020"`)
	assert.Contains(t, string(jsonBytes), `"current":true`)
	assert.Contains(t, string(jsonBytes), `"is_volunteer":false`)
	assert.Contains(t, string(jsonBytes), `"volunteer_experience":null`)
}

func TestDateRange_RoundTrip(t *testing.T) {
	input := `{"start_date": "Mar 2022", "end_date": "Jun 2024", "current": false}`

	var dr DateRange
	require.NoError(t, json.Unmarshal([]byte(input), &dr))
	assert.Equal(t, DateRange{StartDate: "Mar 2022", EndDate: "Jun 2024"}, dr)
}
