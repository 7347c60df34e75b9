package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cvera/cv-import/internal/types"
)

func TestResolve_PriorityOrder(t *testing.T) {
	record := types.RawProfile{
		"position": "Senior Engineer",
		"title":    "Engineer",
	}

	value, ok := Resolve(record, "position", "title", "job_title")
	assert.True(t, ok)
	assert.Equal(t, "Senior Engineer", value)
}

func TestResolve_FallsThroughEmptyValues(t *testing.T) {
	record := types.RawProfile{
		"position":  "   ",
		"title":     nil,
		"job_title": "Engineer",
	}

	value, ok := Resolve(record, "position", "title", "job_title")
	assert.True(t, ok)
	assert.Equal(t, "Engineer", value)
}

func TestResolve_EmptyCollectionsCountAsAbsent(t *testing.T) {
	record := types.RawProfile{
		"skills":     []any{},
		"experience": map[string]any{},
	}

	_, ok := Resolve(record, "skills")
	assert.False(t, ok)
	_, ok = Resolve(record, "experience")
	assert.False(t, ok)
	_, ok = Resolve(record, "missing")
	assert.False(t, ok)
}

func TestResolveString_Coercion(t *testing.T) {
	record := types.RawProfile{
		"year":    float64(2019),
		"ratio":   float64(2.5),
		"count":   7,
		"flag":    true,
		"name":    "  Jane Doe  ",
		"complex": []any{"not", "scalar"},
	}

	assert.Equal(t, "2019", ResolveString(record, "year"))
	assert.Equal(t, "2.5", ResolveString(record, "ratio"))
	assert.Equal(t, "7", ResolveString(record, "count"))
	assert.Equal(t, "true", ResolveString(record, "flag"))
	assert.Equal(t, "Jane Doe", ResolveString(record, "name"))
	assert.Equal(t, "", ResolveString(record, "complex"))
	assert.Equal(t, "", ResolveString(record, "missing"))
}

func TestResolveBool(t *testing.T) {
	record := types.RawProfile{
		"a": true,
		"b": "yes",
		"c": "True",
		"d": "no",
		"e": float64(1),
	}

	assert.True(t, ResolveBool(record, "a"))
	assert.True(t, ResolveBool(record, "b"))
	assert.True(t, ResolveBool(record, "c"))
	assert.False(t, ResolveBool(record, "d"))
	assert.False(t, ResolveBool(record, "e"))
	assert.False(t, ResolveBool(record, "missing"))
}

func TestResolveList_PromotesScalar(t *testing.T) {
	record := types.RawProfile{
		"skills":   "Go",
		"projects": []any{"one", "two"},
	}

	assert.Equal(t, []any{"Go"}, ResolveList(record, "skills"))
	assert.Equal(t, []any{"one", "two"}, ResolveList(record, "projects"))
	assert.Nil(t, ResolveList(record, "missing"))
}

func TestResolveMapList_SkipsNonObjects(t *testing.T) {
	record := types.RawProfile{
		"experience": []any{
			map[string]any{"title": "Engineer"},
			"stray string",
			map[string]any{"title": "Manager"},
		},
	}

	records := ResolveMapList(record, "experience")
	assert.Len(t, records, 2)
	assert.Equal(t, "Engineer", records[0]["title"])
	assert.Equal(t, "Manager", records[1]["title"])
}
