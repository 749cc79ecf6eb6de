package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/speedarch/speedarch/pkg/types"
)

func TestInsertOnce(t *testing.T) {
	c := New()
	c.CachePlatforms([]types.Platform{{ID: "p1", Name: "SNES"}})

	// Re-insertion of an existing ID is a no-op.
	c.CachePlatforms([]types.Platform{{ID: "p1", Name: "renamed"}})

	name, ok := c.Platform("p1")
	assert.True(t, ok)
	assert.Equal(t, "SNES", name)
}

func TestLookupMiss(t *testing.T) {
	c := New()

	_, ok := c.Region("missing")
	assert.False(t, ok)

	_, ok = c.Level("missing")
	assert.False(t, ok)

	_, ok = c.Variable("missing")
	assert.False(t, ok)
}

func TestVariableKeepsValueMapping(t *testing.T) {
	c := New()
	c.CacheVariables([]types.Variable{
		{ID: "v1", Name: "Difficulty", Values: map[string]string{"easy": "Easy", "hard": "Hard"}},
	})

	v, ok := c.Variable("v1")
	assert.True(t, ok)
	assert.Equal(t, "Difficulty", v.Name)
	assert.Equal(t, "Hard", v.Values["hard"])
}

func TestClearEmptiesEveryTable(t *testing.T) {
	c := New()
	c.CachePlatforms([]types.Platform{{ID: "p1", Name: "SNES"}})
	c.CacheRegions([]types.Region{{ID: "r1", Name: "NTSC-U"}})
	c.CacheLevels([]types.Level{{ID: "l1", Name: "World 1"}})
	c.CacheVariables([]types.Variable{{ID: "v1", Name: "Mode"}})

	c.Clear()

	_, ok := c.Platform("p1")
	assert.False(t, ok)
	_, ok = c.Region("r1")
	assert.False(t, ok)
	_, ok = c.Level("l1")
	assert.False(t, ok)
	_, ok = c.Variable("v1")
	assert.False(t, ok)

	// The cache is usable again after Clear.
	c.CachePlatforms([]types.Platform{{ID: "p1", Name: "PS2"}})
	name, ok := c.Platform("p1")
	assert.True(t, ok)
	assert.Equal(t, "PS2", name)
}
