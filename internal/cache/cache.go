// Package cache holds the per-game metadata lookup tables used while
// flattening runs: platform, region, level, and variable display data.
//
// A Cache instance is owned by the orchestrator for the duration of one
// game's backup. Entries are insert-once; Clear empties every table and
// must run before the next game begins so lookups never cross games.
// See docs/ARCHITECTURE.md § Metadata Cache.
package cache

import "github.com/speedarch/speedarch/pkg/types"

// Cache deduplicates metadata lookups within one game's backup.
type Cache struct {
	platforms map[string]string
	regions   map[string]string
	levels    map[string]string
	variables map[string]types.Variable
}

// New returns an empty Cache.
func New() *Cache {
	c := &Cache{}
	c.Clear()
	return c
}

// CachePlatforms inserts any platform not already present. Re-insertion of
// an existing ID is a no-op.
func (c *Cache) CachePlatforms(platforms []types.Platform) {
	for _, p := range platforms {
		if _, ok := c.platforms[p.ID]; !ok {
			c.platforms[p.ID] = p.Name
		}
	}
}

// CacheRegions inserts any region not already present.
func (c *Cache) CacheRegions(regions []types.Region) {
	for _, r := range regions {
		if _, ok := c.regions[r.ID]; !ok {
			c.regions[r.ID] = r.Name
		}
	}
}

// CacheLevels inserts any level not already present.
func (c *Cache) CacheLevels(levels []types.Level) {
	for _, l := range levels {
		if _, ok := c.levels[l.ID]; !ok {
			c.levels[l.ID] = l.Name
		}
	}
}

// CacheVariables stores the name and full value mapping of any variable not
// already present.
func (c *Cache) CacheVariables(variables []types.Variable) {
	for _, v := range variables {
		if _, ok := c.variables[v.ID]; !ok {
			c.variables[v.ID] = v
		}
	}
}

// Platform returns the display name for a platform ID.
func (c *Cache) Platform(id string) (string, bool) {
	name, ok := c.platforms[id]
	return name, ok
}

// Region returns the display name for a region ID.
func (c *Cache) Region(id string) (string, bool) {
	name, ok := c.regions[id]
	return name, ok
}

// Level returns the display name for a level ID.
func (c *Cache) Level(id string) (string, bool) {
	name, ok := c.levels[id]
	return name, ok
}

// Variable returns the cached definition for a variable ID.
func (c *Cache) Variable(id string) (types.Variable, bool) {
	v, ok := c.variables[id]
	return v, ok
}

// Clear empties all tables. Called exactly once per completed or abandoned
// game backup, before the next game begins.
func (c *Cache) Clear() {
	c.platforms = make(map[string]string)
	c.regions = make(map[string]string)
	c.levels = make(map[string]string)
	c.variables = make(map[string]types.Variable)
}
