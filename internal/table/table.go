// Package table derives a tabular schema from a category's feature set and
// flattens each run into a row of that schema.
//
// The column set is fixed at construction, before any row is appended;
// every appended row must conform to it. One Builder produces one named
// sheet. See docs/ARCHITECTURE.md § Table Builder.
package table

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/speedarch/speedarch/internal/cache"
	"github.com/speedarch/speedarch/pkg/types"
)

// EmulatorMark is appended to the platform name of emulated runs.
const EmulatorMark = " [EMU]"

// dateLayout renders the Date column.
const dateLayout = "2006-01-02"

// reservedColumns are labels claimed by fixed columns; a variable whose
// display name collides with one is labeled "<name> (<variable-id>)".
var reservedColumns = map[string]bool{
	"Platform": true, "Region": true,
	"Player 1": true, "Player 2": true, "Player 3": true, "Player 4": true,
	"Level":     true,
	"Real Time": true, "Real Time without Loads": true, "In-Game Time": true,
	"Date": true, "Video": true, "Splits": true, "Description": true,
	"Status": true, "Rejection Reason": true, "ID": true,
}

// Sheet is the finished, exporter-facing form of a built table.
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Builder accumulates the rows of one category's sheet.
type Builder struct {
	name    string
	columns []string
	rows    [][]string

	perLevel    bool
	variables   []types.Variable
	playerCount int

	realTime bool
	noLoads  bool
	inGame   bool

	hasRegions   bool
	hasPlatforms bool

	meta *cache.Cache
	log  *zap.Logger
}

// New fixes the column schema for one category. The owning game supplies
// the ruleset and the region/platform counts that gate optional columns;
// meta must already hold the game's metadata.
func New(cat types.Category, game *types.Game, meta *cache.Cache, log *zap.Logger) *Builder {
	b := &Builder{
		name:         cat.Name,
		perLevel:     cat.Kind == types.KindPerLevel,
		playerCount:  cat.Players,
		realTime:     game.Ruleset.Times(types.TimingRealTime),
		noLoads:      game.Ruleset.Times(types.TimingRealTimeNoLoads),
		inGame:       game.Ruleset.Times(types.TimingInGame),
		hasRegions:   len(game.Regions) > 1,
		hasPlatforms: len(game.Platforms) > 1 || game.Ruleset.EmulatorsAllowed,
		meta:         meta,
		log:          log,
	}

	b.variables = make([]types.Variable, 0, len(cat.Variables))
	for _, v := range cat.Variables {
		def, ok := meta.Variable(v.ID)
		if !ok {
			// The game's variables were cached before any category was
			// built, so a miss means the snapshot is inconsistent. Fall
			// back to the category's embedded copy.
			log.Warn("variable not cached", zap.String("variable", v.ID), zap.String("category", cat.ID))
			def = v
		}
		b.variables = append(b.variables, def)
	}

	b.setColumns()
	return b
}

func (b *Builder) setColumns() {
	if b.perLevel {
		b.columns = append(b.columns, "Level")
	}

	for _, v := range b.variables {
		if reservedColumns[v.Name] || b.duplicateName(v) {
			b.columns = append(b.columns, fmt.Sprintf("%s (%s)", v.Name, v.ID))
		} else {
			b.columns = append(b.columns, v.Name)
		}
	}

	for i := 0; i < b.playerCount; i++ {
		b.columns = append(b.columns, fmt.Sprintf("Player %d", i+1))
	}

	if b.realTime {
		b.columns = append(b.columns, "Real Time")
	}
	if b.noLoads {
		b.columns = append(b.columns, "Real Time without Loads")
	}
	if b.inGame {
		b.columns = append(b.columns, "In-Game Time")
	}

	if b.hasRegions {
		b.columns = append(b.columns, "Region")
	}
	if b.hasPlatforms {
		b.columns = append(b.columns, "Platform")
	}

	b.columns = append(b.columns,
		"Date", "Video", "Splits", "Description", "Status", "Rejection Reason", "ID")
}

// duplicateName reports whether another variable of the same category
// shares v's display name.
func (b *Builder) duplicateName(v types.Variable) bool {
	n := 0
	for _, other := range b.variables {
		if other.Name == v.Name {
			n++
		}
	}
	return n > 1
}

// Append flattens one run into a row. Values are produced in exact column
// order; a mismatch against the fixed schema is a programming error and is
// reported rather than silently exported.
func (b *Builder) Append(run *types.Run) error {
	row := make([]string, 0, len(b.columns))

	if b.perLevel {
		row = append(row, b.levelName(run))
	}

	for _, v := range b.variables {
		row = append(row, b.valueLabel(v, run))
	}

	for i := 0; i < b.playerCount; i++ {
		if i < len(run.Players) {
			row = append(row, run.Players[i].Name)
		} else {
			row = append(row, "")
		}
	}

	if b.realTime {
		row = append(row, formatDuration(run.Times.RealTime))
	}
	if b.noLoads {
		row = append(row, formatDuration(run.Times.RealTimeNoLoads))
	}
	if b.inGame {
		row = append(row, formatDuration(run.Times.InGame))
	}

	if b.hasRegions {
		row = append(row, b.regionName(run))
	}
	if b.hasPlatforms {
		row = append(row, b.platformName(run))
	}

	if d := run.EffectiveDate(); d != nil {
		row = append(row, d.Format(dateLayout))
	} else {
		row = append(row, "")
	}

	if len(run.Videos) > 0 {
		row = append(row, run.Videos[0])
	} else {
		row = append(row, "")
	}

	row = append(row, run.Splits)
	row = append(row, run.Comment)
	row = append(row, run.Status.Kind.Display())

	if run.Status.Kind == types.StatusRejected && run.Status.Reason != "" {
		row = append(row, run.Status.Reason)
	} else {
		row = append(row, "")
	}

	row = append(row, run.ID)

	if len(row) != len(b.columns) {
		return fmt.Errorf("run %s: row has %d values for %d columns", run.ID, len(row), len(b.columns))
	}

	b.rows = append(b.rows, row)
	return nil
}

// levelName resolves the run's level through the cache. An uncached level
// on a per-level run is a data-consistency fault: it is logged and the
// field degrades to empty rather than aborting the backup.
func (b *Builder) levelName(run *types.Run) string {
	if run.LevelID == "" {
		return ""
	}
	name, ok := b.meta.Level(run.LevelID)
	if !ok {
		b.log.Warn("level not cached", zap.String("run", run.ID), zap.String("level", run.LevelID))
		return ""
	}
	return name
}

// valueLabel returns the display label of the value assigned to v on this
// run, or empty when the run carries no value for v.
func (b *Builder) valueLabel(v types.Variable, run *types.Run) string {
	valueID, ok := run.Values[v.ID]
	if !ok {
		return ""
	}
	label, ok := v.Values[valueID]
	if !ok {
		b.log.Warn("variable value not cached",
			zap.String("run", run.ID), zap.String("variable", v.ID), zap.String("value", valueID))
		return ""
	}
	return label
}

func (b *Builder) regionName(run *types.Run) string {
	if run.RegionID == "" {
		return ""
	}
	name, ok := b.meta.Region(run.RegionID)
	if !ok {
		b.log.Warn("region not cached", zap.String("run", run.ID), zap.String("region", run.RegionID))
		return ""
	}
	return name
}

func (b *Builder) platformName(run *types.Run) string {
	if run.PlatformID == "" {
		return ""
	}
	name, ok := b.meta.Platform(run.PlatformID)
	if !ok {
		b.log.Warn("platform not cached", zap.String("run", run.ID), zap.String("platform", run.PlatformID))
		return ""
	}
	if run.Emulated {
		return name + EmulatorMark
	}
	return name
}

// Name returns the sheet name (the category name).
func (b *Builder) Name() string { return b.name }

// Columns returns the fixed column labels.
func (b *Builder) Columns() []string { return b.columns }

// Rows returns the appended rows in fetch order.
func (b *Builder) Rows() [][]string { return b.rows }

// Empty reports whether no run was appended. Empty tables are dropped
// before export.
func (b *Builder) Empty() bool { return len(b.rows) == 0 }

// Sheet returns the finished exporter-facing value.
func (b *Builder) Sheet() Sheet {
	return Sheet{Name: b.name, Columns: b.columns, Rows: b.rows}
}
