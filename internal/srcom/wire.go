package srcom

import (
	"encoding/json"
	"time"

	"github.com/speedarch/speedarch/pkg/types"
)

// Wire structures mirroring the API's JSON. Embedded collections arrive
// wrapped in their own {"data": [...]} envelopes.

type envelope struct {
	Data       json.RawMessage `json:"data"`
	Pagination pagination      `json:"pagination"`
}

type pagination struct {
	Offset int `json:"offset"`
	Max    int `json:"max"`
	Size   int `json:"size"`
}

type namesJSON struct {
	International string `json:"international"`
}

type namedJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type rulesetJSON struct {
	RunTimes         []string `json:"run-times"`
	EmulatorsAllowed bool     `json:"emulators-allowed"`
}

type categoryJSON struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Players struct {
		Value int `json:"value"`
	} `json:"players"`
}

type variableJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Values   struct {
		Values map[string]struct {
			Label string `json:"label"`
		} `json:"values"`
	} `json:"values"`
}

type gameJSON struct {
	ID           string      `json:"id"`
	Names        namesJSON   `json:"names"`
	Abbreviation string      `json:"abbreviation"`
	Created      string      `json:"created"`
	Ruleset      rulesetJSON `json:"ruleset"`
	Levels       struct {
		Data []namedJSON `json:"data"`
	} `json:"levels"`
	Categories struct {
		Data []categoryJSON `json:"data"`
	} `json:"categories"`
	Platforms struct {
		Data []namedJSON `json:"data"`
	} `json:"platforms"`
	Regions struct {
		Data []namedJSON `json:"data"`
	} `json:"regions"`
	Variables struct {
		Data []variableJSON `json:"data"`
	} `json:"variables"`
}

type gameHeaderJSON struct {
	ID           string    `json:"id"`
	Names        namesJSON `json:"names"`
	Abbreviation string    `json:"abbreviation"`
}

type userJSON struct {
	ID    string    `json:"id"`
	Names namesJSON `json:"names"`
}

type playerJSON struct {
	Rel   string    `json:"rel"`
	Names namesJSON `json:"names"`
	Name  string    `json:"name"`
}

type runJSON struct {
	ID       string            `json:"id"`
	Game     string            `json:"game"`
	Category string            `json:"category"`
	Level    string            `json:"level"`
	Values   map[string]string `json:"values"`
	Players  struct {
		Data []playerJSON `json:"data"`
	} `json:"players"`
	Times struct {
		RealTime        float64 `json:"realtime_t"`
		RealTimeNoLoads float64 `json:"realtime_noloads_t"`
		InGame          float64 `json:"ingame_t"`
	} `json:"times"`
	System struct {
		Platform string `json:"platform"`
		Emulated bool   `json:"emulated"`
		Region   string `json:"region"`
	} `json:"system"`
	Date      string `json:"date"`
	Submitted string `json:"submitted"`
	Videos    struct {
		Links []struct {
			URI string `json:"uri"`
		} `json:"links"`
	} `json:"videos"`
	Splits struct {
		URI string `json:"uri"`
	} `json:"splits"`
	Comment string `json:"comment"`
	Status  struct {
		Status     string `json:"status"`
		Reason     string `json:"reason"`
		VerifyDate string `json:"verify-date"`
	} `json:"status"`
}

func (g gameJSON) toGame() *types.Game {
	game := &types.Game{
		ID:           g.ID,
		Name:         g.Names.International,
		Abbreviation: g.Abbreviation,
		Created:      parseTimestamp(g.Created),
		Ruleset: types.Ruleset{
			TimingMethods:    parseTimingMethods(g.Ruleset.RunTimes),
			EmulatorsAllowed: g.Ruleset.EmulatorsAllowed,
		},
	}

	for _, l := range g.Levels.Data {
		game.Levels = append(game.Levels, types.Level{ID: l.ID, Name: l.Name})
	}
	for _, p := range g.Platforms.Data {
		game.Platforms = append(game.Platforms, types.Platform{ID: p.ID, Name: p.Name})
	}
	for _, r := range g.Regions.Data {
		game.Regions = append(game.Regions, types.Region{ID: r.ID, Name: r.Name})
	}
	for _, v := range g.Variables.Data {
		game.Variables = append(game.Variables, v.toVariable())
	}

	for _, c := range g.Categories.Data {
		cat := types.Category{
			ID:      c.ID,
			Name:    c.Name,
			Kind:    parseCategoryKind(c.Type),
			Players: c.Players.Value,
			GameID:  g.ID,
		}
		// A variable applies to a category when it is bound to that
		// category or is global; game order is preserved.
		for i, v := range g.Variables.Data {
			if v.Category == "" || v.Category == c.ID {
				cat.Variables = append(cat.Variables, game.Variables[i])
			}
		}
		game.Categories = append(game.Categories, cat)
	}

	return game
}

func (v variableJSON) toVariable() types.Variable {
	out := types.Variable{ID: v.ID, Name: v.Name, Values: make(map[string]string, len(v.Values.Values))}
	for id, val := range v.Values.Values {
		out.Values[id] = val.Label
	}
	return out
}

func (r runJSON) toRun() *types.Run {
	run := &types.Run{
		ID:         r.ID,
		GameID:     r.Game,
		CategoryID: r.Category,
		LevelID:    r.Level,
		Values:     r.Values,
		Times: types.RunTimes{
			RealTime:        secondsToDuration(r.Times.RealTime),
			RealTimeNoLoads: secondsToDuration(r.Times.RealTimeNoLoads),
			InGame:          secondsToDuration(r.Times.InGame),
		},
		PlatformID: r.System.Platform,
		Emulated:   r.System.Emulated,
		RegionID:   r.System.Region,
		Date:       parseDate(r.Date),
		Submitted:  parseTimestamp(r.Submitted),
		Splits:     r.Splits.URI,
		Comment:    r.Comment,
		Status: types.RunStatus{
			Kind:       types.StatusKind(r.Status.Status),
			Reason:     r.Status.Reason,
			VerifyDate: parseTimestamp(r.Status.VerifyDate),
		},
	}
	if run.Values == nil {
		run.Values = map[string]string{}
	}

	for _, p := range r.Players.Data {
		name := p.Names.International
		if p.Rel == "guest" {
			name = p.Name
		}
		run.Players = append(run.Players, types.Player{Name: name})
	}
	for _, l := range r.Videos.Links {
		run.Videos = append(run.Videos, l.URI)
	}
	return run
}

func parseTimingMethods(methods []string) []types.TimingMethod {
	out := make([]types.TimingMethod, 0, len(methods))
	for _, m := range methods {
		out = append(out, types.TimingMethod(m))
	}
	return out
}

func parseCategoryKind(t string) types.CategoryKind {
	if t == "per-level" {
		return types.KindPerLevel
	}
	return types.KindPerGame
}

// secondsToDuration converts an elapsed-seconds value; the API reports
// zero for methods the run carries no time for.
func secondsToDuration(seconds float64) *time.Duration {
	if seconds <= 0 {
		return nil
	}
	d := time.Duration(seconds * float64(time.Second))
	return &d
}

func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
