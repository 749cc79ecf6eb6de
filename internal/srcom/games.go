package srcom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/speedarch/speedarch/pkg/types"
)

// gameEmbeds pulls every collection a backup pass needs in one request.
const gameEmbeds = "levels,categories,platforms,regions,variables"

// GameOrder selects the sort order of catalog listings.
type GameOrder string

// NewestCreatedFirst orders the full catalog walk so recently added games
// are archived before long-established ones.
const NewestCreatedFirst GameOrder = "created.desc"

// SearchGame resolves free text to a game via name search, falling back to
// an exact ID/abbreviation lookup. Returns types.ErrNotFound when neither
// yields a game.
func (c *Client) SearchGame(ctx context.Context, text string) (*types.Game, error) {
	q := url.Values{}
	q.Set("name", text)
	q.Set("max", "1")
	q.Set("embed", gameEmbeds)

	body, err := c.get(ctx, "/games", q)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decoding game search: %w", err)
	}
	var matches []gameJSON
	if err := json.Unmarshal(env.Data, &matches); err != nil {
		return nil, fmt.Errorf("decoding game search: %w", err)
	}
	if len(matches) > 0 {
		return matches[0].toGame(), nil
	}

	return c.GameByID(ctx, text)
}

// GameByID fetches one game with all embedded collections.
func (c *Client) GameByID(ctx context.Context, id string) (*types.Game, error) {
	q := url.Values{}
	q.Set("embed", gameEmbeds)

	body, err := c.get(ctx, "/games/"+url.PathEscape(id), q)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decoding game %s: %w", id, err)
	}
	var g gameJSON
	if err := json.Unmarshal(env.Data, &g); err != nil {
		return nil, fmt.Errorf("decoding game %s: %w", id, err)
	}
	return g.toGame(), nil
}

// Games returns a lazy sequence over catalog game headers in the given
// order. Each call starts a fresh iteration.
func (c *Client) Games(ctx context.Context, order GameOrder) *GameSeq {
	q := url.Values{}
	q.Set("orderby", "created")
	if order == NewestCreatedFirst {
		q.Set("direction", "desc")
	}
	return &GameSeq{c: c, ctx: ctx, path: "/games", query: q}
}

// GameSeq iterates game headers page by page.
type GameSeq struct {
	c     *Client
	ctx   context.Context
	path  string
	query url.Values

	buf    []gameHeaderJSON
	pos    int
	offset int
	done   bool
}

// Next returns the next header, or types.ErrEndOfSeq once the catalog is
// exhausted. Transient upstream failures surface to the caller; the
// sequence can be advanced again after a cooldown.
func (s *GameSeq) Next() (types.GameSummary, error) {
	for s.pos >= len(s.buf) {
		if s.done {
			return types.GameSummary{}, types.ErrEndOfSeq
		}
		if err := s.fetch(); err != nil {
			return types.GameSummary{}, err
		}
	}

	h := s.buf[s.pos]
	s.pos++
	return types.GameSummary{ID: h.ID, Name: h.Names.International, Abbreviation: h.Abbreviation}, nil
}

func (s *GameSeq) fetch() error {
	body, err := s.c.get(s.ctx, s.path, s.c.pageQuery(s.query, s.offset))
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decoding game page: %w", err)
	}
	s.buf = nil
	s.pos = 0
	if err := json.Unmarshal(env.Data, &s.buf); err != nil {
		return fmt.Errorf("decoding game page: %w", err)
	}

	s.offset += len(s.buf)
	if len(s.buf) < s.c.pageSize {
		s.done = true
	}
	return nil
}
