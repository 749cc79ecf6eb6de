package srcom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/speedarch/speedarch/pkg/types"
)

// Runs returns the runs of one category in ascending submission order, so
// the resulting sheet reads chronologically. Pagination preserves that
// order across pages.
func (c *Client) Runs(ctx context.Context, gameID, categoryID string) *RunSeq {
	q := url.Values{}
	q.Set("game", gameID)
	q.Set("category", categoryID)
	q.Set("orderby", "submitted")
	q.Set("direction", "asc")
	q.Set("embed", "players")
	return &RunSeq{c: c, ctx: ctx, path: "/runs", query: q}
}

// RecentRuns returns catalog runs newest-submitted-first, the feed behind
// the recent-activity backup mode.
func (c *Client) RecentRuns(ctx context.Context) *RunSeq {
	q := url.Values{}
	q.Set("orderby", "submitted")
	q.Set("direction", "desc")
	q.Set("embed", "players")
	return &RunSeq{c: c, ctx: ctx, path: "/runs", query: q}
}

// UserRuns returns the runs submitted by one user; a user-portfolio backup
// derives its game set from this.
func (c *Client) UserRuns(ctx context.Context, userID string) *RunSeq {
	q := url.Values{}
	q.Set("user", userID)
	q.Set("embed", "players")
	return &RunSeq{c: c, ctx: ctx, path: "/runs", query: q}
}

// RunSeq iterates runs page by page.
type RunSeq struct {
	c     *Client
	ctx   context.Context
	path  string
	query url.Values

	buf    []runJSON
	pos    int
	offset int
	done   bool
}

// Next returns the next run, or types.ErrEndOfSeq once exhausted.
func (s *RunSeq) Next() (*types.Run, error) {
	for s.pos >= len(s.buf) {
		if s.done {
			return nil, types.ErrEndOfSeq
		}
		if err := s.fetch(); err != nil {
			return nil, err
		}
	}

	r := s.buf[s.pos]
	s.pos++
	return r.toRun(), nil
}

func (s *RunSeq) fetch() error {
	body, err := s.c.get(s.ctx, s.path, s.c.pageQuery(s.query, s.offset))
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decoding run page: %w", err)
	}
	s.buf = nil
	s.pos = 0
	if err := json.Unmarshal(env.Data, &s.buf); err != nil {
		return fmt.Errorf("decoding run page: %w", err)
	}

	s.offset += len(s.buf)
	if len(s.buf) < s.c.pageSize {
		s.done = true
	}
	return nil
}
