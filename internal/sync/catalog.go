package sync

import (
	"context"

	"github.com/speedarch/speedarch/internal/srcom"
	"github.com/speedarch/speedarch/pkg/types"
)

// RunSeq is a lazy sequence of runs ending with types.ErrEndOfSeq. After a
// transient error the same sequence may be advanced again; the failed page
// is re-fetched.
type RunSeq interface {
	Next() (*types.Run, error)
}

// GameSeq is a lazy sequence of catalog game headers.
type GameSeq interface {
	Next() (types.GameSummary, error)
}

// Catalog is the upstream capability the orchestrator consumes.
type Catalog interface {
	// SearchGame resolves free text (name, URL fragment, or ID) to a game.
	SearchGame(ctx context.Context, text string) (*types.Game, error)

	// GameByID fetches one game with all embedded collections.
	GameByID(ctx context.Context, id string) (*types.Game, error)

	// ResolveUser turns free text into a user.
	ResolveUser(ctx context.Context, text string) (*types.User, error)

	// UserRuns lists the runs submitted by one user.
	UserRuns(ctx context.Context, userID string) RunSeq

	// Games walks the catalog newest-created-first.
	Games(ctx context.Context) GameSeq

	// Runs lists one category's runs in ascending submission order.
	Runs(ctx context.Context, gameID, categoryID string) RunSeq

	// RecentRuns walks catalog runs newest-submitted-first.
	RecentRuns(ctx context.Context) RunSeq
}

// catalogClient adapts *srcom.Client to the Catalog interface.
type catalogClient struct {
	c *srcom.Client
}

// NewCatalog wraps the HTTP client as a Catalog.
func NewCatalog(c *srcom.Client) Catalog {
	return &catalogClient{c: c}
}

func (a *catalogClient) SearchGame(ctx context.Context, text string) (*types.Game, error) {
	return a.c.SearchGame(ctx, text)
}

func (a *catalogClient) GameByID(ctx context.Context, id string) (*types.Game, error) {
	return a.c.GameByID(ctx, id)
}

func (a *catalogClient) ResolveUser(ctx context.Context, text string) (*types.User, error) {
	return a.c.ResolveUser(ctx, text)
}

func (a *catalogClient) UserRuns(ctx context.Context, userID string) RunSeq {
	return a.c.UserRuns(ctx, userID)
}

func (a *catalogClient) Games(ctx context.Context) GameSeq {
	return a.c.Games(ctx, srcom.NewestCreatedFirst)
}

func (a *catalogClient) Runs(ctx context.Context, gameID, categoryID string) RunSeq {
	return a.c.Runs(ctx, gameID, categoryID)
}

func (a *catalogClient) RecentRuns(ctx context.Context) RunSeq {
	return a.c.RecentRuns(ctx)
}
