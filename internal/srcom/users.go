package srcom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/speedarch/speedarch/pkg/types"
)

// ResolveUser turns free text into a user: a name search preferring an
// exact match, falling back to the first search hit, then to a direct ID
// lookup. Returns types.ErrNotFound when nothing matches.
func (c *Client) ResolveUser(ctx context.Context, text string) (*types.User, error) {
	q := url.Values{}
	q.Set("name", text)
	q.Set("max", "200")

	body, err := c.get(ctx, "/users", q)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}

	if err == nil {
		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("decoding user search: %w", err)
		}
		var matches []userJSON
		if err := json.Unmarshal(env.Data, &matches); err != nil {
			return nil, fmt.Errorf("decoding user search: %w", err)
		}

		for _, u := range matches {
			if u.Names.International == text {
				return &types.User{ID: u.ID, Name: u.Names.International}, nil
			}
		}
		if len(matches) > 0 {
			u := matches[0]
			return &types.User{ID: u.ID, Name: u.Names.International}, nil
		}
	}

	return c.userByID(ctx, text)
}

func (c *Client) userByID(ctx context.Context, id string) (*types.User, error) {
	body, err := c.get(ctx, "/users/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decoding user %s: %w", id, err)
	}
	var u userJSON
	if err := json.Unmarshal(env.Data, &u); err != nil {
		return nil, fmt.Errorf("decoding user %s: %w", id, err)
	}
	return &types.User{ID: u.ID, Name: u.Names.International}, nil
}
