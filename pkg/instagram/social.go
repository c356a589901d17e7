package instagram

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"igclient/pkg/endpoints"
	igerrors "igclient/pkg/errors"
	"igclient/pkg/model"
	"igclient/pkg/paginate"
	"igclient/pkg/ratelimit"
)

const defaultFollowPageSize = 20

// FollowOptions controls a followers or following walk
type FollowOptions struct {
	// Count caps the number of accounts, any negative value for all.
	// Zero selects the default of one page.
	Count int
	// PageSize is the number of accounts requested per page
	PageSize int
	// EndCursor resumes a previous walk
	EndCursor string
	// Delayed waits the configured paging delay between pages
	Delayed bool
}

func (o FollowOptions) withDefaults() FollowOptions {
	if o.PageSize <= 0 {
		o.PageSize = defaultFollowPageSize
	}
	if o.Count == 0 {
		o.Count = o.PageSize
	}
	o.Count = normalizeLimit(o.Count)
	return o
}

// AccountPage is a page of accounts and the cursor that resumes the walk.
// PageOffset is how many accounts of the page at NextPage are already in
// Accounts.
type AccountPage struct {
	Accounts    []*model.Account `json:"accounts"`
	NextPage    string           `json:"next_page"`
	PageOffset  int              `json:"page_offset,omitempty"`
	HasNextPage bool             `json:"has_next_page"`
}

func accountID(a *model.Account) string { return a.ID }

// GetFollowers walks the accounts following accountID
func (c *Client) GetFollowers(ctx context.Context, accountID string, opts FollowOptions) (*AccountPage, error) {
	return c.walkFollows(ctx, endpoints.Followers, "edge_followed_by", "followers", accountID, opts)
}

// GetFollowing walks the accounts accountID follows
func (c *Client) GetFollowing(ctx context.Context, accountID string, opts FollowOptions) (*AccountPage, error) {
	return c.walkFollows(ctx, endpoints.Following, "edge_follow", "following", accountID, opts)
}

func (c *Client) walkFollows(ctx context.Context, endpoint, edgeKey, name, id string, opts FollowOptions) (*AccountPage, error) {
	if id == "" {
		return nil, igerrors.NewValidationError("account id is required")
	}
	opts = opts.withDefaults()
	if opts.Count != paginate.Unlimited && opts.Count < opts.PageSize {
		return nil, igerrors.NewValidationError(fmt.Sprintf("count %d must not be lower than page size %d", opts.Count, opts.PageSize))
	}

	what := fmt.Sprintf("%s of account %s", name, id)
	fetch := func(ctx context.Context, cursor string) (*paginate.Page, error) {
		rawURL := c.resolver.URL(endpoint, map[string]string{
			"account_id": id,
			"count":      strconv.Itoa(opts.PageSize),
			"after":      cursor,
		})
		node, err := c.getJSON(ctx, rawURL, false, "", what)
		if err != nil {
			return nil, err
		}

		total := paginate.EdgeCount(node, "data", "user", edgeKey)
		page := paginate.EdgePage(node, "data", "user", edgeKey)
		if total > 0 && len(page.Nodes) == 0 {
			return nil, igerrors.NewRequestError(what+": account is private", http.StatusForbidden, "")
		}
		return page, nil
	}

	listing := listOptions(c, name, opts.Count, opts.EndCursor, model.NewAccount)
	listing.DedupeKey = accountID
	if !opts.Delayed {
		listing.Pacer = ratelimit.NoDelay{}
	}

	res, err := paginate.Paginate(ctx, fetch, listing)
	if err != nil {
		return nil, err
	}
	return &AccountPage{Accounts: res.Items, NextPage: res.Cursor, PageOffset: res.Consumed, HasNextPage: res.HasMore}, nil
}
