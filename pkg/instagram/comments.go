package instagram

import (
	"context"
	"fmt"
	"strconv"

	"igclient/pkg/endpoints"
	igerrors "igclient/pkg/errors"
	"igclient/pkg/model"
	"igclient/pkg/paginate"
)

// CommentPage is a page of comments and the cursor that resumes the walk
type CommentPage struct {
	Comments    []*model.Comment `json:"comments"`
	NextPage    string           `json:"next_page"`
	PageOffset  int              `json:"page_offset,omitempty"`
	HasNextPage bool             `json:"has_next_page"`
}

func commentID(cm *model.Comment) string { return cm.ID }

// pageSizer sizes each request to what is still missing, capped at max
type pageSizer struct {
	count   int
	max     int
	fetched int
}

func (s *pageSizer) next() int {
	if s.count == paginate.Unlimited {
		return s.max
	}
	remaining := s.count - s.fetched
	if remaining <= 0 || remaining > s.max {
		return s.max
	}
	return remaining
}

// shortcodeQuery runs a GraphQL query keyed by shortcode and returns the
// shortcode_media object
func (c *Client) shortcodeQuery(ctx context.Context, endpoint, code string, first int, cursor string, signed bool, what string) (model.Node, error) {
	vars, err := variablesJSON(map[string]string{
		"shortcode": code,
		"first":     strconv.Itoa(first),
		"after":     cursor,
	})
	if err != nil {
		return nil, err
	}

	node, err := c.getJSON(ctx, c.resolver.URL(endpoint, map[string]string{"variables": vars}), signed, vars, what)
	if err != nil {
		return nil, err
	}

	media := node.Node("data", "shortcode_media")
	if media == nil {
		return nil, igerrors.NewNotFoundError(fmt.Sprintf("media %s not found", code))
	}
	return media, nil
}

// GetMediaCommentsByCode returns up to count comments of a media, oldest
// page first
func (c *Client) GetMediaCommentsByCode(ctx context.Context, code string, count int, maxID string) (*CommentPage, error) {
	if code == "" {
		return nil, igerrors.NewValidationError("media code is required")
	}

	what := "comments of media " + code
	sizer := &pageSizer{count: normalizeLimit(count), max: endpoints.MaxCommentsPerRequest}
	fetch := func(ctx context.Context, cursor string) (*paginate.Page, error) {
		media, err := c.shortcodeQuery(ctx, endpoints.CommentsByCode, code, sizer.next(), cursor, true, what)
		if err != nil {
			return nil, err
		}

		edgeKey := "edge_media_to_comment"
		if media.Has("edge_media_to_parent_comment") {
			edgeKey = "edge_media_to_parent_comment"
		}
		page := paginate.EdgePage(media, edgeKey)
		sizer.fetched += len(page.Nodes)
		return page, nil
	}

	opts := listOptions(c, "comments", count, maxID, model.NewComment)
	opts.DedupeKey = commentID

	res, err := paginate.Paginate(ctx, fetch, opts)
	if err != nil {
		return nil, err
	}
	return &CommentPage{Comments: res.Items, NextPage: res.Cursor, PageOffset: res.Consumed, HasNextPage: res.HasMore}, nil
}

// GetMediaCommentsByID is GetMediaCommentsByCode for a numeric media id
func (c *Client) GetMediaCommentsByID(ctx context.Context, id string, count int, maxID string) (*CommentPage, error) {
	code, err := codeForID(id)
	if err != nil {
		return nil, err
	}
	return c.GetMediaCommentsByCode(ctx, code, count, maxID)
}

// GetMediaLikesByCode returns up to count accounts that liked a media
func (c *Client) GetMediaLikesByCode(ctx context.Context, code string, count int, maxID string) (*AccountPage, error) {
	if code == "" {
		return nil, igerrors.NewValidationError("media code is required")
	}

	what := "likes of media " + code
	sizer := &pageSizer{count: normalizeLimit(count), max: endpoints.MaxLikesPerRequest}
	fetch := func(ctx context.Context, cursor string) (*paginate.Page, error) {
		media, err := c.shortcodeQuery(ctx, endpoints.LikesByCode, code, sizer.next(), cursor, false, what)
		if err != nil {
			return nil, err
		}
		page := paginate.EdgePage(media, "edge_liked_by")
		sizer.fetched += len(page.Nodes)
		return page, nil
	}

	opts := listOptions(c, "likes", count, maxID, model.NewAccount)
	opts.DedupeKey = accountID

	res, err := paginate.Paginate(ctx, fetch, opts)
	if err != nil {
		return nil, err
	}
	return &AccountPage{Accounts: res.Items, NextPage: res.Cursor, PageOffset: res.Consumed, HasNextPage: res.HasMore}, nil
}
