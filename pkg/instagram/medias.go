package instagram

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"igclient/pkg/endpoints"
	igerrors "igclient/pkg/errors"
	"igclient/pkg/model"
	"igclient/pkg/paginate"
)

var mediaURLPattern = regexp.MustCompile(`^https?://[^\s/$.?#][^\s]*$`)

// MediaPage is one page of a media listing together with the cursor that
// resumes it
type MediaPage struct {
	Medias      []*model.Media `json:"medias"`
	MaxID       string         `json:"max_id"`
	HasNextPage bool           `json:"has_next_page"`
	Count       int64          `json:"count"`
}

func mediaID(m *model.Media) string { return m.ID }

// collectMedias paginates fetch into hydrated medias, stopping at the first
// repeated id
func (c *Client) collectMedias(ctx context.Context, name string, fetch paginate.FetchFunc, count int, maxID string, stop func(*model.Media) bool) (*paginate.Result[*model.Media], error) {
	opts := listOptions(c, name, count, maxID, model.NewMedia)
	opts.DedupeKey = mediaID
	opts.Stop = stop
	return paginate.Paginate(ctx, fetch, opts)
}

// GetMedias returns up to count recent medias of an account. Unlimited
// walks the whole timeline.
func (c *Client) GetMedias(ctx context.Context, username string, count int, maxID string) ([]*model.Media, error) {
	account, err := c.GetAccount(ctx, username)
	if err != nil {
		return nil, err
	}
	return c.GetMediasByUserID(ctx, account.ID, count, maxID)
}

// GetMediasByUserID walks an account timeline through signed GraphQL queries
func (c *Client) GetMediasByUserID(ctx context.Context, id string, count int, maxID string) ([]*model.Media, error) {
	if id == "" {
		return nil, igerrors.NewValidationError("account id is required")
	}

	first := c.paging.MediaRequestCount
	if count > 0 {
		first = count
	}
	first = endpoints.ClampMediaLimit(first)

	c.logger.DebugWithFields("fetching account medias", map[string]interface{}{
		"account_id": id,
		"count":      count,
		"first":      first,
	})

	res, err := c.collectMedias(ctx, "account_medias", c.timelineFetcher(id, first), count, maxID, nil)
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (c *Client) timelineFetcher(id string, first int) paginate.FetchFunc {
	what := fmt.Sprintf("medias of account %s", id)
	return func(ctx context.Context, cursor string) (*paginate.Page, error) {
		vars, err := variablesJSON(map[string]string{
			"id":    id,
			"first": strconv.Itoa(first),
			"after": cursor,
		})
		if err != nil {
			return nil, err
		}

		node, err := c.getJSON(ctx, c.resolver.URL(endpoints.AccountMedias, map[string]string{"variables": vars}), true, vars, what)
		if err != nil {
			return nil, err
		}
		return paginate.EdgePage(node, "data", "user", "edge_owner_to_timeline_media"), nil
	}
}

// GetPaginateMedias returns a single timeline page starting after maxID
func (c *Client) GetPaginateMedias(ctx context.Context, username string, maxID string) (*MediaPage, error) {
	account, err := c.GetAccount(ctx, username)
	if err != nil {
		return nil, err
	}

	page, err := c.timelineFetcher(account.ID, endpoints.ClampMediaLimit(c.paging.MediaRequestCount))(ctx, maxID)
	if err != nil {
		return nil, err
	}

	result := &MediaPage{
		MaxID:       page.Cursor,
		HasNextPage: page.HasMore,
		Count:       account.MediaCount,
	}
	for _, node := range page.Nodes {
		result.Medias = append(result.Medias, model.NewMedia(node))
	}
	return result, nil
}

// GetMediasFromFeed returns the medias embedded in an account's JSON
// profile. The profile carries a single page, so nothing is paginated.
func (c *Client) GetMediasFromFeed(ctx context.Context, username string, count int) ([]*model.Media, error) {
	if username == "" {
		return nil, igerrors.NewValidationError("username is required")
	}

	what := fmt.Sprintf("feed of account %q", username)
	fetch := func(ctx context.Context, _ string) (*paginate.Page, error) {
		node, err := c.getJSON(ctx, c.resolver.URL(endpoints.AccountJSON, map[string]string{"username": username}), false, "", what)
		if err != nil {
			return nil, err
		}
		page := paginate.EdgePage(node, "graphql", "user", "edge_owner_to_timeline_media")
		page.HasMore = false
		return page, nil
	}

	res, err := c.collectMedias(ctx, "feed", fetch, count, "", nil)
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

// GetMediaByURL fetches a media from its public link
func (c *Client) GetMediaByURL(ctx context.Context, mediaURL string) (*model.Media, error) {
	if !mediaURLPattern.MatchString(mediaURL) {
		return nil, igerrors.NewValidationError(fmt.Sprintf("malformed media url %q", mediaURL))
	}

	node, err := c.getJSON(ctx, strings.TrimRight(mediaURL, "/")+"/?__a=1", false, "", "media "+mediaURL)
	if err != nil {
		return nil, err
	}

	raw := mediaPayload(node)
	if raw == nil {
		return nil, igerrors.NewNotFoundError(fmt.Sprintf("media %s not found", mediaURL))
	}
	return model.NewMedia(raw), nil
}

// mediaPayload finds the media object in either the GraphQL or the private
// API shape of a media page
func mediaPayload(node model.Node) model.Node {
	if raw := node.Node("graphql", "shortcode_media"); raw != nil {
		return raw
	}
	return node.Node("items", 0)
}

// GetMediaByCode fetches a media by shortcode
func (c *Client) GetMediaByCode(ctx context.Context, code string) (*model.Media, error) {
	if code == "" {
		return nil, igerrors.NewValidationError("media code is required")
	}
	return c.GetMediaByURL(ctx, c.resolver.MediaLink(code))
}

// GetMediaByID fetches a media by numeric id
func (c *Client) GetMediaByID(ctx context.Context, id string) (*model.Media, error) {
	code, err := codeForID(id)
	if err != nil {
		return nil, err
	}
	return c.GetMediaByCode(ctx, code)
}

func codeForID(id string) (string, error) {
	code, err := model.CodeFromID(id)
	if err != nil || code == "" {
		return "", igerrors.NewValidationError(fmt.Sprintf("invalid media id %q", id))
	}
	return code, nil
}

// GetMediaTaggedUsersByCode lists the accounts tagged in a media
func (c *Client) GetMediaTaggedUsersByCode(ctx context.Context, code string) ([]*model.TaggedUser, error) {
	if code == "" {
		return nil, igerrors.NewValidationError("media code is required")
	}

	node, err := c.getJSON(ctx, c.resolver.URL(endpoints.MediaJSON, map[string]string{"code": code}), false, "", "media "+code)
	if err != nil {
		return nil, err
	}

	raw := node.Node("graphql", "shortcode_media")
	if raw == nil {
		return nil, igerrors.NewNotFoundError(fmt.Sprintf("media %s not found", code))
	}

	var tagged []*model.TaggedUser
	for _, edge := range raw.Nodes("edge_media_to_tagged_user", "edges") {
		if n := edge.Node("node"); n != nil {
			tagged = append(tagged, model.NewTaggedUser(n))
		}
	}
	return tagged, nil
}
