package instagram

import (
	"context"
	"fmt"

	"igclient/pkg/endpoints"
	igerrors "igclient/pkg/errors"
	"igclient/pkg/model"
	"igclient/pkg/paginate"
)

func (c *Client) tagFetcher(tag string) paginate.FetchFunc {
	what := fmt.Sprintf("tag %q", tag)
	return func(ctx context.Context, cursor string) (*paginate.Page, error) {
		rawURL := c.resolver.URL(endpoints.MediasByTag, map[string]string{"tag": tag, "max_id": cursor})
		node, err := c.getJSON(ctx, rawURL, false, "", what)
		if err != nil {
			return nil, err
		}
		return paginate.EdgePage(node, "graphql", "hashtag", "edge_hashtag_to_media"), nil
	}
}

// GetMediasByTag returns up to count medias of a hashtag, newest first.
// When minTimestamp is positive the walk stops at the first media created
// before it. The upstream sometimes repeats a page; a repeated id ends the
// walk.
func (c *Client) GetMediasByTag(ctx context.Context, tag string, count int, maxID string, minTimestamp int64) ([]*model.Media, error) {
	if tag == "" {
		return nil, igerrors.NewValidationError("tag is required")
	}

	var stop func(*model.Media) bool
	if minTimestamp > 0 {
		stop = func(m *model.Media) bool { return m.CreatedTime < minTimestamp }
	}

	res, err := c.collectMedias(ctx, "tag_medias", c.tagFetcher(tag), count, maxID, stop)
	if err != nil {
		return nil, err
	}

	c.logger.DebugWithFields("fetched tag medias", map[string]interface{}{
		"tag":    tag,
		"medias": len(res.Items),
		"reason": res.StopReason,
	})
	return res.Items, nil
}

// GetPaginateMediasByTag returns a single tag page starting after maxID
func (c *Client) GetPaginateMediasByTag(ctx context.Context, tag string, maxID string) (*MediaPage, error) {
	if tag == "" {
		return nil, igerrors.NewValidationError("tag is required")
	}

	rawURL := c.resolver.URL(endpoints.MediasByTag, map[string]string{"tag": tag, "max_id": maxID})
	node, err := c.getJSON(ctx, rawURL, false, "", fmt.Sprintf("tag %q", tag))
	if err != nil {
		return nil, err
	}

	page := paginate.EdgePage(node, "graphql", "hashtag", "edge_hashtag_to_media")
	result := &MediaPage{
		MaxID:       page.Cursor,
		HasNextPage: page.HasMore,
		Count:       paginate.EdgeCount(node, "graphql", "hashtag", "edge_hashtag_to_media"),
	}
	for _, n := range page.Nodes {
		result.Medias = append(result.Medias, model.NewMedia(n))
	}
	return result, nil
}

// GetCurrentTopMediasByTagName returns the top posts of a hashtag
func (c *Client) GetCurrentTopMediasByTagName(ctx context.Context, tag string) ([]*model.Media, error) {
	if tag == "" {
		return nil, igerrors.NewValidationError("tag is required")
	}

	rawURL := c.resolver.URL(endpoints.MediasByTag, map[string]string{"tag": tag})
	node, err := c.getJSON(ctx, rawURL, false, "", fmt.Sprintf("tag %q", tag))
	if err != nil {
		return nil, err
	}
	return hydrateEdges(node, "graphql", "hashtag", "edge_hashtag_to_top_posts"), nil
}

// SearchTagsByTagName runs a top search and returns the matching hashtags
func (c *Client) SearchTagsByTagName(ctx context.Context, query string) ([]*model.Tag, error) {
	node, err := c.topSearch(ctx, query)
	if err != nil {
		return nil, err
	}

	var tags []*model.Tag
	for _, entry := range node.Nodes("hashtags") {
		if h := entry.Node("hashtag"); h != nil {
			tags = append(tags, model.NewTag(h))
		}
	}
	return tags, nil
}

func hydrateEdges(root model.Node, path ...any) []*model.Media {
	page := paginate.EdgePage(root, path...)
	medias := make([]*model.Media, 0, len(page.Nodes))
	for _, n := range page.Nodes {
		medias = append(medias, model.NewMedia(n))
	}
	return medias
}
