package instagram

import (
	"context"
	"fmt"

	"igclient/pkg/endpoints"
	igerrors "igclient/pkg/errors"
	"igclient/pkg/model"
	"igclient/pkg/paginate"
)

func (c *Client) locationJSON(ctx context.Context, id, maxID string) (model.Node, error) {
	if id == "" {
		return nil, igerrors.NewValidationError("location id is required")
	}
	rawURL := c.resolver.URL(endpoints.MediasByLocation, map[string]string{"location_id": id, "max_id": maxID})
	return c.getJSON(ctx, rawURL, false, "", "location "+id)
}

// GetLocationByID fetches a location
func (c *Client) GetLocationByID(ctx context.Context, id string) (*model.Location, error) {
	node, err := c.locationJSON(ctx, id, "")
	if err != nil {
		return nil, err
	}

	raw := node.Node("graphql", "location")
	if raw == nil {
		return nil, igerrors.NewNotFoundError(fmt.Sprintf("location %s not found", id))
	}
	return model.NewLocation(raw), nil
}

// GetMediasByLocationID returns up to count medias posted at a location
func (c *Client) GetMediasByLocationID(ctx context.Context, id string, count int, maxID string) ([]*model.Media, error) {
	fetch := func(ctx context.Context, cursor string) (*paginate.Page, error) {
		node, err := c.locationJSON(ctx, id, cursor)
		if err != nil {
			return nil, err
		}
		return paginate.EdgePage(node, "graphql", "location", "edge_location_to_media"), nil
	}

	res, err := c.collectMedias(ctx, "location_medias", fetch, count, maxID, nil)
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

// GetCurrentTopMediasByLocationID returns the top posts of a location
func (c *Client) GetCurrentTopMediasByLocationID(ctx context.Context, id string) ([]*model.Media, error) {
	node, err := c.locationJSON(ctx, id, "")
	if err != nil {
		return nil, err
	}
	return hydrateEdges(node, "graphql", "location", "edge_location_to_top_posts"), nil
}
