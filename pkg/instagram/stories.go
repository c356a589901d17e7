package instagram

import (
	"context"

	"igclient/pkg/endpoints"
	"igclient/pkg/model"
)

// GetStories returns the live stories of the given reel owners. With no
// ids, the owners are taken from the logged in account's reel tray.
func (c *Client) GetStories(ctx context.Context, reelIDs []string) ([]*model.UserStories, error) {
	if len(reelIDs) == 0 {
		tray, err := c.getJSON(ctx, c.resolver.URL(endpoints.UserStories, nil), false, "", "reel tray")
		if err != nil {
			return nil, err
		}
		for _, edge := range tray.Nodes("data", "user", "feed_reels_tray", "edge_reels_tray_to_reel", "edges") {
			if id := edge.String("node", "id"); id != "" {
				reelIDs = append(reelIDs, id)
			}
		}
		if len(reelIDs) == 0 {
			return nil, nil
		}
	}

	vars, err := variablesJSON(map[string]any{
		"precomposed_overlay": false,
		"reel_ids":            reelIDs,
	})
	if err != nil {
		return nil, err
	}

	node, err := c.getJSON(ctx, c.resolver.URL(endpoints.Stories, map[string]string{"variables": vars}), false, "", "stories")
	if err != nil {
		return nil, err
	}

	var stories []*model.UserStories
	for _, reel := range node.Nodes("data", "reels_media") {
		stories = append(stories, model.NewUserStories(reel))
	}

	c.logger.DebugWithFields("fetched stories", map[string]interface{}{
		"reels": len(reelIDs),
		"users": len(stories),
	})
	return stories, nil
}
