package instagram

import (
	"context"
	"net/url"

	"igclient/pkg/endpoints"
	igerrors "igclient/pkg/errors"
	"igclient/pkg/model"
)

func (c *Client) write(ctx context.Context, endpoint string, params map[string]string, form url.Values, what string) (model.Node, error) {
	for name, value := range params {
		if value == "" {
			return nil, igerrors.NewValidationError(name + " is required")
		}
	}

	node, err := c.postJSON(ctx, c.resolver.URL(endpoint, params), form, what)
	if err != nil {
		c.logger.WithError(err).WarnWithFields("write rejected", map[string]interface{}{
			"what": what,
		})
		return nil, err
	}

	c.logger.InfoWithFields("write accepted", map[string]interface{}{
		"what": what,
	})
	return node, nil
}

// Like likes a media
func (c *Client) Like(ctx context.Context, mediaID string) error {
	_, err := c.write(ctx, endpoints.Like, map[string]string{"media_id": mediaID}, nil, "like media "+mediaID)
	return err
}

// Unlike removes a like from a media
func (c *Client) Unlike(ctx context.Context, mediaID string) error {
	_, err := c.write(ctx, endpoints.Unlike, map[string]string{"media_id": mediaID}, nil, "unlike media "+mediaID)
	return err
}

// AddComment posts a comment, optionally as a reply, and returns it
func (c *Client) AddComment(ctx context.Context, mediaID, text, repliedToCommentID string) (*model.Comment, error) {
	if text == "" {
		return nil, igerrors.NewValidationError("comment text is required")
	}

	form := url.Values{}
	form.Set("comment_text", text)
	if repliedToCommentID != "" {
		form.Set("replied_to_comment_id", repliedToCommentID)
	}

	node, err := c.write(ctx, endpoints.AddComment, map[string]string{"media_id": mediaID}, form, "comment on media "+mediaID)
	if err != nil {
		return nil, err
	}
	return model.NewComment(node), nil
}

// DeleteComment removes a comment from a media
func (c *Client) DeleteComment(ctx context.Context, mediaID, commentID string) error {
	_, err := c.write(ctx, endpoints.DeleteComment, map[string]string{
		"media_id":   mediaID,
		"comment_id": commentID,
	}, nil, "delete comment "+commentID)
	return err
}

// Follow follows an account
func (c *Client) Follow(ctx context.Context, accountID string) error {
	_, err := c.write(ctx, endpoints.Follow, map[string]string{"account_id": accountID}, nil, "follow account "+accountID)
	return err
}

// Unfollow stops following an account
func (c *Client) Unfollow(ctx context.Context, accountID string) error {
	_, err := c.write(ctx, endpoints.Unfollow, map[string]string{"account_id": accountID}, nil, "unfollow account "+accountID)
	return err
}
