package instagram

import (
	"context"
	"fmt"

	"igclient/pkg/endpoints"
	igerrors "igclient/pkg/errors"
	"igclient/pkg/model"
	"igclient/pkg/pagedata"
)

// GetAccount fetches a profile by username from its embedded page payload
func (c *Client) GetAccount(ctx context.Context, username string) (*model.Account, error) {
	if username == "" {
		return nil, igerrors.NewValidationError("username is required")
	}

	c.logger.DebugWithFields("fetching account", map[string]interface{}{
		"username": username,
	})

	what := fmt.Sprintf("account %q", username)
	resp, err := c.getPage(ctx, c.resolver.URL(endpoints.AccountPage, map[string]string{"username": username}), what)
	if err != nil {
		return nil, err
	}

	shared, err := pagedata.ExtractSharedData(resp.Body)
	if err != nil {
		return nil, err
	}

	user := shared.Node("entry_data", "ProfilePage", 0, "graphql", "user")
	if user == nil {
		return nil, igerrors.NewNotFoundError(fmt.Sprintf("account with username %q not found", username))
	}

	account := model.NewAccount(user)
	if account.ID != "" && account.Username != "" {
		c.usernames.Set(account.ID, account.Username)
	}
	return account, nil
}

// GetAccountByID resolves the username through the private API and then
// fetches the profile
func (c *Client) GetAccountByID(ctx context.Context, id string) (*model.Account, error) {
	username, err := c.GetUsernameByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.GetAccount(ctx, username)
}

// GetUsernameByID looks up the username of an account id. Results are cached.
func (c *Client) GetUsernameByID(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", igerrors.NewValidationError("account id is required")
	}
	if username, ok := c.usernames.Get(id); ok {
		return username, nil
	}

	rawURL := c.resolver.URL(endpoints.AccountPrivateInfo, map[string]string{"user_id": id})
	node, err := c.getStatusJSON(ctx, rawURL, fmt.Sprintf("account %s", id))
	if err != nil {
		return "", err
	}

	username := node.String("user", "username")
	if username == "" {
		return "", igerrors.NewNotFoundError(fmt.Sprintf("account with id %s not found", id))
	}

	c.usernames.Set(id, username)
	return username, nil
}

// SearchAccountsByUsername runs a top search and returns the matching accounts
func (c *Client) SearchAccountsByUsername(ctx context.Context, query string) ([]*model.Account, error) {
	node, err := c.topSearch(ctx, query)
	if err != nil {
		return nil, err
	}

	var accounts []*model.Account
	for _, entry := range node.Nodes("users") {
		if user := entry.Node("user"); user != nil {
			accounts = append(accounts, model.NewAccount(user))
		}
	}
	return accounts, nil
}

// topSearch queries the general search endpoint, which reports failures
// with a non-"ok" status on a 200
func (c *Client) topSearch(ctx context.Context, query string) (model.Node, error) {
	if query == "" {
		return nil, igerrors.NewValidationError("search query is required")
	}

	rawURL := c.resolver.URL(endpoints.GeneralSearch, map[string]string{"query": query})
	return c.getStatusJSON(ctx, rawURL, fmt.Sprintf("search %q", query))
}
