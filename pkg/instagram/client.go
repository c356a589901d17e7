package instagram

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"igclient/pkg/auth"
	"igclient/pkg/cache"
	"igclient/pkg/config"
	"igclient/pkg/endpoints"
	igerrors "igclient/pkg/errors"
	"igclient/pkg/logger"
	"igclient/pkg/model"
	"igclient/pkg/paginate"
	"igclient/pkg/ratelimit"
	"igclient/pkg/session"
	"igclient/pkg/transport"
)

// Client retrieves accounts, medias, comments, stories, locations and tags.
// Calls are sequential; one Client owns one session.
type Client struct {
	transport transport.Transport
	resolver  *endpoints.Resolver
	session   *session.Manager
	usernames *cache.UsernameCache
	pacer     ratelimit.Limiter
	paging    config.PagingConfig
	logger    logger.Logger
}

// NewClient creates a client from configuration, with the credential store
// selected by cfg.Session
func NewClient(cfg *config.Config, log logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	store, err := auth.NewStore(&cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	tr := transport.NewHTTPTransport(cfg.HTTP.Timeout, log)
	return NewClientWithDeps(cfg, tr, store, log), nil
}

// NewClientWithDeps creates a client over an explicit transport and
// credential store
func NewClientWithDeps(cfg *config.Config, tr transport.Transport, store auth.CredentialStore, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	resolver := endpoints.NewResolver(cfg.Instagram.BaseURL, cfg.Instagram.APIBaseURL)
	sm := session.NewManager(tr, resolver, store, session.Options{
		Username:  cfg.Instagram.Username,
		Password:  cfg.Instagram.Password,
		UserAgent: cfg.Instagram.UserAgent,
		Fresh:     cfg.Session.Fresh,
	}, log)

	cacheSize := cfg.Cache.Size
	if cacheSize <= 0 {
		cacheSize = 1
	}

	return &Client{
		transport: tr,
		resolver:  resolver,
		session:   sm,
		usernames: cache.NewUsernameCache(cacheSize, cfg.Cache.TTL),
		pacer:     ratelimit.New(cfg.Paging.Delayed, cfg.Paging.DelayMin, cfg.Paging.DelayMax),
		paging:    cfg.Paging,
		logger:    log.WithField("component", "instagram"),
	}
}

// Login authenticates with the configured credentials. verifier answers a
// two-factor challenge and may be nil.
func (c *Client) Login(ctx context.Context, force bool, verifier session.Verifier) error {
	_, err := c.session.Login(ctx, force, verifier)
	return err
}

// Resume adopts the stored session of the configured account without
// logging in again
func (c *Client) Resume(ctx context.Context) error {
	return c.session.Resume(ctx)
}

// IsLoggedIn asks the server whether the current session is still valid
func (c *Client) IsLoggedIn(ctx context.Context) bool {
	return c.session.IsLoggedIn(ctx)
}

// Logout forgets the session, including its persisted copy
func (c *Client) Logout() error {
	return c.session.Invalidate()
}

// SessionState reports the authentication state
func (c *Client) SessionState() session.State {
	return c.session.State()
}

// UserID returns the id of the logged in account, or ""
func (c *Client) UserID() string {
	return c.session.UserID()
}

// getJSON fetches rawURL and decodes the JSON body. Signed requests carry
// the signature of variables.
func (c *Client) getJSON(ctx context.Context, rawURL string, signed bool, variables string, what string) (model.Node, error) {
	if signed {
		c.session.EnsureGISSeed(ctx)
	}

	resp, err := c.transport.Get(ctx, rawURL, c.session.Headers(signed, variables))
	if err != nil {
		return nil, err
	}
	if err := transport.Classify(resp, what); err != nil {
		c.logger.WarnWithFields("request rejected", map[string]interface{}{
			"what":   what,
			"status": resp.StatusCode,
		})
		return nil, err
	}

	node, err := model.DecodeNode(resp.Body)
	if err != nil {
		return nil, igerrors.NewParsingError(what+": response is not JSON", err)
	}
	return node, nil
}

// getStatusJSON is getJSON for endpoints that also report failures through
// a "status" field on a 2xx response
func (c *Client) getStatusJSON(ctx context.Context, rawURL string, what string) (model.Node, error) {
	resp, err := c.transport.Get(ctx, rawURL, c.session.Headers(false, ""))
	if err != nil {
		return nil, err
	}
	if err := transport.Classify(resp, what); err != nil {
		return nil, err
	}

	return decodeStatus(resp, what)
}

// getPage fetches an HTML page
func (c *Client) getPage(ctx context.Context, rawURL string, what string) (*transport.Response, error) {
	resp, err := c.transport.Get(ctx, rawURL, c.session.Headers(false, ""))
	if err != nil {
		return nil, err
	}
	if err := transport.Classify(resp, what); err != nil {
		return nil, err
	}
	return resp, nil
}

// postJSON performs a write. Besides a 2xx status the body must report
// status "ok".
func (c *Client) postJSON(ctx context.Context, rawURL string, form url.Values, what string) (model.Node, error) {
	resp, err := c.transport.Post(ctx, rawURL, c.session.Headers(false, ""), form)
	if err != nil {
		return nil, err
	}
	if err := transport.Classify(resp, what); err != nil {
		return nil, err
	}

	return decodeStatus(resp, what)
}

func decodeStatus(resp *transport.Response, what string) (model.Node, error) {
	node, err := model.DecodeNode(resp.Body)
	if err != nil {
		return nil, igerrors.NewRequestError(what+": response is not JSON", resp.StatusCode, string(resp.Body))
	}
	if err := requireStatusOK(node, what, resp); err != nil {
		return nil, err
	}
	return node, nil
}

func requireStatusOK(node model.Node, what string, resp *transport.Response) error {
	status := node.String("status")
	if status == "ok" {
		return nil
	}

	message := node.String("message")
	if message == "" {
		message = fmt.Sprintf("response status is %q", status)
	}
	return igerrors.NewRequestError(what+": "+message, resp.StatusCode, string(resp.Body))
}

// variablesJSON renders GraphQL variables canonically so the URL and the
// request signature agree
func variablesJSON(vars any) (string, error) {
	s, err := endpoints.CanonicalJSON(vars)
	if err != nil {
		return "", igerrors.NewValidationError(fmt.Sprintf("invalid query variables: %v", err))
	}
	return s, nil
}

func normalizeLimit(count int) int {
	if count < 0 {
		return paginate.Unlimited
	}
	return count
}

// listOptions returns the paginator options shared by every listing
func listOptions[T any](c *Client, name string, limit int, cursor string, hydrate func(model.Node) T) paginate.Options[T] {
	return paginate.Options[T]{
		Limit:   normalizeLimit(limit),
		Cursor:  cursor,
		Hydrate: hydrate,
		Pacer:   c.pacer,
		Budget:  c.paging.TimeLimit,
		Clock:   time.Now,
		Name:    name,
		Logger:  c.logger,
	}
}
