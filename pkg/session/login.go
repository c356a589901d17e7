package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"igclient/pkg/auth"
	"igclient/pkg/endpoints"
	igerrors "igclient/pkg/errors"
	"igclient/pkg/metrics"
	"igclient/pkg/pagedata"
	"igclient/pkg/transport"
)

// Choice is one verification method offered by the challenge page
type Choice struct {
	Label string
	Value string
}

// Verifier answers the two-factor challenge
type Verifier interface {
	// ChooseMethod picks one of choices and returns its Value
	ChooseMethod(choices []Choice) (string, error)
	// ProvideCode returns the security code the user received
	ProvideCode() (string, error)
}

type loginResponse struct {
	Authenticated *bool  `json:"authenticated"`
	Message       string `json:"message"`
	CheckpointURL string `json:"checkpoint_url"`
	Status        string `json:"status"`
}

// Login authenticates the configured account. A persisted session is
// reused when the server still accepts it, unless force is set, in which
// case the live and persisted sessions are discarded first. verifier
// may be nil, in which case a challenge fails the login.
func (m *Manager) Login(ctx context.Context, force bool, verifier Verifier) (HeaderSet, error) {
	if m.username == "" || m.password == "" {
		metrics.LoginOutcome("failed")
		return nil, igerrors.NewAuthError("user credentials not provided", 0, "")
	}

	if force {
		if err := m.Invalidate(); err != nil {
			m.logger.WithError(err).Warn("failed to discard previous session")
		}
	} else if m.restore(ctx) {
		return m.Headers(false, ""), nil
	}

	m.setState(Authenticating)
	cookies, err := m.authenticate(ctx, verifier)
	if err != nil {
		m.setState(Anonymous)
		metrics.LoginOutcome("failed")
		return nil, err
	}

	sess := NewSession(cookies)
	m.mu.Lock()
	m.session = sess
	m.state = Authenticated
	m.mu.Unlock()

	m.persist(sess)
	metrics.LoginOutcome("login")
	m.logger.InfoWithFields("logged in", map[string]interface{}{
		"username": m.username,
		"user_id":  cookies["ds_user_id"],
	})

	return m.Headers(false, ""), nil
}

// Resume adopts the persisted session of the configured account when the
// server still accepts it. Unlike Login it needs no password.
func (m *Manager) Resume(ctx context.Context) error {
	if m.username == "" {
		return igerrors.NewAuthError("no username configured", 0, "")
	}
	if !m.restore(ctx) {
		return igerrors.NewAuthError(fmt.Sprintf("no valid stored session for %s", m.username), 0, "")
	}
	return nil
}

func (m *Manager) restore(ctx context.Context) bool {
	sess := m.loadPersisted()
	if sess == nil || !m.Validate(ctx, sess) {
		return false
	}

	m.mu.Lock()
	m.session = sess
	m.state = Authenticated
	m.mu.Unlock()

	metrics.LoginOutcome("reused")
	m.logger.InfoWithFields("reusing persisted session", map[string]interface{}{
		"username": m.username,
	})
	return true
}

func (m *Manager) loadPersisted() *Session {
	if m.store == nil {
		return nil
	}

	blob, err := m.store.ReadBlob(m.username)
	if err != nil {
		if !errors.Is(err, auth.ErrCredentialsNotFound) {
			m.logger.WithError(err).Warn("failed to read persisted session")
		}
		return nil
	}

	sess, err := unmarshalSession(blob)
	if err != nil {
		m.logger.WithError(err).Warn("ignoring unreadable persisted session")
		return nil
	}
	return sess
}

func (m *Manager) persist(sess *Session) {
	if m.store == nil {
		return
	}

	blob, err := sess.marshal()
	if err == nil {
		err = m.store.WriteBlob(m.username, blob)
	}
	if err != nil {
		m.logger.WithError(err).Warn("failed to persist session")
	}
}

// authenticate runs the credential exchange and returns the cookie jar of
// the new session
func (m *Manager) authenticate(ctx context.Context, verifier Verifier) (map[string]string, error) {
	baseURL := m.resolver.URL(endpoints.Base, nil)

	anon := HeaderSet{}
	if m.userAgent != "" {
		anon["user-agent"] = m.userAgent
	}

	page, err := m.transport.Get(ctx, baseURL, anon)
	if err != nil {
		return nil, err
	}
	if err := transport.Classify(page, "login page"); err != nil {
		return nil, err
	}

	csrfToken := pagedata.ExtractCSRFToken(page.Body, page.Cookies)
	if csrfToken == "" {
		return nil, igerrors.NewAuthError("could not obtain a csrf token", page.StatusCode, "")
	}

	mid, err := m.fetchMID(ctx, anon)
	if err != nil {
		return nil, err
	}

	cookies := make(map[string]string, len(page.Cookies)+4)
	for k, v := range page.Cookies {
		cookies[k] = v
	}
	cookies["csrftoken"] = csrfToken

	headers := HeaderSet{
		"cookie":      fmt.Sprintf("ig_cb=1; csrftoken=%s; mid=%s;", csrfToken, mid),
		"referer":     baseURL,
		"x-csrftoken": csrfToken,
	}
	if m.userAgent != "" {
		headers["user-agent"] = m.userAgent
	}

	resp, err := m.transport.Post(ctx, m.resolver.URL(endpoints.Login, nil), headers, url.Values{
		"username": {m.username},
		"password": {m.password},
	})
	if err != nil {
		return nil, err
	}

	var body loginResponse
	decodeErr := json.Unmarshal(resp.Body, &body)

	switch {
	case resp.OK():
		if decodeErr != nil {
			return nil, igerrors.NewAuthError("unreadable login response", resp.StatusCode, string(resp.Body))
		}
		if body.Authenticated == nil || !*body.Authenticated {
			return nil, igerrors.NewAuthError("user credentials are wrong", resp.StatusCode, string(resp.Body))
		}
		mergeCookies(cookies, resp.Cookies)

	case resp.StatusCode == http.StatusBadRequest && decodeErr == nil &&
		body.Message == "checkpoint_required" && verifier != nil:
		m.setState(ChallengePending)
		m.logger.Info("login requires two-factor verification")

		mergeCookies(cookies, resp.Cookies)
		if err := m.challenge(ctx, body.CheckpointURL, cookies, verifier); err != nil {
			return nil, err
		}

	default:
		return nil, igerrors.NewAuthError(
			fmt.Sprintf("login failed with status %d", resp.StatusCode),
			resp.StatusCode,
			string(resp.Body),
		)
	}

	cookies["mid"] = mid
	return cookies, nil
}

// fetchMID reads the machine id, which the endpoint returns as plain text
func (m *Manager) fetchMID(ctx context.Context, headers HeaderSet) (string, error) {
	resp, err := m.transport.Get(ctx, m.resolver.URL(endpoints.MachineID, nil), headers)
	if err != nil {
		return "", err
	}
	if err := transport.Classify(resp, "machine id"); err != nil {
		return "", err
	}
	return strings.TrimSpace(string(resp.Body)), nil
}

func mergeCookies(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}

// Validate asks the server whether sess is still logged in: the base page
// must answer 2xx and set a ds_user_id cookie. Any failure counts as not
// logged in.
func (m *Manager) Validate(ctx context.Context, sess *Session) bool {
	if sess == nil || sess.Cookies["sessionid"] == "" {
		return false
	}

	csrfToken := sess.CSRFToken()
	headers := HeaderSet{
		"cookie":      fmt.Sprintf("ig_cb=1; csrftoken=%s; sessionid=%s;", csrfToken, sess.Cookies["sessionid"]),
		"referer":     m.resolver.URL(endpoints.Base, nil),
		"x-csrftoken": csrfToken,
	}
	if m.userAgent != "" {
		headers["user-agent"] = m.userAgent
	}

	resp, err := m.transport.Get(ctx, m.resolver.URL(endpoints.Base, nil), headers)
	if err != nil {
		m.logger.WithError(err).Debug("session validation request failed")
		return false
	}
	if !resp.OK() {
		return false
	}
	_, ok := resp.Cookies["ds_user_id"]
	return ok
}
