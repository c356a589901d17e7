// Package session owns the authenticated session of one account: login,
// cookie persistence, re-validation, the two-factor challenge and the
// request headers derived from the live session.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"igclient/pkg/auth"
	"igclient/pkg/endpoints"
	"igclient/pkg/logger"
	"igclient/pkg/transport"
)

// State is the authentication state of a Manager
type State int

const (
	Anonymous State = iota
	Authenticating
	ChallengePending
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticating:
		return "authenticating"
	case ChallengePending:
		return "challenge_pending"
	case Authenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// HeaderSet is the set of headers sent with one request
type HeaderSet map[string]string

// Session is the cookie jar of a login. It always carries csrftoken and mid
// once authenticated, and sessionid plus ds_user_id when the login stuck.
type Session struct {
	Cookies map[string]string
}

// NewSession wraps a cookie map
func NewSession(cookies map[string]string) *Session {
	if cookies == nil {
		cookies = make(map[string]string)
	}
	return &Session{Cookies: cookies}
}

// CSRFToken returns the csrftoken cookie
func (s *Session) CSRFToken() string {
	if s == nil {
		return ""
	}
	if token := s.Cookies["csrftoken"]; token != "" {
		return token
	}
	return s.Cookies["x-csrftoken"]
}

// CookieString renders cookies as "k=v" pairs joined by "; " in key order
func (s *Session) CookieString() string {
	if s == nil {
		return ""
	}
	return cookieString(s.Cookies, "; ")
}

func cookieString(cookies map[string]string, sep string) string {
	keys := make([]string, 0, len(cookies))
	for k := range cookies {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+cookies[k])
	}
	return strings.Join(pairs, sep)
}

func (s *Session) marshal() ([]byte, error) {
	return json.Marshal(s.Cookies)
}

func unmarshalSession(blob []byte) (*Session, error) {
	cookies := make(map[string]string)
	if err := json.Unmarshal(blob, &cookies); err != nil {
		return nil, fmt.Errorf("failed to decode stored session: %w", err)
	}
	return NewSession(cookies), nil
}

// Options configure a Manager
type Options struct {
	Username  string
	Password  string
	UserAgent string
	// Fresh discards any persisted session on construction
	Fresh bool
}

// Manager is the session state machine. All methods are safe for
// concurrent use; the session itself never leaves the manager.
type Manager struct {
	transport transport.Transport
	resolver  *endpoints.Resolver
	store     auth.CredentialStore
	username  string
	password  string
	userAgent string
	logger    logger.Logger

	mu          sync.Mutex
	state       State
	session     *Session
	gisSeed     string
	seedFetched bool
}

// NewManager creates a manager in the Anonymous state
func NewManager(t transport.Transport, r *endpoints.Resolver, store auth.CredentialStore, opts Options, log logger.Logger) *Manager {
	if log == nil {
		log = logger.GetLogger()
	}

	m := &Manager{
		transport: t,
		resolver:  r,
		store:     store,
		username:  opts.Username,
		password:  opts.Password,
		userAgent: opts.UserAgent,
		logger:    log.WithField("component", "session"),
		session:   anonymousSession(),
	}

	if opts.Fresh && store != nil && opts.Username != "" {
		if err := store.ClearBlob(opts.Username); err != nil {
			m.logger.WithError(err).Warn("failed to clear persisted session")
		}
	}

	return m
}

// anonymousSession carries only a device id cookie
func anonymousSession() *Session {
	return NewSession(map[string]string{"ig_did": strings.ToUpper(uuid.NewString())})
}

// State returns the current state
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsAuthenticated reports whether a login completed
func (m *Manager) IsAuthenticated() bool {
	return m.State() == Authenticated
}

// UserID returns the ds_user_id of the logged in account, or ""
func (m *Manager) UserID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.Cookies["ds_user_id"]
}

// Username returns the configured account name
func (m *Manager) Username() string {
	return m.username
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger.DebugWithFields("session state change", map[string]interface{}{
		"from": m.state.String(),
		"to":   s.String(),
	})
	m.state = s
}

// Invalidate drops the live session and the persisted blob
func (m *Manager) Invalidate() error {
	m.mu.Lock()
	m.session = anonymousSession()
	m.state = Anonymous
	m.mu.Unlock()

	if m.store == nil || m.username == "" {
		return nil
	}
	if err := m.store.ClearBlob(m.username); err != nil && !errors.Is(err, auth.ErrCredentialsNotFound) {
		return fmt.Errorf("failed to clear persisted session: %w", err)
	}
	return nil
}

// IsLoggedIn re-validates the live session against the server
func (m *Manager) IsLoggedIn(ctx context.Context) bool {
	m.mu.Lock()
	sess := m.session
	m.mu.Unlock()
	return m.Validate(ctx, sess)
}
