package session

import (
	"context"
	"crypto/md5"
	"encoding/hex"

	"igclient/pkg/endpoints"
	"igclient/pkg/pagedata"
)

// nullSeed replaces the signing seed when none could be obtained
const nullSeed = "NULL"

// Headers builds the request headers for the live session. When signed is
// set, x-instagram-gis carries the signature of variables, which must be
// the exact canonical JSON sent in the request URL.
func (m *Manager) Headers(signed bool, variables string) HeaderSet {
	m.mu.Lock()
	defer m.mu.Unlock()

	headers := HeaderSet{
		"referer": m.resolver.URL(endpoints.Base, nil),
	}
	if cookies := m.session.CookieString(); cookies != "" {
		headers["cookie"] = cookies
	}
	if token := m.session.CSRFToken(); token != "" {
		headers["x-csrftoken"] = token
	}
	if m.userAgent != "" {
		headers["user-agent"] = m.userAgent
	}
	if signed {
		headers["x-instagram-gis"] = GISToken(m.gisSeed, variables)
	}
	return headers
}

// GISToken signs variables as hex(md5(seed + ":" + variables)). An empty
// seed is replaced by the literal "NULL".
func GISToken(seed, variables string) string {
	if seed == "" {
		seed = nullSeed
	}
	sum := md5.Sum([]byte(seed + ":" + variables))
	return hex.EncodeToString(sum[:])
}

// EnsureGISSeed scrapes the signing seed from the base page once. Failure
// leaves the seed unset and is only logged.
func (m *Manager) EnsureGISSeed(ctx context.Context) {
	m.mu.Lock()
	if m.seedFetched {
		m.mu.Unlock()
		return
	}
	m.seedFetched = true
	m.mu.Unlock()

	resp, err := m.transport.Get(ctx, m.resolver.URL(endpoints.Base, nil), m.Headers(false, ""))
	if err != nil {
		m.logger.WithError(err).Warn("could not fetch page for request signing seed")
		return
	}
	if !resp.OK() {
		m.logger.WarnWithFields("could not fetch page for request signing seed", map[string]interface{}{
			"status": resp.StatusCode,
		})
		return
	}

	shared, err := pagedata.ExtractSharedData(resp.Body)
	if err != nil {
		m.logger.WithError(err).Warn("could not extract request signing seed")
		return
	}

	seed := pagedata.RhxGis(shared)
	m.mu.Lock()
	m.gisSeed = seed
	m.mu.Unlock()

	if seed == "" {
		m.logger.Debug("page carries no request signing seed")
	}
}
