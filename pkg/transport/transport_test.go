package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	igerrors "igclient/pkg/errors"
	"igclient/pkg/logger"
)

// mockRoundTripper lets tests fail a request before it reaches the network
type mockRoundTripper struct {
	roundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.roundTripFunc(req)
}

func TestGetSurfacesStatusBodyAndCookies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "sessionid=abc", r.Header.Get("cookie"))
		assert.Equal(t, "TestAgent/1.0", r.Header.Get("user-agent"))
		assert.Equal(t, "en-US,en;q=0.9", r.Header.Get("Accept-Language"))

		http.SetCookie(w, &http.Cookie{Name: "ds_user_id", Value: "3"})
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "tok"})
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	tr := NewHTTPTransport(5*time.Second, logger.NewNopLogger())
	resp, err := tr.Get(context.Background(), server.URL, map[string]string{
		"cookie":     "sessionid=abc",
		"user-agent": "TestAgent/1.0",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.False(t, resp.OK())
	assert.JSONEq(t, `{"status":"ok"}`, string(resp.Body))
	assert.Equal(t, map[string]string{"ds_user_id": "3", "csrftoken": "tok"}, resp.Cookies)
}

func TestPostSendsForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "kevin", r.PostForm.Get("username"))
		assert.Equal(t, "p@ss word", r.PostForm.Get("password"))
		_, _ = w.Write([]byte(`{"authenticated":true}`))
	}))
	defer server.Close()

	tr := NewHTTPTransport(5*time.Second, logger.NewNopLogger())
	resp, err := tr.Post(context.Background(), server.URL, nil, url.Values{
		"username": {"kevin"},
		"password": {"p@ss word"},
	})
	require.NoError(t, err)
	assert.True(t, resp.OK())
}

func TestNetworkFailureIsTyped(t *testing.T) {
	tr := NewHTTPTransport(time.Second, logger.NewNopLogger()).WithHTTPClient(&http.Client{
		Transport: &mockRoundTripper{roundTripFunc: func(*http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		}},
	})

	_, err := tr.Get(context.Background(), "https://www.instagram.com/", nil)
	require.Error(t, err)
	assert.True(t, igerrors.IsNetwork(err))
}

func TestOversizedBodyIsRejected(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"at limit", 16, false},
		{"one byte over", 17, true},
		{"far over", 64, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewHTTPTransport(time.Second, logger.NewNopLogger()).WithHTTPClient(&http.Client{
				Transport: &mockRoundTripper{roundTripFunc: func(req *http.Request) (*http.Response, error) {
					return &http.Response{
						StatusCode: http.StatusOK,
						Body:       io.NopCloser(strings.NewReader(strings.Repeat("x", tt.size))),
						Header:     make(http.Header),
						Request:    req,
					}, nil
				}},
			})
			tr.maxBodySize = 16

			resp, err := tr.Get(context.Background(), "https://www.instagram.com/", nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, igerrors.IsRequest(err))
				assert.Contains(t, err.Error(), "exceeds 16 bytes")
				return
			}
			require.NoError(t, err)
			assert.Len(t, resp.Body, tt.size)
		})
	}
}

func TestCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPTransport(time.Second, logger.NewNopLogger()).Get(ctx, server.URL, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantErr   bool
		checkType func(error) bool
	}{
		{"ok", 200, false, nil},
		{"created", 201, false, nil},
		{"not found", 404, true, igerrors.IsNotFound},
		{"forbidden", 403, true, igerrors.IsRequest},
		{"server error", 500, true, igerrors.IsRequest},
		{"redirect", 302, true, igerrors.IsRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(&Response{StatusCode: tt.status, Body: []byte("body")}, "account kevin")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, tt.checkType(err))
			assert.Equal(t, tt.status, igerrors.StatusCode(err))
		})
	}
}

func TestClassifyCarriesBody(t *testing.T) {
	err := Classify(&Response{StatusCode: 500, Body: []byte("upstream exploded")}, "tag feed")

	var typed *igerrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, "upstream exploded", typed.Body)
}
