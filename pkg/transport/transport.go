package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	igerrors "igclient/pkg/errors"
	"igclient/pkg/logger"
	"igclient/pkg/metrics"
)

// defaultMaxBodySize bounds how much of a response body is read
const defaultMaxBodySize = 10 * 1024 * 1024

// Response is what the client needs from an HTTP exchange
type Response struct {
	StatusCode int
	Body       []byte
	Cookies    map[string]string
}

// OK reports a 2xx status
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Transport issues requests and surfaces status, body and response cookies.
// It never interprets status codes.
type Transport interface {
	Get(ctx context.Context, rawURL string, headers map[string]string) (*Response, error)
	Post(ctx context.Context, rawURL string, headers map[string]string, form url.Values) (*Response, error)
}

// HTTPTransport implements Transport over net/http
type HTTPTransport struct {
	httpClient  *http.Client
	headers     map[string]string
	maxBodySize int64
	logger      logger.Logger
}

// NewHTTPTransport creates a transport with the given timeout
func NewHTTPTransport(timeout time.Duration, log logger.Logger) *HTTPTransport {
	if log == nil {
		log = logger.GetLogger()
	}

	return &HTTPTransport{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		headers: map[string]string{
			"Accept":          "*/*",
			"Accept-Language": "en-US,en;q=0.9",
			"Cache-Control":   "no-cache",
			"Pragma":          "no-cache",
		},
		maxBodySize: defaultMaxBodySize,
		logger:      log.WithField("component", "transport"),
	}
}

// WithHTTPClient swaps the underlying client, mostly for tests
func (t *HTTPTransport) WithHTTPClient(c *http.Client) *HTTPTransport {
	t.httpClient = c
	return t
}

// SetHeader sets a header sent on every request unless overridden per call
func (t *HTTPTransport) SetHeader(key, value string) {
	t.headers[key] = value
}

// Get performs a GET request
func (t *HTTPTransport) Get(ctx context.Context, rawURL string, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, igerrors.NewValidationError(fmt.Sprintf("failed to create request: %v", err))
	}
	return t.do(req, headers)
}

// Post performs a form-encoded POST request
func (t *HTTPTransport) Post(ctx context.Context, rawURL string, headers map[string]string, form url.Values) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, igerrors.NewValidationError(fmt.Sprintf("failed to create request: %v", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return t.do(req, headers)
}

func (t *HTTPTransport) do(req *http.Request, headers map[string]string) (*Response, error) {
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	t.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := t.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		metrics.ObserveRequest(req.Method, 0, duration)
		t.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, igerrors.NewNetworkError(fmt.Sprintf("%s %s", req.Method, req.URL.Redacted()), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBodySize+1))
	metrics.ObserveRequest(req.Method, resp.StatusCode, duration)
	if err != nil {
		return nil, igerrors.NewNetworkError("failed to read response body", err)
	}
	if int64(len(body)) > t.maxBodySize {
		return nil, igerrors.NewRequestError(
			fmt.Sprintf("response body of %s %s exceeds %d bytes", req.Method, req.URL.Redacted(), t.maxBodySize),
			resp.StatusCode,
			"",
		)
	}

	t.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"bytes":    len(body),
		"duration": duration,
	})

	cookies := make(map[string]string)
	for _, c := range resp.Cookies() {
		cookies[c.Name] = c.Value
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		Cookies:    cookies,
	}, nil
}

// Classify maps a response onto the client error taxonomy: 404 is a
// NotFoundError and any other non-2xx a RequestError. what names the
// resource for the error message.
func Classify(resp *Response, what string) error {
	switch {
	case resp.OK():
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return igerrors.NewNotFoundError(what + " does not exist")
	default:
		return igerrors.NewRequestError(
			fmt.Sprintf("%s: unexpected status code %d", what, resp.StatusCode),
			resp.StatusCode,
			string(resp.Body),
		)
	}
}
