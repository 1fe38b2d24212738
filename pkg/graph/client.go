package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Default endpoints for the Microsoft Graph API and its token authority.
const (
	DefaultBaseURL  = "https://graph.microsoft.com/v1.0"
	DefaultScope    = "https://graph.microsoft.com/.default"
	tokenURLPattern = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
)

// ClientConfig contains the settings for a Graph client.
type ClientConfig struct {
	// BaseURL is the API root (defaults to the public Graph v1.0 endpoint)
	BaseURL string

	// TenantID is the directory tenant identifier
	TenantID string

	// ClientID is the application (client) identifier
	ClientID string

	// ClientSecret is the application client secret
	ClientSecret string

	// TokenURL overrides the token endpoint (primarily for tests)
	TokenURL string

	// Timeout is the per-request timeout
	Timeout time.Duration

	// MaxIdleConns is the connection pool size
	MaxIdleConns int

	// MaxIdleConnsPerHost is the per-host connection pool size
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long idle connections are kept
	IdleConnTimeout time.Duration

	// UserAgent is sent with every request
	UserAgent string
}

// Client is a long-lived, shared handle on the Graph API. It owns the
// token-acquisition lifecycle and the pooled HTTP transport. Query builders
// reference it but never mutate it, so no locking is needed across calls.
type Client struct {
	config ClientConfig
	http   *http.Client
}

// NewClient creates a Graph client with connection pooling and
// client-credentials token acquisition. TenantID, ClientID, and ClientSecret
// are required; their absence is a startup failure, not a per-call error.
func NewClient(config ClientConfig) (*Client, error) {
	if config.TenantID == "" {
		return nil, NewError(KindInternal, "graph client requires a tenant ID")
	}
	if config.ClientID == "" {
		return nil, NewError(KindInternal, "graph client requires a client ID")
	}
	if config.ClientSecret == "" {
		return nil, NewError(KindInternal, "graph client requires a client secret")
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.TokenURL == "" {
		config.TokenURL = fmt.Sprintf(tokenURLPattern, config.TenantID)
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	credentials := &clientcredentials.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     config.TokenURL,
		Scopes:       []string{DefaultScope},
	}

	// The token source reuses the pooled transport for token requests and
	// refreshes the bearer token on demand.
	baseClient := &http.Client{Transport: transport, Timeout: config.Timeout}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, baseClient)

	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: credentials.TokenSource(tokenCtx),
			Base:   transport,
		},
		Timeout: config.Timeout,
	}

	return &Client{config: config, http: httpClient}, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Get executes a single read query and returns the raw response body.
// Failures are returned unclassified so the retry engine can inspect the raw
// status, envelope, and Retry-After hint; classification happens at the
// retry boundary.
func (c *Client) Get(ctx context.Context, req Request) (json.RawMessage, error) {
	requestURL := req.URL(c.config.BaseURL)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, Errorf(KindInternal, "failed to create request: %v", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("client-request-id", uuid.NewString())
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}
	if req.AdvancedQuery {
		httpReq.Header.Set("ConsistencyLevel", "eventual")
	}

	slog.Debug("sending graph request",
		"path", req.Path,
		"request_id", httpReq.Header.Get("client-request-id"),
	)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Errorf(KindInvalidResponse, "failed to read response body: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIFailure(resp, body)
	}

	return body, nil
}

// List executes a collection query and unwraps the page envelope, returning
// the page's items. An absent "value" field yields an empty list; a "value"
// field of the wrong shape is an invalid response. Pagination beyond the
// first page is never followed.
func (c *Client) List(ctx context.Context, req Request) ([]json.RawMessage, error) {
	body, err := c.Get(ctx, req)
	if err != nil {
		return nil, err
	}
	return UnwrapPage(body)
}

// UnwrapPage extracts the item list from a page envelope.
func UnwrapPage(body json.RawMessage) ([]json.RawMessage, error) {
	var envelope struct {
		Value *[]json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, Errorf(KindInvalidResponse, "response is not a JSON object: %v", err)
	}
	if envelope.Value == nil {
		return []json.RawMessage{}, nil
	}
	return *envelope.Value, nil
}

// newAPIFailure builds the raw failure for a non-2xx response, parsing the
// vendor error envelope and the Retry-After header when present.
func newAPIFailure(resp *http.Response, body []byte) *apiFailure {
	failure := &apiFailure{
		status:     resp.StatusCode,
		message:    http.StatusText(resp.StatusCode),
		retryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
	}

	var envelope struct {
		Error struct {
			Code       string         `json:"code"`
			Message    string         `json:"message"`
			InnerError map[string]any `json:"innerError"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Code != "" {
		failure.code = envelope.Error.Code
		failure.message = envelope.Error.Message
		failure.inner = envelope.Error.InnerError
	} else if len(body) > 0 {
		failure.message = string(body)
	}

	return failure
}

// parseRetryAfter parses the Retry-After header value.
// It supports both delay-seconds and HTTP-date formats.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}

	var seconds int
	if _, err := fmt.Sscanf(header, "%d", &seconds); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(header); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}

	return 0
}
