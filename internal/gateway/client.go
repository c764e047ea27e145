// Package gateway is the typed HTTP client for the portal API. It is the
// only component of the client SDK that talks to the network.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	APIKeyHeader      = "apikey"
	ServiceKeyHeader  = "X-Service-Key"
	ConnectionTimeout = 5 * time.Second
)

// ErrUnreachable is returned by CheckConnection when the API did not answer
// in time.
var ErrUnreachable = errors.New("gateway unreachable")

// APIError is the decoded error envelope of a failed call.
type APIError struct {
	Status  int               `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	TraceID string            `json:"trace_id,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s (status %d)", e.Code, e.Status)
	}
	return e.Message
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// TokenProvider returns the bearer token to attach, or "" for anonymous calls.
type TokenProvider func() string

type Client struct {
	http   *resty.Client
	token  TokenProvider
	log    *zap.Logger
	apiKey string
}

type Option func(*Client)

func WithTokenProvider(p TokenProvider) Option {
	return func(c *Client) { c.token = p }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

func New(baseURL, apiKey string, log *zap.Logger, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30*time.Second).
			SetHeader(APIKeyHeader, apiKey).
			SetHeader("Accept", "application/json"),
		log:    log,
		apiKey: apiKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetTokenProvider replaces the bearer token source after construction.
func (c *Client) SetTokenProvider(p TokenProvider) {
	c.token = p
}

// CheckConnection calls /health and gives up after five seconds.
func (c *Client) CheckConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ConnectionTimeout)
	defer cancel()

	var body struct {
		Status string `json:"status"`
	}
	resp, err := c.http.R().SetContext(ctx).SetResult(&body).Get("/health")
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: no response within %s", ErrUnreachable, ConnectionTimeout)
		}
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if resp.IsError() || body.Status != "ok" {
		return &APIError{Status: resp.StatusCode(), Code: "UNAVAILABLE", Message: "gateway reported status " + body.Status}
	}
	return nil
}

type call struct {
	method  string
	path    string
	body    any
	query   map[string]string
	headers map[string]string
	out     any
}

func (c *Client) do(ctx context.Context, cl call) error {
	var apiErr APIError
	req := c.http.R().SetContext(ctx).SetError(&apiErr)
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.SetAuthToken(tok)
		}
	}
	if cl.body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(cl.body)
	}
	if len(cl.query) > 0 {
		req.SetQueryParams(cl.query)
	}
	for k, v := range cl.headers {
		req.SetHeader(k, v)
	}
	if cl.out != nil {
		req.SetResult(cl.out)
	}

	resp, err := req.Execute(cl.method, cl.path)
	if err != nil {
		c.log.Error("gateway call failed",
			zap.String("method", cl.method),
			zap.String("path", cl.path),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w", cl.method, cl.path, err)
	}

	if resp.IsError() {
		apiErr.Status = resp.StatusCode()
		if apiErr.Code == "" {
			apiErr.Code = http.StatusText(apiErr.Status)
		}
		c.log.Debug("gateway returned error",
			zap.String("method", cl.method),
			zap.String("path", cl.path),
			zap.Int("status", apiErr.Status),
			zap.String("code", apiErr.Code),
		)
		return &apiErr
	}
	return nil
}
