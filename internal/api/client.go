package api

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/rickgao/disclosure-data/internal/model"
)

// Default upstream base URLs.
const (
	DefaultQuiverURL = "https://api.quiverquant.com"
	DefaultSECAPIURL = "https://api.sec-api.io"
)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 32 << 20

// Endpoints holds the base URL of each upstream service.
type Endpoints struct {
	Quiver string
	SECAPI string
}

// DefaultEndpoints returns the production base URLs.
func DefaultEndpoints() Endpoints {
	return Endpoints{Quiver: DefaultQuiverURL, SECAPI: DefaultSECAPIURL}
}

func (e Endpoints) base(s model.Service) string {
	if s == model.Quiver {
		return e.Quiver
	}
	return e.SECAPI
}

// Client executes queries against the upstream REST APIs.
type Client struct {
	endpoints  Endpoints
	httpClient *http.Client
	logger     *slog.Logger
	limiters   map[model.Service]*rate.Limiter
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new fetcher client.
func NewClient(endpoints Endpoints, opts ...ClientOption) *Client {
	c := &Client{
		endpoints: endpoints,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:   slog.Default(),
		limiters: make(map[model.Service]*rate.Limiter),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit throttles requests to service. A zero or negative limit
// leaves the service unthrottled.
func WithRateLimit(service model.Service, limit rate.Limit, burst int) ClientOption {
	return func(c *Client) {
		if limit <= 0 {
			delete(c.limiters, service)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiters[service] = rate.NewLimiter(limit, burst)
	}
}
