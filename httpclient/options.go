package httpclient

import (
	"maps"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultTimeout      = 30 * time.Second
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderAuthorization = "Authorization"
	ContentTypeJSON     = "application/json"
)

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithDefaultHeaders merges headers into the set sent with every request.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *Client) {
		maps.Copy(c.defaultHeaders, headers)
	}
}

func WithAuth(settings AuthSettings, token string) Option {
	return func(c *Client) {
		c.auth = &settings
		c.token = token
	}
}

func WithBearerToken(token string) Option {
	return WithAuth(BearerAuth(), token)
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// WithServiceName sets the service label used for metrics. Defaults to the base URL host.
func WithServiceName(name string) Option {
	return func(c *Client) {
		c.serviceName = name
	}
}
