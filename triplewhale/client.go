// Package triplewhale is a client for the Triple Whale analytics API.
//
// A Client carries one shop's identity and the tracing headers of the session that
// issued its token. Both are fixed at construction and sent with every request.
package triplewhale

import (
	"fmt"
	"time"

	"github.com/andyle182810/triplewhale/httpclient"
)

const (
	BaseURL = "https://app.triplewhale.com/api/v2/"
	APIHost = "api.triplewhale.com"

	DefaultDatadogOrigin           = "rum"
	DefaultDatadogSamplingPriority = "1"
	DefaultTimezone                = "America/Chicago"

	HeaderShopID                  = "x-tw-shop-id"
	HeaderShopDomain              = "shop_domain"
	HeaderUser                    = "user"
	HeaderGitSHA                  = "x-tw-git-sha"
	HeaderDatadogOrigin           = "x-datadog-origin"
	HeaderDatadogParentID         = "x-datadog-parent-id"
	HeaderDatadogTraceID          = "x-datadog-trace-id"
	HeaderDatadogSamplingPriority = "x-datadog-sampling-priority"
	HeaderHost                    = "host"

	acceptAny = "application/json, text/plain, */*"
)

// Config identifies the shop and session. Values are forwarded verbatim, empty
// strings included; only the two Datadog fields with defaults are filled in.
type Config struct {
	Token                   string
	ShopID                  string
	User                    string
	ShopDomain              string
	GitSHA                  string
	DatadogParentID         string
	DatadogTraceID          string
	DatadogOrigin           string
	DatadogSamplingPriority string
}

type Client struct {
	shopID   string
	location *time.Location
	clock    func() time.Time
	http     *httpclient.Client
}

func New(cfg Config, opts ...Option) (*Client, error) {
	settings := &clientSettings{
		baseURL:  BaseURL,
		location: time.UTC,
		clock:    time.Now,
		httpOpts: nil,
	}

	for _, opt := range opts {
		opt(settings)
	}

	httpOpts := make([]httpclient.Option, 0, len(settings.httpOpts)+2)
	httpOpts = append(httpOpts,
		httpclient.WithAuth(httpclient.BearerAuth(), cfg.Token),
		httpclient.WithDefaultHeaders(defaultHeaders(cfg)),
	)
	httpOpts = append(httpOpts, settings.httpOpts...)

	httpClient, err := httpclient.New(settings.baseURL, httpOpts...)
	if err != nil {
		return nil, fmt.Errorf("triplewhale: failed to create http client: %w", err)
	}

	return &Client{
		shopID:   cfg.ShopID,
		location: settings.location,
		clock:    settings.clock,
		http:     httpClient,
	}, nil
}

func defaultHeaders(cfg Config) map[string]string {
	origin := cfg.DatadogOrigin
	if origin == "" {
		origin = DefaultDatadogOrigin
	}

	priority := cfg.DatadogSamplingPriority
	if priority == "" {
		priority = DefaultDatadogSamplingPriority
	}

	return map[string]string{
		HeaderShopID:                  cfg.ShopID,
		HeaderShopDomain:              cfg.ShopDomain,
		HeaderUser:                    cfg.User,
		httpclient.HeaderContentType:  httpclient.ContentTypeJSON,
		httpclient.HeaderAccept:       acceptAny,
		HeaderGitSHA:                  cfg.GitSHA,
		HeaderDatadogOrigin:           origin,
		HeaderDatadogParentID:         cfg.DatadogParentID,
		HeaderDatadogTraceID:          cfg.DatadogTraceID,
		HeaderDatadogSamplingPriority: priority,
		HeaderHost:                    APIHost,
	}
}

func (c *Client) BaseURL() string {
	return c.http.BaseURL()
}

// DefaultHeaders returns a copy of the headers attached to every request.
func (c *Client) DefaultHeaders() map[string]string {
	return c.http.DefaultHeaders()
}

func (c *Client) ShopID() string {
	return c.shopID
}
