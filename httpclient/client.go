package httpclient

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client struct {
	baseURL        *url.URL
	restyClient    *resty.Client
	defaultHeaders map[string]string
	auth           *AuthSettings
	token          string
	timeout        time.Duration
	httpClient     *http.Client
	transport      http.RoundTripper
	logger         zerolog.Logger
	metrics        *Metrics
	serviceName    string
}

func New(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	if !parsed.IsAbs() || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q is not absolute", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL: parsed,
		defaultHeaders: map[string]string{
			HeaderContentType: ContentTypeJSON,
		},
		auth:        nil,
		token:       "",
		timeout:     DefaultTimeout,
		httpClient:  nil,
		transport:   nil,
		logger:      zerolog.Nop(),
		metrics:     nil,
		serviceName: parsed.Host,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.auth.validate(); err != nil {
		return nil, err
	}

	c.restyClient = c.buildRestyClient()

	return c, nil
}

func (c *Client) buildRestyClient() *resty.Client {
	var rc *resty.Client
	if c.httpClient != nil {
		rc = resty.NewWithClient(c.httpClient)
	} else {
		rc = resty.New()
	}

	transport := c.transport
	if transport == nil && c.httpClient != nil {
		transport = c.httpClient.Transport
	}

	if transport == nil {
		transport = http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert
	}

	if c.metrics != nil {
		transport = c.metrics.wrap(c.serviceName, transport)
	}

	rc.SetTransport(transport).
		SetTimeout(c.timeout).
		SetRetryCount(0).
		SetLogger(newRestyLogger(c.logger)).
		SetHeaders(c.defaultHeaders)

	c.auth.apply(rc, c.token)

	if host, ok := c.hostHeader(); ok {
		rc.SetPreRequestHook(func(_ *resty.Client, req *http.Request) error {
			req.Host = host

			return nil
		})
	}

	rc.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		c.logger.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Dur("latency", resp.Time()).
			Msg("Outbound request completed")

		return nil
	})

	return rc
}

// hostHeader looks up a "host" default header. net/http ignores Host in the header
// map, so it is applied to the request directly.
func (c *Client) hostHeader() (string, bool) {
	for k, v := range c.defaultHeaders {
		if strings.EqualFold(k, "host") {
			return v, true
		}
	}

	return "", false
}

func (c *Client) Post(ctx context.Context, endpoint string, body any) (*Response, error) {
	return c.Do(ctx, http.MethodPost, endpoint, body)
}

func (c *Client) Get(ctx context.Context, endpoint string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, endpoint, nil)
}

// Do sends method to endpoint resolved against the base URL. A non-2xx status is
// returned as *ServiceError together with the response.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any) (*Response, error) {
	target, err := c.ResolveURL(endpoint)
	if err != nil {
		return nil, err
	}

	req := c.restyClient.R().SetContext(ctx)

	if body != nil {
		payload, err := encodeBody(body)
		if err != nil {
			return nil, err
		}

		req.SetBody(payload)
	}

	resp, err := req.Execute(method, target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	response := &Response{
		StatusCode: resp.StatusCode(),
		Headers:    flattenHeaders(resp.Header()),
		Body:       resp.Body(),
	}

	if !resp.IsSuccess() {
		return response, newServiceErrorFromBody(response)
	}

	return response, nil
}

func (c *Client) ResolveURL(endpoint string) (string, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCreateRequest, err)
	}

	return c.baseURL.ResolveReference(ref).String(), nil
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) DefaultHeaders() map[string]string {
	return maps.Clone(c.defaultHeaders)
}

func encodeBody(body any) ([]byte, error) {
	switch v := body.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		payload, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeBody, err)
		}

		return payload, nil
	}
}

func flattenHeaders(header http.Header) map[string]string {
	headers := make(map[string]string, len(header))
	for k := range header {
		headers[k] = header.Get(k)
	}

	return headers
}
