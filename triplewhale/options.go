package triplewhale

import (
	"net/http"
	"time"

	"github.com/andyle182810/triplewhale/httpclient"
	"github.com/rs/zerolog"
)

type clientSettings struct {
	baseURL  string
	location *time.Location
	clock    func() time.Time
	httpOpts []httpclient.Option
}

type Option func(*clientSettings)

// WithBaseURL points the client at another host, such as a proxy or a test server.
func WithBaseURL(baseURL string) Option {
	return func(s *clientSettings) {
		s.baseURL = baseURL
	}
}

// WithLocation sets the location used to interpret report dates that carry no
// offset. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(s *clientSettings) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithClock replaces time.Now as the reference for relative report dates such as
// "yesterday" or "-7 days".
func WithClock(clock func() time.Time) Option {
	return func(s *clientSettings) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return withHTTPOption(httpclient.WithTimeout(timeout))
}

func WithHTTPClient(httpClient *http.Client) Option {
	return withHTTPOption(httpclient.WithHTTPClient(httpClient))
}

func WithTransport(transport http.RoundTripper) Option {
	return withHTTPOption(httpclient.WithTransport(transport))
}

func WithLogger(logger zerolog.Logger) Option {
	return withHTTPOption(httpclient.WithLogger(logger.With().Str("client", "triplewhale").Logger()))
}

func WithMetrics(metrics *httpclient.Metrics) Option {
	return withHTTPOption(httpclient.WithMetrics(metrics), httpclient.WithServiceName("triplewhale"))
}

func withHTTPOption(opts ...httpclient.Option) Option {
	return func(s *clientSettings) {
		s.httpOpts = append(s.httpOpts, opts...)
	}
}

type callSettings struct {
	page       int
	timezone   string
	accountIDs []string
}

func newCallSettings(opts []CallOption) *callSettings {
	settings := &callSettings{
		page:       0,
		timezone:   DefaultTimezone,
		accountIDs: nil,
	}

	for _, opt := range opts {
		opt(settings)
	}

	return settings
}

type CallOption func(*callSettings)

// WithPage selects the activities page. Ignored by GetAllStats.
func WithPage(page int) CallOption {
	return func(s *callSettings) {
		s.page = page
	}
}

func WithTimezone(timezone string) CallOption {
	return func(s *callSettings) {
		s.timezone = timezone
	}
}

// WithAccountIDs restricts stats to the given ad accounts. Ignored by GetActivities.
func WithAccountIDs(accountIDs ...string) CallOption {
	return func(s *callSettings) {
		s.accountIDs = accountIDs
	}
}
