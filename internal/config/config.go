package config

import (
	"fmt"
	"time"

	"github.com/andyle182810/triplewhale/triplewhale"
	"github.com/andyle182810/triplewhale/validator"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Application
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"  validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	// Metrics are written in the Prometheus text format when a file is set.
	MetricsFile      string `env:"METRICS_FILE"`
	MetricsNamespace string `env:"METRICS_NAMESPACE" envDefault:"triplewhale"`

	// Triple Whale session
	Token      string `env:"TRIPLEWHALE_TOKEN,unset" validate:"required"`
	ShopID     string `env:"TRIPLEWHALE_SHOP_ID"     validate:"required"`
	User       string `env:"TRIPLEWHALE_USER"`
	ShopDomain string `env:"TRIPLEWHALE_SHOP_DOMAIN"`
	GitSHA     string `env:"TRIPLEWHALE_GIT_SHA"`

	// Tracing
	DatadogParentID         string `env:"DATADOG_PARENT_ID"`
	DatadogTraceID          string `env:"DATADOG_TRACE_ID"`
	DatadogOrigin           string `env:"DATADOG_ORIGIN"            envDefault:"rum"`
	DatadogSamplingPriority string `env:"DATADOG_SAMPLING_PRIORITY" envDefault:"1"`

	// Requests
	BaseURL  string        `env:"TRIPLEWHALE_BASE_URL" envDefault:"https://app.triplewhale.com/api/v2/" validate:"url"`
	Timeout  time.Duration `env:"TRIPLEWHALE_TIMEOUT"  envDefault:"30s"                                 validate:"gt=0"`
	Timezone string        `env:"TRIPLEWHALE_TIMEZONE" envDefault:"America/Chicago"                     validate:"timezone"`
}

func New() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New("env").Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) ClientConfig() triplewhale.Config {
	return triplewhale.Config{
		Token:                   c.Token,
		ShopID:                  c.ShopID,
		User:                    c.User,
		ShopDomain:              c.ShopDomain,
		GitSHA:                  c.GitSHA,
		DatadogParentID:         c.DatadogParentID,
		DatadogTraceID:          c.DatadogTraceID,
		DatadogOrigin:           c.DatadogOrigin,
		DatadogSamplingPriority: c.DatadogSamplingPriority,
	}
}

// Location is the zone report dates are read in; Timezone has already been validated.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}

	return loc
}
