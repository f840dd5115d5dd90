package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/andyle182810/triplewhale/httpclient"
	"github.com/andyle182810/triplewhale/internal/config"
	"github.com/andyle182810/triplewhale/logutil"
	"github.com/andyle182810/triplewhale/triplewhale"
	_ "github.com/joho/godotenv/autoload"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var errUsage = errors.New("usage: triplewhale <activities|stats> [flags]")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		stop()
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logutil.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogPretty)
	zerolog.SetGlobalLevel(logutil.ParseZerologLevel(cfg.LogLevel))
	log.Logger = logger

	opts := []triplewhale.Option{
		triplewhale.WithBaseURL(cfg.BaseURL),
		triplewhale.WithTimeout(cfg.Timeout),
		triplewhale.WithLocation(cfg.Location()),
		triplewhale.WithLogger(logger),
	}

	var registry *prometheus.Registry

	if cfg.MetricsFile != "" {
		registry = prometheus.NewRegistry()

		metrics := httpclient.NewMetrics(cfg.MetricsNamespace)
		if err := metrics.Register(registry); err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}

		opts = append(opts, triplewhale.WithMetrics(metrics))
	}

	client, err := triplewhale.New(cfg.ClientConfig(), opts...)
	if err != nil {
		return err
	}

	result, err := dispatch(ctx, client, cfg, args)

	if registry != nil {
		if writeErr := prometheus.WriteToTextfile(cfg.MetricsFile, registry); writeErr != nil {
			log.Error().Err(writeErr).Str("path", cfg.MetricsFile).Msg("Failed to write metrics")
		}
	}

	if err != nil {
		return err
	}

	return writeJSON(stdout, result)
}

func dispatch(ctx context.Context, client *triplewhale.Client, cfg *config.Config, args []string) (any, error) {
	if len(args) == 0 {
		return nil, errUsage
	}

	switch args[0] {
	case "activities":
		return runActivities(ctx, client, cfg, args[1:])
	case "stats":
		return runStats(ctx, client, cfg, args[1:])
	default:
		return nil, fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func runActivities(ctx context.Context, client *triplewhale.Client, cfg *config.Config, args []string) (any, error) {
	fs := flag.NewFlagSet("activities", flag.ContinueOnError)
	page := fs.Int("page", 0, "activities page")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	log.Debug().Int("page", *page).Msg("Fetching activities")

	return client.GetActivities(ctx,
		triplewhale.WithPage(*page),
		triplewhale.WithTimezone(cfg.Timezone),
	)
}

func runStats(ctx context.Context, client *triplewhale.Client, cfg *config.Config, args []string) (any, error) {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	start := fs.String("start", "", "start date, e.g. 2024-01-01")
	end := fs.String("end", "", "end date, e.g. 2024-01-31")
	accounts := fs.String("accounts", "", "comma separated ad account ids")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	log.Debug().Str("start", *start).Str("end", *end).Msg("Fetching attribution stats")

	return client.GetAllStats(ctx, *start, *end,
		triplewhale.WithTimezone(cfg.Timezone),
		triplewhale.WithAccountIDs(strings.Split(*accounts, ",")...),
	)
}

func writeJSON(w io.Writer, value any) error {
	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	_, err = fmt.Fprintln(w, string(out))

	return err
}
