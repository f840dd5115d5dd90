package triplewhale_test

import (
	"sync"
	"testing"

	"github.com/andyle182810/triplewhale/testutil"
	"github.com/andyle182810/triplewhale/triplewhale"
	"github.com/stretchr/testify/require"
)

func testConfig() triplewhale.Config {
	return triplewhale.Config{
		Token:                   "tw-token",
		ShopID:                  "shop-123",
		User:                    "analyst@example.com",
		ShopDomain:              "example.myshopify.com",
		GitSHA:                  "abc1234",
		DatadogParentID:         "parent-1",
		DatadogTraceID:          "trace-1",
		DatadogOrigin:           "",
		DatadogSamplingPriority: "",
	}
}

func newTestClient(t *testing.T, server *testutil.RecordingServer, opts ...triplewhale.Option) *triplewhale.Client {
	t.Helper()

	opts = append([]triplewhale.Option{triplewhale.WithBaseURL(server.URL + "/api/v2/")}, opts...)

	client, err := triplewhale.New(testConfig(), opts...)
	require.NoError(t, err)

	return client
}

func TestNew_UsesFixedBaseURL(t *testing.T) {
	t.Parallel()

	client, err := triplewhale.New(testConfig())

	require.NoError(t, err)
	require.Equal(t, "https://app.triplewhale.com/api/v2/", client.BaseURL())
	require.Equal(t, "shop-123", client.ShopID())
}

func TestNew_BuildsDefaultHeaders(t *testing.T) {
	t.Parallel()

	client, err := triplewhale.New(testConfig())
	require.NoError(t, err)

	require.Equal(t, map[string]string{
		"x-tw-shop-id":                "shop-123",
		"shop_domain":                 "example.myshopify.com",
		"user":                        "analyst@example.com",
		"Content-Type":                "application/json",
		"Accept":                      "application/json, text/plain, */*",
		"x-tw-git-sha":                "abc1234",
		"x-datadog-origin":            "rum",
		"x-datadog-parent-id":         "parent-1",
		"x-datadog-trace-id":          "trace-1",
		"x-datadog-sampling-priority": "1",
		"host":                        "api.triplewhale.com",
	}, client.DefaultHeaders())
}

func TestNew_ExplicitDatadogValuesOverrideDefaults(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.DatadogOrigin = "synthetics"
	cfg.DatadogSamplingPriority = "2"

	client, err := triplewhale.New(cfg)
	require.NoError(t, err)

	headers := client.DefaultHeaders()
	require.Equal(t, "synthetics", headers["x-datadog-origin"])
	require.Equal(t, "2", headers["x-datadog-sampling-priority"])
}

func TestNew_ForwardsEmptyValuesVerbatim(t *testing.T) {
	t.Parallel()

	client, err := triplewhale.New(triplewhale.Config{}) //nolint:exhaustruct
	require.NoError(t, err)

	headers := client.DefaultHeaders()
	require.Len(t, headers, 11)
	require.Empty(t, headers["x-tw-shop-id"])
	require.Empty(t, headers["user"])
	require.Empty(t, headers["x-tw-git-sha"])
}

func TestNew_InvalidBaseURLFailsConstruction(t *testing.T) {
	t.Parallel()

	client, err := triplewhale.New(testConfig(), triplewhale.WithBaseURL("not a url"))

	require.Error(t, err)
	require.Nil(t, client)
}

func TestClient_SendsAuthAndHeadersOnEveryRequest(t *testing.T) {
	t.Parallel()

	server := testutil.NewJSONServer(t, `{}`)
	client := newTestClient(t, server)

	_, err := client.GetActivities(t.Context())
	require.NoError(t, err)

	_, err = client.GetAllStats(t.Context(), "2024-01-01", "2024-01-31")
	require.NoError(t, err)

	requests := server.Requests()
	require.Len(t, requests, 2)

	for _, req := range requests {
		require.Equal(t, "Bearer tw-token", req.Header.Get("Authorization"))
		require.Equal(t, "shop-123", req.Header.Get("x-tw-shop-id"))
		require.Equal(t, "example.myshopify.com", req.Header.Get("shop_domain"))
		require.Equal(t, "analyst@example.com", req.Header.Get("user"))
		require.Equal(t, "application/json", req.Header.Get("Content-Type"))
		require.Equal(t, "application/json, text/plain, */*", req.Header.Get("Accept"))
		require.Equal(t, "abc1234", req.Header.Get("x-tw-git-sha"))
		require.Equal(t, "rum", req.Header.Get("x-datadog-origin"))
		require.Equal(t, "parent-1", req.Header.Get("x-datadog-parent-id"))
		require.Equal(t, "trace-1", req.Header.Get("x-datadog-trace-id"))
		require.Equal(t, "1", req.Header.Get("x-datadog-sampling-priority"))
		require.Equal(t, "api.triplewhale.com", req.Host)
	}
}

func TestClient_SafeForConcurrentCallers(t *testing.T) {
	t.Parallel()

	const callers = 20

	server := testutil.NewJSONServer(t, `{"ok":true}`)
	client := newTestClient(t, server)

	var wg sync.WaitGroup

	errs := make(chan error, callers*2)

	for range callers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := client.GetActivities(t.Context())
			errs <- err

			_, err = client.GetAllStats(t.Context(), "2024-01-01", "2024-01-31")
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	requests := server.Requests()
	require.Len(t, requests, callers*2)

	for _, req := range requests {
		require.Equal(t, "api.triplewhale.com", req.Host)
		require.Equal(t, []string{"application/json"}, req.Header.Values("Content-Type"))
		require.Equal(t, "Bearer tw-token", req.Header.Get("Authorization"))
	}

	require.Len(t, client.DefaultHeaders(), 11)
}
