package triplewhale

import (
	"context"
	"fmt"

	"github.com/andyle182810/triplewhale/httpclient"
)

const allStatsEndpoint = "attribution/get-all-stats"

// attributionFilterKeys is the channel whitelist the attribution endpoint expects in
// "filters". The set is opaque; keep it byte-for-byte, casing and spaces included.
var attributionFilterKeys = []string{
	"shopify",
	"amazon",
	"facebook-ads",
	"google-ads",
	"bing",
	"recharge",
	"stripe",
	"mountain",
	"criteo",
	"taboola",
	"smsbump",
	"postscript",
	"shipstation",
	"shipbob",
	"tiktok-ads",
	"twitter-ads",
	"pinterest-ads",
	"snapchat-ads",
	"influencers",
	"bing-ads",
	"pixel",
	"triple-whale",
	"klaviyo",
	"attentive",
	"GORGIAS",
	"GOOGLE_ANALYTICS",
	"ENQUIRELABS",
	"enquirelabs",
	"kno",
	"triplesurvey",
	"triplesurvey_text",
	"triplesurvey_email",
	"organic",
	"triplesurvey-none",
	"None of the above",
	"instagram",
	"youtube",
	"tw_referrer",
	"organic_and_social",
	"drip",
	"via",
	"mailchimp",
	"omnisend",
	"sms_bump",
	"meta_shop",
	"Excluded",
}

// attributionFilters is shared by every request and only ever read.
var attributionFilters = func() map[string][]string {
	filters := make(map[string][]string, len(attributionFilterKeys))
	for _, key := range attributionFilterKeys {
		filters[key] = []string{}
	}

	return filters
}()

// allStatsRequest mirrors the body the Triple Whale dashboard sends. Everything except
// the shop, dates, accounts and timezone is fixed.
type allStatsRequest struct {
	ShopDomain                string              `json:"shopDomain"`
	Model                     string              `json:"model"`
	DateModel                 string              `json:"dateModel"`
	StartDate                 string              `json:"startDate"`
	EndDate                   string              `json:"endDate"`
	Currency                  string              `json:"currency"`
	ShopCurrency              string              `json:"shopCurrency"`
	AccountIDs                []string            `json:"accountIds"`
	Timezone                  string              `json:"timezone"`
	IncludeOneDayFacebookView bool                `json:"includeOneDayFacebookView"`
	AttributionWindow         string              `json:"attributionWindow"`
	SubscriptionTags          []string            `json:"subscriptionTags"`
	PPSViewsLookbackWindow    int                 `json:"ppsViewsLookbackWindow"`
	Filters                   map[string][]string `json:"filters"`
	ShowDirect                bool                `json:"showDirect"`
	UseNewModels              bool                `json:"useNewModels"`
	IncludeCustomAdSpend      bool                `json:"includeCustomAdSpend"`
	IncludeCustomSpend        bool                `json:"includeCustomSpend"`
	UseNexus                  bool                `json:"useNexus"`
	Breakdown                 string              `json:"breakdown"`
}

func newAllStatsRequest(shopID, startDate, endDate, timezone string, accountIDs []string) allStatsRequest {
	return allStatsRequest{
		// The endpoint reads the shop id from this field.
		ShopDomain:                shopID,
		Model:                     "lastPlatformClick-v2",
		DateModel:                 "eventDate",
		StartDate:                 startDate,
		EndDate:                   endDate,
		Currency:                  "USD",
		ShopCurrency:              "USD",
		AccountIDs:                accountIDs,
		Timezone:                  timezone,
		IncludeOneDayFacebookView: false,
		AttributionWindow:         "lifetime",
		SubscriptionTags:          []string{"oneTime", "subscriptionFirstOrder", "subscriptionRecurringOrder"},
		PPSViewsLookbackWindow:    7,
		Filters:                   attributionFilters,
		ShowDirect:                false,
		UseNewModels:              true,
		IncludeCustomAdSpend:      true,
		IncludeCustomSpend:        true,
		UseNexus:                  false,
		Breakdown:                 "source",
	}
}

// GetAllStats fetches attribution stats between startDate and endDate. Both dates may
// be absolute or relative to the client clock ("yesterday", "-7 days"). Dates that
// cannot be parsed fail with ErrInvalidInput before anything is sent.
func (c *Client) GetAllStats(ctx context.Context, startDate, endDate string, opts ...CallOption) (any, error) {
	settings := newCallSettings(opts)

	now := c.clock()

	start, err := formatReportDate("startDate", startDate, c.location, now)
	if err != nil {
		return nil, err
	}

	end, err := formatReportDate("endDate", endDate, c.location, now)
	if err != nil {
		return nil, err
	}

	body := newAllStatsRequest(c.shopID, start, end, settings.timezone, compactAccountIDs(settings.accountIDs))

	result, err := httpclient.PostJSON[any](ctx, c.http, allStatsEndpoint, body)
	if err != nil {
		return nil, fmt.Errorf("triplewhale: get all stats: %w", err)
	}

	return result, nil
}

// compactAccountIDs drops empty ids and keeps order. The result is never nil so it
// encodes as [].
func compactAccountIDs(accountIDs []string) []string {
	out := make([]string, 0, len(accountIDs))

	for _, id := range accountIDs {
		if id != "" {
			out = append(out, id)
		}
	}

	return out
}
