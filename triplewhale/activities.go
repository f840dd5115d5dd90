package triplewhale

import (
	"context"
	"fmt"

	"github.com/andyle182810/triplewhale/httpclient"
)

const activitiesEndpoint = "activities/get-activities"

type activitiesRequest struct {
	Page     int    `json:"page"`
	Timezone string `json:"timezone"`
	ShopID   string `json:"shopId"`
}

// GetActivities fetches one page of the shop's activity feed. The decoded response is
// returned as-is.
func (c *Client) GetActivities(ctx context.Context, opts ...CallOption) (any, error) {
	settings := newCallSettings(opts)

	body := activitiesRequest{
		Page:     settings.page,
		Timezone: settings.timezone,
		ShopID:   c.shopID,
	}

	result, err := httpclient.PostJSON[any](ctx, c.http, activitiesEndpoint, body)
	if err != nil {
		return nil, fmt.Errorf("triplewhale: get activities: %w", err)
	}

	return result, nil
}
