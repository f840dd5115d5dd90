//nolint:ireturn
package httpclient

import (
	"context"
	"fmt"
	"net/http"
)

func DoJSON[T any](ctx context.Context, c *Client, method, endpoint string, body any) (T, error) {
	var result T

	resp, err := c.Do(ctx, method, endpoint, body)
	if err != nil {
		return result, err
	}

	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return result, fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	return result, nil
}

func PostJSON[T any](ctx context.Context, c *Client, endpoint string, body any) (T, error) {
	return DoJSON[T](ctx, c, http.MethodPost, endpoint, body)
}

func GetJSON[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	return DoJSON[T](ctx, c, http.MethodGet, endpoint, nil)
}
