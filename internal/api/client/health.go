package client

import (
	"context"
	"errors"
)

// Health reports the server's liveness and readiness.
type Health struct {
	Alive bool `json:"alive"`
	Ready bool `json:"ready"`
}

// Health probes the health endpoints. An unreachable server is an error; a
// reachable one reports degraded readiness through the struct.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	h := &Health{}

	var status struct {
		Status string `json:"status"`
	}

	if err := c.get(ctx, "/healthz", nil, &status); err != nil {
		return nil, err
	}
	h.Alive = status.Status == "ok"

	err := c.get(ctx, "/readyz", nil, &status)
	var apiErr *APIError
	switch {
	case err == nil:
		h.Ready = true
	case errors.As(err, &apiErr):
		h.Ready = false
	default:
		return nil, err
	}

	return h, nil
}
