package client

import (
	"context"
)

// Authorization is the response of the authorize endpoint.
type Authorization struct {
	AuthorizationURL string `json:"authorization_url"`
}

// Authorize starts the OAuth flow and returns the URL the user must open in
// a browser. The provider redirects back to the server's callback endpoint,
// so the rest of the flow happens without the CLI.
func (c *Client) Authorize(ctx context.Context) (*Authorization, error) {
	out := &Authorization{}
	if err := c.get(ctx, "/api/v1/authorize", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}
