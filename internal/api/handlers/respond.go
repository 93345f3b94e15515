package handlers

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body of every non-2xx response. AuthorizeURL is
// set on 401s to point the frontend at the start of the OAuth flow.
type ErrorResponse struct {
	Error        string `json:"error"`
	AuthorizeURL string `json:"authorize_url,omitempty"`
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, ErrorResponse{Error: msg})
}

// queryInt reads an optional integer query parameter. Missing or empty
// yields zero; a malformed value is a client error.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}
