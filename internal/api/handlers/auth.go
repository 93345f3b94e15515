package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/diggerweb/backend/internal/oauth"
	domain "github.com/diggerweb/backend/pkg/types"
)

const (
	oauthSessionName = "diggerweb_oauth"

	sessionKeyRequestToken  = "request_token"
	sessionKeyRequestSecret = "request_secret"
)

// Exchanger drives the OAuth1 flow; satisfied by oauth.Exchange.
type Exchanger interface {
	Begin(ctx context.Context) (authURL, requestToken, requestSecret string, err error)
	Complete(ctx context.Context, sessionToken, sessionSecret, echoedToken, verifier string) (*domain.Credentials, error)
}

// AuthHandler serves the two legs of the OAuth flow the backend fronts:
// authorize issues a request token and hands the user the provider URL,
// callback finishes the exchange when the provider redirects back.
type AuthHandler struct {
	exchange      Exchanger
	sessionMaxAge int
	logger        *slog.Logger
}

// AuthOption configures the AuthHandler.
type AuthOption func(*AuthHandler)

// WithAuthLogger sets the logger.
func WithAuthLogger(l *slog.Logger) AuthOption {
	return func(h *AuthHandler) {
		h.logger = l
	}
}

// NewAuthHandler creates a new AuthHandler. sessionMaxAge bounds, in
// seconds, how long the request-token pair survives between authorize and
// callback.
func NewAuthHandler(ex Exchanger, sessionMaxAge int, opts ...AuthOption) *AuthHandler {
	h := &AuthHandler{
		exchange:      ex,
		sessionMaxAge: sessionMaxAge,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// AuthorizeResponse is the body of a successful authorize call.
type AuthorizeResponse struct {
	AuthorizationURL string `json:"authorization_url"`
}

// Authorize handles GET /api/v1/authorize. It obtains a request token,
// parks the pair in the cookie session and returns the provider URL the
// user must visit.
func (h *AuthHandler) Authorize(c echo.Context) error {
	authURL, token, secret, err := h.exchange.Begin(c.Request().Context())
	if errors.Is(err, oauth.ErrNotConfigured) {
		return errorJSON(c, http.StatusInternalServerError,
			"discogs consumer credentials not configured")
	}
	if err != nil {
		h.logger.Error("authorize failed", "err", err)
		return errorJSON(c, http.StatusInternalServerError, "obtaining request token failed")
	}

	sess, _ := session.Get(oauthSessionName, c)
	sess.Options = &sessions.Options{
		Path:     "/api/v1",
		MaxAge:   h.sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	sess.Values[sessionKeyRequestToken] = token
	sess.Values[sessionKeyRequestSecret] = secret
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		h.logger.Error("saving oauth session failed", "err", err)
		return errorJSON(c, http.StatusInternalServerError, "saving session failed")
	}

	return c.JSON(http.StatusOK, AuthorizeResponse{AuthorizationURL: authURL})
}

// CallbackResponse is the body of a successful callback.
type CallbackResponse struct {
	Message string `json:"message"`
}

// Callback handles GET /api/v1/callback. The provider redirects here with
// the echoed request token and the verifier; a completed exchange replaces
// the stored credentials. The session is cleared whatever the outcome so a
// failed attempt restarts from authorize.
func (h *AuthHandler) Callback(c echo.Context) error {
	echoedToken := c.QueryParam("oauth_token")
	verifier := c.QueryParam("oauth_verifier")
	if echoedToken == "" || verifier == "" {
		return errorJSON(c, http.StatusBadRequest,
			"oauth_token and oauth_verifier parameters are required")
	}

	sess, _ := session.Get(oauthSessionName, c)
	sessionToken, _ := sess.Values[sessionKeyRequestToken].(string)
	sessionSecret, _ := sess.Values[sessionKeyRequestSecret].(string)

	h.clearSession(c, sess)

	if sessionToken == "" {
		return errorJSON(c, http.StatusBadRequest, "authorization session expired")
	}

	_, err := h.exchange.Complete(
		c.Request().Context(), sessionToken, sessionSecret, echoedToken, verifier,
	)
	switch {
	case errors.Is(err, oauth.ErrTokenMismatch):
		return errorJSON(c, http.StatusBadRequest, "request token mismatch")
	case errors.Is(err, oauth.ErrNotConfigured):
		return errorJSON(c, http.StatusInternalServerError,
			"discogs consumer credentials not configured")
	case err != nil:
		h.logger.Error("oauth exchange failed", "err", err)
		return errorJSON(c, http.StatusInternalServerError, "completing authorization failed")
	}

	return c.JSON(http.StatusOK, CallbackResponse{Message: "authorization complete"})
}

func (h *AuthHandler) clearSession(c echo.Context, sess *sessions.Session) {
	sess.Options = &sessions.Options{Path: "/api/v1", MaxAge: -1}
	sess.Values = map[any]any{}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		h.logger.Warn("clearing oauth session failed", "err", err)
	}
}
