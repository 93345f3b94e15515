// Package oauth implements the three-legged OAuth1 exchange against the
// Discogs provider: request token, user authorization redirect, access
// token. The long-lived access pair is persisted through the credential
// store; the short-lived request pair lives in the caller's session.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dghubble/oauth1"

	"github.com/diggerweb/backend/internal/metrics"
	"github.com/diggerweb/backend/internal/store"
	domain "github.com/diggerweb/backend/pkg/types"
)

// ErrTokenMismatch is returned when the token echoed back by the provider
// does not match the request token issued at authorization start. The
// attempt is terminal; the caller must restart from the beginning.
var ErrTokenMismatch = errors.New("request token mismatch")

// ErrNotConfigured is returned when the consumer key pair is absent.
var ErrNotConfigured = errors.New("discogs consumer credentials not configured")

// Exchange drives the OAuth1 flow. It moves through three states:
// unauthorized, request token issued, authorized. Begin covers the first
// transition, Complete the second. Any failure aborts the attempt; there
// are no retries.
type Exchange struct {
	config *oauth1.Config
	store  store.Store
	logger *slog.Logger
}

// Option configures the Exchange.
type Option func(*Exchange)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Exchange) {
		e.logger = l
	}
}

// New creates an Exchange. cfg may be nil when the consumer credentials are
// missing from the environment; Begin and Complete then fail with
// ErrNotConfigured instead of panicking, so the endpoints degrade to a
// configuration error response.
func New(cfg *oauth1.Config, st store.Store, opts ...Option) *Exchange {
	e := &Exchange{
		config: cfg,
		store:  st,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Begin obtains a request token from the provider and returns the URL the
// user must visit to authorize, together with the request token pair the
// HTTP layer stores in the session until the callback arrives.
func (e *Exchange) Begin(_ context.Context) (authURL, requestToken, requestSecret string, err error) {
	if e.config == nil {
		return "", "", "", ErrNotConfigured
	}

	requestToken, requestSecret, err = e.config.RequestToken()
	if err != nil {
		return "", "", "", fmt.Errorf("obtaining request token: %w", err)
	}

	u, err := e.config.AuthorizationURL(requestToken)
	if err != nil {
		return "", "", "", fmt.Errorf("building authorization URL: %w", err)
	}

	e.logger.Info("issued OAuth request token")

	return u.String(), requestToken, requestSecret, nil
}

// Complete finishes the exchange after the provider redirected back.
// echoedToken must equal the sessionToken issued by Begin; a mismatch is a
// hard rejection and nothing is written. On success the access pair is
// persisted, replacing any previous credentials, and returned.
func (e *Exchange) Complete(
	ctx context.Context,
	sessionToken, sessionSecret, echoedToken, verifier string,
) (*domain.Credentials, error) {
	if e.config == nil {
		return nil, ErrNotConfigured
	}

	if sessionToken == "" || echoedToken != sessionToken {
		metrics.OAuthExchangesTotal.WithLabelValues("mismatch").Inc()
		return nil, ErrTokenMismatch
	}

	accessToken, accessSecret, err := e.config.AccessToken(sessionToken, sessionSecret, verifier)
	if err != nil {
		metrics.OAuthExchangesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("exchanging verifier for access token: %w", err)
	}

	creds := &domain.Credentials{Token: accessToken, Secret: accessSecret}
	if err := e.store.SaveCredentials(ctx, creds); err != nil {
		metrics.OAuthExchangesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("persisting credentials: %w", err)
	}

	metrics.OAuthExchangesTotal.WithLabelValues("ok").Inc()
	e.logger.Info("OAuth exchange completed, credentials stored")

	return creds, nil
}
