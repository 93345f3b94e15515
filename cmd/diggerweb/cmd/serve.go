package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dghubble/oauth1"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/diggerweb/backend/internal/api/handlers"
	mw "github.com/diggerweb/backend/internal/api/middleware"
	"github.com/diggerweb/backend/internal/config"
	"github.com/diggerweb/backend/internal/discogs"
	"github.com/diggerweb/backend/internal/oauth"
	"github.com/diggerweb/backend/internal/store"
	"github.com/diggerweb/backend/pkg/logger"
	domain "github.com/diggerweb/backend/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx := context.Background()

	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	// One token bucket shared by every Discogs client so concurrent
	// requests cannot exceed the provider's rate budget together.
	pacer := discogs.NewRateLimiter(cfg.Discogs.RateLimit.PerSecond, cfg.Discogs.RateLimit.Burst)

	var oauthCfg *oauth1.Config
	if cfg.Discogs.Configured() {
		oauthCfg = &oauth1.Config{
			ConsumerKey:    cfg.Discogs.ConsumerKey,
			ConsumerSecret: cfg.Discogs.ConsumerSecret,
			CallbackURL:    cfg.Discogs.CallbackURL,
			Endpoint: oauth1.Endpoint{
				RequestTokenURL: cfg.Discogs.RequestTokenURL,
				AuthorizeURL:    cfg.Discogs.AuthorizeURL,
				AccessTokenURL:  cfg.Discogs.AccessTokenURL,
			},
		}
	} else {
		log.Warn("discogs consumer credentials not configured, search and authorization disabled")
	}

	newClient := func(httpClient *http.Client) *discogs.APIClient {
		opts := []discogs.APIOption{
			discogs.WithBaseURL(cfg.Discogs.BaseURL),
			discogs.WithPacer(pacer),
		}
		if httpClient != nil {
			opts = append(opts, discogs.WithHTTPClient(httpClient))
		}
		return discogs.NewAPIClient(cfg.Discogs.UserAgent, opts...)
	}

	// Catalog search is signed with the consumer pair only; no delegated
	// token is involved.
	var searchClient discogs.Client
	if oauthCfg != nil {
		searchClient = newClient(oauthCfg.Client(ctx, oauth1.NewToken("", "")))
	}

	// Inventory calls are signed with the stored access pair, which can
	// change after an OAuth callback, so the client is built per request.
	factory := func(creds *domain.Credentials) handlers.Fetcher {
		var httpClient *http.Client
		if oauthCfg != nil {
			httpClient = oauthCfg.Client(context.Background(), oauth1.NewToken(creds.Token, creds.Secret))
		}
		return discogs.NewEnricher(
			newClient(httpClient),
			discogs.WithEnricherLogger(logger.Component(log, "enricher")),
		)
	}

	exchange := oauth.New(oauthCfg, st, oauth.WithLogger(logger.Component(log, "oauth")))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(mw.Recovery(log))
	e.Use(mw.RequestLog(logger.Component(log, "http")))
	e.Use(mw.Metrics())
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(cfg.Session.Secret))))

	healthHandler := handlers.NewHealthHandler(st)
	searchHandler := handlers.NewSearchHandler(searchClient)
	inventoryHandler := handlers.NewInventoryHandler(st, factory)
	authHandler := handlers.NewAuthHandler(
		exchange,
		int(cfg.Session.MaxAge.Seconds()),
		handlers.WithAuthLogger(logger.Component(log, "auth")),
	)

	api := e.Group("/api/v1")
	api.GET("/search", searchHandler.Search)
	api.GET("/search-inventory", inventoryHandler.SearchInventory)
	api.GET("/authorize", authHandler.Authorize)
	api.GET("/callback", authHandler.Callback)

	e.GET("/healthz", healthHandler.Healthz)
	e.GET("/readyz", healthHandler.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}
