// Command mock-server serves a small fake of the Discogs endpoints the
// backend talks to, for local development without real consumer credentials.
//
// Point the backend at it via config:
//
//	discogs:
//	  base_url: http://localhost:9090
//	  request_token_url: http://localhost:9090/oauth/request_token
//	  authorize_url: http://localhost:9090/oauth/authorize
//	  access_token_url: http://localhost:9090/oauth/access_token
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
)

type pagination struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	PerPage int `json:"per_page"`
	Items   int `json:"items"`
}

var searchResults = []map[string]any{
	{
		"id":      249504,
		"type":    "release",
		"title":   "Boards Of Canada - Music Has The Right To Children",
		"year":    "1998",
		"country": "UK",
		"format":  []string{"Vinyl", "LP", "Album"},
		"uri":     "/release/249504",
	},
	{
		"id":     5139,
		"type":   "master",
		"title":  "Aphex Twin - Selected Ambient Works 85-92",
		"year":   "1992",
		"format": []string{"Vinyl", "LP"},
		"uri":    "/master/5139",
	},
	{
		"id":    45,
		"type":  "label",
		"title": "Warp Records",
		"uri":   "/label/45",
	},
}

var inventoryListings = []map[string]any{
	{
		"id":               2140000001,
		"status":           "For Sale",
		"condition":        "Very Good Plus (VG+)",
		"sleeve_condition": "Very Good (VG)",
		"price":            map[string]any{"value": 24.99, "currency": "EUR"},
		"uri":              "https://www.discogs.com/sell/item/2140000001",
		"release": map[string]any{
			"id":          249504,
			"artist":      "Boards Of Canada",
			"title":       "Music Has The Right To Children",
			"description": "Boards Of Canada - Music Has The Right To Children (2xLP, Album)",
		},
	},
	{
		"id":               2140000002,
		"status":           "For Sale",
		"condition":        "Near Mint (NM or M-)",
		"sleeve_condition": "Near Mint (NM or M-)",
		"price":            map[string]any{"value": 55.00, "currency": "EUR"},
		"uri":              "https://www.discogs.com/sell/item/2140000002",
		"release": map[string]any{
			"id":          3555,
			"artist":      "Autechre",
			"title":       "Tri Repetae",
			"description": "Autechre - Tri Repetae (2xLP, Album)",
		},
	},
}

func main() {
	addr := flag.String("addr", ":9090", "listen address")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.GET("/database/search", func(c echo.Context) error {
		q := c.QueryParam("q")
		if q == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"message": "You must specify a search query.",
			})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"pagination": pagination{Page: 1, Pages: 1, PerPage: 50, Items: len(searchResults)},
			"results":    searchResults,
		})
	})

	e.GET("/users/:username/inventory", func(c echo.Context) error {
		if c.Param("username") == "private_seller" {
			return c.JSON(http.StatusNotFound, map[string]string{
				"message": "The requested resource was not found.",
			})
		}
		page, _ := strconv.Atoi(c.QueryParam("page"))
		if page > 1 {
			// Past the end: Discogs returns the paging block with no listings.
			return c.JSON(http.StatusOK, map[string]any{
				"pagination": pagination{Page: 1, Pages: 1, PerPage: 50, Items: len(inventoryListings)},
				"listings":   []any{},
			})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"pagination": pagination{Page: 1, Pages: 1, PerPage: 50, Items: len(inventoryListings)},
			"listings":   inventoryListings,
		})
	})

	e.GET("/marketplace/stats/:release_id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("release_id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid release id"})
		}
		numForSale := int(id%40) + 1
		return c.JSON(http.StatusOK, map[string]any{
			"num_for_sale":      numForSale,
			"lowest_price":      map[string]any{"value": 9.99, "currency": "EUR"},
			"blocked_from_sale": false,
		})
	})

	// Minimal OAuth1 provider. No signature checking; every exchange
	// succeeds with fixed tokens. The token endpoints accept any method
	// because OAuth1 libraries POST to them.
	e.Any("/oauth/request_token", func(c echo.Context) error {
		return c.String(http.StatusOK,
			"oauth_token=mock-request-token&oauth_token_secret=mock-request-secret&oauth_callback_confirmed=true")
	})
	e.GET("/oauth/authorize", func(c echo.Context) error {
		token := c.QueryParam("oauth_token")
		callback := c.QueryParam("oauth_callback")
		if callback == "" {
			return c.String(http.StatusOK, fmt.Sprintf(
				"mock authorize page: redirect your callback with oauth_token=%s&oauth_verifier=mock-verifier", token))
		}
		return c.Redirect(http.StatusFound,
			callback+"?oauth_token="+token+"&oauth_verifier=mock-verifier")
	})
	e.Any("/oauth/access_token", func(c echo.Context) error {
		return c.String(http.StatusOK,
			"oauth_token=mock-access-token&oauth_token_secret=mock-access-secret")
	})

	log.Info("mock discogs server listening", "addr", *addr)
	if err := e.Start(*addr); err != nil {
		log.Error("server error", "err", err)
		os.Exit(1)
	}
}
