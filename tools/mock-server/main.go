// Package main implements a mock Mercado Livre server for local development.
// It serves the authorization redirect, the OAuth token endpoint and catalog
// search from a JSON fixture, so the full login flow runs without real
// credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// Magic values that make the mock fail the way the marketplace does.
const (
	expiredCode  = "TG-expired"
	expiredToken = "APP_USR-expired"
	mockUserID   = "123456789"
)

type searchResponse struct {
	SiteID  string            `json:"site_id"`
	Query   string            `json:"query"`
	Paging  paging            `json:"paging"`
	Results []json.RawMessage `json:"results"`
}

type paging struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type itemSummary struct {
	Title    string `json:"title"`
	SellerID int64  `json:"seller_id"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/search_response.json", "path to search response fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "items", len(fixture.Results))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock Mercado Livre server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, newMux(logger, fixture)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(logger *slog.Logger, fixture *searchResponse) *http.ServeMux {
	var issued atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("GET /authorization", authorizeHandler(logger))
	mux.HandleFunc("POST /oauth/token", tokenHandler(logger, &issued))
	mux.HandleFunc("GET /sites/{site}/search", searchHandler(logger, fixture))
	return mux
}

func loadFixture(path string) (*searchResponse, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var resp searchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &resp, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func oauthError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, map[string]any{
		"error":             code,
		"error_description": description,
		"status":            status,
	})
}

// authorizeHandler approves every request, sending the browser straight back
// to redirect_uri with a code.
func authorizeHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("client_id") == "" || q.Get("response_type") != "code" {
			http.Error(w, "invalid authorization request", http.StatusBadRequest)
			return
		}

		target, err := url.Parse(q.Get("redirect_uri"))
		if err != nil || target.Scheme == "" {
			http.Error(w, "invalid redirect_uri", http.StatusBadRequest)
			return
		}

		params := target.Query()
		params.Set("code", "TG-mock-"+strconv.FormatInt(time.Now().UnixNano(), 36))
		if state := q.Get("state"); state != "" {
			params.Set("state", state)
		}
		target.RawQuery = params.Encode()

		logger.Info("authorized", "client_id", q.Get("client_id"))
		http.Redirect(w, r, target.String(), http.StatusFound)
	}
}

func tokenHandler(logger *slog.Logger, issued *atomic.Int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			oauthError(w, http.StatusBadRequest, "invalid_request", "malformed form body")
			return
		}

		if r.PostForm.Get("client_id") == "" || r.PostForm.Get("client_secret") == "" {
			logger.Warn("token request missing client credentials")
			oauthError(w, http.StatusUnauthorized, "invalid_client", "invalid client_id or client_secret")
			return
		}

		switch r.PostForm.Get("grant_type") {
		case "authorization_code":
			code := r.PostForm.Get("code")
			if code == "" || code == expiredCode {
				oauthError(w, http.StatusBadRequest, "invalid_grant", "Error validating grant. Your authorization code or refresh token may be expired or it was already used")
				return
			}
		case "refresh_token":
			if r.PostForm.Get("refresh_token") == "" {
				oauthError(w, http.StatusBadRequest, "invalid_grant", "refresh_token is required")
				return
			}
		default:
			oauthError(w, http.StatusBadRequest, "unsupported_grant_type", "grant_type not supported")
			return
		}

		n := issued.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token":  fmt.Sprintf("APP_USR-mock-%d", n),
			"refresh_token": fmt.Sprintf("TG-mock-refresh-%d", n),
			"token_type":    "Bearer",
			"expires_in":    21600,
			"scope":         "offline_access read",
			"user_id":       json.Number(mockUserID),
		})
		logger.Info("issued mock token", "grant_type", r.PostForm.Get("grant_type"), "n", n)
	}
}

func searchHandler(logger *slog.Logger, fixture *searchResponse) http.HandlerFunc {
	type indexedItem struct {
		raw      json.RawMessage
		title    string
		sellerID string
	}
	items := make([]indexedItem, 0, len(fixture.Results))
	for _, raw := range fixture.Results {
		var s itemSummary
		//nolint:errcheck,gosec // fixture data is trusted; extraction is best-effort
		json.Unmarshal(raw, &s)
		items = append(items, indexedItem{
			raw:      raw,
			title:    strings.ToLower(s.Title),
			sellerID: strconv.FormatInt(s.SellerID, 10),
		})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer "+expiredToken {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"message": "invalid access token",
				"error":   "not_found",
				"status":  http.StatusUnauthorized,
			})
			return
		}

		query := r.URL.Query()
		q := strings.ToLower(strings.TrimSpace(query.Get("q")))
		seller := query.Get("seller_id")

		limit := 50
		if v, err := strconv.Atoi(query.Get("limit")); err == nil && v > 0 {
			limit = v
		}
		offset := 0
		if v, err := strconv.Atoi(query.Get("offset")); err == nil && v >= 0 {
			offset = v
		}

		matched := []json.RawMessage{}
		for _, item := range items {
			if q != "" && !strings.Contains(item.title, q) {
				continue
			}
			if seller != "" && item.sellerID != seller {
				continue
			}
			matched = append(matched, item.raw)
		}

		total := len(matched)
		if offset >= len(matched) {
			matched = []json.RawMessage{}
		} else {
			matched = matched[offset:min(offset+limit, len(matched))]
		}

		writeJSON(w, http.StatusOK, searchResponse{
			SiteID:  r.PathValue("site"),
			Query:   query.Get("q"),
			Paging:  paging{Total: total, Offset: offset, Limit: limit},
			Results: matched,
		})
		logger.Info("search", "query", q, "seller_id", seller, "matched", total, "returned", len(matched))
	}
}
