// Package server exposes the scrape API over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/localsight/localsight/internal/identity"
	"github.com/localsight/localsight/internal/model"
	"github.com/localsight/localsight/internal/scrape"
	"github.com/localsight/localsight/internal/usage"
)

// Scraper runs a batch of URLs through the contact-scraping pipeline.
type Scraper interface {
	Run(ctx context.Context, urls []string, countryHint string) ([]model.ScrapeResult, model.BatchSummary, error)
}

// Deps carries the collaborators the router needs.
type Deps struct {
	Scraper  Scraper
	Verifier identity.Verifier
	Usage    usage.Store
}

type scrapeRequest struct {
	URLs    []string `json:"urls"`
	Country string   `json:"country,omitempty"`
}

type scrapeResponse struct {
	Results []model.ScrapeResult `json:"results"`
	Summary model.BatchSummary   `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter builds the chi router with all middleware and routes.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/scrape-contacts", handleScrapeContacts(deps))

	return r
}

func handleScrapeContacts(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := deps.Verifier.Verify(ctx, bearerToken(r))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}

		exceeded, err := deps.Usage.CheckDailyLimit(ctx, userID)
		if err != nil {
			zap.L().Error("usage check failed", zap.String("user_id", userID), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}
		if exceeded {
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "daily scrape limit reached"})
			return
		}

		var req scrapeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}

		results, summary, err := deps.Scraper.Run(ctx, req.URLs, req.Country)
		if err != nil {
			if errors.Is(err, scrape.ErrNoURLs) || errors.Is(err, scrape.ErrBatchTooLarge) {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
				return
			}
			zap.L().Error("scrape batch failed", zap.String("user_id", userID), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
			return
		}

		// Usage is credited with successful scrapes only, not attempts.
		if err := deps.Usage.IncrementUsage(ctx, userID, summary.Successful); err != nil {
			zap.L().Error("usage increment failed", zap.String("user_id", userID), zap.Error(err))
		}

		writeJSON(w, http.StatusOK, scrapeResponse{Results: results, Summary: summary})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
