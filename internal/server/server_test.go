package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localsight/localsight/internal/identity"
	"github.com/localsight/localsight/internal/model"
	"github.com/localsight/localsight/internal/scrape"
)

type fakeScraper struct {
	run func(ctx context.Context, urls []string, countryHint string) ([]model.ScrapeResult, model.BatchSummary, error)
}

func (f *fakeScraper) Run(ctx context.Context, urls []string, countryHint string) ([]model.ScrapeResult, model.BatchSummary, error) {
	return f.run(ctx, urls, countryHint)
}

type fakeUsage struct {
	exceeded    bool
	checkErr    error
	incremented int
	incrUser    string
	incrErr     error
}

func (f *fakeUsage) CheckDailyLimit(_ context.Context, _ string) (bool, error) {
	return f.exceeded, f.checkErr
}

func (f *fakeUsage) IncrementUsage(_ context.Context, userID string, n int) error {
	f.incrUser = userID
	f.incremented += n
	return f.incrErr
}

func (f *fakeUsage) Migrate(context.Context) error { return nil }
func (f *fakeUsage) Close() error                  { return nil }

func testDeps(scraper Scraper, u *fakeUsage) Deps {
	return Deps{
		Scraper:  scraper,
		Verifier: identity.NewStaticVerifier(map[string]string{"tok-good": "user-1"}),
		Usage:    u,
	}
}

func postScrape(t *testing.T, router http.Handler, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(http.MethodPost, "/api/scrape-contacts", &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRouter_Health(t *testing.T) {
	router := NewRouter(testDeps(nil, &fakeUsage{}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestScrapeContacts_MissingToken(t *testing.T) {
	router := NewRouter(testDeps(nil, &fakeUsage{}))

	rr := postScrape(t, router, "", scrapeRequest{URLs: []string{"https://acme.com"}})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestScrapeContacts_UnknownToken(t *testing.T) {
	router := NewRouter(testDeps(nil, &fakeUsage{}))

	rr := postScrape(t, router, "tok-bad", scrapeRequest{URLs: []string{"https://acme.com"}})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestScrapeContacts_LimitExceeded(t *testing.T) {
	scraperCalled := false
	scraper := &fakeScraper{run: func(context.Context, []string, string) ([]model.ScrapeResult, model.BatchSummary, error) {
		scraperCalled = true
		return nil, model.BatchSummary{}, nil
	}}
	router := NewRouter(testDeps(scraper, &fakeUsage{exceeded: true}))

	rr := postScrape(t, router, "tok-good", scrapeRequest{URLs: []string{"https://acme.com"}})
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.False(t, scraperCalled, "limit check must run before any scraping")
}

func TestScrapeContacts_MalformedBody(t *testing.T) {
	router := NewRouter(testDeps(nil, &fakeUsage{}))

	rr := postScrape(t, router, "tok-good", `{"urls": [not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestScrapeContacts_EmptyBatch(t *testing.T) {
	scraper := &fakeScraper{run: func(context.Context, []string, string) ([]model.ScrapeResult, model.BatchSummary, error) {
		return nil, model.BatchSummary{}, scrape.ErrNoURLs
	}}
	router := NewRouter(testDeps(scraper, &fakeUsage{}))

	rr := postScrape(t, router, "tok-good", scrapeRequest{URLs: []string{}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestScrapeContacts_OversizedBatch(t *testing.T) {
	scraper := &fakeScraper{run: func(context.Context, []string, string) ([]model.ScrapeResult, model.BatchSummary, error) {
		return nil, model.BatchSummary{}, eris.Wrap(scrape.ErrBatchTooLarge, "scrape: 51 urls")
	}}
	router := NewRouter(testDeps(scraper, &fakeUsage{}))

	rr := postScrape(t, router, "tok-good", scrapeRequest{URLs: make([]string, 51)})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestScrapeContacts_Success(t *testing.T) {
	results := []model.ScrapeResult{
		{URL: "https://acme.com", Emails: []string{"hi@acme.com"}, PhoneNumbers: []string{}, Success: true},
		{URL: "not-a-url", Emails: []string{}, PhoneNumbers: []string{}, Success: false, Error: "invalid URL format"},
	}
	scraper := &fakeScraper{run: func(_ context.Context, urls []string, country string) ([]model.ScrapeResult, model.BatchSummary, error) {
		assert.Equal(t, []string{"https://acme.com", "not-a-url"}, urls)
		assert.Equal(t, "uk", country)
		return results, model.Summarize(results), nil
	}}
	u := &fakeUsage{}
	router := NewRouter(testDeps(scraper, u))

	rr := postScrape(t, router, "tok-good", scrapeRequest{
		URLs:    []string{"https://acme.com", "not-a-url"},
		Country: "uk",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp scrapeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 2)
	assert.Equal(t, 2, resp.Summary.Total)
	assert.Equal(t, 1, resp.Summary.Successful)

	// Only successful scrapes count against the quota.
	assert.Equal(t, 1, u.incremented)
	assert.Equal(t, "user-1", u.incrUser)
}

func TestScrapeContacts_IncrementFailureStillResponds(t *testing.T) {
	results := []model.ScrapeResult{{URL: "https://acme.com", Success: true}}
	scraper := &fakeScraper{run: func(context.Context, []string, string) ([]model.ScrapeResult, model.BatchSummary, error) {
		return results, model.Summarize(results), nil
	}}
	router := NewRouter(testDeps(scraper, &fakeUsage{incrErr: eris.New("db down")}))

	rr := postScrape(t, router, "tok-good", scrapeRequest{URLs: []string{"https://acme.com"}})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestScrapeContacts_ScraperInternalError(t *testing.T) {
	scraper := &fakeScraper{run: func(context.Context, []string, string) ([]model.ScrapeResult, model.BatchSummary, error) {
		return nil, model.BatchSummary{}, eris.New("boom")
	}}
	router := NewRouter(testDeps(scraper, &fakeUsage{}))

	rr := postScrape(t, router, "tok-good", scrapeRequest{URLs: []string{"https://acme.com"}})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestScrapeContacts_UsageCheckError(t *testing.T) {
	router := NewRouter(testDeps(nil, &fakeUsage{checkErr: eris.New("db down")}))

	rr := postScrape(t, router, "tok-good", scrapeRequest{URLs: []string{"https://acme.com"}})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
