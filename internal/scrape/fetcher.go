// Package scrape implements the contact-scraping pipeline: a per-URL page
// fetcher that extracts emails and phone numbers from a seed page plus one
// heuristically discovered contact page, and a batch orchestrator that fans
// targets out concurrently.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/localsight/localsight/internal/extract"
	"github.com/localsight/localsight/internal/model"
)

// defaultUserAgent is a desktop Chrome string. Load bearing: many business
// sites return empty or blocked pages to non-browser agents.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

const acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

// maxBodyBytes caps how much of a page is read for extraction.
const maxBodyBytes = 512 * 1024

// FetcherOptions configures a Fetcher. Zero values select defaults.
type FetcherOptions struct {
	UserAgent string
	Timeout   time.Duration // per-pipeline budget covering both fetches
	RateLimit rate.Limit    // outbound requests/sec across the fetcher; 0 = unlimited
	Burst     int
}

// Fetcher runs the single-URL scrape pipeline. Safe for concurrent use.
type Fetcher struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
	limiter   *rate.Limiter
}

// NewFetcher creates a Fetcher with sensible defaults: 10 s pipeline
// timeout, desktop browser User-Agent, no outbound pacing.
func NewFetcher(opts FetcherOptions) *Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(opts.RateLimit, burst)
	}

	return &Fetcher{
		client: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		userAgent: opts.UserAgent,
		timeout:   opts.Timeout,
		limiter:   limiter,
	}
}

// Scrape runs the full pipeline for one target: validate the URL, fetch the
// seed page, extract contacts, follow at most one discovered contact link,
// and merge. It always returns a ScrapeResult; failures are recorded in the
// result rather than raised, so one bad target never disturbs its batch.
func (f *Fetcher) Scrape(ctx context.Context, target model.ScrapeTarget) model.ScrapeResult {
	result := model.ScrapeResult{
		URL:          target.URL,
		Emails:       []string{},
		PhoneNumbers: []string{},
	}

	if err := validateURL(target.URL); err != nil {
		result.Error = err.Error()
		return result
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	html, err := f.fetchPage(ctx, target.URL)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	country := extract.ParseCountry(target.CountryHint)
	result.Emails = extract.ExtractEmails(html)
	result.PhoneNumbers = extract.ExtractPhoneNumbers(html, country)

	// Single-hop contact-page follow-up. Failures here are swallowed:
	// primary-page data still counts as a success.
	if link := extract.FindContactLink(html); link != "" {
		contactURL := extract.ResolveContactLink(target.URL, link)
		contactHTML, err := f.fetchPage(ctx, contactURL)
		if err != nil {
			zap.L().Debug("scrape: contact page fetch failed",
				zap.String("url", target.URL),
				zap.String("contact_url", contactURL),
				zap.Error(err),
			)
		} else {
			result.Emails = append(result.Emails, extract.ExtractEmails(contactHTML)...)
			result.PhoneNumbers = append(result.PhoneNumbers, extract.ExtractPhoneNumbers(contactHTML, country)...)
		}
	}

	result.Success = true
	return result
}

// validateURL rejects unparseable URLs and non-http(s) schemes.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrUnsupportedProtocol
	}
	return nil
}

// fetchPage GETs a single page with browser headers and returns its body.
func (f *Fetcher) fetchPage(ctx context.Context, pageURL string) (string, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", classifyFetchErr(err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", ErrInvalidURL
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", classifyFetchErr(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", classifyFetchErr(err)
	}
	return string(body), nil
}

// classifyFetchErr maps transport failures onto the error taxonomy:
// deadline and cancellation become ErrTimeout, everything else is a
// network error.
func classifyFetchErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrTimeout
	}
	return fmt.Errorf("network error: %v", err)
}
