package scrape

import "github.com/rotisserie/eris"

// Per-URL failures are recorded in the ScrapeResult for that URL; these
// sentinels exist so callers and tests can classify them. Batch-level
// sentinels (ErrNoURLs, ErrBatchTooLarge) are returned before any network
// work starts.
var (
	ErrInvalidURL          = eris.New("invalid URL format")
	ErrUnsupportedProtocol = eris.New("only HTTP and HTTPS URLs are allowed")
	ErrTimeout             = eris.New("request timeout")
	ErrNoURLs              = eris.New("at least one URL is required")
	ErrBatchTooLarge       = eris.New("too many URLs in batch")
)
