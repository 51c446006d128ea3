package model

// ScrapeTarget is a single URL to scrape for contact details, with an
// optional country hint steering phone-number extraction.
type ScrapeTarget struct {
	URL         string `json:"url"`
	CountryHint string `json:"country,omitempty"`
}

// ScrapeResult holds everything extracted from one target URL. It is built
// once per target and returned to the caller as-is; failures are recorded in
// Error rather than raised.
type ScrapeResult struct {
	URL          string   `json:"url"`
	Emails       []string `json:"emails"`
	PhoneNumbers []string `json:"phoneNumbers"`
	Success      bool     `json:"success"`
	Error        string   `json:"error,omitempty"`
}

// BatchSummary aggregates a batch of scrape results. Recomputed per call,
// never stored.
type BatchSummary struct {
	Total             int `json:"total"`
	Successful        int `json:"successful"`
	Failed            int `json:"failed"`
	TotalEmails       int `json:"totalEmails"`
	TotalPhoneNumbers int `json:"totalPhoneNumbers"`
}

// Summarize derives a BatchSummary from a slice of results.
func Summarize(results []ScrapeResult) BatchSummary {
	s := BatchSummary{Total: len(results)}
	for _, r := range results {
		if r.Success {
			s.Successful++
		} else {
			s.Failed++
		}
		s.TotalEmails += len(r.Emails)
		s.TotalPhoneNumbers += len(r.PhoneNumbers)
	}
	return s
}
