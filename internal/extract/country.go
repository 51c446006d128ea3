// Package extract pulls contact details out of raw HTML and text using
// regex extraction with heuristic validation.
package extract

import "strings"

// Country is a normalized country tag for phone extraction and validation.
// Callers pass free-form hints ("uk", "GB", "United States"); ParseCountry
// folds them all into one of these values.
type Country string

const (
	CountryUnknown Country = ""
	CountryUS      Country = "us"
	CountryUK      Country = "uk"
)

// ParseCountry normalizes a caller-supplied country hint. Anything
// unrecognized maps to CountryUnknown, which selects the international
// phone pattern and skips country-specific validation.
func ParseCountry(hint string) Country {
	switch strings.ToLower(strings.TrimSpace(hint)) {
	case "us", "usa", "united states", "united states of america":
		return CountryUS
	case "uk", "gb", "united kingdom", "great britain":
		return CountryUK
	default:
		return CountryUnknown
	}
}
