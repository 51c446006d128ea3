package extract

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// emailBlacklist filters placeholder domains and addresses that analytics
// tooling plants in page source. Matched as substrings of the whole address.
var emailBlacklist = []string{
	"example.com",
	"test.com",
	"domain.com",
	"email.com",
	"sentry.io",
	"google-analytics",
	"googletagmanager",
}

// ExtractEmails returns the distinct email addresses found in text, in
// first-seen order, with blacklisted placeholder/analytics addresses
// removed. Running it twice over the same input yields the same result.
func ExtractEmails(text string) []string {
	matches := emailRe.FindAllString(text, -1)

	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, email := range matches {
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		if blacklistedEmail(email) {
			continue
		}
		out = append(out, email)
	}
	return out
}

func blacklistedEmail(email string) bool {
	lower := strings.ToLower(email)
	for _, bad := range emailBlacklist {
		if strings.Contains(lower, bad) {
			return true
		}
	}
	return false
}
