package extract

import (
	"regexp"
	"strings"
)

// Phone patterns keyed by normalized country. Unknown countries fall back
// to the international pattern.
var (
	intlPhoneRe = regexp.MustCompile(`\+\d{1,3}[\s.-]?\d{1,4}[\s.-]?\d{1,4}[\s.-]?\d{1,9}`)
	usPhoneRe   = regexp.MustCompile(`\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)
	ukPhoneRe   = regexp.MustCompile(`(?:\+44\s?|0)(?:\d\s?){9,10}`)
)

var phonePatterns = map[Country]*regexp.Regexp{
	CountryUS: usPhoneRe,
	CountryUK: ukPhoneRe,
}

var nonDigitRe = regexp.MustCompile(`\D`)

// ExtractPhoneNumbers finds candidate phone numbers in text using the
// pattern for the given country, then filters them through
// IsValidPhoneNumber. Results keep match order and are deduplicated by
// digit string.
func ExtractPhoneNumbers(text string, country Country) []string {
	re, ok := phonePatterns[country]
	if !ok {
		re = intlPhoneRe
	}

	seen := make(map[string]struct{})
	var out []string
	for _, m := range re.FindAllString(text, -1) {
		m = strings.TrimSpace(m)
		digits := nonDigitRe.ReplaceAllString(m, "")
		if _, dup := seen[digits]; dup {
			continue
		}
		seen[digits] = struct{}{}
		if IsValidPhoneNumber(m, country) {
			out = append(out, m)
		}
	}
	return out
}

// IsValidPhoneNumber reports whether a candidate string is plausibly a real
// phone number rather than a date, ID, or other digit run picked up by the
// regex. It is a filter, not a formatter.
func IsValidPhoneNumber(phone string, country Country) bool {
	digits := nonDigitRe.ReplaceAllString(phone, "")

	if len(digits) < 10 || len(digits) > 15 {
		return false
	}

	// Dates in DDMMYYYY or YYYYMMDD shape.
	if len(digits) == 8 {
		if yearLike(digits[:4]) || yearLike(digits[4:]) {
			return false
		}
	}

	if allSameDigit(digits) {
		return false
	}
	if strings.HasPrefix(digits, "123456789") || strings.HasPrefix(digits, "987654321") {
		return false
	}

	switch country {
	case CountryUK:
		return validUKNumber(digits)
	case CountryUS:
		return validUSNumber(digits)
	}

	// Long runs of zeros or ones are tracking IDs, not numbers.
	if strings.Contains(digits, "00000") || strings.Contains(digits, "11111") {
		return false
	}

	// Dotted-quad IP addresses match the international pattern.
	if ipShapeRe.MatchString(strings.NewReplacer(" ", ".", "-", ".").Replace(phone)) {
		return false
	}

	return true
}

var ipShapeRe = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

func yearLike(s string) bool {
	if len(s) != 4 {
		return false
	}
	// s is digits only by construction.
	return s >= "1900" && s <= "2100"
}

// allSameDigit reports a run of 10+ identical digits.
func allSameDigit(digits string) bool {
	if len(digits) < 10 {
		return false
	}
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

// validUKNumber accepts the +44 international form (leading 0 stripped,
// 9-10 digits left, starting 1/2/3/7/8/9) or the 0-prefixed national form
// (10-11 digits starting 01/02/03/07/08/09).
func validUKNumber(digits string) bool {
	if strings.HasPrefix(digits, "44") {
		rest := digits[2:]
		if len(rest) < 9 || len(rest) > 10 {
			return false
		}
		return strings.ContainsAny(rest[:1], "123789")
	}
	if strings.HasPrefix(digits, "0") {
		if len(digits) < 10 || len(digits) > 11 {
			return false
		}
		switch digits[:2] {
		case "01", "02", "03", "07", "08", "09":
			return true
		}
	}
	return false
}

// validUSNumber accepts 11 digits starting with the 1 country code, or 10
// digits whose area code does not start with 0 or 1.
func validUSNumber(digits string) bool {
	if len(digits) == 11 && digits[0] == '1' {
		return true
	}
	if len(digits) == 10 {
		return digits[0] != '0' && digits[0] != '1'
	}
	return false
}
