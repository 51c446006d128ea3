package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCountry(t *testing.T) {
	assert.Equal(t, CountryUK, ParseCountry("uk"))
	assert.Equal(t, CountryUK, ParseCountry("GB"))
	assert.Equal(t, CountryUK, ParseCountry("United Kingdom"))
	assert.Equal(t, CountryUS, ParseCountry("usa"))
	assert.Equal(t, CountryUS, ParseCountry("United States"))
	assert.Equal(t, CountryUnknown, ParseCountry("france"))
	assert.Equal(t, CountryUnknown, ParseCountry(""))
}

func TestIsValidPhoneNumber_UK(t *testing.T) {
	assert.True(t, IsValidPhoneNumber("+442012345678", CountryUK))
	assert.True(t, IsValidPhoneNumber("01234567890", CountryUK))
	assert.True(t, IsValidPhoneNumber("07123 456789", CountryUK))
	assert.False(t, IsValidPhoneNumber("12345", CountryUK))            // too short
	assert.False(t, IsValidPhoneNumber("1234567890123456", CountryUK)) // too long
	assert.False(t, IsValidPhoneNumber("0412345678", CountryUK))       // bad prefix 04
	assert.False(t, IsValidPhoneNumber("+44012345678", CountryUK))     // 0 after 44
}

func TestIsValidPhoneNumber_US(t *testing.T) {
	assert.True(t, IsValidPhoneNumber("(212) 555-0123", CountryUS))
	assert.True(t, IsValidPhoneNumber("12125550123", CountryUS)) // 1 + 10 digits
	assert.False(t, IsValidPhoneNumber("(012) 555-0123", CountryUS))
	assert.False(t, IsValidPhoneNumber("(112) 555-0123", CountryUS))
	assert.False(t, IsValidPhoneNumber("212555012", CountryUS)) // 9 digits
}

func TestIsValidPhoneNumber_FalsePositives(t *testing.T) {
	assert.False(t, IsValidPhoneNumber("1111111111", CountryUnknown))  // repeated digits
	assert.False(t, IsValidPhoneNumber("1234567890", CountryUnknown))  // ascending run
	assert.False(t, IsValidPhoneNumber("9876543210", CountryUnknown))  // descending run
	assert.False(t, IsValidPhoneNumber("20240101", CountryUnknown))    // year-like
	assert.False(t, IsValidPhoneNumber("+3 00000 12345", CountryUnknown))
	assert.False(t, IsValidPhoneNumber("192.168.100.200", CountryUnknown))
	assert.True(t, IsValidPhoneNumber("+49 30 901820", CountryUnknown))
}

func TestExtractPhoneNumbers_UK(t *testing.T) {
	text := "Call us on 01273 123456 or +44 20 7946 0958 today"
	got := ExtractPhoneNumbers(text, CountryUK)
	assert.Contains(t, got, "01273 123456")
}

func TestExtractPhoneNumbers_International(t *testing.T) {
	text := "Office: +44 20 7946 0958. Fax: +1 212 555 0123."
	got := ExtractPhoneNumbers(text, CountryUnknown)
	assert.Len(t, got, 2)
}

func TestExtractPhoneNumbers_FiltersInvalid(t *testing.T) {
	// An all-same-digit run matching the US shape must be filtered out.
	text := "111 111 1111 and (212) 555-0123"
	got := ExtractPhoneNumbers(text, CountryUS)
	assert.Equal(t, []string{"(212) 555-0123"}, got)
}

func TestExtractPhoneNumbers_DedupesByDigits(t *testing.T) {
	text := "(212) 555-0123 ... 212.555.0123"
	got := ExtractPhoneNumbers(text, CountryUS)
	assert.Len(t, got, 1)
}

func TestExtractPhoneNumbers_None(t *testing.T) {
	assert.Empty(t, ExtractPhoneNumbers("opening hours: 9-5", CountryUnknown))
}
