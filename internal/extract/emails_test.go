package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmails_Basic(t *testing.T) {
	html := `<p>Reach us at info@acme.co.uk or sales@acme.co.uk.</p>`
	got := ExtractEmails(html)
	assert.Equal(t, []string{"info@acme.co.uk", "sales@acme.co.uk"}, got)
}

func TestExtractEmails_Deduplicates(t *testing.T) {
	text := "info@acme.com info@acme.com info@acme.com"
	got := ExtractEmails(text)
	assert.Equal(t, []string{"info@acme.com"}, got)
}

func TestExtractEmails_Idempotent(t *testing.T) {
	html := `contact: a@b.org, c@d.net, a@b.org`
	first := ExtractEmails(html)
	second := ExtractEmails(html)
	assert.Equal(t, first, second)
}

func TestExtractEmails_Blacklist(t *testing.T) {
	text := `user@example.com me@test.com x@domain.com y@email.com ` +
		`errors@sentry.io t@google-analytics.com g@googletagmanager.com ` +
		`real@business.org`
	got := ExtractEmails(text)
	assert.Equal(t, []string{"real@business.org"}, got)
}

func TestExtractEmails_None(t *testing.T) {
	assert.Empty(t, ExtractEmails("no contact details on this page"))
}
