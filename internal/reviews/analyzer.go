// Package reviews runs lexicon-based sentiment analytics over customer
// reviews: per-review polarity scores, sentiment buckets, and rating-keyed
// word-frequency maps.
package reviews

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/localsight/localsight/internal/model"
)

// foldDiacritics strips combining marks so "café" tokenizes as "cafe".
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Tokenize lowercases text, folds diacritics, splits on whitespace, and
// strips every non-alphanumeric rune from each token. Empty tokens are
// dropped.
func Tokenize(text string) []string {
	if folded, _, err := transform.String(foldDiacritics, text); err == nil {
		text = folded
	}
	text = strings.ToLower(text)

	var out []string
	for _, field := range strings.Fields(text) {
		var b strings.Builder
		for _, r := range field {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			out = append(out, b.String())
		}
	}
	return out
}

// Stem strips a single trailing "s" from words longer than three
// characters. Deliberately crude; this is not a Porter stemmer.
func Stem(word string) string {
	if len(word) > 3 && strings.HasSuffix(word, "s") {
		return word[:len(word)-1]
	}
	return word
}

// Preprocess tokenizes, removes stopwords, and stems. This is the pipeline
// feeding the word-frequency maps. Sentiment scoring uses Tokenize output
// directly so polarity words survive intact.
func Preprocess(text string) []string {
	var out []string
	for _, tok := range Tokenize(text) {
		if _, stop := stopwords[tok]; stop {
			continue
		}
		out = append(out, Stem(tok))
	}
	return out
}

// SentimentScore sums lexicon polarities over the tokens of text. Positive
// means favorable; the magnitude grows with matched-word count.
func SentimentScore(text string) int {
	score := 0
	for _, tok := range Tokenize(text) {
		score += lexicon[tok]
	}
	return score
}

// Analyze computes the full analytics report for a batch of reviews. It is
// pure: same input, same report, nothing retained between calls.
func Analyze(reviewList []model.Review) model.ReviewReport {
	freqPositive := make(map[string]int)
	freqNegative := make(map[string]int)
	freqFiveStar := make(map[string]int)
	freqOneStar := make(map[string]int)

	var buckets model.SentimentBuckets
	totalSentiment := 0
	totalRating := 0

	for _, r := range reviewList {
		score := SentimentScore(r.Text)
		totalSentiment += score
		totalRating += r.Rating

		switch {
		case score > 0:
			buckets.Positive++
		case score < 0:
			buckets.Negative++
		default:
			buckets.Neutral++
		}

		tokens := Preprocess(r.Text)
		if r.Rating >= 4 {
			addFreq(freqPositive, tokens)
		}
		if r.Rating <= 2 {
			addFreq(freqNegative, tokens)
		}
		if r.Rating == 5 {
			addFreq(freqFiveStar, tokens)
		}
		if r.Rating == 1 {
			addFreq(freqOneStar, tokens)
		}
	}

	report := model.ReviewReport{
		SentimentBuckets: buckets,
		CommonWords: model.CommonWords{
			Positive: freqPositive,
			Negative: freqNegative,
		},
		ExclusiveWords: model.ExclusiveWords{
			FiveStarOnly: exclusive(freqFiveStar, freqOneStar),
			OneStarOnly:  exclusive(freqOneStar, freqFiveStar),
		},
	}

	// Words common to both rating sides say nothing about either; zero them
	// in both maps (keys are kept at 0 so callers can see the collision).
	for w := range freqPositive {
		if freqNegative[w] > 0 {
			freqPositive[w] = 0
			freqNegative[w] = 0
		}
	}

	report.Summary.TotalReviews = len(reviewList)
	if len(reviewList) > 0 {
		report.Summary.AvgRating = float64(totalRating) / float64(len(reviewList))
		report.Summary.AvgSentiment = float64(totalSentiment) / float64(len(reviewList))
	}
	return report
}

func addFreq(m map[string]int, tokens []string) {
	for _, t := range tokens {
		m[t]++
	}
}

// exclusive returns the entries of a whose keys are absent from b.
func exclusive(a, b map[string]int) map[string]int {
	out := make(map[string]int)
	for w, n := range a {
		if _, shared := b[w]; !shared {
			out[w] = n
		}
	}
	return out
}
