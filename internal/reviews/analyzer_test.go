package reviews

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localsight/localsight/internal/model"
)

func TestTokenize(t *testing.T) {
	got := Tokenize("Great coffee, really GREAT!! 10/10")
	assert.Equal(t, []string{"great", "coffee", "really", "great", "1010"}, got)
}

func TestTokenize_FoldsDiacritics(t *testing.T) {
	assert.Equal(t, []string{"cafe", "creme", "brulee"}, Tokenize("Café crème brûlée"))
}

func TestStem(t *testing.T) {
	assert.Equal(t, "drink", Stem("drinks"))
	assert.Equal(t, "gas", Stem("gas")) // len 3, untouched
	assert.Equal(t, "its", Stem("its"))
	assert.Equal(t, "coffee", Stem("coffee"))
}

func TestPreprocess_RemovesStopwords(t *testing.T) {
	got := Preprocess("the drinks were good and the staff was friendly")
	assert.Equal(t, []string{"drink", "good", "staff", "friendly"}, got)
}

func TestSentimentScore(t *testing.T) {
	assert.Positive(t, SentimentScore("great coffee, friendly staff"))
	assert.Negative(t, SentimentScore("rude staff and dirty tables"))
	assert.Zero(t, SentimentScore("we ordered two lattes"))
}

func TestAnalyze_BucketsSumToTotal(t *testing.T) {
	batch := []model.Review{
		{Rating: 5, Text: "great coffee"},
		{Rating: 1, Text: "terrible service"},
		{Rating: 3, Text: "we ordered two lattes"},
		{Rating: 4, Text: "friendly staff, lovely place"},
		{Rating: 2, Text: "slow and rude"},
	}
	report := Analyze(batch)

	b := report.SentimentBuckets
	assert.Equal(t, len(batch), b.Positive+b.Neutral+b.Negative)
	assert.Equal(t, 2, b.Positive)
	assert.Equal(t, 2, b.Negative)
	assert.Equal(t, 1, b.Neutral)
}

func TestAnalyze_Summary(t *testing.T) {
	batch := []model.Review{
		{Rating: 5, Text: "great"},
		{Rating: 1, Text: "terrible"},
	}
	report := Analyze(batch)
	assert.Equal(t, 2, report.Summary.TotalReviews)
	assert.Equal(t, 3.0, report.Summary.AvgRating)
	// great(+3) + terrible(-3) averages to zero.
	assert.Equal(t, 0.0, report.Summary.AvgSentiment)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	report := Analyze(nil)
	assert.Equal(t, 0, report.Summary.TotalReviews)
	assert.Equal(t, 0.0, report.Summary.AvgRating)
	assert.Equal(t, 0.0, report.Summary.AvgSentiment)
}

func TestAnalyze_CrossCancellation(t *testing.T) {
	// "coffee" appears in a >=4 review and a <=2 review; it must end up
	// zeroed in both frequency maps but keep its keys.
	batch := []model.Review{
		{Rating: 5, Text: "wonderful coffee"},
		{Rating: 1, Text: "burnt coffee"},
	}
	report := Analyze(batch)

	pos, inPos := report.CommonWords.Positive["coffee"]
	neg, inNeg := report.CommonWords.Negative["coffee"]
	require.True(t, inPos)
	require.True(t, inNeg)
	assert.Zero(t, pos)
	assert.Zero(t, neg)

	// Words unique to one side keep their counts.
	assert.Equal(t, 1, report.CommonWords.Positive["wonderful"])
	assert.Equal(t, 1, report.CommonWords.Negative["burnt"])
}

func TestAnalyze_ExclusiveWords(t *testing.T) {
	batch := []model.Review{
		{Rating: 5, Text: "superb espresso, superb pastry"},
		{Rating: 5, Text: "espresso again"},
		{Rating: 1, Text: "espresso was watery"},
	}
	report := Analyze(batch)

	// "espresso" appears in both 5-star and 1-star vocab: excluded from both.
	assert.NotContains(t, report.ExclusiveWords.FiveStarOnly, "espresso")
	assert.NotContains(t, report.ExclusiveWords.OneStarOnly, "espresso")

	assert.Equal(t, 2, report.ExclusiveWords.FiveStarOnly["superb"])
	assert.Equal(t, 1, report.ExclusiveWords.OneStarOnly["watery"])
}

func TestAnalyze_RatingRouting(t *testing.T) {
	batch := []model.Review{
		{Rating: 3, Text: "unremarkable visit"},
	}
	report := Analyze(batch)
	// 3-star text reaches neither frequency map.
	assert.Empty(t, report.CommonWords.Positive)
	assert.Empty(t, report.CommonWords.Negative)
}
