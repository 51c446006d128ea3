package model

import "time"

// Review is a single customer review, read-only input to the analyzer.
type Review struct {
	PlaceName   string    `json:"place_name"`
	AuthorName  string    `json:"author_name"`
	Rating      int       `json:"rating"` // 1-5
	Text        string    `json:"text"`
	PublishTime time.Time `json:"publish_time"`
}

// ReviewReport is the full output of a review-analytics pass. Derived,
// recomputed per call.
type ReviewReport struct {
	Summary          ReviewSummary    `json:"summary"`
	SentimentBuckets SentimentBuckets `json:"sentiment_buckets"`
	CommonWords      CommonWords      `json:"common_words"`
	ExclusiveWords   ExclusiveWords   `json:"exclusive_words"`
}

// ReviewSummary holds batch-level aggregates.
type ReviewSummary struct {
	TotalReviews int     `json:"total_reviews"`
	AvgRating    float64 `json:"avg_rating"`
	AvgSentiment float64 `json:"avg_sentiment"`
}

// SentimentBuckets counts reviews by the sign of their sentiment score.
// The three counts always sum to TotalReviews.
type SentimentBuckets struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// CommonWords holds word frequencies for high-rated (>=4) and low-rated
// (<=2) reviews. A word seen on both sides is kept as a key but zeroed in
// both maps.
type CommonWords struct {
	Positive map[string]int `json:"positive"`
	Negative map[string]int `json:"negative"`
}

// ExclusiveWords holds vocabulary unique to 5-star and to 1-star reviews
// (set difference, not intersection).
type ExclusiveWords struct {
	FiveStarOnly map[string]int `json:"five_star_only"`
	OneStarOnly  map[string]int `json:"one_star_only"`
}
