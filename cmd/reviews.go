package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/localsight/localsight/internal/model"
	"github.com/localsight/localsight/internal/reviews"
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Analyze review sentiment",
	Long: `Reads a JSON array of reviews, scores each against the sentiment
lexicon, and reports sentiment buckets, common words by rating band, and
vocabulary exclusive to 5-star or 1-star reviews.

Examples:
  reviews --input reviews.json
  reviews --input reviews.json --format json --output report.json`,
	RunE: runReviews,
}

func init() {
	f := reviewsCmd.Flags()
	f.String("input", "", "reviews JSON file (required)")
	f.String("format", "table", "output format: table or json")
	f.String("output", "", "output file path (default: stdout)")

	reviewsCmd.MarkFlagRequired("input") //nolint:errcheck
	rootCmd.AddCommand(reviewsCmd)
}

func runReviews(cmd *cobra.Command, _ []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	if format != "table" && format != "json" {
		return eris.Errorf("reviews: --format must be table or json (got %q)", format)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return eris.Wrapf(err, "reviews: read %s", inputPath)
	}

	var reviewList []model.Review
	if err := json.Unmarshal(data, &reviewList); err != nil {
		return eris.Wrapf(err, "reviews: parse %s", inputPath)
	}

	report := reviews.Analyze(reviewList)

	zap.L().Info("reviews analyzed",
		zap.Int("total", report.Summary.TotalReviews),
		zap.Float64("avg_rating", report.Summary.AvgRating),
		zap.Float64("avg_sentiment", report.Summary.AvgSentiment),
	)

	w := os.Stdout
	if outputPath != "" {
		w, err = os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "reviews: create output file %s", outputPath)
		}
		defer w.Close() //nolint:errcheck
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(report), "reviews: encode JSON")
	}

	printReviewReport(w, report)
	return nil
}

func printReviewReport(w *os.File, report model.ReviewReport) {
	s := report.Summary
	fmt.Fprintf(w, "%d reviews, average rating %.2f, average sentiment %.2f\n",
		s.TotalReviews, s.AvgRating, s.AvgSentiment)

	b := report.SentimentBuckets
	fmt.Fprintf(w, "sentiment: %d positive / %d neutral / %d negative\n",
		b.Positive, b.Neutral, b.Negative)

	fmt.Fprintf(w, "\ntop words in high-rated reviews:\n")
	printTopWords(w, report.CommonWords.Positive, 10)
	fmt.Fprintf(w, "\ntop words in low-rated reviews:\n")
	printTopWords(w, report.CommonWords.Negative, 10)
	fmt.Fprintf(w, "\nonly in 5-star reviews:\n")
	printTopWords(w, report.ExclusiveWords.FiveStarOnly, 10)
	fmt.Fprintf(w, "\nonly in 1-star reviews:\n")
	printTopWords(w, report.ExclusiveWords.OneStarOnly, 10)
}

func printTopWords(w *os.File, freq map[string]int, n int) {
	type wc struct {
		word  string
		count int
	}
	var sorted []wc
	for word, count := range freq {
		if count > 0 {
			sorted = append(sorted, wc{word, count})
		}
	}
	if len(sorted) == 0 {
		fmt.Fprintf(w, "  (none)\n")
		return
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].word < sorted[j].word
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	for _, e := range sorted {
		fmt.Fprintf(w, "  %-20s %d\n", e.word, e.count)
	}
}
