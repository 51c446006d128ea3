package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/localsight/localsight/internal/model"
	"github.com/localsight/localsight/internal/places"
)

var placesCmd = &cobra.Command{
	Use:   "places",
	Short: "Score and rank places from provider JSON",
	Long: `Reads a raw Places-search provider response, computes business and
density scores for every place, and writes the ranked results.

Examples:
  # Rank places from a saved search response
  places --input search.json

  # Flag the caller's own listing and export a spreadsheet
  places --input search.json --business-name "Brew & Bean" --format xlsx --output places.xlsx`,
	RunE: runPlaces,
}

func init() {
	f := placesCmd.Flags()
	f.String("input", "", "provider response JSON file (required)")
	f.String("business-name", "", "the caller's own business name, for match flagging")
	f.String("format", "table", "output format: table, csv, or xlsx")
	f.String("output", "", "output file path (default: stdout; required for xlsx)")

	placesCmd.MarkFlagRequired("input") //nolint:errcheck
	rootCmd.AddCommand(placesCmd)
}

func runPlaces(cmd *cobra.Command, _ []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	businessName, _ := cmd.Flags().GetString("business-name")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	if format != "table" && format != "csv" && format != "xlsx" {
		return eris.Errorf("places: --format must be table, csv, or xlsx (got %q)", format)
	}
	if format == "xlsx" && outputPath == "" {
		return eris.New("places: --output is required with --format xlsx")
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return eris.Wrapf(err, "places: read %s", inputPath)
	}

	batch, err := places.FromProviderJSON(data, businessName)
	if err != nil {
		return err
	}

	annotated := places.Annotate(batch, cfg.Places.DensityNeighbors)
	ranked := places.Rank(annotated)
	stats := places.ComputeBatchStats(annotated)

	zap.L().Info("places scored",
		zap.Int("total", len(ranked)),
		zap.Float64("avg_business_score", stats.AverageBusinessScore),
	)

	switch format {
	case "xlsx":
		if err := places.WriteXLSX(outputPath, ranked); err != nil {
			return err
		}
		fmt.Printf("Wrote %d places to %s\n", len(ranked), outputPath)
		return nil

	case "csv":
		w := os.Stdout
		if outputPath != "" {
			w, err = os.Create(outputPath)
			if err != nil {
				return eris.Wrapf(err, "places: create output file %s", outputPath)
			}
			defer w.Close() //nolint:errcheck
		}
		return places.WriteCSV(w, ranked)

	default:
		printPlacesTable(ranked)
		printPlacesSummary(annotated)
		return nil
	}
}

func printPlacesTable(ranked []model.Place) {
	for i, p := range ranked {
		match := ""
		if p.IsUserMatch {
			match = "  <- you"
		}
		fmt.Printf("%3d. %-40s score %8.1f  density %.2f  rating %.1f (%d reviews)%s\n",
			i+1, truncate(p.Name, 40), p.BusinessScore, p.DensityScore, p.Rating, p.ReviewCount, match)
	}
}

func printPlacesSummary(annotated []model.Place) {
	stats := places.ComputeBatchStats(annotated)
	fmt.Printf("\n%d places, average business score %.1f\n", len(annotated), stats.AverageBusinessScore)

	groups := places.GroupByRating(annotated)
	for _, label := range []string{places.RatingGreat, places.RatingGood, places.RatingBad, places.RatingUnrated} {
		if n := groups[label]; n > 0 {
			fmt.Printf("  %s: %d\n", label, n)
		}
	}

	typeCounts := places.CountPlaceTypes(annotated)
	if len(typeCounts) > 0 {
		type tc struct {
			name  string
			count int
		}
		var sorted []tc
		for name, count := range typeCounts {
			sorted = append(sorted, tc{name, count})
		}
		sort.Slice(sorted, func(i, j int) bool {
			if sorted[i].count != sorted[j].count {
				return sorted[i].count > sorted[j].count
			}
			return sorted[i].name < sorted[j].name
		})
		top := sorted
		if len(top) > 5 {
			top = top[:5]
		}
		var parts []string
		for _, t := range top {
			parts = append(parts, fmt.Sprintf("%s (%d)", t.name, t.count))
		}
		fmt.Printf("  top types: %s\n", strings.Join(parts, ", "))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
