// Package places builds enriched Place records from raw provider data and
// computes batch-level business analytics over them.
package places

import (
	"sort"
	"strings"

	"github.com/localsight/localsight/internal/geo"
	"github.com/localsight/localsight/internal/model"
)

// BusinessScore is the rating x review-count popularity proxy. Missing
// inputs (zero values) yield 0, never NaN.
func BusinessScore(rating float64, reviewCount int) float64 {
	if rating <= 0 || reviewCount <= 0 {
		return 0
	}
	return rating * float64(reviewCount)
}

// BatchStats holds aggregates over a scored batch of places.
type BatchStats struct {
	AverageRating        float64 `json:"average_rating"`
	AverageBusinessScore float64 `json:"average_business_score"`
	MaxBusinessScore     float64 `json:"max_business_score"`
}

// ComputeBatchStats derives rating and business-score aggregates.
func ComputeBatchStats(places []model.Place) BatchStats {
	var stats BatchStats
	if len(places) == 0 {
		return stats
	}
	for _, p := range places {
		stats.AverageRating += p.Rating
		stats.AverageBusinessScore += p.BusinessScore
		if p.BusinessScore > stats.MaxBusinessScore {
			stats.MaxBusinessScore = p.BusinessScore
		}
	}
	stats.AverageRating /= float64(len(places))
	stats.AverageBusinessScore /= float64(len(places))
	return stats
}

// PercentOfMax expresses a score as a percentage of the batch maximum.
// A zero maximum yields 0 rather than NaN or Inf.
func PercentOfMax(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	return score / maxScore * 100
}

// Rank returns the places sorted by business score descending. The sort is
// stable, so ties keep their input order. The input slice is not modified.
func Rank(places []model.Place) []model.Place {
	ranked := make([]model.Place, len(places))
	copy(ranked, places)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].BusinessScore > ranked[j].BusinessScore
	})
	return ranked
}

// CountPlaceTypes tallies the comma-separated provider type tags across a
// batch. Empty tags are skipped.
func CountPlaceTypes(places []model.Place) map[string]int {
	counts := make(map[string]int)
	for _, p := range places {
		for _, t := range strings.Split(p.Types, ",") {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			counts[t]++
		}
	}
	return counts
}

// Rating-group display labels.
const (
	RatingGreat   = "Great! (4-5)"
	RatingGood    = "Good (3-4)"
	RatingBad     = "Bad (0-3)"
	RatingUnrated = "Unrated"
)

// GroupByRating buckets places by rating band for display.
func GroupByRating(places []model.Place) map[string]int {
	groups := map[string]int{
		RatingGreat:   0,
		RatingGood:    0,
		RatingBad:     0,
		RatingUnrated: 0,
	}
	for _, p := range places {
		switch {
		case p.Rating > 4:
			groups[RatingGreat]++
		case p.Rating > 3:
			groups[RatingGood]++
		case p.Rating >= 0:
			groups[RatingBad]++
		default:
			groups[RatingUnrated]++
		}
	}
	return groups
}

// ViabilityInputs feeds the overall area-viability blend. GDP and
// PopulationDensity are optional; zero means unknown.
type ViabilityInputs struct {
	AverageRating        float64
	AverageBusinessScore float64
	GDP                  float64
	PopulationDensity    float64
}

// ViabilityScore blends review quality, business-score strength, and
// optional area statistics into a 0-100 score. Unknown GDP or density terms
// contribute a flat 10% instead of their capped 15% share.
func ViabilityScore(in ViabilityInputs) int {
	gdpTerm := 0.1
	if in.GDP > 0 {
		gdpTerm = minFloat(in.GDP/100000, 1) * 0.15
	}
	densityTerm := 0.1
	if in.PopulationDensity > 0 {
		densityTerm = minFloat(in.PopulationDensity/20000, 1) * 0.15
	}

	score := gdpTerm +
		densityTerm +
		in.AverageRating/5*0.25 +
		minFloat(in.AverageBusinessScore/1000, 1)*0.25 +
		0.25

	return int(score*100 + 0.5)
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Annotate computes every derived field for a batch in one pass: business
// scores, k-nearest competitive density, and weekly uptime. It returns a new
// slice; the inputs are left untouched so no partially-scored Place is ever
// observable.
func Annotate(in []model.Place, k int) []model.Place {
	out := make([]model.Place, len(in))
	copy(out, in)

	points := make([]geo.Point, len(in))
	for i, p := range in {
		points[i] = geo.Point{Lat: p.Latitude, Lng: p.Longitude}
	}
	density := geo.ComputeDensityScores(points, k)

	for i := range out {
		out[i].BusinessScore = BusinessScore(out[i].Rating, out[i].ReviewCount)
		out[i].DensityScore = density[i].Score
		out[i].MeanNeighborDistance = density[i].MeanNeighborDistance
		out[i].HasNeighbors = density[i].HasNeighbors
		out[i].UptimePercent = WeeklyUptimePercent(out[i].OpenHoursText)
	}
	return out
}
