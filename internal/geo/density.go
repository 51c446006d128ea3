// Package geo computes great-circle distances and local competitive-density
// scores for batches of coordinates.
package geo

import (
	"math"
	"sort"
)

// earthRadiusMeters is the mean Earth radius used for haversine distances.
const earthRadiusMeters = 6371000.0

// invEpsilon keeps the inverse-distance transform finite at zero distance.
const invEpsilon = 1e-6

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64
	Lng float64
}

// DensityScore is the per-point output of ComputeDensityScores.
//
// MeanNeighborDistance is the mean distance in meters to the point's k
// nearest neighbors. For a single-point batch there are no neighbors:
// HasNeighbors is false and MeanNeighborDistance is 0.
//
// Score is in [0,1] and only comparable within the batch it was computed
// from; it is the min-max normalized inverse of MeanNeighborDistance.
type DensityScore struct {
	MeanNeighborDistance float64
	Score                float64
	HasNeighbors         bool
}

// Haversine returns the great-circle distance between a and b in meters.
// It is symmetric and returns 0 for identical points.
func Haversine(a, b Point) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLng/2), 2)

	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

// DefaultNeighbors is the default k for ComputeDensityScores.
const DefaultNeighbors = 3

// ComputeDensityScores scores each point by how tightly clustered it is with
// its k nearest neighbors. A point's distance to itself is forced to +Inf in
// the distance matrix so it never counts as its own neighbor. Effective k is
// min(k, n-1).
//
// When every point has the same mean neighbor distance (including the n==1
// case) min-max normalization would divide by zero; every point then gets a
// score of 1.0.
//
// O(n^2) time and space; callers bound the batch size.
func ComputeDensityScores(points []Point, k int) []DensityScore {
	n := len(points)
	if n == 0 {
		return nil
	}
	if k <= 0 {
		k = DefaultNeighbors
	}

	out := make([]DensityScore, n)
	if n == 1 {
		out[0] = DensityScore{Score: 1.0}
		return out
	}

	// Full distance matrix with +Inf on the diagonal.
	dist := make([][]float64, n)
	for i := range points {
		dist[i] = make([]float64, n)
		for j := range points {
			if i == j {
				dist[i][j] = math.Inf(1)
				continue
			}
			dist[i][j] = Haversine(points[i], points[j])
		}
	}

	inv := make([]float64, n)
	for i, row := range dist {
		sorted := make([]float64, n)
		copy(sorted, row)
		sort.Float64s(sorted)

		kUsed := min(k, n-1)
		var sum float64
		for _, d := range sorted[:kUsed] {
			sum += d
		}
		mean := sum / float64(kUsed)

		out[i] = DensityScore{MeanNeighborDistance: mean, HasNeighbors: true}
		inv[i] = 1 / (mean + invEpsilon)
	}

	lo, hi := inv[0], inv[0]
	for _, v := range inv[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	for i, v := range inv {
		if hi == lo {
			out[i].Score = 1.0
			continue
		}
		out[i].Score = (v - lo) / (hi - lo)
	}

	return out
}
