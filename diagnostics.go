package main

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

type ElbowPoint struct {
	K   int
	WSS float64
}

type SilhouettePoint struct {
	K     int
	Score float64 // mean silhouette width over all points
}

// elbowCurve runs k-means across a range of k and records the
// within-cluster sum of squares for each, for the usual elbow reading.
func elbowCurve(data [][]float64, kMin, kMax int, rng *rand.Rand) []ElbowPoint {
	var points []ElbowPoint
	for k := kMin; k <= kMax; k++ {
		res := kMeans(data, k, kmeansRestarts, kmeansMaxIter, rng)
		points = append(points, ElbowPoint{K: k, WSS: res.WSS})
	}
	return points
}

// silhouetteCurve computes the mean silhouette width of a k-means
// clustering for each k in the range.
func silhouetteCurve(data [][]float64, kMin, kMax int, rng *rand.Rand) []SilhouettePoint {
	var points []SilhouettePoint
	for k := kMin; k <= kMax; k++ {
		res := kMeans(data, k, kmeansRestarts, kmeansMaxIter, rng)
		points = append(points, SilhouettePoint{K: k, Score: meanSilhouette(data, res.Labels, k)})
	}
	return points
}

// meanSilhouette averages the silhouette width s(i) = (b-a)/max(a,b)
// over all points, where a is the mean distance to the point's own
// cluster and b the smallest mean distance to any other cluster.
// Singleton clusters contribute zero, matching the usual convention.
func meanSilhouette(data [][]float64, labels []int, k int) float64 {
	n := len(data)
	if n == 0 || k < 2 {
		return 0
	}

	counts := make([]int, k)
	for _, l := range labels {
		counts[l]++
	}

	total := 0.0
	sums := make([]float64, k)
	for i := 0; i < n; i++ {
		for c := range sums {
			sums[c] = 0
		}
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			sums[labels[j]] += floats.Distance(data[i], data[j], 2)
		}

		own := labels[i]
		if counts[own] < 2 {
			continue
		}
		a := sums[own] / float64(counts[own]-1)

		b := math.Inf(1)
		for c := 0; c < k; c++ {
			if c == own || counts[c] == 0 {
				continue
			}
			if m := sums[c] / float64(counts[c]); m < b {
				b = m
			}
		}

		if denom := math.Max(a, b); denom > 0 {
			total += (b - a) / denom
		}
	}
	return total / float64(n)
}
