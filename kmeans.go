package main

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

const (
	kmeansRestarts = 25
	kmeansMaxIter  = 50
)

type KMeansResult struct {
	K          int
	Labels     []int
	Centroids  [][]float64
	WSS        float64 // within-cluster sum of squares
	Iterations int
}

// kMeans runs Lloyd's algorithm with random restarts and keeps the run
// with the lowest within-cluster sum of squares.
func kMeans(data [][]float64, k, restarts, maxIter int, rng *rand.Rand) KMeansResult {
	best := KMeansResult{K: k, WSS: math.Inf(1)}
	for r := 0; r < restarts; r++ {
		res := lloyd(data, k, maxIter, rng)
		if res.WSS < best.WSS {
			best = res
		}
	}
	return best
}

// lloyd is a single k-means run: seed centroids from k distinct rows,
// then alternate assignment and centroid update until assignments stop
// changing or maxIter is hit.
func lloyd(data [][]float64, k, maxIter int, rng *rand.Rand) KMeansResult {
	n := len(data)
	dim := len(data[0])

	centroids := make([][]float64, k)
	for i, idx := range rng.Perm(n)[:k] {
		centroids[i] = append([]float64(nil), data[idx]...)
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	iter := 0
	for ; iter < maxIter; iter++ {
		changed := false
		for i, row := range data {
			c := nearestCentroid(row, centroids)
			if c != labels[i] {
				labels[i] = c
				changed = true
			}
		}
		if !changed {
			break
		}

		counts := make([]int, k)
		next := make([][]float64, k)
		for c := range next {
			next[c] = make([]float64, dim)
		}
		for i, row := range data {
			floats.Add(next[labels[i]], row)
			counts[labels[i]]++
		}
		for c := range next {
			if counts[c] == 0 {
				// Empty cluster: reseed from a random row so k is preserved.
				next[c] = append([]float64(nil), data[rng.Intn(n)]...)
				continue
			}
			floats.Scale(1/float64(counts[c]), next[c])
		}
		centroids = next
	}

	wss := 0.0
	for i, row := range data {
		d := floats.Distance(row, centroids[labels[i]], 2)
		wss += d * d
	}
	return KMeansResult{K: k, Labels: labels, Centroids: centroids, WSS: wss, Iterations: iter}
}

func nearestCentroid(row []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, centroid := range centroids {
		if d := floats.Distance(row, centroid, 2); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}
