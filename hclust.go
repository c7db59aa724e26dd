package main

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

type Linkage int

const (
	LinkageComplete Linkage = iota
	LinkageSingle
	LinkageAverage
	LinkageCentroid
)

var allLinkages = []Linkage{LinkageComplete, LinkageSingle, LinkageAverage, LinkageCentroid}

func (l Linkage) String() string {
	switch l {
	case LinkageComplete:
		return "complete"
	case LinkageSingle:
		return "single"
	case LinkageAverage:
		return "average"
	case LinkageCentroid:
		return "centroid"
	}
	return "unknown"
}

type HClustResult struct {
	Linkage Linkage
	K       int
	Labels  []int
}

// hierarchical runs bottom-up agglomerative clustering with Euclidean
// distance and cuts the tree at k clusters. Cluster distances for the
// complete, single and average linkages come from the pairwise point
// distances; the centroid linkage measures between mean vectors.
func hierarchical(data [][]float64, link Linkage, k int) HClustResult {
	n := len(data)
	labels := make([]int, n)
	if k >= n {
		for i := range labels {
			labels[i] = i
		}
		return HClustResult{Linkage: link, K: k, Labels: labels}
	}

	dist := pointDistances(data)

	// Active clusters as member index lists.
	clusters := make([][]int, n)
	for i := range clusters {
		clusters[i] = []int{i}
	}

	for len(clusters) > k {
		bi, bj := 0, 1
		bestDist := math.Inf(1)
		for i := 0; i < len(clusters); i++ {
			for j := i + 1; j < len(clusters); j++ {
				d := clusterDistance(clusters[i], clusters[j], dist, data, link)
				if d < bestDist {
					bestDist = d
					bi, bj = i, j
				}
			}
		}
		merged := append(append([]int(nil), clusters[bi]...), clusters[bj]...)
		clusters = append(clusters[:bj], clusters[bj+1:]...)
		clusters[bi] = merged
	}

	for c, members := range clusters {
		for _, i := range members {
			labels[i] = c
		}
	}
	return HClustResult{Linkage: link, K: k, Labels: labels}
}

func pointDistances(data [][]float64) *mat.SymDense {
	n := len(data)
	dist := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dist.SetSym(i, j, floats.Distance(data[i], data[j], 2))
		}
	}
	return dist
}

func clusterDistance(a, b []int, dist *mat.SymDense, data [][]float64, link Linkage) float64 {
	switch link {
	case LinkageSingle:
		best := math.Inf(1)
		for _, i := range a {
			for _, j := range b {
				if d := dist.At(i, j); d < best {
					best = d
				}
			}
		}
		return best
	case LinkageAverage:
		sum := 0.0
		for _, i := range a {
			for _, j := range b {
				sum += dist.At(i, j)
			}
		}
		return sum / float64(len(a)*len(b))
	case LinkageCentroid:
		return floats.Distance(centroidOf(a, data), centroidOf(b, data), 2)
	default: // complete
		worst := 0.0
		for _, i := range a {
			for _, j := range b {
				if d := dist.At(i, j); d > worst {
					worst = d
				}
			}
		}
		return worst
	}
}

func centroidOf(members []int, data [][]float64) []float64 {
	c := make([]float64, len(data[0]))
	for _, i := range members {
		floats.Add(c, data[i])
	}
	floats.Scale(1/float64(len(members)), c)
	return c
}
