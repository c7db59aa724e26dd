package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHierarchicalSingleLinkageChain(t *testing.T) {
	// A hand-checked 1D dendrogram: a tight chain, a close pair and an
	// outlier cut at k=3.
	data := [][]float64{{0}, {0.1}, {0.2}, {10}, {10.1}, {25}}

	res := hierarchical(data, LinkageSingle, 3)
	require.Len(t, res.Labels, len(data))
	assertPartition(t, res.Labels, [][]int{{0, 1, 2}, {3, 4}, {5}})
}

func TestHierarchicalAllLinkagesAgreeOnSeparatedBlobs(t *testing.T) {
	data, groups := threeBlobs()

	for _, link := range allLinkages {
		res := hierarchical(data, link, 3)
		require.Len(t, res.Labels, len(data), "linkage %s", link)
		assertPartition(t, res.Labels, groups)
	}
}

func TestHierarchicalCompleteVsSingleOnElongatedData(t *testing.T) {
	// A chain of near-neighbors: single linkage keeps the chain whole
	// against the far pair, complete linkage may split it. Both must
	// still produce exactly k clusters.
	data := [][]float64{{0}, {1}, {2}, {3}, {4}, {100}, {101}}

	single := hierarchical(data, LinkageSingle, 2)
	assertPartition(t, single.Labels, [][]int{{0, 1, 2, 3, 4}, {5, 6}})

	complete := hierarchical(data, LinkageComplete, 2)
	seen := map[int]bool{}
	for _, l := range complete.Labels {
		seen[l] = true
	}
	assert.Len(t, seen, 2)
}

func TestHierarchicalKAtLeastN(t *testing.T) {
	data := [][]float64{{0}, {1}, {2}}
	res := hierarchical(data, LinkageAverage, 5)
	assert.Equal(t, []int{0, 1, 2}, res.Labels)
}

func TestLinkageNames(t *testing.T) {
	assert.Equal(t, "complete", LinkageComplete.String())
	assert.Equal(t, "single", LinkageSingle.String())
	assert.Equal(t, "average", LinkageAverage.String())
	assert.Equal(t, "centroid", LinkageCentroid.String())
}
