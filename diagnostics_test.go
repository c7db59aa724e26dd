package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanSilhouetteWellSeparated(t *testing.T) {
	data, _ := threeBlobs()
	res := kMeans(data, 3, kmeansRestarts, kmeansMaxIter, rand.New(rand.NewSource(1)))

	score := meanSilhouette(data, res.Labels, 3)
	assert.Greater(t, score, 0.9, "tight separated blobs should score near 1")
	assert.LessOrEqual(t, score, 1.0)
}

func TestMeanSilhouetteBounds(t *testing.T) {
	// Overlapping points: the score can be low but never outside [-1, 1].
	data := [][]float64{{0}, {0.1}, {0.2}, {0.3}, {0.4}, {0.5}}
	labels := []int{0, 1, 0, 1, 0, 1}

	score := meanSilhouette(data, labels, 2)
	assert.GreaterOrEqual(t, score, -1.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestMeanSilhouetteDegenerateCases(t *testing.T) {
	assert.Equal(t, 0.0, meanSilhouette(nil, nil, 2))
	assert.Equal(t, 0.0, meanSilhouette([][]float64{{1}, {2}}, []int{0, 0}, 1))
}

func TestElbowCurveShape(t *testing.T) {
	data, _ := threeBlobs()
	points := elbowCurve(data, 2, 5, rand.New(rand.NewSource(2)))

	require.Len(t, points, 4)
	for i, pt := range points {
		assert.Equal(t, i+2, pt.K)
		assert.GreaterOrEqual(t, pt.WSS, 0.0)
	}
	// WSS at the true cluster count should already be near zero for
	// this data, and never rise again as k grows.
	assert.Less(t, points[1].WSS, points[0].WSS)
	for i := 1; i < len(points); i++ {
		assert.LessOrEqual(t, points[i].WSS, points[i-1].WSS+1e-9)
	}
}

func TestSilhouetteCurvePeaksAtTrueK(t *testing.T) {
	data, _ := threeBlobs()
	points := silhouetteCurve(data, 2, 5, rand.New(rand.NewSource(4)))

	require.Len(t, points, 4)
	best := points[0]
	for _, pt := range points[1:] {
		if pt.Score > best.Score {
			best = pt
		}
	}
	assert.Equal(t, 3, best.K, "silhouette should peak at the true cluster count")
}
