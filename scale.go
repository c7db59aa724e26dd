package main

import (
	"gonum.org/v1/gonum/stat"
)

// standardize rescales every column to sample mean 0 and standard
// deviation 1. Columns with zero variance are only centered. Returns the
// scaled copy plus the per-column means and deviations used.
func standardize(matrix [][]float64) ([][]float64, []float64, []float64) {
	if len(matrix) == 0 {
		return nil, nil, nil
	}
	nCols := len(matrix[0])
	means := make([]float64, nCols)
	stds := make([]float64, nCols)

	col := make([]float64, len(matrix))
	for j := 0; j < nCols; j++ {
		for i := range matrix {
			col[i] = matrix[i][j]
		}
		means[j], stds[j] = stat.MeanStdDev(col, nil)
	}

	scaled := make([][]float64, len(matrix))
	for i, row := range matrix {
		scaled[i] = make([]float64, nCols)
		for j, v := range row {
			if stds[j] > 0 {
				scaled[i][j] = (v - means[j]) / stds[j]
			} else {
				scaled[i][j] = v - means[j]
			}
		}
	}
	return scaled, means, stds
}
