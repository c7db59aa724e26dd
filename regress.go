package main

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// regressionPredictors is the fixed formula: gdp regressed on these
// columns, fitted independently within each cluster partition.
var regressionPredictors = []string{
	"population",
	"gdp_per_capita",
	"exports_gdp",
	"fdi_inflows",
	"internet_usage",
	"life_expectancy",
	"unemployment",
}

type Regression struct {
	Response   string
	Predictors []string // without intercept
	Coef       []float64
	StdErr     []float64
	TValues    []float64
	PValues    []float64
	R2         float64
	AdjR2      float64
	Fitted     []float64
	Residuals  []float64
	N          int
}

// fitOLS fits y = Xb by ordinary least squares with an intercept,
// solving through a QR factorization. X holds one column per predictor.
func fitOLS(y []float64, cols [][]float64, response string, predictors []string) (*Regression, error) {
	n := len(y)
	p := len(cols) + 1 // plus intercept
	if n <= p {
		return nil, fmt.Errorf("regression on %q: %d observations for %d parameters", response, n, p)
	}
	for _, col := range cols {
		if len(col) != n {
			return nil, fmt.Errorf("regression on %q: ragged design matrix", response)
		}
	}

	X := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, 1)
		for j, col := range cols {
			X.Set(i, j+1, col[i])
		}
	}
	Y := mat.NewDense(n, 1, append([]float64(nil), y...))

	var qr mat.QR
	qr.Factorize(X)
	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, Y); err != nil {
		return nil, fmt.Errorf("regression on %q: singular design matrix: %w", response, err)
	}

	coef := make([]float64, p)
	for j := 0; j < p; j++ {
		coef[j] = beta.At(j, 0)
	}

	fitted := make([]float64, n)
	resid := make([]float64, n)
	rss := 0.0
	for i := 0; i < n; i++ {
		f := coef[0]
		for j, col := range cols {
			f += coef[j+1] * col[i]
		}
		fitted[i] = f
		resid[i] = y[i] - f
		rss += resid[i] * resid[i]
	}

	mean := stat.Mean(y, nil)
	tss := 0.0
	for _, v := range y {
		tss += (v - mean) * (v - mean)
	}

	r2 := 0.0
	if tss > 0 {
		r2 = 1 - rss/tss
	}
	dof := float64(n - p)
	adjR2 := 1 - (1-r2)*float64(n-1)/dof

	// Coefficient standard errors from sigma^2 (X'X)^-1.
	sigma2 := rss / dof
	var xtx, xtxInv mat.Dense
	xtx.Mul(X.T(), X)
	stderr := make([]float64, p)
	tvals := make([]float64, p)
	pvals := make([]float64, p)
	if err := xtxInv.Inverse(&xtx); err == nil {
		tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}
		for j := 0; j < p; j++ {
			stderr[j] = math.Sqrt(sigma2 * xtxInv.At(j, j))
			if stderr[j] > 0 {
				tvals[j] = coef[j] / stderr[j]
				pvals[j] = 2 * (1 - tdist.CDF(math.Abs(tvals[j])))
			} else {
				tvals[j] = math.NaN()
				pvals[j] = math.NaN()
			}
		}
	} else {
		for j := range stderr {
			stderr[j] = math.NaN()
			tvals[j] = math.NaN()
			pvals[j] = math.NaN()
		}
	}

	return &Regression{
		Response:   response,
		Predictors: predictors,
		Coef:       coef,
		StdErr:     stderr,
		TValues:    tvals,
		PValues:    pvals,
		R2:         r2,
		AdjR2:      adjR2,
		Fitted:     fitted,
		Residuals:  resid,
		N:          n,
	}, nil
}

// clusterRegressions partitions the dataset by cluster label and fits
// the fixed GDP formula inside each partition. Clusters too small for
// the parameter count are skipped with a nil entry.
func clusterRegressions(ds *Dataset, labels []int, k int) ([]*Regression, []error) {
	fits := make([]*Regression, k)
	errs := make([]error, k)

	gdp := ds.column("gdp")
	predCols := make([][]float64, len(regressionPredictors))
	for j, name := range regressionPredictors {
		predCols[j] = ds.column(name)
	}

	for c := 0; c < k; c++ {
		var y []float64
		cols := make([][]float64, len(predCols))
		for i, l := range labels {
			if l != c {
				continue
			}
			y = append(y, gdp[i])
			for j := range predCols {
				cols[j] = append(cols[j], predCols[j][i])
			}
		}
		fits[c], errs[c] = fitOLS(y, cols, "gdp", regressionPredictors)
	}
	return fits, errs
}
