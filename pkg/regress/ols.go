// Package regress fits Ordinary Least Squares models with full inference:
// coefficient standard errors, t statistics and p-values, R² and adjusted
// R², the overall F test, and diagnostic warnings. A fit with warnings is
// still a valid, returnable model; only an uninvertible design matrix or
// missing degrees of freedom fail the fit.
package regress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/olstudio/olstudio/pkg/domain"
)

// DefaultConditionNumberLimit is the condition number above which a
// multicollinearity warning is attached. 30 is the standard econometric
// rule of thumb.
const DefaultConditionNumberLimit = 30.0

// rankTolerance is the relative singular-value cutoff below which the
// design matrix is treated as rank deficient rather than ill-conditioned.
const rankTolerance = 1e-10

// bpSignificance is the Breusch-Pagan p-value below which a
// heteroscedasticity warning is attached.
const bpSignificance = 0.05

type config struct {
	condLimit float64
}

// Option configures a fit.
type Option func(*config)

// WithConditionNumberLimit overrides the multicollinearity warning
// threshold.
func WithConditionNumberLimit(limit float64) Option {
	return func(c *config) {
		c.condLimit = limit
	}
}

// Fit estimates dependent ~ const + independents over the dataset and
// returns the fitted model under the given name.
//
// Preconditions: the variables are fully numeric columns, independents is
// non-empty, free of duplicates and excludes the dependent variable, and
// the row count exceeds len(independents)+1 so the residual degrees of
// freedom are positive.
func Fit(ds *domain.Dataset, dependent string, independents []string, name string, opts ...Option) (*domain.RegressionModel, error) {
	cfg := config{condLimit: DefaultConditionNumberLimit}
	for _, opt := range opts {
		opt(&cfg)
	}

	if name == "" {
		return nil, &domain.ValidationError{Reason: "model name must not be empty"}
	}
	if len(independents) == 0 {
		return nil, &domain.ValidationError{Reason: "at least one independent variable is required"}
	}
	seen := make(map[string]struct{}, len(independents))
	for _, v := range independents {
		if v == dependent {
			return nil, &domain.ValidationError{Column: v, Reason: "dependent variable cannot also be an independent variable"}
		}
		if _, dup := seen[v]; dup {
			return nil, &domain.ValidationError{Column: v, Reason: "duplicate independent variable"}
		}
		seen[v] = struct{}{}
	}

	y, err := ds.NumericColumn(dependent)
	if err != nil {
		return nil, err
	}
	regressors := make([][]float64, len(independents))
	for j, v := range independents {
		regressors[j], err = ds.NumericColumn(v)
		if err != nil {
			return nil, err
		}
	}

	n, k := len(y), len(independents)
	if n <= k+1 {
		return nil, &domain.InsufficientDataError{Rows: n, Required: k + 2}
	}

	// Design matrix with an intercept column of ones prepended.
	X := mat.NewDense(n, k+1, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, 1)
		for j := 0; j < k; j++ {
			X.Set(i, j+1, regressors[j][i])
		}
	}

	// Rank and conditioning from the singular values. Exact collinearity is
	// a hard failure; an invertible but ill-conditioned matrix only warns.
	var svd mat.SVD
	if !svd.Factorize(X, mat.SVDNone) {
		return nil, &domain.SingularMatrixError{Detail: "singular value decomposition did not converge"}
	}
	sv := svd.Values(nil)
	smax, smin := sv[0], sv[len(sv)-1]
	if smin <= smax*rankTolerance {
		return nil, &domain.SingularMatrixError{Detail: "perfectly collinear regressors (rank-deficient design matrix)"}
	}
	cond := smax / smin

	// Coefficients via QR, the numerically stable route to the
	// least-squares solution of the normal equations.
	var qr mat.QR
	qr.Factorize(X)
	var betaMat mat.Dense
	if err := qr.SolveTo(&betaMat, false, mat.NewVecDense(n, y)); err != nil {
		return nil, &domain.SingularMatrixError{Detail: err.Error()}
	}
	beta := make([]float64, k+1)
	for j := range beta {
		beta[j] = betaMat.At(j, 0)
	}

	// Sums of squares.
	yMean := stat.Mean(y, nil)
	resid := make([]float64, n)
	rss, tss := 0.0, 0.0
	for i := 0; i < n; i++ {
		fitted := beta[0]
		for j := 0; j < k; j++ {
			fitted += beta[j+1] * regressors[j][i]
		}
		resid[i] = y[i] - fitted
		rss += resid[i] * resid[i]
		d := y[i] - yMean
		tss += d * d
	}

	var rsq float64
	switch {
	case tss > 0:
		rsq = 1 - rss/tss
	case rss == 0:
		rsq = 1
	}
	dof := float64(n - k - 1)
	adjRsq := 1 - (1-rsq)*float64(n-1)/dof
	sigma2 := rss / dof

	// Coefficient standard errors from the diagonal of sigma² (XᵀX)⁻¹.
	var xtx, xtxInv mat.Dense
	xtx.Mul(X.T(), X)
	if err := xtxInv.Inverse(&xtx); err != nil {
		// mat.Condition signals an ill-conditioned but usable inverse; the
		// condition-number warning below covers that case.
		if _, ok := err.(mat.Condition); !ok {
			return nil, &domain.SingularMatrixError{Detail: err.Error()}
		}
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}
	terms := append([]string{domain.InterceptTerm}, independents...)
	coefficients := make(map[string]domain.Coefficient, len(terms))
	for j, term := range terms {
		se := math.Sqrt(sigma2 * xtxInv.At(j, j))
		var tStat, pValue float64
		switch {
		case se > 0:
			tStat = beta[j] / se
			pValue = 2 * tDist.Survival(math.Abs(tStat))
		case beta[j] != 0:
			// Exact fit: the estimate has no sampling variability.
			tStat = math.Inf(int(math.Copysign(1, beta[j])))
		}
		coefficients[term] = domain.Coefficient{
			Coefficient: beta[j],
			StdError:    se,
			TStatistic:  tStat,
			PValue:      pValue,
		}
	}

	// Overall F test: mean regression sum of squares over mean RSS.
	var fStat, fPValue float64
	switch {
	case rss > 0 && tss > 0:
		fStat = ((tss - rss) / float64(k)) / (rss / dof)
		fDist := distuv.F{D1: float64(k), D2: dof}
		fPValue = fDist.Survival(fStat)
	case tss > 0:
		fStat = math.Inf(1)
	default:
		fPValue = 1
	}

	var warnings []string
	if cond > cfg.condLimit {
		warnings = append(warnings, fmt.Sprintf(
			"High multicollinearity detected (condition number: %.1f). Results may be unreliable.", cond))
	}
	// Heteroscedasticity check, skipped when the fit is numerically exact
	// (zero residuals carry no variance structure to test).
	if rss > 1e-12*math.Max(tss, 1) {
		if p, ok := breuschPagan(&qr, X, resid, k); ok && p < bpSignificance {
			warnings = append(warnings, fmt.Sprintf(
				"Heteroscedasticity detected (Breusch-Pagan p = %.3f). Consider using robust standard errors.", p))
		}
	}

	return &domain.RegressionModel{
		Name:            name,
		DependentVar:    dependent,
		IndependentVars: append([]string(nil), independents...),
		Terms:           terms,
		Coefficients:    coefficients,
		RSquared:        rsq,
		AdjRSquared:     adjRsq,
		FStatistic:      fStat,
		FPValue:         fPValue,
		Warnings:        warnings,
	}, nil
}

// breuschPagan runs the Breusch-Pagan Lagrange-multiplier test: regress the
// squared residuals on the design matrix and compare n·R² of that auxiliary
// regression against a chi-squared distribution with k degrees of freedom.
// The qr factorization of X is reused from the main fit.
func breuschPagan(qr *mat.QR, X *mat.Dense, resid []float64, k int) (pValue float64, ok bool) {
	n := len(resid)
	sq := make([]float64, n)
	for i, e := range resid {
		sq[i] = e * e
	}

	var gammaMat mat.Dense
	if err := qr.SolveTo(&gammaMat, false, mat.NewVecDense(n, sq)); err != nil {
		return 0, false
	}

	sqMean := stat.Mean(sq, nil)
	rss, tss := 0.0, 0.0
	for i := 0; i < n; i++ {
		fitted := 0.0
		for j := 0; j <= k; j++ {
			fitted += gammaMat.At(j, 0) * X.At(i, j)
		}
		e := sq[i] - fitted
		rss += e * e
		d := sq[i] - sqMean
		tss += d * d
	}
	if tss <= 0 {
		return 0, false
	}

	lm := float64(n) * (1 - rss/tss)
	chi2 := distuv.ChiSquared{K: float64(k)}
	return chi2.Survival(lm), true
}
