// Package describe computes per-column summary statistics over fully
// numeric columns of a cleaned dataset. A requested variable that is not
// fully numeric is an error, never skipped; the cleaner is the place to
// resolve missing or text cells first.
package describe

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/olstudio/olstudio/pkg/domain"
)

// Compute returns descriptive statistics for each requested variable.
// It fails with a domain.InvalidVariableError naming the offending column
// when a variable is unknown, non-numeric, or still contains missing cells.
func Compute(ds *domain.Dataset, variables []string) (map[string]domain.DescriptiveStats, error) {
	out := make(map[string]domain.DescriptiveStats, len(variables))
	for _, name := range variables {
		nums, err := ds.NumericColumn(name)
		if err != nil {
			return nil, err
		}
		if len(nums) == 0 {
			return nil, &domain.InvalidVariableError{Variable: name, Reason: "column has no rows"}
		}
		out[name] = describe(nums)
	}
	return out, nil
}

func describe(nums []float64) domain.DescriptiveStats {
	n := len(nums)
	sorted := append([]float64(nil), nums...)
	sort.Float64s(sorted)

	mean := stat.Mean(nums, nil)
	sd := 0.0
	if n > 1 {
		sd = stat.StdDev(nums, nil) // sample standard deviation, n-1
	}

	q1 := Quantile(sorted, 0.25)
	q3 := Quantile(sorted, 0.75)
	iqr := q3 - q1
	lo, hi := q1-1.5*iqr, q3+1.5*iqr
	outliers := 0
	for _, v := range nums {
		if v < lo || v > hi {
			outliers++
		}
	}

	return domain.DescriptiveStats{
		Mean:          mean,
		Median:        Median(sorted),
		StdDev:        sd,
		Min:           sorted[0],
		Max:           sorted[n-1],
		Skewness:      skewness(nums, mean, sd),
		Kurtosis:      kurtosis(nums, mean, sd),
		OutliersCount: outliers,
	}
}

// Median returns the middle value of pre-sorted data, averaging the two
// middle values for even counts.
func Median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	mid := n / 2
	if n%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Quantile linearly interpolates the p-th quantile of pre-sorted data,
// matching the estimator conventional statistical software defaults to
// (type 7: lerp over rank p*(n-1)).
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	rank := p * float64(n-1)
	lo := int(math.Floor(rank))
	hi := lo + 1
	if hi >= n {
		return sorted[lo]
	}
	w := rank - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// skewness is the adjusted Fisher-Pearson standardized third moment (G1).
// Defined for n >= 3 with positive spread; 0 otherwise.
func skewness(nums []float64, mean, sd float64) float64 {
	n := float64(len(nums))
	if n < 3 || sd == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range nums {
		z := (v - mean) / sd
		sum += z * z * z
	}
	return n / ((n - 1) * (n - 2)) * sum
}

// kurtosis is the bias-corrected excess kurtosis (G2).
// Defined for n >= 4 with positive spread; 0 otherwise.
func kurtosis(nums []float64, mean, sd float64) float64 {
	n := float64(len(nums))
	if n < 4 || sd == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range nums {
		z := (v - mean) / sd
		sum += z * z * z * z
	}
	return n*(n+1)/((n-1)*(n-2)*(n-3))*sum - 3*(n-1)*(n-1)/((n-2)*(n-3))
}
