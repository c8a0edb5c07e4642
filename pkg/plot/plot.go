// Package plot generates the numeric data behind distribution plots: a
// histogram with a smoothed density overlay and a box-plot five-number
// summary per variable. Rasterizing to an image is an external
// collaborator's responsibility; this package emits arrays and summaries
// only.
package plot

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/olstudio/olstudio/pkg/describe"
	"github.com/olstudio/olstudio/pkg/domain"
)

// densityGridPoints is the fixed sample count of the KDE curve.
const densityGridPoints = 100

// Build returns one Distribution per requested variable, in request order.
// Variables must be fully numeric; failures mirror describe.Compute.
func Build(ds *domain.Dataset, variables []string) ([]domain.Distribution, error) {
	out := make([]domain.Distribution, 0, len(variables))
	for _, name := range variables {
		nums, err := ds.NumericColumn(name)
		if err != nil {
			return nil, err
		}
		if len(nums) == 0 {
			return nil, &domain.InvalidVariableError{Variable: name, Reason: "column has no rows"}
		}
		out = append(out, distribution(name, nums))
	}
	return out, nil
}

func distribution(name string, nums []float64) domain.Distribution {
	n := len(nums)
	sorted := append([]float64(nil), nums...)
	sort.Float64s(sorted)

	mean := stat.Mean(nums, nil)
	sd := 0.0
	if n > 1 {
		sd = stat.StdDev(nums, nil)
	}

	return domain.Distribution{
		Variable:  name,
		Histogram: histogram(sorted),
		Density:   density(sorted, sd),
		Box:       boxPlot(sorted),
		Mean:      mean,
		Median:    describe.Median(sorted),
		StdDev:    sd,
	}
}

// histogram bins pre-sorted data using Sturges' rule.
func histogram(sorted []float64) domain.Histogram {
	n := len(sorted)
	lo, hi := sorted[0], sorted[n-1]
	if lo == hi {
		// Degenerate spread: a single unit-wide bin centered on the value.
		return domain.Histogram{
			Edges:  []float64{lo - 0.5, lo + 0.5},
			Counts: []int{n},
		}
	}

	bins := int(math.Ceil(math.Log2(float64(n)))) + 1
	width := (hi - lo) / float64(bins)

	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	edges[bins] = hi

	counts := make([]int, bins)
	for _, v := range sorted {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	return domain.Histogram{Edges: edges, Counts: counts}
}

// density evaluates a Gaussian kernel density estimate on a fixed grid,
// with Silverman's rule-of-thumb bandwidth.
func density(sorted []float64, sd float64) domain.DensityCurve {
	n := len(sorted)
	lo, hi := sorted[0], sorted[n-1]

	h := 1.06 * sd * math.Pow(float64(n), -0.2)
	if h <= 0 {
		// Zero spread; fall back to a nominal bandwidth so the curve is
		// well-defined rather than a Dirac spike.
		h = 1
	}

	// Extend the grid one bandwidth past the data so the tails taper.
	start, end := lo-h, hi+h
	step := (end - start) / float64(densityGridPoints-1)

	const invSqrt2Pi = 0.3989422804014327
	xs := make([]float64, densityGridPoints)
	ys := make([]float64, densityGridPoints)
	for i := range xs {
		x := start + float64(i)*step
		sum := 0.0
		for _, v := range sorted {
			z := (x - v) / h
			sum += math.Exp(-0.5*z*z) * invSqrt2Pi
		}
		xs[i] = x
		ys[i] = sum / (float64(n) * h)
	}
	return domain.DensityCurve{X: xs, Y: ys}
}

// boxPlot computes the five-number summary over pre-sorted data, with
// whiskers at the most extreme values inside the 1.5×IQR fences and the
// values beyond them listed as outlier points.
func boxPlot(sorted []float64) domain.BoxPlot {
	q1 := describe.Quantile(sorted, 0.25)
	q3 := describe.Quantile(sorted, 0.75)
	iqr := q3 - q1
	lo, hi := q1-1.5*iqr, q3+1.5*iqr

	box := domain.BoxPlot{
		Q1:       q1,
		Median:   describe.Median(sorted),
		Q3:       q3,
		Outliers: []float64{},
	}

	whiskerLo, whiskerHi := math.NaN(), math.NaN()
	for _, v := range sorted {
		if v < lo || v > hi {
			box.Outliers = append(box.Outliers, v)
			continue
		}
		if math.IsNaN(whiskerLo) {
			whiskerLo = v
		}
		whiskerHi = v
	}
	// All points can only be outliers when IQR collapses; fall back to the
	// raw extremes so the summary stays well-formed.
	if math.IsNaN(whiskerLo) {
		whiskerLo, whiskerHi = sorted[0], sorted[len(sorted)-1]
	}
	box.Min, box.Max = whiskerLo, whiskerHi
	return box
}
