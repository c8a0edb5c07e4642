// Package report renders pipeline results as markdown for terminal display.
// Rendering is presentation only; it consumes the pipeline's typed results
// and never reaches back into session state.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olstudio/olstudio/pkg/domain"
)

// Validation renders a validation report for a dataset of the given shape.
func Validation(rep *domain.ValidationReport, columns []string, rows int) string {
	var b strings.Builder
	b.WriteString("# Validation\n\n")
	fmt.Fprintf(&b, "%d rows × %d columns\n\n", rows, len(columns))

	if len(rep.MissingData) == 0 && len(rep.TypeMismatches) == 0 && len(rep.CategoricalFlags) == 0 {
		b.WriteString("No data-quality issues found.\n")
		return b.String()
	}

	if len(rep.MissingData) > 0 {
		b.WriteString("## Missing data\n\n")
		for _, col := range sortedKeys(rep.MissingData) {
			fmt.Fprintf(&b, "- %s: %d missing\n", col, rep.MissingData[col])
		}
		b.WriteString("\n")
	}
	if len(rep.TypeMismatches) > 0 {
		b.WriteString("## Type mismatches\n\n")
		cols := make([]string, 0, len(rep.TypeMismatches))
		for col := range rep.TypeMismatches {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		for _, col := range cols {
			fmt.Fprintf(&b, "- %s: rows %s\n", col, joinInts(rep.TypeMismatches[col]))
		}
		b.WriteString("\n")
	}
	if len(rep.CategoricalFlags) > 0 {
		fmt.Fprintf(&b, "## Probable categorical columns\n\n%s\n", strings.Join(rep.CategoricalFlags, ", "))
	}
	return b.String()
}

// Stats renders descriptive statistics as a markdown table, in the given
// variable order.
func Stats(stats map[string]domain.DescriptiveStats, order []string) string {
	var b strings.Builder
	b.WriteString("# Descriptive statistics\n\n")
	b.WriteString("| Variable | Mean | Median | Std | Min | Max | Skew | Kurtosis | Outliers |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, v := range order {
		s, ok := stats[v]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "| %s | %.4g | %.4g | %.4g | %.4g | %.4g | %.3f | %.3f | %d |\n",
			v, s.Mean, s.Median, s.StdDev, s.Min, s.Max, s.Skewness, s.Kurtosis, s.OutliersCount)
	}
	return b.String()
}

// Model renders a fitted model: fit statistics, the coefficient table and
// any diagnostic warnings.
func Model(m *domain.RegressionModel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Model %s\n\n", m.Name)
	fmt.Fprintf(&b, "%s ~ %s\n\n", m.DependentVar, strings.Join(m.IndependentVars, " + "))
	fmt.Fprintf(&b, "R² = %.4f, adjusted R² = %.4f, F = %.4g (p = %.4g)\n\n",
		m.RSquared, m.AdjRSquared, m.FStatistic, m.FPValue)

	b.WriteString("| Term | Coefficient | Std. error | t | p |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, term := range m.Terms {
		c := m.Coefficients[term]
		fmt.Fprintf(&b, "| %s | %.6g | %.4g | %.3f | %.4g |\n",
			term, c.Coefficient, c.StdError, c.TStatistic, c.PValue)
	}

	if len(m.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range m.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}

// Distributions renders a compact text summary per variable distribution.
func Distributions(dists []domain.Distribution) string {
	var b strings.Builder
	b.WriteString("# Distributions\n\n")
	for _, d := range dists {
		fmt.Fprintf(&b, "## %s\n\n", d.Variable)
		fmt.Fprintf(&b, "mean %.4g, median %.4g, std %.4g\n\n", d.Mean, d.Median, d.StdDev)
		fmt.Fprintf(&b, "box: min %.4g, Q1 %.4g, median %.4g, Q3 %.4g, max %.4g",
			d.Box.Min, d.Box.Q1, d.Box.Median, d.Box.Q3, d.Box.Max)
		if len(d.Box.Outliers) > 0 {
			fmt.Fprintf(&b, " (%d outliers)", len(d.Box.Outliers))
		}
		fmt.Fprintf(&b, "\n\nhistogram: %d bins over [%.4g, %.4g]\n\n",
			len(d.Histogram.Counts), d.Histogram.Edges[0], d.Histogram.Edges[len(d.Histogram.Edges)-1])
	}
	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ", ")
}
