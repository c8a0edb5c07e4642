package domain

// DescriptiveStats is the per-column summary produced by the descriptive
// statistics engine. Defined only for fully numeric columns.
type DescriptiveStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	// StdDev is the sample standard deviation (n-1 denominator), matching
	// conventional statistical software.
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	// Skewness is the adjusted Fisher-Pearson standardized third moment.
	Skewness float64 `json:"skewness"`
	// Kurtosis is the bias-corrected excess kurtosis (G2).
	Kurtosis float64 `json:"kurtosis"`
	// OutliersCount counts values outside the 1.5×IQR fences.
	OutliersCount int `json:"outliers_count"`
}

// Histogram is a binned frequency summary. Edges has one more entry than
// Counts; bin i spans [Edges[i], Edges[i+1]).
type Histogram struct {
	Edges  []float64 `json:"bin_edges"`
	Counts []int     `json:"counts"`
}

// DensityCurve is a smoothed density estimate sampled on a fixed grid,
// ready to overlay on a histogram.
type DensityCurve struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
}

// BoxPlot is the five-number summary plus the outlier points beyond the
// 1.5×IQR fences. Min and Max are whisker ends (inside the fences).
type BoxPlot struct {
	Min      float64   `json:"min"`
	Q1       float64   `json:"q1"`
	Median   float64   `json:"median"`
	Q3       float64   `json:"q3"`
	Max      float64   `json:"max"`
	Outliers []float64 `json:"outliers"`
}

// Distribution carries everything a renderer needs to draw a histogram with
// a density overlay and a box plot for one variable. Rasterizing is an
// external collaborator's job; the pipeline emits numbers only.
type Distribution struct {
	Variable  string       `json:"variable"`
	Histogram Histogram    `json:"histogram"`
	Density   DensityCurve `json:"density"`
	Box       BoxPlot      `json:"box"`
	// Summary annotations shown alongside the plots.
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}
