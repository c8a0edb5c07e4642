package domain

// InterceptTerm is the name of the constant term in a fitted model,
// following the statsmodels convention.
const InterceptTerm = "const"

// Coefficient holds the estimate and inference statistics for one term.
type Coefficient struct {
	Coefficient float64 `json:"coefficient"`
	StdError    float64 `json:"std_error"`
	TStatistic  float64 `json:"t_statistic"`
	PValue      float64 `json:"p_value"`
}

// RegressionModel is one fitted OLS model. Models accumulate in a
// session-scoped list; each fit appends a new one and past results are
// immutable once returned.
type RegressionModel struct {
	// Name is the user-chosen label, unique within a session.
	Name            string   `json:"name"`
	DependentVar    string   `json:"dependent_var"`
	IndependentVars []string `json:"independent_vars"`
	// Terms is the coefficient order: the intercept first, then the
	// independent variables in request order.
	Terms        []string               `json:"terms"`
	Coefficients map[string]Coefficient `json:"coefficients"`
	RSquared     float64                `json:"r_squared"`
	AdjRSquared  float64                `json:"adj_r_squared"`
	FStatistic   float64                `json:"f_statistic"`
	FPValue      float64                `json:"f_p_value"`
	// Warnings carries advisory diagnostics (multicollinearity,
	// heteroscedasticity). A model with warnings is still valid.
	Warnings []string `json:"warnings"`
}

// Clone returns a deep copy, so stored models stay immutable when handed out.
func (m *RegressionModel) Clone() *RegressionModel {
	if m == nil {
		return nil
	}
	cp := *m
	cp.IndependentVars = append([]string(nil), m.IndependentVars...)
	cp.Terms = append([]string(nil), m.Terms...)
	cp.Warnings = append([]string(nil), m.Warnings...)
	cp.Coefficients = make(map[string]Coefficient, len(m.Coefficients))
	for k, v := range m.Coefficients {
		cp.Coefficients[k] = v
	}
	return &cp
}
