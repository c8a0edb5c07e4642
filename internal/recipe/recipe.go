// Package recipe loads study recipes: YAML files declaring the cleaning
// decisions, the variables to summarize, and the model variants to fit.
// A recipe makes a study repeatable: the same file against the same CSV
// always produces the same models.
package recipe

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/olstudio/olstudio/pkg/domain"
)

// ModelSpec declares one regression variant.
type ModelSpec struct {
	Name         string   `yaml:"name"`
	Dependent    string   `yaml:"dependent"`
	Independents []string `yaml:"independents"`
}

// Recipe is a full study declaration.
type Recipe struct {
	// Cleaning maps column names to cleaning decision strings.
	Cleaning map[string]string `yaml:"cleaning"`
	// Stats lists the variables to summarize; defaults to every model
	// variable when empty.
	Stats []string `yaml:"stats"`
	// Plots lists the variables to generate distribution data for.
	Plots []string `yaml:"plots"`
	// Models lists the regression variants to fit, in order.
	Models []ModelSpec `yaml:"models"`
}

// Load reads and validates a recipe file.
func Load(path string) (*Recipe, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe: %w", err)
	}
	var r Recipe
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("parse recipe: %w", err)
	}
	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("invalid recipe: %w", err)
	}
	return &r, nil
}

func (r *Recipe) validate() error {
	for col, d := range r.Cleaning {
		if _, err := domain.ParseCleaningDecision(d); err != nil {
			return fmt.Errorf("cleaning for column %q: %w", col, err)
		}
	}
	names := make(map[string]struct{}, len(r.Models))
	for i, m := range r.Models {
		if m.Name == "" {
			return fmt.Errorf("model %d: missing name", i)
		}
		if _, dup := names[m.Name]; dup {
			return fmt.Errorf("model %q: duplicate name", m.Name)
		}
		names[m.Name] = struct{}{}
		if m.Dependent == "" {
			return fmt.Errorf("model %q: missing dependent variable", m.Name)
		}
		if len(m.Independents) == 0 {
			return fmt.Errorf("model %q: no independent variables", m.Name)
		}
	}
	return nil
}

// Decisions converts the cleaning section to typed decisions.
func (r *Recipe) Decisions() domain.Decisions {
	out := make(domain.Decisions, len(r.Cleaning))
	for col, d := range r.Cleaning {
		out[col] = domain.CleaningDecision(d)
	}
	return out
}

// StatsVariables returns the variables to summarize, defaulting to the
// union of all model variables in first-appearance order.
func (r *Recipe) StatsVariables() []string {
	if len(r.Stats) > 0 {
		return r.Stats
	}
	var order []string
	seen := make(map[string]struct{})
	add := func(v string) {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			order = append(order, v)
		}
	}
	for _, m := range r.Models {
		add(m.Dependent)
		for _, v := range m.Independents {
			add(v)
		}
	}
	return order
}
