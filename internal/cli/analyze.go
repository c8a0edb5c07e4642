package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/olstudio/olstudio"
	"github.com/olstudio/olstudio/internal/dataio"
	"github.com/olstudio/olstudio/internal/presentation/tui"
	"github.com/olstudio/olstudio/internal/recipe"
	"github.com/olstudio/olstudio/internal/report"
)

var recipePath string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <dataset.csv>",
	Short: "Run a full study: clean, summarize and fit every model in the recipe",
	Long: `analyze drives one pipeline session end to end. The recipe file declares
the cleaning decision per column and the model variants to fit:

    cleaning:
      price: impute_median
      label: drop_column
    stats: [price, sqft]
    plots: [price]
    models:
      - name: baseline
        dependent: price
        independents: [sqft]
      - name: extended
        dependent: price
        independents: [sqft, age]`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		out := cmd.OutOrStdout()
		render := tui.NewRenderer()

		rcp, err := recipe.Load(recipePath)
		if err != nil {
			return err
		}
		ds, err := dataio.LoadCSVFile(args[0])
		if err != nil {
			return err
		}

		fmt.Fprintln(out, tui.Banner())

		studio := olstudio.New(olstudio.WithLogger(newLogger()))
		up, err := studio.Upload(ctx, ds)
		if err != nil {
			return err
		}
		defer studio.EndSession(ctx, up.SessionID)

		fmt.Fprint(out, render(report.Validation(up.Report, up.Columns, up.RowCount)))

		if _, err := studio.Clean(ctx, up.SessionID, rcp.Decisions()); err != nil {
			return fmt.Errorf("cleaning: %w", err)
		}

		statsVars := rcp.StatsVariables()
		if len(statsVars) > 0 {
			stats, err := studio.Describe(ctx, up.SessionID, statsVars)
			if err != nil {
				return fmt.Errorf("describe: %w", err)
			}
			fmt.Fprint(out, render(report.Stats(stats, statsVars)))
		}

		if len(rcp.Plots) > 0 {
			dists, err := studio.PlotData(ctx, up.SessionID, rcp.Plots)
			if err != nil {
				return fmt.Errorf("plot data: %w", err)
			}
			fmt.Fprint(out, render(report.Distributions(dists)))
		}

		var failures []string
		for _, spec := range rcp.Models {
			model, err := studio.Fit(ctx, up.SessionID, spec.Dependent, spec.Independents, spec.Name)
			if err != nil {
				failures = append(failures, fmt.Sprintf("%s: %v", spec.Name, err))
				fmt.Fprintln(out, tui.Warn(fmt.Sprintf("✗ model %s failed: %v", spec.Name, err)))
				continue
			}
			fmt.Fprint(out, render(report.Model(model)))
		}
		if len(failures) > 0 {
			return fmt.Errorf("model fits failed:\n  %s", strings.Join(failures, "\n  "))
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&recipePath, "recipe", "study.yaml", "study recipe file (YAML)")
	rootCmd.AddCommand(analyzeCmd)
}
