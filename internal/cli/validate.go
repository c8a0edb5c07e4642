package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/olstudio/olstudio"
	"github.com/olstudio/olstudio/internal/dataio"
	"github.com/olstudio/olstudio/internal/presentation/tui"
	"github.com/olstudio/olstudio/internal/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate <dataset.csv>",
	Short: "Scan a dataset and report missing values, type mismatches and categorical columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		ds, err := dataio.LoadCSVFile(args[0])
		if err != nil {
			return err
		}

		studio := olstudio.New(olstudio.WithLogger(newLogger()))
		up, err := studio.Upload(ctx, ds)
		if err != nil {
			return err
		}
		defer studio.EndSession(ctx, up.SessionID)

		render := tui.NewRenderer()
		fmt.Fprint(cmd.OutOrStdout(), render(report.Validation(up.Report, up.Columns, up.RowCount)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
