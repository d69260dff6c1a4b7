package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent pricing runs",
		Example: `  pricer history
  pricer history --limit 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			limit, _ := cmd.Flags().GetInt("limit")

			if app.Store == nil {
				output.Error("Run store not available. Enable it in config.toml ([store] enabled = true).")
				return fmt.Errorf("run store not configured")
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			runs, err := app.Store.ListRuns(ctx, limit)
			if err != nil {
				output.Error("Failed to load history: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(runs)
			}

			if len(runs) == 0 {
				output.Dim("No pricing runs recorded yet.")
				return nil
			}

			output.Printf("%-20s %-9s %-12s %-9s %8s %8s %6s %12s\n",
				"time", "family", "kind", "style", "spot", "strike", "N", "price")
			for _, r := range runs {
				output.Printf("%-20s %-9s %-12s %-9s %8.2f %8.2f %6d %12.4f\n",
					r.Timestamp.Format("2006-01-02 15:04:05"),
					r.Family, r.Kind, r.Style, r.Spot, r.Strike, r.Steps, r.Price)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "maximum number of runs to show")
	return cmd
}
