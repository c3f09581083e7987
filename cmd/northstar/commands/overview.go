// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/northstar-hq/northstar/cmd/northstar/internal/clierr"
	"github.com/northstar-hq/northstar/internal/cycle"
	"github.com/northstar-hq/northstar/internal/filter"
	"github.com/northstar-hq/northstar/internal/projection"
)

// NewOverviewCommand builds the cycle-overview view: pick the default cycle
// (or the one requested), restrict the tree to it and print its progress.
func NewOverviewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show progress metrics for one cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := runPipeline(cmd)
			if err != nil {
				return err
			}

			cycleID, err := cmd.Flags().GetString("cycle")
			if err != nil {
				return clierr.Newf(2, "get cycle flag: %v", err)
			}

			now := time.Now()
			selected := cycle.SelectDefault(result.Cycles, now)
			if cycleID != "" {
				index := result.CycleIndex()
				c, ok := index[cycleID]
				if !ok {
					return clierr.Newf(1, "unknown cycle id: %s", cycleID)
				}
				selected = &c
			}
			if selected == nil {
				return clierr.New(1, "snapshot contains no cycles")
			}

			engine := filter.NewEngine(nil)
			scoped := filter.ByCycle(engine, result.Initiatives, filter.Selector{ID: selected.ID})
			progress := cycle.CalculateProgress(*selected, scoped, now)

			asJSON, err := cmd.Flags().GetBool("json")
			if err != nil {
				return clierr.Newf(2, "get json flag: %v", err)
			}
			if asJSON {
				out, err := json.MarshalIndent(progress, "", "  ")
				if err != nil {
					return clierr.Wrap(1, "encoding overview", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Cycle:      %s (%s)\n", progress.Cycle.Name, progress.Cycle.State)
			fmt.Fprintf(w, "Items:      %d (%.0f%% done)\n", progress.TotalItems, progress.CompletionPercentage)
			fmt.Fprintf(w, "Effort:     %.1f of %.1f completed\n", progress.CompletedEffort, progress.TotalEffort)
			fmt.Fprintf(w, "Days:       %d elapsed, %d remaining of %d\n", progress.ElapsedDays, progress.RemainingDays, progress.TotalDays)
			for _, status := range projection.SortedKeys(progress.CountsByStatus) {
				fmt.Fprintf(w, "  %-11s %d\n", string(status)+":", progress.CountsByStatus[status])
			}
			return nil
		},
	}

	cmd.Flags().String("cycle", "", "cycle id to show (defaults to the active cycle)")
	cmd.Flags().Bool("json", false, "emit JSON instead of text")

	return cmd
}
