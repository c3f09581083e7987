// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/northstar-hq/northstar/cmd/northstar/internal/clierr"
	"github.com/northstar-hq/northstar/internal/filter"
	"github.com/northstar-hq/northstar/internal/projection"
	"github.com/northstar-hq/northstar/internal/roadmap"
)

// NewRoadmapCommand builds the roadmap view: parse the snapshot, apply the
// selected filters, print the surviving initiative tree.
func NewRoadmapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roadmap",
		Short: "Render the filtered initiative/roadmap-item/release-item tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := runPipeline(cmd)
			if err != nil {
				return err
			}

			fc, err := filterConfigFromFlags(cmd)
			if err != nil {
				return err
			}

			engine := filter.NewEngine(nil)
			filtered := engine.Apply(result.Initiatives, fc)

			asJSON, err := cmd.Flags().GetBool("json")
			if err != nil {
				return clierr.Newf(2, "get json flag: %v", err)
			}
			if asJSON {
				out, err := json.MarshalIndent(filtered, "", "  ")
				if err != nil {
					return clierr.Wrap(1, "encoding roadmap", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), renderRoadmap(filtered))
			return nil
		},
	}

	cmd.Flags().String("area", "", "filter release items by area (\"all\" disables the filter)")
	cmd.Flags().StringSlice("stage", nil, "filter release items by stage")
	cmd.Flags().StringSlice("assignee", nil, "filter release items by assignee id")
	cmd.Flags().StringSlice("initiative", nil, "filter by initiative id")
	cmd.Flags().String("cycle", "", "restrict the view to one cycle id")
	cmd.Flags().Bool("json", false, "emit JSON instead of markdown")

	return cmd
}

func filterConfigFromFlags(cmd *cobra.Command) (filter.Config, error) {
	var fc filter.Config
	var err error

	if fc.Area, err = cmd.Flags().GetString("area"); err != nil {
		return fc, clierr.Newf(2, "get area flag: %v", err)
	}
	if fc.Stages, err = cmd.Flags().GetStringSlice("stage"); err != nil {
		return fc, clierr.Newf(2, "get stage flag: %v", err)
	}

	assignees, err := cmd.Flags().GetStringSlice("assignee")
	if err != nil {
		return fc, clierr.Newf(2, "get assignee flag: %v", err)
	}
	fc.Assignees = filter.Selectors(assignees...)

	initiatives, err := cmd.Flags().GetStringSlice("initiative")
	if err != nil {
		return fc, clierr.Newf(2, "get initiative flag: %v", err)
	}
	fc.Initiatives = filter.Selectors(initiatives...)

	cycleID, err := cmd.Flags().GetString("cycle")
	if err != nil {
		return fc, clierr.Newf(2, "get cycle flag: %v", err)
	}
	if cmd.Flags().Changed("cycle") {
		fc.Cycle = &filter.Selector{ID: cycleID}
	}

	return fc, nil
}

func renderRoadmap(initiatives []roadmap.Initiative) string {
	if len(initiatives) == 0 {
		return "No matching items.\n"
	}

	var b strings.Builder
	for _, initiative := range initiatives {
		b.WriteString(projection.RenderHeader(1, initiative.Name))
		for _, ri := range initiative.Items {
			title := ri.Name
			if title == "" {
				title = ri.ID
			}
			b.WriteString(projection.RenderHeader(2, title))

			var rows [][]string
			for _, item := range ri.Items {
				cycleName := ""
				if item.Cycle != nil {
					cycleName = item.Cycle.Name
				}
				rows = append(rows, []string{item.TicketID, item.Name, item.Stage, string(item.Status), cycleName})
			}
			b.WriteString(projection.RenderTable([]string{"Ticket", "Name", "Stage", "Status", "Cycle"}, rows))
			b.WriteString("\n")
		}
	}
	return b.String()
}
