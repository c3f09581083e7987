// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/northstar-hq/northstar/cmd/northstar/internal/clierr"
	"github.com/northstar-hq/northstar/internal/config"
	"github.com/northstar-hq/northstar/internal/projection"
	"github.com/northstar-hq/northstar/internal/reports/quality"
	"github.com/northstar-hq/northstar/internal/roadmap"
)

// NewQualityCommand builds the data-quality report: every validation of the
// parse run, summarized on the terminal and optionally written as a
// markdown artifact.
func NewQualityCommand(env config.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quality",
		Short: "Report data-quality findings from the parsed snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := runPipeline(cmd)
			if err != nil {
				return err
			}

			report := quality.Build(result)

			w := cmd.OutOrStdout()
			warn := color.New(color.FgYellow).SprintFunc()
			fail := color.New(color.FgRed).SprintFunc()
			ok := color.New(color.FgGreen).SprintFunc()

			if len(report.Findings) == 0 && len(report.Errors) == 0 {
				fmt.Fprintln(w, ok("no data-quality findings"))
			}
			for _, code := range projection.SortedKeys(report.CountsByCode) {
				fmt.Fprintf(w, "  %s: %d\n", code, report.CountsByCode[code])
			}
			if n := report.CountsByStatus[roadmap.ValidationWarning]; n > 0 {
				fmt.Fprintf(w, "%s %d warnings\n", warn("WARN"), n)
			}
			if n := report.CountsByStatus[roadmap.ValidationError]; n > 0 {
				fmt.Fprintf(w, "%s %d findings with severity error\n", fail("ERROR"), n)
			}
			for _, e := range report.Errors {
				fmt.Fprintf(w, "%s skipped issue %s: %v\n", fail("ERROR"), e.IssueID, e.Err)
			}

			outputPath, err := cmd.Flags().GetString("output")
			if err != nil {
				return clierr.Newf(2, "get output flag: %v", err)
			}
			if outputPath != "" {
				if err := projection.AtomicWrite(outputPath, []byte(report.Markdown())); err != nil {
					return clierr.Wrap(1, "writing quality report", err)
				}
				fmt.Fprintf(w, "report written to %s\n", outputPath)
			}
			return nil
		},
	}

	cmd.Flags().String("output", filepath.Join(env.OutputDir, "data-quality.md"), "path for the markdown report (empty disables the artifact)")

	return cmd
}
