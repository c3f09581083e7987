// SPDX-License-Identifier: AGPL-3.0-or-later
package quality

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/northstar-hq/northstar/internal/projection"
)

// Markdown renders the report as a deterministic markdown document.
func (r Report) Markdown() string {
	var b strings.Builder

	b.WriteString(projection.RenderHeader(1, "Data Quality Report"))

	b.WriteString(projection.RenderHeader(2, "Summary"))
	if len(r.Findings) == 0 {
		b.WriteString("No findings.\n")
	} else {
		var rows [][]string
		for _, code := range projection.SortedKeys(r.CountsByCode) {
			rows = append(rows, []string{string(code), strconv.Itoa(r.CountsByCode[code])})
		}
		b.WriteString(projection.RenderTable([]string{"Code", "Count"}, rows))
	}

	if len(r.Findings) > 0 {
		b.WriteString("\n")
		b.WriteString(projection.RenderHeader(2, "Findings"))
		var rows [][]string
		for _, f := range r.Findings {
			rows = append(rows, []string{f.ItemID, string(f.Code), f.Param, string(f.Status)})
		}
		b.WriteString(projection.RenderTable([]string{"Item", "Code", "Param", "Severity"}, rows))
	}

	if len(r.Errors) > 0 {
		b.WriteString("\n")
		b.WriteString(projection.RenderHeader(2, "Processing Errors"))
		var items []string
		for _, e := range r.Errors {
			ref := e.IssueKey
			if ref == "" {
				ref = e.IssueID
			}
			if ref == "" {
				ref = "(unidentified issue)"
			}
			if e.SprintID != "" {
				items = append(items, fmt.Sprintf("%s (sprint %s): %v", ref, e.SprintID, e.Err))
			} else {
				items = append(items, fmt.Sprintf("%s: %v", ref, e.Err))
			}
		}
		b.WriteString(projection.RenderList(items))
	}

	return b.String()
}
