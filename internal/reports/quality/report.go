// SPDX-License-Identifier: AGPL-3.0-or-later

// Package quality flattens every validation produced by a parse run into the
// data-quality report surfaced to dashboard users.
package quality

import (
	"sort"

	"github.com/northstar-hq/northstar/internal/parse"
	"github.com/northstar-hq/northstar/internal/roadmap"
)

// Report is the flat data-quality view over one parse result: every
// validation in the tree, the validations of items that could not be placed
// in the tree, and the structural processing errors.
type Report struct {
	Findings       []roadmap.Validation
	CountsByCode   map[roadmap.ValidationCode]int
	CountsByStatus map[roadmap.ValidationStatus]int
	Errors         []parse.ItemError
}

// Build collects and orders the validations of a parse result. Findings are
// sorted by item id then code so the report is deterministic for identical
// input.
func Build(result *parse.Result) Report {
	report := Report{
		CountsByCode:   map[roadmap.ValidationCode]int{},
		CountsByStatus: map[roadmap.ValidationStatus]int{},
		Errors:         result.Errors,
	}

	collect := func(validations []roadmap.Validation) {
		report.Findings = append(report.Findings, validations...)
	}

	for _, initiative := range result.Initiatives {
		for _, ri := range initiative.Items {
			collect(ri.Validations)
			for _, item := range ri.Items {
				collect(item.Validations)
			}
		}
	}
	for _, orphan := range result.Orphans {
		collect(orphan.Validations)
	}

	sort.SliceStable(report.Findings, func(i, j int) bool {
		a, b := report.Findings[i], report.Findings[j]
		if a.ItemID != b.ItemID {
			return a.ItemID < b.ItemID
		}
		return a.Code < b.Code
	})

	for _, finding := range report.Findings {
		report.CountsByCode[finding.Code]++
		report.CountsByStatus[finding.Status]++
	}
	return report
}
