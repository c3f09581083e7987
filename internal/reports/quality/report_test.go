// SPDX-License-Identifier: AGPL-3.0-or-later
package quality

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northstar-hq/northstar/internal/parse"
	"github.com/northstar-hq/northstar/internal/roadmap"
	"github.com/northstar-hq/northstar/internal/testutil/golden"
)

func fixtureResult() *parse.Result {
	v := func(itemID string, code roadmap.ValidationCode, status roadmap.ValidationStatus) roadmap.Validation {
		return roadmap.Validation{ItemID: itemID, Code: code, Status: status}
	}

	return &parse.Result{
		Initiatives: []roadmap.Initiative{
			{
				ID: "init-1",
				Items: []roadmap.RoadmapItem{
					{
						ID:          "epic-1",
						Validations: []roadmap.Validation{v("epic-1", roadmap.MissingThemeLabel, roadmap.ValidationWarning)},
						Items: []roadmap.ReleaseItem{
							{ID: "2", Validations: []roadmap.Validation{v("2", roadmap.MissingEstimate, roadmap.ValidationWarning)}},
							{ID: "1", Validations: []roadmap.Validation{v("1", roadmap.MissingAssignee, roadmap.ValidationWarning)}},
						},
					},
				},
			},
		},
		Orphans: []roadmap.ReleaseItem{
			{ID: "9", Validations: []roadmap.Validation{v("9", roadmap.NoProjectID, roadmap.ValidationError)}},
		},
		Errors: []parse.ItemError{
			{SprintID: "sp1", IssueID: "3", Err: errors.New("issue missing id or key")},
		},
	}
}

func TestBuild(t *testing.T) {
	report := Build(fixtureResult())

	require.Len(t, report.Findings, 4)

	// Sorted by item id, then code.
	assert.Equal(t, "1", report.Findings[0].ItemID)
	assert.Equal(t, "2", report.Findings[1].ItemID)
	assert.Equal(t, "9", report.Findings[2].ItemID)
	assert.Equal(t, "epic-1", report.Findings[3].ItemID)

	assert.Equal(t, 1, report.CountsByCode[roadmap.NoProjectID])
	assert.Equal(t, 3, report.CountsByStatus[roadmap.ValidationWarning])
	assert.Equal(t, 1, report.CountsByStatus[roadmap.ValidationError])
	require.Len(t, report.Errors, 1)
}

func TestBuildEmpty(t *testing.T) {
	report := Build(&parse.Result{})
	assert.Empty(t, report.Findings)
	assert.Empty(t, report.Errors)
	assert.Contains(t, report.Markdown(), "No findings.")
}

func TestMarkdownGolden(t *testing.T) {
	report := Build(fixtureResult())
	golden.Assert(t, golden.TestdataDir(t), "quality_report", report.Markdown())
}
