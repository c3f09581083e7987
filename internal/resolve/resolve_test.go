// SPDX-License-Identifier: AGPL-3.0-or-later
package resolve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/northstar-hq/northstar/internal/config"
	"github.com/northstar-hq/northstar/internal/roadmap"
)

func testConfig() *config.Config {
	return &config.Config{
		Stages:         []string{"s0", "s1", "s2", "s3+"},
		ExternalStages: []string{"ext"},
	}
}

func TestStage(t *testing.T) {
	tests := []struct {
		summary  string
		expected string
	}{
		{"Test Feature (s2)", "s2"},
		{"No stage marker here", StageUnknown},
		{"Trailing spaces (s1)  ", "s1"},
		{"Nested (detail) later (s3+)", "s3+"},
		{"(s1) not at the end", StageUnknown},
		{"", StageUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.summary, func(t *testing.T) {
			assert.Equal(t, tt.expected, Stage(tt.summary))
		})
	}
}

func TestStageMembership(t *testing.T) {
	cfg := testConfig()

	assert.True(t, IsReleasableStage("s1", cfg))
	assert.False(t, IsReleasableStage(StageUnknown, cfg))

	assert.True(t, IsFinalReleaseStage("s3+", cfg))
	assert.False(t, IsFinalReleaseStage("s2", cfg))
}

func TestPossibleFutureStatus(t *testing.T) {
	cfg := testConfig()

	// Default future bucket is todo.
	assert.True(t, PossibleFutureStatus(roadmap.ReleaseItem{Status: roadmap.StatusTodo}, cfg))
	assert.False(t, PossibleFutureStatus(roadmap.ReleaseItem{Status: roadmap.StatusDone}, cfg))

	cfg.FutureStatuses = []roadmap.Status{roadmap.StatusTodo, roadmap.StatusPostponed}
	assert.True(t, PossibleFutureStatus(roadmap.ReleaseItem{Status: roadmap.StatusPostponed}, cfg))
}

func TestIsScheduledForFuture(t *testing.T) {
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	cycles := map[string]roadmap.Cycle{
		"next":    {ID: "next", State: roadmap.CycleFuture, Start: "2024-03-01"},
		"closed":  {ID: "closed", State: roadmap.CycleClosed, Start: "2024-03-01"},
		"past":    {ID: "past", State: roadmap.CycleActive, Start: "2024-01-01"},
		"undated": {ID: "undated", State: roadmap.CycleFuture},
	}

	item := func(cycleID string) roadmap.ReleaseItem {
		return roadmap.ReleaseItem{Cycle: &roadmap.CycleRef{ID: cycleID}}
	}

	assert.True(t, IsScheduledForFuture(item("next"), cycles, now))
	assert.False(t, IsScheduledForFuture(item("closed"), cycles, now), "closed cycles never count")
	assert.False(t, IsScheduledForFuture(item("past"), cycles, now))
	assert.False(t, IsScheduledForFuture(item("undated"), cycles, now))
	assert.False(t, IsScheduledForFuture(item("missing"), cycles, now))
	assert.False(t, IsScheduledForFuture(roadmap.ReleaseItem{}, cycles, now))
}

func TestIsInBacklog(t *testing.T) {
	assert.True(t, IsInBacklog(roadmap.ReleaseItem{}))
	assert.False(t, IsInBacklog(roadmap.ReleaseItem{Cycle: &roadmap.CycleRef{ID: "c1"}}))
}
