// SPDX-License-Identifier: AGPL-3.0-or-later

// Package resolve classifies a release item's lifecycle position: the stage
// encoded in its summary, whether its status counts as future work, and
// whether its cycle puts it in the future or the backlog. All functions are
// pure; callers pass the clock in.
package resolve

import (
	"regexp"
	"time"

	"github.com/northstar-hq/northstar/internal/config"
	"github.com/northstar-hq/northstar/internal/roadmap"
)

// StageUnknown is returned when a summary carries no stage marker.
const StageUnknown = "unknown"

// stagePattern matches a trailing parenthesized token, e.g. "Feature X (s2)".
var stagePattern = regexp.MustCompile(`\(([^()]+)\)\s*$`)

// Stage extracts the stage token from a free-text summary. A summary without
// a trailing parenthesized token yields StageUnknown, never an error.
func Stage(summary string) string {
	m := stagePattern.FindStringSubmatch(summary)
	if m == nil {
		return StageUnknown
	}
	return m[1]
}

// IsReleasableStage reports whether the stage belongs to the configured
// release progression.
func IsReleasableStage(stage string, cfg *config.Config) bool {
	for _, s := range cfg.Stages {
		if s == stage {
			return true
		}
	}
	return false
}

// IsFinalReleaseStage reports whether the stage is the last stage of the
// configured progression.
func IsFinalReleaseStage(stage string, cfg *config.Config) bool {
	return stage == cfg.FinalStage()
}

// PossibleFutureStatus reports whether the item's status maps to the
// configured "not started yet" bucket.
func PossibleFutureStatus(item roadmap.ReleaseItem, cfg *config.Config) bool {
	return cfg.IsFutureStatus(item.Status)
}

// IsScheduledForFuture reports whether the item's cycle starts after now and
// the cycle is not closed or completed. Items without a cycle, or whose
// cycle is unknown or undated, are not scheduled.
func IsScheduledForFuture(item roadmap.ReleaseItem, cycles map[string]roadmap.Cycle, now time.Time) bool {
	if item.Cycle == nil {
		return false
	}
	cycle, ok := cycles[item.Cycle.ID]
	if !ok {
		return false
	}
	if cycle.State == roadmap.CycleClosed || cycle.State == roadmap.CycleCompleted {
		return false
	}
	start, err := time.Parse("2006-01-02", cycle.Start)
	if err != nil {
		return false
	}
	return start.After(now)
}

// IsInBacklog reports whether the item has no cycle assignment at all.
func IsInBacklog(item roadmap.ReleaseItem) bool {
	return item.Cycle == nil
}
