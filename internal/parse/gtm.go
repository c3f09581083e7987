// SPDX-License-Identifier: AGPL-3.0-or-later
package parse

import (
	"time"

	"github.com/northstar-hq/northstar/internal/config"
	"github.com/northstar-hq/northstar/internal/resolve"
	"github.com/northstar-hq/northstar/internal/roadmap"
)

// ValidateGTMPlan computes the aggregate release-plan flags for one roadmap
// item across all of its release items. An empty or nil input returns the
// zero GTMPlan with both pointers nil: "not computed" stays distinguishable
// from a computed false, and downstream code relies on that distinction.
func ValidateGTMPlan(items []roadmap.ReleaseItem, cycles map[string]roadmap.Cycle, cfg *config.Config, now time.Time) roadmap.GTMPlan {
	if len(items) == 0 {
		return roadmap.GTMPlan{}
	}

	scheduled := false
	backlog := false
	for _, item := range items {
		future := resolve.IsScheduledForFuture(item, cycles, now)
		if future && resolve.IsReleasableStage(item.Stage, cfg) {
			scheduled = true
		}
		if (future || resolve.IsInBacklog(item)) && resolve.IsFinalReleaseStage(item.Stage, cfg) {
			backlog = true
		}
	}

	return roadmap.GTMPlan{
		HasScheduledRelease:       &scheduled,
		HasGlobalReleaseInBacklog: &backlog,
	}
}
