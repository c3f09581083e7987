// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cycle picks the default cycle for the overview and aggregates
// per-cycle progress metrics. Pure computation, no I/O.
package cycle

import (
	"sort"
	"time"

	"github.com/northstar-hq/northstar/internal/roadmap"
)

// SelectDefault picks the cycle the overview opens on: the oldest active
// cycle; failing that the oldest upcoming cycle (start strictly after now,
// not closed or completed); failing that the oldest closed or completed
// cycle; failing that the overall oldest. Returns nil only for an empty
// input list.
func SelectDefault(cycles []roadmap.Cycle, now time.Time) *roadmap.Cycle {
	if len(cycles) == 0 {
		return nil
	}

	sorted := make([]roadmap.Cycle, len(cycles))
	copy(sorted, cycles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortDate(sorted[i]) < sortDate(sorted[j])
	})

	for _, c := range sorted {
		if c.State == roadmap.CycleActive {
			return &c
		}
	}
	for _, c := range sorted {
		if c.State == roadmap.CycleClosed || c.State == roadmap.CycleCompleted {
			continue
		}
		start, err := time.Parse("2006-01-02", c.Start)
		if err == nil && start.After(now) {
			return &c
		}
	}
	for _, c := range sorted {
		if c.State == roadmap.CycleClosed || c.State == roadmap.CycleCompleted {
			return &c
		}
	}
	return &sorted[0]
}

// sortDate orders cycles by start date, falling back to delivery date for
// cycles without one. ISO date strings sort lexicographically; undated
// cycles sort last.
func sortDate(c roadmap.Cycle) string {
	if c.Start != "" {
		return c.Start
	}
	if c.Delivery != "" {
		return c.Delivery
	}
	return "9999-12-31"
}
