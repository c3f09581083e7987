// SPDX-License-Identifier: AGPL-3.0-or-later
package cycle

import (
	"time"

	"github.com/northstar-hq/northstar/internal/roadmap"
)

// Progress merges one cycle with the aggregate metrics of the release items
// under the given initiatives. It backs the cycle-overview view.
type Progress struct {
	Cycle roadmap.Cycle `json:"cycle"`

	TotalItems           int                    `json:"totalItems"`
	CountsByStatus       map[roadmap.Status]int `json:"countsByStatus"`
	CompletionPercentage float64                `json:"completionPercentage"`
	TotalEffort          float64                `json:"totalEffort"`
	CompletedEffort      float64                `json:"completedEffort"`

	TotalDays     int `json:"totalDays"`
	ElapsedDays   int `json:"elapsedDays"`
	RemainingDays int `json:"remainingDays"`
}

// CalculateProgress flattens every release item transitively under the given
// initiatives and aggregates counts by status, effort totals and the
// elapsed/remaining time buckets of the cycle.
func CalculateProgress(c roadmap.Cycle, initiatives []roadmap.Initiative, now time.Time) Progress {
	p := Progress{
		Cycle:          c,
		CountsByStatus: map[roadmap.Status]int{},
	}

	for _, initiative := range initiatives {
		for _, ri := range initiative.Items {
			for _, item := range ri.Items {
				p.TotalItems++
				p.CountsByStatus[item.Status]++
				if item.Effort != nil {
					p.TotalEffort += *item.Effort
					if item.Status == roadmap.StatusDone {
						p.CompletedEffort += *item.Effort
					}
				}
			}
		}
	}

	if p.TotalItems > 0 {
		p.CompletionPercentage = float64(p.CountsByStatus[roadmap.StatusDone]) / float64(p.TotalItems) * 100
	}

	p.TotalDays, p.ElapsedDays, p.RemainingDays = timeBuckets(c, now)
	return p
}

// timeBuckets computes whole-day elapsed/remaining buckets, clamped to the
// cycle boundaries. Cycles without parseable dates yield zero buckets.
func timeBuckets(c roadmap.Cycle, now time.Time) (total, elapsed, remaining int) {
	start, err := time.Parse("2006-01-02", c.Start)
	if err != nil {
		return 0, 0, 0
	}
	end, err := time.Parse("2006-01-02", c.End)
	if err != nil {
		return 0, 0, 0
	}
	if end.Before(start) {
		return 0, 0, 0
	}

	total = int(end.Sub(start).Hours() / 24)
	elapsed = int(now.Sub(start).Hours() / 24)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > total {
		elapsed = total
	}
	remaining = total - elapsed
	return total, elapsed, remaining
}
