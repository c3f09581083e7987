// SPDX-License-Identifier: AGPL-3.0-or-later

// Package filter applies user-selected filters to the initiative tree: a
// cascading reducer that filters release items, prunes roadmap items left
// without children, then prunes initiatives. The source tree is never
// mutated; every application builds fresh slices, so re-applying the same
// filter is idempotent.
package filter

import (
	"log/slog"
	"strings"

	"github.com/northstar-hq/northstar/internal/roadmap"
)

// All is the sentinel selector value meaning "no filtering on this axis".
const All = "all"

// Selector is one user-selected filter value. The UI sends either a bare id
// string or an {id, name} object; both decode into this struct. A selector
// with neither id nor name is a wildcard and matches everything.
type Selector struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// IsWildcard reports whether the selector matches everything: either empty
// or the "all" sentinel (matched by id or name).
func (s Selector) IsWildcard() bool {
	if s.ID == "" && s.Name == "" {
		return true
	}
	return strings.EqualFold(s.ID, All) || strings.EqualFold(s.Name, All)
}

// Config is the set of filter values for one application. Absent axes mean
// "no filter" — except Cycle, where an explicitly present but unset selector
// is a configuration error and fails closed (see Engine.cyclePredicate).
type Config struct {
	Area        string
	Stages      []string
	Assignees   []Selector
	Initiatives []Selector
	Cycle       *Selector
}

// Engine applies filter configurations to initiative trees. The logger is
// the structured diagnostic channel for fail-closed configuration errors;
// filtering itself never returns an error and never panics mid-render.
type Engine struct {
	log *slog.Logger
}

// NewEngine returns a filter engine. A nil logger falls back to
// slog.Default().
func NewEngine(log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{log: log}
}

// Apply runs the cascade: release-item predicate over every roadmap item's
// children, then roadmap-item pruning, then initiative pruning. Every
// surviving roadmap item keeps at least one release item and every surviving
// initiative keeps at least one roadmap item.
func (e *Engine) Apply(initiatives []roadmap.Initiative, fc Config) []roadmap.Initiative {
	itemPred := e.releaseItemPredicate(fc)
	initiativePred := initiativePredicate(fc.Initiatives)

	var out []roadmap.Initiative
	for _, initiative := range initiatives {
		if !initiativePred(initiative) {
			continue
		}

		var keptRoadmapItems []roadmap.RoadmapItem
		for _, ri := range initiative.Items {
			var keptChildren []roadmap.ReleaseItem
			for _, child := range ri.Items {
				if itemPred(child) {
					keptChildren = append(keptChildren, child)
				}
			}
			if len(keptChildren) == 0 {
				continue
			}
			filtered := ri
			filtered.Items = keptChildren
			keptRoadmapItems = append(keptRoadmapItems, filtered)
		}
		if len(keptRoadmapItems) == 0 {
			continue
		}

		filtered := initiative
		filtered.Items = keptRoadmapItems
		out = append(out, filtered)
	}
	return out
}

// releaseItemPredicate is the AND of the per-axis predicates. The cycle
// predicate participates only when a cycle selector is present.
func (e *Engine) releaseItemPredicate(fc Config) func(roadmap.ReleaseItem) bool {
	area := areaPredicate(fc.Area)
	stage := stagePredicate(fc.Stages)
	assignee := assigneePredicate(fc.Assignees)

	cycle := func(roadmap.ReleaseItem) bool { return true }
	if fc.Cycle != nil {
		cycle = e.cyclePredicate(*fc.Cycle)
	}

	return func(item roadmap.ReleaseItem) bool {
		return area(item) && stage(item) && assignee(item) && cycle(item)
	}
}

func areaPredicate(selected string) func(roadmap.ReleaseItem) bool {
	if selected == "" || strings.EqualFold(selected, All) {
		return func(roadmap.ReleaseItem) bool { return true }
	}
	return func(item roadmap.ReleaseItem) bool {
		if strings.EqualFold(item.Area, selected) {
			return true
		}
		for _, id := range item.AreaIDs {
			if strings.EqualFold(id, selected) {
				return true
			}
		}
		return false
	}
}

func stagePredicate(selected []string) func(roadmap.ReleaseItem) bool {
	if len(selected) == 0 {
		return func(roadmap.ReleaseItem) bool { return true }
	}
	for _, s := range selected {
		if strings.EqualFold(s, All) {
			return func(roadmap.ReleaseItem) bool { return true }
		}
	}
	return func(item roadmap.ReleaseItem) bool {
		for _, s := range selected {
			if item.Stage == s {
				return true
			}
		}
		return false
	}
}

func assigneePredicate(selected []Selector) func(roadmap.ReleaseItem) bool {
	if len(selected) == 0 {
		return func(roadmap.ReleaseItem) bool { return true }
	}
	ids := map[string]bool{}
	for _, sel := range selected {
		// A wildcard entry matches everything, it does not mean
		// "match nothing".
		if sel.IsWildcard() {
			return func(roadmap.ReleaseItem) bool { return true }
		}
		ids[sel.ID] = true
	}
	return func(item roadmap.ReleaseItem) bool {
		return ids[item.Assignee.AccountID()]
	}
}

func initiativePredicate(selected []Selector) func(roadmap.Initiative) bool {
	if len(selected) == 0 {
		return func(roadmap.Initiative) bool { return true }
	}
	ids := map[string]bool{}
	for _, sel := range selected {
		if sel.IsWildcard() {
			return func(roadmap.Initiative) bool { return true }
		}
		ids[sel.ID] = true
	}
	return func(initiative roadmap.Initiative) bool {
		return ids[initiative.ID]
	}
}

// cyclePredicate filters release items to one cycle. An unset or "all"
// cycle id is a configuration error: the predicate fails closed and rejects
// every item, so an unset cycle never silently merges all cycles' data. The
// error is logged, never thrown, because filtering must not crash the
// caller mid-render.
func (e *Engine) cyclePredicate(sel Selector) func(roadmap.ReleaseItem) bool {
	if sel.ID == "" || strings.EqualFold(sel.ID, All) {
		e.log.Error("cycle filter requires a concrete cycle id; rejecting all items",
			slog.String("cycleId", sel.ID))
		return func(roadmap.ReleaseItem) bool { return false }
	}
	return func(item roadmap.ReleaseItem) bool {
		return item.Cycle != nil && item.Cycle.ID == sel.ID
	}
}
