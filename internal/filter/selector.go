// SPDX-License-Identifier: AGPL-3.0-or-later
package filter

import (
	"encoding/json"

	"github.com/northstar-hq/northstar/internal/roadmap"
)

// UnmarshalJSON accepts the two wire shapes a selector arrives in: a bare
// id string or an {id, name} object. JSON null decodes to the wildcard
// selector.
func (s *Selector) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Selector{}
		return nil
	}

	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*s = Selector{ID: id}
		return nil
	}

	type selectorObject Selector
	var obj selectorObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*s = Selector(obj)
	return nil
}

// Selectors wraps plain id strings into selectors.
func Selectors(ids ...string) []Selector {
	out := make([]Selector, 0, len(ids))
	for _, id := range ids {
		out = append(out, Selector{ID: id})
	}
	return out
}

// ByArea filters the tree on the area axis only.
func ByArea(e *Engine, initiatives []roadmap.Initiative, area string) []roadmap.Initiative {
	return e.Apply(initiatives, Config{Area: area})
}

// ByStages filters the tree on the stage axis only.
func ByStages(e *Engine, initiatives []roadmap.Initiative, stages []string) []roadmap.Initiative {
	return e.Apply(initiatives, Config{Stages: stages})
}

// ByAssignees filters the tree on the assignee axis only.
func ByAssignees(e *Engine, initiatives []roadmap.Initiative, assignees []Selector) []roadmap.Initiative {
	return e.Apply(initiatives, Config{Assignees: assignees})
}

// ByInitiatives filters the tree on the initiative axis only.
func ByInitiatives(e *Engine, initiatives []roadmap.Initiative, selected []Selector) []roadmap.Initiative {
	return e.Apply(initiatives, Config{Initiatives: selected})
}

// ByCycle filters the tree to one cycle.
func ByCycle(e *Engine, initiatives []roadmap.Initiative, cycle Selector) []roadmap.Initiative {
	return e.Apply(initiatives, Config{Cycle: &cycle})
}
