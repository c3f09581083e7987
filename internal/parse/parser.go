// SPDX-License-Identifier: AGPL-3.0-or-later
package parse

import (
	"time"

	"github.com/northstar-hq/northstar/internal/config"
	"github.com/northstar-hq/northstar/internal/labels"
	"github.com/northstar-hq/northstar/internal/roadmap"
	"github.com/northstar-hq/northstar/internal/tracker"
)

// ItemError records one issue that could not be parsed. The batch always
// continues past it; a bad issue costs one item, never the whole snapshot.
type ItemError struct {
	SprintID string
	IssueID  string
	IssueKey string
	Err      error
}

// Result is the outcome of parsing one snapshot: the initiative tree, the
// cycles it was built from, release items that could not be placed in the
// tree (no parent linkage) and the per-item processing errors.
type Result struct {
	Initiatives []roadmap.Initiative
	Cycles      []roadmap.Cycle
	// Orphans are release items whose raw issue carried no parent
	// reference. They are excluded from the tree but kept so their
	// noProjectId validations can still be reported.
	Orphans []roadmap.ReleaseItem
	Errors  []ItemError
}

// CycleIndex returns the result's cycles keyed by id.
func (r *Result) CycleIndex() map[string]roadmap.Cycle {
	index := make(map[string]roadmap.Cycle, len(r.Cycles))
	for _, c := range r.Cycles {
		index[c.ID] = c
	}
	return index
}

// Parser drives the full transformation from a tracker snapshot to the
// initiative tree. It holds the configuration explicitly; no package-level
// state is involved, so parsers with different configurations can coexist.
type Parser struct {
	cfg *config.Config

	// Now supplies the clock for sprint scheduling checks. Tests override
	// it for determinism.
	Now func() time.Time
}

// NewParser returns a parser bound to the given configuration.
func NewParser(cfg *config.Config) *Parser {
	return &Parser{cfg: cfg, Now: time.Now}
}

// Parse transforms a snapshot into the validated initiative tree. Issues
// that fail structurally are skipped and recorded in Result.Errors; all
// other data-quality problems surface as validations on the parsed items.
func (p *Parser) Parse(snap *tracker.Snapshot) *Result {
	result := &Result{}
	now := p.Now()

	for _, sprint := range snap.Sprints {
		result.Cycles = append(result.Cycles, CycleFromSprint(sprint))
	}
	cycleIndex := result.CycleIndex()

	// Release items, sprint by sprint, in snapshot order.
	var groupOrder []string
	grouped := map[string][]roadmap.ReleaseItem{}
	for _, sprint := range snap.Sprints {
		cycle := cycleIndex[sprint.ID]
		for _, issue := range snap.IssuesBySprint[sprint.ID] {
			item, err := ReleaseItem(issue, &cycle, p.cfg)
			if err != nil {
				result.Errors = append(result.Errors, ItemError{
					SprintID: sprint.ID,
					IssueID:  issue.ID,
					IssueKey: issue.Key,
					Err:      err,
				})
				continue
			}
			if item.RoadmapItemID == "" {
				result.Orphans = append(result.Orphans, item)
				continue
			}
			if _, seen := grouped[item.RoadmapItemID]; !seen {
				groupOrder = append(groupOrder, item.RoadmapItemID)
			}
			grouped[item.RoadmapItemID] = append(grouped[item.RoadmapItemID], item)
		}
	}

	// Issues fetched outside any sprint boundary (backlog queries).
	for _, issue := range snap.IssuesBySprint[""] {
		item, err := ReleaseItem(issue, nil, p.cfg)
		if err != nil {
			result.Errors = append(result.Errors, ItemError{
				IssueID:  issue.ID,
				IssueKey: issue.Key,
				Err:      err,
			})
			continue
		}
		if item.RoadmapItemID == "" {
			result.Orphans = append(result.Orphans, item)
			continue
		}
		if _, seen := grouped[item.RoadmapItemID]; !seen {
			groupOrder = append(groupOrder, item.RoadmapItemID)
		}
		grouped[item.RoadmapItemID] = append(grouped[item.RoadmapItemID], item)
	}

	// Roadmap items, in first-seen order, with their release-plan flags.
	var roadmapItems []roadmap.RoadmapItem
	for _, id := range groupOrder {
		var parent *tracker.ParentIssue
		if snap.Parents != nil {
			if pi, ok := snap.Parents[id]; ok {
				parent = &pi
			}
		}
		item := RoadmapItem(id, grouped[id], parent, p.cfg)
		item.GTM = ValidateGTMPlan(item.Items, cycleIndex, p.cfg, now)
		roadmapItems = append(roadmapItems, item)
	}

	result.Initiatives = p.groupInitiatives(roadmapItems, snap)
	return result
}

// groupInitiatives buckets roadmap items by initiative id, routing items
// whose raw theme label matches the configured virtual theme into the
// virtual pseudo-initiative, which is always appended last.
func (p *Parser) groupInitiatives(items []roadmap.RoadmapItem, snap *tracker.Snapshot) []roadmap.Initiative {
	var order []string
	buckets := map[string]*roadmap.Initiative{}
	var virtual *roadmap.Initiative

	for _, item := range items {
		if p.cfg.VirtualTheme != "" && p.rawTheme(item.ID, snap) == p.cfg.VirtualTheme {
			if virtual == nil {
				virtual = &roadmap.Initiative{
					ID:   roadmap.VirtualInitiativeID,
					Name: labels.Translate(labels.TypeTheme, p.cfg.VirtualTheme, p.cfg.Translations),
				}
			}
			virtual.Items = append(virtual.Items, item)
			continue
		}

		bucket, ok := buckets[item.InitiativeID]
		if !ok {
			name := item.InitiativeName
			if name == "" {
				name = item.InitiativeID
			}
			bucket = &roadmap.Initiative{ID: item.InitiativeID, Name: name}
			buckets[item.InitiativeID] = bucket
			order = append(order, item.InitiativeID)
		}
		bucket.Items = append(bucket.Items, item)
	}

	var initiatives []roadmap.Initiative
	for _, id := range order {
		initiatives = append(initiatives, *buckets[id])
	}
	if virtual != nil {
		initiatives = append(initiatives, *virtual)
	}
	return initiatives
}

// rawTheme returns the untranslated theme label of a roadmap item's parent.
func (p *Parser) rawTheme(roadmapItemID string, snap *tracker.Snapshot) string {
	if snap.Parents == nil {
		return ""
	}
	parent, ok := snap.Parents[roadmapItemID]
	if !ok {
		return ""
	}
	themes := labels.WithPrefix(parent.Labels, "theme")
	if len(themes) == 0 {
		return ""
	}
	return themes[0]
}

// CycleFromSprint maps a tracker sprint onto the domain cycle, 1:1.
func CycleFromSprint(sprint tracker.Sprint) roadmap.Cycle {
	return roadmap.Cycle{
		ID:       sprint.ID,
		Name:     sprint.Name,
		Start:    sprint.Start,
		End:      sprint.End,
		Delivery: sprint.Delivery,
		State:    roadmap.CycleState(sprint.State),
	}
}
