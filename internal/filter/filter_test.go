// SPDX-License-Identifier: AGPL-3.0-or-later
package filter

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northstar-hq/northstar/internal/roadmap"
)

func fixtureTree() []roadmap.Initiative {
	release := func(id, stage, area, assigneeID, cycleID string) roadmap.ReleaseItem {
		item := roadmap.ReleaseItem{
			ID:      id,
			Stage:   stage,
			Area:    area,
			AreaIDs: []string{area},
		}
		if assigneeID != "" {
			item.Assignee = roadmap.AssigneeFromPerson(assigneeID, "Somebody")
		}
		if cycleID != "" {
			item.Cycle = &roadmap.CycleRef{ID: cycleID}
		}
		return item
	}

	return []roadmap.Initiative{
		{
			ID:   "init-1",
			Name: "Initiative One",
			Items: []roadmap.RoadmapItem{
				{
					ID: "epic-1",
					Items: []roadmap.ReleaseItem{
						release("1", "s1", "payments", "user-1", "sp1"),
						release("2", "s2", "payments", "user-1", "sp2"),
					},
				},
			},
		},
		{
			ID:   "init-2",
			Name: "Initiative Two",
			Items: []roadmap.RoadmapItem{
				{
					ID: "epic-2",
					Items: []roadmap.ReleaseItem{
						release("3", "s1", "platform", "user-2", "sp1"),
					},
				},
			},
		},
	}
}

func testEngine() *Engine {
	return NewEngine(slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil)))
}

func TestApplyNoFilters(t *testing.T) {
	e := testEngine()
	tree := fixtureTree()

	got := e.Apply(tree, Config{})
	assert.Equal(t, tree, got)
}

func TestFilterByAssignees(t *testing.T) {
	e := testEngine()
	tree := fixtureTree()

	got := ByAssignees(e, tree, Selectors("user-1"))
	require.Len(t, got, 1)
	assert.Equal(t, "init-1", got[0].ID)

	// Empty and "all" selections leave the tree unchanged.
	assert.Equal(t, tree, ByAssignees(e, tree, nil))
	assert.Equal(t, tree, ByAssignees(e, tree, Selectors("all")))

	// A wildcard (null) entry matches everything, not nothing.
	assert.Equal(t, tree, ByAssignees(e, tree, []Selector{{}}))

	// Object-form selectors work the same as bare ids.
	got = ByAssignees(e, tree, []Selector{{ID: "user-2", Name: "Other"}})
	require.Len(t, got, 1)
	assert.Equal(t, "init-2", got[0].ID)
}

func TestFilterByArea(t *testing.T) {
	e := testEngine()
	tree := fixtureTree()

	got := ByArea(e, tree, "PAYMENTS")
	require.Len(t, got, 1, "area match is case-insensitive")
	assert.Equal(t, "init-1", got[0].ID)

	assert.Equal(t, tree, ByArea(e, tree, ""))
	assert.Equal(t, tree, ByArea(e, tree, "all"))
	assert.Empty(t, e.Apply(tree, Config{Area: "unknown-area"}))
}

func TestFilterByStages(t *testing.T) {
	e := testEngine()
	tree := fixtureTree()

	got := ByStages(e, tree, []string{"s2"})
	require.Len(t, got, 1)
	require.Len(t, got[0].Items, 1)
	require.Len(t, got[0].Items[0].Items, 1)
	assert.Equal(t, "2", got[0].Items[0].Items[0].ID)

	assert.Equal(t, tree, ByStages(e, tree, nil))
	assert.Equal(t, tree, ByStages(e, tree, []string{"all"}))
}

func TestFilterByInitiatives(t *testing.T) {
	e := testEngine()
	tree := fixtureTree()

	got := ByInitiatives(e, tree, Selectors("init-2"))
	require.Len(t, got, 1)
	assert.Equal(t, "init-2", got[0].ID)

	assert.Equal(t, tree, ByInitiatives(e, tree, Selectors("all")))
}

func TestFilterByCycle(t *testing.T) {
	e := testEngine()
	tree := fixtureTree()

	got := ByCycle(e, tree, Selector{ID: "sp2"})
	require.Len(t, got, 1)
	assert.Equal(t, "init-1", got[0].ID)
	require.Len(t, got[0].Items[0].Items, 1)
	assert.Equal(t, "2", got[0].Items[0].Items[0].ID)
}

func TestCycleFilterFailsClosed(t *testing.T) {
	var buf bytes.Buffer
	e := NewEngine(slog.New(slog.NewTextHandler(&buf, nil)))
	tree := fixtureTree()

	// An unset cycle id must never silently merge all cycles' data.
	assert.Empty(t, ByCycle(e, tree, Selector{}))
	assert.Empty(t, ByCycle(e, tree, Selector{ID: "all"}))
	assert.Contains(t, buf.String(), "rejecting all items")
}

func TestApplyIsIdempotentAndPure(t *testing.T) {
	e := testEngine()
	tree := fixtureTree()
	before, err := json.Marshal(tree)
	require.NoError(t, err)

	fc := Config{Area: "payments", Stages: []string{"s1", "s2"}, Assignees: Selectors("user-1")}
	first := e.Apply(tree, fc)
	second := e.Apply(tree, fc)
	assert.Equal(t, first, second)

	// Applying the filter to its own output changes nothing.
	assert.Equal(t, first, e.Apply(first, fc))

	// The source tree was not mutated.
	after, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestCascadePrunesEmptyBranches(t *testing.T) {
	e := testEngine()
	tree := fixtureTree()

	got := e.Apply(tree, Config{Stages: []string{"s1"}, Assignees: Selectors("user-1")})
	for _, initiative := range got {
		require.NotEmpty(t, initiative.Items, "surviving initiatives keep at least one roadmap item")
		for _, ri := range initiative.Items {
			require.NotEmpty(t, ri.Items, "surviving roadmap items keep at least one release item")
		}
	}
}

func TestSelectorUnmarshal(t *testing.T) {
	var s Selector
	require.NoError(t, json.Unmarshal([]byte(`"user-1"`), &s))
	assert.Equal(t, Selector{ID: "user-1"}, s)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"user-2","name":"Other"}`), &s))
	assert.Equal(t, Selector{ID: "user-2", Name: "Other"}, s)

	require.NoError(t, json.Unmarshal([]byte(`null`), &s))
	assert.True(t, s.IsWildcard())
}
