// SPDX-License-Identifier: AGPL-3.0-or-later
package tracker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotFixture = `{
  "sprints": [
    {"id": "sp1", "name": "Sprint 1", "state": "active", "start": "2024-01-20", "end": "2024-02-03"},
    {"id": "sp2", "name": "Sprint 2", "state": "future", "start": "2024-03-01"}
  ],
  "issuesBySprint": {
    "sp1": [
      {
        "id": "1",
        "key": "R-1",
        "summary": "Checkout (s1)",
        "status": {"id": "10000", "name": "To Do"},
        "assignee": "user-1",
        "effort": 2.5,
        "labels": ["area:payments"],
        "parent": {"id": "epic-1", "key": "E-1"}
      }
    ]
  },
  "parents": {
    "epic-1": {"id": "epic-1", "summary": "Checkout revamp"}
  }
}`

func TestDecodeSnapshot(t *testing.T) {
	snap, err := DecodeSnapshot(strings.NewReader(snapshotFixture))
	require.NoError(t, err)

	require.Len(t, snap.Sprints, 2)
	assert.Equal(t, "Sprint 1", snap.Sprints[0].Name)

	issues := snap.IssuesBySprint["sp1"]
	require.Len(t, issues, 1)
	assert.Equal(t, "R-1", issues[0].Key)
	require.NotNil(t, issues[0].Effort)
	assert.Equal(t, 2.5, *issues[0].Effort)
	require.NotNil(t, issues[0].Parent)
	assert.Equal(t, "epic-1", issues[0].Parent.ID)

	assert.Equal(t, "Checkout revamp", snap.Parents["epic-1"].Summary)
}

func TestDecodeSnapshotEmpty(t *testing.T) {
	snap, err := DecodeSnapshot(strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, snap.IssuesBySprint, "missing map decodes to an empty one")
}

func TestDecodeSnapshotMalformed(t *testing.T) {
	_, err := DecodeSnapshot(strings.NewReader(`{"sprints": [`))
	assert.Error(t, err)
}

func TestLoadSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(snapshotFixture), 0o600))

	snap, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.NotNil(t, snap.SprintByID("sp2"))
	assert.Nil(t, snap.SprintByID("nope"))
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
