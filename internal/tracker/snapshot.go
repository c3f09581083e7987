// SPDX-License-Identifier: AGPL-3.0-or-later
package tracker

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// DecodeSnapshot reads a snapshot JSON document from r.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	dec := json.NewDecoder(r)
	var snap Snapshot
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if snap.IssuesBySprint == nil {
		snap.IssuesBySprint = map[string][]Issue{}
	}
	return &snap, nil
}

// LoadSnapshot reads a snapshot JSON file from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path) //nolint:gosec // path supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("opening snapshot %s: %w", path, err)
	}
	defer f.Close()

	snap, err := DecodeSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	return snap, nil
}

// SprintByID returns the sprint with the given id, or nil.
func (s *Snapshot) SprintByID(id string) *Sprint {
	for i := range s.Sprints {
		if s.Sprints[i].ID == id {
			return &s.Sprints[i]
		}
	}
	return nil
}
