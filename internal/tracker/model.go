// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tracker defines the raw shapes delivered by the issue-tracker
// fetch collaborator. The pipeline consumes a fully materialized Snapshot;
// pagination, authentication and the wire protocol live outside this module.
package tracker

import "encoding/json"

// IssueStatus is the tracker-side status of an issue.
type IssueStatus struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// ParentRef is the linkage from an issue to its parent issue.
type ParentRef struct {
	ID      string       `json:"id"`
	Key     string       `json:"key,omitempty"`
	Summary string       `json:"summary,omitempty"`
	Status  *IssueStatus `json:"status,omitempty"`
}

// SprintRef is the linkage from an issue to the sprint it is scheduled in.
type SprintRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Issue is one raw issue as returned by the tracker search API. Immutable
// once fetched; the pipeline never writes back.
type Issue struct {
	ID       string          `json:"id"`
	Key      string          `json:"key"`
	Summary  string          `json:"summary"`
	Status   IssueStatus     `json:"status"`
	Assignee json.RawMessage `json:"assignee,omitempty"`
	Effort   *float64        `json:"effort,omitempty"`
	Labels   []string        `json:"labels,omitempty"`
	Parent   *ParentRef      `json:"parent,omitempty"`
	Type     string          `json:"type,omitempty"`
	Sprint   *SprintRef      `json:"sprint,omitempty"`
	URL      string          `json:"url,omitempty"`
	Created  string          `json:"created,omitempty"`
	Updated  string          `json:"updated,omitempty"`
}

// Sprint is the tracker's sprint object.
type Sprint struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	State    string `json:"state"`
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
	Delivery string `json:"delivery,omitempty"`
}

// ParentIssue is the parent (roadmap-item) issue metadata, keyed by id in
// the snapshot. The parent's own labels carry area/theme/initiative tags.
type ParentIssue struct {
	ID          string   `json:"id"`
	Key         string   `json:"key,omitempty"`
	Summary     string   `json:"summary"`
	Description string   `json:"description,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	URL         string   `json:"url,omitempty"`
}

// Snapshot is the fully collected input of one pipeline run: every queried
// sprint, the issues fetched under each sprint, and parent issue metadata.
type Snapshot struct {
	Sprints        []Sprint               `json:"sprints"`
	IssuesBySprint map[string][]Issue     `json:"issuesBySprint"`
	Parents        map[string]ParentIssue `json:"parents,omitempty"`
}
