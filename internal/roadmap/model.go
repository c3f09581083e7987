// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Northstar - Northstar turns raw issue-tracker sprint data into validated
roadmap and cycle-overview views for delivery dashboards.

Copyright (C) 2025  Northstar Authors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package roadmap defines the domain model produced by the parsing pipeline:
// a strict Initiative -> RoadmapItem -> ReleaseItem tree plus the validation
// entries attached during parsing. Values are built by constructors and never
// mutated after construction.
package roadmap

import (
	"encoding/json"
	"time"
)

// Status is the internal lifecycle status of a release item.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inprogress"
	StatusDone       Status = "done"
	StatusCancelled  Status = "cancelled"
	StatusPostponed  Status = "postponed"
)

// KnownStatuses lists every valid Status value, used to validate
// configuration status mappings.
func KnownStatuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone, StatusCancelled, StatusPostponed}
}

// CycleState is the lifecycle state of a cycle as reported by the tracker.
type CycleState string

const (
	CycleActive    CycleState = "active"
	CycleClosed    CycleState = "closed"
	CycleFuture    CycleState = "future"
	CycleCompleted CycleState = "completed"
)

// ValidationStatus is the severity of a validation finding.
type ValidationStatus string

const (
	ValidationWarning ValidationStatus = "warning"
	ValidationError   ValidationStatus = "error"
)

// ValidationCode identifies one kind of data-quality finding.
type ValidationCode string

const (
	MissingAreaLabel             ValidationCode = "missingAreaLabel"
	MissingThemeLabel            ValidationCode = "missingThemeLabel"
	MissingInitiativeLabel       ValidationCode = "missingInitiativeLabel"
	MissingAreaTranslation       ValidationCode = "missingAreaTranslation"
	MissingThemeTranslation      ValidationCode = "missingThemeTranslation"
	MissingInitiativeTranslation ValidationCode = "missingInitiativeTranslation"
	MissingTeamTranslation       ValidationCode = "missingTeamTranslation"
	MissingEstimate              ValidationCode = "missingEstimate"
	TooGranularEstimate          ValidationCode = "tooGranularEstimate"
	MissingAssignee              ValidationCode = "missingAssignee"
	NoProjectID                  ValidationCode = "noProjectId"
)

// Validation is a non-fatal data-quality finding attached to an entity during
// parsing. Append-only: produced by parsers, never mutated afterward.
type Validation struct {
	ItemID string           `json:"itemId"`
	Code   ValidationCode   `json:"code"`
	Param  string           `json:"param,omitempty"`
	Status ValidationStatus `json:"status"`
}

// Cycle is a time-boxed delivery period, sourced 1:1 from the tracker's
// sprint object. Dates are ISO-8601 strings as delivered by the tracker.
type Cycle struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Start    string     `json:"start,omitempty"`
	End      string     `json:"end,omitempty"`
	Delivery string     `json:"delivery,omitempty"`
	State    CycleState `json:"state"`
}

// CycleRef is the informational cycle linkage carried by a release item.
// It is a lookup key, not ownership.
type CycleRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AssigneeKind discriminates the wire shapes an assignee can arrive in.
type AssigneeKind string

const (
	// AssigneeID is a bare account-id string.
	AssigneeID AssigneeKind = "id"
	// AssigneePerson is an {id, name} object.
	AssigneePerson AssigneeKind = "person"
	// AssigneeRaw is any other shape, carried through untouched.
	AssigneeRaw AssigneeKind = "raw"
)

// Assignee is a tagged union over the three assignee shapes the tracker can
// deliver. Predicates match on Kind instead of probing the runtime shape.
type Assignee struct {
	Kind AssigneeKind    `json:"kind"`
	ID   string          `json:"id,omitempty"`
	Name string          `json:"name,omitempty"`
	Raw  json.RawMessage `json:"raw,omitempty"`
}

// AssigneeFromID wraps a bare account-id string.
func AssigneeFromID(id string) *Assignee {
	return &Assignee{Kind: AssigneeID, ID: id}
}

// AssigneeFromPerson wraps an id/name pair.
func AssigneeFromPerson(id, name string) *Assignee {
	return &Assignee{Kind: AssigneePerson, ID: id, Name: name}
}

// DecodeAssignee classifies a raw JSON assignee value. A JSON string becomes
// AssigneeID; an object with an "id" field becomes AssigneePerson; anything
// else is preserved as AssigneeRaw. JSON null yields nil (no assignee).
func DecodeAssignee(raw json.RawMessage) *Assignee {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return AssigneeFromID(id)
	}

	var person struct {
		ID          string `json:"id"`
		AccountID   string `json:"accountId"`
		Name        string `json:"name"`
		DisplayName string `json:"displayName"`
	}
	if err := json.Unmarshal(raw, &person); err == nil {
		pid := person.ID
		if pid == "" {
			pid = person.AccountID
		}
		name := person.Name
		if name == "" {
			name = person.DisplayName
		}
		if pid != "" {
			return AssigneeFromPerson(pid, name)
		}
	}

	cp := make(json.RawMessage, len(raw))
	copy(cp, raw)
	return &Assignee{Kind: AssigneeRaw, Raw: cp}
}

// AccountID returns the assignee's id, or "" for raw-passthrough shapes.
func (a *Assignee) AccountID() string {
	if a == nil {
		return ""
	}
	switch a.Kind {
	case AssigneeID, AssigneePerson:
		return a.ID
	default:
		return ""
	}
}

// ReleaseItem is the finest-grained trackable unit of work, attributed to
// exactly one cycle and (via RoadmapItemID) at most one roadmap item.
type ReleaseItem struct {
	ID            string       `json:"id"`
	TicketID      string       `json:"ticketId"`
	Name          string       `json:"name"`
	Effort        *float64     `json:"effort,omitempty"`
	AreaIDs       []string     `json:"areaIds,omitempty"`
	Area          string       `json:"area,omitempty"`
	TeamIDs       []string     `json:"teamIds,omitempty"`
	Status        Status       `json:"status"`
	URL           string       `json:"url,omitempty"`
	IsExternal    bool         `json:"isExternal"`
	Stage         string       `json:"stage"`
	Assignee      *Assignee    `json:"assignee,omitempty"`
	Validations   []Validation `json:"validations,omitempty"`
	RoadmapItemID string       `json:"roadmapItemId,omitempty"`
	Cycle         *CycleRef    `json:"cycle,omitempty"`
	Created       time.Time    `json:"created,omitzero"`
}

// GTMPlan carries the aggregate release-plan flags computed across all of a
// roadmap item's release items. Both pointers are nil when the validator saw
// no data; nil means "not computed", which downstream consumers distinguish
// from a computed false.
type GTMPlan struct {
	HasScheduledRelease       *bool `json:"hasScheduledRelease,omitempty"`
	HasGlobalReleaseInBacklog *bool `json:"hasGlobalReleaseInBacklog,omitempty"`
}

// RoadmapItem groups the release items that share a parent tracker issue and
// carries area/theme/initiative metadata extracted from the parent's labels.
type RoadmapItem struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description,omitempty"`
	Area           string        `json:"area,omitempty"`
	Theme          string        `json:"theme,omitempty"`
	InitiativeID   string        `json:"initiativeId,omitempty"`
	InitiativeName string        `json:"initiativeName,omitempty"`
	IsExternal     bool          `json:"isExternal"`
	Team           string        `json:"team,omitempty"`
	URL            string        `json:"url,omitempty"`
	Items          []ReleaseItem `json:"items"`
	Labels         []string      `json:"labels,omitempty"`
	GTM            GTMPlan       `json:"gtm"`
	Validations    []Validation  `json:"validations,omitempty"`
}

// Initiative is the top-level grouping of roadmap items.
type Initiative struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Items []RoadmapItem `json:"items"`
}

// VirtualInitiativeID identifies the catch-all bucket for roadmap items whose
// theme matches the configured virtual theme. It is always appended last.
const VirtualInitiativeID = "virtual"
