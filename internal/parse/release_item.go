// SPDX-License-Identifier: AGPL-3.0-or-later

// Package parse turns raw tracker issues into the validated
// initiative/roadmap-item/release-item tree. Business-rule violations never
// abort parsing; they become Validation entries on the affected entity.
// Only structurally broken issues (missing identity) fail, and then only
// for the single affected item.
package parse

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/northstar-hq/northstar/internal/config"
	"github.com/northstar-hq/northstar/internal/labels"
	"github.com/northstar-hq/northstar/internal/resolve"
	"github.com/northstar-hq/northstar/internal/roadmap"
	"github.com/northstar-hq/northstar/internal/tracker"
)

// ErrMissingIdentity marks an issue that cannot be parsed at all because its
// id or key is absent.
var ErrMissingIdentity = errors.New("issue missing id or key")

// ReleaseItem converts one raw issue, scoped to the cycle it was fetched
// under, into a typed release item with its validations attached. Malformed
// business data (missing estimate, unknown labels, no assignee) is recorded
// as validations and parsing continues with defaulted values.
func ReleaseItem(issue tracker.Issue, cycle *roadmap.Cycle, cfg *config.Config) (roadmap.ReleaseItem, error) {
	if issue.ID == "" || issue.Key == "" {
		return roadmap.ReleaseItem{}, fmt.Errorf("issue %q/%q: %w", issue.ID, issue.Key, ErrMissingIdentity)
	}

	item := roadmap.ReleaseItem{
		ID:       issue.ID,
		TicketID: issue.Key,
		Name:     issue.Summary,
		URL:      issue.URL,
		Effort:   issue.Effort,
		Stage:    resolve.Stage(issue.Summary),
		Status:   cfg.StatusFor(issue.Status.ID),
	}
	item.IsExternal = cfg.IsExternalStage(item.Stage)

	if cycle != nil {
		item.Cycle = &roadmap.CycleRef{ID: cycle.ID, Name: cycle.Name}
	}
	if created, err := time.Parse(time.RFC3339, issue.Created); err == nil {
		item.Created = created
	}

	var validations []roadmap.Validation
	note := func(code roadmap.ValidationCode, param string, status roadmap.ValidationStatus) {
		validations = append(validations, roadmap.Validation{
			ItemID: issue.ID,
			Code:   code,
			Param:  param,
			Status: status,
		})
	}

	item.AreaIDs = labels.WithPrefix(issue.Labels, "area")
	if len(item.AreaIDs) == 0 {
		note(roadmap.MissingAreaLabel, "", roadmap.ValidationWarning)
	}

	for _, teamID := range labels.WithPrefix(issue.Labels, "team") {
		translated, ok := labels.TranslateStrict(labels.TypeTeam, teamID, cfg.Translations)
		if !ok {
			note(roadmap.MissingTeamTranslation, teamID, roadmap.ValidationWarning)
			translated = teamID
		}
		item.TeamIDs = append(item.TeamIDs, translated)
	}

	// Effort is carried through unrounded; the two effort flags are
	// mutually exclusive.
	switch {
	case issue.Effort == nil:
		note(roadmap.MissingEstimate, "", roadmap.ValidationWarning)
	case *issue.Effort < 0 || math.Mod(*issue.Effort, 0.5) != 0:
		note(roadmap.TooGranularEstimate, "", roadmap.ValidationWarning)
	}

	item.Assignee = roadmap.DecodeAssignee(issue.Assignee)
	if item.Assignee == nil {
		note(roadmap.MissingAssignee, "", roadmap.ValidationWarning)
	}

	if issue.Parent == nil {
		note(roadmap.NoProjectID, "", roadmap.ValidationError)
	} else {
		item.RoadmapItemID = issue.Parent.ID
	}

	item.Validations = validations
	return item, nil
}
