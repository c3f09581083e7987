// SPDX-License-Identifier: AGPL-3.0-or-later
package parse

import (
	"github.com/northstar-hq/northstar/internal/config"
	"github.com/northstar-hq/northstar/internal/labels"
	"github.com/northstar-hq/northstar/internal/roadmap"
	"github.com/northstar-hq/northstar/internal/tracker"
)

// RoadmapItem builds one roadmap item from the release items grouped under
// the given parent id, plus the parent issue's own fields when the snapshot
// carries them. Area, theme and initiative come from the parent's labels;
// an absent label and an untranslated label value each produce their own
// validation code.
func RoadmapItem(id string, items []roadmap.ReleaseItem, parent *tracker.ParentIssue, cfg *config.Config) roadmap.RoadmapItem {
	item := roadmap.RoadmapItem{
		ID:    id,
		Items: items,
	}

	var parentLabels []string
	if parent != nil {
		item.Name = parent.Summary
		item.Description = parent.Description
		item.URL = parent.URL
		item.Labels = parent.Labels
		parentLabels = parent.Labels
	}

	var validations []roadmap.Validation
	note := func(code roadmap.ValidationCode, param string) {
		validations = append(validations, roadmap.Validation{
			ItemID: id,
			Code:   code,
			Param:  param,
			Status: roadmap.ValidationWarning,
		})
	}

	item.Area = translateFirst(parentLabels, "area", labels.TypeArea, cfg,
		func() { note(roadmap.MissingAreaLabel, "") },
		func(raw string) { note(roadmap.MissingAreaTranslation, raw) })

	item.Theme = translateFirst(parentLabels, "theme", labels.TypeTheme, cfg,
		func() { note(roadmap.MissingThemeLabel, "") },
		func(raw string) { note(roadmap.MissingThemeTranslation, raw) })

	if ids := labels.WithPrefix(parentLabels, "initiative"); len(ids) == 0 {
		note(roadmap.MissingInitiativeLabel, "")
	} else {
		item.InitiativeID = ids[0]
		name, ok := labels.TranslateStrict(labels.TypeInitiative, ids[0], cfg.Translations)
		if !ok {
			note(roadmap.MissingInitiativeTranslation, ids[0])
			name = ids[0]
		}
		item.InitiativeName = name
	}

	if teams := labels.WithPrefix(parentLabels, "team"); len(teams) > 0 {
		item.Team = labels.Translate(labels.TypeTeam, teams[0], cfg.Translations)
	}

	// A roadmap item is external only when every one of its release items
	// is delivered outside the regular release train.
	item.IsExternal = len(items) > 0
	for _, child := range items {
		if !child.IsExternal {
			item.IsExternal = false
			break
		}
	}

	item.Validations = validations
	return item
}

// translateFirst extracts the first label with the given prefix and
// translates it, invoking onMissing when no label exists and onUntranslated
// when the value has no translation (the raw value is then kept).
func translateFirst(parentLabels []string, prefix string, t labels.Type, cfg *config.Config, onMissing func(), onUntranslated func(raw string)) string {
	values := labels.WithPrefix(parentLabels, prefix)
	if len(values) == 0 {
		onMissing()
		return ""
	}
	translated, ok := labels.TranslateStrict(t, values[0], cfg.Translations)
	if !ok {
		onUntranslated(values[0])
		return values[0]
	}
	return translated
}
