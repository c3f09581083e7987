// SPDX-License-Identifier: AGPL-3.0-or-later

// Package labels parses "prefix:value" tracker labels and translates label
// values to display names via the configured translation tables.
package labels

import "strings"

// Type is a singular label category.
type Type string

const (
	TypeArea       Type = "area"
	TypeTeam       Type = "team"
	TypeTheme      Type = "theme"
	TypeInitiative Type = "initiative"
)

// Translations holds display names keyed by raw label value, nested by the
// plural category buckets of the configuration file.
type Translations struct {
	Areas       map[string]string `yaml:"areas"`
	Teams       map[string]string `yaml:"teams"`
	Themes      map[string]string `yaml:"themes"`
	Initiatives map[string]string `yaml:"initiatives"`
}

// bucketFor maps a singular label type to its plural translation bucket.
// The mapping is a fixed table: a new label type is a deliberate, reviewed
// addition here, not something derived from the string.
func (tr Translations) bucketFor(t Type) map[string]string {
	switch t {
	case TypeArea:
		return tr.Areas
	case TypeTeam:
		return tr.Teams
	case TypeTheme:
		return tr.Themes
	case TypeInitiative:
		return tr.Initiatives
	default:
		return nil
	}
}

// WithPrefix returns the "<value>" part of every label of the exact form
// "<prefix>:<value>". Labels are trimmed before matching and values are
// trimmed after extraction. Input order is preserved and duplicates are kept.
func WithPrefix(labels []string, prefix string) []string {
	var values []string
	marker := prefix + ":"
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if !strings.HasPrefix(label, marker) {
			continue
		}
		values = append(values, strings.TrimSpace(label[len(marker):]))
	}
	return values
}

// Translate looks up the display name for value in the bucket belonging to
// the label type. When no translation exists the raw value is returned
// unchanged; callers that need to detect the miss use TranslateStrict.
func Translate(t Type, value string, tr Translations) string {
	if translated, ok := TranslateStrict(t, value, tr); ok {
		return translated
	}
	return value
}

// TranslateStrict is Translate without the fallback: the second return is
// false when no translation exists, which parsers use to raise
// missing-translation validations.
func TranslateStrict(t Type, value string, tr Translations) (string, bool) {
	bucket := tr.bucketFor(t)
	if bucket == nil {
		return "", false
	}
	translated, ok := bucket[value]
	return translated, ok
}
