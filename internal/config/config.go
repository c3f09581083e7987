// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads the read-only pipeline configuration: label
// translation tables, the ordered stage progression, the tracker-status
// mapping and the special label values. The loaded Config is passed
// explicitly into every parser and filter constructor so multiple
// configurations can coexist in one process.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/northstar-hq/northstar/internal/labels"
	"github.com/northstar-hq/northstar/internal/roadmap"
)

// Config is the pipeline configuration document. It is never mutated after
// Load returns.
type Config struct {
	// Translations maps raw label values to display names, nested by
	// plural category.
	Translations labels.Translations `yaml:"translations"`

	// Stages is the ordered release-readiness progression (e.g. s0..s3+).
	// The last entry is the final release stage.
	Stages []string `yaml:"stages"`

	// ExternalStages lists the stages whose items are delivered outside
	// the regular release train.
	ExternalStages []string `yaml:"externalStages"`

	// StatusMapping maps tracker status ids to internal statuses. Tracker
	// statuses without a mapping default to todo during parsing.
	StatusMapping map[string]roadmap.Status `yaml:"statusMapping"`

	// FutureStatuses lists the internal statuses that count as "not
	// started yet" for release planning.
	FutureStatuses []roadmap.Status `yaml:"futureStatuses"`

	// VirtualTheme is the theme label value that routes a roadmap item
	// into the virtual pseudo-initiative.
	VirtualTheme string `yaml:"virtualTheme"`

	// NoPrereleaseLabel marks roadmap items that skip prerelease stages.
	NoPrereleaseLabel string `yaml:"noPrereleaseLabel"`
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks internal consistency of the document.
func (c *Config) Validate() error {
	if len(c.Stages) == 0 {
		return fmt.Errorf("stages list must not be empty")
	}

	known := map[roadmap.Status]bool{}
	for _, s := range roadmap.KnownStatuses() {
		known[s] = true
	}
	for id, status := range c.StatusMapping {
		if !known[status] {
			return fmt.Errorf("statusMapping %q: unknown status %q", id, status)
		}
	}
	for _, status := range c.FutureStatuses {
		if !known[status] {
			return fmt.Errorf("futureStatuses: unknown status %q", status)
		}
	}
	return nil
}

// FinalStage returns the last stage of the configured progression.
func (c *Config) FinalStage() string {
	return c.Stages[len(c.Stages)-1]
}

// IsFutureStatus reports whether the status belongs to the configured
// "not started yet" bucket. With no configuration, todo is the default.
func (c *Config) IsFutureStatus(status roadmap.Status) bool {
	if len(c.FutureStatuses) == 0 {
		return status == roadmap.StatusTodo
	}
	for _, s := range c.FutureStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsExternalStage reports whether the stage is configured as external.
func (c *Config) IsExternalStage(stage string) bool {
	for _, s := range c.ExternalStages {
		if s == stage {
			return true
		}
	}
	return false
}

// StatusFor maps a tracker status id to the internal status, defaulting
// to todo when no mapping exists.
func (c *Config) StatusFor(trackerStatusID string) roadmap.Status {
	if status, ok := c.StatusMapping[trackerStatusID]; ok {
		return status
	}
	return roadmap.StatusTodo
}
