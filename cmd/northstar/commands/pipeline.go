// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"errors"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/northstar-hq/northstar/cmd/northstar/internal/clierr"
	"github.com/northstar-hq/northstar/internal/config"
	"github.com/northstar-hq/northstar/internal/parse"
	"github.com/northstar-hq/northstar/internal/tracker"
)

// runPipeline loads the configuration and snapshot named by the persistent
// flags and parses the snapshot. Shared by every data-bearing subcommand.
func runPipeline(cmd *cobra.Command) (*config.Config, *parse.Result, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, clierr.Newf(2, "get config flag: %v", err)
	}
	snapshotPath, err := cmd.Flags().GetString("snapshot")
	if err != nil {
		return nil, nil, clierr.Newf(2, "get snapshot flag: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, clierr.Newf(2, "configuration file not found: %s", configPath)
		}
		return nil, nil, clierr.Wrap(2, "loading configuration", err)
	}

	snap, err := tracker.LoadSnapshot(snapshotPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, clierr.Newf(1, "snapshot file not found: %s", snapshotPath)
		}
		return nil, nil, clierr.Wrap(1, "loading snapshot", err)
	}

	return cfg, parse.NewParser(cfg).Parse(snap), nil
}
