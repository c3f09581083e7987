// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Northstar - Northstar turns raw issue-tracker sprint data into validated
roadmap and cycle-overview views for delivery dashboards.

Copyright (C) 2025  Northstar Authors

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/northstar-hq/northstar/internal/config"
)

// NewRootCmd constructs the Northstar root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("NORTHSTAR_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	env := config.LoadEnv()

	cmd := &cobra.Command{
		Use:           "northstar",
		Short:         "Northstar - roadmap and cycle-overview views from issue-tracker data",
		Long:          "Northstar parses issue-tracker snapshots into a validated initiative tree and renders roadmap, cycle-overview and data-quality views.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(env.LogLevel)
		},
	}

	cmd.PersistentFlags().String("config", env.ConfigPath, "path to the pipeline configuration file")
	cmd.PersistentFlags().String("snapshot", env.SnapshotPath, "path to the tracker snapshot JSON file")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of Northstar",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Northstar version %s\n", version)
		},
	})

	cmd.AddCommand(NewRoadmapCommand())
	cmd.AddCommand(NewOverviewCommand())
	cmd.AddCommand(NewQualityCommand(env))

	return cmd
}

func configureLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
