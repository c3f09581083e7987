// SPDX-License-Identifier: AGPL-3.0-or-later
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Env holds the process-level settings resolved from the environment.
type Env struct {
	ConfigPath   string
	SnapshotPath string
	OutputDir    string
	LogLevel     string
}

// LoadEnv resolves process settings from a .env file (if present) and the
// environment. Environment variables win over .env entries, which is
// godotenv's default behavior.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		ConfigPath:   getEnvWithDefault("NORTHSTAR_CONFIG", "northstar.yaml"),
		SnapshotPath: getEnvWithDefault("NORTHSTAR_SNAPSHOT", "snapshot.json"),
		OutputDir:    getEnvWithDefault("NORTHSTAR_OUTPUT_DIR", "reports"),
		LogLevel:     getEnvWithDefault("NORTHSTAR_LOG_LEVEL", "info"),
	}
}

func getEnvWithDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
