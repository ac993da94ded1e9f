// Package config provides the radar-runner configuration: process settings
// from the environment and the runner file with schedules, holidays and
// asset lists.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// ConfigFileName is the runner file created under the config directory.
const ConfigFileName = "radar-runner.conf"

// AppDirName is the directory name used under the OS config and data dirs.
const AppDirName = "radar"

// Config holds process-level configuration
type Config struct {
	ConfigDir  string // Directory holding the runner file
	ConfigFile string // Runner file path (TOML, or YAML by extension)
	DataDir    string // Base directory for collector output
	Program    string // Overrides the runner file's program when set
	LogLevel   string
	LogPretty  bool

	// Warnings collected while resolving directories, logged once the
	// logger exists.
	Warnings []string
}

// Load reads configuration from environment variables. It never fails:
// directories that cannot be resolved degrade to ".".
func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Program:   getEnv("RADAR_PROGRAM", ""),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),
	}

	configDir, warn := resolveDir(getEnv("RADAR_CONFIG_DIR", ""), os.UserConfigDir, "config")
	cfg.ConfigDir = configDir
	if warn != "" {
		cfg.Warnings = append(cfg.Warnings, warn)
	}

	dataDir, warn := resolveDir(getEnv("RADAR_DATA_DIR", ""), userDataDir, "data")
	cfg.DataDir = dataDir
	if warn != "" {
		cfg.Warnings = append(cfg.Warnings, warn)
	}

	cfg.ConfigFile = getEnv("RADAR_CONFIG_FILE", filepath.Join(cfg.ConfigDir, ConfigFileName))

	return cfg
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
