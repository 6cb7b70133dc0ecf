package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const defaultRuntimeDir = ".edagent"

// IsDebug reads EDAGENT_DEBUG before any config is parsed, so the logger can
// be set up first. Accepts anything strconv.ParseBool does.
func IsDebug() bool {
	on, err := strconv.ParseBool(strings.TrimSpace(os.Getenv("EDAGENT_DEBUG")))
	return err == nil && on
}

// GetRuntimePath resolves EDAGENT_RUNTIME_PATH. Relative paths and "~/" are
// taken from the home directory.
func GetRuntimePath() string {
	path := strings.TrimSpace(os.Getenv("EDAGENT_RUNTIME_PATH"))
	if path == "" {
		path = defaultRuntimeDir
	}
	path = strings.TrimPrefix(path, "~/")

	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Join(home, path)
}
