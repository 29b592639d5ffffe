// Package paths resolves the database file location.
package paths

import (
	"os"
	"path/filepath"
)

// DefaultDBPath is the CWD-relative database location used when no override
// is active.
const DefaultDBPath = "data/goods_database.db"

// EnvDBPath is the environment variable overriding the database location.
const EnvDBPath = "GOODS_DB_PATH"

// ResolveDBPath returns the database path following the precedence chain:
// flag > config value > GOODS_DB_PATH env > DefaultDBPath.
//
// The CWD-relative default is kept as-is; everything else is made absolute so
// the path stays stable if the process later changes directory.
func ResolveDBPath(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDBPath); env != "" {
		return filepath.Abs(env)
	}
	return DefaultDBPath, nil
}
