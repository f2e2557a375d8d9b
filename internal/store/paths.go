package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// File names inside the data directory.
const (
	UsersFile  = "users.json"
	MemoryFile = "memory.json"
	EventsFile = "coach.db"
)

// DefaultDataDir resolves the data directory in priority order:
// 1. COACH_DATA_DIR environment variable
// 2. $XDG_DATA_HOME/coach
// 3. ~/.local/share/coach
func DefaultDataDir() (string, error) {
	if p := os.Getenv("COACH_DATA_DIR"); p != "" {
		return p, os.MkdirAll(p, 0o755)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "coach")
	return p, os.MkdirAll(p, 0o755)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
