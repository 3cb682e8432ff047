package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Subdirectory name under each base directory.
	appName = "tripd"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Directory for state that should survive restarts but is not user data,
// such as logs.
//
//	Linux:   $XDG_STATE_HOME/tripd or ~/.local/state/tripd
//	macOS:   ~/Library/Application Support/tripd
func StateDir() string {
	return filepath.Join(xdg.StateHome, appName)
}

// Default log file used when LOG_FILE is not set.
func LogFile() string {
	return filepath.Join(StateDir(), "tripd.log")
}

// Line history of the interactive chat client.
//
//	Linux:   $XDG_CACHE_HOME/tripd/chat_history
//	macOS:   ~/Library/Caches/tripd/chat_history
func ChatHistory() string {
	return filepath.Join(xdg.CacheHome, appName, "chat_history")
}

// Creates the parent directory of path with [DefaultDirMode].
func EnsureParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, DefaultDirMode)
}
