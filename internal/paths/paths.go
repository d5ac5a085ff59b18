// Package paths resolves the shelf config directory, data directory, and
// genre file.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user directories.
const appName = "shelf"

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".shelf"
	DefaultDataDirName   = ".shelf-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "SHELF_CONFIG_DIR"
	EnvDataDir   = "SHELF_DATA_DIR"
)

// GenresFileName is the genre file inside the data directory.
const GenresFileName = "genres.xml"

// platformDir holds lookups that tests override.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// UserConfigDir returns the per-user configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/shelf (fallback ~/.config/shelf)
// macOS:   ~/Library/Application Support/shelf
// Windows: %APPDATA%/shelf
func UserConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// ResolveConfigDir returns the configuration directory:
// flag > SHELF_CONFIG_DIR > ./.shelf if it exists > UserConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	local := filepath.Join(cwd, DefaultConfigDirName)
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return local, nil
	}
	return UserConfigDir()
}

// ResolveDataDir returns the data directory:
// flag > config.yaml value > SHELF_DATA_DIR > ./.shelf-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	for _, v := range []string{flag, configValue, os.Getenv(EnvDataDir)} {
		if v != "" {
			return filepath.Abs(v)
		}
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ResolveGenresFile returns the genre file path. An explicit value is made
// absolute; otherwise the file lives in dataDir.
func ResolveGenresFile(configValue, dataDir string) (string, error) {
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	return filepath.Join(dataDir, GenresFileName), nil
}
