// Config loading for the shelf CLI.
package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/shelf/internal/paths"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "SHELF"

	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeyGenresFile   = "genres_file"
	cfgKeySyncStrategy = "sync_strategy"
	cfgKeyLogLevel     = "log_level"

	defaultLogLevel = "warn"
)

// settings is the effective configuration after flags, config.yaml, and
// environment have been merged.
type settings struct {
	Backend      string
	DataDir      string
	GenresFile   string
	SyncStrategy string
	LogLevel     string
}

// loadSettings reads config.yaml from configDir with viper and resolves the
// directories. A missing config.yaml is not an error.
//
// SHELF_BACKEND, SHELF_GENRES_FILE, SHELF_SYNC_STRATEGY and SHELF_LOG_LEVEL
// override config.yaml. SHELF_DATA_DIR ranks below config.yaml; see
// paths.ResolveDataDir.
func loadSettings(configDir, dataDirFlag string) (settings, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeySyncStrategy, types.SyncNone)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyBackend, cfgKeyGenresFile, cfgKeySyncStrategy, cfgKeyLogLevel} {
		if err := v.BindEnv(key); err != nil {
			return settings{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("read %s: %w", filepath.Join(configDir, configFileExt), err)
		}
	}

	dataDir, err := paths.ResolveDataDir(dataDirFlag, v.GetString(cfgKeyDataDir))
	if err != nil {
		return settings{}, fmt.Errorf("resolve data dir: %w", err)
	}
	genresFile, err := paths.ResolveGenresFile(v.GetString(cfgKeyGenresFile), dataDir)
	if err != nil {
		return settings{}, fmt.Errorf("resolve genres file: %w", err)
	}

	s := settings{
		Backend:      v.GetString(cfgKeyBackend),
		DataDir:      dataDir,
		GenresFile:   genresFile,
		SyncStrategy: v.GetString(cfgKeySyncStrategy),
		LogLevel:     v.GetString(cfgKeyLogLevel),
	}
	cfg := types.Config{Backend: s.Backend, DataDir: s.DataDir, SyncStrategy: s.SyncStrategy}
	if err := cfg.Validate(); err != nil {
		return settings{}, fmt.Errorf("config: %w", err)
	}
	return s, nil
}
