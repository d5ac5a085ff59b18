package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/shelf/internal/genres"
	shelfsqlite "github.com/mesh-intelligence/shelf/pkg/sqlite"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend      string `yaml:"backend"`
	DataDir      string `yaml:"data_dir,omitempty"`
	SyncStrategy string `yaml:"sync_strategy,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty"`
}

// configHeader precedes the generated config.yaml.
const configHeader = `# shelf configuration
# Keys: backend, data_dir, genres_file, sync_strategy (none|immediate|on_close),
# log_level (debug|info|warn|error). SHELF_<KEY> environment variables override
# every key except data_dir.
`

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize shelf storage",
		Long: "Create the configuration and data directories, write config.yaml if missing,\n" +
			"create the database, and seed the default genres if no genre file exists.",
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, _ []string) error {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return sysErr(fmt.Errorf("create config directory: %w", err))
	}

	configPath := filepath.Join(a.configDir, configFileExt)
	wrote, err := writeConfigIfMissing(configPath, configFile{
		Backend:      a.settings.Backend,
		DataDir:      a.settings.DataDir,
		SyncStrategy: a.settings.SyncStrategy,
		LogLevel:     a.settings.LogLevel,
	})
	if err != nil {
		return sysErr(fmt.Errorf("write config: %w", err))
	}

	catalogue := shelfsqlite.NewBackend()
	if err := catalogue.Attach(a.backendConfig()); err != nil {
		return sysErr(fmt.Errorf("initialize storage: %w", err))
	}
	if err := catalogue.Detach(); err != nil {
		return sysErr(fmt.Errorf("finalize storage: %w", err))
	}

	registry := genres.NewRegistry(a.settings.GenresFile)
	seeded := false
	if !registry.Exists() {
		if err := registry.Save(genres.DefaultGenres); err != nil {
			return sysErr(fmt.Errorf("seed genres: %w", err))
		}
		seeded = true
	}

	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"config_file":    configPath,
			"config_written": wrote,
			"data_dir":       a.settings.DataDir,
			"genres_file":    a.settings.GenresFile,
			"genres_seeded":  seeded,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Shelf initialized in %s\n", a.settings.DataDir)
	return nil
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. It reports whether it wrote the file.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&cfg); err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
