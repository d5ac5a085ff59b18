// Package cli implements the shelf command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/logger"
	"github.com/mesh-intelligence/shelf/internal/paths"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// app is the state shared by one command invocation.
type app struct {
	flags    rootFlags
	settings settings
	// configDir is resolved before any subcommand runs.
	configDir string
}

// NewRootCmd creates the top-level "shelf" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "shelf",
		Short: "A personal book catalogue",
		Long: "Shelf keeps a catalogue of books with title, author, genre, and a favorite flag.\n" +
			"Books live in a local SQLite database; genres live in an XML file next to it.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.prepare,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $(CWD)/.shelf or the user config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.shelf-db)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(a.newAddCmd())
	root.AddCommand(a.newListCmd())
	root.AddCommand(a.newSearchCmd())
	root.AddCommand(a.newShowCmd())
	root.AddCommand(a.newDeleteCmd())
	root.AddCommand(a.newFavoriteCmd())
	root.AddCommand(a.newEditCmd())
	root.AddCommand(a.newGenresCmd())
	root.AddCommand(a.newExportCmd())
	root.AddCommand(a.newImportCmd())

	return root
}

// Execute runs the root command with os.Args and returns the process exit
// code. Errors are printed to stderr.
func Execute() int {
	return run(NewRootCmd(), os.Args[1:], os.Stdout, os.Stderr)
}

// run executes root with args and maps the result to an exit code.
func run(root *cobra.Command, args []string, stdout, stderr io.Writer) int {
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// prepare resolves directories, loads config.yaml, and configures logging.
func (a *app) prepare(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysErr(fmt.Errorf("resolve config dir: %w", err))
	}
	a.configDir = configDir

	s, err := loadSettings(configDir, a.flags.dataDir)
	if err != nil {
		return sysErr(err)
	}
	a.settings = s

	if err := logger.InitWithWriter(s.LogLevel, cmd.ErrOrStderr()); err != nil {
		return sysErr(fmt.Errorf("log_level: %w", err))
	}
	logger.Debug("settings loaded", "config_dir", configDir, "data_dir", s.DataDir, "genres_file", s.GenresFile)
	return nil
}

// backendConfig returns the Catalogue config derived from settings.
func (a *app) backendConfig() types.Config {
	return types.Config{
		Backend:      a.settings.Backend,
		DataDir:      a.settings.DataDir,
		SyncStrategy: a.settings.SyncStrategy,
	}
}
