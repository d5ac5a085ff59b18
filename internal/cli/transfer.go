// Export and import commands.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// defaultExportFile is written in the current directory when export has no path.
const defaultExportFile = "books.jsonl"

func (a *app) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export every book as JSON lines",
		Long: "Export writes one JSON object per book, ordered by ID, to path\n" +
			"(default ./" + defaultExportFile + "). The file is replaced atomically.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultExportFile
			if len(args) == 1 {
				path = args[0]
			}
			path, err := filepath.Abs(path)
			if err != nil {
				return usageErr("invalid path %q: %v", path, err)
			}

			return a.withCatalogue(func(cat types.Catalogue, _ types.BookStore) error {
				if err := cat.Export(cmd.Context(), path); err != nil {
					return err
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"path": path})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported catalogue to %s\n", path)
				return nil
			})
		},
	}
}

func (a *app) newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Import books from JSON lines",
		Long: "Import adds one book per valid JSON line in path. Imported books get new\n" +
			"IDs; blank, malformed, and invalid lines are skipped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withCatalogue(func(cat types.Catalogue, _ types.BookStore) error {
				n, err := cat.Import(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), map[string]any{"imported": n})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d books\n", n)
				return nil
			})
		},
	}
}
