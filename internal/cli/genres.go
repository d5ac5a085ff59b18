// Genre commands: list, add, remove.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/genres"
)

func (a *app) newGenresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genres",
		Short: "Manage the genre list",
		Long: "Genres are kept in an XML file (genres_file in config.yaml, default\n" +
			"<data_dir>/genres.xml). Book genres are free text and are not checked\n" +
			"against this list.",
	}
	cmd.AddCommand(a.newGenresListCmd())
	cmd.AddCommand(a.newGenresAddCmd())
	cmd.AddCommand(a.newGenresRemoveCmd())
	return cmd
}

func (a *app) newGenresListCmd() *cobra.Command {
	var choices bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List genres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.loadGenres()
			if err != nil {
				return err
			}
			if choices {
				list = genres.FilterChoices(list)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), list)
			}
			for _, g := range list {
				fmt.Fprintln(cmd.OutOrStdout(), g)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&choices, "choices", false, `include the "-" all-genres filter option first`)
	return cmd
}

func (a *app) newGenresAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a genre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editGenres(cmd, func(e *genres.Editor) error {
				return e.Add(args[0])
			})
		},
	}
}

func (a *app) newGenresRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name...>",
		Short: "Remove genres",
		Long:  "Remove deletes each named genre. Names not in the list are ignored.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editGenres(cmd, func(e *genres.Editor) error {
				e.Remove(args...)
				return nil
			})
		},
	}
}

// loadGenres reads the configured genre file.
func (a *app) loadGenres() ([]string, error) {
	list, err := genres.NewRegistry(a.settings.GenresFile).Load()
	if err != nil {
		if errors.Is(err, genres.ErrMalformed) {
			return nil, err
		}
		return nil, sysErr(err)
	}
	return list, nil
}

// editGenres loads the genre file, applies edit, and saves the result. The
// file is left untouched if edit fails.
func (a *app) editGenres(cmd *cobra.Command, edit func(*genres.Editor) error) error {
	list, err := a.loadGenres()
	if err != nil {
		return err
	}
	editor := genres.NewEditor(list)
	if err := edit(editor); err != nil {
		return err
	}

	updated := editor.List()
	if err := genres.NewRegistry(a.settings.GenresFile).Save(updated); err != nil {
		return sysErr(err)
	}

	if a.flags.jsonMode {
		return writeJSON(cmd.OutOrStdout(), updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d genres to %s\n", len(updated), a.settings.GenresFile)
	return nil
}
