package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCatalog wires the catalog of a client command to the api.
func (opts *cliOptions) newCatalog(cmd *cobra.Command, assumeYes bool) (*Catalog, *TerminalUI, error) {
	config, err := opts.loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to setup client configuration: %w", err)
	}
	logger := NewCLILogger(opts.verbose)
	ui := NewTerminalUI(cmd.InOrStdin(), cmd.OutOrStdout(), assumeYes)
	catalog := NewCatalog(logger, NewMoviesClient(logger, &config.Client), ui)
	return catalog, ui, nil
}

func newClientCommand(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "client",
		Short: "Open the interactive movies catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, ui, err := opts.newCatalog(cmd, false)
			if err != nil {
				return err
			}
			return NewShell(catalog, ui, cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
}

func newListCommand(opts *cliOptions) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List movies, optionally filtered by title or director",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, _, err := opts.newCatalog(cmd, false)
			if err != nil {
				return err
			}
			catalog.Search = search
			if err = catalog.Mount(cmd.Context()); err != nil {
				return err
			}
			return catalog.Render(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive term matched against title or director")
	return cmd
}

func newAddCommand(opts *cliOptions) *cobra.Command {
	form := defaultMovieForm()
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a movie to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, _, err := opts.newCatalog(cmd, false)
			if err != nil {
				return err
			}
			catalog.Form = form
			if err = catalog.Submit(cmd.Context()); err != nil {
				return err
			}
			return catalog.Render(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&form.Title, "title", "", "Movie title")
	cmd.Flags().StringVar(&form.Director, "director", "", "Movie director")
	cmd.Flags().IntVar(&form.Year, "year", DefaultFormYear, "Release year")
	return cmd
}

func newEditCommand(opts *cliOptions) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title of a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, ui, err := opts.newCatalog(cmd, false)
			if err != nil {
				return err
			}
			if title != "" {
				catalog.ui = presetPromptUI{UI: ui, value: title}
			}
			if err = catalog.Mount(cmd.Context()); err != nil {
				return err
			}
			if err = catalog.Edit(cmd.Context(), args[0]); err != nil {
				return err
			}
			return catalog.Render(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title (prompted when empty)")
	return cmd
}

func newRentCommand(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rent <id>",
		Short: "Rent an available movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, _, err := opts.newCatalog(cmd, false)
			if err != nil {
				return err
			}
			if err = catalog.Rent(cmd.Context(), args[0]); err != nil {
				return err
			}
			return catalog.Render(cmd.OutOrStdout())
		},
	}
}

func newReturnCommand(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "return <id>",
		Short: "Return a rented movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, _, err := opts.newCatalog(cmd, false)
			if err != nil {
				return err
			}
			if err = catalog.Return(cmd.Context(), args[0]); err != nil {
				return err
			}
			return catalog.Render(cmd.OutOrStdout())
		},
	}
}

func newDeleteCommand(opts *cliOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a movie from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, _, err := opts.newCatalog(cmd, yes)
			if err != nil {
				return err
			}
			if err = catalog.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return catalog.Render(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
