package main

import (
	"github.com/spf13/cobra"
)

// cliOptions holds the values of the persistent flags.
type cliOptions struct {
	configFile string
	envFile    string
	server     string
	verbose    bool
}

// NewRootCommand builds the locadora command tree.
func NewRootCommand() *cobra.Command {
	opts := &cliOptions{}
	rootCmd := &cobra.Command{
		Use:   "locadora",
		Short: "Locadora - movies rental catalog",
		Long: `Locadora manages a catalog of movies available for rental.

The serve command starts the REST api. Every other command is a client
of that api.

Examples:
  # Start the api server
  locadora serve --config ./config.yml

  # Open the interactive catalog
  locadora client

  # Search movies by title or director
  locadora list --search villeneuve

  # Add a movie then rent it
  locadora add --title Dune --director "Denis Villeneuve" --year 2021
  locadora rent 5c1b8a0e-7f7a-4c1e-9a61-3f0a3c2b9b11`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       GitTag,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", DefaultConfigFile, "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", DefaultEnvFile, "Environment file path")
	rootCmd.PersistentFlags().StringVarP(&opts.server, "server", "s", "", "Api base url used by client commands (overrides client.base_url)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print client debug logs to stderr")

	rootCmd.AddCommand(
		newServeCommand(opts),
		newClientCommand(opts),
		newListCommand(opts),
		newAddCommand(opts),
		newEditCommand(opts),
		newRentCommand(opts),
		newReturnCommand(opts),
		newDeleteCommand(opts),
	)
	return rootCmd
}

// loadConfig builds the configuration from the files named by the flags.
func (opts *cliOptions) loadConfig() (*Config, error) {
	config, err := LoadAndInitConfigs(opts.configFile, opts.envFile, GitCommit, GitTag, BuildTime)
	if err != nil {
		return nil, err
	}
	if opts.server != "" {
		config.Client.BaseURL = opts.server
	}
	return config, nil
}
