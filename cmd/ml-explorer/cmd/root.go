// Package cmd implements the CLI commands for ml-explorer.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/ml-explorer/internal/config"
)

const defaultConfigFile = "config.yaml"

var (
	cfgFile string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "ml-explorer",
	Short: "Browse the Mercado Livre catalog",
	Long: "A small web application that signs users in to Mercado Livre with OAuth2 " +
		"and searches the product catalog, falling back to demo data whenever the " +
		"marketplace cannot be used.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", defaultConfigFile, "config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(versionCommand())
	rootCmd.AddCommand(authURLCommand())
	rootCmd.AddCommand(searchCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the dotenv file and the config. A missing default config
// file is not an error: the process is then configured from the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}

	path := cfgFile
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
