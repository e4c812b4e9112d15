// Package commands implements the Boardbot CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bai-admin/boardbot/internal/core/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "boardbot",
	Short: "Issue labeling, assignment and project-board automation",
	Long: `Boardbot classifies GitHub issue and pull request events against a
declared rule set and keeps a ProjectV2 board's status field in sync with
the work item lifecycle. It is designed to run per event from a CI
workflow, with the webhook payload supplied as a file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// loadConfig resolves and loads the configuration shared by commands.
// A missing or broken config file degrades to built-in defaults so a
// misconfigured repo still gets the default rule set.
func loadConfig() *config.Config {
	path := config.FindConfigPath(cfgFile)
	if path == "" {
		if verbose {
			fmt.Println("No configuration file found, using defaults")
		}
		return config.Default()
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Printf("Warning: failed to load config from %s: %v. Using defaults.\n", path, err)
		return config.Default()
	}
	if verbose {
		fmt.Printf("Loaded config from %s\n", path)
	}
	return cfg
}
