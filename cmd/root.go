// ABOUTME: Root command for the favshelf CLI
// ABOUTME: Handles global flags, environment config, and launching the TUI

package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/mhartsell/favshelf/internal/client"
	"github.com/mhartsell/favshelf/internal/tui"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:3000"

// rootCmd is the base command. Without a subcommand it opens the
// interactive catalog.
var rootCmd = &cobra.Command{
	Use:   "favshelf",
	Short: "Terminal client for the storefront favorites API",
	Long: `favshelf is a terminal client for a storefront API: browse the product
catalog, sign in, and mark favorites. Run it without arguments for the
interactive view, or use the subcommands for scripted access.

Environment Variables:
  FAVSHELF_API_URL  Storefront API URL (default: http://localhost:3000)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(client.New(GetAPIURL()))
	},
}

// Execute runs the root command
func Execute() error {
	// A .env beside the binary can hold FAVSHELF_API_URL for local setups
	godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Storefront API URL (overrides FAVSHELF_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("FAVSHELF_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
