package cli

import (
	"os"

	"github.com/pvolkov/certup/internal/logger"
	"github.com/spf13/cobra"
)

var (
	jsonOutput  bool
	verbose     bool
	composeFile string
	version     = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "certup",
	Short: "TLS certificate management for the dockerized site",
	Long: `certup manages the TLS lifecycle of the docker-compose site stack.

It issues and renews Let's Encrypt certificates through the stack's
certbot service using the webroot challenge, reloads nginx so new
certificates take effect, and runs the site's lead-form web server.`,
}

// Execute runs the root command
func Execute() {
	// Initialize logger based on verbose flag (parsed by cobra)
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
	rootCmd.PersistentFlags().StringVarP(&composeFile, "file", "f", "", "Compose file path (overrides COMPOSE_FILE_PATH)")
}
