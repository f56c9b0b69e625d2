package cli

import (
	"github.com/spf13/cobra"

	"github.com/yungbote/knowledge-backend/internal/app"
)

var (
	version    = "dev"
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "kbserver",
	Short: "Dataset, document and knowledge storage service",
	Long: `kbserver stores datasets, the documents inside them and the knowledge
records extracted from each document, and exposes them over a JSON HTTP API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default $KB_CONFIG_PATH or ./config/config.yaml)")
}

// Execute runs the root command.
func Execute(v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.Execute()
}

func loadConfig() (*app.Config, error) {
	if configPath != "" {
		return app.LoadFile(configPath)
	}
	return app.Load()
}
