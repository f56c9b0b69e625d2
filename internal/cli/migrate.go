package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yungbote/knowledge-backend/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// migrate explicitly below rather than inside New
	cfg.Database.AutoMigrate = false

	a, err := app.New(context.Background(), cfg, app.Options{Version: version})
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	if err := a.Migrate(); err != nil {
		return err
	}
	cmd.Printf("Schema migrated (%s).\n", a.DB.Driver())
	return nil
}
