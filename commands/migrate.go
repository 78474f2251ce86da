package commands

import (
	"errors"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables and apply pending migrations",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Database.Driver != "postgres" {
		return errors.New("migrate needs the postgres driver")
	}

	_, closeStore, err := openStore(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	closeStore()

	logger.Info("database is up to date")
	return nil
}
