package main

import (
	"fmt"

	"task_manager_api/internal/config"
	"task_manager_api/internal/db"
	"task_manager_api/internal/logger"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "List or apply the Postgres migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !apply {
				names, err := db.MigrationNames()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Store.Driver != config.DriverPostgres {
				return fmt.Errorf("migrate only applies to the postgres driver, got %q", cfg.Store.Driver)
			}

			logger.Init(cfg.LogLevel, cfg.Env == config.EnvLocal)
			log := logger.Get()

			pool, err := db.Connect(cmd.Context(), cfg.Postgres, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			return db.Migrate(cmd.Context(), pool, func(name string) {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
			})
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "apply migrations instead of listing them")
	return cmd
}
