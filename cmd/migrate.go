package main

import (
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-AppointmentService/internal/migrate"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply embedded database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.close()

			applied, err := migrate.Up(cmd.Context(), a.db, a.log)
			if err != nil {
				a.log.Error("Failed to apply migrations: %v", err)
				return err
			}

			a.log.Info("Migrations complete: applied=%d", applied)
			return nil
		},
	}
}
