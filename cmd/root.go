package main

import (
	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.toml"

// newRootCmd собирает CLI сервиса: serve (HTTP API + фоновая сверка), sweep (разовая сверка) и migrate
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "appointment-service",
		Short:         "Multi-tenant appointment scheduling service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to TOML config file")

	root.AddCommand(
		newServeCmd(&configPath),
		newSweepCmd(&configPath),
		newMigrateCmd(&configPath),
	)

	return root
}
