package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// newSweepCmd разовый прогон сверки, например из cron
func newSweepCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Cancel stale scheduled appointments once and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, *configPath)
			if err != nil {
				return err
			}
			defer a.close()

			return runSweep(ctx, a)
		},
	}
}

func runSweep(ctx context.Context, a *app) error {
	report, err := a.newSweeper().RunOnce(ctx)
	if err != nil {
		a.log.Error("Sweep failed: %v", err)
		return err
	}

	a.log.Info("Sweep finished: window=(%s, %s], tenants=%d, failed=%d %v, cancelled=%d, took=%s",
		report.WindowFrom.Format(time.RFC3339),
		report.WindowTo.Format(time.RFC3339),
		report.TenantsProcessed, report.TenantsFailed, report.FailedTenantIDs,
		report.Cancelled, report.FinishedAt.Sub(report.StartedAt))
	return nil
}
