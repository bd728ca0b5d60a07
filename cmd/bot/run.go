package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"SignalSentinel/internal/metrics"
	"SignalSentinel/internal/scheduler"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the scheduler, chat command polling and metrics server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.run(cmd.Context())
		},
	}
}

func (a *app) run(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	runner := scheduler.NewRunner(a.collector, a.notifier, m, a.logger)

	sched := scheduler.NewScheduler(ctx, runner, m, a.logger)
	if err := sched.Register(a.cfg.Schedule.Cron); err != nil {
		return err
	}
	sched.Start(a.cfg.Schedule.RunOnStart)
	defer sched.Stop()

	if a.telegram != nil {
		go a.telegram.StartPolling(ctx, sched.HandleCommand)
		a.logger.Info().Msg("telegram polling started")
	}

	if a.cfg.Metrics.Addr != "" {
		go func() {
			if err := m.Serve(ctx, a.cfg.Metrics.Addr, runner, a.logger); err != nil {
				a.logger.Error().Err(err).Msg("metrics server")
			}
		}()
	}

	a.logger.Info().Str("cron", a.cfg.Schedule.Cron).Msg("SignalSentinel is running, press Ctrl+C to stop")
	<-ctx.Done()
	a.logger.Info().Msg("shutdown signal received, stopping")
	return nil
}
