package cmd

import (
	"errors"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"prepmate/internal/bootstrap"
	"prepmate/internal/bootstrap/logging"
	"prepmate/internal/errs"
	"prepmate/internal/infrastructure/dispatch"
)

// workerCmd consumes queued feedback jobs from NATS until interrupted.
// Jobs are processed best-effort: a failed run is logged and the job dropped.
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the feedback job worker",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svcs services) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		if app.Config.NATS.URL == "" {
			return errors.New("nats url is required, set nats.url or PM_NATS_URL")
		}

		if err := app.InitSchema(ctx); err != nil {
			return errs.Wrap(err, "initialize schema")
		}

		conn, err := nats.Connect(app.Config.NATS.URL)
		if err != nil {
			return errs.Wrap(err, "connect nats")
		}
		defer func() {
			if err := conn.Drain(); err != nil {
				logging.Error(ctx, "drain nats connection failed", slog.Any("err", errs.Loggable(err)))
			}
		}()

		sub, err := dispatch.Subscribe(ctx, conn, app.Config.NATS.Subject, svcs.Feedback)
		if err != nil {
			return errs.Wrap(err, "subscribe feedback jobs")
		}
		defer func() {
			_ = sub.Unsubscribe()
		}()

		logging.Info(ctx, "feedback worker running",
			slog.String("url", app.Config.NATS.URL),
			slog.String("subject", app.Config.NATS.Subject),
		)

		runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-runCtx.Done()

		logging.Info(ctx, "feedback worker stopping")
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
