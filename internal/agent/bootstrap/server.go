package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/niklasmelin/license-manager/internal/agent/reconcile"
	"github.com/niklasmelin/license-manager/pkg/mlog"
)

const shutdownTimeout = 10 * time.Second

// Runner drives the agent's two concurrent entry points into one
// reconciliation cycle: a fixed-interval timer and the on-demand HTTP
// trigger exposed by internal/agent/server.
type Runner struct {
	Logger         mlog.Logger
	RunCycle       func(ctx context.Context) (*reconcile.Result, error)
	Interval       time.Duration
	TriggerApp     *fiber.App
	TriggerAddress string
}

// Run starts the timer loop and the trigger server and blocks until an
// interrupt or termination signal triggers a graceful shutdown of both.
func (r *Runner) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)

	go func() {
		r.Logger.Infof("on-demand trigger listening on %s", r.TriggerAddress)

		if err := r.TriggerApp.Listen(r.TriggerAddress); err != nil {
			errCh <- err
		}
	}()

	go r.runTimerLoop(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		cancel()
		return err
	case <-sigCh:
		r.Logger.Info("shutdown signal received, draining in-flight cycle")
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	return r.TriggerApp.ShutdownWithContext(shutdownCtx)
}

// runTimerLoop runs one reconciliation cycle immediately, then again every
// Interval, until ctx is cancelled. A cycle's own failure is logged and
// never stops the loop; only shutdown does.
func (r *Runner) runTimerLoop(ctx context.Context) {
	r.runOneCycle(ctx)

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.runOneCycle(ctx)
		}
	}
}

func (r *Runner) runOneCycle(ctx context.Context) {
	result, err := r.RunCycle(ctx)
	if err != nil {
		r.Logger.Errorf("scheduled reconciliation cycle failed: %v", err)
		return
	}

	r.Logger.Infof("scheduled reconciliation cycle reported %d feature(s), swept %d booking(s)",
		result.FeaturesReported, result.BookingsSwept)
}
