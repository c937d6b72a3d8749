package in

import (
	"github.com/gofiber/fiber/v2"

	"github.com/niklasmelin/license-manager/internal/ledger/services/command"
	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mtrace"
	"github.com/niklasmelin/license-manager/pkg/nethttp"
)

// ReconcileHandler exposes the agent-facing reconcile endpoint over HTTP.
type ReconcileHandler struct {
	Command *command.UseCase
}

// Reconcile overwrites the usage counters of every feature in the report
// with the agent's view, clamping rather than rejecting when an agent
// reports more used than total.
func (handler *ReconcileHandler) Reconcile(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger := mlog.FromContext(ctx)
	ctx, span := mtrace.Start(ctx, "handler", "handler.reconcile")
	defer span.End()

	payload := p.(*mmodel.ReconcileInput)

	result, err := handler.Command.Reconcile(ctx, payload)
	if err != nil {
		span.RecordError(err)
		logger.Errorf("reconcile failed for cluster %s: %v", payload.ClusterID, err)

		return nethttp.WithError(c, err)
	}

	if result.Clamped > 0 {
		logger.Warnf("reconcile for cluster %s clamped %d feature(s) whose reported used exceeded total", payload.ClusterID, result.Clamped)
	}

	return nethttp.OK(c, result)
}
