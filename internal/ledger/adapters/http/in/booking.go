package in

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/internal/ledger/services/command"
	"github.com/niklasmelin/license-manager/internal/ledger/services/query"
	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mtrace"
	"github.com/niklasmelin/license-manager/pkg/nethttp"
)

// BookingHandler exposes Booking admission and lookup over HTTP.
type BookingHandler struct {
	Command *command.UseCase
	Query   *query.UseCase
}

// CreateBookings admits a batch of license bookings for a Slurm job,
// auto-registering the job on first sight. Either every item in the batch is
// admitted, or none are.
func (handler *BookingHandler) CreateBookings(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger := mlog.FromContext(ctx)
	ctx, span := mtrace.Start(ctx, "handler", "handler.create_bookings")
	defer span.End()

	payload := p.(*mmodel.BookingCreateInput)

	bookings, err := handler.Command.CreateBookings(ctx, payload)
	if err != nil {
		span.RecordError(err)
		logger.Warnf("booking admission rejected for job %s on cluster %s: %v", payload.SlurmJobID, payload.ClusterID, err)

		return nethttp.WithError(c, err)
	}

	return nethttp.Created(c, bookings)
}

// GetBookingsBySlurmJobID retrieves the bookings held by a Slurm job.
func (handler *BookingHandler) GetBookingsBySlurmJobID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.get_bookings_by_slurm_job_id")
	defer span.End()

	clusterID := c.Locals("clusterId").(uuid.UUID)
	slurmJobID := c.Params("slurm_job_id")

	if slurmJobID == "" {
		return nethttp.WithError(c, lmerrors.ValidationError{
			EntityType: "Booking",
			Title:      "Missing Job ID",
			Message:    "slurm_job_id must be provided in the path.",
		})
	}

	bookings, err := handler.Query.GetBookingsBySlurmJobID(ctx, clusterID, slurmJobID)
	if err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, bookings)
}

// MarkBookingsPending transitions every CREATED booking held by a Slurm job
// into PENDING, called by the agent once the scheduler reports the job as
// RUNNING.
func (handler *BookingHandler) MarkBookingsPending(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.mark_bookings_pending")
	defer span.End()

	clusterID := c.Locals("clusterId").(uuid.UUID)
	slurmJobID := c.Params("slurm_job_id")

	if slurmJobID == "" {
		return nethttp.WithError(c, lmerrors.ValidationError{
			EntityType: "Booking",
			Title:      "Missing Job ID",
			Message:    "slurm_job_id must be provided in the path.",
		})
	}

	if err := handler.Command.MarkBookingsPending(ctx, clusterID, slurmJobID); err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.NoContent(c)
}

// ReleaseBookingsBySlurmJobID releases every booking held by a Slurm job,
// called by an operator or by the agent's grace-time sweep once the running
// job's run time exceeds its grace time.
func (handler *BookingHandler) ReleaseBookingsBySlurmJobID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.release_bookings_by_slurm_job_id")
	defer span.End()

	clusterID := c.Locals("clusterId").(uuid.UUID)
	slurmJobID := c.Params("slurm_job_id")

	if slurmJobID == "" {
		return nethttp.WithError(c, lmerrors.ValidationError{
			EntityType: "Booking",
			Title:      "Missing Job ID",
			Message:    "slurm_job_id must be provided in the path.",
		})
	}

	if err := handler.Command.ReleaseBookingsBySlurmJobID(ctx, clusterID, slurmJobID); err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.NoContent(c)
}
