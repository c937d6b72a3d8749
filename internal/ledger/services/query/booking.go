package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mtrace"
)

// GetBookingsBySlurmJobID fetches every booking for a job.
func (uc *UseCase) GetBookingsBySlurmJobID(ctx context.Context, clusterID uuid.UUID, slurmJobID string) ([]*mmodel.Booking, error) {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "query", "query.get_bookings_by_slurm_job_id")
	defer span.End()

	bookings, err := uc.BookingRepo.FindBySlurmJobID(ctx, clusterID, slurmJobID)
	if err != nil {
		logger.Errorf("error getting bookings for slurm job %s: %v", slurmJobID, err)
		return nil, err
	}

	return bookings, nil
}
