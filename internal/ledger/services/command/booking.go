package command

import (
	"context"

	"github.com/google/uuid"

	bookingdomain "github.com/niklasmelin/license-manager/internal/ledger/domain/booking"
	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mtrace"
)

// CreateBookings admits a job's requested features against their Inventory
// in a single transaction: the whole request succeeds or none of it does.
// The job implicitly registers on its first booking request.
func (uc *UseCase) CreateBookings(ctx context.Context, input *mmodel.BookingCreateInput) ([]*mmodel.Booking, error) {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "command", "command.create_bookings")
	defer span.End()

	logger.Infof("admitting %d booking(s) for slurm job %s", len(input.Bookings), input.SlurmJobID)

	job, err := uc.JobRepo.FindOrCreateBySlurmJobID(ctx, &mmodel.CreateJobInput{
		SlurmJobID: input.SlurmJobID,
		ClusterID:  input.ClusterID,
		Username:   input.Username,
		LeadHost:   input.LeadHost,
	})
	if err != nil {
		logger.Errorf("error resolving job for slurm job %s: %v", input.SlurmJobID, err)
		return nil, err
	}

	items := make([]bookingdomain.BookingItem, 0, len(input.Bookings))

	for _, b := range input.Bookings {
		feature, err := uc.FeatureRepo.FindByProductFeature(ctx, b.ProductFeature)
		if err != nil {
			logger.Errorf("error resolving product_feature %q: %v", b.ProductFeature, err)
			return nil, err
		}

		featureID, err := uuid.Parse(feature.ID)
		if err != nil {
			return nil, lmerrors.InternalServerError{Title: "Invalid Feature ID", Message: "stored feature id is not a valid UUID", Err: err}
		}

		items = append(items, bookingdomain.BookingItem{FeatureID: featureID, Quantity: b.Quantity})
	}

	bookings, err := uc.BookingRepo.CreateBatch(ctx, job, items)
	if err != nil {
		logger.Errorf("error admitting bookings for slurm job %s: %v", input.SlurmJobID, err)
		return nil, err
	}

	return bookings, nil
}

// MarkBookingsPending transitions every CREATED booking for a job into
// PENDING, called once the agent observes the job has entered the
// scheduler's RUNNING state. Bookings already in PENDING or beyond are left
// alone so a repeated sweep is idempotent.
func (uc *UseCase) MarkBookingsPending(ctx context.Context, clusterID uuid.UUID, slurmJobID string) error {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "command", "command.mark_bookings_pending")
	defer span.End()

	bookings, err := uc.BookingRepo.FindBySlurmJobID(ctx, clusterID, slurmJobID)
	if err != nil {
		logger.Errorf("error resolving bookings for slurm job %s: %v", slurmJobID, err)
		return err
	}

	for _, booking := range bookings {
		if booking.State != mmodel.BookingStateCreated {
			continue
		}

		id, err := uuid.Parse(booking.ID)
		if err != nil {
			return lmerrors.InternalServerError{Title: "Invalid Booking ID", Message: "stored booking id is not a valid UUID", Err: err}
		}

		if err := uc.BookingRepo.MarkPending(ctx, id); err != nil {
			logger.Errorf("error marking booking %s pending: %v", booking.ID, err)
			return err
		}
	}

	return nil
}

// ReleaseBookingsBySlurmJobID releases every booking for a job, used both by
// the explicit release endpoint and the agent's grace-time sweep once a
// job's grace time elapses. Each booking is transitioned to EXPIRED before
// its row is deleted, so the state machine's terminal transition is
// observable to anything inspecting the row mid-release.
func (uc *UseCase) ReleaseBookingsBySlurmJobID(ctx context.Context, clusterID uuid.UUID, slurmJobID string) error {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "command", "command.release_bookings")
	defer span.End()

	bookings, err := uc.BookingRepo.FindBySlurmJobID(ctx, clusterID, slurmJobID)
	if err != nil {
		logger.Errorf("error resolving bookings for slurm job %s: %v", slurmJobID, err)
		return err
	}

	for _, booking := range bookings {
		if booking.State == mmodel.BookingStateExpired || booking.State == mmodel.BookingStateReleased {
			continue
		}

		id, err := uuid.Parse(booking.ID)
		if err != nil {
			return lmerrors.InternalServerError{Title: "Invalid Booking ID", Message: "stored booking id is not a valid UUID", Err: err}
		}

		if err := uc.BookingRepo.MarkExpired(ctx, id); err != nil {
			logger.Errorf("error marking booking %s expired: %v", booking.ID, err)
			return err
		}
	}

	if err := uc.BookingRepo.DeleteBySlurmJobID(ctx, clusterID, slurmJobID); err != nil {
		logger.Errorf("error releasing bookings for slurm job %s: %v", slurmJobID, err)
		return err
	}

	return nil
}
