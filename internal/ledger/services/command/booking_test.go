package command

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingdomain "github.com/niklasmelin/license-manager/internal/ledger/domain/booking"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

type fakeJobRepo struct {
	job *mmodel.Job
}

func (r *fakeJobRepo) FindOrCreateBySlurmJobID(_ context.Context, input *mmodel.CreateJobInput) (*mmodel.Job, error) {
	if r.job == nil {
		r.job = &mmodel.Job{
			ID:         uuid.New().String(),
			SlurmJobID: input.SlurmJobID,
			ClusterID:  input.ClusterID,
			Username:   input.Username,
			LeadHost:   input.LeadHost,
		}
	}

	return r.job, nil
}

func (r *fakeJobRepo) FindBySlurmJobID(context.Context, uuid.UUID, string) (*mmodel.Job, error) {
	return r.job, nil
}
func (r *fakeJobRepo) Delete(context.Context, uuid.UUID) error { return nil }

type fakeBookingRepo struct {
	createdFor    []*mmodel.Job
	createdItems  [][]bookingdomain.BookingItem
	deleted       bool
	bySlurmJobID  []*mmodel.Booking
	markedPending []uuid.UUID
	markedExpired []uuid.UUID
}

func (r *fakeBookingRepo) CreateBatch(_ context.Context, job *mmodel.Job, items []bookingdomain.BookingItem) ([]*mmodel.Booking, error) {
	r.createdFor = append(r.createdFor, job)
	r.createdItems = append(r.createdItems, items)

	bookings := make([]*mmodel.Booking, 0, len(items))
	for _, item := range items {
		bookings = append(bookings, &mmodel.Booking{
			ID:        uuid.New().String(),
			JobID:     job.ID,
			FeatureID: item.FeatureID.String(),
			Quantity:  item.Quantity,
			State:     mmodel.BookingStateCreated,
		})
	}

	return bookings, nil
}

func (r *fakeBookingRepo) FindByJobID(context.Context, uuid.UUID) ([]*mmodel.Booking, error) { return nil, nil }
func (r *fakeBookingRepo) FindBySlurmJobID(context.Context, uuid.UUID, string) ([]*mmodel.Booking, error) {
	return r.bySlurmJobID, nil
}

func (r *fakeBookingRepo) DeleteBySlurmJobID(context.Context, uuid.UUID, string) error {
	r.deleted = true
	return nil
}

func (r *fakeBookingRepo) MarkPending(_ context.Context, id uuid.UUID) error {
	r.markedPending = append(r.markedPending, id)
	return nil
}

func (r *fakeBookingRepo) MarkExpired(_ context.Context, id uuid.UUID) error {
	r.markedExpired = append(r.markedExpired, id)
	return nil
}

func TestCreateBookingsResolvesProductFeatureKeysBeforeAdmission(t *testing.T) {
	mechID := uuid.New()

	featureRepo := &fakeFeatureRepo{byProductFeature: map[string]*mmodel.Feature{
		"ansys.mech": {ID: mechID.String()},
	}}
	jobRepo := &fakeJobRepo{}
	bookingRepo := &fakeBookingRepo{}

	uc := &UseCase{FeatureRepo: featureRepo, JobRepo: jobRepo, BookingRepo: bookingRepo}

	bookings, err := uc.CreateBookings(context.Background(), &mmodel.BookingCreateInput{
		SlurmJobID: "12345",
		ClusterID:  "clu-1",
		Username:   "alice",
		LeadHost:   "node01",
		Bookings:   []mmodel.BookingRequestItem{{ProductFeature: "ansys.mech", Quantity: 2}},
	})

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, 2, bookings[0].Quantity)
	require.Len(t, bookingRepo.createdItems, 1)
	assert.Equal(t, mechID, bookingRepo.createdItems[0][0].FeatureID)
}

func TestCreateBookingsFailsWholeRequestOnUnknownFeature(t *testing.T) {
	featureRepo := &fakeFeatureRepo{byProductFeature: map[string]*mmodel.Feature{}}
	jobRepo := &fakeJobRepo{}
	bookingRepo := &fakeBookingRepo{}

	uc := &UseCase{FeatureRepo: featureRepo, JobRepo: jobRepo, BookingRepo: bookingRepo}

	_, err := uc.CreateBookings(context.Background(), &mmodel.BookingCreateInput{
		SlurmJobID: "12345",
		ClusterID:  "clu-1",
		Username:   "alice",
		LeadHost:   "node01",
		Bookings:   []mmodel.BookingRequestItem{{ProductFeature: "ghost.feature", Quantity: 1}},
	})

	assert.Error(t, err)
	assert.Empty(t, bookingRepo.createdItems)
}

func TestReleaseBookingsBySlurmJobID(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	uc := &UseCase{BookingRepo: bookingRepo}

	err := uc.ReleaseBookingsBySlurmJobID(context.Background(), uuid.New(), "12345")

	require.NoError(t, err)
	assert.True(t, bookingRepo.deleted)
}

func TestReleaseBookingsBySlurmJobIDMarksEveryOutstandingBookingExpiredBeforeDeleting(t *testing.T) {
	created := uuid.New()
	pending := uuid.New()
	alreadyExpired := uuid.New()

	bookingRepo := &fakeBookingRepo{bySlurmJobID: []*mmodel.Booking{
		{ID: created.String(), State: mmodel.BookingStateCreated},
		{ID: pending.String(), State: mmodel.BookingStatePending},
		{ID: alreadyExpired.String(), State: mmodel.BookingStateExpired},
	}}
	uc := &UseCase{BookingRepo: bookingRepo}

	err := uc.ReleaseBookingsBySlurmJobID(context.Background(), uuid.New(), "12345")

	require.NoError(t, err)
	assert.True(t, bookingRepo.deleted)
	assert.ElementsMatch(t, []uuid.UUID{created, pending}, bookingRepo.markedExpired)
}

func TestMarkBookingsPendingOnlyTransitionsCreatedBookings(t *testing.T) {
	created := uuid.New()
	alreadyPending := uuid.New()

	bookingRepo := &fakeBookingRepo{bySlurmJobID: []*mmodel.Booking{
		{ID: created.String(), State: mmodel.BookingStateCreated},
		{ID: alreadyPending.String(), State: mmodel.BookingStatePending},
	}}
	uc := &UseCase{BookingRepo: bookingRepo}

	err := uc.MarkBookingsPending(context.Background(), uuid.New(), "12345")

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{created}, bookingRepo.markedPending)
}
