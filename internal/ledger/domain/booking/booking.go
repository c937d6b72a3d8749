// Package booking defines the Booking entity's persistence model and
// repository contract.
package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

// PostgreSQLModel represents Booking in SQL context.
type PostgreSQLModel struct {
	ID        string
	JobID     string
	FeatureID string
	Quantity  int
	State     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToEntity converts a PostgreSQLModel to its wire-level Booking.
func (m *PostgreSQLModel) ToEntity() *mmodel.Booking {
	return &mmodel.Booking{
		ID:        m.ID,
		JobID:     m.JobID,
		FeatureID: m.FeatureID,
		Quantity:  m.Quantity,
		State:     mmodel.BookingState(m.State),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Repository provides persistence operations for Booking.
type Repository interface {
	// CreateBatch admits every item of a BookingCreateInput against its
	// feature's Inventory in a single transaction: the whole request
	// succeeds or none of it does.
	CreateBatch(ctx context.Context, job *mmodel.Job, items []BookingItem) ([]*mmodel.Booking, error)
	FindByJobID(ctx context.Context, jobID uuid.UUID) ([]*mmodel.Booking, error)
	FindBySlurmJobID(ctx context.Context, clusterID uuid.UUID, slurmJobID string) ([]*mmodel.Booking, error)
	// DeleteBySlurmJobID releases every booking for a job, used both by the
	// explicit DELETE endpoint and the agent's grace-time sweep.
	DeleteBySlurmJobID(ctx context.Context, clusterID uuid.UUID, slurmJobID string) error
	// MarkPending/MarkExpired drive the grace-time state machine.
	MarkPending(ctx context.Context, id uuid.UUID) error
	MarkExpired(ctx context.Context, id uuid.UUID) error
}

// BookingItem is one resolved (featureID, quantity) admission line; the
// command layer resolves product_feature keys to ids before calling
// CreateBatch so the repository never has to.
type BookingItem struct {
	FeatureID uuid.UUID
	Quantity  int
}
