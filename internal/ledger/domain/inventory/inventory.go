// Package inventory defines the Inventory entity's persistence model and
// repository contract.
package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

// PostgreSQLModel represents Inventory in SQL context. Inventory is never
// soft-deleted: it lives and dies with its Feature.
type PostgreSQLModel struct {
	ID        string
	FeatureID string
	Total     int
	Used      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToEntity converts a PostgreSQLModel to its wire-level Inventory.
func (m *PostgreSQLModel) ToEntity() *mmodel.Inventory {
	return &mmodel.Inventory{
		ID:        m.ID,
		FeatureID: m.FeatureID,
		Total:     m.Total,
		Used:      m.Used,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ReconcileItem is one feature's reported total/used, resolved to its
// database id, queued for a ReconcileBatch call.
type ReconcileItem struct {
	FeatureID uuid.UUID
	Total     int
	Used      int
}

// ReconcileOutcome is the post-update row for one ReconcileItem, plus
// whether its reported used had to be clamped to total.
type ReconcileOutcome struct {
	Inventory *mmodel.Inventory
	Clamped   bool
}

// Repository provides persistence operations for Inventory. Booking
// admission locks and reads this row through booking.Repository.CreateBatch
// rather than through here; this interface covers plain reads and the
// reconcile command's unconditional SET of total/used.
type Repository interface {
	FindByFeatureID(ctx context.Context, featureID uuid.UUID) (*mmodel.Inventory, error)
	// ReconcileBatch overwrites total/used for every item in a single
	// transaction, so a reader never observes a PATCH applied to some
	// features but not others. An item whose reported used would exceed
	// total is clamped to total, reported back via ReconcileOutcome.Clamped.
	ReconcileBatch(ctx context.Context, items []ReconcileItem) ([]ReconcileOutcome, error)
}
