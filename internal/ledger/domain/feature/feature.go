// Package feature defines the Feature entity's persistence model and
// repository contract.
package feature

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

// PostgreSQLModel represents Feature in SQL context.
type PostgreSQLModel struct {
	ID              string
	Name            string
	ProductID       string
	ConfigurationID string
	Reserved        int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       sql.NullTime
}

// ToEntity converts a PostgreSQLModel to its wire-level Feature.
func (m *PostgreSQLModel) ToEntity() *mmodel.Feature {
	return &mmodel.Feature{
		ID:              m.ID,
		Name:            m.Name,
		ProductID:       m.ProductID,
		ConfigurationID: m.ConfigurationID,
		Reserved:        m.Reserved,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromEntity converts a Feature to its PostgreSQLModel, minting a fresh ID.
func (m *PostgreSQLModel) FromEntity(f *mmodel.Feature) {
	*m = PostgreSQLModel{
		ID:              uuid.New().String(),
		Name:            f.Name,
		ProductID:       f.ProductID,
		ConfigurationID: f.ConfigurationID,
		Reserved:        f.Reserved,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

// Repository provides persistence operations for Feature. Create is
// performed alongside an Inventory row by the command layer in a single
// transaction, so the repository exposes a CreateWithInventory that the
// Postgres adapter implements atomically instead of composing two calls.
type Repository interface {
	CreateWithInventory(ctx context.Context, f *mmodel.Feature) (*mmodel.Feature, error)
	Update(ctx context.Context, id uuid.UUID, f *mmodel.Feature) (*mmodel.Feature, error)
	Find(ctx context.Context, id uuid.UUID) (*mmodel.Feature, error)
	FindByProductFeature(ctx context.Context, productFeature string) (*mmodel.Feature, error)
	FindAll(ctx context.Context, limit, page int) ([]*mmodel.Feature, error)
	// FindByConfigurationID lists every Feature the given Configuration's
	// adapter is responsible for reporting, used by the agent to build its
	// per-cycle report without hardcoding a feature list.
	FindByConfigurationID(ctx context.Context, configurationID uuid.UUID) ([]*mmodel.Feature, error)
	// DeleteCascade removes the Feature along with its Inventory row and any
	// Bookings against it, in one transaction (spec calls this a hard
	// cascade, not a soft delete).
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}
