// Package cluster defines the Cluster entity's persistence model and
// repository contract.
package cluster

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

// PostgreSQLModel represents Cluster in SQL context.
type PostgreSQLModel struct {
	ID        string
	Name      string
	ClientID  string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt sql.NullTime
}

// ToEntity converts a PostgreSQLModel to its wire-level Cluster.
func (m *PostgreSQLModel) ToEntity() *mmodel.Cluster {
	return &mmodel.Cluster{
		ID:        m.ID,
		Name:      m.Name,
		ClientID:  m.ClientID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromEntity converts a Cluster to its PostgreSQLModel, minting a fresh ID.
func (m *PostgreSQLModel) FromEntity(c *mmodel.Cluster) {
	*m = PostgreSQLModel{
		ID:        uuid.New().String(),
		Name:      c.Name,
		ClientID:  c.ClientID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// Repository provides persistence operations for Cluster.
type Repository interface {
	Create(ctx context.Context, c *mmodel.Cluster) (*mmodel.Cluster, error)
	Update(ctx context.Context, id uuid.UUID, c *mmodel.Cluster) (*mmodel.Cluster, error)
	Find(ctx context.Context, id uuid.UUID) (*mmodel.Cluster, error)
	FindByClientID(ctx context.Context, clientID string) (*mmodel.Cluster, error)
	FindAll(ctx context.Context, limit, page int) ([]*mmodel.Cluster, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
