// Package configuration defines the Configuration entity's persistence model
// and repository contract.
package configuration

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

// PostgreSQLModel represents Configuration in SQL context.
type PostgreSQLModel struct {
	ID        string
	Name      string
	ClusterID string
	Type      string
	GraceTime int
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt sql.NullTime
}

// ToEntity converts a PostgreSQLModel to its wire-level Configuration.
func (m *PostgreSQLModel) ToEntity() *mmodel.Configuration {
	return &mmodel.Configuration{
		ID:        m.ID,
		Name:      m.Name,
		ClusterID: m.ClusterID,
		Type:      mmodel.ConfigurationType(m.Type),
		GraceTime: m.GraceTime,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromEntity converts a Configuration to its PostgreSQLModel, minting a fresh ID.
func (m *PostgreSQLModel) FromEntity(c *mmodel.Configuration) {
	*m = PostgreSQLModel{
		ID:        uuid.New().String(),
		Name:      c.Name,
		ClusterID: c.ClusterID,
		Type:      string(c.Type),
		GraceTime: c.GraceTime,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// Repository provides persistence operations for Configuration.
type Repository interface {
	Create(ctx context.Context, c *mmodel.Configuration) (*mmodel.Configuration, error)
	Update(ctx context.Context, id uuid.UUID, c *mmodel.Configuration) (*mmodel.Configuration, error)
	Find(ctx context.Context, id uuid.UUID) (*mmodel.Configuration, error)
	FindByClientID(ctx context.Context, clientID string) ([]*mmodel.Configuration, error)
	FindAll(ctx context.Context, limit, page int) ([]*mmodel.Configuration, error)
	// GraceTimes returns every configuration's grace time keyed by id, for
	// the agent's grace-time sweep (GET /v1/configurations/grace-times).
	GraceTimes(ctx context.Context) (map[string]int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
