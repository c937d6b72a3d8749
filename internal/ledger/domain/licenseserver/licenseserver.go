// Package licenseserver defines the LicenseServer entity's persistence model
// and repository contract.
package licenseserver

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

// PostgreSQLModel represents LicenseServer in SQL context.
type PostgreSQLModel struct {
	ID              string
	ConfigurationID string
	Host            string
	Port            int
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       sql.NullTime
}

// ToEntity converts a PostgreSQLModel to its wire-level LicenseServer.
func (m *PostgreSQLModel) ToEntity() *mmodel.LicenseServer {
	return &mmodel.LicenseServer{
		ID:              m.ID,
		ConfigurationID: m.ConfigurationID,
		Host:            m.Host,
		Port:            m.Port,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromEntity converts a LicenseServer to its PostgreSQLModel, minting a fresh ID.
func (m *PostgreSQLModel) FromEntity(s *mmodel.LicenseServer) {
	*m = PostgreSQLModel{
		ID:              uuid.New().String(),
		ConfigurationID: s.ConfigurationID,
		Host:            s.Host,
		Port:            s.Port,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// Repository provides persistence operations for LicenseServer.
type Repository interface {
	Create(ctx context.Context, s *mmodel.LicenseServer) (*mmodel.LicenseServer, error)
	Update(ctx context.Context, id uuid.UUID, s *mmodel.LicenseServer) (*mmodel.LicenseServer, error)
	Find(ctx context.Context, id uuid.UUID) (*mmodel.LicenseServer, error)
	FindByConfigurationID(ctx context.Context, configurationID uuid.UUID) ([]*mmodel.LicenseServer, error)
	FindAll(ctx context.Context, limit, page int) ([]*mmodel.LicenseServer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
