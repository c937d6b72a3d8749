// Package product defines the Product entity's persistence model and
// repository contract.
package product

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

// PostgreSQLModel represents Product in SQL context.
type PostgreSQLModel struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt sql.NullTime
}

// ToEntity converts a PostgreSQLModel to its wire-level Product.
func (m *PostgreSQLModel) ToEntity() *mmodel.Product {
	return &mmodel.Product{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromEntity converts a Product to its PostgreSQLModel, minting a fresh ID.
func (m *PostgreSQLModel) FromEntity(p *mmodel.Product) {
	*m = PostgreSQLModel{
		ID:        uuid.New().String(),
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// Repository provides persistence operations for Product.
type Repository interface {
	Create(ctx context.Context, p *mmodel.Product) (*mmodel.Product, error)
	Update(ctx context.Context, id uuid.UUID, p *mmodel.Product) (*mmodel.Product, error)
	Find(ctx context.Context, id uuid.UUID) (*mmodel.Product, error)
	FindByName(ctx context.Context, name string) (*mmodel.Product, error)
	FindAll(ctx context.Context, limit, page int) ([]*mmodel.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
