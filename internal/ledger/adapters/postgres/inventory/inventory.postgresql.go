// Package inventory implements the Postgres-backed inventory.Repository.
package inventory

import (
	"context"
	"database/sql"
	"errors"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	domain "github.com/niklasmelin/license-manager/internal/ledger/domain/inventory"
	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mpostgres"
)

const entityType = "Inventory"

// PostgreSQLRepository is a Postgres-backed implementation of domain.Repository.
type PostgreSQLRepository struct {
	connection *mpostgres.Connection
	tableName  string
}

// NewPostgreSQLRepository builds a PostgreSQLRepository over the given connection.
func NewPostgreSQLRepository(pc *mpostgres.Connection) *PostgreSQLRepository {
	return &PostgreSQLRepository{connection: pc, tableName: "inventory"}
}

// FindByFeatureID retrieves the Inventory row for a Feature.
func (r *PostgreSQLRepository) FindByFeatureID(ctx context.Context, featureID uuid.UUID) (*mmodel.Inventory, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := sqrl.Select("id", "feature_id", "total", "used", "created_at", "updated_at").
		From(r.tableName).
		Where(sqrl.Eq{"feature_id": featureID.String()}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	record := &domain.PostgreSQLModel{}

	row := db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&record.ID, &record.FeatureID, &record.Total, &record.Used, &record.CreatedAt, &record.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lmerrors.EntityNotFoundError{EntityType: entityType}
		}

		return nil, err
	}

	return record.ToEntity(), nil
}

// ReconcileBatch overwrites total/used for every item in a single
// transaction, so the used+reserved≤total invariant is never visible torn
// mid-PATCH to a concurrent reader and a failure partway through leaves no
// feature updated at all.
func (r *PostgreSQLRepository) ReconcileBatch(ctx context.Context, items []domain.ReconcileItem) ([]domain.ReconcileOutcome, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() //nolint:errcheck

	outcomes := make([]domain.ReconcileOutcome, 0, len(items))

	for _, item := range items {
		used := item.Used

		clamped := used > item.Total
		if clamped {
			used = item.Total
		}

		query, args, err := sqrl.Update(r.tableName).
			Set("total", item.Total).
			Set("used", used).
			Set("updated_at", sqrl.Expr("now()")).
			Where(sqrl.Eq{"feature_id": item.FeatureID.String()}).
			PlaceholderFormat(sqrl.Dollar).
			Suffix("RETURNING id, feature_id, total, used, created_at, updated_at").
			ToSql()
		if err != nil {
			return nil, err
		}

		record := &domain.PostgreSQLModel{}

		row := tx.QueryRowContext(ctx, query, args...)
		if err := row.Scan(&record.ID, &record.FeatureID, &record.Total, &record.Used, &record.CreatedAt, &record.UpdatedAt); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, lmerrors.EntityNotFoundError{EntityType: entityType}
			}

			return nil, err
		}

		outcomes = append(outcomes, domain.ReconcileOutcome{Inventory: record.ToEntity(), Clamped: clamped})
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return outcomes, nil
}
