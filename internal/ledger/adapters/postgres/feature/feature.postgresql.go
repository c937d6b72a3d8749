// Package feature implements the Postgres-backed feature.Repository.
package feature

import (
	"context"
	"database/sql"
	"errors"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/niklasmelin/license-manager/internal/ledger/domain/feature"
	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mpostgres"
)

const entityType = "Feature"

// PostgreSQLRepository is a Postgres-backed implementation of domain.Repository.
type PostgreSQLRepository struct {
	connection *mpostgres.Connection
	tableName  string
}

// NewPostgreSQLRepository builds a PostgreSQLRepository over the given connection.
func NewPostgreSQLRepository(pc *mpostgres.Connection) *PostgreSQLRepository {
	return &PostgreSQLRepository{connection: pc, tableName: "feature"}
}

// CreateWithInventory inserts a Feature and its zeroed Inventory row in a
// single transaction: a Feature never exists without tracked capacity.
func (r *PostgreSQLRepository) CreateWithInventory(ctx context.Context, f *mmodel.Feature) (*mmodel.Feature, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() //nolint:errcheck

	record := &domain.PostgreSQLModel{}
	record.FromEntity(f)

	featureQuery, featureArgs, err := sqrl.Insert(r.tableName).
		Columns("id", "name", "product_id", "configuration_id", "reserved", "created_at", "updated_at").
		Values(record.ID, record.Name, record.ProductID, record.ConfigurationID, record.Reserved, record.CreatedAt, record.UpdatedAt).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, featureQuery, featureArgs...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return nil, lmerrors.MapPgError(entityType, pgErr)
		}

		return nil, err
	}

	inventoryQuery, inventoryArgs, err := sqrl.Insert("inventory").
		Columns("id", "feature_id", "total", "used", "created_at", "updated_at").
		Values(uuid.New().String(), record.ID, 0, 0, record.CreatedAt, record.UpdatedAt).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, inventoryQuery, inventoryArgs...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return nil, lmerrors.MapPgError("Inventory", pgErr)
		}

		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return record.ToEntity(), nil
}

// Update applies a partial update to a Feature.
func (r *PostgreSQLRepository) Update(ctx context.Context, id uuid.UUID, f *mmodel.Feature) (*mmodel.Feature, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	builder := sqrl.Update(r.tableName).
		Set("updated_at", sqrl.Expr("now()")).
		Where(sqrl.Eq{"id": id.String(), "deleted_at": nil}).
		PlaceholderFormat(sqrl.Dollar)

	if f.Name != "" {
		builder = builder.Set("name", f.Name)
	}

	if f.Reserved != 0 {
		builder = builder.Set("reserved", f.Reserved)
	}

	query, args, err := builder.Suffix(
		"RETURNING id, name, product_id, configuration_id, reserved, created_at, updated_at").ToSql()
	if err != nil {
		return nil, err
	}

	record := &domain.PostgreSQLModel{}

	row := db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&record.ID, &record.Name, &record.ProductID, &record.ConfigurationID, &record.Reserved, &record.CreatedAt, &record.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lmerrors.EntityNotFoundError{EntityType: entityType}
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return nil, lmerrors.MapPgError(entityType, pgErr)
		}

		return nil, err
	}

	return record.ToEntity(), nil
}

// Find retrieves a Feature by id.
func (r *PostgreSQLRepository) Find(ctx context.Context, id uuid.UUID) (*mmodel.Feature, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := sqrl.Select("id", "name", "product_id", "configuration_id", "reserved", "created_at", "updated_at").
		From(r.tableName).
		Where(sqrl.Eq{"id": id.String(), "deleted_at": nil}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	record := &domain.PostgreSQLModel{}

	row := db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&record.ID, &record.Name, &record.ProductID, &record.ConfigurationID, &record.Reserved, &record.CreatedAt, &record.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lmerrors.EntityNotFoundError{EntityType: entityType}
		}

		return nil, err
	}

	return record.ToEntity(), nil
}

// FindByProductFeature resolves a "product.feature" key to its Feature,
// joining through Product on name.
func (r *PostgreSQLRepository) FindByProductFeature(ctx context.Context, productFeature string) (*mmodel.Feature, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	productName, featureName, err := splitProductFeature(productFeature)
	if err != nil {
		return nil, err
	}

	query, args, err := sqrl.Select(
		"feature.id", "feature.name", "feature.product_id", "feature.configuration_id",
		"feature.reserved", "feature.created_at", "feature.updated_at").
		From(r.tableName).
		Join("product ON product.id = feature.product_id").
		Where(sqrl.Eq{
			"product.name": productName, "feature.name": featureName,
			"feature.deleted_at": nil, "product.deleted_at": nil,
		}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	record := &domain.PostgreSQLModel{}

	row := db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&record.ID, &record.Name, &record.ProductID, &record.ConfigurationID, &record.Reserved, &record.CreatedAt, &record.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lmerrors.EntityNotFoundError{EntityType: entityType}
		}

		return nil, err
	}

	return record.ToEntity(), nil
}

// FindAll retrieves a page of Features ordered by creation time.
func (r *PostgreSQLRepository) FindAll(ctx context.Context, limit, page int) ([]*mmodel.Feature, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	query, args, err := sqrl.Select("id", "name", "product_id", "configuration_id", "reserved", "created_at", "updated_at").
		From(r.tableName).
		Where(sqrl.Eq{"deleted_at": nil}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var features []*mmodel.Feature

	for rows.Next() {
		var record domain.PostgreSQLModel

		if err := rows.Scan(&record.ID, &record.Name, &record.ProductID, &record.ConfigurationID, &record.Reserved, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, err
		}

		features = append(features, record.ToEntity())
	}

	return features, rows.Err()
}

// FindByConfigurationID lists every Feature owned by a Configuration.
func (r *PostgreSQLRepository) FindByConfigurationID(ctx context.Context, configurationID uuid.UUID) ([]*mmodel.Feature, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := sqrl.Select("id", "name", "product_id", "configuration_id", "reserved", "created_at", "updated_at").
		From(r.tableName).
		Where(sqrl.Eq{"configuration_id": configurationID.String(), "deleted_at": nil}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var features []*mmodel.Feature

	for rows.Next() {
		var record domain.PostgreSQLModel

		if err := rows.Scan(&record.ID, &record.Name, &record.ProductID, &record.ConfigurationID, &record.Reserved, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, err
		}

		features = append(features, record.ToEntity())
	}

	return features, rows.Err()
}

// DeleteCascade removes a Feature, its Inventory row, and any Bookings
// against it in one transaction. This is a hard delete: Inventory and
// Booking rows are never orphaned against a soft-deleted Feature.
func (r *PostgreSQLRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM booking WHERE feature_id = $1`, id.String()); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM inventory WHERE feature_id = $1`, id.String()); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM feature WHERE id = $1`, id.String())
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return lmerrors.EntityNotFoundError{EntityType: entityType}
	}

	return tx.Commit()
}

func splitProductFeature(productFeature string) (product, feature string, err error) {
	for i := 0; i < len(productFeature); i++ {
		if productFeature[i] == '.' {
			return productFeature[:i], productFeature[i+1:], nil
		}
	}

	return "", "", lmerrors.ValidationError{
		EntityType: entityType,
		Title:      "Invalid product_feature",
		Message:    "product_feature must be formatted as \"<product>.<feature>\".",
	}
}
