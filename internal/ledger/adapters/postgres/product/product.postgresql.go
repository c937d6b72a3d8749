// Package product implements the Postgres-backed product.Repository.
package product

import (
	"context"
	"database/sql"
	"errors"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/niklasmelin/license-manager/internal/ledger/domain/product"
	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mpostgres"
)

const entityType = "Product"

// PostgreSQLRepository is a Postgres-backed implementation of domain.Repository.
type PostgreSQLRepository struct {
	connection *mpostgres.Connection
	tableName  string
}

// NewPostgreSQLRepository builds a PostgreSQLRepository over the given connection.
func NewPostgreSQLRepository(pc *mpostgres.Connection) *PostgreSQLRepository {
	return &PostgreSQLRepository{connection: pc, tableName: "product"}
}

// Create inserts a new Product.
func (r *PostgreSQLRepository) Create(ctx context.Context, p *mmodel.Product) (*mmodel.Product, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	record := &domain.PostgreSQLModel{}
	record.FromEntity(p)

	query, args, err := sqrl.Insert(r.tableName).
		Columns("id", "name", "created_at", "updated_at").
		Values(record.ID, record.Name, record.CreatedAt, record.UpdatedAt).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return nil, lmerrors.MapPgError(entityType, pgErr)
		}

		return nil, err
	}

	return record.ToEntity(), nil
}

// Update applies a partial update to a Product.
func (r *PostgreSQLRepository) Update(ctx context.Context, id uuid.UUID, p *mmodel.Product) (*mmodel.Product, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	builder := sqrl.Update(r.tableName).
		Set("updated_at", sqrl.Expr("now()")).
		Where(sqrl.Eq{"id": id.String(), "deleted_at": nil}).
		PlaceholderFormat(sqrl.Dollar)

	if p.Name != "" {
		builder = builder.Set("name", p.Name)
	}

	query, args, err := builder.Suffix("RETURNING id, name, created_at, updated_at").ToSql()
	if err != nil {
		return nil, err
	}

	record := &domain.PostgreSQLModel{}

	row := db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&record.ID, &record.Name, &record.CreatedAt, &record.UpdatedAt); err != nil {
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

// Find retrieves a Product by id.
func (r *PostgreSQLRepository) Find(ctx context.Context, id uuid.UUID) (*mmodel.Product, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := sqrl.Select("id", "name", "created_at", "updated_at").
		From(r.tableName).
		Where(sqrl.Eq{"id": id.String(), "deleted_at": nil}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	record := &domain.PostgreSQLModel{}

	row := db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&record.ID, &record.Name, &record.CreatedAt, &record.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lmerrors.EntityNotFoundError{EntityType: entityType}
		}

		return nil, err
	}

	return record.ToEntity(), nil
}

// FindByName retrieves a Product by its unique name.
func (r *PostgreSQLRepository) FindByName(ctx context.Context, name string) (*mmodel.Product, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := sqrl.Select("id", "name", "created_at", "updated_at").
		From(r.tableName).
		Where(sqrl.Eq{"name": name, "deleted_at": nil}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	record := &domain.PostgreSQLModel{}

	row := db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&record.ID, &record.Name, &record.CreatedAt, &record.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lmerrors.EntityNotFoundError{EntityType: entityType}
		}

		return nil, err
	}

	return record.ToEntity(), nil
}

// FindAll retrieves a page of Products ordered by creation time.
func (r *PostgreSQLRepository) FindAll(ctx context.Context, limit, page int) ([]*mmodel.Product, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	query, args, err := sqrl.Select("id", "name", "created_at", "updated_at").
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

	var products []*mmodel.Product

	for rows.Next() {
		var record domain.PostgreSQLModel

		if err := rows.Scan(&record.ID, &record.Name, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, err
		}

		products = append(products, record.ToEntity())
	}

	return products, rows.Err()
}

// Delete soft-deletes a Product.
func (r *PostgreSQLRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return err
	}

	query, args, err := sqrl.Update(r.tableName).
		Set("deleted_at", sqrl.Expr("now()")).
		Where(sqrl.Eq{"id": id.String(), "deleted_at": nil}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx, query, args...)
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

	return nil
}
