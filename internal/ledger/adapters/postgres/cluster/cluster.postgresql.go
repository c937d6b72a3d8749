// Package cluster implements the Postgres-backed cluster.Repository.
package cluster

import (
	"context"
	"database/sql"
	"errors"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/niklasmelin/license-manager/internal/ledger/domain/cluster"
	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mpostgres"
)

const entityType = "Cluster"

// PostgreSQLRepository is a Postgres-backed implementation of domain.Repository.
type PostgreSQLRepository struct {
	connection *mpostgres.Connection
	tableName  string
}

// NewPostgreSQLRepository builds a PostgreSQLRepository over the given connection.
func NewPostgreSQLRepository(pc *mpostgres.Connection) *PostgreSQLRepository {
	return &PostgreSQLRepository{connection: pc, tableName: "cluster"}
}

// Create inserts a new Cluster.
func (r *PostgreSQLRepository) Create(ctx context.Context, c *mmodel.Cluster) (*mmodel.Cluster, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	record := &domain.PostgreSQLModel{}
	record.FromEntity(c)

	query, args, err := sqrl.Insert(r.tableName).
		Columns("id", "name", "client_id", "created_at", "updated_at").
		Values(record.ID, record.Name, record.ClientID, record.CreatedAt, record.UpdatedAt).
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

// Update applies a partial update to a Cluster.
func (r *PostgreSQLRepository) Update(ctx context.Context, id uuid.UUID, c *mmodel.Cluster) (*mmodel.Cluster, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	builder := sqrl.Update(r.tableName).
		Set("updated_at", sqrl.Expr("now()")).
		Where(sqrl.Eq{"id": id.String(), "deleted_at": nil}).
		PlaceholderFormat(sqrl.Dollar)

	if c.Name != "" {
		builder = builder.Set("name", c.Name)
	}

	if c.ClientID != "" {
		builder = builder.Set("client_id", c.ClientID)
	}

	query, args, err := builder.Suffix("RETURNING id, name, client_id, created_at, updated_at, deleted_at").ToSql()
	if err != nil {
		return nil, err
	}

	record := &domain.PostgreSQLModel{}

	row := db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&record.ID, &record.Name, &record.ClientID, &record.CreatedAt, &record.UpdatedAt, &record.DeletedAt); err != nil {
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

// Find retrieves a Cluster by id.
func (r *PostgreSQLRepository) Find(ctx context.Context, id uuid.UUID) (*mmodel.Cluster, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := sqrl.Select("id", "name", "client_id", "created_at", "updated_at").
		From(r.tableName).
		Where(sqrl.Eq{"id": id.String(), "deleted_at": nil}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	record := &domain.PostgreSQLModel{}

	row := db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&record.ID, &record.Name, &record.ClientID, &record.CreatedAt, &record.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lmerrors.EntityNotFoundError{EntityType: entityType}
		}

		return nil, err
	}

	return record.ToEntity(), nil
}

// FindByClientID retrieves the Cluster whose client_id matches an agent's
// azp claim, returning nil (not an error) when none matches.
func (r *PostgreSQLRepository) FindByClientID(ctx context.Context, clientID string) (*mmodel.Cluster, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := sqrl.Select("id", "name", "client_id", "created_at", "updated_at").
		From(r.tableName).
		Where(sqrl.Eq{"client_id": clientID, "deleted_at": nil}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	record := &domain.PostgreSQLModel{}

	row := db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&record.ID, &record.Name, &record.ClientID, &record.CreatedAt, &record.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return record.ToEntity(), nil
}

// FindAll retrieves a page of Clusters ordered by creation time.
func (r *PostgreSQLRepository) FindAll(ctx context.Context, limit, page int) ([]*mmodel.Cluster, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	query, args, err := sqrl.Select("id", "name", "client_id", "created_at", "updated_at").
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

	var clusters []*mmodel.Cluster

	for rows.Next() {
		var record domain.PostgreSQLModel

		if err := rows.Scan(&record.ID, &record.Name, &record.ClientID, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, err
		}

		clusters = append(clusters, record.ToEntity())
	}

	return clusters, rows.Err()
}

// Delete soft-deletes a Cluster.
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
