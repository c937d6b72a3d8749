// Package configuration implements the Postgres-backed configuration.Repository.
package configuration

import (
	"context"
	"database/sql"
	"errors"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/niklasmelin/license-manager/internal/ledger/domain/configuration"
	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mpostgres"
)

const entityType = "Configuration"

// PostgreSQLRepository is a Postgres-backed implementation of domain.Repository.
type PostgreSQLRepository struct {
	connection *mpostgres.Connection
	tableName  string
}

// NewPostgreSQLRepository builds a PostgreSQLRepository over the given connection.
func NewPostgreSQLRepository(pc *mpostgres.Connection) *PostgreSQLRepository {
	return &PostgreSQLRepository{connection: pc, tableName: "configuration"}
}

// Create inserts a new Configuration.
func (r *PostgreSQLRepository) Create(ctx context.Context, c *mmodel.Configuration) (*mmodel.Configuration, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	record := &domain.PostgreSQLModel{}
	record.FromEntity(c)

	query, args, err := sqrl.Insert(r.tableName).
		Columns("id", "name", "cluster_id", "type", "grace_time", "created_at", "updated_at").
		Values(record.ID, record.Name, record.ClusterID, record.Type, record.GraceTime, record.CreatedAt, record.UpdatedAt).
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

// Update applies a partial update to a Configuration.
func (r *PostgreSQLRepository) Update(ctx context.Context, id uuid.UUID, c *mmodel.Configuration) (*mmodel.Configuration, error) {
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

	if c.Type != "" {
		builder = builder.Set("type", string(c.Type))
	}

	if c.GraceTime != 0 {
		builder = builder.Set("grace_time", c.GraceTime)
	}

	query, args, err := builder.Suffix("RETURNING id, name, cluster_id, type, grace_time, created_at, updated_at").ToSql()
	if err != nil {
		return nil, err
	}

	record := &domain.PostgreSQLModel{}

	row := db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&record.ID, &record.Name, &record.ClusterID, &record.Type, &record.GraceTime, &record.CreatedAt, &record.UpdatedAt); err != nil {
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

// Find retrieves a Configuration by id.
func (r *PostgreSQLRepository) Find(ctx context.Context, id uuid.UUID) (*mmodel.Configuration, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := sqrl.Select("id", "name", "cluster_id", "type", "grace_time", "created_at", "updated_at").
		From(r.tableName).
		Where(sqrl.Eq{"id": id.String(), "deleted_at": nil}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	record := &domain.PostgreSQLModel{}

	row := db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&record.ID, &record.Name, &record.ClusterID, &record.Type, &record.GraceTime, &record.CreatedAt, &record.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lmerrors.EntityNotFoundError{EntityType: entityType}
		}

		return nil, err
	}

	return record.ToEntity(), nil
}

// FindByClientID retrieves every Configuration belonging to the cluster whose
// client_id matches an agent's azp claim.
func (r *PostgreSQLRepository) FindByClientID(ctx context.Context, clientID string) ([]*mmodel.Configuration, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := sqrl.Select(
		"configuration.id", "configuration.name", "configuration.cluster_id",
		"configuration.type", "configuration.grace_time",
		"configuration.created_at", "configuration.updated_at").
		From(r.tableName).
		Join("cluster ON cluster.id = configuration.cluster_id").
		Where(sqrl.Eq{"cluster.client_id": clientID, "configuration.deleted_at": nil, "cluster.deleted_at": nil}).
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

	var configurations []*mmodel.Configuration

	for rows.Next() {
		var record domain.PostgreSQLModel

		if err := rows.Scan(&record.ID, &record.Name, &record.ClusterID, &record.Type, &record.GraceTime, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, err
		}

		configurations = append(configurations, record.ToEntity())
	}

	return configurations, rows.Err()
}

// FindAll retrieves a page of Configurations ordered by creation time.
func (r *PostgreSQLRepository) FindAll(ctx context.Context, limit, page int) ([]*mmodel.Configuration, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	query, args, err := sqrl.Select("id", "name", "cluster_id", "type", "grace_time", "created_at", "updated_at").
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

	var configurations []*mmodel.Configuration

	for rows.Next() {
		var record domain.PostgreSQLModel

		if err := rows.Scan(&record.ID, &record.Name, &record.ClusterID, &record.Type, &record.GraceTime, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, err
		}

		configurations = append(configurations, record.ToEntity())
	}

	return configurations, rows.Err()
}

// GraceTimes returns every configuration's grace time keyed by id.
func (r *PostgreSQLRepository) GraceTimes(ctx context.Context) (map[string]int, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := sqrl.Select("id", "grace_time").
		From(r.tableName).
		Where(sqrl.Eq{"deleted_at": nil}).
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

	graceTimes := make(map[string]int)

	for rows.Next() {
		var (
			id        string
			graceTime int
		)

		if err := rows.Scan(&id, &graceTime); err != nil {
			return nil, err
		}

		graceTimes[id] = graceTime
	}

	return graceTimes, rows.Err()
}

// Delete soft-deletes a Configuration.
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
