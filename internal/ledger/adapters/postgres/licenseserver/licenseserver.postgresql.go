// Package licenseserver implements the Postgres-backed licenseserver.Repository.
package licenseserver

import (
	"context"
	"database/sql"
	"errors"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/niklasmelin/license-manager/internal/ledger/domain/licenseserver"
	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mpostgres"
)

const entityType = "LicenseServer"

// PostgreSQLRepository is a Postgres-backed implementation of domain.Repository.
type PostgreSQLRepository struct {
	connection *mpostgres.Connection
	tableName  string
}

// NewPostgreSQLRepository builds a PostgreSQLRepository over the given connection.
func NewPostgreSQLRepository(pc *mpostgres.Connection) *PostgreSQLRepository {
	return &PostgreSQLRepository{connection: pc, tableName: "license_server"}
}

// Create inserts a new LicenseServer.
func (r *PostgreSQLRepository) Create(ctx context.Context, s *mmodel.LicenseServer) (*mmodel.LicenseServer, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	record := &domain.PostgreSQLModel{}
	record.FromEntity(s)

	query, args, err := sqrl.Insert(r.tableName).
		Columns("id", "configuration_id", "host", "port", "created_at", "updated_at").
		Values(record.ID, record.ConfigurationID, record.Host, record.Port, record.CreatedAt, record.UpdatedAt).
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

// Update applies a partial update to a LicenseServer.
func (r *PostgreSQLRepository) Update(ctx context.Context, id uuid.UUID, s *mmodel.LicenseServer) (*mmodel.LicenseServer, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	builder := sqrl.Update(r.tableName).
		Set("updated_at", sqrl.Expr("now()")).
		Where(sqrl.Eq{"id": id.String(), "deleted_at": nil}).
		PlaceholderFormat(sqrl.Dollar)

	if s.Host != "" {
		builder = builder.Set("host", s.Host)
	}

	if s.Port != 0 {
		builder = builder.Set("port", s.Port)
	}

	query, args, err := builder.Suffix("RETURNING id, configuration_id, host, port, created_at, updated_at").ToSql()
	if err != nil {
		return nil, err
	}

	record := &domain.PostgreSQLModel{}

	row := db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&record.ID, &record.ConfigurationID, &record.Host, &record.Port, &record.CreatedAt, &record.UpdatedAt); err != nil {
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

// Find retrieves a LicenseServer by id.
func (r *PostgreSQLRepository) Find(ctx context.Context, id uuid.UUID) (*mmodel.LicenseServer, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := sqrl.Select("id", "configuration_id", "host", "port", "created_at", "updated_at").
		From(r.tableName).
		Where(sqrl.Eq{"id": id.String(), "deleted_at": nil}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	record := &domain.PostgreSQLModel{}

	row := db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&record.ID, &record.ConfigurationID, &record.Host, &record.Port, &record.CreatedAt, &record.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lmerrors.EntityNotFoundError{EntityType: entityType}
		}

		return nil, err
	}

	return record.ToEntity(), nil
}

// FindByConfigurationID retrieves every LicenseServer belonging to a Configuration.
func (r *PostgreSQLRepository) FindByConfigurationID(ctx context.Context, configurationID uuid.UUID) ([]*mmodel.LicenseServer, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := sqrl.Select("id", "configuration_id", "host", "port", "created_at", "updated_at").
		From(r.tableName).
		Where(sqrl.Eq{"configuration_id": configurationID.String(), "deleted_at": nil}).
		OrderBy("created_at ASC").
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

	var servers []*mmodel.LicenseServer

	for rows.Next() {
		var record domain.PostgreSQLModel

		if err := rows.Scan(&record.ID, &record.ConfigurationID, &record.Host, &record.Port, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, err
		}

		servers = append(servers, record.ToEntity())
	}

	return servers, rows.Err()
}

// FindAll retrieves a page of LicenseServers ordered by creation time.
func (r *PostgreSQLRepository) FindAll(ctx context.Context, limit, page int) ([]*mmodel.LicenseServer, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	query, args, err := sqrl.Select("id", "configuration_id", "host", "port", "created_at", "updated_at").
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

	var servers []*mmodel.LicenseServer

	for rows.Next() {
		var record domain.PostgreSQLModel

		if err := rows.Scan(&record.ID, &record.ConfigurationID, &record.Host, &record.Port, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, err
		}

		servers = append(servers, record.ToEntity())
	}

	return servers, rows.Err()
}

// Delete soft-deletes a LicenseServer.
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
