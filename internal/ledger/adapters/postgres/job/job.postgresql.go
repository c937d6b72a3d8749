// Package job implements the Postgres-backed job.Repository.
package job

import (
	"context"
	"database/sql"
	"errors"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/niklasmelin/license-manager/internal/ledger/domain/job"
	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mpostgres"
)

const entityType = "Job"

// PostgreSQLRepository is a Postgres-backed implementation of domain.Repository.
type PostgreSQLRepository struct {
	connection *mpostgres.Connection
	tableName  string
}

// NewPostgreSQLRepository builds a PostgreSQLRepository over the given connection.
func NewPostgreSQLRepository(pc *mpostgres.Connection) *PostgreSQLRepository {
	return &PostgreSQLRepository{connection: pc, tableName: "job"}
}

// FindOrCreateBySlurmJobID returns the existing Job for (clusterID,
// slurmJobID), or creates one. The unique index on (cluster_id,
// slurm_job_id) resolves the create/lookup race: on a unique violation, we
// re-read the row the competing insert just committed.
func (r *PostgreSQLRepository) FindOrCreateBySlurmJobID(ctx context.Context, input *mmodel.CreateJobInput) (*mmodel.Job, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	clusterID, err := uuid.Parse(input.ClusterID)
	if err != nil {
		return nil, lmerrors.ValidationError{EntityType: entityType, Message: "cluster_id must be a valid UUID"}
	}

	existing, err := r.FindBySlurmJobID(ctx, clusterID, input.SlurmJobID)
	if err == nil {
		return existing, nil
	}

	var notFound lmerrors.EntityNotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	record := &domain.PostgreSQLModel{}
	record.FromEntity(&mmodel.Job{
		SlurmJobID: input.SlurmJobID,
		ClusterID:  input.ClusterID,
		Username:   input.Username,
		LeadHost:   input.LeadHost,
	})

	query, args, err := sqrl.Insert(r.tableName).
		Columns("id", "slurm_job_id", "cluster_id", "username", "lead_host", "created_at", "updated_at").
		Values(record.ID, record.SlurmJobID, record.ClusterID, record.Username, record.LeadHost, record.CreatedAt, record.UpdatedAt).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return r.FindBySlurmJobID(ctx, clusterID, input.SlurmJobID)
			}

			return nil, lmerrors.MapPgError(entityType, pgErr)
		}

		return nil, err
	}

	return record.ToEntity(), nil
}

// FindBySlurmJobID retrieves a Job by its (clusterID, slurmJobID) key.
func (r *PostgreSQLRepository) FindBySlurmJobID(ctx context.Context, clusterID uuid.UUID, slurmJobID string) (*mmodel.Job, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := sqrl.Select("id", "slurm_job_id", "cluster_id", "username", "lead_host", "created_at", "updated_at").
		From(r.tableName).
		Where(sqrl.Eq{"cluster_id": clusterID.String(), "slurm_job_id": slurmJobID}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	record := &domain.PostgreSQLModel{}

	row := db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&record.ID, &record.SlurmJobID, &record.ClusterID, &record.Username, &record.LeadHost, &record.CreatedAt, &record.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lmerrors.EntityNotFoundError{EntityType: entityType}
		}

		return nil, err
	}

	return record.ToEntity(), nil
}

// Delete removes a Job row. Jobs have no soft-delete: once its bookings are
// released there's nothing left to preserve.
func (r *PostgreSQLRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx, `DELETE FROM job WHERE id = $1`, id.String())
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
