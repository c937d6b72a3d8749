// Package booking implements the Postgres-backed booking.Repository.
package booking

import (
	"context"
	"database/sql"
	"errors"

	sqrl "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	domain "github.com/niklasmelin/license-manager/internal/ledger/domain/booking"
	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mpostgres"
)

const entityType = "Booking"

// activeStates are the Booking states that still hold inventory against a
// feature; RELEASED and EXPIRED bookings no longer count.
var activeStates = []string{string(mmodel.BookingStateCreated), string(mmodel.BookingStatePending)}

// PostgreSQLRepository is a Postgres-backed implementation of domain.Repository.
type PostgreSQLRepository struct {
	connection *mpostgres.Connection
	tableName  string
}

// NewPostgreSQLRepository builds a PostgreSQLRepository over the given connection.
func NewPostgreSQLRepository(pc *mpostgres.Connection) *PostgreSQLRepository {
	return &PostgreSQLRepository{connection: pc, tableName: "booking"}
}

// CreateBatch admits every item against its Feature's Inventory in a single
// transaction, locking each distinct feature row (ordered by id, to avoid
// deadlocking against concurrent admissions touching an overlapping set) so
// a concurrent admission can't be admitted against capacity this request has
// already claimed. Any item that would push used+booked+reserved over total
// aborts the whole batch: admission is all-or-nothing.
func (r *PostgreSQLRepository) CreateBatch(ctx context.Context, job *mmodel.Job, items []domain.BookingItem) ([]*mmodel.Booking, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() //nolint:errcheck

	sortFeatureIDs(items)

	bookings := make([]*mmodel.Booking, 0, len(items))

	for _, item := range items {
		var (
			total, used, reserved int
			bookedQuantity         sql.NullInt64
		)

		row := tx.QueryRowContext(ctx, `
			SELECT inventory.total, inventory.used, feature.reserved,
			       COALESCE((
			           SELECT SUM(quantity) FROM booking
			           WHERE booking.feature_id = feature.id AND booking.state = ANY($2)
			       ), 0)
			FROM inventory
			JOIN feature ON feature.id = inventory.feature_id
			WHERE inventory.feature_id = $1
			FOR UPDATE OF inventory`,
			item.FeatureID.String(), pq.Array(activeStates))
		if err := row.Scan(&total, &used, &reserved, &bookedQuantity); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, lmerrors.EntityNotFoundError{EntityType: "Feature", Message: "referenced feature has no tracked inventory"}
			}

			return nil, err
		}

		available := mmodel.Inventory{Total: total, Used: used}.Available(int(bookedQuantity.Int64), reserved)
		if item.Quantity > available {
			return nil, lmerrors.EntityConflictError{
				EntityType: entityType,
				Title:      "Insufficient Capacity",
				Message:    "requested quantity exceeds available capacity for this feature",
			}
		}

		record := &domain.PostgreSQLModel{
			ID:        uuid.New().String(),
			JobID:     job.ID,
			FeatureID: item.FeatureID.String(),
			Quantity:  item.Quantity,
			State:     string(mmodel.BookingStateCreated),
		}

		insertQuery, insertArgs, err := sqrl.Insert(r.tableName).
			Columns("id", "job_id", "feature_id", "quantity", "state", "created_at", "updated_at").
			Values(record.ID, record.JobID, record.FeatureID, record.Quantity, record.State, sqrl.Expr("now()"), sqrl.Expr("now()")).
			PlaceholderFormat(sqrl.Dollar).
			Suffix("RETURNING created_at, updated_at").
			ToSql()
		if err != nil {
			return nil, err
		}

		if err := tx.QueryRowContext(ctx, insertQuery, insertArgs...).Scan(&record.CreatedAt, &record.UpdatedAt); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				return nil, lmerrors.MapPgError(entityType, pgErr)
			}

			return nil, err
		}

		bookings = append(bookings, record.ToEntity())
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return bookings, nil
}

// FindByJobID retrieves every Booking for a Job.
func (r *PostgreSQLRepository) FindByJobID(ctx context.Context, jobID uuid.UUID) ([]*mmodel.Booking, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := sqrl.Select("id", "job_id", "feature_id", "quantity", "state", "created_at", "updated_at").
		From(r.tableName).
		Where(sqrl.Eq{"job_id": jobID.String()}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.scanMany(ctx, db, query, args...)
}

// FindBySlurmJobID retrieves every Booking for a (clusterID, slurmJobID) job.
func (r *PostgreSQLRepository) FindBySlurmJobID(ctx context.Context, clusterID uuid.UUID, slurmJobID string) ([]*mmodel.Booking, error) {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := sqrl.Select(
		"booking.id", "booking.job_id", "booking.feature_id", "booking.quantity",
		"booking.state", "booking.created_at", "booking.updated_at").
		From(r.tableName).
		Join("job ON job.id = booking.job_id").
		Where(sqrl.Eq{"job.cluster_id": clusterID.String(), "job.slurm_job_id": slurmJobID}).
		PlaceholderFormat(sqrl.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.scanMany(ctx, db, query, args...)
}

// DeleteBySlurmJobID releases every Booking for a job by deleting its rows.
func (r *PostgreSQLRepository) DeleteBySlurmJobID(ctx context.Context, clusterID uuid.UUID, slurmJobID string) error {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		DELETE FROM booking USING job
		WHERE booking.job_id = job.id AND job.cluster_id = $1 AND job.slurm_job_id = $2`,
		clusterID.String(), slurmJobID)

	return err
}

// MarkPending transitions a Booking into PENDING, the state a job's
// bookings enter once the agent observes the job in squeue's RUNNING set.
func (r *PostgreSQLRepository) MarkPending(ctx context.Context, id uuid.UUID) error {
	return r.setState(ctx, id, mmodel.BookingStatePending)
}

// MarkExpired transitions a Booking into EXPIRED once its running job's run
// time exceeds the grace time, just before the booking is deleted.
func (r *PostgreSQLRepository) MarkExpired(ctx context.Context, id uuid.UUID) error {
	return r.setState(ctx, id, mmodel.BookingStateExpired)
}

func (r *PostgreSQLRepository) setState(ctx context.Context, id uuid.UUID, state mmodel.BookingState) error {
	db, err := r.connection.GetDB(ctx)
	if err != nil {
		return err
	}

	query, args, err := sqrl.Update(r.tableName).
		Set("state", string(state)).
		Set("updated_at", sqrl.Expr("now()")).
		Where(sqrl.Eq{"id": id.String()}).
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

// queryer is satisfied by both dbresolver.DB and *sql.Tx, letting scanMany
// run the same row-scanning logic inside or outside a transaction.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *PostgreSQLRepository) scanMany(ctx context.Context, db queryer, query string, args ...any) ([]*mmodel.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*mmodel.Booking

	for rows.Next() {
		var record domain.PostgreSQLModel

		if err := rows.Scan(&record.ID, &record.JobID, &record.FeatureID, &record.Quantity, &record.State, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, err
		}

		bookings = append(bookings, record.ToEntity())
	}

	return bookings, rows.Err()
}

// sortFeatureIDs orders booking items by feature id so concurrent admissions
// touching an overlapping feature set always lock rows in the same order.
func sortFeatureIDs(items []domain.BookingItem) {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j-1].FeatureID.String() > items[j].FeatureID.String(); j-- {
			items[j-1], items[j] = items[j], items[j-1]
		}
	}
}
