// Package job defines the Job entity's persistence model and repository
// contract.
package job

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

// PostgreSQLModel represents Job in SQL context.
type PostgreSQLModel struct {
	ID         string
	SlurmJobID string
	ClusterID  string
	Username   string
	LeadHost   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ToEntity converts a PostgreSQLModel to its wire-level Job.
func (m *PostgreSQLModel) ToEntity() *mmodel.Job {
	return &mmodel.Job{
		ID:         m.ID,
		SlurmJobID: m.SlurmJobID,
		ClusterID:  m.ClusterID,
		Username:   m.Username,
		LeadHost:   m.LeadHost,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// FromEntity converts a Job to its PostgreSQLModel, minting a fresh ID.
func (m *PostgreSQLModel) FromEntity(j *mmodel.Job) {
	*m = PostgreSQLModel{
		ID:         uuid.New().String(),
		SlurmJobID: j.SlurmJobID,
		ClusterID:  j.ClusterID,
		Username:   j.Username,
		LeadHost:   j.LeadHost,
		CreatedAt:  j.CreatedAt,
		UpdatedAt:  j.UpdatedAt,
	}
}

// Repository provides persistence operations for Job.
type Repository interface {
	// FindOrCreateBySlurmJobID returns the existing Job for (clusterID,
	// slurmJobID) or creates one, so the first booking request for a job
	// implicitly registers it.
	FindOrCreateBySlurmJobID(ctx context.Context, input *mmodel.CreateJobInput) (*mmodel.Job, error)
	FindBySlurmJobID(ctx context.Context, clusterID uuid.UUID, slurmJobID string) (*mmodel.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
