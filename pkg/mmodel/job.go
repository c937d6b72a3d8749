package mmodel

import "time"

// Job records one workload-scheduler job, registered implicitly by its first
// booking request. It exists only so bookings can be grouped and released by
// slurm_job_id without the ledger knowing anything about the scheduler.
type Job struct {
	ID         string    `json:"id"`
	SlurmJobID string    `json:"slurmJobId"`
	ClusterID  string    `json:"clusterId"`
	Username   string    `json:"username"`
	LeadHost   string    `json:"leadHost"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CreateJobInput is the create-schema for Job, submitted implicitly by the
// first booking request for a given slurm_job_id.
type CreateJobInput struct {
	SlurmJobID string `json:"slurmJobId" validate:"required,max=64"`
	ClusterID  string `json:"clusterId" validate:"required,uuid"`
	Username   string `json:"username" validate:"required,max=256"`
	LeadHost   string `json:"leadHost" validate:"required,max=256"`
}
