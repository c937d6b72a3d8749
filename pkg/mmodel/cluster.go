package mmodel

import "time"

// Cluster is a workload-scheduler cluster whose agent authenticates with a
// single client_id (the "azp" claim on its bearer token).
type Cluster struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ClientID  string    `json:"clientId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateClusterInput is the create-schema for Cluster.
type CreateClusterInput struct {
	Name     string `json:"name" validate:"required,max=256"`
	ClientID string `json:"clientId" validate:"required,max=256"`
}

// UpdateClusterInput is the partial-update schema for Cluster.
type UpdateClusterInput struct {
	Name     string `json:"name" validate:"omitempty,max=256"`
	ClientID string `json:"clientId" validate:"omitempty,max=256"`
}
