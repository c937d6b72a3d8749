package mmodel

import "time"

// LicenseServer is one vendor license-server endpoint belonging to a
// Configuration. A Configuration can list several for failover, queried by
// the agent's adapter in listed order until one answers.
type LicenseServer struct {
	ID              string    `json:"id"`
	ConfigurationID string    `json:"configurationId"`
	Host            string    `json:"host"`
	Port            int       `json:"port"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CreateLicenseServerInput is the create-schema for LicenseServer.
type CreateLicenseServerInput struct {
	ConfigurationID string `json:"configurationId" validate:"required,uuid"`
	Host            string `json:"host" validate:"required,max=256"`
	Port            int    `json:"port" validate:"required,gte=1,lte=65535"`
}

// UpdateLicenseServerInput is the partial-update schema for LicenseServer.
type UpdateLicenseServerInput struct {
	Host string `json:"host" validate:"omitempty,max=256"`
	Port int    `json:"port" validate:"omitempty,gte=1,lte=65535"`
}
