package mmodel

import "time"

// ConfigurationType enumerates the vendor adapters a Configuration can select.
type ConfigurationType string

const (
	ConfigurationTypeFlexLM    ConfigurationType = "flexlm"
	ConfigurationTypeRLM       ConfigurationType = "rlm"
	ConfigurationTypeLSDyna    ConfigurationType = "lsdyna"
	ConfigurationTypeLMX       ConfigurationType = "lmx"
	ConfigurationTypeOLicense  ConfigurationType = "olicense"
)

// Configuration groups one or more LicenseServer endpoints under a grace time,
// owned by exactly one Cluster.
type Configuration struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	ClusterID  string            `json:"clusterId"`
	Type       ConfigurationType `json:"type"`
	GraceTime  int               `json:"graceTime"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// CreateConfigurationInput is the create-schema for Configuration.
type CreateConfigurationInput struct {
	Name      string            `json:"name" validate:"required,max=256"`
	ClusterID string            `json:"clusterId" validate:"required,uuid"`
	Type      ConfigurationType `json:"type" validate:"required,oneof=flexlm rlm lsdyna lmx olicense"`
	GraceTime int               `json:"graceTime" validate:"gte=0"`
}

// UpdateConfigurationInput is the partial-update schema for Configuration.
type UpdateConfigurationInput struct {
	Name      string            `json:"name" validate:"omitempty,max=256"`
	Type      ConfigurationType `json:"type" validate:"omitempty,oneof=flexlm rlm lsdyna lmx olicense"`
	GraceTime *int              `json:"graceTime" validate:"omitempty,gte=0"`
}
