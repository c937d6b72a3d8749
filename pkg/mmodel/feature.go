package mmodel

import "time"

// Feature is one licensed feature of a Product, tracked against the
// Configuration whose vendor adapter reports its usage. Its "product.feature"
// key is how the agent and the reconcile report address it without a
// database round-trip.
type Feature struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ProductID       string    `json:"productId"`
	ConfigurationID string    `json:"configurationId"`
	Reserved        int       `json:"reserved"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ProductFeature returns the "product.feature" composite key used on the
// wire by reconcile reports and booking requests.
func (f Feature) ProductFeature(productName string) string {
	return productName + "." + f.Name
}

// ReportTarget is one feature an agent is responsible for reporting,
// identified by the wire-level "product.feature" key it must use when
// submitting its reconcile report.
type ReportTarget struct {
	FeatureID      string `json:"featureId"`
	ProductFeature string `json:"productFeature"`
}

// CreateFeatureInput is the create-schema for Feature. Creating a Feature
// atomically creates its zeroed Inventory row in the same transaction.
type CreateFeatureInput struct {
	Name            string `json:"name" validate:"required,max=256"`
	ProductID       string `json:"productId" validate:"required,uuid"`
	ConfigurationID string `json:"configurationId" validate:"required,uuid"`
	Reserved        int    `json:"reserved" validate:"gte=0"`
}

// UpdateFeatureInput is the partial-update schema for Feature.
type UpdateFeatureInput struct {
	Name     string `json:"name" validate:"omitempty,max=256"`
	Reserved *int   `json:"reserved" validate:"omitempty,gte=0"`
}
