// Package query implements every read-path use case exposed by the ledger
// service, aggregating one repository per entity behind a single UseCase.
package query

import (
	booking "github.com/niklasmelin/license-manager/internal/ledger/domain/booking"
	cluster "github.com/niklasmelin/license-manager/internal/ledger/domain/cluster"
	configuration "github.com/niklasmelin/license-manager/internal/ledger/domain/configuration"
	feature "github.com/niklasmelin/license-manager/internal/ledger/domain/feature"
	inventory "github.com/niklasmelin/license-manager/internal/ledger/domain/inventory"
	job "github.com/niklasmelin/license-manager/internal/ledger/domain/job"
	licenseserver "github.com/niklasmelin/license-manager/internal/ledger/domain/licenseserver"
	product "github.com/niklasmelin/license-manager/internal/ledger/domain/product"
)

// UseCase aggregates the repositories every read-path operation needs.
type UseCase struct {
	// ClusterRepo provides an abstraction on top of the cluster data source.
	ClusterRepo cluster.Repository

	// ConfigurationRepo provides an abstraction on top of the configuration data source.
	ConfigurationRepo configuration.Repository

	// LicenseServerRepo provides an abstraction on top of the license server data source.
	LicenseServerRepo licenseserver.Repository

	// ProductRepo provides an abstraction on top of the product data source.
	ProductRepo product.Repository

	// FeatureRepo provides an abstraction on top of the feature data source.
	FeatureRepo feature.Repository

	// InventoryRepo provides an abstraction on top of the inventory data source.
	InventoryRepo inventory.Repository

	// JobRepo provides an abstraction on top of the job data source.
	JobRepo job.Repository

	// BookingRepo provides an abstraction on top of the booking data source.
	BookingRepo booking.Repository
}
