package in

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/niklasmelin/license-manager/internal/ledger/auth"
	"github.com/niklasmelin/license-manager/internal/ledger/services/command"
	"github.com/niklasmelin/license-manager/internal/ledger/services/query"
	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/nethttp"
)

const (
	scopeRead  = "license-manager:read"
	scopeWrite = "license-manager:write"
)

// NewRouter builds the ledger component's HTTP server and wires every route
// to its handler.
func NewRouter(logger mlog.Logger, authMiddleware *auth.Middleware, cmd *command.UseCase, qry *query.UseCase) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return nethttp.WithError(c, err)
		},
	})

	app.Use(cors.New())
	app.Use(nethttp.WithHTTPLogging(logger))

	cluster := &ClusterHandler{Command: cmd, Query: qry}
	configuration := &ConfigurationHandler{Command: cmd, Query: qry}
	licenseServer := &LicenseServerHandler{Command: cmd, Query: qry}
	product := &ProductHandler{Command: cmd, Query: qry}
	feature := &FeatureHandler{Command: cmd, Query: qry}
	booking := &BookingHandler{Command: cmd, Query: qry}
	reconcile := &ReconcileHandler{Command: cmd}

	protect := authMiddleware.ProtectHTTP()

	v1 := app.Group("/v1", protect)

	v1.Post("/clusters", auth.RequireScope(scopeWrite), nethttp.WithBody(new(mmodel.CreateClusterInput), cluster.CreateCluster))
	v1.Patch("/clusters/:id", auth.RequireScope(scopeWrite), nethttp.ParseUUIDPathParameters, nethttp.WithBody(new(mmodel.UpdateClusterInput), cluster.UpdateCluster))
	v1.Get("/clusters/:id", auth.RequireScope(scopeRead), nethttp.ParseUUIDPathParameters, cluster.GetClusterByID)
	v1.Get("/clusters", auth.RequireScope(scopeRead), cluster.ListClusters)
	v1.Delete("/clusters/:id", auth.RequireScope(scopeWrite), nethttp.ParseUUIDPathParameters, cluster.DeleteClusterByID)

	v1.Post("/configurations", auth.RequireScope(scopeWrite), nethttp.WithBody(new(mmodel.CreateConfigurationInput), configuration.CreateConfiguration))
	v1.Patch("/configurations/:id", auth.RequireScope(scopeWrite), nethttp.ParseUUIDPathParameters, nethttp.WithBody(new(mmodel.UpdateConfigurationInput), configuration.UpdateConfiguration))
	v1.Get("/configurations/mine", configuration.ListConfigurationsByClientID)
	v1.Get("/configurations/grace-times", auth.RequireScope(scopeRead), configuration.GraceTimesForAllConfigurations)
	v1.Get("/configurations/:id", auth.RequireScope(scopeRead), nethttp.ParseUUIDPathParameters, configuration.GetConfigurationByID)
	v1.Get("/configurations", auth.RequireScope(scopeRead), configuration.ListConfigurations)
	v1.Delete("/configurations/:id", auth.RequireScope(scopeWrite), nethttp.ParseUUIDPathParameters, configuration.DeleteConfigurationByID)

	v1.Post("/configurations/:configurationId/license-servers", auth.RequireScope(scopeWrite), nethttp.ParseUUIDPathParameters, nethttp.WithBody(new(mmodel.CreateLicenseServerInput), licenseServer.CreateLicenseServer))
	v1.Get("/configurations/:configurationId/license-servers", auth.RequireScope(scopeRead), nethttp.ParseUUIDPathParameters, licenseServer.ListLicenseServersByConfigurationID)
	v1.Patch("/license-servers/:id", auth.RequireScope(scopeWrite), nethttp.ParseUUIDPathParameters, nethttp.WithBody(new(mmodel.UpdateLicenseServerInput), licenseServer.UpdateLicenseServer))
	v1.Get("/license-servers/:id", auth.RequireScope(scopeRead), nethttp.ParseUUIDPathParameters, licenseServer.GetLicenseServerByID)
	v1.Get("/license-servers", auth.RequireScope(scopeRead), licenseServer.ListLicenseServers)
	v1.Delete("/license-servers/:id", auth.RequireScope(scopeWrite), nethttp.ParseUUIDPathParameters, licenseServer.DeleteLicenseServerByID)

	v1.Post("/products", auth.RequireScope(scopeWrite), nethttp.WithBody(new(mmodel.CreateProductInput), product.CreateProduct))
	v1.Patch("/products/:id", auth.RequireScope(scopeWrite), nethttp.ParseUUIDPathParameters, nethttp.WithBody(new(mmodel.UpdateProductInput), product.UpdateProduct))
	v1.Get("/products/:id", auth.RequireScope(scopeRead), nethttp.ParseUUIDPathParameters, product.GetProductByID)
	v1.Get("/products", auth.RequireScope(scopeRead), product.ListProducts)
	v1.Delete("/products/:id", auth.RequireScope(scopeWrite), nethttp.ParseUUIDPathParameters, product.DeleteProductByID)

	v1.Post("/features", auth.RequireScope(scopeWrite), nethttp.WithBody(new(mmodel.CreateFeatureInput), feature.CreateFeature))
	v1.Patch("/features/:id", auth.RequireScope(scopeWrite), nethttp.ParseUUIDPathParameters, nethttp.WithBody(new(mmodel.UpdateFeatureInput), feature.UpdateFeature))
	v1.Get("/features/:id", auth.RequireScope(scopeRead), nethttp.ParseUUIDPathParameters, feature.GetFeatureByID)
	v1.Get("/features", auth.RequireScope(scopeRead), feature.ListFeatures)
	v1.Get("/features/:id/inventory", auth.RequireScope(scopeRead), nethttp.ParseUUIDPathParameters, feature.GetFeatureInventory)
	v1.Delete("/features/:id", auth.RequireScope(scopeWrite), nethttp.ParseUUIDPathParameters, feature.DeleteFeatureByID)
	v1.Get("/configurations/:configurationId/features", auth.RequireScope(scopeRead), nethttp.ParseUUIDPathParameters, feature.ListFeaturesByConfigurationID)

	v1.Post("/bookings", auth.RequireScope(scopeWrite), nethttp.WithBody(new(mmodel.BookingCreateInput), booking.CreateBookings))
	v1.Get("/clusters/:clusterId/bookings/by_job/:slurm_job_id", auth.RequireScope(scopeRead), nethttp.ParseUUIDPathParameters, booking.GetBookingsBySlurmJobID)
	v1.Delete("/clusters/:clusterId/bookings/by_job/:slurm_job_id", auth.RequireScope(scopeWrite), nethttp.ParseUUIDPathParameters, booking.ReleaseBookingsBySlurmJobID)
	v1.Patch("/clusters/:clusterId/bookings/by_job/:slurm_job_id/pending", auth.RequireScope(scopeWrite), nethttp.ParseUUIDPathParameters, booking.MarkBookingsPending)

	v1.Patch("/reconcile", auth.RequireScope(scopeWrite), nethttp.WithBody(new(mmodel.ReconcileInput), reconcile.Reconcile))

	app.Get("/health", nethttp.Health)

	return app
}
