package in

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/internal/ledger/services/command"
	"github.com/niklasmelin/license-manager/internal/ledger/services/query"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mtrace"
	"github.com/niklasmelin/license-manager/pkg/nethttp"
)

// LicenseServerHandler exposes LicenseServer operations over HTTP.
type LicenseServerHandler struct {
	Command *command.UseCase
	Query   *query.UseCase
}

// CreateLicenseServer creates a new license server.
func (handler *LicenseServerHandler) CreateLicenseServer(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.create_license_server")
	defer span.End()

	payload := p.(*mmodel.CreateLicenseServerInput)

	server, err := handler.Command.CreateLicenseServer(ctx, payload)
	if err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.Created(c, server)
}

// UpdateLicenseServer applies a partial update to a license server.
func (handler *LicenseServerHandler) UpdateLicenseServer(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.update_license_server")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)
	payload := p.(*mmodel.UpdateLicenseServerInput)

	if _, err := handler.Command.UpdateLicenseServer(ctx, id, payload); err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	server, err := handler.Query.GetLicenseServerByID(ctx, id)
	if err != nil {
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, server)
}

// GetLicenseServerByID retrieves a license server by id.
func (handler *LicenseServerHandler) GetLicenseServerByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.get_license_server_by_id")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)

	server, err := handler.Query.GetLicenseServerByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, server)
}

// ListLicenseServersByConfigurationID retrieves the license servers listed
// under a configuration.
func (handler *LicenseServerHandler) ListLicenseServersByConfigurationID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.list_license_servers_by_configuration_id")
	defer span.End()

	configurationID := c.Locals("configurationId").(uuid.UUID)

	servers, err := handler.Query.ListLicenseServersByConfigurationID(ctx, configurationID)
	if err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, servers)
}

// ListLicenseServers retrieves a page of license servers.
func (handler *LicenseServerHandler) ListLicenseServers(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.list_license_servers")
	defer span.End()

	limit, page := paginationParams(c)

	servers, err := handler.Query.ListLicenseServers(ctx, limit, page)
	if err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, servers)
}

// DeleteLicenseServerByID removes a license server.
func (handler *LicenseServerHandler) DeleteLicenseServerByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.delete_license_server_by_id")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)

	if err := handler.Command.DeleteLicenseServer(ctx, id); err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.NoContent(c)
}
