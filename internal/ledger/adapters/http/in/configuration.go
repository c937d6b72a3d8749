package in

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/internal/ledger/auth"
	"github.com/niklasmelin/license-manager/internal/ledger/services/command"
	"github.com/niklasmelin/license-manager/internal/ledger/services/query"
	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mtrace"
	"github.com/niklasmelin/license-manager/pkg/nethttp"
)

// ConfigurationHandler exposes Configuration operations over HTTP.
type ConfigurationHandler struct {
	Command *command.UseCase
	Query   *query.UseCase
}

// CreateConfiguration creates a new configuration.
func (handler *ConfigurationHandler) CreateConfiguration(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger := mlog.FromContext(ctx)
	ctx, span := mtrace.Start(ctx, "handler", "handler.create_configuration")
	defer span.End()

	payload := p.(*mmodel.CreateConfigurationInput)

	configuration, err := handler.Command.CreateConfiguration(ctx, payload)
	if err != nil {
		span.RecordError(err)
		logger.Errorf("failed to create configuration: %v", err)

		return nethttp.WithError(c, err)
	}

	return nethttp.Created(c, configuration)
}

// UpdateConfiguration applies a partial update to a configuration.
func (handler *ConfigurationHandler) UpdateConfiguration(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.update_configuration")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)
	payload := p.(*mmodel.UpdateConfigurationInput)

	if _, err := handler.Command.UpdateConfiguration(ctx, id, payload); err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	configuration, err := handler.Query.GetConfigurationByID(ctx, id)
	if err != nil {
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, configuration)
}

// GetConfigurationByID retrieves a configuration by id.
func (handler *ConfigurationHandler) GetConfigurationByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.get_configuration_by_id")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)

	configuration, err := handler.Query.GetConfigurationByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, configuration)
}

// ListConfigurations retrieves a page of configurations.
func (handler *ConfigurationHandler) ListConfigurations(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.list_configurations")
	defer span.End()

	limit, page := paginationParams(c)

	configurations, err := handler.Query.ListConfigurations(ctx, limit, page)
	if err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, configurations)
}

// ListConfigurationsByClientID retrieves the configurations the requesting
// agent (identified by its bearer token's azp claim) is authorized to
// reconcile against.
func (handler *ConfigurationHandler) ListConfigurationsByClientID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.list_configurations_by_client_id")
	defer span.End()

	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return nethttp.WithError(c, lmerrors.UnauthorizedError{
			Title:   "Missing Token",
			Message: "A bearer token must be provided in the Authorization header.",
		})
	}

	configurations, err := handler.Query.ListConfigurationsByClientID(ctx, claims.AZP)
	if err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, configurations)
}

// GraceTimesForAllConfigurations returns every configuration's grace time
// keyed by id, used by the agent's grace-time sweep.
func (handler *ConfigurationHandler) GraceTimesForAllConfigurations(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.grace_times_for_all_configurations")
	defer span.End()

	graceTimes, err := handler.Query.GraceTimes(ctx)
	if err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, graceTimes)
}

// DeleteConfigurationByID removes a configuration.
func (handler *ConfigurationHandler) DeleteConfigurationByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.delete_configuration_by_id")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)

	if err := handler.Command.DeleteConfiguration(ctx, id); err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.NoContent(c)
}
