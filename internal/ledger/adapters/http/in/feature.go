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

// FeatureHandler exposes Feature operations over HTTP.
type FeatureHandler struct {
	Command *command.UseCase
	Query   *query.UseCase
}

// CreateFeature creates a new feature, atomically creating its zeroed
// Inventory row.
func (handler *FeatureHandler) CreateFeature(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.create_feature")
	defer span.End()

	payload := p.(*mmodel.CreateFeatureInput)

	feature, err := handler.Command.CreateFeature(ctx, payload)
	if err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.Created(c, feature)
}

// UpdateFeature applies a partial update to a feature.
func (handler *FeatureHandler) UpdateFeature(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.update_feature")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)
	payload := p.(*mmodel.UpdateFeatureInput)

	if _, err := handler.Command.UpdateFeature(ctx, id, payload); err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	feature, err := handler.Query.GetFeatureByID(ctx, id)
	if err != nil {
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, feature)
}

// GetFeatureByID retrieves a feature by id.
func (handler *FeatureHandler) GetFeatureByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.get_feature_by_id")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)

	feature, err := handler.Query.GetFeatureByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, feature)
}

// ListFeatures retrieves a page of features.
func (handler *FeatureHandler) ListFeatures(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.list_features")
	defer span.End()

	limit, page := paginationParams(c)

	features, err := handler.Query.ListFeatures(ctx, limit, page)
	if err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, features)
}

// ListFeaturesByConfigurationID retrieves the report targets for every
// feature a configuration's adapter is responsible for.
func (handler *FeatureHandler) ListFeaturesByConfigurationID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.list_features_by_configuration_id")
	defer span.End()

	configurationID := c.Locals("configurationId").(uuid.UUID)

	targets, err := handler.Query.ListFeaturesByConfigurationID(ctx, configurationID)
	if err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, targets)
}

// GetFeatureInventory retrieves the Inventory row backing a feature.
func (handler *FeatureHandler) GetFeatureInventory(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.get_feature_inventory")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)

	inventory, err := handler.Query.GetFeatureInventory(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, inventory)
}

// DeleteFeatureByID removes a feature, its Inventory row, and any Bookings
// against it.
func (handler *FeatureHandler) DeleteFeatureByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.delete_feature_by_id")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)

	if err := handler.Command.DeleteFeature(ctx, id); err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.NoContent(c)
}
