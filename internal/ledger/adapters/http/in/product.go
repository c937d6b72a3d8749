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

// ProductHandler exposes Product operations over HTTP.
type ProductHandler struct {
	Command *command.UseCase
	Query   *query.UseCase
}

// CreateProduct creates a new product.
func (handler *ProductHandler) CreateProduct(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.create_product")
	defer span.End()

	payload := p.(*mmodel.CreateProductInput)

	product, err := handler.Command.CreateProduct(ctx, payload)
	if err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.Created(c, product)
}

// UpdateProduct applies a partial update to a product.
func (handler *ProductHandler) UpdateProduct(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.update_product")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)
	payload := p.(*mmodel.UpdateProductInput)

	if _, err := handler.Command.UpdateProduct(ctx, id, payload); err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	product, err := handler.Query.GetProductByID(ctx, id)
	if err != nil {
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, product)
}

// GetProductByID retrieves a product by id.
func (handler *ProductHandler) GetProductByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.get_product_by_id")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)

	product, err := handler.Query.GetProductByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, product)
}

// ListProducts retrieves a page of products.
func (handler *ProductHandler) ListProducts(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.list_products")
	defer span.End()

	limit, page := paginationParams(c)

	products, err := handler.Query.ListProducts(ctx, limit, page)
	if err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, products)
}

// DeleteProductByID removes a product.
func (handler *ProductHandler) DeleteProductByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.delete_product_by_id")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)

	if err := handler.Command.DeleteProduct(ctx, id); err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.NoContent(c)
}
