package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mtrace"
)

// CreateProduct registers a new product.
func (uc *UseCase) CreateProduct(ctx context.Context, input *mmodel.CreateProductInput) (*mmodel.Product, error) {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "command", "command.create_product")
	defer span.End()

	logger.Infof("creating product %q", input.Name)

	now := time.Now()

	p, err := uc.ProductRepo.Create(ctx, &mmodel.Product{Name: input.Name, CreatedAt: now, UpdatedAt: now})
	if err != nil {
		logger.Errorf("error creating product: %v", err)
		return nil, err
	}

	return p, nil
}

// UpdateProduct applies a partial update to a product.
func (uc *UseCase) UpdateProduct(ctx context.Context, id uuid.UUID, input *mmodel.UpdateProductInput) (*mmodel.Product, error) {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "command", "command.update_product")
	defer span.End()

	p, err := uc.ProductRepo.Update(ctx, id, &mmodel.Product{Name: input.Name})
	if err != nil {
		logger.Errorf("error updating product %s: %v", id, err)
		return nil, err
	}

	return p, nil
}

// DeleteProduct soft-deletes a product.
func (uc *UseCase) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "command", "command.delete_product")
	defer span.End()

	if err := uc.ProductRepo.Delete(ctx, id); err != nil {
		logger.Errorf("error deleting product %s: %v", id, err)
		return err
	}

	return nil
}
