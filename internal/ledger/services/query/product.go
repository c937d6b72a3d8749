package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mtrace"
)

// GetProductByID fetches a product from the repository.
func (uc *UseCase) GetProductByID(ctx context.Context, id uuid.UUID) (*mmodel.Product, error) {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "query", "query.get_product_by_id")
	defer span.End()

	p, err := uc.ProductRepo.Find(ctx, id)
	if err != nil {
		logger.Errorf("error getting product %s: %v", id, err)
		return nil, err
	}

	return p, nil
}

// ListProducts fetches a page of products from the repository.
func (uc *UseCase) ListProducts(ctx context.Context, limit, page int) ([]*mmodel.Product, error) {
	ctx, span := mtrace.Start(ctx, "query", "query.list_products")
	defer span.End()

	return uc.ProductRepo.FindAll(ctx, limit, page)
}
