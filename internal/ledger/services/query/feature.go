package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mtrace"
)

// GetFeatureByID fetches a feature from the repository.
func (uc *UseCase) GetFeatureByID(ctx context.Context, id uuid.UUID) (*mmodel.Feature, error) {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "query", "query.get_feature_by_id")
	defer span.End()

	f, err := uc.FeatureRepo.Find(ctx, id)
	if err != nil {
		logger.Errorf("error getting feature %s: %v", id, err)
		return nil, err
	}

	return f, nil
}

// ListFeatures fetches a page of features from the repository.
func (uc *UseCase) ListFeatures(ctx context.Context, limit, page int) ([]*mmodel.Feature, error) {
	ctx, span := mtrace.Start(ctx, "query", "query.list_features")
	defer span.End()

	return uc.FeatureRepo.FindAll(ctx, limit, page)
}

// ListFeaturesByConfigurationID fetches every feature a Configuration's
// adapter is responsible for, resolved to their "product.feature" wire key,
// used by the agent to build its reconcile report without a hardcoded
// feature list or an extra round trip per product.
func (uc *UseCase) ListFeaturesByConfigurationID(ctx context.Context, configurationID uuid.UUID) ([]mmodel.ReportTarget, error) {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "query", "query.list_features_by_configuration_id")
	defer span.End()

	features, err := uc.FeatureRepo.FindByConfigurationID(ctx, configurationID)
	if err != nil {
		logger.Errorf("error listing features for configuration %s: %v", configurationID, err)
		return nil, err
	}

	products := make(map[string]string)
	targets := make([]mmodel.ReportTarget, 0, len(features))

	for _, f := range features {
		productName, ok := products[f.ProductID]
		if !ok {
			productID, err := uuid.Parse(f.ProductID)
			if err != nil {
				return nil, err
			}

			p, err := uc.ProductRepo.Find(ctx, productID)
			if err != nil {
				logger.Errorf("error resolving product %s for feature %s: %v", f.ProductID, f.ID, err)
				return nil, err
			}

			productName = p.Name
			products[f.ProductID] = productName
		}

		targets = append(targets, mmodel.ReportTarget{FeatureID: f.ID, ProductFeature: f.ProductFeature(productName)})
	}

	return targets, nil
}

// GetFeatureInventory fetches the Inventory row backing a feature.
func (uc *UseCase) GetFeatureInventory(ctx context.Context, featureID uuid.UUID) (*mmodel.Inventory, error) {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "query", "query.get_feature_inventory")
	defer span.End()

	inv, err := uc.InventoryRepo.FindByFeatureID(ctx, featureID)
	if err != nil {
		logger.Errorf("error getting inventory for feature %s: %v", featureID, err)
		return nil, err
	}

	return inv, nil
}
