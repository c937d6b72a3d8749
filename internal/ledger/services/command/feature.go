package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mtrace"
)

// CreateFeature registers a new feature under a product and configuration,
// atomically creating its zeroed Inventory row.
func (uc *UseCase) CreateFeature(ctx context.Context, input *mmodel.CreateFeatureInput) (*mmodel.Feature, error) {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "command", "command.create_feature")
	defer span.End()

	logger.Infof("creating feature %q", input.Name)

	now := time.Now()

	f, err := uc.FeatureRepo.CreateWithInventory(ctx, &mmodel.Feature{
		Name:            input.Name,
		ProductID:       input.ProductID,
		ConfigurationID: input.ConfigurationID,
		Reserved:        input.Reserved,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		logger.Errorf("error creating feature: %v", err)
		return nil, err
	}

	return f, nil
}

// UpdateFeature applies a partial update to a feature.
func (uc *UseCase) UpdateFeature(ctx context.Context, id uuid.UUID, input *mmodel.UpdateFeatureInput) (*mmodel.Feature, error) {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "command", "command.update_feature")
	defer span.End()

	update := &mmodel.Feature{Name: input.Name}
	if input.Reserved != nil {
		update.Reserved = *input.Reserved
	}

	f, err := uc.FeatureRepo.Update(ctx, id, update)
	if err != nil {
		logger.Errorf("error updating feature %s: %v", id, err)
		return nil, err
	}

	return f, nil
}

// DeleteFeature removes a feature along with its Inventory row and any
// Bookings against it, in one transaction.
func (uc *UseCase) DeleteFeature(ctx context.Context, id uuid.UUID) error {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "command", "command.delete_feature")
	defer span.End()

	if err := uc.FeatureRepo.DeleteCascade(ctx, id); err != nil {
		logger.Errorf("error deleting feature %s: %v", id, err)
		return err
	}

	return nil
}
