package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mtrace"
)

// CreateConfiguration registers a new configuration for a cluster.
func (uc *UseCase) CreateConfiguration(ctx context.Context, input *mmodel.CreateConfigurationInput) (*mmodel.Configuration, error) {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "command", "command.create_configuration")
	defer span.End()

	logger.Infof("creating configuration %q of type %s", input.Name, input.Type)

	now := time.Now()

	c, err := uc.ConfigurationRepo.Create(ctx, &mmodel.Configuration{
		Name:      input.Name,
		ClusterID: input.ClusterID,
		Type:      input.Type,
		GraceTime: input.GraceTime,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		logger.Errorf("error creating configuration: %v", err)
		return nil, err
	}

	return c, nil
}

// UpdateConfiguration applies a partial update to a configuration.
func (uc *UseCase) UpdateConfiguration(ctx context.Context, id uuid.UUID, input *mmodel.UpdateConfigurationInput) (*mmodel.Configuration, error) {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "command", "command.update_configuration")
	defer span.End()

	update := &mmodel.Configuration{Name: input.Name, Type: input.Type}
	if input.GraceTime != nil {
		update.GraceTime = *input.GraceTime
	}

	c, err := uc.ConfigurationRepo.Update(ctx, id, update)
	if err != nil {
		logger.Errorf("error updating configuration %s: %v", id, err)
		return nil, err
	}

	return c, nil
}

// DeleteConfiguration soft-deletes a configuration.
func (uc *UseCase) DeleteConfiguration(ctx context.Context, id uuid.UUID) error {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "command", "command.delete_configuration")
	defer span.End()

	if err := uc.ConfigurationRepo.Delete(ctx, id); err != nil {
		logger.Errorf("error deleting configuration %s: %v", id, err)
		return err
	}

	return nil
}
