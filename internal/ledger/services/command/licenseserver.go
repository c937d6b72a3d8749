package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mtrace"
)

// CreateLicenseServer registers a new license-server endpoint under a configuration.
func (uc *UseCase) CreateLicenseServer(ctx context.Context, input *mmodel.CreateLicenseServerInput) (*mmodel.LicenseServer, error) {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "command", "command.create_license_server")
	defer span.End()

	logger.Infof("creating license server %s:%d", input.Host, input.Port)

	now := time.Now()

	s, err := uc.LicenseServerRepo.Create(ctx, &mmodel.LicenseServer{
		ConfigurationID: input.ConfigurationID,
		Host:            input.Host,
		Port:            input.Port,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		logger.Errorf("error creating license server: %v", err)
		return nil, err
	}

	return s, nil
}

// UpdateLicenseServer applies a partial update to a license server.
func (uc *UseCase) UpdateLicenseServer(ctx context.Context, id uuid.UUID, input *mmodel.UpdateLicenseServerInput) (*mmodel.LicenseServer, error) {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "command", "command.update_license_server")
	defer span.End()

	s, err := uc.LicenseServerRepo.Update(ctx, id, &mmodel.LicenseServer{Host: input.Host, Port: input.Port})
	if err != nil {
		logger.Errorf("error updating license server %s: %v", id, err)
		return nil, err
	}

	return s, nil
}

// DeleteLicenseServer soft-deletes a license server.
func (uc *UseCase) DeleteLicenseServer(ctx context.Context, id uuid.UUID) error {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "command", "command.delete_license_server")
	defer span.End()

	if err := uc.LicenseServerRepo.Delete(ctx, id); err != nil {
		logger.Errorf("error deleting license server %s: %v", id, err)
		return err
	}

	return nil
}
