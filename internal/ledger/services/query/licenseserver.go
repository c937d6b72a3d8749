package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mtrace"
)

// GetLicenseServerByID fetches a license server from the repository.
func (uc *UseCase) GetLicenseServerByID(ctx context.Context, id uuid.UUID) (*mmodel.LicenseServer, error) {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "query", "query.get_license_server_by_id")
	defer span.End()

	s, err := uc.LicenseServerRepo.Find(ctx, id)
	if err != nil {
		logger.Errorf("error getting license server %s: %v", id, err)
		return nil, err
	}

	return s, nil
}

// ListLicenseServersByConfigurationID fetches the license servers listed
// under a configuration, in the order the agent's adapter should try them.
func (uc *UseCase) ListLicenseServersByConfigurationID(ctx context.Context, configurationID uuid.UUID) ([]*mmodel.LicenseServer, error) {
	ctx, span := mtrace.Start(ctx, "query", "query.list_license_servers_by_configuration_id")
	defer span.End()

	return uc.LicenseServerRepo.FindByConfigurationID(ctx, configurationID)
}

// ListLicenseServers fetches a page of license servers from the repository.
func (uc *UseCase) ListLicenseServers(ctx context.Context, limit, page int) ([]*mmodel.LicenseServer, error) {
	ctx, span := mtrace.Start(ctx, "query", "query.list_license_servers")
	defer span.End()

	return uc.LicenseServerRepo.FindAll(ctx, limit, page)
}
