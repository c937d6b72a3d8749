package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mtrace"
)

// GetConfigurationByID fetches a configuration from the repository.
func (uc *UseCase) GetConfigurationByID(ctx context.Context, id uuid.UUID) (*mmodel.Configuration, error) {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "query", "query.get_configuration_by_id")
	defer span.End()

	c, err := uc.ConfigurationRepo.Find(ctx, id)
	if err != nil {
		logger.Errorf("error getting configuration %s: %v", id, err)
		return nil, err
	}

	return c, nil
}

// ListConfigurations fetches a page of configurations from the repository.
func (uc *UseCase) ListConfigurations(ctx context.Context, limit, page int) ([]*mmodel.Configuration, error) {
	ctx, span := mtrace.Start(ctx, "query", "query.list_configurations")
	defer span.End()

	return uc.ConfigurationRepo.FindAll(ctx, limit, page)
}

// ListConfigurationsByClientID resolves the configurations an agent is
// authorized to reconcile against, from its azp claim.
func (uc *UseCase) ListConfigurationsByClientID(ctx context.Context, clientID string) ([]*mmodel.Configuration, error) {
	ctx, span := mtrace.Start(ctx, "query", "query.list_configurations_by_client_id")
	defer span.End()

	return uc.ConfigurationRepo.FindByClientID(ctx, clientID)
}

// GraceTimes returns every configuration's grace time keyed by id, for the
// agent's grace-time sweep support endpoint.
func (uc *UseCase) GraceTimes(ctx context.Context) (map[string]int, error) {
	ctx, span := mtrace.Start(ctx, "query", "query.grace_times")
	defer span.End()

	return uc.ConfigurationRepo.GraceTimes(ctx)
}
