package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mtrace"
)

// CreateCluster registers a new cluster under the caller-supplied client_id
// its agent authenticates with.
func (uc *UseCase) CreateCluster(ctx context.Context, input *mmodel.CreateClusterInput) (*mmodel.Cluster, error) {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "command", "command.create_cluster")
	defer span.End()

	logger.Infof("creating cluster %q", input.Name)

	now := time.Now()

	c, err := uc.ClusterRepo.Create(ctx, &mmodel.Cluster{
		Name:      input.Name,
		ClientID:  input.ClientID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		logger.Errorf("error creating cluster: %v", err)
		return nil, err
	}

	return c, nil
}

// UpdateCluster applies a partial update to a cluster.
func (uc *UseCase) UpdateCluster(ctx context.Context, id uuid.UUID, input *mmodel.UpdateClusterInput) (*mmodel.Cluster, error) {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "command", "command.update_cluster")
	defer span.End()

	c, err := uc.ClusterRepo.Update(ctx, id, &mmodel.Cluster{Name: input.Name, ClientID: input.ClientID})
	if err != nil {
		logger.Errorf("error updating cluster %s: %v", id, err)
		return nil, err
	}

	return c, nil
}

// DeleteCluster soft-deletes a cluster.
func (uc *UseCase) DeleteCluster(ctx context.Context, id uuid.UUID) error {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "command", "command.delete_cluster")
	defer span.End()

	if err := uc.ClusterRepo.Delete(ctx, id); err != nil {
		logger.Errorf("error deleting cluster %s: %v", id, err)
		return err
	}

	return nil
}
