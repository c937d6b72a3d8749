package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mtrace"
)

// GetClusterByID fetches a cluster from the repository.
func (uc *UseCase) GetClusterByID(ctx context.Context, id uuid.UUID) (*mmodel.Cluster, error) {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "query", "query.get_cluster_by_id")
	defer span.End()

	c, err := uc.ClusterRepo.Find(ctx, id)
	if err != nil {
		logger.Errorf("error getting cluster %s: %v", id, err)
		return nil, err
	}

	return c, nil
}

// ListClusters fetches a page of clusters from the repository.
func (uc *UseCase) ListClusters(ctx context.Context, limit, page int) ([]*mmodel.Cluster, error) {
	ctx, span := mtrace.Start(ctx, "query", "query.list_clusters")
	defer span.End()

	return uc.ClusterRepo.FindAll(ctx, limit, page)
}
