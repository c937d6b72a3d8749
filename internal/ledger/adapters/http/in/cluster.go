// Package in holds the Fiber handlers exposed by the ledger HTTP API.
package in

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/niklasmelin/license-manager/internal/ledger/services/command"
	"github.com/niklasmelin/license-manager/internal/ledger/services/query"
	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mtrace"
	"github.com/niklasmelin/license-manager/pkg/nethttp"
)

// ClusterHandler exposes Cluster operations over HTTP.
type ClusterHandler struct {
	Command *command.UseCase
	Query   *query.UseCase
}

// CreateCluster creates a new cluster.
func (handler *ClusterHandler) CreateCluster(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger := mlog.FromContext(ctx)
	ctx, span := mtrace.Start(ctx, "handler", "handler.create_cluster")
	defer span.End()

	payload := p.(*mmodel.CreateClusterInput)

	cluster, err := handler.Command.CreateCluster(ctx, payload)
	if err != nil {
		span.RecordError(err)
		logger.Errorf("failed to create cluster: %v", err)

		return nethttp.WithError(c, err)
	}

	return nethttp.Created(c, cluster)
}

// UpdateCluster applies a partial update to a cluster.
func (handler *ClusterHandler) UpdateCluster(p any, c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger := mlog.FromContext(ctx)
	ctx, span := mtrace.Start(ctx, "handler", "handler.update_cluster")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)
	payload := p.(*mmodel.UpdateClusterInput)

	if _, err := handler.Command.UpdateCluster(ctx, id, payload); err != nil {
		span.RecordError(err)
		logger.Errorf("failed to update cluster %s: %v", id, err)

		return nethttp.WithError(c, err)
	}

	cluster, err := handler.Query.GetClusterByID(ctx, id)
	if err != nil {
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, cluster)
}

// GetClusterByID retrieves a cluster by id.
func (handler *ClusterHandler) GetClusterByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.get_cluster_by_id")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)

	cluster, err := handler.Query.GetClusterByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, cluster)
}

// ListClusters retrieves a page of clusters.
func (handler *ClusterHandler) ListClusters(c *fiber.Ctx) error {
	ctx := c.UserContext()

	ctx, span := mtrace.Start(ctx, "handler", "handler.list_clusters")
	defer span.End()

	limit, page := paginationParams(c)

	clusters, err := handler.Query.ListClusters(ctx, limit, page)
	if err != nil {
		span.RecordError(err)
		return nethttp.WithError(c, err)
	}

	return nethttp.OK(c, clusters)
}

// DeleteClusterByID removes a cluster.
func (handler *ClusterHandler) DeleteClusterByID(c *fiber.Ctx) error {
	ctx := c.UserContext()

	logger := mlog.FromContext(ctx)
	ctx, span := mtrace.Start(ctx, "handler", "handler.delete_cluster_by_id")
	defer span.End()

	id := c.Locals("id").(uuid.UUID)

	if err := handler.Command.DeleteCluster(ctx, id); err != nil {
		span.RecordError(err)
		logger.Errorf("failed to delete cluster %s: %v", id, err)

		return nethttp.WithError(c, err)
	}

	return nethttp.NoContent(c)
}
