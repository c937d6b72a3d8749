package command

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

type fakeClusterRepo struct {
	created *mmodel.Cluster
	updated *mmodel.Cluster
	deleted uuid.UUID
}

func (r *fakeClusterRepo) Create(_ context.Context, c *mmodel.Cluster) (*mmodel.Cluster, error) {
	c.ID = uuid.New().String()
	r.created = c

	return c, nil
}

func (r *fakeClusterRepo) Update(_ context.Context, id uuid.UUID, c *mmodel.Cluster) (*mmodel.Cluster, error) {
	c.ID = id.String()
	r.updated = c

	return c, nil
}

func (r *fakeClusterRepo) Find(context.Context, uuid.UUID) (*mmodel.Cluster, error)  { return nil, nil }
func (r *fakeClusterRepo) FindByClientID(context.Context, string) (*mmodel.Cluster, error) {
	return nil, nil
}
func (r *fakeClusterRepo) FindAll(context.Context, int, int) ([]*mmodel.Cluster, error) { return nil, nil }

func (r *fakeClusterRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.deleted = id
	return nil
}

func TestCreateClusterStampsNameAndClientID(t *testing.T) {
	repo := &fakeClusterRepo{}
	uc := &UseCase{ClusterRepo: repo}

	cluster, err := uc.CreateCluster(context.Background(), &mmodel.CreateClusterInput{Name: "frontier", ClientID: "agent-frontier"})

	require.NoError(t, err)
	assert.Equal(t, "frontier", cluster.Name)
	assert.Equal(t, "agent-frontier", cluster.ClientID)
	assert.NotEmpty(t, cluster.ID)
}

func TestUpdateClusterPassesInputThrough(t *testing.T) {
	repo := &fakeClusterRepo{}
	uc := &UseCase{ClusterRepo: repo}

	id := uuid.New()
	cluster, err := uc.UpdateCluster(context.Background(), id, &mmodel.UpdateClusterInput{Name: "renamed"})

	require.NoError(t, err)
	assert.Equal(t, "renamed", cluster.Name)
	assert.Equal(t, id.String(), cluster.ID)
}

func TestDeleteClusterDelegatesToRepo(t *testing.T) {
	repo := &fakeClusterRepo{}
	uc := &UseCase{ClusterRepo: repo}

	id := uuid.New()
	require.NoError(t, uc.DeleteCluster(context.Background(), id))
	assert.Equal(t, id, repo.deleted)
}
