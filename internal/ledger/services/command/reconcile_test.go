package command

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventorydomain "github.com/niklasmelin/license-manager/internal/ledger/domain/inventory"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

// fakeFeatureRepo and fakeInventoryRepo are hand-written test doubles rather
// than mockgen-generated mocks, since no go:generate directive can be run in
// this environment; they implement the same Repository interfaces the
// Postgres adapters do.
type fakeFeatureRepo struct {
	byProductFeature map[string]*mmodel.Feature
}

func (f *fakeFeatureRepo) CreateWithInventory(context.Context, *mmodel.Feature) (*mmodel.Feature, error) {
	return nil, nil
}
func (f *fakeFeatureRepo) Update(context.Context, uuid.UUID, *mmodel.Feature) (*mmodel.Feature, error) {
	return nil, nil
}
func (f *fakeFeatureRepo) Find(context.Context, uuid.UUID) (*mmodel.Feature, error) { return nil, nil }

func (f *fakeFeatureRepo) FindByProductFeature(_ context.Context, productFeature string) (*mmodel.Feature, error) {
	feature, ok := f.byProductFeature[productFeature]
	if !ok {
		return nil, assert.AnError
	}

	return feature, nil
}

func (f *fakeFeatureRepo) FindAll(context.Context, int, int) ([]*mmodel.Feature, error) { return nil, nil }
func (f *fakeFeatureRepo) FindByConfigurationID(context.Context, uuid.UUID) ([]*mmodel.Feature, error) {
	return nil, nil
}
func (f *fakeFeatureRepo) DeleteCascade(context.Context, uuid.UUID) error { return nil }

type fakeInventoryRepo struct {
	calls []inventorydomain.ReconcileItem
	// failBatch, if non-nil, is returned by ReconcileBatch instead of
	// applying any item, so tests can assert nothing is half-applied.
	failBatch error
}

func (r *fakeInventoryRepo) FindByFeatureID(context.Context, uuid.UUID) (*mmodel.Inventory, error) {
	return nil, nil
}

func (r *fakeInventoryRepo) ReconcileBatch(_ context.Context, items []inventorydomain.ReconcileItem) ([]inventorydomain.ReconcileOutcome, error) {
	r.calls = append(r.calls, items...)

	if r.failBatch != nil {
		return nil, r.failBatch
	}

	outcomes := make([]inventorydomain.ReconcileOutcome, 0, len(items))

	for _, item := range items {
		used := item.Used

		clamped := used > item.Total
		if clamped {
			used = item.Total
		}

		outcomes = append(outcomes, inventorydomain.ReconcileOutcome{
			Inventory: &mmodel.Inventory{FeatureID: item.FeatureID.String(), Total: item.Total, Used: used},
			Clamped:   clamped,
		})
	}

	return outcomes, nil
}

func TestReconcileUpdatesEveryReportedFeature(t *testing.T) {
	mechID := uuid.New()
	cfdID := uuid.New()

	featureRepo := &fakeFeatureRepo{byProductFeature: map[string]*mmodel.Feature{
		"ansys.mech": {ID: mechID.String()},
		"ansys.cfd":  {ID: cfdID.String()},
	}}
	inventoryRepo := &fakeInventoryRepo{}

	uc := &UseCase{FeatureRepo: featureRepo, InventoryRepo: inventoryRepo}

	result, err := uc.Reconcile(context.Background(), &mmodel.ReconcileInput{
		ClusterID: "clu-1",
		Report: []mmodel.ReconcileReportItem{
			{ProductFeature: "ansys.mech", Total: 10, Used: 4},
			{ProductFeature: "ansys.cfd", Total: 5, Used: 5},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.FeaturesUpdated)
	assert.Equal(t, 0, result.Clamped)
	require.Len(t, inventoryRepo.calls, 2)
	assert.Equal(t, mechID, inventoryRepo.calls[0].FeatureID)
	assert.Equal(t, 4, inventoryRepo.calls[0].Used)
}

func TestReconcileClampsOverReportedUsage(t *testing.T) {
	mechID := uuid.New()

	featureRepo := &fakeFeatureRepo{byProductFeature: map[string]*mmodel.Feature{
		"ansys.mech": {ID: mechID.String()},
	}}
	inventoryRepo := &fakeInventoryRepo{}

	uc := &UseCase{FeatureRepo: featureRepo, InventoryRepo: inventoryRepo}

	result, err := uc.Reconcile(context.Background(), &mmodel.ReconcileInput{
		ClusterID: "clu-1",
		Report:    []mmodel.ReconcileReportItem{{ProductFeature: "ansys.mech", Total: 4, Used: 9}},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.FeaturesUpdated)
	assert.Equal(t, 1, result.Clamped)
}

func TestReconcileStopsOnUnknownProductFeature(t *testing.T) {
	featureRepo := &fakeFeatureRepo{byProductFeature: map[string]*mmodel.Feature{}}
	inventoryRepo := &fakeInventoryRepo{}

	uc := &UseCase{FeatureRepo: featureRepo, InventoryRepo: inventoryRepo}

	_, err := uc.Reconcile(context.Background(), &mmodel.ReconcileInput{
		ClusterID: "clu-1",
		Report:    []mmodel.ReconcileReportItem{{ProductFeature: "ghost.feature", Total: 1, Used: 1}},
	})

	assert.Error(t, err)
	assert.Empty(t, inventoryRepo.calls)
}

func TestReconcileBatchFailureLeavesNoPartialResult(t *testing.T) {
	mechID := uuid.New()
	cfdID := uuid.New()

	featureRepo := &fakeFeatureRepo{byProductFeature: map[string]*mmodel.Feature{
		"ansys.mech": {ID: mechID.String()},
		"ansys.cfd":  {ID: cfdID.String()},
	}}
	inventoryRepo := &fakeInventoryRepo{failBatch: assert.AnError}

	uc := &UseCase{FeatureRepo: featureRepo, InventoryRepo: inventoryRepo}

	result, err := uc.Reconcile(context.Background(), &mmodel.ReconcileInput{
		ClusterID: "clu-1",
		Report: []mmodel.ReconcileReportItem{
			{ProductFeature: "ansys.mech", Total: 10, Used: 4},
			{ProductFeature: "ansys.cfd", Total: 5, Used: 5},
		},
	})

	assert.Error(t, err)
	assert.Nil(t, result)
}
