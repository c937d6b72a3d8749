package command

import (
	"context"

	"github.com/google/uuid"

	inventorydomain "github.com/niklasmelin/license-manager/internal/ledger/domain/inventory"
	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
	"github.com/niklasmelin/license-manager/pkg/mtrace"
)

// Reconcile overwrites every reported feature's total/used with the agent's
// numbers, trusting the vendor report as ground truth for that cycle rather
// than reconciling it against existing bookings. A report line whose used
// would exceed total is clamped and counted, not rejected, so one
// mis-reporting vendor adapter can't fail an entire cluster's cycle. Every
// feature in the report is resolved first and then applied in a single
// InventoryRepo.ReconcileBatch call, so a reader never observes the PATCH
// half-applied and a failure partway through leaves no feature updated.
func (uc *UseCase) Reconcile(ctx context.Context, input *mmodel.ReconcileInput) (*mmodel.ReconcileResult, error) {
	logger := mlog.FromContext(ctx)

	ctx, span := mtrace.Start(ctx, "command", "command.reconcile")
	defer span.End()

	logger.Infof("reconciling %d feature(s) for cluster %s", len(input.Report), input.ClusterID)

	items := make([]inventorydomain.ReconcileItem, 0, len(input.Report))

	for _, reportItem := range input.Report {
		feature, err := uc.FeatureRepo.FindByProductFeature(ctx, reportItem.ProductFeature)
		if err != nil {
			logger.Errorf("error resolving product_feature %q during reconcile: %v", reportItem.ProductFeature, err)
			return nil, err
		}

		featureID, err := uuid.Parse(feature.ID)
		if err != nil {
			return nil, err
		}

		items = append(items, inventorydomain.ReconcileItem{FeatureID: featureID, Total: reportItem.Total, Used: reportItem.Used})
	}

	outcomes, err := uc.InventoryRepo.ReconcileBatch(ctx, items)
	if err != nil {
		logger.Errorf("error reconciling cluster %s: %v", input.ClusterID, err)
		return nil, err
	}

	result := &mmodel.ReconcileResult{FeaturesUpdated: len(outcomes)}

	for i, outcome := range outcomes {
		if outcome.Clamped {
			result.Clamped++
			logger.Warnf("reconcile clamped used to total for %q (reported used=%d total=%d)",
				input.Report[i].ProductFeature, input.Report[i].Used, input.Report[i].Total)
		}
	}

	return result, nil
}
