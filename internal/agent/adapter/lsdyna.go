package adapter

import (
	"context"

	"github.com/niklasmelin/license-manager/internal/agent/adapter/parse"
	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

// LSDynaAdapter extracts license information from an LS-Dyna license server
// via `lstc_qrun -s <port>@<host> -R`, which reports every feature in one
// call.
type LSDynaAdapter struct {
	Servers      []mmodel.LicenseServer
	LstcQrunPath string
}

func (a *LSDynaAdapter) lstcQrunPath() string {
	if a.LstcQrunPath != "" {
		return a.LstcQrunPath
	}

	return "lstc_qrun"
}

// Commands builds one lstc_qrun invocation per configured server. LS-Dyna's
// report covers every feature at once, so it takes no feature argument.
func (a *LSDynaAdapter) Commands(_ string) [][]string {
	commands := make([][]string, 0, len(a.Servers))

	for _, s := range a.Servers {
		commands = append(commands, []string{a.lstcQrunPath(), "-s", portAtHost(s), "-R"})
	}

	return commands
}

// RawOutput runs each lstc_qrun command in order until one returns data.
func (a *LSDynaAdapter) RawOutput(ctx context.Context, feature string) ([]byte, error) {
	return runFirstNonEmpty(ctx, feature, a.Commands(feature))
}

// ReportItem parses the full feature table and picks out the requested one.
func (a *LSDynaAdapter) ReportItem(ctx context.Context, productFeature, feature string) (mmodel.ReconcileReportItem, error) {
	output, err := a.RawOutput(ctx, feature)
	if err != nil {
		return mmodel.ReconcileReportItem{}, err
	}

	table := parse.LSDyna(output)

	usage, ok := table[feature]
	if !ok {
		return mmodel.ReconcileReportItem{}, lmerrors.BadServerOutputError{Feature: feature, Reason: "feature not present in lstc_qrun output"}
	}

	return mmodel.ReconcileReportItem{ProductFeature: productFeature, Used: usage.Used, Total: usage.Total}, nil
}
