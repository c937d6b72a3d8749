package adapter

import (
	"context"

	"github.com/niklasmelin/license-manager/internal/agent/adapter/parse"
	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

// OLicenseAdapter extracts license information from an OLicense license
// server via `olstat -u <port>@<host>`.
type OLicenseAdapter struct {
	Servers    []mmodel.LicenseServer
	OlstatPath string
}

func (a *OLicenseAdapter) olstatPath() string {
	if a.OlstatPath != "" {
		return a.OlstatPath
	}

	return "olstat"
}

// Commands builds one olstat invocation per configured server.
func (a *OLicenseAdapter) Commands(_ string) [][]string {
	commands := make([][]string, 0, len(a.Servers))

	for _, s := range a.Servers {
		commands = append(commands, []string{a.olstatPath(), "-u", portAtHost(s)})
	}

	return commands
}

// RawOutput runs each olstat command in order until one returns data.
func (a *OLicenseAdapter) RawOutput(ctx context.Context, feature string) ([]byte, error) {
	return runFirstNonEmpty(ctx, feature, a.Commands(feature))
}

// ReportItem parses the full feature table and picks out the requested one.
func (a *OLicenseAdapter) ReportItem(ctx context.Context, productFeature, feature string) (mmodel.ReconcileReportItem, error) {
	output, err := a.RawOutput(ctx, feature)
	if err != nil {
		return mmodel.ReconcileReportItem{}, err
	}

	table := parse.OLicense(output)

	usage, ok := table[feature]
	if !ok {
		return mmodel.ReconcileReportItem{}, lmerrors.BadServerOutputError{Feature: feature, Reason: "feature not present in olstat output"}
	}

	return mmodel.ReconcileReportItem{ProductFeature: productFeature, Used: usage.Used, Total: usage.Total}, nil
}
