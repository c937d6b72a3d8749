package adapter

import (
	"context"
	"strconv"

	"github.com/niklasmelin/license-manager/internal/agent/adapter/parse"
	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

// LMXAdapter extracts license information from an LM-X license server via
// `lmxendutil -licstat -host <host> -port <port>`.
type LMXAdapter struct {
	Servers        []mmodel.LicenseServer
	LmxendutilPath string
}

func (a *LMXAdapter) lmxendutilPath() string {
	if a.LmxendutilPath != "" {
		return a.LmxendutilPath
	}

	return "lmxendutil"
}

// Commands builds one lmxendutil invocation per configured server.
func (a *LMXAdapter) Commands(_ string) [][]string {
	commands := make([][]string, 0, len(a.Servers))

	for _, s := range a.Servers {
		commands = append(commands, []string{a.lmxendutilPath(), "-licstat", "-host", s.Host, "-port", strconv.Itoa(s.Port)})
	}

	return commands
}

// RawOutput runs each lmxendutil command in order until one returns data.
func (a *LMXAdapter) RawOutput(ctx context.Context, feature string) ([]byte, error) {
	return runFirstNonEmpty(ctx, feature, a.Commands(feature))
}

// ReportItem parses the full feature table and picks out the requested one.
func (a *LMXAdapter) ReportItem(ctx context.Context, productFeature, feature string) (mmodel.ReconcileReportItem, error) {
	output, err := a.RawOutput(ctx, feature)
	if err != nil {
		return mmodel.ReconcileReportItem{}, err
	}

	table := parse.LMX(output)

	usage, ok := table[feature]
	if !ok {
		return mmodel.ReconcileReportItem{}, lmerrors.BadServerOutputError{Feature: feature, Reason: "feature not present in lmxendutil output"}
	}

	return mmodel.ReconcileReportItem{ProductFeature: productFeature, Used: usage.Used, Total: usage.Total}, nil
}
