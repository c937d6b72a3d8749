package adapter

import (
	"context"

	"github.com/niklasmelin/license-manager/internal/agent/adapter/parse"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

// FlexLMAdapter extracts license information from a FlexLM license server
// via `lmutil lmstat -c <port>@<host> -f <feature>`.
type FlexLMAdapter struct {
	Servers    []mmodel.LicenseServer
	LmutilPath string
}

func (a *FlexLMAdapter) lmutilPath() string {
	if a.LmutilPath != "" {
		return a.LmutilPath
	}

	return "lmutil"
}

// Commands builds one lmstat invocation per configured server.
func (a *FlexLMAdapter) Commands(feature string) [][]string {
	commands := make([][]string, 0, len(a.Servers))

	for _, s := range a.Servers {
		commands = append(commands, []string{
			a.lmutilPath(), "lmstat", "-c", portAtHost(s), "-f", feature,
		})
	}

	return commands
}

// RawOutput runs each lmstat command in order until one returns data.
func (a *FlexLMAdapter) RawOutput(ctx context.Context, feature string) ([]byte, error) {
	return runFirstNonEmpty(ctx, feature, a.Commands(feature))
}

// ReportItem parses the "Users of <feature>" line out of lmstat's output.
func (a *FlexLMAdapter) ReportItem(ctx context.Context, productFeature, feature string) (mmodel.ReconcileReportItem, error) {
	output, err := a.RawOutput(ctx, feature)
	if err != nil {
		return mmodel.ReconcileReportItem{}, err
	}

	usage, err := parse.FlexLM(feature, output)
	if err != nil {
		return mmodel.ReconcileReportItem{}, err
	}

	return mmodel.ReconcileReportItem{ProductFeature: productFeature, Used: usage.Used, Total: usage.Total}, nil
}
