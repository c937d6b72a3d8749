package adapter

import (
	"context"

	"github.com/niklasmelin/license-manager/internal/agent/adapter/parse"
	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

// RLMAdapter extracts license information from an RLM license server via
// `rlmutil rlmstat -c <port>@<host> -l <feature>`.
type RLMAdapter struct {
	Servers     []mmodel.LicenseServer
	RlmutilPath string
}

func (a *RLMAdapter) rlmutilPath() string {
	if a.RlmutilPath != "" {
		return a.RlmutilPath
	}

	return "rlmutil"
}

// Commands builds one rlmstat invocation per configured server.
func (a *RLMAdapter) Commands(feature string) [][]string {
	commands := make([][]string, 0, len(a.Servers))

	for _, s := range a.Servers {
		commands = append(commands, []string{a.rlmutilPath(), "rlmstat", "-c", portAtHost(s), "-l", feature})
	}

	return commands
}

// RawOutput runs each rlmstat command in order until one returns data.
func (a *RLMAdapter) RawOutput(ctx context.Context, feature string) ([]byte, error) {
	return runFirstNonEmpty(ctx, feature, a.Commands(feature))
}

// ReportItem parses the feature's count line out of rlmstat's output.
func (a *RLMAdapter) ReportItem(ctx context.Context, productFeature, feature string) (mmodel.ReconcileReportItem, error) {
	output, err := a.RawOutput(ctx, feature)
	if err != nil {
		return mmodel.ReconcileReportItem{}, err
	}

	table := parse.RLM(output)

	usage, ok := table[feature]
	if !ok {
		return mmodel.ReconcileReportItem{}, lmerrors.BadServerOutputError{Feature: feature, Reason: "feature not present in rlmstat output"}
	}

	return mmodel.ReconcileReportItem{ProductFeature: productFeature, Used: usage.Used, Total: usage.Total}, nil
}
