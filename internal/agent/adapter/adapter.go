// Package adapter implements the vendor license-server adapters: one per
// Configuration.Type, each translating a list of LicenseServer endpoints
// into subprocess invocations and parsing their stdout into a usage report.
package adapter

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

// defaultCommandTimeout bounds a single vendor command invocation so a
// hanging license server binary never blocks the reconciliation scheduler.
const defaultCommandTimeout = 15 * time.Second

// ServerAdapter is the three-operation contract every vendor adapter
// implements: build the candidate commands, run them until one answers,
// and parse the answer into a usage record.
type ServerAdapter interface {
	// Commands returns one argv per configured LicenseServer, in listed
	// order, parameterized for the given feature.
	Commands(feature string) [][]string

	// RawOutput runs each command from Commands in order and returns the
	// stdout of the first one that produces non-empty output and exits
	// zero. Returns NoServerAvailableError if none do.
	RawOutput(ctx context.Context, feature string) ([]byte, error)

	// ReportItem runs RawOutput and parses it into a {product_feature,
	// used, total} record. Returns BadServerOutputError if the parser
	// could not extract a total for the feature.
	ReportItem(ctx context.Context, productFeature, feature string) (mmodel.ReconcileReportItem, error)
}

// runFirstNonEmpty executes each argv in order, with a per-command timeout,
// and returns the stdout of the first that exits zero with non-empty
// output. Individual command failures are swallowed (the next server is
// tried); only exhausting every command is an error.
func runFirstNonEmpty(ctx context.Context, feature string, argvs [][]string) ([]byte, error) {
	for _, argv := range argvs {
		if len(argv) == 0 {
			continue
		}

		cctx, cancel := context.WithTimeout(ctx, defaultCommandTimeout)

		cmd := exec.CommandContext(cctx, argv[0], argv[1:]...)

		var stdout bytes.Buffer
		cmd.Stdout = &stdout

		err := cmd.Run()
		cancel()

		if err != nil {
			continue
		}

		if stdout.Len() == 0 {
			continue
		}

		return stdout.Bytes(), nil
	}

	return nil, lmerrors.NoServerAvailableError{Feature: feature}
}

// SplitProductFeature splits a "product.feature" wire key into its feature
// name, the only half the adapters themselves care about.
func SplitProductFeature(productFeature string) string {
	for i := len(productFeature) - 1; i >= 0; i-- {
		if productFeature[i] == '.' {
			return productFeature[i+1:]
		}
	}

	return productFeature
}

// portAtHost renders a LicenseServer as the "port@host" token every vendor
// CLI expects.
func portAtHost(s mmodel.LicenseServer) string {
	return strconv.Itoa(s.Port) + "@" + s.Host
}

// New builds the ServerAdapter for the given Configuration.Type. binPath
// overrides the vendor CLI's default lookup-on-PATH name; pass "" to use
// the default.
func New(configType mmodel.ConfigurationType, servers []mmodel.LicenseServer, binPath string) (ServerAdapter, error) {
	switch configType {
	case mmodel.ConfigurationTypeFlexLM:
		return &FlexLMAdapter{Servers: servers, LmutilPath: binPath}, nil
	case mmodel.ConfigurationTypeRLM:
		return &RLMAdapter{Servers: servers, RlmutilPath: binPath}, nil
	case mmodel.ConfigurationTypeLSDyna:
		return &LSDynaAdapter{Servers: servers, LstcQrunPath: binPath}, nil
	case mmodel.ConfigurationTypeLMX:
		return &LMXAdapter{Servers: servers, LmxendutilPath: binPath}, nil
	case mmodel.ConfigurationTypeOLicense:
		return &OLicenseAdapter{Servers: servers, OlstatPath: binPath}, nil
	default:
		return nil, fmt.Errorf("unknown configuration type %q", configType)
	}
}
