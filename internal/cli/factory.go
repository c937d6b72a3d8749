// Package cli implements lmctl's command tree: one subcommand group per
// ledger resource (cluster, configuration, product, feature, license-server,
// booking), each a thin wrapper over internal/client.Client.
package cli

import (
	"github.com/niklasmelin/license-manager/internal/client"
	"github.com/niklasmelin/license-manager/pkg/cliio"
)

// Factory carries the dependencies every subcommand needs: the ledger
// client and the streams to render output through. Built once in
// cmd/lmctl/main.go and threaded into every command constructor, so tests
// can substitute a client pointed at an httptest.Server and buffers in
// place of the terminal.
type Factory struct {
	Client    *client.Client
	IOStreams *cliio.IOStreams
}
