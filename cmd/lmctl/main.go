// Command lmctl is the operator CLI for the license-manager ledger: create,
// inspect, and remove clusters, configurations, products, features,
// license-server endpoints, and bookings.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/niklasmelin/license-manager/internal/cli"
	"github.com/niklasmelin/license-manager/internal/client"
	"github.com/niklasmelin/license-manager/pkg/cliio"
)

func main() {
	cfg, err := cli.InitConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	factory := &cli.Factory{
		Client:    client.New(cfg.ClientConfig()),
		IOStreams: cliio.System(),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := cli.NewRootCommand(factory).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
