// Command ledger runs the license-accounting HTTP service: the ledger of
// clusters, configurations, license servers, products, features, their
// inventory, and the bookings and reconciliations against them.
package main

import (
	"fmt"
	"os"

	"github.com/niklasmelin/license-manager/internal/ledger/bootstrap"
)

func main() {
	service, err := bootstrap.InitService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize ledger service: %v\n", err)
		os.Exit(1)
	}

	if err := service.Run(); err != nil {
		service.Logger.Errorf("ledger service exited with error: %v", err)
		_ = service.Logger.Sync()

		os.Exit(1)
	}
}
