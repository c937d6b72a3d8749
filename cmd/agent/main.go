// Command agent runs the cluster-side reconciliation agent: on a timer and
// on demand, it reads the workload scheduler's queue, invokes the
// configured vendor license-server adapters, reports merged usage to the
// ledger, and sweeps bookings whose grace_time has expired.
package main

import (
	"fmt"
	"os"

	"github.com/niklasmelin/license-manager/internal/agent/bootstrap"
)

func main() {
	service, err := bootstrap.InitService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize agent service: %v\n", err)
		os.Exit(1)
	}

	if err := service.Run(); err != nil {
		service.Logger.Errorf("agent service exited with error: %v", err)
		_ = service.Logger.Sync()

		os.Exit(1)
	}
}
