package bootstrap

import (
	"context"
	"fmt"

	"github.com/niklasmelin/license-manager/internal/agent/reconcile"
	agentserver "github.com/niklasmelin/license-manager/internal/agent/server"
	"github.com/niklasmelin/license-manager/internal/client"
	"github.com/niklasmelin/license-manager/pkg/mlog"
)

// Service is the fully wired cluster agent: one authenticated ledger
// client, one reconciliation cycle, driven by a timer and an on-demand
// HTTP trigger.
type Service struct {
	Config *Config
	Logger mlog.Logger
	Runner *Runner
}

// InitService loads config, builds the ledger client, and assembles the
// reconciliation cycle's dependencies.
func InitService() (*Service, error) {
	cfg, err := InitConfig()
	if err != nil {
		return nil, err
	}

	logger, err := mlog.NewZap(cfg.EnvName, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	ledgerClient := client.New(cfg.ClientConfig())

	reconcileCfg := reconcile.Config{
		Client:    ledgerClient,
		Logger:    logger,
		SqueueCmd: cfg.SqueueArgv(),
		ClusterID: cfg.ClusterID,
		BinPaths:  cfg.BinPaths(),
	}

	runCycle := func(ctx context.Context) (*reconcile.Result, error) {
		return reconcile.Cycle(ctx, reconcileCfg)
	}

	runner := &Runner{
		Logger:         logger,
		RunCycle:       runCycle,
		Interval:       cfg.StatInterval(),
		TriggerApp:     agentserver.NewServer(logger, cfg.TriggerSecret, runCycle),
		TriggerAddress: cfg.TriggerAddress,
	}

	return &Service{Config: cfg, Logger: logger, Runner: runner}, nil
}

// Run starts the timer loop and the on-demand trigger server and blocks
// until an interrupt or termination signal triggers a graceful shutdown.
func (s *Service) Run() error {
	s.Logger.Infof("starting %s (env=%s, cluster=%s)", ApplicationName, s.Config.EnvName, s.Config.ClusterID)
	return s.Runner.Run()
}
