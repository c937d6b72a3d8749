package bootstrap

import (
	"fmt"
	"time"

	"github.com/niklasmelin/license-manager/internal/ledger/adapters/postgres/booking"
	"github.com/niklasmelin/license-manager/internal/ledger/adapters/postgres/cluster"
	"github.com/niklasmelin/license-manager/internal/ledger/adapters/postgres/configuration"
	"github.com/niklasmelin/license-manager/internal/ledger/adapters/postgres/feature"
	"github.com/niklasmelin/license-manager/internal/ledger/adapters/postgres/inventory"
	"github.com/niklasmelin/license-manager/internal/ledger/adapters/postgres/job"
	"github.com/niklasmelin/license-manager/internal/ledger/adapters/postgres/licenseserver"
	"github.com/niklasmelin/license-manager/internal/ledger/adapters/postgres/product"
	httpin "github.com/niklasmelin/license-manager/internal/ledger/adapters/http/in"
	"github.com/niklasmelin/license-manager/internal/ledger/auth"
	"github.com/niklasmelin/license-manager/internal/ledger/services/command"
	"github.com/niklasmelin/license-manager/internal/ledger/services/query"
	"github.com/niklasmelin/license-manager/pkg/mjwt"
	"github.com/niklasmelin/license-manager/pkg/mlog"
	"github.com/niklasmelin/license-manager/pkg/mpostgres"
)

// Service is the fully wired ledger component: a single HTTP server backed
// by one Postgres connection, ready to Run.
type Service struct {
	Config *Config
	Logger mlog.Logger
	Server *Server
}

// InitService loads config, connects to Postgres, wires every repository
// into the command/query use cases, builds the auth middleware, and
// assembles the HTTP router.
func InitService() (*Service, error) {
	cfg, err := InitConfig()
	if err != nil {
		return nil, err
	}

	logger, err := mlog.NewZap(cfg.EnvName, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	pc := &mpostgres.Connection{
		ConnectionString: cfg.ConnectionString(),
		DBName:           cfg.DBName,
		Logger:           logger,
	}

	if err := pc.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	clusterRepo := cluster.NewPostgreSQLRepository(pc)
	configurationRepo := configuration.NewPostgreSQLRepository(pc)
	licenseServerRepo := licenseserver.NewPostgreSQLRepository(pc)
	productRepo := product.NewPostgreSQLRepository(pc)
	featureRepo := feature.NewPostgreSQLRepository(pc)
	inventoryRepo := inventory.NewPostgreSQLRepository(pc)
	jobRepo := job.NewPostgreSQLRepository(pc)
	bookingRepo := booking.NewPostgreSQLRepository(pc)

	cmd := &command.UseCase{
		ClusterRepo:       clusterRepo,
		ConfigurationRepo: configurationRepo,
		LicenseServerRepo: licenseServerRepo,
		ProductRepo:       productRepo,
		FeatureRepo:       featureRepo,
		InventoryRepo:     inventoryRepo,
		JobRepo:           jobRepo,
		BookingRepo:       bookingRepo,
	}

	qry := &query.UseCase{
		ClusterRepo:       clusterRepo,
		ConfigurationRepo: configurationRepo,
		LicenseServerRepo: licenseServerRepo,
		ProductRepo:       productRepo,
		FeatureRepo:       featureRepo,
		InventoryRepo:     inventoryRepo,
		JobRepo:           jobRepo,
		BookingRepo:       bookingRepo,
	}

	authMiddleware := &auth.Middleware{
		Validator: &mjwt.Validator{
			Primary: &mjwt.JWKProvider{URI: cfg.JWKPrimaryURI, CacheDuration: time.Hour},
		},
	}

	if cfg.JWKAdminURI != "" {
		authMiddleware.Validator.Admin = &mjwt.JWKProvider{URI: cfg.JWKAdminURI, CacheDuration: time.Hour}
	}

	router := httpin.NewRouter(logger, authMiddleware, cmd, qry)

	return &Service{
		Config: cfg,
		Logger: logger,
		Server: NewServer(cfg, router, logger),
	}, nil
}

// Run starts the HTTP server and blocks until it shuts down.
func (s *Service) Run() error {
	s.Logger.Infof("starting %s (env=%s)", ApplicationName, s.Config.EnvName)
	return s.Server.Run()
}
