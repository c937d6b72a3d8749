package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/niklasmelin/license-manager/pkg/mlog"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the fiber app with the address it listens on.
type Server struct {
	app           *fiber.App
	serverAddress string
	logger        mlog.Logger
}

// NewServer builds a Server from the given config and router.
func NewServer(cfg *Config, app *fiber.App, logger mlog.Logger) *Server {
	serverAddress := cfg.ServerAddress
	if serverAddress == "" {
		serverAddress = ":3002"
	}

	return &Server{app: app, serverAddress: serverAddress, logger: logger}
}

// ServerAddress returns the address the server listens on.
func (s *Server) ServerAddress() string {
	return s.serverAddress
}

// Run starts the fiber app and blocks until an interrupt or termination
// signal triggers a graceful shutdown.
func (s *Server) Run() error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Infof("listening on %s", s.serverAddress)

		if err := s.app.Listen(s.serverAddress); err != nil {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		s.logger.Info("shutdown signal received, draining connections")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return s.app.ShutdownWithContext(ctx)
}
