package mpostgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bxcodec/dbresolver/v2"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/niklasmelin/license-manager/pkg/mlog"
)

// Connection is a hub dealing with a single-primary Postgres pool; it does
// not own schema migrations, as the ledger's tables are provisioned out of
// band.
type Connection struct {
	ConnectionString string
	DBName           string
	Logger           mlog.Logger

	db        *dbresolver.DB
	connected bool
}

// Connect opens the primary pool and pings it. Safe to call once; GetDB
// calls it lazily if it hasn't run yet.
func (c *Connection) Connect() error {
	logger := c.Logger
	if logger == nil {
		logger = mlog.NoOp()
	}

	logger.Infof("connecting to postgres database %q", c.DBName)

	primary, err := sql.Open("pgx", c.ConnectionString)
	if err != nil {
		return fmt.Errorf("opening primary connection: %w", err)
	}

	resolver := dbresolver.New(dbresolver.WithPrimaryDBs(primary))

	if err := resolver.Ping(); err != nil {
		return fmt.Errorf("pinging postgres: %w", err)
	}

	c.db = &resolver
	c.connected = true

	logger.Infof("connected to postgres database %q", c.DBName)

	return nil
}

// GetDB returns the pool, connecting on first use.
func (c *Connection) GetDB(ctx context.Context) (dbresolver.DB, error) {
	if !c.connected {
		if err := c.Connect(); err != nil {
			return nil, err
		}
	}

	return *c.db, nil
}
