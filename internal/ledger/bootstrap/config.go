package bootstrap

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ApplicationName identifies this component in logs and telemetry.
const ApplicationName = "ledger"

// Config is the ledger component's top-level configuration, loaded from
// environment variables.
type Config struct {
	EnvName  string `env:"ENV_NAME" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Version  string `env:"VERSION"`

	ServerAddress string `env:"SERVER_ADDRESS" envDefault:":3002"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"license_manager"`
	DBSSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`

	JWKPrimaryURI string `env:"JWK_PRIMARY_URI"`
	JWKAdminURI   string `env:"JWK_ADMIN_URI"`
}

// InitConfig loads Config from the environment.
func InitConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("loading ledger config from environment: %w", err)
	}

	return cfg, nil
}

// ConnectionString builds the Postgres DSN from the config's DB fields.
func (c *Config) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}
