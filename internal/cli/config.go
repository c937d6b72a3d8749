package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/niklasmelin/license-manager/internal/client"
)

// Config is lmctl's environment-loaded configuration: just enough to reach
// the ledger through the shared authenticated client.
type Config struct {
	BackendBaseURL    string `env:"BACKEND_BASE_URL,required"`
	Auth0Domain       string `env:"AUTH0_DOMAIN,required"`
	Auth0Audience     string `env:"AUTH0_AUDIENCE,required"`
	Auth0ClientID     string `env:"AUTH0_CLIENT_ID,required"`
	Auth0ClientSecret string `env:"AUTH0_CLIENT_SECRET,required"`
}

// InitConfig loads Config from the environment.
func InitConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("loading lmctl config from environment: %w", err)
	}

	return cfg, nil
}

// ClientConfig projects the fields internal/client.Client needs out of cfg.
// Unlike the agent, lmctl is a synchronous, one-shot-per-invocation caller:
// its Client is built and used the same way, just never concurrently.
func (c *Config) ClientConfig() client.Config {
	return client.Config{
		BackendBaseURL: c.BackendBaseURL,
		Auth0Domain:    c.Auth0Domain,
		Auth0Audience:  c.Auth0Audience,
		Auth0ClientID:  c.Auth0ClientID,
		Auth0Secret:    c.Auth0ClientSecret,
	}
}
