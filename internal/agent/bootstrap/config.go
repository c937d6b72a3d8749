package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/niklasmelin/license-manager/internal/client"
	"github.com/niklasmelin/license-manager/pkg/mmodel"
)

// ApplicationName identifies this component in logs and telemetry.
const ApplicationName = "agent"

// Config is the cluster agent's top-level configuration, loaded from
// environment variables.
type Config struct {
	EnvName  string `env:"ENV_NAME" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	ClusterID string `env:"CLUSTER_ID,required"`

	BackendBaseURL    string `env:"BACKEND_BASE_URL,required"`
	Auth0Domain       string `env:"AUTH0_DOMAIN,required"`
	Auth0Audience     string `env:"AUTH0_AUDIENCE,required"`
	Auth0ClientID     string `env:"AUTH0_CLIENT_ID,required"`
	Auth0ClientSecret string `env:"AUTH0_CLIENT_SECRET,required"`

	// SqueueCmd is a full command line, split on whitespace. It must produce
	// tab-separated job_id/user/state/run_time lines; the exact --format
	// string depends on the scheduler build, so there is no sane default.
	SqueueCmd string `env:"SQUEUE_CMD,required"`

	StatIntervalSecs int `env:"STAT_INTERVAL" envDefault:"300"`

	TriggerAddress string `env:"TRIGGER_ADDRESS" envDefault:":7575"`
	TriggerSecret  string `env:"TRIGGER_SECRET,required"`

	LmutilPath     string `env:"LMUTIL_PATH"`
	RlmutilPath    string `env:"RLMUTIL_PATH"`
	LstcQrunPath   string `env:"LSDYNA_PATH"`
	LmxendutilPath string `env:"LMXENDUTIL_PATH"`
	OlstatPath     string `env:"OLSTAT_PATH"`
}

// InitConfig loads Config from the environment.
func InitConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("loading agent config from environment: %w", err)
	}

	return cfg, nil
}

// ClientConfig projects the fields internal/client.Client needs out of the
// agent's full Config.
func (c *Config) ClientConfig() client.Config {
	return client.Config{
		BackendBaseURL: c.BackendBaseURL,
		Auth0Domain:    c.Auth0Domain,
		Auth0Audience:  c.Auth0Audience,
		Auth0ClientID:  c.Auth0ClientID,
		Auth0Secret:    c.Auth0ClientSecret,
	}
}

// StatInterval returns the configured timer period between reconciliation
// cycles.
func (c *Config) StatInterval() time.Duration {
	return time.Duration(c.StatIntervalSecs) * time.Second
}

// SqueueArgv splits the configured squeue command line into an argv,
// matching exec.Command's expectations.
func (c *Config) SqueueArgv() []string {
	return strings.Fields(c.SqueueCmd)
}

// BinPaths maps each vendor adapter's configuration type to the CLI path
// override configured for it. An empty value means "use the default,
// PATH-relative name".
func (c *Config) BinPaths() map[mmodel.ConfigurationType]string {
	return map[mmodel.ConfigurationType]string{
		mmodel.ConfigurationTypeFlexLM:   c.LmutilPath,
		mmodel.ConfigurationTypeRLM:      c.RlmutilPath,
		mmodel.ConfigurationTypeLSDyna:   c.LstcQrunPath,
		mmodel.ConfigurationTypeLMX:      c.LmxendutilPath,
		mmodel.ConfigurationTypeOLicense: c.OlstatPath,
	}
}
