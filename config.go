package gate

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/sethvargo/go-envconfig"
)

// EnvConfig is the environment-backed Config implementation. Field defaults
// match the platform's development setup.
type EnvConfig struct {
	BaseURL             string `env:"GATE_BASE_URL, default=http://localhost:3000/api"`
	CredentialKey       string `env:"GATE_CREDENTIAL_KEY, default=token"`
	NotAuthorizedStatus int    `env:"GATE_NOT_AUTHORIZED_STATUS, default=406"`
	RequestTimeout      int    `env:"GATE_REQUEST_TIMEOUT, default=15"`
	StoragePath         string `env:"GATE_STORAGE_PATH"`
}

var _ Config = (*EnvConfig)(nil)

// LoadConfig reads configuration from environment variables.
func LoadConfig(ctx context.Context) (*EnvConfig, error) {
	cfg := &EnvConfig{}
	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load gate configuration")
	}
	return cfg, nil
}

func (c *EnvConfig) GetBaseURL() string { return c.BaseURL }

func (c *EnvConfig) GetCredentialKey() string { return c.CredentialKey }

// GetNotAuthorizedStatus returns the distinguished response status that
// invalidates the credential store (406 on this platform).
func (c *EnvConfig) GetNotAuthorizedStatus() int { return c.NotAuthorizedStatus }

// GetRequestTimeout returns the per-request timeout in seconds.
func (c *EnvConfig) GetRequestTimeout() int { return c.RequestTimeout }

func (c *EnvConfig) GetStoragePath() string { return c.StoragePath }
