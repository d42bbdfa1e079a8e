// Package secrets supplies the environment-scoped Fortnox credential pairs.
// Which pair is loaded is decided per event by its live flag, not at startup.
package secrets

import (
	"context"
	"fmt"
	"os"

	"github.com/flexinets/fortnox-gateway/internal/config"
	"github.com/flexinets/fortnox-gateway/internal/infrastructure/fortnox"
)

type Store interface {
	Credentials(ctx context.Context, live bool) (fortnox.Credentials, error)
}

// EnvStore reads credentials from environment variables named in config.
type EnvStore struct {
	cfg config.SecretsConfig
}

func NewEnvStore(cfg config.SecretsConfig) *EnvStore {
	return &EnvStore{cfg: cfg}
}

func (s *EnvStore) Credentials(_ context.Context, live bool) (fortnox.Credentials, error) {
	tokenVar, secretVar := s.cfg.AccessTokenTest, s.cfg.ClientSecretTest
	if live {
		tokenVar, secretVar = s.cfg.AccessTokenLive, s.cfg.ClientSecretLive
	}

	token, err := lookup(tokenVar)
	if err != nil {
		return fortnox.Credentials{}, err
	}
	secret, err := lookup(secretVar)
	if err != nil {
		return fortnox.Credentials{}, err
	}
	return fortnox.Credentials{AccessToken: token, ClientSecret: secret}, nil
}

func lookup(name string) (string, error) {
	value, ok := os.LookupEnv(name)
	if !ok || value == "" {
		return "", fmt.Errorf("secret %s is not set", name)
	}
	return value, nil
}
