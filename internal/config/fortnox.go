package config

type FortnoxConfig struct {
	BaseURL        string        `yaml:"base_url" validate:"required,url"`
	TimeoutSeconds int           `yaml:"timeout_seconds" validate:"min=0"`
	Secrets        SecretsConfig `yaml:"secrets"`
}

// SecretsConfig names the environment variables holding the Fortnox
// credential pairs. Which pair is read is decided per event by its live flag.
type SecretsConfig struct {
	AccessTokenLive  string `yaml:"access_token_live" validate:"required"`
	ClientSecretLive string `yaml:"client_secret_live" validate:"required"`
	AccessTokenTest  string `yaml:"access_token_test" validate:"required"`
	ClientSecretTest string `yaml:"client_secret_test" validate:"required"`
}

func (s *SecretsConfig) applyDefaults() {
	if s.AccessTokenLive == "" {
		s.AccessTokenLive = "FORTNOX_ACCESS_TOKEN_PROD"
	}
	if s.ClientSecretLive == "" {
		s.ClientSecretLive = "FORTNOX_CLIENT_SECRET_PROD"
	}
	if s.AccessTokenTest == "" {
		s.AccessTokenTest = "FORTNOX_ACCESS_TOKEN_TEST"
	}
	if s.ClientSecretTest == "" {
		s.ClientSecretTest = "FORTNOX_CLIENT_SECRET_TEST"
	}
}
