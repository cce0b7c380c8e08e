package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v9"

	"git.sr.ht/~jakintosh/idtoken/internal/logging"
	"git.sr.ht/~jakintosh/idtoken/pkg/tokens"
)

var errNoSecret = errors.New("no signing secret configured")

func ErrNoSecret() error { return errNoSecret }

type Config struct {
	// Secret is the shared signing key. It takes precedence over SecretFile.
	Secret string `env:"IDTOKEN_SECRET"`

	// SecretFile names a file holding the key. It is only read by
	// SigningSecret, so commands that need no secret never touch it.
	SecretFile string `env:"IDTOKEN_SECRET_FILE"`

	// Addr is the listen address for 'idtoken serve'
	Addr string `env:"IDTOKEN_ADDR" envDefault:":8080"`

	Log LogConfig
}

// LogConfig is the configuration for the logger
type LogConfig struct {
	Level    string `env:"IDTOKEN_LOG_LEVEL" envDefault:"info"`
	Mode     string `env:"IDTOKEN_LOG_MODE" envDefault:"production"`
	Encoding string `env:"IDTOKEN_LOG_ENCODING" envDefault:"console"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// LoadFrom loads the configuration from vars instead of the process
// environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// SigningSecret builds the token secret from IDTOKEN_SECRET, or failing
// that from the contents of the secret file with surrounding whitespace
// removed.
func (cfg *Config) SigningSecret() (tokens.Secret, error) {
	key := cfg.Secret
	if key == "" && cfg.SecretFile != "" {
		contents, err := os.ReadFile(cfg.SecretFile)
		if err != nil {
			return tokens.Secret{}, fmt.Errorf("failed to read secret file: %w", err)
		}
		key = strings.TrimSpace(string(contents))
	}
	if key == "" {
		return tokens.Secret{}, errNoSecret
	}

	secret, err := tokens.NewSecret([]byte(key))
	if err != nil {
		return tokens.Secret{}, fmt.Errorf("invalid signing secret: %w", err)
	}
	return secret, nil
}

func (cfg *Config) Logging() logging.Config {
	return logging.Config{
		Level:    cfg.Log.Level,
		Mode:     cfg.Log.Mode,
		Encoding: cfg.Log.Encoding,
	}
}
