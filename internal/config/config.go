package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

const (
	StoreKindDynamo = "dynamo"
	StoreKindMemory = "memory"

	// DefaultSecretEnv is the environment variable holding the token
	// signing secret when the config does not name another one.
	DefaultSecretEnv = "VVAULT_SIGNING_SECRET"
)

type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string `yaml:"addr"`

	Store StoreConfig `yaml:"store"`
	Auth  AuthConfig  `yaml:"auth"`
}

type StoreConfig struct {
	// Kind selects the store adapter: "dynamo" or "memory".
	Kind string `yaml:"kind"`

	// Table is the DynamoDB table name (dynamo only).
	Table string `yaml:"table"`

	// Region is the AWS region (dynamo only, optional).
	Region string `yaml:"region"`

	// Endpoint overrides the DynamoDB endpoint for local development,
	// e.g. "http://localhost:8000".
	Endpoint string `yaml:"endpoint"`
}

type AuthConfig struct {
	// SecretEnv names the environment variable holding the signing
	// secret. Defaults to DefaultSecretEnv.
	SecretEnv string `yaml:"secret_env"`

	// SecretFile points to a file holding the signing secret. Takes
	// precedence over SecretEnv when set.
	SecretFile string `yaml:"secret_file"`
}

// Load reads and parses the configuration file at the given path.
// It returns a Config struct or an error if loading/parsing/validation fails.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	switch c.Store.Kind {
	case "":
		c.Store.Kind = StoreKindDynamo
	case StoreKindDynamo, StoreKindMemory:
	default:
		return fmt.Errorf("unknown store kind %q (want %q or %q)", c.Store.Kind, StoreKindDynamo, StoreKindMemory)
	}
	if c.Store.Kind == StoreKindDynamo && c.Store.Table == "" {
		return fmt.Errorf("store.table is required for the dynamo store")
	}
	return nil
}

// ResolveSecret loads the token signing secret. It is read exactly once at
// startup and held for the process lifetime; rotating it requires a restart.
func (c *AuthConfig) ResolveSecret() ([]byte, error) {
	if c.SecretFile != "" {
		data, err := os.ReadFile(c.SecretFile)
		if err != nil {
			return nil, fmt.Errorf("reading secret file: %w", err)
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("secret file %q is empty", c.SecretFile)
		}
		return data, nil
	}

	envName := c.SecretEnv
	if envName == "" {
		envName = DefaultSecretEnv
	}
	secret := os.Getenv(envName)
	if secret == "" {
		return nil, fmt.Errorf("signing secret not set (environment variable %s)", envName)
	}
	return []byte(secret), nil
}
