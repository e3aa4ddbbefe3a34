package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigFileEnv names an optional YAML file layered between the defaults
// and the environment.
const ConfigFileEnv = "SMSLEDGER_CONFIG"

type StorageDriver string

const (
	StorageDriverPostgres StorageDriver = "postgres"
	StorageDriverSQLite   StorageDriver = "sqlite"
)

type Config struct {
	PostgresAddress  string `koanf:"postgres_address"`
	PostgresPort     string `koanf:"postgres_port"`
	PostgresDB       string `koanf:"postgres_db"`
	PostgresUsername string `koanf:"postgres_username"`
	PostgresPassword string `koanf:"postgres_password"`

	StorageDriver StorageDriver `koanf:"storage_driver"`
	SQLitePath    string        `koanf:"sqlite_path"`

	HTTPPort        string `koanf:"http_port"`
	OperatorWorkers int    `koanf:"operator_workers"`
	LogLevel        string `koanf:"log_level"`

	// An empty key disables enrichment entirely.
	EnrichmentAPIKey  string        `koanf:"enrichment_api_key"`
	EnrichmentURL     string        `koanf:"enrichment_url"`
	EnrichmentModel   string        `koanf:"enrichment_model"`
	EnrichmentTimeout time.Duration `koanf:"enrichment_timeout"`

	BankSenders []string `koanf:"bank_senders"`
}

// In all cases the default behavior should be for the docker compose setup
var defaults = map[string]interface{}{
	"postgres_address":   "localhost",
	"postgres_port":      "5433",
	"postgres_db":        "postgres",
	"postgres_username":  "postgres",
	"postgres_password":  "testpassword",
	"storage_driver":     string(StorageDriverPostgres),
	"sqlite_path":        "sms-ledger.db",
	"http_port":          "9446",
	"operator_workers":   4,
	"log_level":          "info",
	"enrichment_api_key": "",
	"enrichment_url":     "https://api.deepseek.com/v1/chat/completions",
	"enrichment_model":   "deepseek-chat",
	"enrichment_timeout": "10s",
	"bank_senders":       []string{},
}

func ProcessEnvironmentVariables() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("config: defaults: %w", err)
	}

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if _, known := defaults[key]; !known {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.BankSenders = cleanList(cfg.BankSenders)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.StorageDriver {
	case StorageDriverPostgres, StorageDriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("config: storage_driver must be postgres or sqlite, got %q", c.StorageDriver))
	}
	if c.EnrichmentTimeout <= 0 {
		errs = append(errs, fmt.Errorf("config: enrichment_timeout must be positive, got %s", c.EnrichmentTimeout))
	}
	if c.OperatorWorkers < 1 {
		errs = append(errs, fmt.Errorf("config: operator_workers must be at least 1, got %d", c.OperatorWorkers))
	}
	return errors.Join(errs...)
}

// EnrichmentEnabled reports whether an API key was configured.
func (c *Config) EnrichmentEnabled() bool {
	return c.EnrichmentAPIKey != ""
}

func (c *Config) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUsername, c.PostgresPassword),
		Host:     c.PostgresAddress + ":" + c.PostgresPort,
		Path:     "/" + c.PostgresDB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func (c *Config) SQLiteDSN() string {
	return "file:" + c.SQLitePath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
