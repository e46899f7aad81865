package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable the wallet reads.
const EnvPrefix = "volt"

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Ledger   LedgerConfig
}

type AppConfig struct {
	LogLevel string `envconfig:"VOLT_LOG_LEVEL" default:"info"`
}

type UpstreamConfig struct {
	APIKey      string        `envconfig:"VOLT_API_KEY"`
	BaseURL     string        `envconfig:"VOLT_API_BASE_URL" default:"https://api.voltpay.dev" validate:"required,url"`
	HTTPTimeout time.Duration `envconfig:"VOLT_HTTP_TIMEOUT" default:"30s"`
}

type LedgerConfig struct {
	// Path holds the payment history ledger. Paylink and onchain settlements
	// are projected into the same file, tagged by source.
	Path string `envconfig:"VOLT_LEDGER_PATH" validate:"required"`

	// PaylinkCachePath holds raw paylink projections for local-first reads.
	PaylinkCachePath string `envconfig:"VOLT_PAYLINK_CACHE_PATH" validate:"required"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Ledger.ensurePaths(); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// ensurePaths fills in the default ~/.voltcli layout when paths are unset.
func (l *LedgerConfig) ensurePaths() error {
	if l.Path != "" && l.PaylinkCachePath != "" {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}
	base := filepath.Join(home, ".voltcli")
	if l.Path == "" {
		l.Path = filepath.Join(base, "ledger.json")
	}
	if l.PaylinkCachePath == "" {
		l.PaylinkCachePath = filepath.Join(base, "paylinks.json")
	}
	return nil
}
