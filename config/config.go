package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all broker configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Ledger     LedgerConfig     `mapstructure:"ledger"`
	Wallet     WalletConfig     `mapstructure:"wallet"`
	Directory  DirectoryConfig  `mapstructure:"directory"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Settlement SettlementConfig `mapstructure:"settlement"`
	Dispute    DisputeConfig    `mapstructure:"dispute"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// LedgerConfig selects and tunes the ledger store adapter.
type LedgerConfig struct {
	Driver         string        `mapstructure:"driver"`          // memory, postgres
	LockPeriod     time.Duration `mapstructure:"lock_period"`     // refund lock, 24h on mainnet contracts
	ConfirmTimeout time.Duration `mapstructure:"confirm_timeout"` // per-submission deadline
	ReadRetries    uint          `mapstructure:"read_retries"`
	// FundingBalance seeds the external wallet of the memory driver.
	FundingBalance int64 `mapstructure:"funding_balance"`
}

type WalletConfig struct {
	PrivateKey string `mapstructure:"private_key"` // hex-encoded secp256k1 key
}

// ProviderConfig is a statically configured provider service.
type ProviderConfig struct {
	Address       string `mapstructure:"address"`
	ServiceType   string `mapstructure:"service_type"`
	Endpoint      string `mapstructure:"endpoint"`
	Model         string `mapstructure:"model"`
	InputPrice    string `mapstructure:"input_price"`
	OutputPrice   string `mapstructure:"output_price"`
	MinFee        int64  `mapstructure:"min_fee"`
	Verifiability string `mapstructure:"verifiability"` // none, TEE
	TEESigner     string `mapstructure:"tee_signer"`
}

type DirectoryConfig struct {
	Source    string           `mapstructure:"source"` // static, http
	URL       string           `mapstructure:"url"`
	CacheTTL  time.Duration    `mapstructure:"cache_ttl"`
	Timeout   time.Duration    `mapstructure:"timeout"`
	PageSize  int              `mapstructure:"page_size"`
	Providers []ProviderConfig `mapstructure:"providers"`
}

type AuthConfig struct {
	NonceTTL          time.Duration `mapstructure:"nonce_ttl"`
	MaxTimestampDrift time.Duration `mapstructure:"max_timestamp_drift"`
}

type SettlementConfig struct {
	DedupTTL      time.Duration `mapstructure:"dedup_ttl"`
	DefaultMinFee int64         `mapstructure:"default_min_fee"`
	ProofTimeout  time.Duration `mapstructure:"proof_timeout"`
	InFlightWait  time.Duration `mapstructure:"in_flight_wait"`
}

type DisputeConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
	Secret     string `mapstructure:"secret"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: BRK_.
// Nested keys use underscore: BRK_LEDGER_DRIVER, BRK_WALLET_PRIVATE_KEY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 3090)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "serving_broker")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("ledger.driver", "memory")
	v.SetDefault("ledger.lock_period", "24h")
	v.SetDefault("ledger.confirm_timeout", "30s")
	v.SetDefault("ledger.read_retries", 3)
	v.SetDefault("ledger.funding_balance", 0)
	v.SetDefault("wallet.private_key", "")
	v.SetDefault("directory.source", "static")
	v.SetDefault("directory.url", "")
	v.SetDefault("directory.cache_ttl", "1m")
	v.SetDefault("directory.timeout", "10s")
	v.SetDefault("directory.page_size", 50)
	v.SetDefault("auth.nonce_ttl", "10m")
	v.SetDefault("auth.max_timestamp_drift", "60s")
	v.SetDefault("settlement.dedup_ttl", "24h")
	v.SetDefault("settlement.default_min_fee", 1)
	v.SetDefault("settlement.proof_timeout", "10s")
	v.SetDefault("settlement.in_flight_wait", "5s")
	v.SetDefault("dispute.webhook_url", "")
	v.SetDefault("dispute.secret", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: BRK_LEDGER_DRIVER -> ledger.driver
	v.SetEnvPrefix("BRK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects combinations the broker cannot start with.
func (c *Config) Validate() error {
	switch c.Ledger.Driver {
	case "memory", "postgres":
	default:
		return fmt.Errorf("ledger.driver: unsupported driver %q", c.Ledger.Driver)
	}
	switch c.Directory.Source {
	case "static":
	case "http":
		if c.Directory.URL == "" {
			return fmt.Errorf("directory.url: required when directory.source is http")
		}
	default:
		return fmt.Errorf("directory.source: unsupported source %q", c.Directory.Source)
	}
	if c.Ledger.LockPeriod <= 0 {
		return fmt.Errorf("ledger.lock_period: must be positive")
	}
	return nil
}
