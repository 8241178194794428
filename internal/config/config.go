package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported record store drivers.
const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig          `yaml:"app"`
	Store        StoreConfig        `yaml:"store"`
	Postgres     PostgresConfig     `yaml:"postgres"`
	Redis        RedisConfig        `yaml:"redis"`
	Logger       LoggerConfig       `yaml:"logger"`
	Auth         AuthConfig         `yaml:"auth"`
	CORS         CORSConfig         `yaml:"cors"`
	Notification NotificationConfig `yaml:"notification"`
	Metrics      MetricsConfig      `yaml:"metrics"`
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string `yaml:"name"`
	Env                   string `yaml:"env"`
	Host                  string `yaml:"host"`
	Port                  string `yaml:"port"`
	Version               string `yaml:"version"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds"`
}

// StoreConfig selects the record store backend.
type StoreConfig struct {
	Driver string `yaml:"driver"`
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string `yaml:"dsn"`
	MaxConns       int32  `yaml:"max_conns"`
	MinConns       int32  `yaml:"min_conns"`
	RunMigrations  bool   `yaml:"run_migrations"`
	ConnMaxIdleSec int32  `yaml:"conn_max_idle_seconds"`
	ConnMaxLifeSec int32  `yaml:"conn_max_life_seconds"`
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `yaml:"level"`
}

// AuthConfig defines authentication parameters.
// An empty JWTSecret makes the token manager fall back to its development key.
type AuthConfig struct {
	JWTSecret              string `yaml:"jwt_secret"`
	AccessTokenTTLMinutes  int    `yaml:"access_token_ttl_minutes"`
	DefaultTokenTTLMinutes int    `yaml:"default_token_ttl_minutes"`
	BcryptCost             int    `yaml:"bcrypt_cost"`
	BootstrapAdminEmail    string `yaml:"bootstrap_admin_email"`
	BootstrapAdminPassword string `yaml:"bootstrap_admin_password"`
	BootstrapAdminFullName string `yaml:"bootstrap_admin_full_name"`
}

// CORSConfig lists origins allowed to call the API.
type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"`
}

// NotificationConfig controls where domain events are fanned out.
type NotificationConfig struct {
	Channel string `yaml:"channel"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads configuration from defaults, an optional YAML file named by
// LIMS_CONFIG_FILE and finally environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv("LIMS_CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:                  "labtrack-lims",
			Env:                   "development",
			Host:                  "0.0.0.0",
			Port:                  "8000",
			Version:               "1.0.0",
			RequestTimeoutSeconds: 30,
		},
		Store: StoreConfig{Driver: StoreDriverMemory},
		Postgres: PostgresConfig{
			MaxConns:       10,
			MinConns:       2,
			RunMigrations:  true,
			ConnMaxIdleSec: 30,
			ConnMaxLifeSec: 300,
		},
		Logger: LoggerConfig{Level: "info"},
		Auth: AuthConfig{
			AccessTokenTTLMinutes:  30,
			DefaultTokenTTLMinutes: 15,
			BcryptCost:             12,
			BootstrapAdminFullName: "Admin User",
		},
		CORS:         CORSConfig{AllowOrigins: "*"},
		Notification: NotificationConfig{Channel: "labtrack.events"},
		Metrics:      MetricsConfig{Enabled: true},
	}
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnv("APP_PORT", cfg.App.Port)
	cfg.App.Version = getEnv("APP_VERSION", cfg.App.Version)
	cfg.App.RequestTimeoutSeconds = getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", cfg.App.RequestTimeoutSeconds)

	cfg.Store.Driver = strings.ToLower(getEnv("STORE_DRIVER", cfg.Store.Driver))

	cfg.Postgres.DSN = getEnv("POSTGRES_DSN", cfg.Postgres.DSN)
	cfg.Postgres.MaxConns = int32(getEnvAsInt("POSTGRES_MAX_CONNS", int(cfg.Postgres.MaxConns)))
	cfg.Postgres.MinConns = int32(getEnvAsInt("POSTGRES_MIN_CONNS", int(cfg.Postgres.MinConns)))
	cfg.Postgres.RunMigrations = getEnvAsBool("POSTGRES_RUN_MIGRATIONS", cfg.Postgres.RunMigrations)
	cfg.Postgres.ConnMaxIdleSec = int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", int(cfg.Postgres.ConnMaxIdleSec)))
	cfg.Postgres.ConnMaxLifeSec = int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", int(cfg.Postgres.ConnMaxLifeSec)))

	if raw := os.Getenv("REDIS_DB"); raw != "" {
		redisDB, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.Redis.DB = redisDB
	}
	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)

	cfg.Logger.Level = getEnv("LOG_LEVEL", cfg.Logger.Level)

	cfg.Auth.JWTSecret = getEnv("AUTH_JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.AccessTokenTTLMinutes = getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", cfg.Auth.AccessTokenTTLMinutes)
	cfg.Auth.DefaultTokenTTLMinutes = getEnvAsInt("AUTH_DEFAULT_TOKEN_TTL_MINUTES", cfg.Auth.DefaultTokenTTLMinutes)
	cfg.Auth.BcryptCost = getEnvAsInt("AUTH_BCRYPT_COST", cfg.Auth.BcryptCost)
	cfg.Auth.BootstrapAdminEmail = getEnv("BOOTSTRAP_ADMIN_EMAIL", cfg.Auth.BootstrapAdminEmail)
	cfg.Auth.BootstrapAdminPassword = getEnv("BOOTSTRAP_ADMIN_PASSWORD", cfg.Auth.BootstrapAdminPassword)
	cfg.Auth.BootstrapAdminFullName = getEnv("BOOTSTRAP_ADMIN_FULL_NAME", cfg.Auth.BootstrapAdminFullName)

	cfg.CORS.AllowOrigins = getEnv("CORS_ALLOW_ORIGINS", cfg.CORS.AllowOrigins)
	cfg.Notification.Channel = getEnv("NOTIFY_CHANNEL", cfg.Notification.Channel)
	cfg.Metrics.Enabled = getEnvAsBool("METRICS_ENABLED", cfg.Metrics.Enabled)
	return nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverMemory:
	case StoreDriverPostgres:
		if c.Postgres.DSN == "" {
			return errors.New("POSTGRES_DSN is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}
	if c.Auth.AccessTokenTTLMinutes <= 0 {
		return errors.New("access token ttl must be positive")
	}
	if c.Auth.DefaultTokenTTLMinutes <= 0 {
		return errors.New("default token ttl must be positive")
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// AccessTokenTTL is the lifetime of tokens issued at login.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinutes) * time.Minute
}

// DefaultTokenTTL is used when a caller issues a token without a lifetime.
func (a AuthConfig) DefaultTokenTTL() time.Duration {
	return time.Duration(a.DefaultTokenTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
