package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for NetBridge.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Bridge    BridgeConfig    `yaml:"bridge"`
	NetBox    NetBoxConfig    `yaml:"netbox"`
	Inventory InventoryConfig `yaml:"inventory"`
	Logging   LoggingConfig   `yaml:"logging"`
	Database  DatabaseConfig  `yaml:"database"`
	Audit     AuditConfig     `yaml:"audit"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	Security  SecurityConfig  `yaml:"security"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
	CORS     CORSConfig       `yaml:"cors"`
}

// APITimeoutConfig contains HTTP timeout settings in seconds.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// CORSConfig contains Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
}

// BridgeConfig contains settings for the MCP tool-invocation bridge,
// the primary channel to the inventory system.
type BridgeConfig struct {
	// URL is the base URL of the bridge endpoint. Tool invocations are
	// POSTed to <URL>/invoke.
	URL string `yaml:"url"`

	// Timeout is the per-call timeout in seconds. Default: 30.
	Timeout int `yaml:"timeout"`
}

// NetBoxConfig contains settings for the direct NetBox REST fallback.
// The fallback is disabled unless both BaseURL and Token are set.
type NetBoxConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`

	// Timeout is the per-call timeout in seconds. Default: 30.
	Timeout int `yaml:"timeout"`
}

// InventoryConfig contains inventory query behaviour settings.
type InventoryConfig struct {
	// DefaultLimit is the result-count limit applied to list operations
	// when the caller does not specify one. Default: 200.
	DefaultLimit int `yaml:"default_limit"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// DatabaseConfig contains SQLite database settings for the audit trail.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// AuditConfig controls the creation-operation audit trail.
type AuditConfig struct {
	Enabled bool `yaml:"enabled"`
}

// InfluxDBConfig contains InfluxDB connection settings for channel-call metrics.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// SecurityConfig contains security settings.
type SecurityConfig struct {
	JWT JWTConfig `yaml:"jwt"`
}

// JWTConfig contains JWT token settings for the inbound API.
// When Secret is empty, authentication is disabled (development mode).
type JWTConfig struct {
	Secret         string `yaml:"secret"`
	AccessTokenTTL int    `yaml:"access_token_ttl"` // minutes
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
}

// Load reads the configuration file at path, applies environment
// variable overrides, and validates the result.
//
// Environment variables follow the pattern NETBRIDGE_SECTION_KEY,
// for example NETBRIDGE_BRIDGE_URL or NETBRIDGE_NETBOX_TOKEN.
//
// A missing config file is not an error: defaults plus environment
// overrides are enough to run against a local bridge.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	case os.IsNotExist(err):
		// Defaults + environment only.
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 60,
				Idle:  60,
			},
		},
		Bridge: BridgeConfig{
			URL:     "http://mcp-netbox:8090/mcp",
			Timeout: 30,
		},
		NetBox: NetBoxConfig{
			Timeout: 30,
		},
		Inventory: InventoryConfig{
			DefaultLimit: 200,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Database: DatabaseConfig{
			Path:        "./data/netbridge.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		Security: SecurityConfig{
			JWT: JWTConfig{
				AccessTokenTTL: 15,
			},
		},
	}
}

// applyEnvOverrides applies environment variable overrides for the
// settings that typically differ per deployment. Only these keys are
// overridable; everything else comes from the config file:
//
//	NETBRIDGE_API_HOST, NETBRIDGE_API_PORT, NETBRIDGE_BRIDGE_URL,
//	NETBRIDGE_NETBOX_BASE, NETBRIDGE_NETBOX_TOKEN, NETBRIDGE_LOG_LEVEL,
//	NETBRIDGE_DATABASE_PATH, NETBRIDGE_INFLUXDB_TOKEN, NETBRIDGE_JWT_SECRET
func applyEnvOverrides(cfg *Config) {
	// API
	if v := os.Getenv("NETBRIDGE_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("NETBRIDGE_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = port
		}
	}

	// Bridge channel
	if v := os.Getenv("NETBRIDGE_BRIDGE_URL"); v != "" {
		cfg.Bridge.URL = v
	}

	// Direct NetBox fallback
	if v := os.Getenv("NETBRIDGE_NETBOX_BASE"); v != "" {
		cfg.NetBox.BaseURL = v
	}
	if v := os.Getenv("NETBRIDGE_NETBOX_TOKEN"); v != "" {
		cfg.NetBox.Token = v
	}

	// Logging
	if v := os.Getenv("NETBRIDGE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// Database
	if v := os.Getenv("NETBRIDGE_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// InfluxDB
	if v := os.Getenv("NETBRIDGE_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}

	// Security - JWT secret enables inbound auth
	if v := os.Getenv("NETBRIDGE_JWT_SECRET"); v != "" {
		cfg.Security.JWT.Secret = v
	}
}

// Validate checks the configuration for errors.
//
// All problems are collected and reported together rather than one at a time.
func (c *Config) Validate() error {
	var errs []string

	if c.Bridge.URL == "" {
		errs = append(errs, "bridge.url is required")
	}
	if c.Bridge.Timeout < 0 {
		errs = append(errs, "bridge.timeout must not be negative")
	}

	// The REST fallback needs both values; only one of them configured is
	// almost certainly a deployment mistake, so reject it outright.
	if (c.NetBox.BaseURL == "") != (c.NetBox.Token == "") {
		errs = append(errs, "netbox.base_url and netbox.token must be set together")
	}

	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	if c.Inventory.DefaultLimit < 1 {
		errs = append(errs, "inventory.default_limit must be at least 1")
	}

	if c.Audit.Enabled && c.Database.Path == "" {
		errs = append(errs, "database.path is required when audit is enabled")
	}

	if c.InfluxDB.Enabled {
		if c.InfluxDB.URL == "" {
			errs = append(errs, "influxdb.url is required when influxdb is enabled")
		}
		if c.InfluxDB.Token == "" {
			errs = append(errs, "influxdb.token is required when influxdb is enabled (set NETBRIDGE_INFLUXDB_TOKEN)")
		}
	}

	const minJWTSecretLength = 32
	if c.Security.JWT.Secret != "" && len(c.Security.JWT.Secret) < minJWTSecretLength {
		errs = append(errs, "security.jwt.secret must be at least 32 characters")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}

// GetTimeout returns the bridge per-call timeout as a Duration.
func (c *BridgeConfig) GetTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// GetTimeout returns the direct REST per-call timeout as a Duration.
func (c *NetBoxConfig) GetTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// GetAccessTokenTTL returns the access token lifetime as a Duration.
func (c *JWTConfig) GetAccessTokenTTL() time.Duration {
	if c.AccessTokenTTL <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.AccessTokenTTL) * time.Minute
}
