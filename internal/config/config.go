// Package config loads runtime configuration for the risk backend.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config contains runtime configuration for the risk service.
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
	NATS      NATSConfig      `yaml:"nats" mapstructure:"nats"`
	RPC       RPCConfig       `yaml:"rpc" mapstructure:"rpc"`
	Databases DatabasesConfig `yaml:"databases" mapstructure:"databases"`
	Redis     RedisConfig     `yaml:"redis" mapstructure:"redis"`
	Forecast  ForecastConfig  `yaml:"forecast" mapstructure:"forecast"`
	Auth      AuthConfig      `yaml:"auth" mapstructure:"auth"`
}

// ServerConfig captures HTTP server settings.
type ServerConfig struct {
	Port                int `yaml:"port" mapstructure:"port"`
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds" mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds" mapstructure:"write_timeout_seconds"`
	IdleTimeoutSeconds  int `yaml:"idle_timeout_seconds" mapstructure:"idle_timeout_seconds"`
}

// ReadTimeout returns the configured read timeout as a duration.
func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the configured write timeout as a duration.
func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

// IdleTimeout returns the configured idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutSeconds) * time.Second
}

// LoggingConfig captures logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
}

// NATSConfig captures message broker connection settings.
type NATSConfig struct {
	URL           string `yaml:"url" mapstructure:"url"`
	Enabled       bool   `yaml:"enabled" mapstructure:"enabled"`
	MaxReconnects int    `yaml:"max_reconnects" mapstructure:"max_reconnects"`
	ReconnectWait int    `yaml:"reconnect_wait_seconds" mapstructure:"reconnect_wait_seconds"`
}

// ReconnectWaitDuration returns the reconnect wait as a time.Duration.
func (n NATSConfig) ReconnectWaitDuration() time.Duration {
	return time.Duration(n.ReconnectWait) * time.Second
}

// RPCConfig bounds the broker request/reply exchange.
type RPCConfig struct {
	TimeoutMillis int `yaml:"timeout_millis" mapstructure:"timeout_millis"`
}

// Timeout returns the reply wait bound as a duration.
func (r RPCConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutMillis) * time.Millisecond
}

// DatabasesConfig names the catalog store and each domain's secondary store.
// An empty domain URL falls back to the catalog URL, for deployments that
// mirror every domain schema into one database.
type DatabasesConfig struct {
	CatalogURL       string `yaml:"catalog_url" mapstructure:"catalog_url"`
	InventoryURL     string `yaml:"inventory_url" mapstructure:"inventory_url"`
	ManufacturingURL string `yaml:"manufacturing_url" mapstructure:"manufacturing_url"`
	ProcurementURL   string `yaml:"procurement_url" mapstructure:"procurement_url"`
	ContractURL      string `yaml:"contract_url" mapstructure:"contract_url"`
	RequisitionURL   string `yaml:"requisition_url" mapstructure:"requisition_url"`
}

// DomainURL resolves a domain URL, defaulting to the catalog URL.
func (d DatabasesConfig) DomainURL(url string) string {
	if url != "" {
		return url
	}
	return d.CatalogURL
}

// RedisConfig captures report cache settings.
type RedisConfig struct {
	Addr       string `yaml:"addr" mapstructure:"addr"`
	Enabled    bool   `yaml:"enabled" mapstructure:"enabled"`
	TTLSeconds int    `yaml:"ttl_seconds" mapstructure:"ttl_seconds"`
}

// TTL returns the cache TTL as a duration.
func (r RedisConfig) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}

// ForecastConfig captures the external forecast service settings.
type ForecastConfig struct {
	URL            string `yaml:"url" mapstructure:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// Timeout returns the forecast HTTP timeout as a duration.
func (f ForecastConfig) Timeout() time.Duration {
	return time.Duration(f.TimeoutSeconds) * time.Second
}

// AuthConfig captures token verification settings.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

// Load reads configuration from the provided path and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set all defaults
	v.SetDefault("server.port", 8086)
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 30)
	v.SetDefault("server.idle_timeout_seconds", 60)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("nats.url", "nats://nats:4222")
	v.SetDefault("nats.enabled", true)
	v.SetDefault("nats.max_reconnects", -1) // Infinite reconnects
	v.SetDefault("nats.reconnect_wait_seconds", 2)

	v.SetDefault("rpc.timeout_millis", 5000)

	v.SetDefault("databases.catalog_url", "")
	v.SetDefault("databases.inventory_url", "")
	v.SetDefault("databases.manufacturing_url", "")
	v.SetDefault("databases.procurement_url", "")
	v.SetDefault("databases.contract_url", "")
	v.SetDefault("databases.requisition_url", "")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.ttl_seconds", 60)

	v.SetDefault("forecast.url", "http://forecast:8000/predict")
	v.SetDefault("forecast.timeout_seconds", 10)

	v.SetDefault("auth.jwt_secret", "")

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/qms/risk")
	}

	// Environment variables override
	v.SetEnvPrefix("RISK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found; use defaults
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
