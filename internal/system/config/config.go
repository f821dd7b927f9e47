// Package config loads and validates application configuration.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabasesConfig `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Lifecycle LifecycleConfig `mapstructure:"lifecycle"`
	Mail      MailConfig      `mapstructure:"mail"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Hostname     string        `mapstructure:"hostname"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout  time.Duration `mapstructure:"idleTimeout"`
}

// DatabasesConfig holds all database configurations.
type DatabasesConfig struct {
	Portal DatabaseConfig `mapstructure:"portal"`
}

// DatabaseConfig holds individual database configuration.
type DatabaseConfig struct {
	Type            string        `mapstructure:"type"`
	Hostname        string        `mapstructure:"hostname"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// StatusTag represents a typed lifecycle status name.
type StatusTag string

// LifecycleConfig holds request/grievance lifecycle configuration.
// Business rules key off these mapped names rather than hard-coded display
// strings, so an installation can rename statuses without code changes.
type LifecycleConfig struct {
	StatusMappings     StatusMappings `mapstructure:"status_mappings"`
	DueSoonWindowDays  int            `mapstructure:"due_soon_window_days"`
	OverdueCheckPeriod time.Duration  `mapstructure:"overdue_check_period"`
	SystemUserID       int64          `mapstructure:"system_user_id"`
}

// StatusMappings holds the mapping of the lifecycle states that carry
// business meaning (initial state, escalation, terminal closure, overdue).
type StatusMappings struct {
	SubmittedStatus string `mapstructure:"submitted_status"`
	EscalatedStatus string `mapstructure:"escalated_status"`
	ClosedStatus    string `mapstructure:"closed_status"`
	OverdueStatus   string `mapstructure:"overdue_status"`
}

// GetSubmittedStatus returns the typed initial status from config.
func (l *LifecycleConfig) GetSubmittedStatus() StatusTag {
	return StatusTag(l.StatusMappings.SubmittedStatus)
}

// GetEscalatedStatus returns the typed escalated status from config.
func (l *LifecycleConfig) GetEscalatedStatus() StatusTag {
	return StatusTag(l.StatusMappings.EscalatedStatus)
}

// GetClosedStatus returns the typed terminal closed status from config.
func (l *LifecycleConfig) GetClosedStatus() StatusTag {
	return StatusTag(l.StatusMappings.ClosedStatus)
}

// GetOverdueStatus returns the typed overdue status from config.
func (l *LifecycleConfig) GetOverdueStatus() StatusTag {
	return StatusTag(l.StatusMappings.OverdueStatus)
}

// IsClosedStatus checks if the given status name is the terminal closed state.
func (l *LifecycleConfig) IsClosedStatus(name string) bool {
	return StatusTag(name) == l.GetClosedStatus()
}

// IsEscalatedStatus checks if the given status name is the escalated state.
func (l *LifecycleConfig) IsEscalatedStatus(name string) bool {
	return StatusTag(name) == l.GetEscalatedStatus()
}

// MailConfig holds outbound email configuration.
type MailConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Provider    string         `mapstructure:"provider"` // "smtp" or "http"
	FromAddress string         `mapstructure:"from_address"`
	FromName    string         `mapstructure:"from_name"`
	SMTP        SMTPConfig     `mapstructure:"smtp"`
	HTTP        HTTPMailConfig `mapstructure:"http"`
}

// SMTPConfig holds SMTP transport configuration.
type SMTPConfig struct {
	Hostname string `mapstructure:"hostname"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	UseTLS   bool   `mapstructure:"use_tls"`
}

// HTTPMailConfig holds configuration for an HTTP transactional email provider.
type HTTPMailConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

var globalConfig *Config

// Load reads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default configuration lookup order:
		// 1. ./repository/conf/deployment.yaml (production - relative to binary)
		// 2. ./cmd/server/repository/conf/deployment.yaml (development)
		v.SetConfigName("deployment")
		v.SetConfigType("yaml")
		v.AddConfigPath("./repository/conf")
		v.AddConfigPath("./cmd/server/repository/conf")
		v.AddConfigPath("../repository/conf")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("COMPLYARK")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	globalConfig = &config
	return &config, nil
}

func applyDefaults(config *Config) {
	if config.Lifecycle.DueSoonWindowDays <= 0 {
		config.Lifecycle.DueSoonWindowDays = 7
	}
	if config.Lifecycle.OverdueCheckPeriod <= 0 {
		config.Lifecycle.OverdueCheckPeriod = time.Hour
	}
	if config.Mail.HTTP.Timeout <= 0 {
		config.Mail.HTTP.Timeout = 10 * time.Second
	}
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Database.Portal.Hostname == "" {
		return fmt.Errorf("database hostname is required")
	}

	if config.Database.Portal.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if config.Lifecycle.StatusMappings.SubmittedStatus == "" {
		return fmt.Errorf("lifecycle submitted status mapping is required")
	}
	if config.Lifecycle.StatusMappings.EscalatedStatus == "" {
		return fmt.Errorf("lifecycle escalated status mapping is required")
	}
	if config.Lifecycle.StatusMappings.ClosedStatus == "" {
		return fmt.Errorf("lifecycle closed status mapping is required")
	}
	if config.Lifecycle.StatusMappings.OverdueStatus == "" {
		return fmt.Errorf("lifecycle overdue status mapping is required")
	}

	if config.Mail.Enabled {
		switch config.Mail.Provider {
		case "smtp":
			if config.Mail.SMTP.Hostname == "" {
				return fmt.Errorf("smtp hostname is required when mail provider is smtp")
			}
		case "http":
			if config.Mail.HTTP.BaseURL == "" {
				return fmt.Errorf("http mail base URL is required when mail provider is http")
			}
		default:
			return fmt.Errorf("unknown mail provider: %q", config.Mail.Provider)
		}
		if config.Mail.FromAddress == "" {
			return fmt.Errorf("mail from address is required when mail is enabled")
		}
	}

	return nil
}

// Get returns the global configuration.
func Get() *Config {
	return globalConfig
}

// SetGlobal sets the global configuration (for testing purposes).
func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

// GetDSN returns the database connection string.
func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&multiStatements=true",
		d.User,
		d.Password,
		d.Hostname,
		d.Port,
		d.Database,
	)
}

// GetServerAddress returns the server address in host:port format.
func (s *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", s.Hostname, s.Port)
}
