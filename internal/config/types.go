// Package config provides configuration management for the gobrief
// application. It handles loading, validation, and access to
// configuration values from YAML files and environment variables.
package config

import (
	"time"

	"github.com/jonesrussell/gobrief/internal/logger"
)

// Config represents the application configuration.
type Config struct {
	App           AppConfig           `mapstructure:"app" yaml:"app"`
	Logger        logger.Config       `mapstructure:"logger" yaml:"logger"`
	Briefing      BriefingConfig      `mapstructure:"briefing" yaml:"briefing"`
	Groq          GroqConfig          `mapstructure:"groq" yaml:"groq"`
	Twilio        TwilioConfig        `mapstructure:"twilio" yaml:"twilio"`
	Database      DatabaseConfig      `mapstructure:"database" yaml:"database"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch" yaml:"elasticsearch"`
	Server        ServerConfig        `mapstructure:"server" yaml:"server"`
}

// AppConfig represents application-specific settings.
type AppConfig struct {
	// Name is the name of the application.
	Name string `mapstructure:"name" yaml:"name"`
	// Version is the version of the application.
	Version string `mapstructure:"version" yaml:"version"`
	// Environment is the application environment (development, staging, production).
	Environment string `mapstructure:"environment" yaml:"environment"`
	// Debug indicates whether debug mode is enabled.
	Debug bool `mapstructure:"debug" yaml:"debug"`
}

// SourceConfig describes one news source to collect events from.
type SourceConfig struct {
	// Name identifies the source in logs and event records.
	Name string `mapstructure:"name" yaml:"name"`
	// Type selects the collector: "wikipedia-current-events" or "rss".
	Type string `mapstructure:"type" yaml:"type"`
	// URL is the feed URL for rss sources. Unused for the portal type.
	URL string `mapstructure:"url" yaml:"url"`
	// MaxItems caps the number of items taken from an rss source.
	MaxItems int `mapstructure:"max_items" yaml:"max_items"`
}

// BriefingConfig holds the briefing pipeline settings.
type BriefingConfig struct {
	// Schedule is the cron expression for scheduled runs
	// (five fields: minute hour day month weekday).
	Schedule string `mapstructure:"schedule" yaml:"schedule"`
	// PortalBaseURL is the Wikipedia current-events portal prefix.
	PortalBaseURL string `mapstructure:"portal_base_url" yaml:"portal_base_url"`
	// UserAgent is sent with scraping requests.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
	// RequestTimeout bounds each scraping request.
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	// Recipients are E.164 phone numbers to deliver the briefing to.
	Recipients []string `mapstructure:"recipients" yaml:"recipients"`
	// DedupRetention is how long delivered-event fingerprints are
	// kept for deduplication. Zero disables pruning.
	DedupRetention time.Duration `mapstructure:"dedup_retention" yaml:"dedup_retention"`
	// Sources lists the collectors to run. When empty, the default
	// Wikipedia current-events source is used.
	Sources []SourceConfig `mapstructure:"sources" yaml:"sources"`
}

// GroqConfig holds the language model API settings.
type GroqConfig struct {
	// APIKey authenticates against the Groq API. Bound to GROQ_API_KEY.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
	// BaseURL is the OpenAI-compatible endpoint prefix.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// Model names the chat completion model.
	Model string `mapstructure:"model" yaml:"model"`
	// FactTemperature is the sampling temperature for fact generation.
	FactTemperature float32 `mapstructure:"fact_temperature" yaml:"fact_temperature"`
	// RequestTimeout bounds each completion request.
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
}

// TwilioConfig holds the messaging provider settings.
type TwilioConfig struct {
	// AccountSID is the Twilio account identifier. Bound to TWILIO_ACCOUNT_SID.
	AccountSID string `mapstructure:"account_sid" yaml:"account_sid"`
	// AuthToken is the Twilio auth token. Bound to TWILIO_AUTH_TOKEN.
	AuthToken string `mapstructure:"auth_token" yaml:"auth_token"`
	// FromNumber is the WhatsApp sender in E.164 form.
	FromNumber string `mapstructure:"from_number" yaml:"from_number"`
}

// DatabaseConfig holds the optional Postgres settings for run history
// and delivered-event deduplication.
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     string `mapstructure:"port" yaml:"port"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	DBName   string `mapstructure:"dbname" yaml:"dbname"`
	SSLMode  string `mapstructure:"sslmode" yaml:"sslmode"`
}

// ElasticsearchConfig holds the optional briefing archive settings.
type ElasticsearchConfig struct {
	Enabled   bool     `mapstructure:"enabled" yaml:"enabled"`
	Addresses []string `mapstructure:"addresses" yaml:"addresses"`
	APIKey    string   `mapstructure:"api_key" yaml:"api_key"`
	IndexName string   `mapstructure:"index_name" yaml:"index_name"`
}

// ServerConfig holds the HTTP server settings for the httpd command.
type ServerConfig struct {
	Address      string        `mapstructure:"address" yaml:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
}
