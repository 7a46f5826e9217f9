package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Default configuration values.
const (
	// DefaultSchedule delivers the briefing daily at 20:00 UTC.
	DefaultSchedule = "0 20 * * *"
	// DefaultPortalBaseURL is the Wikipedia current-events portal prefix.
	DefaultPortalBaseURL = "https://en.wikipedia.org/wiki/Portal:Current_events"
	// DefaultGroqBaseURL is the OpenAI-compatible Groq endpoint.
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	// DefaultGroqModel is the chat completion model used for summaries.
	DefaultGroqModel = "llama3-8b-8192"
	// DefaultFactTemperature is the sampling temperature for fact generation.
	DefaultFactTemperature = 1.5
	// DefaultFromNumber is the WhatsApp sandbox sender.
	DefaultFromNumber = "+14155238886"
	// DefaultUserAgent is sent with scraping requests.
	DefaultUserAgent = "gobrief/1.0 (+https://github.com/jonesrussell/gobrief)"
)

// SetDefaults registers default configuration values on the given
// viper instance. Environment variables and config files override them.
func SetDefaults(v *viper.Viper) {
	// App defaults - production safe
	v.SetDefault("app", map[string]any{
		"name":        "gobrief",
		"version":     "1.0.0",
		"environment": "production",
		"debug":       false,
	})

	// Logger defaults - production safe
	v.SetDefault("logger", map[string]any{
		"level":       "info",
		"development": false,
		"encoding":    "json",
		"outputpaths": []string{"stdout"},
		"enablecolor": false,
	})

	// Briefing defaults
	v.SetDefault("briefing", map[string]any{
		"schedule":        DefaultSchedule,
		"portal_base_url": DefaultPortalBaseURL,
		"user_agent":      DefaultUserAgent,
		"request_timeout": "30s",
		"recipients":      []string{},
		"dedup_retention": "2160h",
	})

	// Groq defaults
	v.SetDefault("groq", map[string]any{
		"base_url":         DefaultGroqBaseURL,
		"model":            DefaultGroqModel,
		"fact_temperature": DefaultFactTemperature,
		"request_timeout":  "60s",
	})

	// Twilio defaults
	v.SetDefault("twilio", map[string]any{
		"from_number": DefaultFromNumber,
	})

	// Database defaults - disabled unless configured
	v.SetDefault("database", map[string]any{
		"enabled": false,
		"host":    "127.0.0.1",
		"port":    "5432",
		"user":    "gobrief",
		"dbname":  "gobrief",
		"sslmode": "disable",
	})

	// Elasticsearch defaults - disabled unless configured
	// Use 127.0.0.1 instead of localhost to avoid IPv6 resolution issues
	v.SetDefault("elasticsearch", map[string]any{
		"enabled":    false,
		"addresses":  []string{"http://127.0.0.1:9200"},
		"index_name": "briefings",
	})

	// Server defaults - production safe
	v.SetDefault("server", map[string]any{
		"address":       ":8080",
		"read_timeout":  "15s",
		"write_timeout": "15s",
		"idle_timeout":  "60s",
	})
}

// BindEnvVars maps environment variables to config keys on the given
// viper instance. The credential variables match what the deployment
// environment injects.
func BindEnvVars(v *viper.Viper) error {
	bindings := map[string][]string{
		"app.environment":          {"APP_ENV"},
		"app.debug":                {"APP_DEBUG"},
		"logger.level":             {"LOG_LEVEL"},
		"logger.encoding":          {"LOG_FORMAT"},
		"briefing.schedule":        {"BRIEFING_SCHEDULE"},
		"briefing.recipients":      {"BRIEFING_RECIPIENTS"},
		"groq.api_key":             {"GROQ_API_KEY"},
		"groq.model":               {"GROQ_MODEL"},
		"twilio.account_sid":       {"TWILIO_ACCOUNT_SID"},
		"twilio.auth_token":        {"TWILIO_AUTH_TOKEN"},
		"twilio.from_number":       {"TWILIO_FROM_NUMBER"},
		"database.enabled":         {"DATABASE_ENABLED"},
		"database.host":            {"DATABASE_HOST"},
		"database.port":            {"DATABASE_PORT"},
		"database.user":            {"DATABASE_USER"},
		"database.password":        {"DATABASE_PASSWORD"},
		"database.dbname":          {"DATABASE_NAME"},
		"elasticsearch.enabled":    {"ELASTICSEARCH_ENABLED"},
		"elasticsearch.addresses":  {"ELASTICSEARCH_HOSTS", "ELASTICSEARCH_ADDRESSES"},
		"elasticsearch.api_key":    {"ELASTICSEARCH_API_KEY"},
		"elasticsearch.index_name": {"ELASTICSEARCH_INDEX_NAME"},
	}

	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	return nil
}
