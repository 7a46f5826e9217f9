package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/gobrief/internal/config"
)

// newLoadedConfig loads a config from a fresh viper with defaults
// registered, after applying overrides.
func newLoadedConfig(t *testing.T, overrides map[string]any) *config.Config {
	t.Helper()

	v := viper.New()
	config.SetDefaults(v)
	require.NoError(t, config.BindEnvVars(v))
	for key, value := range overrides {
		v.Set(key, value)
	}

	cfg, err := config.Load(v)
	require.NoError(t, err)
	return cfg
}

func TestLoad_Defaults(t *testing.T) {
	cfg := newLoadedConfig(t, nil)

	assert.Equal(t, "gobrief", cfg.App.Name)
	assert.Equal(t, config.DefaultSchedule, cfg.Briefing.Schedule)
	assert.Equal(t, config.DefaultPortalBaseURL, cfg.Briefing.PortalBaseURL)
	assert.Equal(t, 30*time.Second, cfg.Briefing.RequestTimeout)
	assert.Equal(t, config.DefaultGroqBaseURL, cfg.Groq.BaseURL)
	assert.Equal(t, config.DefaultGroqModel, cfg.Groq.Model)
	assert.InDelta(t, config.DefaultFactTemperature, cfg.Groq.FactTemperature, 0.001)
	assert.Equal(t, config.DefaultFromNumber, cfg.Twilio.FromNumber)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Elasticsearch.Enabled)
	assert.Equal(t, ":8080", cfg.Server.Address)
}

func TestLoad_DefaultSourceInjected(t *testing.T) {
	cfg := newLoadedConfig(t, nil)

	require.Len(t, cfg.Briefing.Sources, 1)
	assert.Equal(t, config.SourceTypeWikipedia, cfg.Briefing.Sources[0].Type)
	assert.Equal(t, "wikipedia", cfg.Briefing.Sources[0].Name)
}

func TestLoad_EnvVarsBound(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC_test")
	t.Setenv("TWILIO_AUTH_TOKEN", "token_test")
	t.Setenv("BRIEFING_RECIPIENTS", "+15551234567,+15557654321")

	cfg := newLoadedConfig(t, nil)

	assert.Equal(t, "gsk_test", cfg.Groq.APIKey)
	assert.Equal(t, "AC_test", cfg.Twilio.AccountSID)
	assert.Equal(t, "token_test", cfg.Twilio.AuthToken)
	assert.Equal(t, []string{"+15551234567", "+15557654321"}, cfg.Briefing.Recipients)
}

func TestValidateDelivery(t *testing.T) {
	valid := map[string]any{
		"groq.api_key":        "gsk_test",
		"twilio.account_sid":  "AC_test",
		"twilio.auth_token":   "token_test",
		"briefing.recipients": []string{"+15551234567"},
	}

	tests := []struct {
		name    string
		drop    string
		wantErr error
	}{
		{name: "missing groq key", drop: "groq.api_key", wantErr: config.ErrMissingGroqKey},
		{name: "missing account sid", drop: "twilio.account_sid", wantErr: config.ErrMissingAccountSID},
		{name: "missing auth token", drop: "twilio.auth_token", wantErr: config.ErrMissingAuthToken},
		{name: "no recipients", drop: "briefing.recipients", wantErr: config.ErrNoRecipients},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overrides := make(map[string]any, len(valid))
			for k, v := range valid {
				if k != tt.drop {
					overrides[k] = v
				}
			}

			cfg := newLoadedConfig(t, overrides)
			require.ErrorIs(t, cfg.ValidateDelivery(), tt.wantErr)
		})
	}

	t.Run("valid config passes", func(t *testing.T) {
		cfg := newLoadedConfig(t, valid)
		require.NoError(t, cfg.ValidateDelivery())
	})

	t.Run("recipient without plus fails", func(t *testing.T) {
		overrides := make(map[string]any, len(valid))
		for k, v := range valid {
			overrides[k] = v
		}
		overrides["briefing.recipients"] = []string{"15551234567"}

		cfg := newLoadedConfig(t, overrides)
		err := cfg.ValidateDelivery()
		require.Error(t, err)
		// Full numbers never appear in validation errors.
		assert.NotContains(t, err.Error(), "15551234567")
		assert.Contains(t, err.Error(), "4567")
	})
}

func TestValidateSummarization(t *testing.T) {
	cfg := newLoadedConfig(t, nil)
	require.ErrorIs(t, cfg.ValidateSummarization(), config.ErrMissingGroqKey)

	cfg = newLoadedConfig(t, map[string]any{"groq.api_key": "gsk_test"})
	require.NoError(t, cfg.ValidateSummarization())
}

func TestValidateSources(t *testing.T) {
	t.Run("rss source requires url", func(t *testing.T) {
		cfg := newLoadedConfig(t, map[string]any{
			"groq.api_key": "gsk_test",
			"briefing.sources": []map[string]any{
				{"name": "newswire", "type": "rss"},
			},
		})
		require.Error(t, cfg.ValidateSummarization())
	})

	t.Run("unknown source type fails", func(t *testing.T) {
		cfg := newLoadedConfig(t, map[string]any{
			"groq.api_key": "gsk_test",
			"briefing.sources": []map[string]any{
				{"name": "x", "type": "carrier-pigeon"},
			},
		})
		require.Error(t, cfg.ValidateSummarization())
	})
}
