package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Source types understood by the collector registry.
const (
	SourceTypeWikipedia = "wikipedia-current-events"
	SourceTypeRSS       = "rss"
)

// Load decodes the configuration out of the given viper instance.
// Defaults must already be registered (see SetDefaults) and any config
// file read before calling Load.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		Result:           &cfg,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create config decoder: %w", err)
	}

	if decodeErr := decoder.Decode(v.AllSettings()); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode config: %w", decodeErr)
	}

	applyFallbacks(&cfg)

	return &cfg, nil
}

// applyFallbacks fills values that must never be empty regardless of
// what the file or environment provided.
func applyFallbacks(cfg *Config) {
	if len(cfg.Briefing.Sources) == 0 {
		cfg.Briefing.Sources = []SourceConfig{
			{Name: "wikipedia", Type: SourceTypeWikipedia},
		}
	}
}
