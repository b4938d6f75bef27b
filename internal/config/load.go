package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads.
const EnvPrefix = "SAARTHI"

// defaults lists every key with its default value. Keys without a default
// still need an entry so that AutomaticEnv can find them during Unmarshal.
var defaults = map[string]any{
	"server.port":                             8080,
	"server.log_level":                        "info",
	"server.shutdown_timeout_seconds":         10,
	"llm.provider":                            ProviderGemini,
	"llm.gemini_api_key":                      "",
	"llm.openai_api_key":                      "",
	"llm.openai_base_url":                     "",
	"llm.model_name":                          "gemini-2.0-flash",
	"llm.request_timeout_seconds":             30,
	"content.max_count":                       20,
	"content.default_count":                   5,
	"content.default_difficulty":              "intermediate",
	"content.sampling.temperature":            0.9,
	"content.sampling.top_p":                  0.95,
	"content.sampling.top_k":                  40,
	"content.sampling.max_output_tokens":      2000,
	"content.dedupe_in_flight":                true,
	"content.debug_responses":                 false,
	"content.prompt_dir":                      "",
	"conversation.sampling.temperature":       0.8,
	"conversation.sampling.top_p":             0.9,
	"conversation.sampling.top_k":             40,
	"conversation.sampling.max_output_tokens": 512,
	"conversation.max_history_turns":          10,
	"conversation.default_language":           "en",
}

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over values
// from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile behaves like Load but reads the given config file instead of
// searching the working directory. An empty path falls back to the search.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Existing deployments export the key without a prefix.
	if err := v.BindEnv("llm.gemini_api_key", EnvPrefix+"_LLM_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding environment variable GEMINI_API_KEY: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate runs the struct validation rules on cfg.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
