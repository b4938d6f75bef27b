package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"       validate:"required"`
	LLM          LLMConfig          `mapstructure:"llm"          validate:"required"`
	Content      ContentConfig      `mapstructure:"content"      validate:"required"`
	Conversation ConversationConfig `mapstructure:"conversation" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// LLM providers supported by the platform adapters.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	Provider      string `mapstructure:"provider"        validate:"required,oneof=gemini openai"`
	GeminiAPIKey  string `mapstructure:"gemini_api_key"  validate:"required_if=Provider gemini"`
	OpenAIAPIKey  string `mapstructure:"openai_api_key"  validate:"required_if=Provider openai"`
	OpenAIBaseURL string `mapstructure:"openai_base_url" validate:"omitempty,url"`
	ModelName     string `mapstructure:"model_name"      validate:"required"`

	// RequestTimeoutSeconds bounds a single upstream call. Zero leaves the
	// transport default in place.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"gte=0"`
}

// SamplingConfig holds generation parameters for one kind of call.
type SamplingConfig struct {
	Temperature     float32 `mapstructure:"temperature"       validate:"gte=0,lte=2"`
	TopP            float32 `mapstructure:"top_p"             validate:"gte=0,lte=1"`
	TopK            int     `mapstructure:"top_k"             validate:"gte=0"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens" validate:"gte=1"`
}

// ContentConfig configures the learning-content extractor.
type ContentConfig struct {
	MaxCount          int            `mapstructure:"max_count"          validate:"gte=1,lte=50"`
	DefaultCount      int            `mapstructure:"default_count"      validate:"gte=1,ltefield=MaxCount"`
	DefaultDifficulty string         `mapstructure:"default_difficulty" validate:"required"`
	Sampling          SamplingConfig `mapstructure:"sampling"`
	DedupeInFlight    bool           `mapstructure:"dedupe_in_flight"`
	DebugResponses    bool           `mapstructure:"debug_responses"`

	// PromptDir optionally replaces the embedded prompt templates.
	PromptDir string `mapstructure:"prompt_dir" validate:"omitempty,dir"`
}

// ConversationConfig configures the conversational relay.
type ConversationConfig struct {
	Sampling        SamplingConfig `mapstructure:"sampling"`
	MaxHistoryTurns int            `mapstructure:"max_history_turns" validate:"gte=0,lte=100"`
	DefaultLanguage string         `mapstructure:"default_language"  validate:"required,bcp47_language_tag"`
}
