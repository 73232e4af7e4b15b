package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"voice-assistant/internal/language"

	"github.com/joho/godotenv"
)

var (
	ErrEmptyEnvironmentVariable = errors.New("empty environment variable")
	ErrInvalidValue             = errors.New("invalid configuration value")
)

// envFiles are loaded in order; values already set are never overridden,
// so .env.local wins over .env.
var envFiles = []string{".env.local", ".env"}

// Variant selects the persona, default language and message locale of an
// entry point.
type Variant string

const (
	VariantVidya     Variant = "vidya"
	VariantAssistant Variant = "assistant"
)

// Defaults returns the variant-specific defaults.
func (v Variant) Defaults() VariantDefaults {
	switch v {
	case VariantVidya:
		return VariantDefaults{
			Language:   language.Hindi,
			Locale:     "hi",
			PromptPath: "prompts/vidya.txt",
			TTSVoice:   "nova",
		}
	default:
		return VariantDefaults{
			Language: language.English,
			Locale:   "en",
			TTSVoice: "alloy",
		}
	}
}

type VariantDefaults struct {
	Language   language.Code
	Locale     string
	PromptPath string
	TTSVoice   string
}

// Config holds all application configuration
type Config struct {
	Variant  Variant
	Server   ServerConfig
	Auth     AuthConfig
	Services ServicesConfig
	Agent    AgentConfig
	Voice    VoiceConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	LogLevel string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
	// PublicHost is the host Twilio dials back for the media stream. Empty
	// means the Host header of the answer webhook request.
	PublicHost string
	Production bool
}

// AuthConfig holds the operator API authentication settings
type AuthConfig struct {
	JWTSecret string
	// RateLimitRPM caps tool API requests per operator per minute.
	RateLimitRPM int
}

// RedisConfig holds the optional Redis connection. Empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// KafkaConfig holds the optional call event stream. No brokers disables it.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// ServicesConfig holds model provider keys and model names
type ServicesConfig struct {
	OpenAIAPIKey   string
	GoogleAIAPIKey string
	LLMProvider    string
	LLMModel       string
	STTModel       string
	TTSModel       string
	TTSVoice       string
}

// AgentConfig holds persona and language settings
type AgentConfig struct {
	Language   language.Code
	Locale     string
	PromptPath string
}

// VoiceConfig holds voice activity and turn detection settings
type VoiceConfig struct {
	NoiseReduction     string
	TurnDetection      string
	VADThreshold       float64
	PrefixPaddingMs    int
	SilenceDurationMs  int
	AllowInterruptions bool
}

const (
	LLMProviderOpenAI = "openai"
	LLMProviderGemini = "gemini"
)

// Load reads and validates all environment variables for variant.
func Load(variant Variant) (*Config, error) {
	if os.Getenv("GO_ENV") != "production" {
		if err := loadEnvFiles(envFiles...); err != nil {
			return nil, err
		}
	}

	defaults := variant.Defaults()
	cfg := &Config{Variant: variant}
	var err error

	// Server configuration
	if cfg.Server.Port, err = getIntWithDefault("SERVER_PORT", 8080); err != nil {
		return nil, err
	}
	cfg.Server.PublicHost = os.Getenv("PUBLIC_HOST")
	cfg.Server.Production = os.Getenv("GO_ENV") == "production"
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")

	// Auth configuration
	if cfg.Auth.JWTSecret, err = requireEnv("TOOLS_JWT_SECRET"); err != nil {
		return nil, err
	}
	if cfg.Auth.RateLimitRPM, err = getIntWithDefault("TOOLS_RATE_LIMIT_RPM", 60); err != nil {
		return nil, err
	}
	if cfg.Auth.RateLimitRPM < 1 {
		return nil, fmt.Errorf("TOOLS_RATE_LIMIT_RPM %d: %w", cfg.Auth.RateLimitRPM, ErrInvalidValue)
	}

	// Services configuration
	if cfg.Services.OpenAIAPIKey, err = requireEnv("OPENAI_API_KEY"); err != nil {
		return nil, err
	}
	cfg.Services.GoogleAIAPIKey = os.Getenv("GOOGLE_AI_API_KEY")
	cfg.Services.LLMProvider = strings.ToLower(getEnvWithDefault("LLM_PROVIDER", LLMProviderOpenAI))
	switch cfg.Services.LLMProvider {
	case LLMProviderOpenAI:
		cfg.Services.LLMModel = getEnvWithDefault("LLM_MODEL", "gpt-4o-mini")
	case LLMProviderGemini:
		if cfg.Services.GoogleAIAPIKey == "" {
			return nil, fmt.Errorf("GOOGLE_AI_API_KEY is required when LLM_PROVIDER=gemini: %w", ErrEmptyEnvironmentVariable)
		}
		cfg.Services.LLMModel = getEnvWithDefault("LLM_MODEL", "gemini-1.5-flash")
	default:
		return nil, fmt.Errorf("LLM_PROVIDER %q: %w", cfg.Services.LLMProvider, ErrInvalidValue)
	}
	cfg.Services.STTModel = getEnvWithDefault("STT_MODEL", "gpt-4o-transcribe")
	cfg.Services.TTSModel = getEnvWithDefault("TTS_MODEL", "tts-1")
	cfg.Services.TTSVoice = getEnvWithDefault("TTS_VOICE", defaults.TTSVoice)

	// Agent configuration
	cfg.Agent.Locale = defaults.Locale
	cfg.Agent.PromptPath = getEnvWithDefault("PROMPT_PATH", defaults.PromptPath)
	cfg.Agent.Language = language.Code(getEnvWithDefault("STT_LANGUAGE", string(defaults.Language)))
	if _, ok := language.Lookup(cfg.Agent.Language); !ok {
		return nil, fmt.Errorf("STT_LANGUAGE %q: %w", cfg.Agent.Language, ErrInvalidValue)
	}

	// Voice configuration
	cfg.Voice.NoiseReduction = getEnvWithDefault("NOISE_REDUCTION", "far_field")
	switch cfg.Voice.NoiseReduction {
	case "near_field", "far_field":
	case "off", "none":
		cfg.Voice.NoiseReduction = ""
	default:
		return nil, fmt.Errorf("NOISE_REDUCTION %q: %w", cfg.Voice.NoiseReduction, ErrInvalidValue)
	}
	cfg.Voice.TurnDetection = getEnvWithDefault("TURN_DETECTION", "server_vad")
	if cfg.Voice.TurnDetection != "server_vad" && cfg.Voice.TurnDetection != "semantic_vad" {
		return nil, fmt.Errorf("TURN_DETECTION %q: %w", cfg.Voice.TurnDetection, ErrInvalidValue)
	}
	threshold := getEnvWithDefault("VAD_THRESHOLD", "0.5")
	cfg.Voice.VADThreshold, err = strconv.ParseFloat(threshold, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse VAD_THRESHOLD: %w", err)
	}
	if cfg.Voice.VADThreshold < 0 || cfg.Voice.VADThreshold > 1 {
		return nil, fmt.Errorf("VAD_THRESHOLD %v: %w", cfg.Voice.VADThreshold, ErrInvalidValue)
	}
	if cfg.Voice.PrefixPaddingMs, err = getIntWithDefault("VAD_PREFIX_PADDING_MS", 300); err != nil {
		return nil, err
	}
	if cfg.Voice.SilenceDurationMs, err = getIntWithDefault("VAD_SILENCE_MS", 500); err != nil {
		return nil, err
	}
	interruptions := getEnvWithDefault("ALLOW_INTERRUPTIONS", "true")
	cfg.Voice.AllowInterruptions, err = strconv.ParseBool(interruptions)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ALLOW_INTERRUPTIONS: %w", err)
	}

	// Redis configuration
	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = getIntWithDefault("REDIS_DB", 0); err != nil {
		return nil, err
	}

	// Kafka configuration
	for _, broker := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			cfg.Kafka.Brokers = append(cfg.Kafka.Brokers, broker)
		}
	}
	cfg.Kafka.Topic = getEnvWithDefault("KAFKA_TOPIC", "voice-call-events")

	return cfg, nil
}

// loadEnvFiles loads every file that exists. Missing files are not an error.
func loadEnvFiles(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntWithDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return parsed, nil
}
