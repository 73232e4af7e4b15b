package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"voice-assistant/internal/agent"
	authHandler "voice-assistant/internal/auth/handler"
	authProcessor "voice-assistant/internal/auth/processor"
	"voice-assistant/internal/clients/googleai"
	kafkaClient "voice-assistant/internal/clients/kafka"
	"voice-assistant/internal/clients/openai"
	redisClient "voice-assistant/internal/clients/redis"
	"voice-assistant/internal/config"
	"voice-assistant/internal/language"
	"voice-assistant/internal/observability"
	"voice-assistant/internal/ratelimit"
	"voice-assistant/internal/tools"
	toolsHandler "voice-assistant/internal/tools/handler"
	voiceCallHandler "voice-assistant/internal/voicecall/handler"
	voiceCallProcessor "voice-assistant/internal/voicecall/processor"

	"github.com/spf13/afero"
)

const maxHistoryMessages = 40

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Logger    *observability.Logger
	Languages *language.Store
	Tools     *tools.Registry
	Persona   agent.Persona

	// Handlers
	AuthHandler      authHandler.Handler
	ToolsHandler     toolsHandler.Handler
	VoiceCallHandler voiceCallHandler.Handler
	RateLimiter      *ratelimit.Service

	// Optional infrastructure (for cleanup)
	Redis         *redisClient.Client
	KafkaProducer *kafkaClient.Producer
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	return initialize(ctx, cfg, afero.NewOsFs(), logger)
}

func initialize(ctx context.Context, cfg *config.Config, fsys afero.Fs, logger *observability.Logger) (*Dependencies, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "variant", Value: string(cfg.Variant)})
	deps := &Dependencies{
		Logger:  logger,
		Persona: agent.PersonaFor(cfg.Variant),
	}

	var err error
	deps.Languages, err = language.NewStore(cfg.Agent.Language)
	if err != nil {
		return nil, fmt.Errorf("failed to create language store: %w", err)
	}

	// Initialize tools
	deps.Tools = tools.NewDefaultRegistry(deps.Languages, tools.NewExecRunner(), tools.CatalogFor(cfg.Agent.Locale), logger)

	// Initialize model clients
	stt, err := openai.NewOpenAIRealtimeClient(cfg.Services.OpenAIAPIKey, openai.RealtimeTranscriptionConfig{
		Model:             cfg.Services.STTModel,
		NoiseReduction:    cfg.Voice.NoiseReduction,
		TurnDetection:     cfg.Voice.TurnDetection,
		Threshold:         cfg.Voice.VADThreshold,
		PrefixPaddingMs:   cfg.Voice.PrefixPaddingMs,
		SilenceDurationMs: cfg.Voice.SilenceDurationMs,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech-to-text client: %w", err)
	}

	tts, err := openai.NewSpeechClient(cfg.Services.OpenAIAPIKey, cfg.Services.TTSModel, cfg.Services.TTSVoice, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create text-to-speech client: %w", err)
	}

	llm, err := newLanguageModel(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create language model client: %w", err)
	}

	// Initialize assistant
	prompt, err := agent.LoadPrompt(fsys, cfg.Agent.PromptPath)
	switch {
	case errors.Is(err, agent.ErrPromptNotFound):
		logger.Warn(ctx, fmt.Sprintf("Prompt %q not found, using built-in instructions", cfg.Agent.PromptPath))
	case err != nil:
		return nil, err
	}
	assistant := agent.NewAssistant(deps.Persona, prompt, deps.Tools)

	// Initialize call event stream
	var events voiceCallProcessor.CallEvents
	if cfg.Kafka.Enabled() {
		deps.KafkaProducer = kafkaClient.NewProducer(kafkaClient.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		}, logger)
		events = deps.KafkaProducer
	}

	// Initialize voice call processor and handler
	voiceCallProc := voiceCallProcessor.NewVoiceCallProcessor(assistant, agent.SessionOptions{
		STT:                stt,
		LLM:                llm,
		TTS:                tts,
		Languages:          deps.Languages,
		Greeting:           deps.Persona.Greeting,
		AllowInterruptions: cfg.Voice.AllowInterruptions,
		MaxHistory:         maxHistoryMessages,
	}, events, logger)
	deps.VoiceCallHandler = voiceCallHandler.New(voiceCallProc, cfg.Server.PublicHost, deps.Persona.Connecting, logger)

	// Initialize auth processor and handler
	authProc := authProcessor.New(cfg.Auth.JWTSecret, logger)
	deps.AuthHandler = authHandler.New(authProc, logger)

	// Initialize tools handler and its rate limiter
	deps.ToolsHandler = toolsHandler.New(deps.Tools, deps.Languages, logger)
	deps.Redis, err = redisClient.NewClient(ctx, cfg.Redis, logger)
	if err != nil {
		deps.Cleanup()
		return nil, err
	}
	deps.RateLimiter = ratelimit.NewService(deps.Redis, cfg.Auth.RateLimitRPM, logger)

	logger.Info(ctx, fmt.Sprintf("%s ready: language %s, %s model %s",
		deps.Persona.Name, deps.Languages.Current(), cfg.Services.LLMProvider, cfg.Services.LLMModel))
	return deps, nil
}

func newLanguageModel(cfg *config.Config, logger *observability.Logger) (agent.LanguageModel, error) {
	switch cfg.Services.LLMProvider {
	case config.LLMProviderGemini:
		return googleai.NewGeminiClient(cfg.Services.GoogleAIAPIKey, cfg.Services.LLMModel, logger)
	case config.LLMProviderOpenAI:
		return openai.NewChatClient(cfg.Services.OpenAIAPIKey, cfg.Services.LLMModel, logger)
	default:
		return nil, fmt.Errorf("LLM provider %q: %w", cfg.Services.LLMProvider, config.ErrInvalidValue)
	}
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	ctx := context.Background()
	if d.KafkaProducer != nil {
		if err := d.KafkaProducer.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close kafka producer", err)
		}
	}
	if err := d.Redis.Close(); err != nil {
		d.Logger.Error(ctx, "failed to close redis", err)
	}
	d.Logger.Sync()
}
