package openai

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"voice-assistant/internal/observability"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// SpeechClient synthesizes replies with the OpenAI speech API. Audio is
// returned as raw 24kHz little-endian PCM16.
type SpeechClient struct {
	options []option.RequestOption
	model   string
	voice   string
	logger  *observability.Logger
}

func NewSpeechClient(apiKey, model, voice string, logger *observability.Logger, opts ...option.RequestOption) (*SpeechClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &SpeechClient{
		options: opts,
		model:   model,
		voice:   voice,
		logger:  logger,
	}, nil
}

func (c *SpeechClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	client := openai.NewClient(c.options...)
	resp, err := client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Input:          text,
		Model:          openai.SpeechModel(c.model),
		Voice:          openai.AudioSpeechNewParamsVoice(c.voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatPCM,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("OpenAI TTS error: %s", string(body))
	}

	pcm, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read TTS audio: %w", err)
	}
	c.logger.Debug(ctx, fmt.Sprintf("Synthesized %d bytes of speech", len(pcm)))
	return pcm, nil
}
