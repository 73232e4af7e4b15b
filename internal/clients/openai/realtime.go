package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"voice-assistant/internal/observability"
	"voice-assistant/internal/voice/audio"

	"github.com/gorilla/websocket"
)

const openAIRealtimeURL = "wss://api.openai.com/v1/realtime?intent=transcription"

var ErrMissingAPIKey = errors.New("OpenAI API key is required")

// RealtimeTranscriptionConfig holds configuration for the session.
type RealtimeTranscriptionConfig struct {
	Model          string // e.g. "gpt-4o-transcribe", "whisper-1"
	Prompt         string
	NoiseReduction string // "near_field", "far_field", or ""
	TurnDetection  string // "server_vad" or "semantic_vad"
	// Threshold, PrefixPaddingMs and SilenceDurationMs only apply to server_vad.
	Threshold         float64
	PrefixPaddingMs   int
	SilenceDurationMs int
}

type TranscriptKind string

const (
	TranscriptDelta     TranscriptKind = "delta"
	TranscriptCompleted TranscriptKind = "completed"
	SpeechStarted       TranscriptKind = "speech_started"
	SpeechStopped       TranscriptKind = "speech_stopped"
	TranscriptError     TranscriptKind = "error"
)

// Transcript is a transcription or voice activity event.
type Transcript struct {
	Kind   TranscriptKind
	Text   string
	ItemID string
	Err    error
}

type sessionUpdate struct {
	Type    string         `json:"type"`
	Session sessionOptions `json:"session"`
}

type sessionOptions struct {
	InputAudioFormat        string                 `json:"input_audio_format"`
	InputAudioTranscription transcriptionOptions   `json:"input_audio_transcription"`
	TurnDetection           turnDetection          `json:"turn_detection"`
	NoiseReduction          *noiseReductionOptions `json:"input_audio_noise_reduction"`
}

type transcriptionOptions struct {
	Model    string `json:"model"`
	Prompt   string `json:"prompt,omitempty"`
	Language string `json:"language,omitempty"`
}

type turnDetection struct {
	Type              string   `json:"type"`
	Threshold         *float64 `json:"threshold,omitempty"`
	PrefixPaddingMs   *int     `json:"prefix_padding_ms,omitempty"`
	SilenceDurationMs *int     `json:"silence_duration_ms,omitempty"`
}

type noiseReductionOptions struct {
	Type string `json:"type"`
}

type audioAppend struct {
	Type  string `json:"type"`
	Audio string `json:"audio"`
}

type serverEvent struct {
	Type       string `json:"type"`
	ItemID     string `json:"item_id"`
	Delta      string `json:"delta"`
	Transcript string `json:"transcript"`
	Error      *struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type OpenAIRealtimeClient struct {
	apiKey string
	url    string
	cfg    RealtimeTranscriptionConfig
	dialer *websocket.Dialer
	logger *observability.Logger
}

func NewOpenAIRealtimeClient(apiKey string, cfg RealtimeTranscriptionConfig, logger *observability.Logger) (*OpenAIRealtimeClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &OpenAIRealtimeClient{
		apiKey: apiKey,
		url:    openAIRealtimeURL,
		cfg:    cfg,
		dialer: websocket.DefaultDialer,
		logger: logger,
	}, nil
}

// newSessionUpdate builds the first message of a transcription session.
// language is an ISO-639-1 code; empty lets the model detect it.
func newSessionUpdate(cfg RealtimeTranscriptionConfig, language string) sessionUpdate {
	td := turnDetection{Type: cfg.TurnDetection}
	if td.Type == "" {
		td.Type = "server_vad"
	}
	if td.Type == "server_vad" {
		td.Threshold = &cfg.Threshold
		td.PrefixPaddingMs = &cfg.PrefixPaddingMs
		td.SilenceDurationMs = &cfg.SilenceDurationMs
	}

	update := sessionUpdate{
		Type: "transcription_session.update",
		Session: sessionOptions{
			InputAudioFormat: "pcm16",
			InputAudioTranscription: transcriptionOptions{
				Model:    cfg.Model,
				Prompt:   cfg.Prompt,
				Language: language,
			},
			TurnDetection: td,
		},
	}
	if cfg.NoiseReduction != "" {
		update.Session.NoiseReduction = &noiseReductionOptions{Type: cfg.NoiseReduction}
	}
	return update
}

// parseServerEvent maps a realtime server message to a Transcript. Events the
// session does not act on return false.
func parseServerEvent(msg []byte) (Transcript, bool) {
	var event serverEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return Transcript{}, false
	}
	switch event.Type {
	case "conversation.item.input_audio_transcription.delta":
		return Transcript{Kind: TranscriptDelta, Text: event.Delta, ItemID: event.ItemID}, true
	case "conversation.item.input_audio_transcription.completed":
		return Transcript{Kind: TranscriptCompleted, Text: event.Transcript, ItemID: event.ItemID}, true
	case "input_audio_buffer.speech_started":
		return Transcript{Kind: SpeechStarted, ItemID: event.ItemID}, true
	case "input_audio_buffer.speech_stopped":
		return Transcript{Kind: SpeechStopped, ItemID: event.ItemID}, true
	case "error":
		text := "unknown realtime error"
		if event.Error != nil {
			text = fmt.Sprintf("%s: %s", event.Error.Code, event.Error.Message)
		}
		return Transcript{Kind: TranscriptError, Err: errors.New(text)}, true
	}
	return Transcript{}, false
}

// Stream opens a transcription session for the given language, forwards 8kHz
// μ-law audio from audioStream and returns the resulting events. The channel
// closes when ctx is done, audioStream closes or the connection drops.
func (c *OpenAIRealtimeClient) Stream(ctx context.Context, audioStream <-chan []byte, language string) (<-chan Transcript, error) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+c.apiKey)
	headers.Set("OpenAI-Beta", "realtime=v1")

	conn, _, err := c.dialer.DialContext(ctx, c.url, headers)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to OpenAI realtime endpoint: %w", err)
	}
	if err := conn.WriteJSON(newSessionUpdate(c.cfg, language)); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to send transcription session update: %w", err)
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "stt_language", Value: language})
	c.logger.Info(ctx, "Transcription session started")

	results := make(chan Transcript, 32)
	var closeOnce sync.Once
	closeConn := func() { closeOnce.Do(func() { conn.Close() }) }

	go func() {
		defer close(results)
		defer closeConn()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					c.logger.Error(ctx, "Transcription connection closed", err)
					select {
					case results <- Transcript{Kind: TranscriptError, Err: err}:
					default:
					}
				}
				return
			}
			event, ok := parseServerEvent(msg)
			if !ok {
				continue
			}
			select {
			case results <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		defer closeConn()
		for {
			select {
			case <-ctx.Done():
				return
			case chunk, ok := <-audioStream:
				if !ok {
					return
				}
				pcm := audio.ConvertMuLawToPCM24kHz(chunk)
				if err := conn.WriteJSON(audioAppend{
					Type:  "input_audio_buffer.append",
					Audio: audio.BytesToBase64(pcm),
				}); err != nil {
					c.logger.Error(ctx, "Failed to send audio chunk", err)
					return
				}
			}
		}
	}()

	return results, nil
}
