package twilio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"voice-assistant/internal/observability"
	"voice-assistant/internal/voice/audio"

	"github.com/gorilla/websocket"
)

var ErrStreamEnded = errors.New("media stream ended before start event")

// MediaEvent is an inbound Twilio media stream message.
type MediaEvent struct {
	Event string `json:"event"`
	Start struct {
		StreamSid string `json:"streamSid"`
		CallSid   string `json:"callSid"`
	} `json:"start,omitempty"`
	Media struct {
		Payload string `json:"payload"`
	} `json:"media,omitempty"`
	Stop struct {
		StreamSid string `json:"streamSid"`
	} `json:"stop,omitempty"`
}

type outboundMedia struct {
	Event     string       `json:"event"`
	StreamSid string       `json:"streamSid"`
	Media     mediaPayload `json:"media"`
}

type mediaPayload struct {
	Payload string `json:"payload"`
}

type outboundClear struct {
	Event     string `json:"event"`
	StreamSid string `json:"streamSid"`
}

// WebSocketHandler bridges one Twilio media stream to audio channels of
// 8kHz μ-law frames.
type WebSocketHandler struct {
	conn   *websocket.Conn
	logger *observability.Logger

	mu        sync.RWMutex
	streamSid string
	callSid   string

	writeMutex sync.Mutex
	started    chan struct{}
	startOnce  sync.Once
	done       chan struct{}
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewWebSocketHandler(conn *websocket.Conn, logger *observability.Logger) *WebSocketHandler {
	ctx, cancel := context.WithCancel(context.Background())
	return &WebSocketHandler{
		conn:    conn,
		logger:  logger,
		started: make(chan struct{}),
		done:    make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start reads caller audio into audioIn and writes audioOut to the caller.
// audioIn is closed when the stream stops.
func (h *WebSocketHandler) Start(ctx context.Context, audioIn chan<- []byte, audioOut <-chan []byte) error {
	handlerCtx, cancel := context.WithCancel(ctx)
	h.ctx = handlerCtx
	oldCancel := h.cancel
	h.cancel = func() {
		cancel()
		oldCancel()
	}

	go h.sendAudioToTwilio(audioOut)
	go h.receiveAudioFromTwilio(audioIn)

	return nil
}

// WaitStarted blocks until Twilio sends the start event.
func (h *WebSocketHandler) WaitStarted(ctx context.Context) error {
	select {
	case <-h.started:
		return nil
	case <-h.done:
		return ErrStreamEnded
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when the caller hangs up or the socket drops.
func (h *WebSocketHandler) Done() <-chan struct{} {
	return h.done
}

func (h *WebSocketHandler) receiveAudioFromTwilio(audioIn chan<- []byte) {
	defer close(h.done)
	defer close(audioIn)
	logCtx := h.ctx

	for {
		select {
		case <-h.ctx.Done():
			h.logger.Info(logCtx, "WebSocket receive stopped: context cancelled")
			return
		default:
			_, msg, err := h.conn.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || h.ctx.Err() != nil {
					h.logger.Info(logCtx, "WebSocket closed")
				} else {
					h.logger.Error(logCtx, "WebSocket read error", err)
				}
				return
			}

			var event MediaEvent
			if err := json.Unmarshal(msg, &event); err != nil {
				h.logger.Error(logCtx, "Failed to parse Twilio event", err)
				continue
			}

			switch event.Event {
			case "connected":
				h.logger.Debug(logCtx, "Twilio media stream connected")

			case "start":
				h.mu.Lock()
				h.streamSid = event.Start.StreamSid
				h.callSid = event.Start.CallSid
				h.mu.Unlock()
				logCtx = observability.WithFields(logCtx,
					observability.Field{Key: "stream_sid", Value: event.Start.StreamSid},
					observability.Field{Key: "call_sid", Value: event.Start.CallSid},
				)
				h.logger.Info(logCtx, "Twilio stream started")
				h.startOnce.Do(func() { close(h.started) })

			case "media":
				audioBytes, err := audio.Base64ToBytes(event.Media.Payload)
				if err != nil {
					h.logger.Error(logCtx, "Failed to decode audio", err)
					continue
				}

				select {
				case audioIn <- audioBytes:
				case <-h.ctx.Done():
					return
				default:
					h.logger.Warn(logCtx, "Audio input buffer full, dropping chunk")
				}

			case "stop":
				h.logger.Info(logCtx, fmt.Sprintf("Twilio stream stopped: %s", event.Stop.StreamSid))
				return

			default:
				h.logger.Debug(logCtx, fmt.Sprintf("Unknown Twilio event: %s", event.Event))
			}
		}
	}
}

func (h *WebSocketHandler) sendAudioToTwilio(audioOut <-chan []byte) {
	for {
		select {
		case <-h.ctx.Done():
			return

		case audioData, ok := <-audioOut:
			if !ok {
				h.logger.Info(h.ctx, "Audio output channel closed")
				return
			}

			if err := h.writeJSON(outboundMedia{
				Event:     "media",
				StreamSid: h.GetStreamSID(),
				Media:     mediaPayload{Payload: audio.BytesToBase64(audioData)},
			}); err != nil {
				h.logger.Error(h.ctx, "Failed to send audio to Twilio", err)
				return
			}
		}
	}
}

// Clear drops the audio Twilio has buffered but not yet played.
func (h *WebSocketHandler) Clear() error {
	return h.writeJSON(outboundClear{Event: "clear", StreamSid: h.GetStreamSID()})
}

func (h *WebSocketHandler) writeJSON(v any) error {
	msgBytes, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal Twilio message: %w", err)
	}
	h.writeMutex.Lock()
	defer h.writeMutex.Unlock()
	return h.conn.WriteMessage(websocket.TextMessage, msgBytes)
}

func (h *WebSocketHandler) Stop() {
	h.logger.Info(h.ctx, "Stopping Twilio WebSocket handler")
	h.cancel()

	h.writeMutex.Lock()
	_ = h.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	h.writeMutex.Unlock()

	h.conn.Close()
}

func (h *WebSocketHandler) GetStreamSID() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.streamSid
}

func (h *WebSocketHandler) GetCallSID() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.callSid
}
