package handler

import (
	"net/http"

	"voice-assistant/internal/observability"
	"voice-assistant/internal/voicecall/processor"

	"github.com/gorilla/websocket"
)

// VoiceAgentPath is where Twilio opens the media stream.
const VoiceAgentPath = "/api/phone/voice-agent"

type Handler struct {
	voiceProcessor *processor.VoiceCallProcessor
	publicHost     string
	connecting     string
	logger         *observability.Logger
}

// New creates the telephony handlers. publicHost is the host Twilio should
// dial back; when empty the Host of the answer request is used. connecting is
// spoken while the stream opens and may be empty.
func New(voiceProcessor *processor.VoiceCallProcessor, publicHost, connecting string, logger *observability.Logger) Handler {
	return Handler{
		voiceProcessor: voiceProcessor,
		publicHost:     publicHost,
		connecting:     connecting,
		logger:         logger,
	}
}

// upgrader is a shared WebSocket upgrader. Twilio does not send an Origin header.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
