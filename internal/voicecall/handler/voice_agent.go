package handler

import (
	"fmt"
	"net/http"

	"voice-assistant/internal/apierrors"
	"voice-assistant/internal/voicecall/twilio"

	"github.com/gin-gonic/gin"
	"github.com/twilio/twilio-go/twiml"
)

func (h *Handler) HandleVoiceAgent(c *gin.Context) {
	ctx := c.Request.Context()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error(ctx, "WebSocket upgrade failed", err)
		return
	}
	defer conn.Close()

	h.logger.Info(ctx, "Twilio WebSocket connection established for voice agent")

	twilioHandler := twilio.NewWebSocketHandler(conn, h.logger)
	defer twilioHandler.Stop()

	if err := h.voiceProcessor.HandleCall(ctx, twilioHandler); err != nil {
		h.logger.Error(ctx, "Voice agent session failed", err)
		return
	}
	h.logger.Info(ctx, "Voice agent session ended")
}

// streamURL is the websocket URL Twilio connects the call audio to.
func (h *Handler) streamURL(r *http.Request) string {
	host := h.publicHost
	if host == "" {
		host = r.Host
	}
	return fmt.Sprintf("wss://%s%s", host, VoiceAgentPath)
}

func (h *Handler) HandleAnswerVoiceAgent(c *gin.Context) {
	wsURL := h.streamURL(c.Request)
	h.logger.Info(c.Request.Context(), fmt.Sprintf("Voice Agent TwiML WebSocket URL: %s", wsURL))

	var elements []twiml.Element
	if h.connecting != "" {
		elements = append(elements, &twiml.VoiceSay{Message: h.connecting})
	}

	stream := twiml.VoiceStream{
		Name: "voice-agent-stream",
		Url:  wsURL,
	}
	elements = append(elements, twiml.VoiceConnect{
		InnerElements: []twiml.Element{stream},
	})

	twimlResult, err := twiml.Voice(elements)
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}
	c.Header("Content-Type", "text/xml")
	c.String(http.StatusOK, twimlResult)
}
