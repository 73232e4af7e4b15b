package api

import (
	"net/http"

	authHandler "voice-assistant/internal/auth/handler"
	"voice-assistant/internal/ratelimit"
	toolsHandler "voice-assistant/internal/tools/handler"
	voiceCallHandler "voice-assistant/internal/voicecall/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router           *gin.RouterGroup
	authHandler      authHandler.Handler
	toolsHandler     toolsHandler.Handler
	voiceCallHandler voiceCallHandler.Handler
	rateLimiter      *ratelimit.Service
}

func New(router *gin.RouterGroup, authHandler authHandler.Handler, toolsHandler toolsHandler.Handler, voiceCallHandler voiceCallHandler.Handler, rateLimiter *ratelimit.Service) API {
	return API{
		router:           router,
		authHandler:      authHandler,
		toolsHandler:     toolsHandler,
		voiceCallHandler: voiceCallHandler,
		rateLimiter:      rateLimiter,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	apiGroup := a.router.Group("/api")
	{
		phoneGroup := apiGroup.Group("/phone")
		phoneGroup.POST("/answer", a.voiceCallHandler.HandleAnswerVoiceAgent)
		phoneGroup.GET("/answer", a.voiceCallHandler.HandleAnswerVoiceAgent)
		phoneGroup.GET("/voice-agent", a.voiceCallHandler.HandleVoiceAgent)
	}
	protectedGroup := apiGroup.Group("",
		a.authHandler.HandleJWTMiddleware,
		a.rateLimiter.Middleware(authHandler.OperatorKey),
	)
	{
		protectedGroup.GET("/tools", a.toolsHandler.HandleListTools)
		protectedGroup.POST("/tools/:name", a.toolsHandler.HandleInvokeTool)
		protectedGroup.GET("/language", a.toolsHandler.HandleGetLanguage)
		protectedGroup.PUT("/language", a.toolsHandler.HandleSetLanguage)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
