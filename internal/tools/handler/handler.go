package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"voice-assistant/internal/apierrors"
	"voice-assistant/internal/language"
	"voice-assistant/internal/observability"
	"voice-assistant/internal/tools"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	registry  *tools.Registry
	languages *language.Store
	logger    *observability.Logger
}

func New(registry *tools.Registry, languages *language.Store, logger *observability.Logger) Handler {
	return Handler{
		registry:  registry,
		languages: languages,
		logger:    logger,
	}
}

// ToolResponse carries exactly the text the language model would have read.
type ToolResponse struct {
	Tool   string `json:"tool"`
	Result string `json:"result"`
	OK     bool   `json:"ok"`
}

type LanguageResponse struct {
	Code      language.Code       `json:"code"`
	Label     string              `json:"label"`
	Supported []language.Language `json:"supported"`
}

type SetLanguageRequest struct {
	Code string `json:"code" binding:"required"`
}

// HandleListTools handles GET /api/tools
func (h *Handler) HandleListTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": h.registry.Specifications()})
}

// HandleInvokeTool handles POST /api/tools/:name
func (h *Handler) HandleInvokeTool(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")
	if _, found := h.registry.Get(name); !found {
		apierrors.RespondWithError(c, tools.ErrUnknownTool)
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		h.logger.Error(ctx, "failed to read request body", err)
		apierrors.BadRequest(c, apierrors.CodeInvalidInput, "Failed to read request body")
		return
	}
	var input json.RawMessage
	if len(body) > 0 {
		if !json.Valid(body) {
			apierrors.BadRequest(c, apierrors.CodeInvalidInput, "Request body must be a JSON object")
			return
		}
		input = body
	}

	result, err := h.registry.Execute(ctx, name, input)
	if errors.Is(err, tools.ErrUnknownTool) {
		apierrors.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToolResponse{Tool: name, Result: result, OK: err == nil})
}

// HandleGetLanguage handles GET /api/language
func (h *Handler) HandleGetLanguage(c *gin.Context) {
	c.JSON(http.StatusOK, h.languageResponse(h.languages.Current()))
}

// HandleSetLanguage handles PUT /api/language. The change applies to calls
// that start afterwards.
func (h *Handler) HandleSetLanguage(c *gin.Context) {
	ctx := c.Request.Context()
	var req SetLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.ValidationError(c, err)
		return
	}

	lang, err := h.languages.Set(req.Code)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "language", Value: string(lang.Code)})
	h.logger.Info(ctx, "speech recognition language changed")
	c.JSON(http.StatusOK, h.languageResponse(lang))
}

func (h *Handler) languageResponse(lang language.Language) LanguageResponse {
	return LanguageResponse{
		Code:      lang.Code,
		Label:     lang.Label,
		Supported: language.Supported(),
	}
}
