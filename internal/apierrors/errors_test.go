package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voice-assistant/internal/language"
	"voice-assistant/internal/tools"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unsupported language",
			err:        &language.UnsupportedError{Code: "fr-FR"},
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeUnsupportedLanguage,
		},
		{
			name:       "wrapped unknown tool",
			err:        fmt.Errorf("lookup: %w", tools.ErrUnknownTool),
			wantStatus: http.StatusNotFound,
			wantCode:   CodeToolNotFound,
		},
		{
			name:       "api error passes through",
			err:        &APIError{StatusCode: http.StatusConflict, Code: "CONFLICT", Message: "busy"},
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
		},
		{
			name:       "anything else is internal",
			err:        errors.New("database on fire"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeInternal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}
	assert.Nil(t, MapError(nil))
}

func TestRespondWithError_HidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithError(c, errors.New("secret connection string"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")
	assert.True(t, c.IsAborted())
}

func TestValidationError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	type body struct {
		Code string `json:"code" binding:"required"`
	}
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{name: "missing field", payload: `{}`, want: "Code is required"},
		{name: "bad json", payload: `{`, want: "Invalid request format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.payload))
			c.Request.Header.Set("Content-Type", "application/json")

			var b body
			ValidationError(c, c.ShouldBindJSON(&b))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}
