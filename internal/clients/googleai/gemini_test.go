package googleai

import (
	"encoding/json"
	"testing"

	"voice-assistant/internal/conversation"
	"voice-assistant/internal/observability"
	"voice-assistant/internal/tools"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionDeclarations(t *testing.T) {
	lo, hi := 0, 100
	decls := functionDeclarations([]tools.Specification{
		{
			Name:        "set_volume",
			Description: "Set the system volume",
			Inputs: &tools.InputSchema{
				Type:     "object",
				Required: []string{"level"},
				Properties: map[string]tools.ParameterObject{
					"level": {Type: "integer", Description: "Volume level", Minimum: &lo, Maximum: &hi},
				},
			},
		},
		{
			Name:        "change_stt_language",
			Description: "Change the speech recognition language",
			Inputs: &tools.InputSchema{
				Type:     "object",
				Required: []string{"language_code"},
				Properties: map[string]tools.ParameterObject{
					"language_code": {Type: "string", Description: "Language code", Enum: []string{"en-US", "hi-IN"}},
				},
			},
		},
		{Name: "check_memory", Description: "Check memory usage", Inputs: &tools.InputSchema{Type: "object"}},
	})
	require.Len(t, decls, 3)

	volume := decls[0]
	assert.Equal(t, "set_volume", volume.Name)
	require.NotNil(t, volume.Parameters)
	assert.Equal(t, genai.TypeObject, volume.Parameters.Type)
	assert.Equal(t, []string{"level"}, volume.Parameters.Required)
	assert.Equal(t, genai.TypeInteger, volume.Parameters.Properties["level"].Type)
	assert.Equal(t, "Volume level (0-100)", volume.Parameters.Properties["level"].Description)

	lang := decls[1].Parameters.Properties["language_code"]
	assert.Equal(t, genai.TypeString, lang.Type)
	assert.Equal(t, []string{"en-US", "hi-IN"}, lang.Enum)

	assert.Nil(t, decls[2].Parameters)
}

func TestHistory(t *testing.T) {
	hist, prompt := history([]conversation.Message{
		{Role: conversation.RoleUser, Content: "namaste"},
		{Role: conversation.RoleAssistant, Content: "namaste ji"},
		{Role: conversation.RoleUser, Content: "wifi check karo"},
	})
	require.Len(t, hist, 2)
	assert.Equal(t, "user", hist[0].Role)
	assert.Equal(t, "model", hist[1].Role)
	assert.Equal(t, []genai.Part{genai.Text("wifi check karo")}, prompt)

	hist, prompt = history(nil)
	assert.Empty(t, hist)
	assert.Equal(t, []genai.Part{genai.Text(sessionStartPrompt)}, prompt)
}

func TestHistory_GreetingThenUser(t *testing.T) {
	hist, prompt := history([]conversation.Message{
		{Role: conversation.RoleAssistant, Content: "Namaste, main Vidya hoon"},
		{Role: conversation.RoleUser, Content: "memory check karo"},
	})

	require.Len(t, hist, 2)
	assert.Equal(t, "user", hist[0].Role)
	assert.Equal(t, []genai.Part{genai.Text(sessionStartPrompt)}, hist[0].Parts)
	assert.Equal(t, "model", hist[1].Role)
	assert.Equal(t, []genai.Part{genai.Text("Namaste, main Vidya hoon")}, hist[1].Parts)
	assert.Equal(t, []genai.Part{genai.Text("memory check karo")}, prompt)
}

func TestHistory_MergesConsecutiveTurns(t *testing.T) {
	hist, prompt := history([]conversation.Message{
		{Role: conversation.RoleAssistant, Content: "Namaste"},
		{Role: conversation.RoleUser, Content: "ek minute"},
		{Role: conversation.RoleUser, Content: "wifi status batao"},
	})

	require.Len(t, hist, 2)
	assert.Equal(t, []genai.Part{genai.Text("ek minute"), genai.Text("wifi status batao")}, prompt)

	hist, prompt = history([]conversation.Message{
		{Role: conversation.RoleUser, Content: "hello"},
		{Role: conversation.RoleAssistant, Content: "hi"},
	})
	require.Len(t, hist, 2)
	assert.Equal(t, "model", hist[1].Role)
	assert.Equal(t, []genai.Part{genai.Text(continuePrompt)}, prompt)
}

func TestSplitParts(t *testing.T) {
	text, calls := splitParts([]genai.Part{
		genai.Text("Checking "),
		genai.FunctionCall{Name: "set_volume", Args: map[string]any{"level": float64(50)}},
		genai.Text("now."),
	})
	assert.Equal(t, "Checking now.", text)
	require.Len(t, calls, 1)
	assert.Equal(t, "set_volume", calls[0].Name)

	var args struct {
		Level *int `json:"level"`
	}
	require.NoError(t, json.Unmarshal(argsJSON(calls[0].Args), &args))
	require.NotNil(t, args.Level)
	assert.Equal(t, 50, *args.Level)
	assert.JSONEq(t, `{}`, string(argsJSON(nil)))
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient("", "gemini-1.5-flash", observability.NewLogger())
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	c, err := NewGeminiClient("key", "gemini-1.5-flash", observability.NewLogger())
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-flash", c.model)
}
