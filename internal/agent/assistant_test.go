package agent

import (
	"testing"

	"voice-assistant/internal/config"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssistant_PromptFallback(t *testing.T) {
	vidya := PersonaFor(config.VariantVidya)

	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{name: "blank prompt", prompt: "", want: vidya.Instructions},
		{name: "whitespace prompt", prompt: " \n\t", want: vidya.Instructions},
		{name: "custom prompt", prompt: "Aap ek sales assistant hain.", want: "Aap ek sales assistant hain."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewAssistant(vidya, tt.prompt, nil).Instructions)
		})
	}
}

func TestPersonaFor(t *testing.T) {
	vidya := PersonaFor(config.VariantVidya)
	assert.Equal(t, "Vidya", vidya.Name)
	assert.Contains(t, vidya.Instructions, "Hindi")
	assert.Contains(t, vidya.Greeting, "OMX Digital Marketing Agency")

	assistant := PersonaFor(config.VariantAssistant)
	assert.Equal(t, "Assistant", assistant.Name)
	assert.NotContains(t, assistant.Instructions, "Hindi")
}

func TestLoadPrompt(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "prompts/vidya.txt", []byte("Aap Vidya hain."), 0o644))

	prompt, err := LoadPrompt(fs, "prompts/vidya.txt")
	require.NoError(t, err)
	assert.Equal(t, "Aap Vidya hain.", prompt)

	_, err = LoadPrompt(fs, "prompts/missing.txt")
	assert.ErrorIs(t, err, ErrPromptNotFound)

	_, err = LoadPrompt(fs, "")
	assert.ErrorIs(t, err, ErrPromptNotFound)
}
