// Package agent runs a voice conversation: speech in, tool-calling replies,
// speech out.
package agent

import (
	"strings"

	"voice-assistant/internal/config"
	"voice-assistant/internal/tools"
)

const (
	vidyaInstructions = "You are a helpful female voice AI assistant name Vidya who talks in Hindi. " +
		"You eagerly assist users with their questions by providing information from your extensive knowledge. " +
		"Your responses are concise, to the point, and without any complex formatting or punctuation including emojis, asterisks, or other symbols. " +
		"You are curious, friendly, and have a sense of humor."

	vidyaGreeting = "Greet the user and offer your assistance. " +
		"You have been appointed by OMX Digital Marketing Agency as their AI assistant to help users with their queries related to digital marketing. " +
		"Keep your responses concise and to the point."

	assistantInstructions = "You are a helpful voice AI assistant. " +
		"You eagerly assist users with their questions by providing information from your extensive knowledge. " +
		"Your responses are concise, to the point, and without any complex formatting or punctuation including emojis, asterisks, or other symbols. " +
		"You are curious, friendly, and have a sense of humor."

	assistantGreeting = "Greet the user and offer your assistance."
)

// Persona is the built-in character of a variant.
type Persona struct {
	Name         string
	Instructions string
	Greeting     string
	// Connecting is said by the telephony provider while the stream opens.
	Connecting string
}

func PersonaFor(variant config.Variant) Persona {
	if variant == config.VariantVidya {
		return Persona{
			Name:         "Vidya",
			Instructions: vidyaInstructions,
			Greeting:     vidyaGreeting,
			Connecting:   "Namaste! Ek pal, aapko Vidya se jod rahe hain.",
		}
	}
	return Persona{
		Name:         "Assistant",
		Instructions: assistantInstructions,
		Greeting:     assistantGreeting,
		Connecting:   "Hello! Connecting you to our assistant. One moment please.",
	}
}

// Assistant is what the model is told and what it may call.
type Assistant struct {
	Instructions string
	Tools        tools.Invoker
}

// NewAssistant uses prompt as the instructions unless it is blank, in which
// case the persona's built-in instructions apply.
func NewAssistant(persona Persona, prompt string, invoker tools.Invoker) Assistant {
	instructions := prompt
	if strings.TrimSpace(prompt) == "" {
		instructions = persona.Instructions
	}
	return Assistant{Instructions: instructions, Tools: invoker}
}
