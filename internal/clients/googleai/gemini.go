package googleai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"voice-assistant/internal/conversation"
	"voice-assistant/internal/observability"
	"voice-assistant/internal/tools"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var (
	ErrMissingAPIKey = errors.New("Google AI API key is required")
	ErrEmptyResponse = errors.New("response has no candidates")
)

// GeminiClient generates replies with Gemini function calling.
type GeminiClient struct {
	model   string
	options []option.ClientOption
	logger  *observability.Logger
}

func NewGeminiClient(apiKey, model string, logger *observability.Logger, opts ...option.ClientOption) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &GeminiClient{
		model:   model,
		options: append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...),
		logger:  logger,
	}, nil
}

// functionDeclarations converts tool specifications to Gemini declarations.
// Gemini schemas have no numeric bounds, so ranges are folded into the
// description.
func functionDeclarations(specs []tools.Specification) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(specs))
	for _, spec := range specs {
		decl := &genai.FunctionDeclaration{
			Name:        spec.Name,
			Description: spec.Description,
		}
		if spec.Inputs != nil && len(spec.Inputs.Properties) > 0 {
			schema := &genai.Schema{
				Type:       genai.TypeObject,
				Properties: make(map[string]*genai.Schema, len(spec.Inputs.Properties)),
				Required:   spec.Inputs.Required,
			}
			for name, p := range spec.Inputs.Properties {
				schema.Properties[name] = &genai.Schema{
					Type:        schemaType(p.Type),
					Description: describeRange(p),
					Enum:        p.Enum,
				}
			}
			decl.Parameters = schema
		}
		decls = append(decls, decl)
	}
	return decls
}

func schemaType(t string) genai.Type {
	switch t {
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

func describeRange(p tools.ParameterObject) string {
	if p.Minimum == nil || p.Maximum == nil {
		return p.Description
	}
	return fmt.Sprintf("%s (%d-%d)", p.Description, *p.Minimum, *p.Maximum)
}

// sessionStartPrompt is sent when a reply is requested before the user has
// spoken, since Gemini rejects empty prompts. It also opens a history that
// starts with the greeting, because Gemini expects a user turn first.
const sessionStartPrompt = "The call has just connected."

// continuePrompt asks for another turn when the last message is the model's.
const continuePrompt = "Please continue."

// history maps all but the last turn to chat history and returns the last
// user turn as the prompt. Consecutive messages with the same role are merged
// into one turn so that roles alternate.
func history(msgs []conversation.Message) ([]*genai.Content, []genai.Part) {
	var turns []*genai.Content
	for _, m := range msgs {
		role := "user"
		if m.Role == conversation.RoleAssistant {
			role = "model"
		}
		if n := len(turns); n > 0 && turns[n-1].Role == role {
			turns[n-1].Parts = append(turns[n-1].Parts, genai.Text(m.Content))
			continue
		}
		if len(turns) == 0 && role == "model" {
			turns = append(turns, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(sessionStartPrompt)}})
		}
		turns = append(turns, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}

	if len(turns) == 0 {
		return nil, []genai.Part{genai.Text(sessionStartPrompt)}
	}
	last := turns[len(turns)-1]
	if last.Role == "model" {
		return turns, []genai.Part{genai.Text(continuePrompt)}
	}
	return turns[:len(turns)-1], last.Parts
}

// splitParts separates the text of a candidate from its function calls.
func splitParts(parts []genai.Part) (string, []genai.FunctionCall) {
	var text strings.Builder
	var calls []genai.FunctionCall
	for _, part := range parts {
		switch p := part.(type) {
		case genai.Text:
			text.WriteString(string(p))
		case genai.FunctionCall:
			calls = append(calls, p)
		}
	}
	return text.String(), calls
}

func argsJSON(args map[string]any) json.RawMessage {
	if len(args) == 0 {
		return json.RawMessage(`{}`)
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return raw
}

func (g *GeminiClient) Generate(ctx context.Context, req conversation.Request) (string, error) {
	c, err := genai.NewClient(ctx, g.options...)
	if err != nil {
		return "", fmt.Errorf("failed to create AI client: %w", err)
	}
	defer c.Close()

	model := c.GenerativeModel(g.model)
	if req.Instructions != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.Instructions)}}
	}
	if req.Tools != nil {
		specs := req.Tools.Specifications()
		sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
		model.Tools = []*genai.Tool{{FunctionDeclarations: functionDeclarations(specs)}}
	}

	chat := model.StartChat()
	var parts []genai.Part
	chat.History, parts = history(req.Messages)

	for round := 0; ; round++ {
		resp, err := chat.SendMessage(ctx, parts...)
		if err != nil {
			return "", fmt.Errorf("failed to get AI response: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return "", ErrEmptyResponse
		}

		text, calls := splitParts(resp.Candidates[0].Content.Parts)
		if len(calls) == 0 || req.Tools == nil || round >= conversation.MaxToolRounds {
			return text, nil
		}

		parts = nil
		for _, call := range calls {
			g.logger.Info(ctx, fmt.Sprintf("Model called tool %s", call.Name))
			result := req.Tools.Invoke(ctx, call.Name, argsJSON(call.Args))
			parts = append(parts, genai.FunctionResponse{
				Name:     call.Name,
				Response: map[string]any{"result": result},
			})
		}
	}
}
