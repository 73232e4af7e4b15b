package tools

import (
	"context"
	"encoding/json"
)

// Specification describes a tool to a language model.
type Specification struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Inputs      *InputSchema `json:"input_schema,omitempty"`
}

type InputSchema struct {
	Type       string                     `json:"type"`
	Required   []string                   `json:"required"`
	Properties map[string]ParameterObject `json:"properties"`
}

type ParameterObject struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Enum        []string `json:"enum,omitempty"`
	Minimum     *int     `json:"minimum,omitempty"`
	Maximum     *int     `json:"maximum,omitempty"`
}

// JSONSchema returns the input schema as a plain map, the shape most
// provider SDKs accept for function parameters.
func (s Specification) JSONSchema() map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": map[string]any{},
		"required":   []string{},
	}
	if s.Inputs == nil {
		return schema
	}

	props := make(map[string]any, len(s.Inputs.Properties))
	for name, p := range s.Inputs.Properties {
		prop := map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		if p.Minimum != nil {
			prop["minimum"] = *p.Minimum
		}
		if p.Maximum != nil {
			prop["maximum"] = *p.Maximum
		}
		props[name] = prop
	}
	schema["properties"] = props
	if s.Inputs.Required != nil {
		schema["required"] = s.Inputs.Required
	}
	return schema
}

// noInputs is the schema of tools that take no arguments.
func noInputs() *InputSchema {
	return &InputSchema{
		Type:       "object",
		Required:   make([]string, 0),
		Properties: map[string]ParameterObject{},
	}
}

// Outcome is the success value of a tool run.
type Outcome struct {
	Message MessageID
	Params  []any
	// Output is the raw command output. It is logged, never shown to the model.
	Output string
}

func ok(msg MessageID, params ...any) Outcome {
	return Outcome{Message: msg, Params: params}
}

// Tool is a named unit the model can invoke during a conversation turn.
type Tool interface {
	Specification() Specification
	// Run executes the tool. Failures are returned as *Error.
	Run(ctx context.Context, input json.RawMessage) (Outcome, error)
}

// Invoker is the view of the tool set handed to language model clients.
type Invoker interface {
	Specifications() []Specification
	// Invoke runs the named tool and always returns a display string.
	Invoke(ctx context.Context, name string, input json.RawMessage) string
}

func intPtr(v int) *int { return &v }
