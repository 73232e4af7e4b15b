package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"voice-assistant/internal/conversation"
	"voice-assistant/internal/observability"
	"voice-assistant/internal/tools"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var ErrEmptyCompletion = errors.New("completion has no choices")

// ChatClient generates replies with the chat completions API, calling tools
// until the model answers in text.
type ChatClient struct {
	options []option.RequestOption
	model   string
	logger  *observability.Logger
}

func NewChatClient(apiKey, model string, logger *observability.Logger, opts ...option.RequestOption) (*ChatClient, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &ChatClient{options: opts, model: model, logger: logger}, nil
}

func toolParams(specs []tools.Specification) []openai.ChatCompletionToolParam {
	params := make([]openai.ChatCompletionToolParam, 0, len(specs))
	for _, spec := range specs {
		params = append(params, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        spec.Name,
				Description: openai.String(spec.Description),
				Parameters:  openai.FunctionParameters(spec.JSONSchema()),
			},
		})
	}
	return params
}

func messageParams(req conversation.Request) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.Instructions != "" {
		msgs = append(msgs, openai.SystemMessage(req.Instructions))
	}
	for _, m := range req.Messages {
		switch m.Role {
		case conversation.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		default:
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}
	return msgs
}

func (c *ChatClient) Generate(ctx context.Context, req conversation.Request) (string, error) {
	client := openai.NewClient(c.options...)
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: messageParams(req),
	}
	if req.Tools != nil {
		params.Tools = toolParams(req.Tools.Specifications())
	}

	for round := 0; ; round++ {
		completion, err := client.Chat.Completions.New(ctx, params)
		if err != nil {
			return "", fmt.Errorf("OpenAI chat completion failed: %w", err)
		}
		if len(completion.Choices) == 0 {
			return "", ErrEmptyCompletion
		}

		msg := completion.Choices[0].Message
		if len(msg.ToolCalls) == 0 || req.Tools == nil {
			return msg.Content, nil
		}

		params.Messages = append(params.Messages, msg.ToParam())
		for _, call := range msg.ToolCalls {
			callCtx := observability.WithFields(ctx, observability.Field{Key: "tool_call_id", Value: call.ID})
			c.logger.Info(callCtx, fmt.Sprintf("Model called tool %s", call.Function.Name))
			result := req.Tools.Invoke(callCtx, call.Function.Name, json.RawMessage(call.Function.Arguments))
			params.Messages = append(params.Messages, openai.ToolMessage(result, call.ID))
		}

		// Out of tool rounds: the next completion has to answer in text.
		if round+1 >= conversation.MaxToolRounds {
			params.Tools = nil
		}
	}
}
