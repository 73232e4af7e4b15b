package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"voice-assistant/internal/language"
)

const (
	ChangeSTTLanguageName     = "change_stt_language"
	GetCurrentSTTLanguageName = "get_current_stt_language"
)

// ChangeSTTLanguageTool updates the speech-recognition language. The new
// value is picked up by the next voice session.
type ChangeSTTLanguageTool struct {
	store *language.Store
}

func NewChangeSTTLanguageTool(store *language.Store) ChangeSTTLanguageTool {
	return ChangeSTTLanguageTool{store: store}
}

type changeLanguageArgs struct {
	LanguageCode string `json:"language_code" validate:"required"`
}

func (t ChangeSTTLanguageTool) Specification() Specification {
	codes := make([]string, 0)
	for _, c := range language.SupportedCodes() {
		codes = append(codes, string(c))
	}
	return Specification{
		Name:        ChangeSTTLanguageName,
		Description: "Change the speech-to-text language used to understand the user. Takes effect from the next conversation.",
		Inputs: &InputSchema{
			Type:     "object",
			Required: []string{"language_code"},
			Properties: map[string]ParameterObject{
				"language_code": {
					Type:        "string",
					Description: "Locale code of the language, for example hi-IN for Hindi or en-US for English.",
					Enum:        codes,
				},
			},
		},
	}
}

func (t ChangeSTTLanguageTool) Run(_ context.Context, input json.RawMessage) (Outcome, error) {
	var args changeLanguageArgs
	if err := decodeArgs(input, &args); err != nil {
		return Outcome{}, rejectLanguage("", err)
	}

	lang, err := t.store.Set(args.LanguageCode)
	if err != nil {
		return Outcome{}, rejectLanguage(args.LanguageCode, err)
	}
	return ok(MsgLanguageChanged, lang.Label, string(lang.Code)), nil
}

func rejectLanguage(code string, err error) *Error {
	valid := make([]string, 0)
	for _, c := range language.SupportedCodes() {
		valid = append(valid, string(c))
	}
	var unsupported *language.UnsupportedError
	if errors.As(err, &unsupported) {
		code = unsupported.Code
	}
	if code == "" {
		code = `""`
	}
	return newError(KindValidation, ChangeSTTLanguageName, err, MsgLanguageRejected, code, strings.Join(valid, ", "))
}

// GetCurrentSTTLanguageTool reports the speech-recognition language.
type GetCurrentSTTLanguageTool struct {
	store *language.Store
}

func NewGetCurrentSTTLanguageTool(store *language.Store) GetCurrentSTTLanguageTool {
	return GetCurrentSTTLanguageTool{store: store}
}

func (t GetCurrentSTTLanguageTool) Specification() Specification {
	return Specification{
		Name:        GetCurrentSTTLanguageName,
		Description: "Get the speech-to-text language currently used to understand the user.",
		Inputs:      noInputs(),
	}
}

func (t GetCurrentSTTLanguageTool) Run(_ context.Context, _ json.RawMessage) (Outcome, error) {
	return ok(MsgLanguageCurrent, t.store.Display(), string(t.store.Code())), nil
}
