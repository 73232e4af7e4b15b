// Package language holds the speech-recognition language used when a voice
// session opens its speech-to-text stream.
package language

import (
	"fmt"
	"strings"
	"sync"
)

// Code is a BCP-47 style locale identifier such as "hi-IN".
type Code string

// Language pairs a supported code with its human-readable label.
type Language struct {
	Code  Code   `json:"code"`
	Label string `json:"label"`
}

func (l Language) String() string {
	return fmt.Sprintf("%s (%s)", l.Label, l.Code)
}

const (
	English   Code = "en-US"
	Hindi     Code = "hi-IN"
	Spanish   Code = "es-ES"
	Tamil     Code = "ta-IN"
	Telugu    Code = "te-IN"
	Malayalam Code = "ml-IN"
)

var supported = []Language{
	{Code: English, Label: "English"},
	{Code: Hindi, Label: "Hindi"},
	{Code: Spanish, Label: "Spanish"},
	{Code: Tamil, Label: "Tamil"},
	{Code: Telugu, Label: "Telugu"},
	{Code: Malayalam, Label: "Malayalam"},
}

// Supported returns the supported languages in declaration order.
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// SupportedCodes returns the supported codes in declaration order.
func SupportedCodes() []Code {
	codes := make([]Code, len(supported))
	for i, l := range supported {
		codes[i] = l.Code
	}
	return codes
}

// Lookup finds the language registered under code.
func Lookup(code Code) (Language, bool) {
	for _, l := range supported {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// UnsupportedError is returned when a code is not in the supported table.
type UnsupportedError struct {
	Code      string
	Supported []Code
}

func (e *UnsupportedError) Error() string {
	valid := make([]string, len(e.Supported))
	for i, c := range e.Supported {
		valid[i] = string(c)
	}
	return fmt.Sprintf("unsupported language code %q, valid codes: %s", e.Code, strings.Join(valid, ", "))
}

// Store owns the current speech-recognition language. The zero value is not
// usable; construct with NewStore.
type Store struct {
	mu   sync.RWMutex
	code Code
}

// NewStore creates a store initialised to defaultCode.
func NewStore(defaultCode Code) (*Store, error) {
	if _, ok := Lookup(defaultCode); !ok {
		return nil, &UnsupportedError{Code: string(defaultCode), Supported: SupportedCodes()}
	}
	return &Store{code: defaultCode}, nil
}

// Set replaces the current language. An unsupported code leaves the store untouched.
func (s *Store) Set(code string) (Language, error) {
	lang, ok := Lookup(Code(code))
	if !ok {
		return Language{}, &UnsupportedError{Code: code, Supported: SupportedCodes()}
	}

	s.mu.Lock()
	s.code = lang.Code
	s.mu.Unlock()
	return lang, nil
}

// Code returns the raw stored code.
func (s *Store) Code() Code {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.code
}

// Current returns the stored language with its label.
func (s *Store) Current() Language {
	code := s.Code()
	if lang, ok := Lookup(code); ok {
		return lang
	}
	return Language{Code: code, Label: string(code)}
}

// Display returns the human-readable label for the stored code, or the raw
// code when no label is known.
func (s *Store) Display() string {
	return s.Current().Label
}

// ISO639 returns the primary language subtag, e.g. "hi" for "hi-IN".
func (s *Store) ISO639() string {
	return PrimarySubtag(s.Code())
}

// PrimarySubtag strips the region from a code.
func PrimarySubtag(code Code) string {
	primary, _, _ := strings.Cut(string(code), "-")
	return strings.ToLower(primary)
}
