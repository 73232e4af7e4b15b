package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"voice-assistant/internal/clients/openai"
	"voice-assistant/internal/conversation"
	"voice-assistant/internal/language"
	"voice-assistant/internal/observability"
	"voice-assistant/internal/voice/audio"

	"github.com/google/uuid"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=session.go -destination=mocks_test.go -package=agent

// SpeechToText streams 8kHz μ-law audio to a recognizer for one language.
type SpeechToText interface {
	Stream(ctx context.Context, audio <-chan []byte, language string) (<-chan openai.Transcript, error)
}

// LanguageModel produces the assistant's next turn, calling tools as needed.
type LanguageModel interface {
	Generate(ctx context.Context, req conversation.Request) (string, error)
}

// TextToSpeech returns 24kHz little-endian PCM16.
type TextToSpeech interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

var (
	ErrMissingProvider = errors.New("session needs speech-to-text, language model and text-to-speech providers")
	ErrMissingStore    = errors.New("session needs a language store")
	ErrAlreadyStarted  = errors.New("session already started")
)

type SessionOptions struct {
	STT       SpeechToText
	LLM       LanguageModel
	TTS       TextToSpeech
	Languages *language.Store
	// Greeting is the instruction for the first reply. Empty skips it.
	Greeting           string
	AllowInterruptions bool
	MaxHistory         int
	// FramePacing is the delay between frames written to the caller.
	// Zero means real time.
	FramePacing time.Duration
}

// ReplyOptions customize a single reply.
type ReplyOptions struct {
	// Instructions are appended to the assistant's instructions for this reply only.
	Instructions       string
	AllowInterruptions bool
}

type reply struct {
	cancel        context.CancelFunc
	done          chan struct{}
	interruptible bool
}

// Session is one caller's conversation.
type Session struct {
	id        string
	assistant Assistant
	opts      SessionOptions
	logger    *observability.Logger
	history   *conversation.History

	mu          sync.Mutex
	started     bool
	lang        language.Code
	out         chan<- []byte
	current     *reply
	onInterrupt func()

	wg sync.WaitGroup
}

func NewSession(assistant Assistant, opts SessionOptions, logger *observability.Logger) (*Session, error) {
	if opts.STT == nil || opts.LLM == nil || opts.TTS == nil {
		return nil, ErrMissingProvider
	}
	if opts.Languages == nil {
		return nil, ErrMissingStore
	}
	return &Session{
		id:        uuid.New().String(),
		assistant: assistant,
		opts:      opts,
		logger:    logger,
		history:   conversation.NewHistory(opts.MaxHistory),
	}, nil
}

func (s *Session) ID() string {
	return s.id
}

// Language is the recognition language fixed when the session started.
func (s *Session) Language() language.Code {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// History returns the turns so far.
func (s *Session) History() []conversation.Message {
	return s.history.Messages()
}

// OnInterrupt registers fn to run when the caller talks over a reply.
func (s *Session) OnInterrupt(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onInterrupt = fn
}

// Start reads the recognition language, opens the transcription stream and
// greets the caller. Audio frames for the caller are written to audioOut as
// 8kHz μ-law. Language changes made after Start apply to the next session.
func (s *Session) Start(ctx context.Context, audioIn <-chan []byte, audioOut chan<- []byte) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.lang = s.opts.Languages.Code()
	s.out = audioOut
	s.mu.Unlock()

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "session_id", Value: s.id},
		observability.Field{Key: "stt_language", Value: string(s.lang)},
	)

	events, err := s.opts.STT.Stream(ctx, audioIn, language.PrimarySubtag(s.lang))
	if err != nil {
		return fmt.Errorf("failed to start transcription: %w", err)
	}
	s.logger.Info(ctx, "Voice session started")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.listen(ctx, events)
	}()

	if s.opts.Greeting != "" {
		s.GenerateReply(ctx, ReplyOptions{
			Instructions:       s.opts.Greeting,
			AllowInterruptions: s.opts.AllowInterruptions,
		})
	}
	return nil
}

// Wait blocks until the transcription stream ends and the last reply finishes.
func (s *Session) Wait() {
	s.wg.Wait()
}

func (s *Session) listen(ctx context.Context, events <-chan openai.Transcript) {
	defer s.cancelReply()
	for ev := range events {
		switch ev.Kind {
		case openai.TranscriptCompleted:
			if ev.Text == "" {
				continue
			}
			s.logger.Info(ctx, "User turn: "+ev.Text)
			s.history.Append(conversation.RoleUser, ev.Text)
			s.GenerateReply(ctx, ReplyOptions{AllowInterruptions: s.opts.AllowInterruptions})
		case openai.SpeechStarted:
			s.interrupt(ctx)
		case openai.TranscriptDelta:
			s.logger.Debug(ctx, "Partial transcript: "+ev.Text)
		case openai.TranscriptError:
			s.logger.Error(ctx, "Transcription error", ev.Err)
		}
	}
	s.logger.Info(ctx, "Voice session ended")
}

// interrupt stops the reply being spoken if it allows interruptions.
func (s *Session) interrupt(ctx context.Context) {
	s.mu.Lock()
	current := s.current
	if current == nil || !current.interruptible {
		s.mu.Unlock()
		return
	}
	current.cancel()
	s.current = nil
	hook := s.onInterrupt
	s.mu.Unlock()

	s.logger.Info(ctx, "Reply interrupted by caller")
	if hook != nil {
		hook()
	}
}

func (s *Session) cancelReply() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.cancel()
		s.current = nil
	}
}

// GenerateReply asks the model for the next turn and speaks it. A reply
// already in flight is cancelled.
func (s *Session) GenerateReply(ctx context.Context, opts ReplyOptions) {
	replyCtx, cancel := context.WithCancel(ctx)
	next := &reply{cancel: cancel, done: make(chan struct{}), interruptible: opts.AllowInterruptions}

	s.mu.Lock()
	prev := s.current
	s.current = next
	out := s.out
	s.mu.Unlock()

	if prev != nil {
		prev.cancel()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(next.done)
		defer s.finish(next)
		if prev != nil {
			<-prev.done
		}
		s.speak(replyCtx, opts, out)
	}()
}

func (s *Session) finish(r *reply) {
	r.cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == r {
		s.current = nil
	}
}

func (s *Session) speak(ctx context.Context, opts ReplyOptions, out chan<- []byte) {
	start := time.Now()
	instructions := s.assistant.Instructions
	if opts.Instructions != "" {
		instructions += "\n\n" + opts.Instructions
	}

	text, err := s.opts.LLM.Generate(ctx, conversation.Request{
		Instructions: instructions,
		Messages:     s.history.Messages(),
		Tools:        s.assistant.Tools,
	})
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error(ctx, "Failed to generate reply", err)
		}
		return
	}
	if ctx.Err() != nil || text == "" {
		return
	}
	s.history.Append(conversation.RoleAssistant, text)
	s.logger.Info(ctx, "Assistant turn: "+text)
	if out == nil {
		return
	}

	pcm, err := s.opts.TTS.Synthesize(ctx, text)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error(ctx, "Failed to synthesize reply", err)
		}
		return
	}

	frames := audio.Frames(audio.ConvertPCM24kHzToMuLaw8kHz(pcm))
	sent, ok := s.play(ctx, frames, out)
	if !ok {
		s.logger.Metrics(ctx,
			observability.MetricField{Key: "reply_frames_sent", Value: sent},
			observability.MetricField{Key: "reply_frames_total", Value: len(frames)},
			observability.MetricField{Key: "reply_cancelled", Value: true},
		)
		return
	}
	s.logger.Metrics(ctx,
		observability.MetricField{Key: "reply_frames_sent", Value: sent},
		observability.MetricField{Key: "reply_duration_ms", Value: time.Since(start).Milliseconds()},
	)
}

// play writes frames at playback speed and returns once the last one has had
// time to play. It reports false if ctx was cancelled first.
func (s *Session) play(ctx context.Context, frames [][]byte, out chan<- []byte) (int, bool) {
	pacing := s.opts.FramePacing
	if pacing <= 0 {
		pacing = audio.FrameDuration
	}
	ticker := time.NewTicker(pacing)
	defer ticker.Stop()

	sent := 0
	for _, frame := range frames {
		select {
		case <-ctx.Done():
			return sent, false
		case out <- frame:
			sent++
		}
		select {
		case <-ctx.Done():
			return sent, false
		case <-ticker.C:
		}
	}
	return sent, true
}
