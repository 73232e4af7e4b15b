package processor

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"voice-assistant/internal/agent"
	"voice-assistant/internal/clients/kafka"
	"voice-assistant/internal/observability"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=new.go -destination=mocks_test.go -package=processor

// MediaStream is a bidirectional telephony audio stream of 8kHz μ-law frames.
type MediaStream interface {
	Start(ctx context.Context, audioIn chan<- []byte, audioOut <-chan []byte) error
	WaitStarted(ctx context.Context) error
	Done() <-chan struct{}
	// Clear discards audio queued on the caller's side.
	Clear() error
	GetCallSID() string
}

// CallEvents receives call lifecycle events.
type CallEvents interface {
	PublishEvent(ctx context.Context, event kafka.EventMessage) error
}

const audioBufferFrames = 512

type VoiceCallProcessor struct {
	assistant agent.Assistant
	options   agent.SessionOptions
	events    CallEvents
	logger    *observability.Logger
}

// NewVoiceCallProcessor creates a processor. events may be nil.
func NewVoiceCallProcessor(assistant agent.Assistant, options agent.SessionOptions, events CallEvents, logger *observability.Logger) *VoiceCallProcessor {
	return &VoiceCallProcessor{
		assistant: assistant,
		options:   options,
		events:    events,
		logger:    logger,
	}
}

// HandleCall runs an agent session over stream until the caller hangs up or
// ctx is cancelled.
func (v *VoiceCallProcessor) HandleCall(ctx context.Context, stream MediaStream) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	audioIn := make(chan []byte, audioBufferFrames)
	audioOut := make(chan []byte, audioBufferFrames)

	if err := stream.Start(ctx, audioIn, audioOut); err != nil {
		return fmt.Errorf("failed to start media stream: %w", err)
	}
	if err := stream.WaitStarted(ctx); err != nil {
		return fmt.Errorf("media stream did not start: %w", err)
	}

	session, err := agent.NewSession(v.assistant, v.options, v.logger)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	callSID := stream.GetCallSID()
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "session_id", Value: session.ID()},
		observability.Field{Key: "call_sid", Value: callSID},
	)

	var interrupts atomic.Int64
	session.OnInterrupt(func() {
		interrupts.Add(1)
		dropped := drain(audioOut)
		if err := stream.Clear(); err != nil {
			v.logger.Error(ctx, "Failed to clear caller playback", err)
		}
		v.logger.Metrics(ctx, observability.MetricField{Key: "interrupt_dropped_frames", Value: dropped})
	})

	started := time.Now()
	if err := session.Start(ctx, audioIn, audioOut); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	v.publish(ctx, kafka.NewEvent(kafka.EventCallStarted, session.ID(), callSID, map[string]any{
		"language": string(session.Language()),
	}))

	select {
	case <-stream.Done():
	case <-ctx.Done():
	}
	cancel()
	session.Wait()

	turns := len(session.History())
	duration := time.Since(started)
	v.logger.Info(ctx, fmt.Sprintf("Call finished after %d turns", turns))
	v.logger.Metrics(ctx,
		observability.MetricField{Key: "call_duration", Value: duration},
		observability.MetricField{Key: "call_turns", Value: turns},
	)
	v.publish(context.WithoutCancel(ctx), kafka.NewEvent(kafka.EventCallEnded, session.ID(), callSID, map[string]any{
		"language":    string(session.Language()),
		"turns":       turns,
		"interrupts":  interrupts.Load(),
		"duration_ms": duration.Milliseconds(),
	}))
	return nil
}

func (v *VoiceCallProcessor) publish(ctx context.Context, event kafka.EventMessage) {
	if v.events == nil {
		return
	}
	if err := v.events.PublishEvent(ctx, event); err != nil {
		v.logger.WarnWithError(ctx, fmt.Sprintf("Failed to publish %s", event.Type), err)
	}
}

// drain empties frames queued for the caller without blocking.
func drain(frames chan []byte) int {
	n := 0
	for {
		select {
		case <-frames:
			n++
		default:
			return n
		}
	}
}
