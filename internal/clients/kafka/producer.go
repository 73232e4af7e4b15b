package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"voice-assistant/internal/observability"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	EventCallStarted = "call.started"
	EventCallEnded   = "call.ended"
)

// Producer publishes call lifecycle events to Kafka
type Producer struct {
	writer *kafka.Writer
	logger *observability.Logger
}

// ProducerConfig contains configuration for Kafka producer
type ProducerConfig struct {
	Brokers []string
	Topic   string
}

// NewProducer creates a producer. Writes are asynchronous so a slow broker
// never holds up a call; delivery failures are logged.
func NewProducer(config ProducerConfig, logger *observability.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        config.Topic,
		Balancer:     &kafka.Hash{},
		Async:        true,
		Compression:  kafka.Snappy,
		BatchSize:    100,
		BatchTimeout: 100 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error(context.Background(), fmt.Sprintf("failed to deliver %d call events", len(messages)), err)
			}
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
	}
}

// EventMessage is one call lifecycle event
type EventMessage struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	SessionID string         `json:"session_id"`
	CallSID   string         `json:"call_sid,omitempty"`
	Data      map[string]any `json:"data"`
	Timestamp string         `json:"timestamp"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType, sessionID, callSID string, data map[string]any) EventMessage {
	return EventMessage{
		ID:        uuid.New().String(),
		Type:      eventType,
		SessionID: sessionID,
		CallSID:   callSID,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
}

// newMessage keys by session so events of one call stay ordered.
func newMessage(event EventMessage) (kafka.Message, error) {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(event.SessionID),
		Value: eventBytes,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "session_id", Value: []byte(event.SessionID)},
		},
	}, nil
}

// PublishEvent queues an event for delivery
func (p *Producer) PublishEvent(ctx context.Context, event EventMessage) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "event_type", Value: event.Type},
		observability.Field{Key: "event_id", Value: event.ID},
	)

	msg, err := newMessage(event)
	if err != nil {
		p.logger.Error(ctx, "failed to build kafka message", err)
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(ctx, "failed to write message to kafka", err)
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	p.logger.Debug(ctx, fmt.Sprintf("queued event %s", event.Type))
	return nil
}

// Close flushes pending events and closes the producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
