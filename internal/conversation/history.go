// Package conversation keeps the turns exchanged during a voice session.
package conversation

import "sync"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// DefaultMaxMessages bounds how many turns are replayed to the model.
const DefaultMaxMessages = 40

// History is a bounded, concurrency-safe list of messages. When full, the
// oldest messages are dropped.
type History struct {
	mu       sync.RWMutex
	messages []Message
	max      int
}

func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultMaxMessages
	}
	return &History{max: max}
}

func (h *History) Append(role Role, content string) {
	if content == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, Message{Role: role, Content: content})
	if over := len(h.messages) - h.max; over > 0 {
		h.messages = append([]Message(nil), h.messages[over:]...)
	}
}

// Messages returns a copy of the stored messages, oldest first.
func (h *History) Messages() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.messages)
}
