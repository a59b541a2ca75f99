package whatsapp

import (
	"sync"
	"time"
)

// Message is an inbound WhatsApp message flattened for the inbox view.
type Message struct {
	ID        string    `json:"id"`
	Chat      string    `json:"chat"`
	Sender    string    `json:"sender"`
	PushName  string    `json:"push_name"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageBuffer keeps the most recent inbound messages, newest first,
// deduplicated by message ID. Once full, the oldest entry is dropped.
type MessageBuffer struct {
	mu       sync.Mutex
	capacity int
	seen     map[string]struct{}
	messages []Message
}

// NewMessageBuffer creates a buffer holding at most capacity messages.
func NewMessageBuffer(capacity int) *MessageBuffer {
	return &MessageBuffer{
		capacity: capacity,
		seen:     make(map[string]struct{}, capacity),
	}
}

// Add inserts a message at the front of the buffer. A message whose ID was
// already seen is ignored; Add reports whether the message was kept.
func (b *MessageBuffer) Add(msg Message) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, dup := b.seen[msg.ID]; dup {
		return false
	}

	b.seen[msg.ID] = struct{}{}
	b.messages = append([]Message{msg}, b.messages...)

	if len(b.messages) > b.capacity {
		evicted := b.messages[len(b.messages)-1]
		delete(b.seen, evicted.ID)
		b.messages = b.messages[:b.capacity]
	}

	return true
}

// Messages returns a copy of the buffer contents, newest first.
func (b *MessageBuffer) Messages() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Message, len(b.messages))
	copy(out, b.messages)
	return out
}

// Len returns the number of buffered messages.
func (b *MessageBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.messages)
}

// Clear empties the buffer.
func (b *MessageBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seen = make(map[string]struct{}, b.capacity)
	b.messages = nil
}
