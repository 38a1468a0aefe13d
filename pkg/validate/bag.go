package validate

import (
	"encoding/json"
	"sort"
)

// MessageBag accumulates validation failures keyed by field. It serializes
// to the flat {"field": ["message", ...]} structure.
type MessageBag struct {
	messages map[string][]string
}

// NewMessageBag creates an empty bag.
func NewMessageBag() *MessageBag {
	return &MessageBag{messages: make(map[string][]string)}
}

// Add appends a message for field. Empty messages are dropped.
func (b *MessageBag) Add(field, message string) {
	if b == nil || field == "" || message == "" {
		return
	}
	if b.messages == nil {
		b.messages = make(map[string][]string)
	}
	b.messages[field] = append(b.messages[field], message)
}

// Has reports whether field collected any messages.
func (b *MessageBag) Has(field string) bool {
	if b == nil {
		return false
	}
	return len(b.messages[field]) > 0
}

// First returns the first message recorded for field, or "".
func (b *MessageBag) First(field string) string {
	if b == nil || len(b.messages[field]) == 0 {
		return ""
	}
	return b.messages[field][0]
}

// Messages returns a copy of the field -> messages map.
func (b *MessageBag) Messages() map[string][]string {
	out := make(map[string][]string)
	if b == nil {
		return out
	}
	for field, msgs := range b.messages {
		out[field] = append([]string(nil), msgs...)
	}
	return out
}

// All returns every message, ordered by field name then insertion order.
func (b *MessageBag) All() []string {
	if b == nil {
		return nil
	}
	fields := make([]string, 0, len(b.messages))
	for field := range b.messages {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var out []string
	for _, field := range fields {
		out = append(out, b.messages[field]...)
	}
	return out
}

// Count returns the total number of messages.
func (b *MessageBag) Count() int {
	if b == nil {
		return 0
	}
	total := 0
	for _, msgs := range b.messages {
		total += len(msgs)
	}
	return total
}

// IsEmpty reports whether the bag holds no messages.
func (b *MessageBag) IsEmpty() bool {
	return b.Count() == 0
}

// MarshalJSON encodes the bag as its messages map.
func (b *MessageBag) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Messages())
}
