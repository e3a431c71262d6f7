package ask

import "fmt"

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a chat prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (m Message) String() string {
	return fmt.Sprintf("{'role': '%s', 'content': '%s'}", m.Role, m.Content)
}

// MessageBuilder assembles a prompt whose first message is always the system
// message. Appended messages are inserted directly after it, so the last
// message appended ends up first.
type MessageBuilder struct {
	messages []Message
}

// NewMessageBuilder starts a prompt with the given system message.
func NewMessageBuilder(system string) *MessageBuilder {
	return &MessageBuilder{messages: []Message{{Role: RoleSystem, Content: system}}}
}

// Append inserts a message right after the system message.
func (b *MessageBuilder) Append(role, content string) {
	b.Insert(1, role, content)
}

// Insert places a message at index, clamped to the prompt bounds. Index 0 is
// reserved for the system message.
func (b *MessageBuilder) Insert(index int, role, content string) {
	if index < 1 {
		index = 1
	}
	if index > len(b.messages) {
		index = len(b.messages)
	}
	b.messages = append(b.messages, Message{})
	copy(b.messages[index+1:], b.messages[index:])
	b.messages[index] = Message{Role: role, Content: content}
}

// Messages returns a copy of the prompt in order.
func (b *MessageBuilder) Messages() []Message {
	out := make([]Message, len(b.messages))
	copy(out, b.messages)
	return out
}
