package entity

type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one entry in the transcript exchanged with the model.
// Tool observations travel as user messages, so there is no tool role.
type Message struct {
	Role    MessageRole
	Content string
}
