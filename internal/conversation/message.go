package conversation

// Role tags who produced a message and how the UI should treat it.
type Role string

const (
	RoleUser      = Role("user")
	RoleAssistant = Role("assistant")
	RoleSystem    = Role("system")
)

// Message is one entry of the ordered conversation log. Messages are
// appended, never mutated in place and never removed individually.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
