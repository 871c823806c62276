package models

type Role int

const (
	User Role = iota
	Agent
	Program
)

// ChatMessage is one entry in the session transcript. Messages are
// append-only and never mutated after creation.
type ChatMessage struct {
	Role Role
	Text string
}

type SessionStatus int

const (
	StatusIdle SessionStatus = iota
	StatusThinking
	StatusError
)

func (s SessionStatus) String() string {
	switch s {
	case StatusThinking:
		return "thinking"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}
