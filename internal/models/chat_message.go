package models

import "time"

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	ID          string
	Role        ChatRole
	Content     string
	Timestamp   time.Time
	Suggestions []string
}
