package entity

import (
	"time"

	"github.com/google/uuid"
)

// Conversation types stored in the conversations table.
const (
	ConversationTypeChat     = "chat"
	ConversationTypeSupplier = "supplier"
)

// Conversation groups chat messages under a titled thread.
type Conversation struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Title        string    `json:"title"`
	Type         string    `json:"type"`
	LastMessage  string    `json:"last_message"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ChatMessage is one user/assistant exchange inside a conversation.
type ChatMessage struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	UserID         uuid.UUID `json:"user_id"`
	UserMessage    string    `json:"user_message"`
	AIResponse     string    `json:"ai_response"`
	CreatedAt      time.Time `json:"created_at"`
}
