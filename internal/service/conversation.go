package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sourcinglabs/supplier-finder/api/internal/entity"
	"github.com/sourcinglabs/supplier-finder/api/internal/repository"
)

// ConversationService exposes the conversation threads and their chat
// log to the API surface.
type ConversationService struct {
	conversations repository.ConversationsRepository
}

// NewConversationService wires a conversation service.
func NewConversationService(conversations repository.ConversationsRepository) *ConversationService {
	return &ConversationService{conversations: conversations}
}

// List returns a user's conversations, optionally filtered by type.
func (s *ConversationService) List(ctx context.Context, userID uuid.UUID, conversationType string) ([]entity.Conversation, error) {
	return s.conversations.ListByUser(ctx, userID, strings.TrimSpace(conversationType))
}

// Get fetches one conversation with its messages, scoped to the owner.
func (s *ConversationService) Get(ctx context.Context, id, userID uuid.UUID) (*entity.Conversation, []entity.ChatMessage, error) {
	conversation, err := s.conversations.FindByID(ctx, id, userID)
	if err != nil {
		return nil, nil, err
	}
	messages, err := s.conversations.ListMessages(ctx, id, userID)
	if err != nil {
		return nil, nil, err
	}
	return conversation, messages, nil
}

// CreateEmpty starts a new titled thread.
func (s *ConversationService) CreateEmpty(ctx context.Context, userID uuid.UUID, title, conversationType string) (*entity.Conversation, error) {
	conversationType = strings.TrimSpace(conversationType)
	if conversationType == "" {
		conversationType = entity.ConversationTypeChat
	}
	title = strings.TrimSpace(title)
	if title == "" {
		if conversationType == entity.ConversationTypeSupplier {
			title = "New Supplier Search"
		} else {
			title = "New Chat"
		}
	}

	conversation := &entity.Conversation{
		UserID: userID,
		Title:  title,
		Type:   conversationType,
	}
	if err := s.conversations.Create(ctx, conversation); err != nil {
		return nil, err
	}
	return conversation, nil
}
