package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sourcinglabs/supplier-finder/api/internal/dto"
	"github.com/sourcinglabs/supplier-finder/api/internal/entity"
	"github.com/sourcinglabs/supplier-finder/api/internal/repository"
	"github.com/sourcinglabs/supplier-finder/api/internal/service"
)

// ConversationHandler exposes conversation endpoints.
type ConversationHandler struct {
	conversations *service.ConversationService
}

// NewConversationHandler constructs a ConversationHandler.
func NewConversationHandler(conversations *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversations: conversations}
}

// List handles GET /conversations requests. The optional ?type query
// narrows the listing to chat or supplier threads.
func (h *ConversationHandler) List(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "invalid token subject")
	}

	conversations, err := h.conversations.List(c.Request().Context(), userID, c.QueryParam("type"))
	if err != nil {
		log.Printf("list conversations user_id=%s error=%v", userID, err)
		return Error(c, http.StatusInternalServerError, "unable to load conversations")
	}
	if conversations == nil {
		conversations = []entity.Conversation{}
	}

	return Success(c, http.StatusOK, "conversations loaded", conversations)
}

// Get handles GET /conversations/:id requests.
func (h *ConversationHandler) Get(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "invalid token subject")
	}

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid conversation id")
	}

	conversation, messages, err := h.conversations.Get(c.Request().Context(), conversationID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrConversationNotFound) {
			return Error(c, http.StatusNotFound, "conversation not found")
		}
		log.Printf("get conversation id=%s user_id=%s error=%v", conversationID, userID, err)
		return Error(c, http.StatusInternalServerError, "unable to load conversation")
	}
	if messages == nil {
		messages = []entity.ChatMessage{}
	}

	return Success(c, http.StatusOK, "conversation loaded", map[string]any{
		"conversation": conversation,
		"chats":        messages,
	})
}

// Create handles POST /conversations requests.
func (h *ConversationHandler) Create(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return Error(c, http.StatusUnauthorized, "invalid token subject")
	}

	var req dto.CreateConversationRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	conversation, err := h.conversations.CreateEmpty(c.Request().Context(), userID, req.Title, req.Type)
	if err != nil {
		log.Printf("create conversation user_id=%s error=%v", userID, err)
		return Error(c, http.StatusInternalServerError, "unable to create conversation")
	}

	return Success(c, http.StatusCreated, "conversation created", conversation)
}
