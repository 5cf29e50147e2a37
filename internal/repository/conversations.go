package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sourcinglabs/supplier-finder/api/internal/entity"
)

// ErrConversationNotFound indicates no conversation matched the lookup.
var ErrConversationNotFound = errors.New("conversation not found")

// lastMessagePreviewLen caps the preview stored on the conversation row.
const lastMessagePreviewLen = 100

// ConversationsRepository persists conversations and their chat log.
type ConversationsRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Conversation, error)
	FindSupplierByPrompt(ctx context.Context, userID uuid.UUID, prompt string) (*entity.Conversation, error)
	ListByUser(ctx context.Context, userID uuid.UUID, conversationType string) ([]entity.Conversation, error)
	ListMessages(ctx context.Context, conversationID, userID uuid.UUID) ([]entity.ChatMessage, error)
	AppendMessage(ctx context.Context, message *entity.ChatMessage) error
}

// PGXConversationsRepository implements ConversationsRepository with pgx.
type PGXConversationsRepository struct {
	pool pgxPool
}

// NewPGXConversationsRepository wires a pgx backed repository.
func NewPGXConversationsRepository(pool *pgxpool.Pool) *PGXConversationsRepository {
	return &PGXConversationsRepository{pool: pool}
}

const conversationColumns = `id, user_id, title, type, last_message, message_count, created_at, updated_at`

// Create inserts a conversation row.
func (r *PGXConversationsRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	if conversation == nil {
		return fmt.Errorf("conversation payload is nil")
	}
	if conversation.Type == "" {
		conversation.Type = entity.ConversationTypeChat
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO conversations (user_id, title, type, last_message, message_count)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at
    `, conversation.UserID, conversation.Title, conversation.Type, conversation.LastMessage, conversation.MessageCount)

	if err := row.Scan(&conversation.ID, &conversation.CreatedAt, &conversation.UpdatedAt); err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}
	return nil
}

// FindByID fetches a conversation owned by the given user.
func (r *PGXConversationsRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Conversation, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT `+conversationColumns+`
        FROM conversations
        WHERE id = $1 AND user_id = $2
    `, id, userID)

	conversation, err := scanConversation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("query conversation: %w", err)
	}
	return conversation, nil
}

// FindSupplierByPrompt locates the supplier conversation whose latest
// message is exactly the given prompt.
func (r *PGXConversationsRepository) FindSupplierByPrompt(ctx context.Context, userID uuid.UUID, prompt string) (*entity.Conversation, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT `+conversationColumns+`
        FROM conversations
        WHERE user_id = $1 AND type = $2 AND last_message = $3
        ORDER BY updated_at DESC
        LIMIT 1
    `, userID, entity.ConversationTypeSupplier, prompt)

	conversation, err := scanConversation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("query supplier conversation: %w", err)
	}
	return conversation, nil
}

// ListByUser returns a user's conversations, optionally filtered by type,
// most recently updated first.
func (r *PGXConversationsRepository) ListByUser(ctx context.Context, userID uuid.UUID, conversationType string) ([]entity.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE user_id = $1`
	args := []any{userID}
	if conversationType != "" {
		query += ` AND type = $2`
		args = append(args, conversationType)
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []entity.Conversation
	for rows.Next() {
		conversation, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conversation row: %w", err)
		}
		conversations = append(conversations, *conversation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversations: %w", err)
	}
	return conversations, nil
}

// ListMessages returns the chat log of a conversation in chronological
// order, scoped to its owner.
func (r *PGXConversationsRepository) ListMessages(ctx context.Context, conversationID, userID uuid.UUID) ([]entity.ChatMessage, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, conversation_id, user_id, user_message, ai_response, created_at
        FROM chat_messages
        WHERE conversation_id = $1 AND user_id = $2
        ORDER BY created_at ASC
    `, conversationID, userID)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	var messages []entity.ChatMessage
	for rows.Next() {
		var message entity.ChatMessage
		err := rows.Scan(
			&message.ID,
			&message.ConversationID,
			&message.UserID,
			&message.UserMessage,
			&message.AIResponse,
			&message.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan chat message row: %w", err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat messages: %w", err)
	}
	return messages, nil
}

// AppendMessage inserts a chat message and bumps the owning conversation's
// counters in one transaction.
func (r *PGXConversationsRepository) AppendMessage(ctx context.Context, message *entity.ChatMessage) error {
	if message == nil {
		return fmt.Errorf("chat message payload is nil")
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("start append message tx: %w", err)
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
        INSERT INTO chat_messages (conversation_id, user_id, user_message, ai_response)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `, message.ConversationID, message.UserID, message.UserMessage, message.AIResponse)
	if err := row.Scan(&message.ID, &message.CreatedAt); err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}

	preview := message.UserMessage
	if len([]rune(preview)) > lastMessagePreviewLen {
		preview = string([]rune(preview)[:lastMessagePreviewLen])
	}

	_, err = tx.Exec(ctx, `
        UPDATE conversations
        SET message_count = message_count + 1, last_message = $1, updated_at = NOW()
        WHERE id = $2
    `, preview, message.ConversationID)
	if err != nil {
		return fmt.Errorf("update conversation counters: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit append message tx: %w", err)
	}
	return nil
}

func scanConversation(row pgx.Row) (*entity.Conversation, error) {
	var conversation entity.Conversation
	err := row.Scan(
		&conversation.ID,
		&conversation.UserID,
		&conversation.Title,
		&conversation.Type,
		&conversation.LastMessage,
		&conversation.MessageCount,
		&conversation.CreatedAt,
		&conversation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}
