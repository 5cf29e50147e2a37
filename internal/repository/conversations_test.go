package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sourcinglabs/supplier-finder/api/internal/entity"
)

func scanTestConversation(dest []any, title, conversationType string) error {
	now := time.Now()
	*dest[0].(*uuid.UUID) = uuid.MustParse("dddddddd-dddd-dddd-dddd-dddddddddddd")
	*dest[1].(*uuid.UUID) = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	*dest[2].(*string) = title
	*dest[3].(*string) = conversationType
	*dest[4].(*string) = "glass beakers"
	*dest[5].(*int) = 1
	*dest[6].(*time.Time) = now
	*dest[7].(*time.Time) = now
	return nil
}

func TestPGXConversationsRepository_Create(t *testing.T) {
	repo := &PGXConversationsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				*dest[0].(*uuid.UUID) = uuid.MustParse("dddddddd-dddd-dddd-dddd-dddddddddddd")
				*dest[1].(*time.Time) = time.Now()
				*dest[2].(*time.Time) = time.Now()
				return nil
			}}
		},
	}}

	conversation := &entity.Conversation{UserID: uuid.New(), Title: "Supplier: glass beakers"}
	if err := repo.Create(context.Background(), conversation); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conversation.ID == uuid.Nil {
		t.Fatalf("expected assigned id")
	}
	if conversation.Type != entity.ConversationTypeChat {
		t.Fatalf("expected chat default type, got %q", conversation.Type)
	}
}

func TestPGXConversationsRepository_FindByID(t *testing.T) {
	repo := &PGXConversationsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				return scanTestConversation(dest, "Supplier: glass beakers", entity.ConversationTypeSupplier)
			}}
		},
	}}

	conversation, err := repo.FindByID(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conversation.Title != "Supplier: glass beakers" {
		t.Fatalf("unexpected conversation: %+v", conversation)
	}

	repo.pool = &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				return pgx.ErrNoRows
			}}
		},
	}
	if _, err := repo.FindByID(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrConversationNotFound) {
		t.Fatalf("expected ErrConversationNotFound, got %v", err)
	}
}

func TestPGXConversationsRepository_ListByUserTypeFilter(t *testing.T) {
	var gotQuery string
	var gotArgs []any

	repo := &PGXConversationsRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			gotQuery = query
			gotArgs = args
			return &stubRows{
				scans: []func(dest ...any) error{
					func(dest ...any) error {
						return scanTestConversation(dest, "Supplier: glass beakers", entity.ConversationTypeSupplier)
					},
				},
			}, nil
		},
	}}

	conversations, err := repo.ListByUser(context.Background(), uuid.New(), entity.ConversationTypeSupplier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conversations) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(conversations))
	}
	if !strings.Contains(gotQuery, "AND type = $2") {
		t.Fatalf("expected type filter in query: %q", gotQuery)
	}
	if len(gotArgs) != 2 || gotArgs[1] != entity.ConversationTypeSupplier {
		t.Fatalf("unexpected args: %v", gotArgs)
	}

	if _, err := repo.ListByUser(context.Background(), uuid.New(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(gotQuery, "AND type") {
		t.Fatalf("expected no type filter without a type: %q", gotQuery)
	}
}

func TestPGXConversationsRepository_ListMessages(t *testing.T) {
	repo := &PGXConversationsRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			return &stubRows{
				scans: []func(dest ...any) error{
					func(dest ...any) error {
						*dest[0].(*uuid.UUID) = uuid.MustParse("eeeeeeee-eeee-eeee-eeee-eeeeeeeeeeee")
						*dest[1].(*uuid.UUID) = uuid.MustParse("dddddddd-dddd-dddd-dddd-dddddddddddd")
						*dest[2].(*uuid.UUID) = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
						*dest[3].(*string) = "glass beakers"
						*dest[4].(*string) = `{"type":"supplier_results"}`
						*dest[5].(*time.Time) = time.Now()
						return nil
					},
				},
			}, nil
		},
	}}

	messages, err := repo.ListMessages(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 1 || messages[0].UserMessage != "glass beakers" {
		t.Fatalf("unexpected messages: %+v", messages)
	}
}
