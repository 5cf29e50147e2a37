package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sourcinglabs/supplier-finder/api/internal/entity"
)

func TestPGXSupplierResultsRepository_Create(t *testing.T) {
	var gotArgs []any
	repo := &PGXSupplierResultsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			gotArgs = args
			return &stubRow{scan: func(dest ...any) error {
				*dest[0].(*uuid.UUID) = uuid.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc")
				*dest[1].(*time.Time) = time.Now()
				return nil
			}}
		},
	}}

	set := &entity.SupplierResultSet{
		UserID:     uuid.New(),
		Prompt:     "glass beakers",
		Suppliers:  []entity.Supplier{{SellerName: "Acme", Rating: 3.2}},
		TotalFound: 1,
		SearchDate: time.Now(),
	}
	if err := repo.Create(context.Background(), set); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.ID == uuid.Nil {
		t.Fatalf("expected assigned id")
	}

	var stored []entity.Supplier
	if err := json.Unmarshal([]byte(gotArgs[2].(string)), &stored); err != nil {
		t.Fatalf("suppliers argument is not JSON: %v", err)
	}
	if len(stored) != 1 || stored[0].SellerName != "Acme" {
		t.Fatalf("unexpected stored suppliers: %+v", stored)
	}
}

func TestPGXSupplierResultsRepository_FindByUserAndPrompt(t *testing.T) {
	suppliersJSON, _ := json.Marshal([]entity.Supplier{{SellerName: "Acme", Rating: 4.1}})

	repo := &PGXSupplierResultsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				*dest[0].(*uuid.UUID) = uuid.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc")
				*dest[1].(*uuid.UUID) = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
				*dest[2].(*string) = "glass beakers"
				*dest[3].(*[]byte) = suppliersJSON
				*dest[4].(*int) = 1
				*dest[5].(*time.Time) = time.Now()
				*dest[6].(*time.Time) = time.Now()
				return nil
			}}
		},
	}}

	set, err := repo.FindByUserAndPrompt(context.Background(), uuid.New(), "glass beakers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Prompt != "glass beakers" || len(set.Suppliers) != 1 {
		t.Fatalf("unexpected result set: %+v", set)
	}
	if set.Suppliers[0].SellerName != "Acme" {
		t.Fatalf("unexpected supplier: %+v", set.Suppliers[0])
	}
}

func TestPGXSupplierResultsRepository_FindByUserAndPromptMiss(t *testing.T) {
	repo := &PGXSupplierResultsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				return pgx.ErrNoRows
			}}
		},
	}}

	if _, err := repo.FindByUserAndPrompt(context.Background(), uuid.New(), "nothing"); !errors.Is(err, ErrResultSetNotFound) {
		t.Fatalf("expected ErrResultSetNotFound, got %v", err)
	}
}

func TestPGXSupplierResultsRepository_ListByUser(t *testing.T) {
	suppliersJSON, _ := json.Marshal([]entity.Supplier{{SellerName: "Acme"}})

	repo := &PGXSupplierResultsRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			return &stubRows{
				scans: []func(dest ...any) error{
					func(dest ...any) error {
						*dest[0].(*uuid.UUID) = uuid.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc")
						*dest[1].(*uuid.UUID) = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
						*dest[2].(*string) = "glass beakers"
						*dest[3].(*[]byte) = suppliersJSON
						*dest[4].(*int) = 1
						*dest[5].(*time.Time) = time.Now()
						*dest[6].(*time.Time) = time.Now()
						return nil
					},
				},
			}, nil
		},
	}}

	sets, err := repo.ListByUser(context.Background(), uuid.New(), 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sets) != 1 || sets[0].Prompt != "glass beakers" {
		t.Fatalf("unexpected sets: %+v", sets)
	}
}
