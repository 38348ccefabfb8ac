package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"hisab/internal/core"
	"hisab/internal/storage"
)

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	s, n := newTestService(t, store)

	tx, err := s.CreateTransaction(ctx, TransactionInput{
		Date:        "2024-03-10",
		Description: "Dinner #food with #Friends",
		Amount:      "42,50",
		CategoryID:  "cat_1",
		Type:        "EXPENSE",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if tx.ID != "tx_101" {
		t.Errorf("unexpected id %s", tx.ID)
	}
	if tx.Amount.String() != "42.5" {
		t.Errorf("unexpected amount %s", tx.Amount)
	}

	txs := s.Transactions()
	if len(txs) != 4 || txs[0].ID != tx.ID {
		t.Fatalf("new transaction should be first, got %+v", txs)
	}

	tags := s.Tags()
	if len(tags) != 2 || tags[0].Name != "#food" || tags[1].Name != "#Friends" {
		t.Fatalf("unexpected tags: %+v", tags)
	}

	raw, _, _ := store.Get(ctx, storage.KeyTransactions)
	var persisted []core.Transaction
	if err := json.Unmarshal(raw, &persisted); err != nil {
		t.Fatalf("decode persisted: %v", err)
	}
	if len(persisted) != 4 || persisted[0].ID != tx.ID {
		t.Fatalf("persisted transactions out of sync: %+v", persisted)
	}
	raw, _, _ = store.Get(ctx, storage.KeyTags)
	var persistedTags []core.Tag
	if err := json.Unmarshal(raw, &persistedTags); err != nil || len(persistedTags) != 2 {
		t.Fatalf("persisted tags out of sync: %s (%v)", raw, err)
	}

	want := []string{"transaction.create", "tag.create", "tag.create"}
	if len(n.events) != len(want) {
		t.Fatalf("expected events %v, got %v", want, n.events)
	}
	for i := range want {
		if n.events[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, n.events[i], want[i])
		}
	}
}

func TestCreateTransaction_Defaults(t *testing.T) {
	s, _ := newTestService(t, storage.NewMemoryStore())

	tx, err := s.CreateTransaction(context.Background(), TransactionInput{Description: "Bus", Amount: "3"})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if tx.Date.String() != "2024-03-15" {
		t.Errorf("expected today's date, got %s", tx.Date)
	}
	if tx.Type != core.Expense {
		t.Errorf("expected EXPENSE, got %s", tx.Type)
	}
	if tx.CategoryID != "cat_1" {
		t.Errorf("expected first category, got %s", tx.CategoryID)
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   TransactionInput
		want error
	}{
		{"empty amount", TransactionInput{Description: "x", Amount: ""}, core.ErrEmptyAmount},
		{"negative amount", TransactionInput{Description: "x", Amount: "-5"}, core.ErrInvalidAmount},
		{"garbage amount", TransactionInput{Description: "x", Amount: "abc"}, core.ErrInvalidAmount},
		{"empty description", TransactionInput{Description: "  ", Amount: "5"}, core.ErrEmptyDescription},
		{"bad date", TransactionInput{Description: "x", Amount: "5", Date: "2024-13-01"}, core.ErrInvalidDate},
		{"bad type", TransactionInput{Description: "x", Amount: "5", Type: "TRANSFER"}, core.ErrInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestService(t, storage.NewMemoryStore())
			_, err := s.CreateTransaction(context.Background(), tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !core.IsValidationError(err) {
				t.Fatalf("expected a validation error, got %v", err)
			}
			if len(s.Transactions()) != 3 {
				t.Fatal("rejected input must not be stored")
			}
		})
	}
}

func TestCreateTransaction_ZeroAmountAllowed(t *testing.T) {
	s, _ := newTestService(t, storage.NewMemoryStore())
	if _, err := s.CreateTransaction(context.Background(), TransactionInput{Description: "Free sample", Amount: "0"}); err != nil {
		t.Fatalf("zero amount should be accepted: %v", err)
	}
}

func TestCreateTransaction_DanglingCategoryAccepted(t *testing.T) {
	s, _ := newTestService(t, storage.NewMemoryStore())
	tx, err := s.CreateTransaction(context.Background(), TransactionInput{Description: "x", Amount: "1", CategoryID: "gone"})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if tx.CategoryID != "gone" {
		t.Fatalf("category reference should be kept as given, got %s", tx.CategoryID)
	}
}

func TestCreateTransaction_KnownTagsNotDuplicated(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, storage.NewMemoryStore())

	if _, err := s.CreateTag(ctx, "#Food"); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if _, err := s.CreateTransaction(ctx, TransactionInput{Description: "#food #food #new", Amount: "1"}); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	tags := s.Tags()
	if len(tags) != 2 || tags[0].Name != "#Food" || tags[1].Name != "#new" {
		t.Fatalf("unexpected tags: %+v", tags)
	}
}

func TestCreateTransaction_StorageFailure(t *testing.T) {
	ctx := context.Background()
	inner := storage.NewMemoryStore()
	s, _ := newTestService(t, inner)
	s.store = &failingStore{Store: inner, failKey: storage.KeyTransactions}

	if _, err := s.CreateTransaction(ctx, TransactionInput{Description: "x", Amount: "1"}); err == nil {
		t.Fatal("expected storage error")
	}
	if len(s.Transactions()) != 3 {
		t.Fatal("in-memory state must not change when the write fails")
	}
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()
	s, n := newTestService(t, storage.NewMemoryStore())

	got, err := s.UpdateTransaction(ctx, "tx_2", TransactionInput{
		Date:        "2023-10-28",
		Description: "Taxi #late",
		Amount:      "31.20",
		CategoryID:  "cat_2",
		Type:        "EXPENSE",
	})
	if err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	if got.ID != "tx_2" {
		t.Fatalf("id must be preserved, got %s", got.ID)
	}

	stored, err := s.Transaction("tx_2")
	if err != nil {
		t.Fatalf("Transaction: %v", err)
	}
	if stored.Description != "Taxi #late" || stored.Date.String() != "2023-10-28" || core.FormatAmount(stored.Amount) != "31.20" {
		t.Fatalf("unexpected stored transaction: %+v", stored)
	}
	if txs := s.Transactions(); txs[1].ID != "tx_2" {
		t.Fatal("update must keep the position in the list")
	}
	if !core.TagExists(s.Tags(), "#late") {
		t.Fatal("expected tag extracted on update")
	}
	if n.events[0] != "transaction.update" {
		t.Fatalf("unexpected events: %v", n.events)
	}

	if _, err := s.UpdateTransaction(ctx, "missing", TransactionInput{Description: "x", Amount: "1"}); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, storage.NewMemoryStore())

	if err := s.DeleteTransaction(ctx, "tx_1"); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	if _, err := s.Transaction("tx_1"); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected transaction gone, got %v", err)
	}
	if len(s.Transactions()) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(s.Transactions()))
	}
	if err := s.DeleteTransaction(ctx, "tx_1"); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestListTransactions(t *testing.T) {
	s, _ := newTestService(t, storage.NewMemoryStore())

	all := s.ListTransactions(core.ListQuery{Type: core.FilterAll})
	if len(all) != 3 || all[0].ID != "tx_3" || all[2].ID != "tx_1" {
		t.Fatalf("expected newest first, got %+v", all)
	}
	income := s.ListTransactions(core.ListQuery{Type: core.FilterIncome})
	if len(income) != 1 || income[0].ID != "tx_3" {
		t.Fatalf("unexpected income listing: %+v", income)
	}
}

func TestCreateTransaction_TagWriteFailureKeepsTransaction(t *testing.T) {
	ctx := context.Background()
	inner := storage.NewMemoryStore()
	s, _ := newTestService(t, inner)
	s.store = &failingStore{Store: inner, failKey: storage.KeyTags}

	tx, err := s.CreateTransaction(ctx, TransactionInput{Description: "Dinner #friends", Amount: "40"})
	if err != nil {
		t.Fatalf("stored transaction must be reported as created, got %v", err)
	}
	if tx.ID == "" || len(s.Transactions()) != 4 {
		t.Fatalf("transaction not stored: %+v", tx)
	}
	if len(s.Tags()) != 0 {
		t.Fatalf("tag must not be committed in memory, got %+v", s.Tags())
	}

	// Once the store recovers, the next save with the hashtag registers it.
	s.store = inner
	if _, err := s.UpdateTransaction(ctx, tx.ID, TransactionInput{Description: "Dinner #friends", Amount: "40"}); err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	if tags := s.Tags(); len(tags) != 1 || tags[0].Name != "#friends" {
		t.Fatalf("expected #friends after retry, got %+v", tags)
	}
}
