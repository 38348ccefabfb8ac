package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"hisab/internal/core"
	applog "hisab/internal/log"
	"hisab/internal/storage"
)

// TransactionInput carries the raw fields collected from the user.
// Empty Date means today, empty Type means EXPENSE and empty CategoryID
// means the first category.
type TransactionInput struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	CategoryID  string `json:"categoryId"`
	Type        string `json:"type"`
}

// build validates the input. The caller must hold s.mu.
func (s *LedgerService) build(in TransactionInput) (core.Transaction, error) {
	var tx core.Transaction

	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		return tx, err
	}
	tx.Amount = amount

	if strings.TrimSpace(in.Date) == "" {
		now := s.now()
		tx.Date = core.NewDate(now.Year(), int(now.Month()), now.Day())
	} else if tx.Date, err = core.ParseDate(in.Date); err != nil {
		return tx, err
	}

	tx.Type = core.Expense
	if strings.TrimSpace(in.Type) != "" {
		if tx.Type, err = core.ParseTransactionType(in.Type); err != nil {
			return tx, err
		}
	}

	tx.Description = strings.TrimSpace(in.Description)
	tx.CategoryID = in.CategoryID
	if tx.CategoryID == "" && len(s.categories) > 0 {
		tx.CategoryID = s.categories[0].ID
	}

	return tx, tx.Validate()
}

// registerTags appends tags for hashtags in description not yet known.
// The caller must hold s.mu.
func (s *LedgerService) registerTags(ctx context.Context, description string) ([]core.Tag, error) {
	names := core.ExtractNewTags(description, s.tags)
	if len(names) == 0 {
		return nil, nil
	}
	created := make([]core.Tag, 0, len(names))
	for _, name := range names {
		created = append(created, core.Tag{ID: s.newID("tag_"), Name: name})
	}
	next := append(append([]core.Tag{}, s.tags...), created...)
	if err := s.saveKey(ctx, storage.KeyTags, next); err != nil {
		return nil, err
	}
	s.tags = next
	for _, t := range created {
		slog.InfoContext(ctx, "Tag extracted from description", ledgerFields(applog.OpCreate).WithTag(t).ToSlice()...)
		s.notify(ctx, "tag", "create", t.ID)
	}
	return created, nil
}

// registerTagsBestEffort runs after the transaction is stored. A failed
// tag write is logged only; the hashtags are picked up again by the next
// save of a description containing them.
func (s *LedgerService) registerTagsBestEffort(ctx context.Context, tx core.Transaction) {
	if _, err := s.registerTags(ctx, tx.Description); err != nil {
		fields := ledgerFields(applog.OpCreate).WithTransaction(tx).WithError(err)
		slog.ErrorContext(ctx, "Failed to save tags for stored transaction", fields.ToSlice()...)
	}
}

// CreateTransaction validates the input, registers any new hashtags and
// stores the transaction at the front of the list.
func (s *LedgerService) CreateTransaction(ctx context.Context, in TransactionInput) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.build(in)
	if err != nil {
		return core.Transaction{}, err
	}
	tx.ID = s.newID("tx_")

	next := make([]core.Transaction, 0, len(s.transactions)+1)
	next = append(next, tx)
	next = append(next, s.transactions...)
	if err := s.saveKey(ctx, storage.KeyTransactions, next); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	s.transactions = next

	slog.InfoContext(ctx, "Transaction created", ledgerFields(applog.OpCreate).WithTransaction(tx).ToSlice()...)
	s.notify(ctx, "transaction", "create", tx.ID)

	s.registerTagsBestEffort(ctx, tx)
	return tx, nil
}

// UpdateTransaction replaces every field of the transaction except its id.
func (s *LedgerService) UpdateTransaction(ctx context.Context, id string, in TransactionInput) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfTransaction(id)
	if idx < 0 {
		return core.Transaction{}, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	tx, err := s.build(in)
	if err != nil {
		return core.Transaction{}, err
	}
	tx.ID = id

	next := append([]core.Transaction{}, s.transactions...)
	next[idx] = tx
	if err := s.saveKey(ctx, storage.KeyTransactions, next); err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	s.transactions = next

	slog.InfoContext(ctx, "Transaction updated", ledgerFields(applog.OpUpdate).WithTransaction(tx).ToSlice()...)
	s.notify(ctx, "transaction", "update", id)

	s.registerTagsBestEffort(ctx, tx)
	return tx, nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfTransaction(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	next := make([]core.Transaction, 0, len(s.transactions)-1)
	next = append(next, s.transactions[:idx]...)
	next = append(next, s.transactions[idx+1:]...)
	if err := s.saveKey(ctx, storage.KeyTransactions, next); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.transactions = next

	fields := ledgerFields(applog.OpDelete)
	fields[applog.FieldTransactionID] = id
	slog.InfoContext(ctx, "Transaction deleted", fields.ToSlice()...)
	s.notify(ctx, "transaction", "delete", id)
	return nil
}

func (s *LedgerService) Transaction(id string) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOfTransaction(id)
	if idx < 0 {
		return core.Transaction{}, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	return s.transactions[idx], nil
}

// ListTransactions returns the filtered transactions, newest date first.
func (s *LedgerService) ListTransactions(q core.ListQuery) []core.Transaction {
	return core.ListTransactions(s.Transactions(), q)
}

func (s *LedgerService) indexOfTransaction(id string) int {
	for i, tx := range s.transactions {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

func ledgerFields(op string) applog.LogFields {
	return applog.NewFields().WithComponent(applog.ComponentLedger).WithOperation(op)
}
