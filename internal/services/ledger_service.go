package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"hisab/internal/core"
	applog "hisab/internal/log"
	"hisab/internal/storage"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTagNotFound         = errors.New("tag not found")
	ErrTagExists           = errors.New("tag already exists")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

// ChangeNotifier receives a notice after every persisted mutation.
type ChangeNotifier interface {
	PublishChange(ctx context.Context, entity, action, id string) error
}

// LedgerService owns the in-memory collections and writes every mutation
// back to the store.
type LedgerService struct {
	store    storage.Store
	notifier ChangeNotifier
	newID    func(prefix string) string
	now      func() time.Time

	mu           sync.Mutex
	transactions []core.Transaction
	categories   []core.Category
	tags         []core.Tag
	settings     core.Settings
}

func NewLedgerService(store storage.Store, notifier ChangeNotifier) *LedgerService {
	return &LedgerService{
		store:        store,
		notifier:     notifier,
		newID:        func(prefix string) string { return prefix + uuid.NewString() },
		now:          time.Now,
		transactions: []core.Transaction{},
		categories:   core.DefaultCategories(),
		tags:         []core.Tag{},
		settings:     core.Settings{Currency: core.DefaultCurrency},
	}
}

// Load reads the four collections, falling back to defaults for absent or
// unreadable values, and seeds sample transactions on the very first run.
func (s *LedgerService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var txs []core.Transaction
	if _, err := s.loadKey(ctx, storage.KeyTransactions, &txs); err != nil {
		return err
	}
	var cats []core.Category
	found, err := s.loadKey(ctx, storage.KeyCategories, &cats)
	if err != nil {
		return err
	}
	if !found {
		cats = core.DefaultCategories()
	}
	var tags []core.Tag
	if _, err := s.loadKey(ctx, storage.KeyTags, &tags); err != nil {
		return err
	}
	var settings core.Settings
	if _, err := s.loadKey(ctx, storage.KeySettings, &settings); err != nil {
		return err
	}
	if settings.Currency == "" {
		settings.Currency = core.DefaultCurrency
	}

	_, initialized, err := s.store.Get(ctx, storage.KeyInitialized)
	if err != nil {
		return fmt.Errorf("read %s: %w", storage.KeyInitialized, err)
	}
	if len(txs) == 0 && !initialized {
		txs = core.SampleTransactions()
		if err := s.saveKey(ctx, storage.KeyTransactions, txs); err != nil {
			return err
		}
		if err := s.store.Set(ctx, storage.KeyInitialized, []byte("true")); err != nil {
			return fmt.Errorf("write %s: %w", storage.KeyInitialized, err)
		}
		slog.InfoContext(ctx, "Seeded sample transactions on first run", "count", len(txs))
	}

	s.transactions = nonNil(txs)
	s.categories = nonNil(cats)
	s.tags = nonNil(tags)
	s.settings = settings

	slog.InfoContext(ctx, "Ledger loaded",
		"transactions", len(s.transactions),
		"categories", len(s.categories),
		"tags", len(s.tags),
		"currency", s.settings.Currency)
	return nil
}

// loadKey decodes the stored value into dst. Absent and malformed values
// both report found=false; only store failures are returned as errors.
func (s *LedgerService) loadKey(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		slog.WarnContext(ctx, "Stored value unreadable, using default", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (s *LedgerService) saveKey(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, b); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *LedgerService) notify(ctx context.Context, entity, action, id string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishChange(ctx, entity, action, id); err != nil {
		// Don't fail the request - the change is already stored
		slog.ErrorContext(ctx, "Failed to publish change",
			"entity", entity, "action", action, "id", id, "error", err)
	}
}

// Transactions returns a copy in stored order, newest additions first.
func (s *LedgerService) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction{}, s.transactions...)
}

func (s *LedgerService) Categories() []core.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category{}, s.categories...)
}

func (s *LedgerService) Tags() []core.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Tag{}, s.tags...)
}

func (s *LedgerService) Settings() core.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// SetCurrency accepts only codes from the currency catalog.
func (s *LedgerService) SetCurrency(ctx context.Context, code string) (core.Settings, error) {
	if _, ok := core.LookupCurrency(code); !ok {
		return core.Settings{}, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, code)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.settings
	next.Currency = code
	if err := s.saveKey(ctx, storage.KeySettings, next); err != nil {
		return core.Settings{}, err
	}
	s.settings = next

	slog.InfoContext(ctx, "Currency changed", "currency", code)
	s.notify(ctx, "settings", "update", code)
	return next, nil
}

// ClearAll removes transactions, categories and tags from the store and
// resets the in-memory state. Settings and the first-run marker are kept,
// so the sample data is not seeded again.
func (s *LedgerService) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{storage.KeyTransactions, storage.KeyCategories, storage.KeyTags} {
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	s.transactions = []core.Transaction{}
	s.categories = core.DefaultCategories()
	s.tags = []core.Tag{}

	slog.InfoContext(ctx, "Ledger cleared", ledgerFields(applog.OpReset).ToSlice()...)
	s.notify(ctx, "ledger", "clear", "")
	return nil
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
