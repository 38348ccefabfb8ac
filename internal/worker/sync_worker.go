package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"hisab/internal/amqp"
	"hisab/internal/core"
	"hisab/internal/export"
	"hisab/internal/sheets"
)

// Snapshot returns the current transactions and categories.
type Snapshot func(ctx context.Context) ([]core.Transaction, []core.Category, error)

// SyncWorker mirrors the ledger export into a spreadsheet. Any change event
// triggers a full re-export; a periodic pass covers lost messages.
type SyncWorker struct {
	snapshot Snapshot
	sheets   sheets.RowExporter
	interval time.Duration

	// syncMu spans snapshot and export so a later snapshot is never
	// overwritten by an earlier one.
	syncMu sync.Mutex
}

func NewSyncWorker(snapshot Snapshot, exporter sheets.RowExporter, interval time.Duration) *SyncWorker {
	return &SyncWorker{
		snapshot: snapshot,
		sheets:   exporter,
		interval: interval,
	}
}

// HandleChange processes a single change event from AMQP.
func (w *SyncWorker) HandleChange(ctx context.Context, msg *amqp.ChangeEvent) error {
	slog.InfoContext(ctx, "Processing change event",
		"entity", msg.Entity,
		"action", msg.Action,
		"id", msg.ID,
		"timestamp", msg.Timestamp)

	if msg.Entity == "settings" {
		// Currency does not appear in the export.
		return nil
	}
	return w.Sync(ctx)
}

// Sync pushes the full export to the sheet. Concurrent calls run one at a
// time.
func (w *SyncWorker) Sync(ctx context.Context) error {
	w.syncMu.Lock()
	defer w.syncMu.Unlock()

	txs, cats, err := w.snapshot(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	n, err := w.sheets.ExportRows(ctx, export.Rows(txs, cats))
	if err != nil {
		return fmt.Errorf("export rows: %w", err)
	}
	slog.InfoContext(ctx, "Sheet synced", "rows", n)
	return nil
}

// RunPeriodic calls Sync every interval until ctx is done. Failures are
// logged and retried on the next tick.
func (w *SyncWorker) RunPeriodic(ctx context.Context) error {
	if w.interval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := w.Sync(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic sync failed", "error", err)
			}
		}
	}
}
