// Command hisab-export writes the ledger as CSV or mirrors it into a
// Google Sheet, optionally following change events.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"hisab/internal/backend"
	"hisab/internal/cli"
	"hisab/internal/core"
	"hisab/internal/export"
	applog "hisab/internal/log"
	"hisab/internal/services"
	gsheet "hisab/internal/sheets/google"
	"hisab/internal/worker"
)

func main() {
	out := flag.String("out", "", "write CSV to this file, \"-\" for stdout (default: hisab_export_<date>.csv)")
	toSheets := flag.Bool("sheets", false, "push the export to GOOGLE_SPREADSHEET_ID instead of writing CSV")
	watch := flag.Bool("watch", false, "with -sheets, keep the sheet in sync with change events")
	flag.Parse()

	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(cli.SetupLogger(os.Getenv("LOG_LEVEL")))
	logger := cli.SetupLogger(cfg.LogLevel).WithComponent(applog.ComponentExport)

	ctx, stop := cli.SignalContext(logger)
	defer stop()

	res := cli.InitBackend(ctx, logger, cfg)
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", "error", err)
		}
	}()

	var err error
	switch {
	case *watch && !*toSheets:
		err = errors.New("-watch requires -sheets")
	case *toSheets:
		if err = cfg.ValidateSheets(); err != nil {
			break
		}
		err = runSheets(ctx, logger, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, cfg.SyncInterval, res, *watch)
	default:
		err = writeCSV(ctx, logger, res, *out)
	}
	if err != nil {
		logger.Error("Export failed", "error", err)
		_ = res.Cleanup()
		os.Exit(1)
	}
}

// snapshot reloads the ledger from the store on every call so that each
// sync sees the latest committed state.
func snapshot(res *backend.BackendResult) worker.Snapshot {
	return func(ctx context.Context) ([]core.Transaction, []core.Category, error) {
		ledger := services.NewLedgerService(res.Store, nil)
		if err := ledger.Load(ctx); err != nil {
			return nil, nil, err
		}
		return ledger.Transactions(), ledger.Categories(), nil
	}
}

func writeCSV(ctx context.Context, logger *applog.Logger, res *backend.BackendResult, path string) error {
	txs, cats, err := snapshot(res)(ctx)
	if err != nil {
		return err
	}
	body := export.CSV(txs, cats)

	switch path {
	case "-":
		_, err = fmt.Fprintln(os.Stdout, body)
		return err
	case "":
		path = export.FileName(time.Now())
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.InfoContext(ctx, "CSV written", "path", path, "transactions", len(txs))
	return nil
}

func runSheets(ctx context.Context, logger *applog.Logger, spreadsheetID, sheetName string, interval time.Duration, res *backend.BackendResult, watch bool) error {
	client, err := gsheet.New(ctx, spreadsheetID, sheetName)
	if err != nil {
		return err
	}
	w := worker.NewSyncWorker(snapshot(res), client, interval)
	if err := w.Sync(ctx); err != nil {
		return err
	}
	if !watch {
		return nil
	}
	if res.Events == nil {
		return errors.New("-watch requires AMQP_URL")
	}

	logger.Info("Watching ledger changes", "interval", interval)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return res.Events.ConsumeChanges(gctx, w.HandleChange)
	})
	g.Go(func() error {
		return w.RunPeriodic(gctx)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
