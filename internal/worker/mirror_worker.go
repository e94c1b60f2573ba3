package worker

import (
	"context"
	"fmt"

	"neotrack/internal/amqp"
	"neotrack/internal/core"
	applog "neotrack/internal/log"
	"neotrack/internal/sheets"
)

// MirrorWorker keeps a spreadsheet in step with the ledger by applying
// ledger events to it.
type MirrorWorker struct {
	mirror sheets.Mirror
	logger *applog.Logger
}

func NewMirrorWorker(mirror sheets.Mirror, logger *applog.Logger) *MirrorWorker {
	if logger == nil {
		logger = applog.FromContext(context.Background())
	}
	return &MirrorWorker{
		mirror: mirror,
		logger: logger.WithComponent(applog.ComponentWorker),
	}
}

// HandleLedgerEvent applies one event. Returning an error asks for redelivery.
func (w *MirrorWorker) HandleLedgerEvent(ctx context.Context, ev *amqp.LedgerEvent) error {
	switch ev.Kind {
	case amqp.EventCreated:
		ref, err := w.mirror.AppendTransaction(ctx, *ev.Transaction)
		if err != nil {
			return fmt.Errorf("append transaction %d: %w", ev.ID, err)
		}
		w.logger.InfoContext(ctx, "Mirrored transaction",
			applog.FieldOperation, applog.OpMirror,
			applog.FieldTransactionID, ev.ID,
			"sheets_ref", ref)
	case amqp.EventDeleted:
		found, err := w.mirror.DeleteTransaction(ctx, ev.ID)
		if err != nil {
			return fmt.Errorf("delete transaction %d: %w", ev.ID, err)
		}
		if !found {
			w.logger.WarnContext(ctx, "Deleted transaction was not mirrored", applog.FieldTransactionID, ev.ID)
			return nil
		}
		w.logger.InfoContext(ctx, "Removed mirrored transaction", applog.FieldTransactionID, ev.ID)
	default:
		return fmt.Errorf("unknown event kind %q", ev.Kind)
	}
	return nil
}

// StartupSyncCheck appends every ledger entry missing from the mirror, for
// events lost while the worker was down. Entries are appended oldest first.
func (w *MirrorWorker) StartupSyncCheck(ctx context.Context, l core.Ledger) error {
	have, err := w.mirror.ListIDs(ctx)
	if err != nil {
		return fmt.Errorf("list mirrored ids: %w", err)
	}

	synced, failed := 0, 0
	for i := len(l) - 1; i >= 0; i-- {
		t := l[i]
		if _, ok := have[t.ID]; ok {
			continue
		}
		if _, err := w.mirror.AppendTransaction(ctx, t); err != nil {
			w.logger.ErrorContext(ctx, "Failed to mirror transaction during startup",
				applog.FieldTransactionID, t.ID, applog.FieldError, err)
			failed++
			continue
		}
		synced++
	}

	w.logger.InfoContext(ctx, "Startup sync completed",
		applog.FieldLedgerSize, len(l),
		"already_mirrored", len(have),
		"synced", synced,
		"errors", failed)
	return nil
}
