// Package reconcile projects remote settlement state into the local ledger.
// Every append goes through the ledger's idempotent primitive, so a
// reconciliation pass can run on every lookup without ever duplicating a
// record. Failures here are logged and swallowed: reconciliation is a
// best-effort side effect and must never fail the lookup that triggered it.
package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/rmarin/voltcli/internal/ledger"
	"github.com/rmarin/voltcli/pkg/logger"
)

// Reconciler writes settlement projections into a ledger store.
type Reconciler struct {
	store ledger.Store
	logg  *logger.Logger
}

// New wires a reconciler over the given store.
func New(store ledger.Store, logg *logger.Logger) (*Reconciler, error) {
	if store == nil {
		return nil, fmt.Errorf("reconciler store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("reconciler logger required")
	}
	return &Reconciler{store: store, logg: logg}, nil
}

// RecordSettlement appends the record unless its id is already present and
// reports whether it inserted. Storage errors are logged, never returned:
// the caller treats this as a side effect with no retry guarantee.
func (r *Reconciler) RecordSettlement(ctx context.Context, record ledger.Record) bool {
	inserted, err := r.store.AppendIfAbsent(ctx, record)
	if err != nil {
		r.logg.Warn(ctx, fmt.Sprintf("settlement record %s not written: %v", record.ID, err))
		return false
	}
	if inserted {
		r.logg.Debug(ctx, fmt.Sprintf("settlement record %s written", record.ID))
	}
	return inserted
}

// Sweep reconciles a batch, reporting how many records were newly inserted.
// Per-item storage errors are aggregated and logged once; like
// RecordSettlement, nothing propagates to the caller.
func (r *Reconciler) Sweep(ctx context.Context, records []ledger.Record) int {
	var inserted int
	var errs error
	for _, record := range records {
		ok, err := r.store.AppendIfAbsent(ctx, record)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("record %s: %w", record.ID, err))
			continue
		}
		if ok {
			inserted++
		}
	}
	if errs != nil {
		r.logg.Warn(ctx, fmt.Sprintf("sweep wrote %d of %d records: %v", inserted, len(records), errs))
	}
	return inserted
}
