// Package paylink owns the lifecycle of hosted checkout pages: creating and
// cancelling them upstream, normalizing their status vocabulary, and
// projecting their settlements into the ledger on every lookup.
package paylink

import (
	"context"
	"fmt"

	"github.com/rmarin/voltcli/internal/ledger"
	"github.com/rmarin/voltcli/internal/normalize"
	"github.com/rmarin/voltcli/internal/reconcile"
	"github.com/rmarin/voltcli/internal/upstream"
	"github.com/rmarin/voltcli/pkg/enums"
	pkgerrors "github.com/rmarin/voltcli/pkg/errors"
	"github.com/rmarin/voltcli/pkg/logger"
	"github.com/rmarin/voltcli/pkg/msats"
)

// API is the slice of the upstream client the engine depends on.
type API interface {
	PaylinkCreate(ctx context.Context, params upstream.PaylinkCreateParams) (normalize.Payload, error)
	PaylinkGet(ctx context.Context, id string) (normalize.Payload, error)
	PaylinkList(ctx context.Context) (normalize.Payload, error)
	PaylinkCancel(ctx context.Context, id string) (normalize.Payload, error)
	FetchPaymentDetail(ctx context.Context, id string) (normalize.Payload, error)
}

// Engine drives the paylink rail. Lookups additionally reconcile the
// relevant attempt's settlement into the payment ledger; that side effect is
// idempotent and never fails the lookup.
type Engine struct {
	api        API
	cache      *reconcile.Reconciler
	settlement *reconcile.Reconciler
	logg       *logger.Logger
}

// NewEngine wires the paylink engine. cache persists paylink metadata for
// local-first reads; settlement writes into the shared payment ledger.
func NewEngine(api API, cache, settlement *reconcile.Reconciler, logg *logger.Logger) (*Engine, error) {
	if api == nil {
		return nil, fmt.Errorf("paylink api required")
	}
	if cache == nil || settlement == nil {
		return nil, fmt.Errorf("paylink reconcilers required")
	}
	if logg == nil {
		return nil, fmt.Errorf("paylink logger required")
	}
	return &Engine{api: api, cache: cache, settlement: settlement, logg: logg}, nil
}

// CreateInput describes a new paylink. AmountSats zero means variable-amount.
type CreateInput struct {
	AmountSats  int64
	Description string
	InternalID  string
}

// Create provisions a new hosted checkout page.
func (e *Engine) Create(ctx context.Context, input CreateInput) (*Projection, error) {
	doc, err := e.api.PaylinkCreate(ctx, upstream.PaylinkCreateParams{
		AmountMsats: msats.ToMsats(input.AmountSats),
		Description: input.Description,
		InternalID:  input.InternalID,
	})
	if err != nil {
		return nil, err
	}
	projection := Project(doc)
	if projection.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeResponseInvalid, "paylink create response missing id")
	}
	e.cache.RecordSettlement(ctx, projection.cacheRecord())
	return &projection, nil
}

// Get fetches one paylink and best-effort reconciles its settlement.
func (e *Engine) Get(ctx context.Context, id string) (*Projection, error) {
	doc, err := e.api.PaylinkGet(ctx, id)
	if err != nil {
		return nil, err
	}
	projection := Project(doc)
	if projection.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeResponseInvalid, "paylink response missing id")
	}
	e.cache.RecordSettlement(ctx, projection.cacheRecord())
	e.reconcileSettlement(ctx, projection)
	return &projection, nil
}

// List fetches every paylink and best-effort reconciles each settlement.
func (e *Engine) List(ctx context.Context) ([]Projection, error) {
	doc, err := e.api.PaylinkList(ctx)
	if err != nil {
		return nil, err
	}

	items, ok := doc.Slice("data.paylinks", "data", "paylinks", "items")
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeResponseInvalid, "paylink list response missing items")
	}

	projections := make([]Projection, 0, len(items))
	cacheRecords := make([]ledger.Record, 0, len(items))
	for _, item := range items {
		projection := Project(item)
		if projection.ID == "" {
			continue
		}
		projections = append(projections, projection)
		cacheRecords = append(cacheRecords, projection.cacheRecord())
	}
	e.cache.Sweep(ctx, cacheRecords)
	for _, projection := range projections {
		e.reconcileSettlement(ctx, projection)
	}
	return projections, nil
}

// Cancel asks the upstream to kill a paylink. Rejections on already-terminal
// links propagate unchanged.
func (e *Engine) Cancel(ctx context.Context, id string) (*Projection, error) {
	doc, err := e.api.PaylinkCancel(ctx, id)
	if err != nil {
		return nil, err
	}
	projection := Project(doc)
	if projection.ID == "" {
		projection.ID = id
		projection.Lifecycle = enums.PaylinkLifecycleDead
	}
	e.cache.RecordSettlement(ctx, projection.cacheRecord())
	return &projection, nil
}

// reconcileSettlement fetches the relevant attempt's settlement and appends
// its projection to the payment ledger. Every failure in here is swallowed:
// the lookup already succeeded and must stay successful.
func (e *Engine) reconcileSettlement(ctx context.Context, projection Projection) {
	attemptID := projection.RelevantAttemptID()
	if attemptID == "" {
		return
	}

	detail, err := e.api.FetchPaymentDetail(ctx, attemptID)
	if err != nil {
		e.logg.Warn(ctx, fmt.Sprintf("settlement fetch for attempt %s failed: %v", attemptID, err))
		return
	}

	status, _ := detail.String("data.status", "status", "state")
	lifecycle := projectSettlement(projection.Lifecycle, status)

	amountSats := int64(0)
	if amountMsats, ok := detail.Int64("data.amount", "amount", "amountMsats"); ok {
		amountSats = msats.ToSats(amountMsats)
	} else if projection.AmountSats != nil {
		amountSats = *projection.AmountSats
	}

	timestamp, ok := detail.Time("data.createdAt", "createdAt", "created_at")
	if !ok {
		timestamp = projection.UpdatedAt
	}

	e.settlement.RecordSettlement(ctx, ledger.Record{
		ID:         attemptID,
		Kind:       enums.RecordKindReceive,
		AmountSats: amountSats,
		Status:     status,
		Timestamp:  timestamp,
		Source:     enums.RecordSourcePaylink,
		Paylink: &ledger.PaylinkMeta{
			PaylinkID:  projection.ID,
			AttemptID:  attemptID,
			Lifecycle:  lifecycle,
			AmountSats: projection.AmountSats,
		},
	})
}

// cacheRecord projects paylink metadata into the cache ledger for
// local-first reads, keyed by the paylink id itself.
func (p Projection) cacheRecord() ledger.Record {
	amount := int64(0)
	if p.AmountSats != nil {
		amount = *p.AmountSats
	}
	return ledger.Record{
		ID:         p.ID,
		Kind:       enums.RecordKindReceive,
		AmountSats: amount,
		Status:     p.Status,
		Timestamp:  p.CreatedAt,
		Source:     enums.RecordSourcePaylink,
		Paylink: &ledger.PaylinkMeta{
			PaylinkID:  p.ID,
			AttemptID:  p.RelevantAttemptID(),
			Lifecycle:  p.Lifecycle,
			AmountSats: p.AmountSats,
		},
	}
}
