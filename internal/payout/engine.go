// Package payout drives the on-chain payout rail: fee quotes, consent-gated
// creation, status polling, and retry-claim passthrough. Terminal statuses
// are projected into the ledger the same way paylink settlements are.
package payout

import (
	"context"
	"fmt"
	"time"

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
	PayoutQuote(ctx context.Context, params upstream.PayoutQuoteParams) (normalize.Payload, error)
	PayoutCreate(ctx context.Context, params upstream.PayoutCreateParams) (normalize.Payload, error)
	PayoutStatus(ctx context.Context, payoutID string) (normalize.Payload, error)
	PayoutRetryClaim(ctx context.Context, payoutID string) (normalize.Payload, error)
}

// Engine drives the payout rail.
type Engine struct {
	api        API
	settlement *reconcile.Reconciler
	logg       *logger.Logger
}

// NewEngine wires the payout engine over the shared payment ledger.
func NewEngine(api API, settlement *reconcile.Reconciler, logg *logger.Logger) (*Engine, error) {
	if api == nil {
		return nil, fmt.Errorf("payout api required")
	}
	if settlement == nil {
		return nil, fmt.Errorf("payout reconciler required")
	}
	if logg == nil {
		return nil, fmt.Errorf("payout logger required")
	}
	return &Engine{api: api, settlement: settlement, logg: logg}, nil
}

// QuoteInput asks for an on-chain fee quote.
type QuoteInput struct {
	AmountSats int64
	Address    string
	Network    string
}

// Quote fetches a fee quote for a prospective payout.
func (e *Engine) Quote(ctx context.Context, input QuoteInput) (*Quote, error) {
	doc, err := e.api.PayoutQuote(ctx, upstream.PayoutQuoteParams{
		AmountMsats: msats.ToMsats(input.AmountSats),
		Address:     input.Address,
		Network:     input.Network,
	})
	if err != nil {
		return nil, err
	}
	quote := ProjectQuote(doc)
	if quote.AmountSats == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeResponseInvalid, "quote response missing amount")
	}
	return &quote, nil
}

// CreateInput enqueues an on-chain payout. AcceptTerms is the explicit
// consent the user must give before any network call is made.
type CreateInput struct {
	AmountSats  int64
	Address     string
	Network     string
	QuoteID     string
	AcceptTerms bool
}

// Create enqueues a payout. Missing consent fails fast with
// accept_terms_required and zero outbound requests; there is no partial
// creation and no silent default.
func (e *Engine) Create(ctx context.Context, input CreateInput) (*Projection, error) {
	if !input.AcceptTerms {
		return nil, pkgerrors.New(pkgerrors.CodeAcceptTermsRequired, "on-chain payouts require explicit acceptance of the payout terms")
	}

	doc, err := e.api.PayoutCreate(ctx, upstream.PayoutCreateParams{
		AmountMsats: msats.ToMsats(input.AmountSats),
		Address:     input.Address,
		Network:     input.Network,
		QuoteID:     input.QuoteID,
	})
	if err != nil {
		return nil, err
	}
	projection := Project(doc)
	if projection.PayoutID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeResponseInvalid, "payout create response missing id")
	}
	e.settlement.RecordSettlement(ctx, projection.record(time.Now().UTC()))
	return &projection, nil
}

// Status fetches the current payout state. Terminal states are best-effort
// reconciled into the ledger, keyed by payout id, without disturbing the
// lookup when the append fails.
func (e *Engine) Status(ctx context.Context, payoutID string) (*Projection, error) {
	doc, err := e.api.PayoutStatus(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	projection := Project(doc)
	if projection.PayoutID == "" {
		projection.PayoutID = payoutID
	}
	if projection.Status.IsTerminal() {
		e.settlement.RecordSettlement(ctx, projection.record(time.Now().UTC()))
	}
	return &projection, nil
}

// RetryClaim forwards a retry request for the payout. Only an expired claim
// invoice is known to be retryable, but the engine does not short-circuit
// locally: the upstream is the authority, and its rejection of a
// non-retryable state propagates unchanged.
func (e *Engine) RetryClaim(ctx context.Context, payoutID string) (*Projection, error) {
	doc, err := e.api.PayoutRetryClaim(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	projection := Project(doc)
	if projection.PayoutID == "" {
		projection.PayoutID = payoutID
	}
	return &projection, nil
}

// record projects the payout into a ledger record keyed by payout id.
func (p Projection) record(now time.Time) ledger.Record {
	amount := int64(0)
	if p.AmountSats != nil {
		amount = *p.AmountSats
	}
	return ledger.Record{
		ID:         p.PayoutID,
		Kind:       enums.RecordKindSend,
		AmountSats: amount,
		Status:     p.Status.String(),
		Timestamp:  now,
		Source:     enums.RecordSourceOnchain,
		Onchain: &ledger.OnchainMeta{
			Network:  p.Network,
			Address:  p.Destination,
			PayoutID: p.PayoutID,
		},
	}
}
