// Package wallet orchestrates the direct Lightning rail: identity, balance,
// sends, receives, and local-first history reads over the payment ledger.
package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/rmarin/voltcli/internal/ledger"
	"github.com/rmarin/voltcli/internal/normalize"
	"github.com/rmarin/voltcli/internal/reconcile"
	"github.com/rmarin/voltcli/internal/route"
	"github.com/rmarin/voltcli/internal/upstream"
	"github.com/rmarin/voltcli/pkg/enums"
	pkgerrors "github.com/rmarin/voltcli/pkg/errors"
	"github.com/rmarin/voltcli/pkg/logger"
	"github.com/rmarin/voltcli/pkg/msats"
)

// API is the slice of the upstream client the wallet service depends on.
type API interface {
	Register(ctx context.Context) (*upstream.Identity, error)
	Balance(ctx context.Context) (int64, error)
	CreateInvoice(ctx context.Context, amountMsats int64, description string) (normalize.Payload, error)
	CreateStaticCharge(ctx context.Context, description string) (normalize.Payload, error)
	SendPayment(ctx context.Context, req route.SendRequest) (normalize.Payload, error)
	FetchPaymentDetail(ctx context.Context, id string) (normalize.Payload, error)
	CreateWithdraw(ctx context.Context, amountMsats int64, description string) (normalize.Payload, error)
	FetchWithdrawStatus(ctx context.Context, id string) (normalize.Payload, error)
}

// Service is the command-level orchestrator behind the plain Lightning
// subcommands.
type Service struct {
	api        API
	store      ledger.Store
	settlement *reconcile.Reconciler
	logg       *logger.Logger
}

// NewService wires the wallet service.
func NewService(api API, store ledger.Store, settlement *reconcile.Reconciler, logg *logger.Logger) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("wallet api required")
	}
	if store == nil {
		return nil, fmt.Errorf("wallet store required")
	}
	if settlement == nil {
		return nil, fmt.Errorf("wallet reconciler required")
	}
	if logg == nil {
		return nil, fmt.Errorf("wallet logger required")
	}
	return &Service{api: api, store: store, settlement: settlement, logg: logg}, nil
}

// Register provisions the wallet identity and returns its lightning address.
func (s *Service) Register(ctx context.Context) (string, error) {
	identity, err := s.api.Register(ctx)
	if err != nil {
		return "", err
	}
	return identity.Address, nil
}

// Balance returns the wallet balance in sats.
func (s *Service) Balance(ctx context.Context) (int64, error) {
	balanceMsats, err := s.api.Balance(ctx)
	if err != nil {
		return 0, err
	}
	return msats.ToSats(balanceMsats), nil
}

// Send classifies the destination, submits the payment, and appends the
// resulting record. Classification and amount parsing both fail before any
// credential or network cost is paid.
func (s *Service) Send(ctx context.Context, destination, amountText string) (*ledger.Record, error) {
	kind, err := route.ClassifyDestination(destination)
	if err != nil {
		return nil, err
	}

	var amountSats int64
	if kind.NeedsAmount() {
		amountSats, err = msats.ParseSats(amountText)
		if err != nil {
			return nil, err
		}
	}

	req, err := route.BuildSendRequest(destination, amountSats)
	if err != nil {
		return nil, err
	}

	doc, err := s.api.SendPayment(ctx, *req)
	if err != nil {
		return nil, err
	}

	record, err := projectSend(doc, amountSats)
	if err != nil {
		return nil, err
	}
	if err := s.store.Append(ctx, *record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeLedgerIO, err, "recording send")
	}
	return record, nil
}

// ReceiveResult pairs the invoice text handed to the payer with the ledger
// record tracking it.
type ReceiveResult struct {
	Invoice string        `json:"invoice"`
	Record  ledger.Record `json:"record"`
}

// Receive creates an invoice for amountText sats and records it.
func (s *Service) Receive(ctx context.Context, amountText, description string) (*ReceiveResult, error) {
	amountSats, err := msats.ParseSats(amountText)
	if err != nil {
		return nil, err
	}

	doc, err := s.api.CreateInvoice(ctx, msats.ToMsats(amountSats), description)
	if err != nil {
		return nil, err
	}

	id, ok := doc.String("data.id", "id", "chargeId")
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeResponseInvalid, "invoice response missing id")
	}
	invoice, ok := doc.String("data.invoice.request", "invoice.request", "request", "bolt11")
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeResponseInvalid, "invoice response missing payment request")
	}
	status, _ := doc.String("data.status", "status")
	timestamp, ok := doc.Time("data.createdAt", "createdAt", "created_at")
	if !ok {
		timestamp = time.Now().UTC()
	}

	record := ledger.Record{
		ID:         id,
		Kind:       enums.RecordKindReceive,
		AmountSats: amountSats,
		Status:     status,
		Timestamp:  timestamp,
	}
	if err := s.store.Append(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeLedgerIO, err, "recording receive")
	}
	return &ReceiveResult{Invoice: invoice, Record: record}, nil
}

// StaticCharge is a reusable charge that can be paid any number of times.
type StaticCharge struct {
	ID     string `json:"id"`
	LNURL  string `json:"lnurl"`
	Status string `json:"status,omitempty"`
}

// CreateStaticCharge provisions a reusable charge. No ledger record is
// written here; each settlement lands as its own receive on payment.
func (s *Service) CreateStaticCharge(ctx context.Context, description string) (*StaticCharge, error) {
	doc, err := s.api.CreateStaticCharge(ctx, description)
	if err != nil {
		return nil, err
	}
	charge := StaticCharge{}
	charge.ID, _ = doc.String("data.id", "id")
	if charge.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeResponseInvalid, "static charge response missing id")
	}
	lnurl, ok := doc.String("data.lnurl", "lnurl", "data.invoice.request")
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeResponseInvalid, "static charge response missing lnurl")
	}
	charge.LNURL = lnurl
	charge.Status, _ = doc.String("data.status", "status")
	return &charge, nil
}

// History returns the full ledger in insertion order.
func (s *Service) History(ctx context.Context) []ledger.Record {
	return s.store.ReadAll(ctx)
}

// Detail resolves a payment id local-first: the ledger answers without a
// network call when it can, otherwise the upstream is consulted and the
// result reconciled in for next time.
func (s *Service) Detail(ctx context.Context, id string) (*ledger.Record, error) {
	if record := s.store.FindByID(ctx, id); record != nil {
		return record, nil
	}

	doc, err := s.api.FetchPaymentDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	record, err := projectDetail(doc, id)
	if err != nil {
		return nil, err
	}
	s.settlement.RecordSettlement(ctx, *record)
	return record, nil
}

// WithdrawLink is a withdraw request the payer side can claim.
type WithdrawLink struct {
	ID         string `json:"id"`
	LNURL      string `json:"lnurl"`
	Status     string `json:"status,omitempty"`
	AmountSats int64  `json:"amount_sats"`
}

// CreateWithdraw provisions a withdraw link for amountText sats.
func (s *Service) CreateWithdraw(ctx context.Context, amountText, description string) (*WithdrawLink, error) {
	amountSats, err := msats.ParseSats(amountText)
	if err != nil {
		return nil, err
	}
	doc, err := s.api.CreateWithdraw(ctx, msats.ToMsats(amountSats), description)
	if err != nil {
		return nil, err
	}
	return projectWithdraw(doc, amountSats)
}

// WithdrawStatus fetches the current state of a withdraw link.
func (s *Service) WithdrawStatus(ctx context.Context, id string) (*WithdrawLink, error) {
	doc, err := s.api.FetchWithdrawStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	link, err := projectWithdraw(doc, 0)
	if err != nil {
		return nil, err
	}
	if link.ID == "" {
		link.ID = id
	}
	return link, nil
}
