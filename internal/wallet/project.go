package wallet

import (
	"time"

	"github.com/rmarin/voltcli/internal/ledger"
	"github.com/rmarin/voltcli/internal/normalize"
	"github.com/rmarin/voltcli/pkg/enums"
	pkgerrors "github.com/rmarin/voltcli/pkg/errors"
	"github.com/rmarin/voltcli/pkg/msats"
)

// projectSend maps a send-payment response onto a ledger record. The amount
// falls back to the locally-parsed value when the upstream omits it, which
// happens on the gamertag endpoint.
func projectSend(doc normalize.Payload, requestedSats int64) (*ledger.Record, error) {
	id, ok := doc.String("data.id", "id", "data.transactionId", "transactionId")
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeResponseInvalid, "send response missing payment id")
	}
	status, _ := doc.String("data.status", "status")

	amountSats := requestedSats
	if amountMsats, ok := doc.Int64("data.amount", "amount"); ok {
		amountSats = msats.ToSats(amountMsats)
	}

	timestamp, ok := doc.Time("data.createdAt", "createdAt", "created_at")
	if !ok {
		timestamp = time.Now().UTC()
	}

	record := ledger.Record{
		ID:         id,
		Kind:       enums.RecordKindSend,
		AmountSats: amountSats,
		Status:     status,
		Timestamp:  timestamp,
	}
	if feeMsats, ok := doc.Int64("data.fee", "fee"); ok {
		feeSats := msats.ToSats(feeMsats)
		record.FeeSats = &feeSats
	}
	record.Proof, _ = doc.String("data.preimage", "preimage")
	return &record, nil
}

// projectDetail maps a payment-detail response onto a ledger record for a
// payment the local ledger has never seen.
func projectDetail(doc normalize.Payload, id string) (*ledger.Record, error) {
	status, ok := doc.String("data.status", "status", "state")
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeResponseInvalid, "payment detail missing status")
	}

	kind := enums.RecordKindReceive
	if direction, ok := doc.String("data.type", "type", "direction"); ok && direction == "sent" {
		kind = enums.RecordKindSend
	}

	amountSats := int64(0)
	if amountMsats, ok := doc.Int64("data.amount", "amount"); ok {
		amountSats = msats.ToSats(amountMsats)
	}

	timestamp, ok := doc.Time("data.createdAt", "createdAt", "created_at")
	if !ok {
		timestamp = time.Now().UTC()
	}

	record := ledger.Record{
		ID:         id,
		Kind:       kind,
		AmountSats: amountSats,
		Status:     status,
		Timestamp:  timestamp,
	}
	if feeMsats, ok := doc.Int64("data.fee", "fee"); ok {
		feeSats := msats.ToSats(feeMsats)
		record.FeeSats = &feeSats
	}
	record.Proof, _ = doc.String("data.preimage", "preimage")
	return &record, nil
}

// projectWithdraw maps a withdraw-link response onto a WithdrawLink.
func projectWithdraw(doc normalize.Payload, requestedSats int64) (*WithdrawLink, error) {
	link := WithdrawLink{AmountSats: requestedSats}
	link.ID, _ = doc.String("data.id", "id")
	lnurl, ok := doc.String("data.invoice.request", "invoice.request", "lnurl", "request")
	if !ok && link.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeResponseInvalid, "withdraw response missing id and lnurl")
	}
	link.LNURL = lnurl
	link.Status, _ = doc.String("data.status", "status")
	if amountMsats, ok := doc.Int64("data.amount", "amount"); ok {
		link.AmountSats = msats.ToSats(amountMsats)
	}
	return &link, nil
}
