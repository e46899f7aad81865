package ledger

import (
	"time"

	"github.com/rmarin/voltcli/pkg/enums"
)

// Record is one persisted payment-affecting event. Records are append-only:
// corrections are modeled as new reads, never as in-place edits.
//
// Optional fields are pointers or omitempty so older files written before a
// field existed keep decoding with the field simply absent.
type Record struct {
	ID         string           `json:"id"`
	Kind       enums.RecordKind `json:"kind"`
	AmountSats int64            `json:"amount_sats"`
	Status     string           `json:"status"`
	Timestamp  time.Time        `json:"timestamp"`

	FeeSats *int64             `json:"fee_sats,omitempty"`
	Proof   string             `json:"proof,omitempty"`
	Source  enums.RecordSource `json:"source,omitempty"`

	Paylink *PaylinkMeta `json:"paylink,omitempty"`
	Onchain *OnchainMeta `json:"onchain,omitempty"`
}

// PaylinkMeta carries the settlement pointers for records projected from a
// hosted checkout page.
type PaylinkMeta struct {
	PaylinkID  string                 `json:"paylink_id"`
	AttemptID  string                 `json:"paylink_attempt_id"`
	Lifecycle  enums.PaylinkLifecycle `json:"paylink_lifecycle"`
	AmountSats *int64                 `json:"paylink_amount_sats,omitempty"`
}

// OnchainMeta carries the destination data for records projected from an
// on-chain payout.
type OnchainMeta struct {
	Network  string `json:"network"`
	Address  string `json:"address"`
	PayoutID string `json:"payout_id"`
}
