package enums

import "fmt"

// PayoutStatus is the canonical lifecycle of an on-chain payout.
type PayoutStatus string

const (
	PayoutStatusCreated              PayoutStatus = "created"
	PayoutStatusQueued               PayoutStatus = "queued"
	PayoutStatusBroadcasting         PayoutStatus = "broadcasting"
	PayoutStatusSucceeded            PayoutStatus = "succeeded"
	PayoutStatusFailedInvoiceExpired PayoutStatus = "failed_invoice_expired"
	PayoutStatusFailedLockup         PayoutStatus = "failed_lockup"
	PayoutStatusRefunded             PayoutStatus = "refunded"
	PayoutStatusManualReview         PayoutStatus = "manual_review"
)

var validPayoutStatuses = []PayoutStatus{
	PayoutStatusCreated,
	PayoutStatusQueued,
	PayoutStatusBroadcasting,
	PayoutStatusSucceeded,
	PayoutStatusFailedInvoiceExpired,
	PayoutStatusFailedLockup,
	PayoutStatusRefunded,
	PayoutStatusManualReview,
}

// String implements fmt.Stringer.
func (s PayoutStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s PayoutStatus) IsValid() bool {
	for _, candidate := range validPayoutStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the payout can still progress on its own.
func (s PayoutStatus) IsTerminal() bool {
	switch s {
	case PayoutStatusCreated, PayoutStatusQueued, PayoutStatusBroadcasting:
		return false
	}
	return s.IsValid()
}

// SupportsRetryClaim reports whether the upstream accepts a retry-claim
// transition out of this status. Only an expired claim invoice is locally
// known to be retryable; every other terminal status is rejected upstream.
func (s PayoutStatus) SupportsRetryClaim() bool {
	return s == PayoutStatusFailedInvoiceExpired
}

// ParsePayoutStatus converts raw input into a PayoutStatus.
func ParsePayoutStatus(value string) (PayoutStatus, error) {
	for _, candidate := range validPayoutStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payout status %q", value)
}
