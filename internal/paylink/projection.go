package paylink

import (
	"strings"
	"time"

	"github.com/rmarin/voltcli/internal/normalize"
	"github.com/rmarin/voltcli/pkg/enums"
	"github.com/rmarin/voltcli/pkg/msats"
)

// Projection is the wallet's typed view of one hosted checkout page, derived
// from a raw upstream payload. It is never persisted as-is; settlement data
// flows into the ledger through records keyed by attempt id.
type Projection struct {
	ID        string                 `json:"id"`
	URL       string                 `json:"url"`
	Status    string                 `json:"status"`
	Lifecycle enums.PaylinkLifecycle `json:"lifecycle"`

	// AmountSats is nil for variable-amount links.
	AmountSats *int64 `json:"amount_sats,omitempty"`

	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`

	// Settlement pointers, used only to locate the most relevant charge.
	PaidAttemptID   string `json:"paid_attempt_id,omitempty"`
	LatestAttemptID string `json:"latest_attempt_id,omitempty"`
	ActiveAttemptID string `json:"active_attempt_id,omitempty"`
}

// Project maps a raw upstream paylink payload onto a Projection. The
// upstream spells most fields several ways across API revisions, hence the
// fallback paths.
func Project(doc normalize.Payload) Projection {
	if inner, ok := doc.Object("data.paylink", "data", "paylink"); ok {
		doc = inner
	}

	var projection Projection
	projection.ID, _ = doc.String("id", "paylinkId", "paylink_id")
	projection.URL, _ = doc.String("url", "checkoutUrl", "checkout_url", "shareableUrl")
	projection.Status, _ = doc.String("status", "state")
	projection.Lifecycle = enums.NormalizePaylinkStatus(projection.Status)

	if amountMsats, ok := doc.Int64("amount", "amountMsats", "amount_msats"); ok && amountMsats > 0 {
		sats := msats.ToSats(amountMsats)
		projection.AmountSats = &sats
	}

	projection.CreatedAt, _ = doc.Time("createdAt", "created_at")
	projection.UpdatedAt, _ = doc.Time("updatedAt", "updated_at")

	projection.PaidAttemptID, _ = doc.String("paidChargeId", "paid_charge_id", "paidAttemptId")
	projection.LatestAttemptID, _ = doc.String("latestChargeId", "latest_charge_id", "latestAttemptId")
	projection.ActiveAttemptID, _ = doc.String("activeChargeId", "active_charge_id", "activeAttemptId")
	return projection
}

// RelevantAttemptID picks the single charge worth reconciling: a settled
// attempt first, then the one currently collecting, then the newest.
func (p Projection) RelevantAttemptID() string {
	switch {
	case p.PaidAttemptID != "":
		return p.PaidAttemptID
	case p.ActiveAttemptID != "":
		return p.ActiveAttemptID
	default:
		return p.LatestAttemptID
	}
}

// isFailedClass reports whether a settlement status communicates failure.
func isFailedClass(status string) bool {
	return status == "failed" || status == "error" || strings.HasPrefix(status, "failed_")
}

// projectSettlement derives the lifecycle a ledger record should carry given
// the paylink's current lifecycle and its relevant attempt's settlement
// status. Terminal lifecycles never regress: expiry outranks failure
// framing, and a paid or dead link stays that way regardless of what a
// later settlement read claims.
func projectSettlement(current enums.PaylinkLifecycle, attemptStatus string) enums.PaylinkLifecycle {
	switch {
	case attemptStatus == "completed":
		return enums.PaylinkLifecyclePaid
	case isFailedClass(attemptStatus):
		if current == enums.PaylinkLifecycleExpired {
			return enums.PaylinkLifecycleExpired
		}
		return enums.PaylinkLifecycleDead
	case current.IsTerminal():
		return current
	case current == enums.PaylinkLifecycleCreated, current == enums.PaylinkLifecycleActive:
		return current
	default:
		return enums.PaylinkLifecycleActive
	}
}
