package payout

import (
	"github.com/shopspring/decimal"

	"github.com/rmarin/voltcli/internal/normalize"
	"github.com/rmarin/voltcli/pkg/enums"
	"github.com/rmarin/voltcli/pkg/msats"
)

// Kickoff is the enqueue acknowledgment echoed by the upstream when a payout
// enters its broadcast pipeline.
type Kickoff struct {
	Enqueued  bool   `json:"enqueued"`
	Workflow  string `json:"workflow,omitempty"`
	KickoffID string `json:"kickoff_id,omitempty"`
}

// Projection is the wallet's typed view of one on-chain payout.
type Projection struct {
	PayoutID    string             `json:"payout_id"`
	Status      enums.PayoutStatus `json:"status"`
	AmountSats  *int64             `json:"amount_sats,omitempty"`
	Destination string             `json:"destination,omitempty"`
	Network     string             `json:"network,omitempty"`
	Txid        string             `json:"txid,omitempty"`
	FailureCode string             `json:"failure_code,omitempty"`
	Kickoff     Kickoff            `json:"kickoff"`
}

// Quote is a typed on-chain fee quote. Amounts are integer sats; the
// upstream's BTC-denominated decimal fields are converted exactly.
type Quote struct {
	QuoteID    string `json:"quote_id,omitempty"`
	AmountSats int64  `json:"amount_sats"`
	FeeSats    int64  `json:"fee_sats"`
	TotalSats  int64  `json:"total_sats"`
}

var satsPerBtc = decimal.NewFromInt(100_000_000)

// btcToSats converts a BTC-denominated decimal string to whole sats,
// flooring sub-sat dust. Returns false for unparseable input.
func btcToSats(text string) (int64, bool) {
	if text == "" {
		return 0, false
	}
	btc, err := decimal.NewFromString(text)
	if err != nil || btc.IsNegative() {
		return 0, false
	}
	return btc.Mul(satsPerBtc).IntPart(), true
}

// amountSats reads an amount that the upstream spells either as millisats
// under the given msat paths or as a BTC decimal string under the btc paths.
func amountSats(doc normalize.Payload, msatPaths, btcPaths []string) (int64, bool) {
	if amountMsats, ok := doc.Int64(msatPaths...); ok {
		return msats.ToSats(amountMsats), true
	}
	if raw, ok := doc.String(btcPaths...); ok {
		return btcToSats(raw)
	}
	return 0, false
}

// ProjectQuote maps a raw quote payload onto a Quote.
func ProjectQuote(doc normalize.Payload) Quote {
	if inner, ok := doc.Object("data.quote", "data", "quote"); ok {
		doc = inner
	}

	var quote Quote
	quote.QuoteID, _ = doc.String("id", "quoteId", "quote_id")
	quote.AmountSats, _ = amountSats(doc,
		[]string{"amount", "amountMsats"}, []string{"amountBtc", "amount_btc"})
	quote.FeeSats, _ = amountSats(doc,
		[]string{"fee", "feeMsats", "minerFee"}, []string{"feeBtc", "fee_btc", "minerFeeBtc"})
	if totalSats, ok := amountSats(doc,
		[]string{"total", "totalMsats"}, []string{"totalBtc", "total_btc"}); ok {
		quote.TotalSats = totalSats
	} else {
		quote.TotalSats = quote.AmountSats + quote.FeeSats
	}
	return quote
}

// Project maps a raw payout payload onto a Projection. Unknown upstream
// status strings are kept visible by parsing strictly and falling back to
// created, mirroring the conservative default used for paylinks.
func Project(doc normalize.Payload) Projection {
	if inner, ok := doc.Object("data.payout", "data", "payout"); ok {
		doc = inner
	}

	var projection Projection
	projection.PayoutID, _ = doc.String("id", "payoutId", "payout_id")

	rawStatus, _ := doc.String("status", "state")
	if status, err := enums.ParsePayoutStatus(rawStatus); err == nil {
		projection.Status = status
	} else {
		projection.Status = enums.PayoutStatusCreated
	}

	if sats, ok := amountSats(doc,
		[]string{"amount", "amountMsats"}, []string{"amountBtc", "amount_btc"}); ok {
		projection.AmountSats = &sats
	}

	projection.Destination, _ = doc.String("address", "destination", "btcAddress")
	projection.Network, _ = doc.String("network", "chain")
	projection.Txid, _ = doc.String("txid", "transactionId", "tx_id")
	projection.FailureCode, _ = doc.String("failureCode", "failure_code", "failureReason")

	if kickoff, ok := doc.Object("kickoff", "data.kickoff"); ok {
		projection.Kickoff.Enqueued, _ = kickoff.Bool("enqueued")
		projection.Kickoff.Workflow, _ = kickoff.String("workflow", "workflowId")
		projection.Kickoff.KickoffID, _ = kickoff.String("id", "kickoffId", "kickoff_id")
	}
	return projection
}
