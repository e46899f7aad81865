package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rmarin/voltcli/internal/normalize"
	pkgerrors "github.com/rmarin/voltcli/pkg/errors"
)

// PayoutQuoteParams asks for an on-chain payout quote.
type PayoutQuoteParams struct {
	AmountMsats int64
	Address     string
	Network     string
}

// PayoutQuote fetches a fee quote for an on-chain payout.
func (c *Client) PayoutQuote(ctx context.Context, params PayoutQuoteParams) (normalize.Payload, error) {
	return c.call(ctx, http.MethodPost, "/v1/onchain/quotes", map[string]any{
		"amount":  params.AmountMsats,
		"address": params.Address,
		"network": params.Network,
	}, pkgerrors.CodeUpstreamRequestFailed, pkgerrors.CodeUpstreamRequestFailed)
}

// PayoutCreateParams enqueues an on-chain payout. QuoteID is optional; when
// present the upstream honors the quoted fee.
type PayoutCreateParams struct {
	AmountMsats int64
	Address     string
	Network     string
	QuoteID     string
}

// PayoutCreate enqueues an on-chain payout. Consent gating happens in the
// payout engine before this is ever reached.
func (c *Client) PayoutCreate(ctx context.Context, params PayoutCreateParams) (normalize.Payload, error) {
	body := map[string]any{
		"amount":  params.AmountMsats,
		"address": params.Address,
		"network": params.Network,
	}
	if params.QuoteID != "" {
		body["quoteId"] = params.QuoteID
	}
	return c.call(ctx, http.MethodPost, "/v1/onchain/payouts", body,
		pkgerrors.CodeUpstreamRequestFailed, pkgerrors.CodeUpstreamRequestFailed)
}

// PayoutStatus fetches the current state of a payout.
func (c *Client) PayoutStatus(ctx context.Context, payoutID string) (normalize.Payload, error) {
	return c.call(ctx, http.MethodGet, "/v1/onchain/payouts/"+url.PathEscape(payoutID), nil,
		pkgerrors.CodeUpstreamRequestFailed, pkgerrors.CodeUpstreamRequestFailed)
}

// PayoutRetryClaim asks the upstream to re-run the claim for a payout. The
// upstream decides whether the payout's state permits it; rejections
// propagate unchanged.
func (c *Client) PayoutRetryClaim(ctx context.Context, payoutID string) (normalize.Payload, error) {
	return c.call(ctx, http.MethodPost, "/v1/onchain/payouts/"+url.PathEscape(payoutID)+"/retry-claim", map[string]any{},
		pkgerrors.CodeUpstreamRequestFailed, pkgerrors.CodeUpstreamRequestFailed)
}
