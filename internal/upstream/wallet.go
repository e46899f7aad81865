package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rmarin/voltcli/internal/normalize"
	"github.com/rmarin/voltcli/internal/route"
	pkgerrors "github.com/rmarin/voltcli/pkg/errors"
)

// Identity is the provisioned wallet identity.
type Identity struct {
	Address string
}

// Register provisions a wallet identity for the configured api key.
func (c *Client) Register(ctx context.Context) (*Identity, error) {
	doc, err := c.call(ctx, http.MethodPost, "/v1/register", map[string]any{},
		pkgerrors.CodeRegisterUnreachable, pkgerrors.CodeRegisterFailed)
	if err != nil {
		return nil, err
	}
	address, ok := doc.String("data.address", "address", "lightning_address")
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeResponseInvalid, "register response missing address")
	}
	return &Identity{Address: address}, nil
}

// Balance returns the wallet balance in millisats.
func (c *Client) Balance(ctx context.Context) (int64, error) {
	doc, err := c.call(ctx, http.MethodGet, "/v1/wallet", nil,
		pkgerrors.CodeWalletRequestFailed, pkgerrors.CodeWalletRequestFailed)
	if err != nil {
		return 0, err
	}
	msat, ok := doc.Int64("data.balance", "balance", "data.wallet.balance")
	if !ok {
		return 0, pkgerrors.New(pkgerrors.CodeWalletResponseInvalid, "wallet response missing balance")
	}
	return msat, nil
}

// CreateInvoice asks the processor for a bolt11 invoice for amountMsats.
func (c *Client) CreateInvoice(ctx context.Context, amountMsats int64, description string) (normalize.Payload, error) {
	return c.call(ctx, http.MethodPost, "/v1/charges", map[string]any{
		"amount":      amountMsats,
		"description": description,
	}, pkgerrors.CodeUpstreamRequestFailed, pkgerrors.CodeUpstreamRequestFailed)
}

// CreateStaticCharge creates a reusable charge that can be paid repeatedly.
func (c *Client) CreateStaticCharge(ctx context.Context, description string) (normalize.Payload, error) {
	return c.call(ctx, http.MethodPost, "/v1/static-charges", map[string]any{
		"description":    description,
		"allowedSlots":   nil,
		"internalId":     "",
		"successMessage": "",
	}, pkgerrors.CodeUpstreamRequestFailed, pkgerrors.CodeUpstreamRequestFailed)
}

// sendPaths routes each destination kind to its upstream endpoint.
var sendPaths = map[route.DestinationKind]string{
	route.KindBolt11:           "/v1/payments",
	route.KindLNURL:            "/v1/ln-address/send-payment",
	route.KindGamertag:         "/v1/gamertag/send-payment",
	route.KindLightningAddress: "/v1/ln-address/send-payment",
}

// SendPayment submits a classified send request.
func (c *Client) SendPayment(ctx context.Context, req route.SendRequest) (normalize.Payload, error) {
	path, ok := sendPaths[req.Kind]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("no endpoint for destination kind %q", req.Kind))
	}
	return c.call(ctx, http.MethodPost, path, req.Payload,
		pkgerrors.CodeUpstreamRequestFailed, pkgerrors.CodeUpstreamRequestFailed)
}

// FetchPaymentDetail fetches the current settlement data for a payment id.
func (c *Client) FetchPaymentDetail(ctx context.Context, id string) (normalize.Payload, error) {
	return c.call(ctx, http.MethodGet, "/v1/payments/"+url.PathEscape(id), nil,
		pkgerrors.CodeUpstreamRequestFailed, pkgerrors.CodeUpstreamRequestFailed)
}

// CreateWithdraw creates a withdraw link for amountMsats.
func (c *Client) CreateWithdraw(ctx context.Context, amountMsats int64, description string) (normalize.Payload, error) {
	return c.call(ctx, http.MethodPost, "/v1/withdrawal-requests", map[string]any{
		"amount":      amountMsats,
		"description": description,
	}, pkgerrors.CodeUpstreamRequestFailed, pkgerrors.CodeUpstreamRequestFailed)
}

// FetchWithdrawStatus fetches the state of a withdraw link.
func (c *Client) FetchWithdrawStatus(ctx context.Context, id string) (normalize.Payload, error) {
	return c.call(ctx, http.MethodGet, "/v1/withdrawal-requests/"+url.PathEscape(id), nil,
		pkgerrors.CodeUpstreamRequestFailed, pkgerrors.CodeUpstreamRequestFailed)
}
