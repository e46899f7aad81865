package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rmarin/voltcli/internal/normalize"
	pkgerrors "github.com/rmarin/voltcli/pkg/errors"
)

// PaylinkCreateParams describes a new hosted checkout page. A zero
// AmountMsats creates a variable-amount link.
type PaylinkCreateParams struct {
	AmountMsats int64
	Description string
	InternalID  string
}

// PaylinkCreate creates a hosted checkout page and returns the raw payload
// for the paylink engine to project.
func (c *Client) PaylinkCreate(ctx context.Context, params PaylinkCreateParams) (normalize.Payload, error) {
	body := map[string]any{
		"description": params.Description,
	}
	if params.AmountMsats > 0 {
		body["amount"] = params.AmountMsats
	}
	if params.InternalID != "" {
		body["internalId"] = params.InternalID
	}
	return c.call(ctx, http.MethodPost, "/v1/paylinks", body,
		pkgerrors.CodeUpstreamRequestFailed, pkgerrors.CodeUpstreamRequestFailed)
}

// PaylinkGet fetches one paylink by id.
func (c *Client) PaylinkGet(ctx context.Context, id string) (normalize.Payload, error) {
	return c.call(ctx, http.MethodGet, "/v1/paylinks/"+url.PathEscape(id), nil,
		pkgerrors.CodeUpstreamRequestFailed, pkgerrors.CodeUpstreamRequestFailed)
}

// PaylinkList fetches every paylink owned by the api key.
func (c *Client) PaylinkList(ctx context.Context) (normalize.Payload, error) {
	return c.call(ctx, http.MethodGet, "/v1/paylinks", nil,
		pkgerrors.CodeUpstreamRequestFailed, pkgerrors.CodeUpstreamRequestFailed)
}

// PaylinkCancel cancels a paylink. Upstream rejections on already-terminal
// links pass through unchanged.
func (c *Client) PaylinkCancel(ctx context.Context, id string) (normalize.Payload, error) {
	return c.call(ctx, http.MethodDelete, "/v1/paylinks/"+url.PathEscape(id), nil,
		pkgerrors.CodeUpstreamRequestFailed, pkgerrors.CodeUpstreamRequestFailed)
}
