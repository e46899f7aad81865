// Package route classifies a free-text send destination into the upstream
// request shape it maps to. Classification is pure and runs before any
// credential resolution or network call, so a malformed target costs the
// caller nothing but a string scan.
package route

import (
	"strings"

	pkgerrors "github.com/rmarin/voltcli/pkg/errors"
	"github.com/rmarin/voltcli/pkg/msats"
)

// DestinationKind names the four upstream call shapes a send can take.
type DestinationKind string

const (
	KindBolt11           DestinationKind = "bolt11"
	KindLNURL            DestinationKind = "lnurl"
	KindGamertag         DestinationKind = "gamertag"
	KindLightningAddress DestinationKind = "lightning_address"
)

const (
	// lnurlComment rides along on LNURL and lightning-address payments.
	lnurlComment = "sent via voltcli"
	// gamertagDescription rides along on gamertag payments.
	gamertagDescription = "voltcli payment"
)

// SendRequest is the classified outbound payment request. Payload is the
// exact body handed to the upstream send endpoint for this kind.
type SendRequest struct {
	Kind    DestinationKind
	Payload map[string]any
}

// BuildSendRequest classifies destination and assembles the matching payload.
// First match wins: lnbc prefix, lnurl prefix, leading @, embedded @. A
// bolt11 invoice is self-amounted, so amountSats is ignored for that kind;
// every other kind carries the amount in wire units.
func BuildSendRequest(destination string, amountSats int64) (*SendRequest, error) {
	dest := strings.TrimSpace(destination)
	lower := strings.ToLower(dest)

	switch {
	case strings.HasPrefix(lower, "lnbc"):
		return &SendRequest{
			Kind:    KindBolt11,
			Payload: map[string]any{"invoice": dest},
		}, nil

	case strings.HasPrefix(lower, "lnurl"):
		return &SendRequest{
			Kind: KindLNURL,
			Payload: map[string]any{
				"amount":      msats.ToMsats(amountSats),
				"destination": dest,
				"comment":     lnurlComment,
			},
		}, nil

	case strings.HasPrefix(dest, "@"):
		gamertag := strings.TrimLeft(dest, "@")
		if gamertag == "" {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidGamertag, "gamertag is empty").
				WithDetails(map[string]string{"destination": destination})
		}
		return &SendRequest{
			Kind: KindGamertag,
			Payload: map[string]any{
				"amount":      msats.ToMsats(amountSats),
				"gamertag":    gamertag,
				"description": gamertagDescription,
			},
		}, nil

	case strings.Contains(dest, "@"):
		return &SendRequest{
			Kind: KindLightningAddress,
			Payload: map[string]any{
				"amount":      msats.ToMsats(amountSats),
				"destination": dest,
				"comment":     lnurlComment,
			},
		}, nil
	}

	return nil, pkgerrors.New(pkgerrors.CodeUnsupportedDestination, "destination is not a bolt11 invoice, lnurl, gamertag, or lightning address").
		WithDetails(map[string]string{"destination": destination})
}

// NeedsAmount reports whether a destination kind requires a caller-supplied
// amount. Bolt11 invoices encode their own.
func (k DestinationKind) NeedsAmount() bool {
	return k != KindBolt11
}

// ClassifyDestination returns the kind a destination would map to without
// building a payload, for callers that validate before parsing an amount.
func ClassifyDestination(destination string) (DestinationKind, error) {
	req, err := BuildSendRequest(destination, 1)
	if err != nil {
		return "", err
	}
	return req.Kind, nil
}
