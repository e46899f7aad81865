// Package msats converts between the upstream wire unit (millisatoshis) and
// the satoshi amounts shown to users. All arithmetic is integer-only so the
// wire/display boundary can never produce fractional or NaN values.
package msats

import (
	"strconv"

	pkgerrors "github.com/rmarin/voltcli/pkg/errors"
)

const msatsPerSat = 1000

// ToSats converts a millisatoshi amount to satoshis, flooring sub-sat dust.
func ToSats(msat int64) int64 {
	if msat <= 0 {
		return 0
	}
	return msat / msatsPerSat
}

// ToMsats converts satoshis to the millisatoshi wire amount. Exact: the
// input is an integer, so no rounding is involved.
func ToMsats(sats int64) int64 {
	if sats <= 0 {
		return 0
	}
	return sats * msatsPerSat
}

// ParseSats parses user-supplied text into a satoshi amount. Only unsigned
// integer strings with value >= 1 are accepted; anything else fails with
// invalid_amount before any network work happens.
func ParseSats(text string) (int64, error) {
	sats, err := strconv.ParseUint(text, 10, 63)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeInvalidAmount, "amount must be a whole number of sats").
			WithDetails(map[string]string{"input": text})
	}
	if sats < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeInvalidAmount, "amount must be at least 1 sat").
			WithDetails(map[string]string{"input": text})
	}
	return int64(sats), nil
}
