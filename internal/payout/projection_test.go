package payout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rmarin/voltcli/internal/normalize"
	"github.com/rmarin/voltcli/pkg/enums"
)

func TestBtcToSats(t *testing.T) {
	tests := []struct {
		input string
		want  int64
		ok    bool
	}{
		{"0.00050000", 50_000, true},
		{"1", 100_000_000, true},
		{"0.000000019", 1, true}, // sub-sat dust floors
		{"", 0, false},
		{"abc", 0, false},
		{"-0.5", 0, false},
	}
	for _, tt := range tests {
		got, ok := btcToSats(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestProjectUnknownStatusFallsBackToCreated(t *testing.T) {
	doc := normalize.Decode([]byte(`{"id":"po_9","status":"something_new"}`))
	projection := Project(doc)
	assert.Equal(t, "po_9", projection.PayoutID)
	assert.Equal(t, enums.PayoutStatusCreated, projection.Status)
}

func TestProjectFailureFields(t *testing.T) {
	doc := normalize.Decode([]byte(`{
		"id": "po_2",
		"status": "failed_lockup",
		"failureCode": "lockup_underfunded"
	}`))
	projection := Project(doc)
	assert.Equal(t, enums.PayoutStatusFailedLockup, projection.Status)
	assert.True(t, projection.Status.IsTerminal())
	assert.False(t, projection.Status.SupportsRetryClaim())
	assert.Equal(t, "lockup_underfunded", projection.FailureCode)
}
